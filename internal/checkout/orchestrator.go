package checkout

import (
    "context"
    "errors"
    "math"
    "strconv"
    "sync"

    "github.com/warungkita/pos-service/internal/cart"
    "github.com/warungkita/pos-service/internal/catalog"
    "github.com/warungkita/pos-service/internal/domain"
    "github.com/warungkita/pos-service/internal/events"
    "go.uber.org/zap"
)

var (
    ErrEmptyCart           = errors.New("cart is empty")
    ErrInvalidAmount       = errors.New("invalid payment amount")
    ErrInsufficientPayment = errors.New("insufficient payment")
    ErrUnknownMethod       = errors.New("unknown payment method")
)

// Orchestrator turns a payment request into a finalized transaction:
// validate the amount, decrement stock, then let the cart engine finalize.
// Stock comes off before the cart is cleared because the decrement walks
// the pre-checkout cart lines.
type Orchestrator struct {
    mu        sync.Mutex
    cart      *cart.Engine
    catalog   *catalog.Service
    publisher *events.Publisher
    logger    *zap.Logger
}

func NewOrchestrator(cartEngine *cart.Engine, catalogSvc *catalog.Service, publisher *events.Publisher, logger *zap.Logger) *Orchestrator {
    return &Orchestrator{
        cart:      cartEngine,
        catalog:   catalogSvc,
        publisher: publisher,
        logger:    logger,
    }
}

// ProcessPayment validates and finalizes the current cart. Card payments
// are treated as pre-authorized for exactly the total: the raw amount is
// ignored and change is zero. Cash amounts are parsed from the raw string
// and must cover the total. On any validation error nothing is mutated.
func (o *Orchestrator) ProcessPayment(ctx context.Context, method string, amountPaidRaw string, cashierID string) (domain.Transaction, error) {
    // The terminal model is one cashier session, but the HTTP surface
    // admits concurrent requests: serialize so validation and finalization
    // see the same cart.
    o.mu.Lock()
    defer o.mu.Unlock()

    items := o.cart.Items()
    if len(items) == 0 {
        return domain.Transaction{}, ErrEmptyCart
    }

    total := o.cart.Total()

    var paymentMethod domain.PaymentMethod
    var amount float64

    switch domain.PaymentMethod(method) {
    case domain.PaymentCash:
        paymentMethod = domain.PaymentCash
        parsed, err := strconv.ParseFloat(amountPaidRaw, 64)
        // ParseFloat accepts "NaN" and "Inf"; neither is a payable amount,
        // and NaN would poison every later snapshot marshal.
        if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) || parsed < 0 {
            return domain.Transaction{}, ErrInvalidAmount
        }
        if parsed < total {
            return domain.Transaction{}, ErrInsufficientPayment
        }
        amount = parsed
    case domain.PaymentCard:
        paymentMethod = domain.PaymentCard
        amount = total
    default:
        return domain.Transaction{}, ErrUnknownMethod
    }

    for _, item := range items {
        if _, err := o.catalog.DecreaseStock(ctx, item.Product.ProductID, item.Quantity); err != nil {
            // Stale cart line for a deleted product. The sale still goes
            // through with the snapshot, matching the terminal behavior.
            o.logger.Warn("Stock decrement skipped",
                zap.String("product_id", item.Product.ProductID),
                zap.Int("quantity", item.Quantity),
                zap.Error(err))
        }
    }

    trx := o.cart.Checkout(ctx, paymentMethod, amount, cashierID)

    // Best effort: a broker outage must not fail the sale.
    if err := o.publisher.PublishSaleCompleted(ctx, trx); err != nil {
        o.logger.Warn("Sale event not published",
            zap.String("transaction_id", trx.TransactionID),
            zap.Error(err))
    }

    return trx, nil
}
