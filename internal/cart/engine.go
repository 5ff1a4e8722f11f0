package cart

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "sync"
    "time"

    "github.com/warungkita/pos-service/internal/domain"
    "github.com/warungkita/pos-service/internal/store"
    "go.uber.org/zap"
)

var (
    ErrOutOfStock = errors.New("insufficient stock")
)

// Engine owns the live cart of the terminal session and the append-only
// transaction log. It never consults the catalog: items carry the product
// snapshot taken when they entered the cart, and checkout records that
// snapshot verbatim.
type Engine struct {
    mu           sync.RWMutex
    items        []domain.CartItem
    transactions []domain.Transaction

    store  store.Store
    logger *zap.Logger
}

type snapshot struct {
    Items        []domain.CartItem    `json:"items"`
    Transactions []domain.Transaction `json:"transactions"`
}

// NewEngine rehydrates cart and transaction log from the cart-storage
// bucket. When the rehydrated log is empty and seeding is enabled, five
// demo transactions are planted so the dashboard has something to show.
func NewEngine(ctx context.Context, st store.Store, seedDemo bool, logger *zap.Logger) (*Engine, error) {
    e := &Engine{
        store:  st,
        logger: logger,
    }

    data, err := st.Load(ctx, store.BucketCart)
    if err != nil {
        return nil, fmt.Errorf("failed to load cart state: %w", err)
    }

    if data != nil {
        var snap snapshot
        if err := json.Unmarshal(data, &snap); err != nil {
            return nil, fmt.Errorf("failed to unmarshal cart state: %w", err)
        }
        e.items = snap.Items
        e.transactions = snap.Transactions
    }

    if seedDemo && len(e.transactions) == 0 {
        e.transactions = seedTransactions()
        e.persist(ctx)
        logger.Info("Transaction log seeded with demo data",
            zap.Int("transactions", len(e.transactions)))
    }

    return e, nil
}

func (e *Engine) persist(ctx context.Context) {
    snap := snapshot{Items: e.items, Transactions: e.transactions}
    data, err := json.Marshal(snap)
    if err != nil {
        e.logger.Error("Failed to marshal cart state", zap.Error(err))
        return
    }
    if err := e.store.Save(ctx, store.BucketCart, data); err != nil {
        e.logger.Error("Failed to persist cart state", zap.Error(err))
    }
}

// AddToCart adds one unit of the product, accumulating onto an existing
// line for the same product ID. Adding past the snapshot's stock is
// refused with ErrOutOfStock.
func (e *Engine) AddToCart(ctx context.Context, product domain.Product) error {
    e.mu.Lock()
    defer e.mu.Unlock()

    for i := range e.items {
        if e.items[i].Product.ProductID != product.ProductID {
            continue
        }
        if e.items[i].Quantity+1 > product.Stock {
            return ErrOutOfStock
        }
        e.items[i].Quantity++
        e.persist(ctx)
        return nil
    }

    if product.Stock < 1 {
        return ErrOutOfStock
    }
    e.items = append(e.items, domain.CartItem{Product: product, Quantity: 1})
    e.persist(ctx)
    return nil
}

// RemoveFromCart drops the line for the product. Absent lines are a no-op.
func (e *Engine) RemoveFromCart(ctx context.Context, productID string) {
    e.mu.Lock()
    defer e.mu.Unlock()

    for i, item := range e.items {
        if item.Product.ProductID == productID {
            e.items = append(e.items[:i], e.items[i+1:]...)
            e.persist(ctx)
            return
        }
    }
}

// UpdateQuantity sets the line's quantity. Zero or less removes the line,
// values above the snapshot's stock clamp to it, unknown IDs are a no-op.
func (e *Engine) UpdateQuantity(ctx context.Context, productID string, quantity int) {
    e.mu.Lock()
    defer e.mu.Unlock()

    for i := range e.items {
        if e.items[i].Product.ProductID != productID {
            continue
        }
        if quantity <= 0 {
            e.items = append(e.items[:i], e.items[i+1:]...)
        } else {
            if quantity > e.items[i].Product.Stock {
                quantity = e.items[i].Product.Stock
            }
            e.items[i].Quantity = quantity
        }
        e.persist(ctx)
        return
    }
}

func (e *Engine) ClearCart(ctx context.Context) {
    e.mu.Lock()
    defer e.mu.Unlock()

    e.items = nil
    e.persist(ctx)
}

// Items returns a copy of the current cart lines in insertion order.
func (e *Engine) Items() []domain.CartItem {
    e.mu.RLock()
    defer e.mu.RUnlock()

    out := make([]domain.CartItem, len(e.items))
    copy(out, e.items)
    return out
}

// Total recomputes the cart total on every call. Empty cart totals zero.
func (e *Engine) Total() float64 {
    e.mu.RLock()
    defer e.mu.RUnlock()

    return e.totalLocked()
}

func (e *Engine) totalLocked() float64 {
    var sum float64
    for _, item := range e.items {
        sum += item.Subtotal()
    }
    return sum
}

// Checkout snapshots the cart into a new immutable transaction, appends it
// to the log and empties the cart. Append and clear happen under one lock:
// no caller can observe one without the other. Payment validation is the
// orchestrator's job; change may come out negative if it was skipped.
func (e *Engine) Checkout(ctx context.Context, method domain.PaymentMethod, amountPaid float64, cashierID string) domain.Transaction {
    e.mu.Lock()
    defer e.mu.Unlock()

    total := e.totalLocked()

    items := make([]domain.CartItem, len(e.items))
    copy(items, e.items)

    trx := domain.Transaction{
        TransactionID: domain.NewID(),
        Items:         items,
        Total:         total,
        PaymentMethod: method,
        AmountPaid:    amountPaid,
        Change:        amountPaid - total,
        Timestamp:     time.Now(),
        CashierID:     cashierID,
    }

    e.transactions = append(e.transactions, trx)
    e.items = nil
    e.persist(ctx)

    e.logger.Info("Checkout completed",
        zap.String("transaction_id", trx.TransactionID),
        zap.String("cashier_id", cashierID),
        zap.Float64("total", total),
        zap.Float64("change", trx.Change),
        zap.Int("lines", len(items)))

    return trx
}

// Transactions returns a copy of the log, oldest first.
func (e *Engine) Transactions() []domain.Transaction {
    e.mu.RLock()
    defer e.mu.RUnlock()

    out := make([]domain.Transaction, len(e.transactions))
    copy(out, e.transactions)
    return out
}

// Summary aggregates the log for the admin dashboard.
func (e *Engine) Summary() domain.TransactionSummary {
    e.mu.RLock()
    defer e.mu.RUnlock()

    var revenue float64
    for _, trx := range e.transactions {
        revenue += trx.Total
    }
    return domain.TransactionSummary{
        Count:   len(e.transactions),
        Revenue: revenue,
    }
}

func seedTransactions() []domain.Transaction {
    base := time.Now()

    out := make([]domain.Transaction, 0, 5)
    for i := 0; i < 5; i++ {
        method := domain.PaymentCash
        if i%2 == 1 {
            method = domain.PaymentCard
        }
        total := float64(100_000 + i*50_000)
        out = append(out, domain.Transaction{
            TransactionID: fmt.Sprintf("seed-%d", i),
            Items:         []domain.CartItem{},
            Total:         total,
            PaymentMethod: method,
            AmountPaid:    total,
            Change:        0,
            Timestamp:     base.AddDate(0, 0, -i),
            CashierID:     "demo",
        })
    }
    return out
}
