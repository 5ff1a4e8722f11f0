package checkout

import (
    "context"
    "sync"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "github.com/warungkita/pos-service/internal/cart"
    "github.com/warungkita/pos-service/internal/catalog"
    "github.com/warungkita/pos-service/internal/domain"
    "github.com/warungkita/pos-service/internal/store"
    "go.uber.org/zap"
)

func newFixture(t *testing.T) (*Orchestrator, *cart.Engine, *catalog.Service) {
    t.Helper()

    ctx := context.Background()
    st := store.NewMemoryStore()

    catalogService, err := catalog.NewService(ctx, st, true, zap.NewNop())
    require.NoError(t, err)

    engine, err := cart.NewEngine(ctx, st, false, zap.NewNop())
    require.NoError(t, err)

    // nil publisher: sale events disabled, as when no brokers are configured
    orchestrator := NewOrchestrator(engine, catalogService, nil, zap.NewNop())
    return orchestrator, engine, catalogService
}

func fillScenarioCart(t *testing.T, engine *cart.Engine, catalogService *catalog.Service) {
    t.Helper()
    ctx := context.Background()

    nasi, err := catalogService.GetProduct("1")
    require.NoError(t, err)
    esTeh, err := catalogService.GetProduct("4")
    require.NoError(t, err)

    require.NoError(t, engine.AddToCart(ctx, nasi))
    require.NoError(t, engine.AddToCart(ctx, nasi))
    for i := 0; i < 3; i++ {
        require.NoError(t, engine.AddToCart(ctx, esTeh))
    }

    require.Equal(t, float64(65000), engine.Total())
}

func TestProcessPayment_CashSuccess(t *testing.T) {
    orchestrator, engine, catalogService := newFixture(t)
    fillScenarioCart(t, engine, catalogService)

    trx, err := orchestrator.ProcessPayment(context.Background(), "cash", "70000", "2")
    require.NoError(t, err)

    assert.Equal(t, float64(65000), trx.Total)
    assert.Equal(t, float64(70000), trx.AmountPaid)
    assert.Equal(t, float64(5000), trx.Change)
    assert.Equal(t, "2", trx.CashierID)
    assert.Empty(t, engine.Items())

    nasi, err := catalogService.GetProduct("1")
    require.NoError(t, err)
    assert.Equal(t, 48, nasi.Stock)

    esTeh, err := catalogService.GetProduct("4")
    require.NoError(t, err)
    assert.Equal(t, 97, esTeh.Stock)
}

func TestProcessPayment_InsufficientCash(t *testing.T) {
    orchestrator, engine, catalogService := newFixture(t)
    fillScenarioCart(t, engine, catalogService)

    _, err := orchestrator.ProcessPayment(context.Background(), "cash", "50000", "2")
    assert.ErrorIs(t, err, ErrInsufficientPayment)

    // No side effects: cart intact, stock untouched.
    assert.Equal(t, float64(65000), engine.Total())
    nasi, err := catalogService.GetProduct("1")
    require.NoError(t, err)
    assert.Equal(t, 50, nasi.Stock)
}

func TestProcessPayment_EmptyCart(t *testing.T) {
    orchestrator, _, _ := newFixture(t)

    _, err := orchestrator.ProcessPayment(context.Background(), "cash", "10000", "2")
    assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestProcessPayment_InvalidAmount(t *testing.T) {
    tests := []struct {
        name string
        raw  string
    }{
        {name: "not a number", raw: "abc"},
        {name: "empty", raw: ""},
        {name: "negative", raw: "-5"},
        {name: "nan", raw: "NaN"},
        {name: "positive infinity", raw: "+Inf"},
        {name: "negative infinity", raw: "-Inf"},
    }

    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            orchestrator, engine, catalogService := newFixture(t)
            fillScenarioCart(t, engine, catalogService)

            _, err := orchestrator.ProcessPayment(context.Background(), "cash", tt.raw, "2")
            assert.ErrorIs(t, err, ErrInvalidAmount)
            assert.Equal(t, float64(65000), engine.Total())

            nasi, err := catalogService.GetProduct("1")
            require.NoError(t, err)
            assert.Equal(t, 50, nasi.Stock)
            assert.Empty(t, engine.Transactions())
        })
    }
}

func TestProcessPayment_NaNAmountDoesNotPoisonPersistence(t *testing.T) {
    ctx := context.Background()
    st := store.NewMemoryStore()

    catalogService, err := catalog.NewService(ctx, st, true, zap.NewNop())
    require.NoError(t, err)
    engine, err := cart.NewEngine(ctx, st, false, zap.NewNop())
    require.NoError(t, err)
    orchestrator := NewOrchestrator(engine, catalogService, nil, zap.NewNop())

    fillScenarioCart(t, engine, catalogService)

    _, err = orchestrator.ProcessPayment(ctx, "cash", "NaN", "2")
    require.ErrorIs(t, err, ErrInvalidAmount)

    // The session keeps working and its state still round-trips.
    trx, err := orchestrator.ProcessPayment(ctx, "cash", "70000", "2")
    require.NoError(t, err)
    assert.Equal(t, float64(5000), trx.Change)

    reloaded, err := cart.NewEngine(ctx, st, false, zap.NewNop())
    require.NoError(t, err)
    trxs := reloaded.Transactions()
    require.Len(t, trxs, 1)
    assert.Equal(t, trx.TransactionID, trxs[0].TransactionID)
    assert.Equal(t, float64(70000), trxs[0].AmountPaid)
}

func TestProcessPayment_ConcurrentCheckoutsSerialized(t *testing.T) {
    orchestrator, engine, catalogService := newFixture(t)
    fillScenarioCart(t, engine, catalogService)

    const attempts = 4
    errs := make(chan error, attempts)

    var wg sync.WaitGroup
    for i := 0; i < attempts; i++ {
        wg.Add(1)
        go func() {
            defer wg.Done()
            _, err := orchestrator.ProcessPayment(context.Background(), "cash", "70000", "2")
            errs <- err
        }()
    }
    wg.Wait()
    close(errs)

    succeeded := 0
    for err := range errs {
        if err == nil {
            succeeded++
        } else {
            assert.ErrorIs(t, err, ErrEmptyCart)
        }
    }

    // Exactly one attempt drains the cart; the rest find it empty.
    assert.Equal(t, 1, succeeded)
    assert.Len(t, engine.Transactions(), 1)

    nasi, err := catalogService.GetProduct("1")
    require.NoError(t, err)
    assert.Equal(t, 48, nasi.Stock)
}

func TestProcessPayment_CardIsPreAuthorized(t *testing.T) {
    orchestrator, engine, catalogService := newFixture(t)
    fillScenarioCart(t, engine, catalogService)

    // Card ignores the raw amount and settles for exactly the total.
    trx, err := orchestrator.ProcessPayment(context.Background(), "card", "", "2")
    require.NoError(t, err)

    assert.Equal(t, domain.PaymentCard, trx.PaymentMethod)
    assert.Equal(t, float64(65000), trx.AmountPaid)
    assert.Equal(t, float64(0), trx.Change)
    assert.Empty(t, engine.Items())
}

func TestProcessPayment_UnknownMethod(t *testing.T) {
    orchestrator, engine, catalogService := newFixture(t)
    fillScenarioCart(t, engine, catalogService)

    _, err := orchestrator.ProcessPayment(context.Background(), "cek", "70000", "2")
    assert.ErrorIs(t, err, ErrUnknownMethod)
    assert.Equal(t, float64(65000), engine.Total())
}

func TestProcessPayment_StaleCartLineStillFinalizes(t *testing.T) {
    orchestrator, engine, catalogService := newFixture(t)
    ctx := context.Background()

    nasi, err := catalogService.GetProduct("1")
    require.NoError(t, err)
    require.NoError(t, engine.AddToCart(ctx, nasi))
    require.NoError(t, catalogService.DeleteProduct(ctx, "1"))

    trx, err := orchestrator.ProcessPayment(ctx, "cash", "25000", "2")
    require.NoError(t, err)

    // The sale records the stale snapshot; no catalog validation happens.
    require.Len(t, trx.Items, 1)
    assert.Equal(t, "1", trx.Items[0].Product.ProductID)
}

func TestProcessPayment_StockFloorsAtZero(t *testing.T) {
    orchestrator, engine, catalogService := newFixture(t)
    ctx := context.Background()

    added, err := catalogService.AddProduct(ctx, domain.CreateProductRequest{
        Name: "Sisa Satu", Price: 1000, Stock: 1, CategoryID: "3",
    })
    require.NoError(t, err)

    // Stale snapshot claims more stock than remains by checkout time.
    stale := added
    stale.Stock = 5
    require.NoError(t, engine.AddToCart(ctx, stale))
    engine.UpdateQuantity(ctx, added.ProductID, 3)

    _, err = orchestrator.ProcessPayment(ctx, "cash", "3000", "2")
    require.NoError(t, err)

    current, err := catalogService.GetProduct(added.ProductID)
    require.NoError(t, err)
    assert.Equal(t, 0, current.Stock)
}
