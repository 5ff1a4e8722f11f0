package events

import (
    "time"

    "github.com/warungkita/pos-service/internal/domain"
)

// SaleCompletedEvent is published after a checkout finalizes.
type SaleCompletedEvent struct {
    EventID       string     `json:"event_id"`
    TransactionID string     `json:"transaction_id"`
    CashierID     string     `json:"cashier_id"`
    PaymentMethod string     `json:"payment_method"`
    Total         float64    `json:"total"`
    AmountPaid    float64    `json:"amount_paid"`
    Change        float64    `json:"change"`
    Items         []SaleItem `json:"items"`
    Timestamp     time.Time  `json:"timestamp"`
}

type SaleItem struct {
    ProductID   string  `json:"product_id"`
    ProductName string  `json:"product_name"`
    Quantity    int     `json:"quantity"`
    Price       float64 `json:"price"`
}

func fromTransaction(eventID string, trx domain.Transaction) SaleCompletedEvent {
    items := make([]SaleItem, 0, len(trx.Items))
    for _, item := range trx.Items {
        items = append(items, SaleItem{
            ProductID:   item.Product.ProductID,
            ProductName: item.Product.Name,
            Quantity:    item.Quantity,
            Price:       item.Product.Price,
        })
    }

    return SaleCompletedEvent{
        EventID:       eventID,
        TransactionID: trx.TransactionID,
        CashierID:     trx.CashierID,
        PaymentMethod: string(trx.PaymentMethod),
        Total:         trx.Total,
        AmountPaid:    trx.AmountPaid,
        Change:        trx.Change,
        Items:         items,
        Timestamp:     trx.Timestamp,
    }
}
