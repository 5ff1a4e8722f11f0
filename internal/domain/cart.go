package domain

import (
    "time"
)

type PaymentMethod string

const (
    PaymentCash PaymentMethod = "cash"
    PaymentCard PaymentMethod = "card"
)

// CartItem pairs a product snapshot with a quantity. The snapshot is taken
// when the item enters the cart; later catalog edits do not flow into it.
type CartItem struct {
    Product  Product `json:"product"`
    Quantity int     `json:"quantity"`
}

func (i CartItem) Subtotal() float64 {
    return i.Product.Price * float64(i.Quantity)
}

// Transaction is the immutable record of one completed checkout.
type Transaction struct {
    TransactionID string        `json:"transaction_id"`
    Items         []CartItem    `json:"items"`
    Total         float64       `json:"total"`
    PaymentMethod PaymentMethod `json:"payment_method"`
    AmountPaid    float64       `json:"amount_paid"`
    Change        float64       `json:"change"`
    Timestamp     time.Time     `json:"timestamp"`
    CashierID     string        `json:"cashier_id"`
}

type AddCartItemRequest struct {
    ProductID string `json:"product_id" binding:"required"`
}

type UpdateCartItemRequest struct {
    Quantity int `json:"quantity"`
}

type CheckoutRequest struct {
    PaymentMethod string `json:"payment_method" binding:"required"`
    AmountPaid    string `json:"amount_paid"`
}

type CartResponse struct {
    Items []CartItem `json:"items"`
    Total float64    `json:"total"`
}

type TransactionSummary struct {
    Count   int     `json:"count"`
    Revenue float64 `json:"revenue"`
}
