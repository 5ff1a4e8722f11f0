package handler

import (
    "net/http"

    "github.com/gin-gonic/gin"
    "github.com/warungkita/pos-service/internal/auth"
    "github.com/warungkita/pos-service/internal/cart"
    "github.com/warungkita/pos-service/internal/catalog"
    "github.com/warungkita/pos-service/internal/checkout"
    "github.com/warungkita/pos-service/internal/domain"
    "go.uber.org/zap"
)

type CartHandler struct {
    cartEngine     *cart.Engine
    catalogService *catalog.Service
    orchestrator   *checkout.Orchestrator
    logger         *zap.Logger
}

func NewCartHandler(cartEngine *cart.Engine, catalogService *catalog.Service, orchestrator *checkout.Orchestrator, logger *zap.Logger) *CartHandler {
    return &CartHandler{
        cartEngine:     cartEngine,
        catalogService: catalogService,
        orchestrator:   orchestrator,
        logger:         logger,
    }
}

func (h *CartHandler) GetCart(c *gin.Context) {
    c.JSON(http.StatusOK, domain.CartResponse{
        Items: h.cartEngine.Items(),
        Total: h.cartEngine.Total(),
    })
}

func (h *CartHandler) AddItem(c *gin.Context) {
    var req domain.AddCartItemRequest

    if err := c.ShouldBindJSON(&req); err != nil {
        h.logger.Error("Invalid request", zap.Error(err))
        c.JSON(http.StatusBadRequest, gin.H{
            "error": "Invalid request format",
        })
        return
    }

    product, err := h.catalogService.GetProduct(req.ProductID)
    if err != nil {
        c.JSON(http.StatusNotFound, gin.H{
            "error": "Product not found",
        })
        return
    }

    if err := h.cartEngine.AddToCart(c.Request.Context(), product); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{
            "error": "Insufficient stock",
        })
        return
    }

    c.JSON(http.StatusOK, domain.CartResponse{
        Items: h.cartEngine.Items(),
        Total: h.cartEngine.Total(),
    })
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
    productID := c.Param("id")

    var req domain.UpdateCartItemRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        h.logger.Error("Invalid request", zap.Error(err))
        c.JSON(http.StatusBadRequest, gin.H{
            "error": "Invalid request format",
        })
        return
    }

    h.cartEngine.UpdateQuantity(c.Request.Context(), productID, req.Quantity)

    c.JSON(http.StatusOK, domain.CartResponse{
        Items: h.cartEngine.Items(),
        Total: h.cartEngine.Total(),
    })
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
    h.cartEngine.RemoveFromCart(c.Request.Context(), c.Param("id"))

    c.JSON(http.StatusOK, domain.CartResponse{
        Items: h.cartEngine.Items(),
        Total: h.cartEngine.Total(),
    })
}

func (h *CartHandler) ClearCart(c *gin.Context) {
    h.cartEngine.ClearCart(c.Request.Context())
    c.Status(http.StatusNoContent)
}

func (h *CartHandler) Checkout(c *gin.Context) {
    var req domain.CheckoutRequest

    if err := c.ShouldBindJSON(&req); err != nil {
        h.logger.Error("Invalid request", zap.Error(err))
        c.JSON(http.StatusBadRequest, gin.H{
            "error": "Invalid request format",
        })
        return
    }

    user, _ := auth.CurrentUser(c)

    trx, err := h.orchestrator.ProcessPayment(c.Request.Context(), req.PaymentMethod, req.AmountPaid, user.UserID)
    if err != nil {
        switch err {
        case checkout.ErrEmptyCart:
            c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
        case checkout.ErrInvalidAmount:
            c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment amount"})
        case checkout.ErrInsufficientPayment:
            c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient payment"})
        case checkout.ErrUnknownMethod:
            c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown payment method"})
        default:
            h.logger.Error("Checkout failed",
                zap.String("cashier_id", user.UserID),
                zap.Error(err))
            c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed"})
        }
        return
    }

    c.JSON(http.StatusCreated, trx)
}

func (h *CartHandler) ListTransactions(c *gin.Context) {
    c.JSON(http.StatusOK, h.cartEngine.Transactions())
}

func (h *CartHandler) TransactionSummary(c *gin.Context) {
    c.JSON(http.StatusOK, h.cartEngine.Summary())
}
