package handler

import (
    "net/http"

    "github.com/gin-gonic/gin"
    "github.com/warungkita/pos-service/internal/catalog"
    "github.com/warungkita/pos-service/internal/domain"
    "go.uber.org/zap"
)

type CatalogHandler struct {
    catalogService *catalog.Service
    logger         *zap.Logger
}

func NewCatalogHandler(catalogService *catalog.Service, logger *zap.Logger) *CatalogHandler {
    return &CatalogHandler{
        catalogService: catalogService,
        logger:         logger,
    }
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
    c.JSON(http.StatusOK, h.catalogService.ListProducts())
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
    productID := c.Param("id")

    product, err := h.catalogService.GetProduct(productID)
    if err != nil {
        c.JSON(http.StatusNotFound, gin.H{
            "error": "Product not found",
        })
        return
    }

    c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
    var req domain.CreateProductRequest

    if err := c.ShouldBindJSON(&req); err != nil {
        h.logger.Error("Invalid request", zap.Error(err))
        c.JSON(http.StatusBadRequest, gin.H{
            "error": "Invalid request format",
        })
        return
    }

    product, err := h.catalogService.AddProduct(c.Request.Context(), req)
    if err != nil {
        if err == catalog.ErrInvalidProduct {
            c.JSON(http.StatusBadRequest, gin.H{
                "error": "Invalid product",
            })
            return
        }

        h.logger.Error("Failed to create product", zap.Error(err))
        c.JSON(http.StatusInternalServerError, gin.H{
            "error": "Failed to create product",
        })
        return
    }

    c.JSON(http.StatusCreated, product)
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
    productID := c.Param("id")

    var req domain.UpdateProductRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        h.logger.Error("Invalid request", zap.Error(err))
        c.JSON(http.StatusBadRequest, gin.H{
            "error": "Invalid request format",
        })
        return
    }

    product, err := h.catalogService.UpdateProduct(c.Request.Context(), productID, req)
    if err != nil {
        switch err {
        case catalog.ErrProductNotFound:
            c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
        case catalog.ErrInvalidProduct:
            c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product"})
        default:
            h.logger.Error("Failed to update product",
                zap.String("product_id", productID),
                zap.Error(err))
            c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
        }
        return
    }

    c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
    productID := c.Param("id")

    if err := h.catalogService.DeleteProduct(c.Request.Context(), productID); err != nil {
        c.JSON(http.StatusNotFound, gin.H{
            "error": "Product not found",
        })
        return
    }

    c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
    c.JSON(http.StatusOK, h.catalogService.ListCategories())
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
    var req domain.CreateCategoryRequest

    if err := c.ShouldBindJSON(&req); err != nil {
        h.logger.Error("Invalid request", zap.Error(err))
        c.JSON(http.StatusBadRequest, gin.H{
            "error": "Invalid request format",
        })
        return
    }

    category, err := h.catalogService.AddCategory(c.Request.Context(), req)
    if err != nil {
        h.logger.Error("Failed to create category", zap.Error(err))
        c.JSON(http.StatusInternalServerError, gin.H{
            "error": "Failed to create category",
        })
        return
    }

    c.JSON(http.StatusCreated, category)
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
    categoryID := c.Param("id")

    var req domain.UpdateCategoryRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        h.logger.Error("Invalid request", zap.Error(err))
        c.JSON(http.StatusBadRequest, gin.H{
            "error": "Invalid request format",
        })
        return
    }

    category, err := h.catalogService.UpdateCategory(c.Request.Context(), categoryID, req)
    if err != nil {
        c.JSON(http.StatusNotFound, gin.H{
            "error": "Category not found",
        })
        return
    }

    c.JSON(http.StatusOK, category)
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
    categoryID := c.Param("id")

    if err := h.catalogService.DeleteCategory(c.Request.Context(), categoryID); err != nil {
        switch err {
        case catalog.ErrCategoryInUse:
            c.JSON(http.StatusConflict, gin.H{"error": "Category still has products"})
        case catalog.ErrCategoryNotFound:
            c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
        default:
            h.logger.Error("Failed to delete category",
                zap.String("category_id", categoryID),
                zap.Error(err))
            c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
        }
        return
    }

    c.Status(http.StatusNoContent)
}
