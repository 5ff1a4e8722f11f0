package catalog

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "sync"

    "github.com/warungkita/pos-service/internal/domain"
    "github.com/warungkita/pos-service/internal/store"
    "go.uber.org/zap"
)

var (
    ErrProductNotFound  = errors.New("product not found")
    ErrCategoryNotFound = errors.New("category not found")
    ErrCategoryInUse    = errors.New("category still has products")
    ErrInvalidProduct   = errors.New("invalid product")
)

// Service owns the product and category collections. Admin CRUD and the
// checkout stock decrement are its only writers.
type Service struct {
    mu         sync.RWMutex
    products   []domain.Product
    categories []domain.Category

    store  store.Store
    logger *zap.Logger
}

type snapshot struct {
    Products   []domain.Product  `json:"products"`
    Categories []domain.Category `json:"categories"`
}

// NewService rehydrates the catalog from the product-storage bucket. An
// empty bucket is a first run; the demo catalog is seeded when enabled.
func NewService(ctx context.Context, st store.Store, seedDemo bool, logger *zap.Logger) (*Service, error) {
    s := &Service{
        store:  st,
        logger: logger,
    }

    data, err := st.Load(ctx, store.BucketProducts)
    if err != nil {
        return nil, fmt.Errorf("failed to load catalog: %w", err)
    }

    if data != nil {
        var snap snapshot
        if err := json.Unmarshal(data, &snap); err != nil {
            return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
        }
        s.products = snap.Products
        s.categories = snap.Categories
        logger.Info("Catalog rehydrated",
            zap.Int("products", len(s.products)),
            zap.Int("categories", len(s.categories)))
        return s, nil
    }

    if seedDemo {
        s.products = seedProducts()
        s.categories = seedCategories()
        s.persist(ctx)
        logger.Info("Catalog seeded with demo data",
            zap.Int("products", len(s.products)),
            zap.Int("categories", len(s.categories)))
    }

    return s, nil
}

// persist mirrors the catalog into the store. Failures are logged, not
// surfaced: the in-memory state stays authoritative for the session.
func (s *Service) persist(ctx context.Context) {
    snap := snapshot{Products: s.products, Categories: s.categories}
    data, err := json.Marshal(snap)
    if err != nil {
        s.logger.Error("Failed to marshal catalog", zap.Error(err))
        return
    }
    if err := s.store.Save(ctx, store.BucketProducts, data); err != nil {
        s.logger.Error("Failed to persist catalog", zap.Error(err))
    }
}

func (s *Service) ListProducts() []domain.Product {
    s.mu.RLock()
    defer s.mu.RUnlock()

    out := make([]domain.Product, len(s.products))
    copy(out, s.products)
    return out
}

func (s *Service) GetProduct(productID string) (domain.Product, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()

    for _, p := range s.products {
        if p.ProductID == productID {
            return p, nil
        }
    }
    return domain.Product{}, ErrProductNotFound
}

func (s *Service) AddProduct(ctx context.Context, req domain.CreateProductRequest) (domain.Product, error) {
    if req.Price < 0 || req.Stock < 0 {
        return domain.Product{}, ErrInvalidProduct
    }

    s.mu.Lock()
    defer s.mu.Unlock()

    product := domain.Product{
        ProductID:  domain.NewID(),
        Name:       req.Name,
        Price:      req.Price,
        Stock:      req.Stock,
        CategoryID: req.CategoryID,
        Image:      req.Image,
    }
    s.products = append(s.products, product)
    s.persist(ctx)

    s.logger.Info("Product created",
        zap.String("product_id", product.ProductID),
        zap.String("name", product.Name),
        zap.Int("initial_stock", product.Stock))

    return product, nil
}

func (s *Service) UpdateProduct(ctx context.Context, productID string, req domain.UpdateProductRequest) (domain.Product, error) {
    if req.Price != nil && *req.Price < 0 {
        return domain.Product{}, ErrInvalidProduct
    }
    if req.Stock != nil && *req.Stock < 0 {
        return domain.Product{}, ErrInvalidProduct
    }

    s.mu.Lock()
    defer s.mu.Unlock()

    for i := range s.products {
        if s.products[i].ProductID != productID {
            continue
        }
        p := &s.products[i]
        if req.Name != nil {
            p.Name = *req.Name
        }
        if req.Price != nil {
            p.Price = *req.Price
        }
        if req.Stock != nil {
            p.Stock = *req.Stock
        }
        if req.CategoryID != nil {
            p.CategoryID = *req.CategoryID
        }
        if req.Image != nil {
            p.Image = *req.Image
        }
        s.persist(ctx)
        return *p, nil
    }
    return domain.Product{}, ErrProductNotFound
}

func (s *Service) DeleteProduct(ctx context.Context, productID string) error {
    s.mu.Lock()
    defer s.mu.Unlock()

    for i, p := range s.products {
        if p.ProductID == productID {
            s.products = append(s.products[:i], s.products[i+1:]...)
            s.persist(ctx)
            s.logger.Info("Product deleted", zap.String("product_id", productID))
            return nil
        }
    }
    return ErrProductNotFound
}

func (s *Service) ListCategories() []domain.Category {
    s.mu.RLock()
    defer s.mu.RUnlock()

    out := make([]domain.Category, len(s.categories))
    copy(out, s.categories)
    return out
}

func (s *Service) AddCategory(ctx context.Context, req domain.CreateCategoryRequest) (domain.Category, error) {
    s.mu.Lock()
    defer s.mu.Unlock()

    category := domain.Category{
        CategoryID: domain.NewID(),
        Name:       req.Name,
        Color:      req.Color,
    }
    s.categories = append(s.categories, category)
    s.persist(ctx)
    return category, nil
}

func (s *Service) UpdateCategory(ctx context.Context, categoryID string, req domain.UpdateCategoryRequest) (domain.Category, error) {
    s.mu.Lock()
    defer s.mu.Unlock()

    for i := range s.categories {
        if s.categories[i].CategoryID != categoryID {
            continue
        }
        c := &s.categories[i]
        if req.Name != nil {
            c.Name = *req.Name
        }
        if req.Color != nil {
            c.Color = *req.Color
        }
        s.persist(ctx)
        return *c, nil
    }
    return domain.Category{}, ErrCategoryNotFound
}

// DeleteCategory refuses while any product still references the category.
func (s *Service) DeleteCategory(ctx context.Context, categoryID string) error {
    s.mu.Lock()
    defer s.mu.Unlock()

    for _, p := range s.products {
        if p.CategoryID == categoryID {
            return ErrCategoryInUse
        }
    }

    for i, c := range s.categories {
        if c.CategoryID == categoryID {
            s.categories = append(s.categories[:i], s.categories[i+1:]...)
            s.persist(ctx)
            return nil
        }
    }
    return ErrCategoryNotFound
}

// DecreaseStock reduces a product's stock, never below zero.
func (s *Service) DecreaseStock(ctx context.Context, productID string, quantity int) (newStock int, err error) {
    s.mu.Lock()
    defer s.mu.Unlock()

    for i := range s.products {
        if s.products[i].ProductID != productID {
            continue
        }
        previous := s.products[i].Stock
        next := previous - quantity
        if next < 0 {
            next = 0
        }
        s.products[i].Stock = next
        s.persist(ctx)

        s.logger.Info("Stock decreased",
            zap.String("product_id", productID),
            zap.Int("previous_stock", previous),
            zap.Int("deducted", quantity),
            zap.Int("new_stock", next))

        return next, nil
    }
    return 0, ErrProductNotFound
}
