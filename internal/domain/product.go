package domain

type Product struct {
    ProductID  string  `json:"product_id"`
    Name       string  `json:"name"`
    Price      float64 `json:"price"`
    Stock      int     `json:"stock"`
    CategoryID string  `json:"category_id"`
    Image      string  `json:"image,omitempty"`
}

type Category struct {
    CategoryID string `json:"category_id"`
    Name       string `json:"name"`
    Color      string `json:"color"`
}

type CreateProductRequest struct {
    Name       string  `json:"name"        binding:"required"`
    Price      float64 `json:"price"       binding:"required"`
    Stock      int     `json:"stock"       binding:"min=0"`
    CategoryID string  `json:"category_id" binding:"required"`
    Image      string  `json:"image"`
}

type UpdateProductRequest struct {
    Name       *string  `json:"name"`
    Price      *float64 `json:"price"`
    Stock      *int     `json:"stock"`
    CategoryID *string  `json:"category_id"`
    Image      *string  `json:"image"`
}

type CreateCategoryRequest struct {
    Name  string `json:"name"  binding:"required"`
    Color string `json:"color" binding:"required"`
}

type UpdateCategoryRequest struct {
    Name  *string `json:"name"`
    Color *string `json:"color"`
}
