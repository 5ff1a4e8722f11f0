package catalog

import (
    "github.com/warungkita/pos-service/internal/domain"
)

func seedCategories() []domain.Category {
    return []domain.Category{
        {CategoryID: "1", Name: "Makanan", Color: "#6366f1"},
        {CategoryID: "2", Name: "Minuman", Color: "#22c55e"},
        {CategoryID: "3", Name: "Snack", Color: "#f59e0b"},
        {CategoryID: "4", Name: "Lainnya", Color: "#ec4899"},
    }
}

func seedProducts() []domain.Product {
    return []domain.Product{
        {ProductID: "1", Name: "Nasi Goreng", Price: 25000, Stock: 50, CategoryID: "1", Image: "/products/nasgor.png"},
        {ProductID: "2", Name: "Mie Goreng", Price: 22000, Stock: 45, CategoryID: "1", Image: "/products/miegoreng.png"},
        {ProductID: "3", Name: "Ayam Bakar", Price: 35000, Stock: 30, CategoryID: "1", Image: "/products/ayambakar.png"},
        {ProductID: "4", Name: "Es Teh Manis", Price: 5000, Stock: 100, CategoryID: "2", Image: "/products/esteh.png"},
        {ProductID: "5", Name: "Kopi Hitam", Price: 8000, Stock: 80, CategoryID: "2", Image: "/products/kopi.png"},
        {ProductID: "6", Name: "Jus Jeruk", Price: 12000, Stock: 40, CategoryID: "2", Image: "/products/jusjeruk.png"},
        {ProductID: "7", Name: "Keripik", Price: 10000, Stock: 60, CategoryID: "3", Image: "/products/keripik.png"},
        {ProductID: "8", Name: "Cokelat Bar", Price: 15000, Stock: 35, CategoryID: "3", Image: "/products/coklat.png"},
    }
}
