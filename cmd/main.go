package main

import (
    "context"
    "log"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/gin-gonic/gin"
    "github.com/joho/godotenv"
    "github.com/kelseyhightower/envconfig"
    "github.com/warungkita/pos-service/internal/auth"
    "github.com/warungkita/pos-service/internal/cart"
    "github.com/warungkita/pos-service/internal/catalog"
    "github.com/warungkita/pos-service/internal/checkout"
    "github.com/warungkita/pos-service/internal/events"
    "github.com/warungkita/pos-service/internal/handler"
    "github.com/warungkita/pos-service/internal/store"
    "github.com/warungkita/pos-service/pkg/config"
    "github.com/warungkita/pos-service/pkg/middleware"
    pkgtls "github.com/warungkita/pos-service/pkg/tls"
    "go.uber.org/zap"
)

func main() {
    logger, _ := zap.NewProduction()
    defer logger.Sync()

    // .env is optional; real deployments set the environment directly.
    _ = godotenv.Load()

    cfg, err := config.Load()
    if err != nil {
        log.Fatal("Failed to load config:", err)
    }

    st, err := newStore(cfg, logger)
    if err != nil {
        log.Fatal("Failed to initialize state store:", err)
    }

    ctx := context.Background()

    catalogService, err := catalog.NewService(ctx, st, cfg.SeedDemoData, logger)
    if err != nil {
        log.Fatal("Failed to initialize catalog:", err)
    }

    cartEngine, err := cart.NewEngine(ctx, st, cfg.SeedDemoData, logger)
    if err != nil {
        log.Fatal("Failed to initialize cart engine:", err)
    }

    authService, err := auth.NewService(ctx, st, cfg.SeedDemoData, logger)
    if err != nil {
        log.Fatal("Failed to initialize auth:", err)
    }

    var publisher *events.Publisher
    if cfg.KafkaBrokers != "" {
        publisher = events.NewPublisher(cfg.KafkaBrokers, logger)
        defer publisher.Close()
        logger.Info("Sale event publishing enabled", zap.String("brokers", cfg.KafkaBrokers))
    }

    orchestrator := checkout.NewOrchestrator(cartEngine, catalogService, publisher, logger)

    catalogHandler := handler.NewCatalogHandler(catalogService, logger)
    cartHandler := handler.NewCartHandler(cartEngine, catalogService, orchestrator, logger)
    userHandler := handler.NewUserHandler(authService, logger)

    router := gin.New()
    router.Use(gin.Recovery())
    router.Use(middleware.Logger(logger))
    router.Use(middleware.RequestID())

    v1 := router.Group("/api/v1")
    {
        v1.POST("/auth/login", userHandler.Login)
        v1.POST("/auth/logout", userHandler.Logout)
        v1.GET("/health", func(c *gin.Context) {
            c.JSON(200, gin.H{"status": "healthy"})
        })

        authed := v1.Group("")
        authed.Use(auth.RequireAuth(authService))
        {
            authed.GET("/auth/me", userHandler.Me)

            authed.GET("/products", catalogHandler.ListProducts)
            authed.GET("/products/:id", catalogHandler.GetProduct)
            authed.GET("/categories", catalogHandler.ListCategories)

            authed.GET("/cart", cartHandler.GetCart)
            authed.POST("/cart/items", cartHandler.AddItem)
            authed.PATCH("/cart/items/:id", cartHandler.UpdateItem)
            authed.DELETE("/cart/items/:id", cartHandler.RemoveItem)
            authed.DELETE("/cart", cartHandler.ClearCart)

            authed.POST("/checkout", cartHandler.Checkout)
            authed.GET("/transactions", cartHandler.ListTransactions)
            authed.GET("/transactions/summary", cartHandler.TransactionSummary)

            admin := authed.Group("")
            admin.Use(auth.RequireAdmin())
            {
                admin.POST("/products", catalogHandler.CreateProduct)
                admin.PUT("/products/:id", catalogHandler.UpdateProduct)
                admin.DELETE("/products/:id", catalogHandler.DeleteProduct)

                admin.POST("/categories", catalogHandler.CreateCategory)
                admin.PUT("/categories/:id", catalogHandler.UpdateCategory)
                admin.DELETE("/categories/:id", catalogHandler.DeleteCategory)

                admin.GET("/users", userHandler.ListUsers)
                admin.POST("/users", userHandler.CreateUser)
                admin.PUT("/users/:id", userHandler.UpdateUser)
                admin.DELETE("/users/:id", userHandler.DeleteUser)
            }
        }
    }

    var tlsCfg pkgtls.TLSConfig
    if err := envconfig.Process("", &tlsCfg); err != nil {
        log.Fatal("Failed to load TLS config:", err)
    }

    serverTLS, err := pkgtls.LoadTLSConfig(&tlsCfg, logger)
    if err != nil {
        log.Fatal("Failed to load TLS config:", err)
    }
    defer pkgtls.Cleanup()

    srv := &http.Server{
        Addr:      ":" + cfg.Port,
        Handler:   router,
        TLSConfig: serverTLS,
    }

    go func() {
        logger.Info("Starting server", zap.String("port", cfg.Port))

        var err error
        if serverTLS != nil {
            go pkgtls.WatchCertificates(logger)
            err = srv.ListenAndServeTLS("", "")
        } else {
            err = srv.ListenAndServe()
        }
        if err != nil && err != http.ErrServerClosed {
            logger.Fatal("Failed to start server", zap.Error(err))
        }
    }()

    quit := make(chan os.Signal, 1)
    signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
    <-quit

    logger.Info("Shutting down server...")
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    if err := srv.Shutdown(shutdownCtx); err != nil {
        logger.Fatal("Server forced to shutdown", zap.Error(err))
    }
    logger.Info("Server exited")
}

func newStore(cfg *config.Config, logger *zap.Logger) (store.Store, error) {
    switch cfg.StoreDriver {
    case "redis":
        return store.NewRedisStore(cfg.RedisAddr, cfg.RedisPrefix, logger)
    case "dynamodb":
        client, err := store.NewDynamoDBClient(cfg)
        if err != nil {
            return nil, err
        }
        return store.NewDynamoStore(client, cfg.StateTable), nil
    default:
        logger.Info("Using in-memory state store")
        return store.NewMemoryStore(), nil
    }
}
