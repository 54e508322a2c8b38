package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/storefront-demo/config"
	"github.com/example/storefront-demo/database"
	"github.com/example/storefront-demo/modules/api"
	"github.com/example/storefront-demo/modules/auth"
	"github.com/example/storefront-demo/modules/cache"
	"github.com/example/storefront-demo/modules/catalog"
	"github.com/example/storefront-demo/modules/customer"
	"github.com/example/storefront-demo/modules/receipt"
	"github.com/example/storefront-demo/modules/sales"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Storefront Demo ===")

	cfg := config.Load()

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	dbModule := database.NewModule(db, cfg.Database.Path)
	cacheModule := cache.NewModule(cfg.Cache)
	authModule := auth.NewModule(db, cfg.Auth)
	catalogModule := catalog.NewModule(db, cacheModule.Service())
	customerModule := customer.NewModule(db)
	salesModule := sales.NewModule(db)
	receiptModule := receipt.NewModule(cfg.Receipt, receipt.LogMailer{})
	apiModule := api.NewModule(cfg.HTTP,
		dbModule, cacheModule, authModule, catalogModule, customerModule, salesModule, receiptModule)

	// Independent modules first, then the modules that depend on them.
	app.Register(dbModule)
	app.Register(cacheModule)
	app.Register(authModule)
	app.Register(catalogModule) // Consumes sale events to drop cached stock
	app.Register(customerModule)
	app.Register(salesModule)   // Emits SaleCreated, SaleUpdated, SaleDeleted
	app.Register(receiptModule) // Depends on sales
	app.Register(apiModule)     // Depends on auth, catalog, customer, sales, receipt

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg config.Config) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("  Database: %s", cfg.Database.Path)
	if cfg.Cache.Enabled() {
		log.Printf("  Product cache: redis at %s (ttl %s)", cfg.Cache.RedisAddr, cfg.Cache.TTL)
	} else {
		log.Println("  Product cache: disabled (set REDIS_ADDR to enable)")
	}
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%d):", cfg.HTTP.Port)
	log.Println("")
	log.Println("  Public:")
	log.Println("  POST   /api/v1/auth/register          - Register a customer account")
	log.Println("  POST   /api/v1/auth/login             - Login and get tokens")
	log.Println("  POST   /api/v1/auth/refresh           - Refresh access token")
	log.Println("  GET    /api/v1/products               - List products")
	log.Println("  GET    /api/v1/products/:id           - Get product")
	log.Println("  GET    /health                        - Module health")
	log.Println("")
	log.Println("  Authenticated:")
	log.Println("  GET    /api/v1/profile                - Current user")
	log.Println("  POST   /api/v1/sales                  - Record a sale")
	log.Println("  GET    /api/v1/sales/:id              - Get sale")
	log.Println("  GET    /api/v1/sales/customer/:id     - Sales of a customer")
	log.Println("  GET    /api/v1/customers/:id          - Get customer")
	log.Println("  PUT    /api/v1/customers/:id          - Update customer")
	log.Println("  POST   /api/v1/receipts/:saleId       - Email a receipt")
	log.Println("")
	log.Println("  Admin:")
	log.Println("  GET    /api/v1/sales                  - List sales (page, pageSize)")
	log.Println("  PUT    /api/v1/sales/:id              - Replace a sale")
	log.Println("  DELETE /api/v1/sales/:id              - Delete a sale and restore stock")
	log.Println("  POST   /api/v1/products               - Create product")
	log.Println("  PUT    /api/v1/products/:id           - Update product")
	log.Println("  DELETE /api/v1/products/:id           - Deactivate product")
	log.Println("  GET    /api/v1/customers              - List customers")
	log.Println("  POST   /api/v1/customers              - Create customer")
	log.Println("  DELETE /api/v1/customers/:id          - Deactivate customer")
	log.Println("  GET    /api/v1/cache/stats            - Product cache counters")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
