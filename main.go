package main

import (
	"log/slog"
	"net/http"
	"os"

	"gorm.io/gorm"

	"github.com/ormsample/inventory/app/categories"
	"github.com/ormsample/inventory/app/maintenance"
	"github.com/ormsample/inventory/app/products"
	"github.com/ormsample/inventory/config"
	"github.com/ormsample/inventory/database"
	"github.com/ormsample/inventory/models"
)

// storeResetter ties the destructive schema reset to the cache
// invalidation it forces on the repositories.
type storeResetter struct {
	db           *gorm.DB
	productsRepo *models.ProductsRepository
}

func (s *storeResetter) ResetDatabase() error {
	if err := database.Reset(s.db); err != nil {
		return err
	}
	s.productsRepo.Invalidate()
	return nil
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration error", "error", err)
		os.Exit(1)
	}

	db, err := database.Open(cfg)
	if err != nil {
		logger.Error("failed to open store", "provider", cfg.Provider, "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	productsRepo := models.NewProductsRepository(db)
	categoriesRepo := models.NewCategoriesRepository(db)

	productsHandler := products.NewProductsHandler(productsRepo)
	categoriesHandler := categories.NewCategoryHandler(categoriesRepo)
	maintenanceHandler := maintenance.NewMaintenanceHandler(&storeResetter{
		db:           db,
		productsRepo: productsRepo,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", productsHandler.HandleList)
	mux.HandleFunc("POST /products", productsHandler.HandleCreate)
	mux.HandleFunc("PUT /products/{id}", productsHandler.HandleUpdate)
	mux.HandleFunc("DELETE /products/{id}", productsHandler.HandleDelete)
	mux.HandleFunc("GET /categories", categoriesHandler.HandleGetAll)
	mux.HandleFunc("POST /categories", categoriesHandler.HandleCreate)
	mux.HandleFunc("DELETE /categories/{id}", categoriesHandler.HandleDelete)
	mux.HandleFunc("POST /maintenance/reset", maintenanceHandler.HandleReset)

	logger.Info("inventory app ready", "provider", cfg.Provider, "addr", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
