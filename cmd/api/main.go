package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/catcommerce/catcommerce-golang/internal/auth"
	"github.com/catcommerce/catcommerce-golang/internal/config"
	"github.com/catcommerce/catcommerce-golang/internal/database"
	"github.com/catcommerce/catcommerce-golang/internal/handlers"
	"github.com/catcommerce/catcommerce-golang/internal/repository"
	"github.com/catcommerce/catcommerce-golang/internal/routes"
	"github.com/catcommerce/catcommerce-golang/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Open(cfg.DB)
	if err != nil {
		logger.Fatal("failed to connect to database: " + err.Error())
	}
	defer db.Close()

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	cartRepo := repository.NewCartRepository(db)

	productSvc := service.NewProductService(productRepo, categoryRepo, logger)
	categorySvc := service.NewCategoryService(categoryRepo, productRepo, logger)
	customerSvc := service.NewCustomerService(customerRepo, logger)
	cartSvc := service.NewCartService(cartRepo, productRepo, logger)

	tokens := auth.NewTokenManager(cfg.JWT)

	h := handlers.New(productSvc, categorySvc, customerSvc, cartSvc, tokens, logger)
	router := routes.SetupRouter(h, tokens, customerSvc)

	logger.Info("starting API server on " + cfg.HTTPAddr)
	if err := router.Run(cfg.HTTPAddr); err != nil {
		logger.Fatal("server exited: " + err.Error())
	}
}
