package main

import (
	"log"
	"time"
	"usedcom_backend/config"
	"usedcom_backend/handlers"
	"usedcom_backend/internal/ws"
	"usedcom_backend/middleware"
	"usedcom_backend/models"
	"usedcom_backend/services"
	"usedcom_backend/utils"

	"github.com/gofiber/fiber/v2"
)

func main() {
	cfg := config.LoadConfig()

	db := config.ConnectDatabase(cfg)
	if err := config.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	config.SeedUsers(db)
	config.SeedProducts(db)

	hub := ws.NewHub()
	go hub.Run()

	catalog := services.NewCatalogService(db)
	broker := services.NewBrokerService(db, hub)

	tokenLifetime, err := time.ParseDuration(cfg.JWTExpiration)
	if err != nil {
		tokenLifetime = 72 * time.Hour
	}

	authHandler := handlers.NewAuthHandler(db, tokenLifetime)
	userHandler := handlers.NewUserHandler(db, catalog)
	categoryHandler := handlers.NewCategoryHandler(db)
	productHandler := handlers.NewProductHandler(catalog)
	brokerHandler := handlers.NewBrokerHandler(broker)
	uploadHandler := handlers.NewUploadHandler(cfg.UploadDir)
	wsHandler := handlers.NewWSHandler(hub)

	app := fiber.New(fiber.Config{
		AppName:      "Used.com Backend",
		ServerHeader: "Used.com Backend Server/1.0",
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Default 500 statuscode
			code := fiber.StatusInternalServerError
			msg := "Something went wrong!"

			// Retrieve the custom statuscode if it's a *fiber.Error
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				msg = e.Message
			}

			return c.Status(code).JSON(models.ErrorResponse(msg, nil))
		},
	})

	middleware.SetupMiddleware(app)

	// Static files for uploaded images
	app.Static("/uploads", "./uploads")

	api := app.Group("/api")

	// Health check endpoint
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "OK",
			"message":   "Used.com API is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Users
	users := api.Group("/users")
	users.Post("/register", authHandler.Register)
	users.Post("/login", authHandler.Login)
	users.Get("/me", utils.AuthMiddleware, userHandler.Me)
	users.Get("/me/favorites", utils.AuthMiddleware, userHandler.GetMyFavorites)
	users.Get("/me/products", utils.AuthMiddleware, productHandler.GetMyProducts)

	// Categories
	api.Get("/categories", categoryHandler.GetCategories)

	// Products
	products := api.Group("/products")
	products.Get("/", productHandler.GetProducts)
	products.Get("/:id", productHandler.GetProduct)
	products.Post("/", productHandler.CreateProduct)
	products.Put("/:id", productHandler.UpdateProduct)
	products.Delete("/:id", productHandler.DeleteProduct)
	products.Post("/:id/favorite", utils.AuthMiddleware, productHandler.ToggleFavorite)

	// Uploads
	api.Post("/upload", utils.AuthMiddleware, uploadHandler.UploadImage)

	// Broker
	brokerGroup := api.Group("/broker")
	brokerGroup.Post("/contact", brokerHandler.SubmitContact)

	admin := brokerGroup.Group("", utils.AuthMiddleware, utils.RequireAdmin)
	admin.Get("/stats", brokerHandler.GetStats)
	admin.Get("/inquiries", brokerHandler.GetInquiries)
	admin.Get("/inquiries/:id", brokerHandler.GetInquiry)
	admin.Put("/inquiries/:id/status", brokerHandler.UpdateInquiryStatus)
	admin.Post("/inquiries/:id/notes", brokerHandler.AddInquiryNotes)

	// Admin dashboard live feed
	app.Get("/ws/admin", wsHandler.UpgradeMiddleware, wsHandler.Handler())

	middleware.SetupErrorHandler(app)

	log.Printf("🚀 Server starting on %s:%s", cfg.Host, cfg.AppPort)
	if err := app.Listen(cfg.Host + ":" + cfg.AppPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
