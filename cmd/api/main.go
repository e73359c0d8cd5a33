package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jigmet/ladakh-tourism-backend/internal/database"
	"github.com/jigmet/ladakh-tourism-backend/internal/handlers"
	"github.com/jigmet/ladakh-tourism-backend/internal/lifecycle"
	"github.com/jigmet/ladakh-tourism-backend/internal/middleware"
	"github.com/jigmet/ladakh-tourism-backend/internal/models"
	"github.com/jigmet/ladakh-tourism-backend/internal/services"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	// Initialize database (pool is configured and migrations run inside)
	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Redis
	if err := services.InitRedis(); err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}

	// Initialize Storage (S3 or local fallback)
	if err := services.InitStorage(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	rules := lifecycle.RulesFromEnv()

	// Initialize WebSocket hub
	hub := services.NewHub()
	go hub.Run()

	// Initialize router
	r := gin.Default()

	// Configure CORS
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	// Serve locally stored uploads
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "/app/uploads"
	}
	r.Static("/uploads", uploadDir)

	// Routes
	api := r.Group("/api")
	{
		// Public routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register(db))
			auth.POST("/login", handlers.Login(db))
		}

		api.GET("/bikes", handlers.GetBikes(db))
		api.GET("/alerts", handlers.GetActiveAlerts(db))

		// WebSocket connection
		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocketHandler(hub))

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			users := protected.Group("/users")
			{
				users.GET("/profile", handlers.GetProfile(db))
				users.PUT("/profile", handlers.UpdateProfile(db))
			}

			bikes := protected.Group("/bikes")
			bikes.Use(middleware.RequireRole(models.RoleVendor))
			{
				bikes.POST("", handlers.CreateBike(db))
				bikes.POST("/photo", handlers.UploadBikePhoto())
				bikes.PUT("/:id/status", handlers.UpdateBikeStatus(db, rules))
			}

			bookings := protected.Group("/bookings")
			{
				bookings.POST("", middleware.RequireRole(models.RoleTourist), handlers.CreateBooking(db, hub, rules))
				bookings.GET("/:touristId", handlers.GetTouristBookings(db))
				bookings.POST("/:id/confirm", handlers.ConfirmBooking(db, hub))
				bookings.POST("/:id/cancel", handlers.CancelBooking(db, hub))
				bookings.POST("/:id/complete", handlers.CompleteBooking(db, hub))
			}

			permits := protected.Group("/permits")
			{
				permits.GET("", handlers.GetPermits(db))
				permits.POST("", middleware.RequireRole(models.RoleTourist), handlers.CreatePermit(db))
				permits.PUT("/:id/status", middleware.RequireRole(models.RoleGovernment), handlers.UpdatePermitStatus(db, rules))
			}

			alerts := protected.Group("/alerts")
			alerts.Use(middleware.RequireRole(models.RoleGovernment))
			{
				alerts.POST("/send", handlers.SendAlert(db, hub))
				alerts.PATCH("/:id/deactivate", handlers.DeactivateAlert(db))
			}
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Explicit teardown: stop accepting requests, then release the pools.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := services.CloseRedis(); err != nil {
		log.Printf("Redis close error: %v", err)
	}
	if err := database.Close(db); err != nil {
		log.Printf("Database close error: %v", err)
	}
}
