package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/yalatech/venuebook-backend/config"
	"github.com/yalatech/venuebook-backend/internal/admission"
	"github.com/yalatech/venuebook-backend/internal/catalog"
	"github.com/yalatech/venuebook-backend/internal/database"
	"github.com/yalatech/venuebook-backend/internal/handlers"
	"github.com/yalatech/venuebook-backend/internal/lifecycle"
	"github.com/yalatech/venuebook-backend/internal/middleware"
	"github.com/yalatech/venuebook-backend/internal/query"
	"github.com/yalatech/venuebook-backend/internal/services"
	"github.com/yalatech/venuebook-backend/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, relying on config and environment")
	}

	cfg, err := config.Load(".")
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if cfg.Redis.Enabled {
		if err := services.InitRedis(cfg.Redis.URL); err != nil {
			logrus.Warnf("Redis unavailable, caching disabled: %v", err)
		}
	}

	bookingStore := store.NewGormStore(db)
	resourceCatalog := catalog.New(cfg.Booking.ResourceLimits, cfg.Booking.DefaultCapacity)
	engine := admission.NewEngine(resourceCatalog, bookingStore, cfg.Booking.Cooldown())
	queries := query.NewService(bookingStore)
	manager := lifecycle.NewManager(bookingStore)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api")
	{
		bookings := api.Group("/bookings")
		{
			bookings.POST("", handlers.SubmitBooking(engine))
			bookings.GET("/approved", handlers.GetApprovedBookings(queries))
			bookings.GET("/upcoming", handlers.GetUpcomingBookings(queries))
			bookings.GET("/search", handlers.SearchBookings(queries))
		}

		api.GET("/qrcode", handlers.QRCodeImage(cfg.Server.PublicURL))
		api.POST("/admin/login", handlers.AdminLogin(cfg.Auth))

		admin := api.Group("/admin")
		admin.Use(middleware.AdminAuthMiddleware(cfg.Auth.JWTSecret))
		{
			admin.GET("/dashboard", handlers.GetDashboard(queries, cfg.Server.PublicURL))
			admin.POST("/bookings/:id/approve", handlers.ApproveBooking(manager))
			admin.DELETE("/bookings/:id", handlers.DeleteBooking(manager))
		}
	}

	logrus.Infof("Listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
