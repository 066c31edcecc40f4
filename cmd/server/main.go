package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"lyhu_portal/internal/config"
	"lyhu_portal/internal/database"
	"lyhu_portal/internal/events"
	"lyhu_portal/internal/handlers"
	"lyhu_portal/internal/logger"
	"lyhu_portal/internal/middleware"
	"lyhu_portal/internal/migrations"
	"lyhu_portal/internal/redis"
	"lyhu_portal/internal/repository"
	"lyhu_portal/internal/services"
	"lyhu_portal/pkg/whatsapp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func main() {
	// Load configuration
	cfg := config.Load()
	baseLog := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL, logger.GormLevel(cfg.LogLevel), baseLog)
	if err != nil {
		baseLog.WithError(err).Fatal("Failed to connect to database")
	}
	slots := repository.NewSlotRepository(db)

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		baseLog.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer redisClient.Close()

	instanceID := cfg.InstanceID
	if instanceID == "" {
		instanceID = uuid.NewString()
	}
	log := baseLog.WithField("instance", instanceID)

	// Order change fan-out: local subscribers plus other instances via Redis
	broker := events.NewBroker(16)
	relay := redisClient.NewEventRelay(instanceID, log)
	go func() {
		if err := relay.Forward(ctx, broker); err != nil {
			log.WithError(err).Error("Order event relay stopped")
		}
	}()

	// Initialize services
	userService, err := services.NewUserService(redisClient, services.UserOptions{
		RequirePassword: cfg.RequirePassword,
		DemoPassword:    cfg.DemoPassword,
		SessionTTL:      time.Duration(cfg.SessionTimeout) * time.Second,
	}, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize identity store")
	}
	catalogService := services.NewCatalogService()
	ctvLeadService := services.NewCtvLeadService(slots, log)
	salesLeadService := services.NewSalesLeadService(slots, log)
	orderService := services.NewOrderService(slots, broker, log, relay)
	cartService := services.NewCartService(slots, catalogService, orderService, log)
	statsService := services.NewStatsService(ctvLeadService, salesLeadService, orderService, cfg.LatestLeadsLimit)

	if err := migrations.RunMigrations(ctx, slots, orderService, log); err != nil {
		log.WithError(err).Fatal("Failed to migrate storage slots")
	}

	if cfg.WhatsAppEnabled() {
		whatsappClient := whatsapp.NewClient(cfg.WhatsAppAPIURL, cfg.WhatsAppUsername, cfg.WhatsAppPassword, cfg.WhatsAppPath)
		notifier := services.NewOrderNotifier(orderService, whatsappClient, cfg.WhatsAppNotifyPhone, log)
		go notifier.Run(ctx)
		log.Info("WhatsApp order notifications enabled")
	}

	// Setup routes
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(log), middleware.LoadUser(userService, log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "instance": instanceID})
	})

	handlers.RegisterRoutes(router, handlers.Handlers{
		Auth:     handlers.NewAuthHandler(userService, time.Duration(cfg.SessionTimeout)*time.Second, cfg.GinMode == gin.ReleaseMode, log),
		Ctv:      handlers.NewCtvHandler(ctvLeadService, log),
		Sales:    handlers.NewSalesHandler(salesLeadService, orderService, cartService, catalogService, log),
		Customer: handlers.NewCustomerHandler(cartService, orderService, catalogService, log),
		Admin:    handlers.NewAdminHandler(statsService, orderService, userService, catalogService, log),
		Events:   handlers.NewEventsHandler(orderService, 25*time.Second),
	})

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
		// event streams end with the process context
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
	go func() {
		log.WithField("port", cfg.ServerPort).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
}
