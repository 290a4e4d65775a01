package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"loja-api/config"
	"loja-api/internal/catalog"
	"loja-api/internal/cleanup"
	"loja-api/internal/database"
	"loja-api/internal/events"
	"loja-api/internal/handlers"
	"loja-api/internal/hashing"
	"loja-api/internal/logger"
	"loja-api/internal/payment"
	"loja-api/internal/ratelimit"
	"loja-api/internal/repository"
	"loja-api/internal/router"
	"loja-api/internal/service"
	"loja-api/internal/token"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	loginMaxAttempts = 5
	loginWindow      = 15 * time.Minute
	cleanupInterval  = time.Hour
	shutdownTimeout  = 10 * time.Second
)

// @title       Loja API
// @version     1.0
// @description API da loja: carrinho, pedidos, pagamentos e entrega.
// @BasePath    /
func main() {
	_ = godotenv.Load()

	isDev := os.Getenv("APP_ENV") != "production"
	logger.Init(isDev)
	defer logger.Sync()
	log := logger.L()

	cfg := config.Load(log)

	db := database.Connect(&cfg.DB, log)
	defer database.Close(db, log)

	repo := repository.New(db)
	hasher := hashing.NewArgon2()
	tokens := token.NewHSProvider(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)

	var limiter service.Limiter
	if cfg.Redis.Enabled {
		rl, err := ratelimit.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			loginMaxAttempts, loginWindow, log)
		if err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer rl.Close()
		limiter = rl
		log.Info("login rate limiting backed by redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		limiter = ratelimit.NewMemory(loginMaxAttempts, loginWindow)
		log.Info("login rate limiting in memory (single instance only)")
	}

	var bus service.EventBus
	if cfg.Kafka.Enabled {
		producer := events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		defer producer.Close()
		bus = producer
		log.Info("kafka producer enabled", zap.Strings("brokers", cfg.Kafka.Brokers))
	}

	cms := catalog.NewClient(cfg.CMS.BaseURL, cfg.CMS.Token, log)
	gateway := payment.NewClient(cfg.PagBank.BaseURL, cfg.PagBank.Token,
		cfg.PagBank.RedirectURL, cfg.PagBank.NotificationURL, log)

	authSvc := service.NewAuthService(repo.Customers, repo.Sessions, hasher, tokens,
		limiter, cfg.JWT.SessionExp, log)
	cartSvc := service.NewCartService(cms, cfg.Checkout.PriceTolerance, log)
	orderSvc := service.NewOrderService(repo.Orders, repo.History, repo.Notifications,
		repo.Customers, hasher, gateway, bus, cfg.Checkout.FreteAdicional, log)
	statusSvc := service.NewStatusService(repo.Orders, repo.History,
		cfg.Admin.StatusActors, bus, log)
	addressSvc := service.NewAddressService(repo.Addresses, log)
	freteSvc := service.NewFreteService(cfg.Checkout.FreteGratisMinimo, cfg.Checkout.Transportadora)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go cleanup.New(db, log).Run(ctx, cleanupInterval)

	r := router.New(router.Deps{
		Auth:       authSvc,
		AuthH:      handlers.NewAuthHandler(authSvc, int(cfg.JWT.SessionExp.Seconds()), log),
		Cart:       handlers.NewCartHandler(cartSvc, log),
		Orders:     handlers.NewOrderHandler(orderSvc, log),
		Status:     handlers.NewStatusHandler(statusSvc, log),
		Webhooks:   handlers.NewWebhookHandler(orderSvc, log),
		Addresses:  handlers.NewAddressHandler(addressSvc, log),
		Frete:      handlers.NewFreteHandler(freteSvc, log),
		AdminToken: cfg.Admin.Token,
		Log:        log,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info("http server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown failed", zap.Error(err))
	}
	log.Info("server stopped")
}
