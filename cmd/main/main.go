package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"muskan-shop/internal/app"
	"muskan-shop/internal/blog"
	"muskan-shop/internal/cart"
	"muskan-shop/internal/catalog"
	"muskan-shop/internal/db"
	"muskan-shop/internal/etl"
	handlersBlog "muskan-shop/internal/handlers/blog"
	handlersCart "muskan-shop/internal/handlers/cart"
	handlersCatalog "muskan-shop/internal/handlers/catalog"
	handlersContact "muskan-shop/internal/handlers/contact"
	handlersInventory "muskan-shop/internal/handlers/inventory"
	handlersNewsletter "muskan-shop/internal/handlers/newsletter"
	handlersOffer "muskan-shop/internal/handlers/offer"
	handlersOrder "muskan-shop/internal/handlers/order"
	handlersReview "muskan-shop/internal/handlers/review"
	handlersSession "muskan-shop/internal/handlers/session"
	"muskan-shop/internal/inventory"
	"muskan-shop/internal/kafka"
	"muskan-shop/internal/middleware"
	"muskan-shop/internal/newsletter"
	"muskan-shop/internal/offer"
	"muskan-shop/internal/order"
	"muskan-shop/internal/review"
	"muskan-shop/internal/search"
	"muskan-shop/internal/session"

	_ "github.com/lib/pq"
)

const (
	cfgPath = "config/config.yaml"
	envPath = ".env"
)

func main() {
	// init logger
	zapLogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}

	logger := zapLogger.Sugar()
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			logger.Warnf("error to sync logger: %v", err)
		}
	}()

	if err = app.LoadDotEnv(envPath); err != nil {
		logger.Fatalf("error to load .env: %v", err)
	}

	// парсим конфиг
	c, err := app.NewConfig(cfgPath)
	if err != nil {
		logger.Fatalf("error to parsing config: %v", err)
	}

	// init db
	database, err := sql.Open("postgres", c.CfgDB.DSN())
	if err != nil {
		logger.Fatalf("error to database start: %v", err)
	}
	defer database.Close()

	database.SetMaxOpenConns(c.MaxOpenConns)
	if err := database.Ping(); err != nil {
		logger.Fatalf("Failed to get response to ping: %v", err)
	}

	if err := db.RunMigrations(database, logger); err != nil {
		logger.Fatalf("error to apply migrations: %v", err)
	}

	// init redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     c.CfgRedis.Addr,
		Password: c.CfgRedis.Password,
		DB:       c.CfgRedis.DB,
	})
	defer redisClient.Close()

	// init elasticsearch
	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: c.CfgES.Addresses,
	})
	if err != nil {
		logger.Fatalf("error to create elasticsearch client: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	productIndex := search.NewProductIndex(esClient, logger, c.CfgES.Index)
	if err := productIndex.EnsureIndex(ctx); err != nil {
		// поиск деградирует до поиска по базе
		logger.Warnw("elasticsearch index is not ready", "index", c.CfgES.Index, "err", err)
	}

	// init kafka
	var producer kafka.EventProducer = &kafka.NopProducer{Logger: logger}
	if len(c.CfgKafka.Brokers) > 0 {
		p := kafka.NewProducer(c.CfgKafka.Brokers, c.CfgKafka.Topic, logger)
		defer p.Close()
		producer = p
	}

	// init repository
	productRepository := catalog.NewProductDBRepository(database, logger)
	inventoryRepository := inventory.NewCachedRepository(
		inventory.NewInventoryDBRepository(database, logger), redisClient, logger, c.InventoryCacheTTL,
	)
	offerRepository := offer.NewOfferDBRepository(database, logger)
	orderRepository := order.NewOrderDBRepository(database, logger)
	postRepository := blog.NewPostDBRepository(database, logger)
	subscriberRepository := newsletter.NewSubscriberDBRepository(database, logger)
	reviewRepository := review.NewReviewDBRepository(database, logger)
	sessionRepository := session.NewSessionRepository(redisClient, logger, c.Secret, c.SessionDuration)
	cartStore := cart.NewRedisStore(redisClient, logger, c.CfgCart.TTL)

	// init etl
	pipeline := etl.NewPipeline(
		etl.NewPostgresExtractor(database, logger),
		etl.NewTransformer(logger),
		etl.NewElasticLoader(productIndex, logger, database),
		logger,
		c.ETLTimeout,
	)
	go pipeline.Run(ctx)

	// init handlers
	var shopPhone string
	if len(c.CfgShop.Phones) > 0 {
		shopPhone = c.CfgShop.Phones[0]
	}

	catalogHandlers := handlersCatalog.NewCatalogHandler(logger, productRepository, inventoryRepository, productIndex, producer)
	cartHandlers := handlersCart.NewCartHandler(
		logger,
		cartStore,
		productRepository,
		offerRepository,
		orderRepository,
		producer,
		handlersCart.Contact{WhatsAppNumber: c.CfgShop.WhatsAppNumber, Phone: shopPhone},
		c.CfgCart.KeyPrefix,
	)
	offerHandlers := handlersOffer.NewOfferHandler(logger, offerRepository)
	orderHandlers := handlersOrder.NewOrderHandler(logger, order.NewTracker(orderRepository))
	inventoryHandlers := handlersInventory.NewInventoryHandler(logger, inventoryRepository)
	blogHandlers := handlersBlog.NewBlogHandler(logger, postRepository)
	newsletterHandlers := handlersNewsletter.NewNewsletterHandler(logger, subscriberRepository)
	reviewHandlers := handlersReview.NewReviewHandler(logger, reviewRepository)
	contactHandlers := handlersContact.NewContactHandler(logger, handlersContact.Shop{
		Name:           c.CfgShop.Name,
		WhatsAppNumber: c.CfgShop.WhatsAppNumber,
		Phones:         c.CfgShop.Phones,
		Address:        c.CfgShop.Address,
		MapsQuery:      c.CfgShop.MapsQuery,
		Hours:          c.CfgShop.Hours,
	})
	sessionHandlers := handlersSession.NewSessionHandler(logger, sessionRepository)

	// init router
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Ручки корзины требуют сессию
	cartRouter := r.PathPrefix("/api/cart").Subrouter()
	cartRouter.Use(middleware.Session(sessionRepository, logger))

	cartRouter.HandleFunc("", cartHandlers.GetCart).Methods("GET")
	cartRouter.HandleFunc("", cartHandlers.ClearCart).Methods("DELETE")
	cartRouter.HandleFunc("/items", cartHandlers.AddItem).Methods("POST")
	cartRouter.HandleFunc("/items/{productID}", cartHandlers.UpdateItem).Methods("PUT")
	cartRouter.HandleFunc("/items/{productID}", cartHandlers.RemoveItem).Methods("DELETE")
	cartRouter.HandleFunc("/promo", cartHandlers.ApplyPromo).Methods("POST")
	cartRouter.HandleFunc("/checkout", cartHandlers.Checkout).Methods("POST")

	// Публичные ручки, сессия только для событий аналитики
	publicRouter := r.PathPrefix("/api").Subrouter()
	publicRouter.Use(middleware.OptionalSession(sessionRepository))

	publicRouter.HandleFunc("/session", sessionHandlers.Start).Methods("POST")

	publicRouter.HandleFunc("/products", catalogHandlers.List).Methods("GET")
	publicRouter.HandleFunc("/products/search", catalogHandlers.Search).Methods("GET")
	publicRouter.HandleFunc("/products/{id}", catalogHandlers.GetByID).Methods("GET")
	publicRouter.HandleFunc("/categories", catalogHandlers.Categories).Methods("GET")

	publicRouter.HandleFunc("/offers", offerHandlers.ListActive).Methods("GET")
	publicRouter.HandleFunc("/orders/{number}", orderHandlers.Track).Methods("GET")

	publicRouter.HandleFunc("/inventory", inventoryHandlers.List).Methods("GET")
	publicRouter.HandleFunc("/inventory/{productID}", inventoryHandlers.GetByProductID).Methods("GET")

	publicRouter.HandleFunc("/blog", blogHandlers.List).Methods("GET")
	publicRouter.HandleFunc("/blog/{slug}", blogHandlers.GetBySlug).Methods("GET")

	publicRouter.HandleFunc("/newsletter", newsletterHandlers.Subscribe).Methods("POST")

	publicRouter.HandleFunc("/reviews", reviewHandlers.List).Methods("GET")
	publicRouter.HandleFunc("/reviews", reviewHandlers.Create).Methods("POST")

	publicRouter.HandleFunc("/contact", contactHandlers.Info).Methods("GET")
	publicRouter.HandleFunc("/contact/inquiry", contactHandlers.Inquiry).Methods("POST")

	logger.Infow("starting server",
		"type", "START",
		"addr", c.ServerPort,
	)

	srv := &http.Server{
		Addr:         c.ServerPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("can't start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infow("shutting down server", "type", "STOP")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
}
