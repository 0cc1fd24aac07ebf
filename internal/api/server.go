package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"gotix/internal/auth"
	"gotix/internal/cache"
	"gotix/internal/config"
	"gotix/internal/database"
	"gotix/internal/handlers"
	"gotix/internal/logger"
	"gotix/internal/messaging"
	"gotix/internal/middleware"
	"gotix/internal/monitoring"
	"gotix/internal/repository"
	"gotix/internal/search"
	"gotix/internal/service"

	"github.com/gin-gonic/gin"
)

// Server is the HTTP API server with all its backing connections
type Server struct {
	router   *gin.Engine
	config   *config.Config
	db       *database.DB
	nats     *messaging.NATSClient
	redis    *cache.Client
	services *service.Services
}

// NewServer wires the whole application. Postgres is mandatory; Redis,
// Elasticsearch and NATS are optional and skipped when not configured.
func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	if err := db.RunMigrations(); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	var natsClient *messaging.NATSClient
	if cfg.NATS.URL != "" {
		natsClient, err = messaging.NewNATSClient(cfg.NATS)
		if err != nil {
			logger.Fatal("Failed to connect to NATS", "error", err)
		}
	} else {
		slog.Info("NATS not configured, lifecycle events disabled")
	}

	var redisClient *cache.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = cache.NewClient(cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", "error", err)
		}
	} else {
		slog.Info("Redis not configured, listing cache disabled")
	}

	var searchClient *search.ElasticsearchClient
	if cfg.Search.Enabled {
		searchClient, err = search.NewElasticsearchClient(cfg.Search)
		if err != nil {
			logger.Fatal("Failed to connect to Elasticsearch", "error", err)
		}
	} else {
		slog.Info("Elasticsearch disabled, search falls back to the database")
	}

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)
	repos := repository.NewRepositories(db)

	var publisher messaging.Publisher
	if natsClient != nil {
		publisher = natsClient
	}
	services := service.NewServices(repos, issuer, publisher, searchClient, redisClient)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(monitoring.HTTPMetrics())

	server := &Server{
		router:   router,
		config:   cfg,
		db:       db,
		nats:     natsClient,
		redis:    redisClient,
		services: services,
	}

	server.setupRoutes(issuer)

	return server
}

func (s *Server) setupRoutes(issuer *auth.TokenIssuer) {
	h := handlers.NewHandlers(s.services)

	authed := middleware.Authn(issuer)
	admin := middleware.RequireAdmin()

	api := s.router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.Register)
			authGroup.POST("/login", h.Login)
			authGroup.POST("/activation", h.Activation)
			authGroup.GET("/me", authed, h.Me)
		}

		category := api.Group("/category")
		{
			category.GET("", h.ListCategories)
			category.GET("/:id", h.GetCategory)
			category.POST("", authed, admin, h.CreateCategory)
			category.PUT("/:id", authed, admin, h.UpdateCategory)
			category.DELETE("/:id", authed, admin, h.DeleteCategory)
		}

		banners := api.Group("/banners")
		{
			banners.GET("", h.ListBanners)
			banners.GET("/:id", h.GetBanner)
			banners.POST("", authed, admin, h.CreateBanner)
			banners.PUT("/:id", authed, admin, h.UpdateBanner)
			banners.DELETE("/:id", authed, admin, h.DeleteBanner)
		}

		events := api.Group("/events")
		{
			events.GET("", h.ListEvents)
			events.GET("/:id", h.GetEvent)
			events.GET("/:id/slug", h.GetEventBySlug)
			events.POST("", authed, admin, h.CreateEvent)
			events.PUT("/:id", authed, admin, h.UpdateEvent)
			events.DELETE("/:id", authed, admin, h.DeleteEvent)
		}

		tickets := api.Group("/tickets")
		{
			tickets.GET("/:id", h.GetTicket)
			tickets.GET("/:id/events", h.ListTicketsByEvent)
			tickets.GET("", authed, admin, h.ListTickets)
			tickets.POST("", authed, admin, h.CreateTicket)
			tickets.PUT("/:id", authed, admin, h.UpdateTicket)
			tickets.DELETE("/:id", authed, admin, h.DeleteTicket)
		}

		orders := api.Group("/orders")
		orders.Use(authed)
		{
			orders.POST("", h.CreateOrder)
			orders.GET("", admin, h.ListOrders)
			orders.GET("/:orderId", h.GetOrder)
			orders.PUT("/:orderId/complete", h.CompleteOrder)
			orders.PUT("/:orderId/pending", h.PendingOrder)
			orders.PUT("/:orderId/cancel", h.CancelOrder)
			orders.DELETE("/:orderId/remove", h.DeleteOrder)
		}

		api.GET("/orders-history", authed, h.ListMyOrders)

		regions := api.Group("/regions")
		{
			regions.GET("", h.ListProvinces)
			regions.GET("/:id/province", h.GetProvince)
			regions.GET("/:id/regency", h.GetRegencies)
			regions.GET("/:id/district", h.GetDistricts)
			regions.GET("/:id/village", h.GetVillages)
		}
		api.GET("/regions-search", h.SearchRegions)
	}

	s.router.GET("/health", s.healthCheck)
	s.router.GET(s.config.MetricsPath, monitoring.Handler())
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "gotix-api",
		"version": "1.0.0",
	})
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter exposes the router for tests
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup closes the backing connections
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			slog.Error("Error closing Redis connection", "error", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			slog.Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
