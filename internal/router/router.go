package router

import (
	"net/http"

	"customers_backend/internal/handlers"
	"customers_backend/internal/middleware"
	"customers_backend/internal/repositories"
	"customers_backend/internal/services"
	"customers_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/heptiolabs/healthcheck"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options configures the cross-cutting parts of the engine.
type Options struct {
	AllowedOrigins []string
	// Registry receives HTTP and health-check metrics; nil means a fresh registry.
	Registry *prometheus.Registry
	// ReadinessChecks gate GET /ready, e.g. a database ping.
	ReadinessChecks map[string]healthcheck.Check
}

// New builds the gin engine with middleware, infrastructure endpoints and the API routes.
func New(customerRepo repositories.CustomerRepository, opts Options) *gin.Engine {
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(utils.GinLogger())
	engine.Use(middleware.NewMetrics(opts.Registry).Handler())

	config := cors.DefaultConfig()
	if len(opts.AllowedOrigins) > 0 {
		config.AllowOrigins = opts.AllowedOrigins
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", middleware.RequestIDHeader}
	config.ExposeHeaders = []string{middleware.RequestIDHeader}
	engine.Use(cors.New(config))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	health := healthcheck.NewMetricsHandler(opts.Registry, "customers")
	health.AddLivenessCheck("goroutine-threshold", healthcheck.GoroutineCountCheck(10000))
	for name, check := range opts.ReadinessChecks {
		health.AddReadinessCheck(name, check)
	}
	engine.GET("/live", gin.WrapF(health.LiveEndpoint))
	engine.GET("/ready", gin.WrapF(health.ReadyEndpoint))
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))

	Setup(engine, customerRepo)
	return engine
}

// Setup initializes the API routing for the application.
func Setup(engine *gin.Engine, customerRepo repositories.CustomerRepository) {
	customerService := services.NewCustomerService(customerRepo)
	customerHandler := handlers.NewCustomerHandler(customerService)

	apiV1 := engine.Group("/api/v1")
	SetupCustomerRoutes(apiV1, customerHandler)
}
