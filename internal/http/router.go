package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/srokkala/Book-Management-App/internal/auth"
	"github.com/srokkala/Book-Management-App/internal/config"
	"github.com/srokkala/Book-Management-App/internal/http/handlers"
	"github.com/srokkala/Book-Management-App/internal/http/middlewares"
	"github.com/srokkala/Book-Management-App/internal/observability"
	"github.com/srokkala/Book-Management-App/internal/service"
)

// Stores is the injected storage abstraction; main picks the postgres or
// the in-memory implementations, tests inject fixtures.
type Stores struct {
	Users service.UserStore
	Books service.BookStore
}

type Options struct {
	Metrics  *observability.Prom
	Gatherer prometheus.Gatherer
	Redis    *redis.Client
	Ping     func() error
	Tracing  bool
}

func NewRouter(log *slog.Logger, cfg config.Config, stores Stores, opts Options) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))

	if opts.Tracing {
		r.Use(otelgin.Middleware("bookapp"))
	}

	if opts.Metrics != nil {
		r.Use(opts.Metrics.GinHandleMiddleware())
	}

	// ops endpoints
	health := handlers.NewHealthHandler(opts.Ping)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)

	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	// wire up services
	tokens := auth.NewManager(cfg.JWTSecret, cfg.JWTTTL())
	authn := service.NewAuthenticator(stores.Users, tokens)
	bookSvc := service.NewBookService(stores.Books)

	authHandler := handlers.NewAuthHandler(authn)
	booksHandler := handlers.NewBooksHandler(bookSvc)
	authMW := middlewares.NewAuthMiddleware(authn)

	// credential guessing is the only endpoint worth throttling
	limiter := middlewares.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow, opts.Redis)

	api := r.Group("/api")
	api.Use(middlewares.RequireJSON())

	authRoutes := api.Group("/auth")
	authRoutes.POST("/register", limiter.Middleware(middlewares.KeyByIP), authHandler.Register)
	authRoutes.POST("/login", limiter.Middleware(middlewares.KeyByIP), authHandler.Login)
	authRoutes.GET("", authMW.RequireAuth(), authHandler.Me)

	books := api.Group("/books")
	books.Use(authMW.RequireAuth())
	books.GET("", booksHandler.ListBooks)
	books.POST("", booksHandler.CreateBook)
	books.PUT("/:id", booksHandler.UpdateBook)
	books.DELETE("/:id", booksHandler.DeleteBook)

	return r
}
