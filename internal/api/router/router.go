package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "petstock/docs" // registra a especificação OpenAPI
	"petstock/internal/api/product"
	"petstock/internal/api/respond"
	"petstock/internal/api/stock"
	"petstock/internal/api/user"
	"petstock/internal/pkg/cache"
	"petstock/internal/pkg/logger"
	"petstock/internal/pkg/middleware"
)

// maxBodyBytes limita o tamanho dos payloads JSON.
const maxBodyBytes = 10 << 20

// Deps reúne os Handlers e a infraestrutura já inicializados por injeção de dependências.
type Deps struct {
	ProductHandler *product.Handler
	StockHandler   *stock.Handler
	UserHandler    *user.Handler

	Auth         middleware.Authenticator
	LoginLimiter *middleware.LoginLimiter
	Cache        cache.Client // nil desliga o rate limit global
	Logger       logger.Logger

	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
	CORSAllowedOrigin    string
}

// endpoints é a lista anunciada na rota raiz e no 404.
var endpoints = map[string]string{
	"login":      "POST /auth/login",
	"perfil":     "GET /auth/profile",
	"productos":  "GET /productos",
	"producto":   "GET /productos/{id}",
	"movimiento": "POST /productos/movimiento",
	"stockBajo":  "GET /productos/stock-bajo",
	"reporte":    "GET /productos/reporte",
	"health":     "GET /ping",
	"docs":       "GET /swagger/index.html",
}

// NewRouter configura e retorna o roteador HTTP principal.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(chimw.Recoverer)
	r.Use(corsHandler(d.CORSAllowedOrigin))
	r.Use(middleware.BodyLimit(maxBodyBytes))
	if d.Cache != nil && d.RateLimitMaxRequests > 0 {
		r.Use(middleware.RateLimiter(d.Cache, d.RateLimitMaxRequests, d.RateLimitPeriod, d.Logger))
	}

	auth := middleware.NewAuthMiddleware(d.Auth, d.Logger)

	// --- Rotas utilitárias ---
	r.Get("/", welcomeHandler(d.Logger))
	r.Get("/ping", PingHandler)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// --- Autenticação ---
	r.Route("/auth", func(r chi.Router) {
		if d.LoginLimiter != nil {
			r.With(d.LoginLimiter.Middleware).Post("/login", d.UserHandler.LoginUserHandler)
		} else {
			r.Post("/login", d.UserHandler.LoginUserHandler)
		}
		r.With(auth).Get("/profile", d.UserHandler.ProfileHandler)
	})

	// --- Catálogo e estoque ---
	r.Route("/productos", func(r chi.Router) {
		r.Get("/", d.ProductHandler.ListProductsHandler)

		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Post("/movimiento", d.StockHandler.RegisterMovementHandler)
			r.Get("/stock-bajo", d.StockHandler.LowStockHandler)
			r.Get("/reporte", d.StockHandler.StockReportHandler)
		})

		r.Get("/{id}", d.ProductHandler.GetProductByIDHandler)
	})

	r.NotFound(notFoundHandler(d.Logger))
	r.MethodNotAllowed(methodNotAllowedHandler(d.Logger))

	return r
}

// corsHandler libera a origem configurada ("*" quando vazia) apenas para os métodos
// que a API serve. Preflights são respondidos pelo próprio middleware.
func corsHandler(allowedOrigin string) func(http.Handler) http.Handler {
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{allowedOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		MaxAge:         300, // segundos de cache do preflight no navegador
	})
}

func welcomeHandler(log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, log, http.StatusOK, map[string]interface{}{
			"state":     true,
			"message":   "API de inventário petstock",
			"version":   "1.0.0",
			"endpoints": endpoints,
		})
	}
}

func notFoundHandler(log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, log, http.StatusNotFound, map[string]interface{}{
			"state":              false,
			"code":               http.StatusNotFound,
			"category":           "ROUTE_NOT_FOUND",
			"message":            "Rota não encontrada: " + r.Method + " " + r.URL.Path,
			"availableEndpoints": endpoints,
		})
	}
}

func methodNotAllowedHandler(log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, log, http.StatusMethodNotAllowed, map[string]interface{}{
			"state":    false,
			"code":     http.StatusMethodNotAllowed,
			"category": "METHOD_NOT_ALLOWED",
			"message":  "Método não permitido: " + r.Method + " " + r.URL.Path,
		})
	}
}

// PingHandler é o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
