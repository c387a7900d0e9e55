package http

import (
	"context"
	"net/http"

	"campusswap/internal/authz"
	obsmw "campusswap/internal/observability/middleware"
	"campusswap/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const welcome = "Welcome to the CampusSwap API!"

type RouterDeps struct {
	Auth        service.AuthService
	Items       service.ItemService
	Gate        *authz.Gate
	Realtime    http.Handler
	Health      func(ctx context.Context) error // nil means always healthy
	Metrics     http.Handler                    // nil means promhttp.Handler()
	CORSOrigins []string
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(obsmw.WithRequestAndTrace)
	r.Use(obsmw.WithMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: originsOrAll(d.CORSOrigins),
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID", "X-Trace-ID"},
		ExposedHeaders: []string{"X-Request-ID", "X-Trace-ID"},
		MaxAge:         300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(welcome))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if d.Health != nil {
			if err := d.Health(r.Context()); err != nil {
				http.Error(w, "unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	metricsHandler := d.Metrics
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Handle("/metrics", metricsHandler)

	ah := authHandler{auth: d.Auth}
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", ah.register)
		r.Post("/login", ah.login)
	})

	ih := itemHandler{items: d.Items}
	r.Route("/api/items", func(r chi.Router) {
		r.Get("/", ih.list)
		r.Get("/{id}", ih.get)

		r.Group(func(pr chi.Router) {
			pr.Use(d.Gate.Middleware)
			pr.Post("/", ih.create)
			pr.Put("/{id}", ih.update)
			pr.Delete("/{id}", ih.delete)
		})
	})

	if d.Realtime != nil {
		r.Get("/ws", d.Realtime.ServeHTTP)
	}

	return r
}

func originsOrAll(in []string) []string {
	if len(in) == 0 {
		return []string{"*"}
	}
	return in
}
