package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires every endpoint of h behind CORS and request logging.
func NewRouter(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(h.logger))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))

	r.Get("/health", h.Health)

	r.Route("/curve", func(rr chi.Router) {
		rr.Post("/evaluate", h.EvaluateCurve)
		rr.Post("/ranges", h.CurveRanges)
	})

	r.Route("/parlay", func(rr chi.Router) {
		rr.Post("/evaluate", h.EvaluateParlay)
		rr.Post("/heatmap", h.ParlayHeatmap)
		rr.Get("/data-types", h.DataTypes)
	})

	r.Post("/contract/input", h.ContractInput)

	r.Route("/presets", func(rr chi.Router) {
		rr.Get("/", h.ListPresets)
		rr.Get("/{name}", h.GetPreset)
	})

	return r
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
