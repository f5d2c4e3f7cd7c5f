package api

import (
	"net/http"
	"warehouse-cost-service/internal/api/handlers"
	"warehouse-cost-service/internal/platform/obs"
	"warehouse-cost-service/internal/ports"
	"warehouse-cost-service/internal/services"

	"github.com/rs/cors"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// cache may be nil.
func NewRouter(engine *services.Engine, cache ports.QuoteCache, corsOrigins []string) http.Handler {
	mux := http.NewServeMux()

	quoteHandler := &handlers.QuoteHandler{Engine: engine, Cache: cache}
	catalogHandler := &handlers.CatalogHandler{Engine: engine}
	healthHandler := &handlers.HealthHandler{Engine: engine}

	mux.HandleFunc("/health", healthHandler.Get)
	mux.HandleFunc("/calculate-cost", quoteHandler.CalculateCost)
	mux.HandleFunc("/quotes", quoteHandler.Quote)
	mux.HandleFunc("/catalog", catalogHandler.Get)
	mux.Handle("/metrics", obs.Handler())

	return requestIDMiddleware(loggingMiddleware(newCORS(corsOrigins).Handler(mux)))
}

// newCORS allows the listed origins ("*" for any) and answers preflight requests with 204.
func newCORS(origins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPut,
			http.MethodPatch,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader, "X-Catalog-Fingerprint"},
	})
}
