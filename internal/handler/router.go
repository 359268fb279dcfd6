package handler

import (
	"net/http"

	"pdf-extractor/internal/config"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(container *config.Container) http.Handler {
	router := mux.NewRouter()

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"pdf-extractor"}`))
	}).Methods("GET")

	extractHandler := NewExtractHandler(
		container.Extractor,
		container.Inspector,
		container.Config,
		container.Logger,
	)

	router.HandleFunc("/extract", extractHandler.Extract).Methods("POST")
	router.HandleFunc("/extract-base64", extractHandler.ExtractBase64).Methods("POST")
	router.HandleFunc("/inspect", extractHandler.Inspect).Methods("POST")

	// The service fronts a local application; browser callers hit it
	// directly during development, so CORS stays permissive.
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		MaxAge: 300,
	})

	return c.Handler(router)
}
