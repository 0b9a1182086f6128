package routes

import "net/http"

// RegisterAllRoutes registers all application routes
func RegisterAllRoutes(mux *http.ServeMux) {
	RegisterSuggestionRoutes(mux)
	RegisterEmbeddingRoutes(mux)
}
