package routes

import (
	"net/http"

	"kairoplan/schedule-ai/handlers"
)

// RegisterSuggestionRoutes registers the suggestion lifecycle and
// generation endpoints.
func RegisterSuggestionRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /suggestions/generate", handlers.GenerateScheduleHandler)
	mux.HandleFunc("GET /suggestions", handlers.GetSuggestionsHandler)
	mux.HandleFunc("GET /suggestion", handlers.GetSingleSuggestionHandler)
	mux.HandleFunc("POST /suggestions/create", handlers.CreateSuggestionHandler)
	mux.HandleFunc("PATCH /suggestions/status", handlers.UpdateSuggestionStatusHandler)
	mux.HandleFunc("DELETE /suggestions/delete", handlers.DeleteSuggestionHandler)
}

// RegisterEmbeddingRoutes registers the vector-index maintenance
// endpoint.
func RegisterEmbeddingRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /embeddings/sync", handlers.SyncEmbeddingsHandler)
}
