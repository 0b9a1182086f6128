package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"kairoplan/schedule-ai/apperrors"
	"kairoplan/schedule-ai/config"
	"kairoplan/schedule-ai/embeddings"
	"kairoplan/schedule-ai/llm"
	"kairoplan/schedule-ai/supabase"
	"kairoplan/schedule-ai/synthesis"
	"kairoplan/schedule-ai/telemetry"
	"kairoplan/schedule-ai/types"
)

// GenerateScheduleHandler triggers one synchronous generation run for
// the authenticated user and returns the persisted suggestions.
func GenerateScheduleHandler(w http.ResponseWriter, r *http.Request) {
	client, userID, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	embedder := embeddings.NewOpenAIEmbedder()
	strategy := &synthesis.MultiStageStrategy{
		Aggregator: &telemetry.Aggregator{Store: supabase.TelemetryStore{Client: client}},
		Retriever: &embeddings.Retriever{
			Embedder: embedder,
			Index:    &supabase.VectorIndex{Client: client},
		},
		Completer: llm.NewOpenAIClient(),
		Writer:    supabase.SuggestionStore{Client: client},
	}

	suggestions, err := strategy.GenerateWeek(r.Context(), userID)
	if err != nil {
		config.Logger.Error("Schedule generation failed:", err)
		writeError(w, "Failed to generate schedule", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, types.SuggestionListResponse{
		Success:     true,
		Suggestions: suggestions,
		Total:       len(suggestions),
	})
}

func GetSuggestionsHandler(w http.ResponseWriter, r *http.Request) {
	client, userID, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query()
	status := query.Get("status")
	if status != "" && status != types.SuggestionPending && status != types.SuggestionAccepted && status != types.SuggestionRejected {
		writeError(w, "Invalid status filter", http.StatusBadRequest)
		return
	}

	page, _ := strconv.Atoi(query.Get("page"))
	perPage, _ := strconv.Atoi(query.Get("per_page"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	suggestions, err := supabase.ListSuggestedEvents(client, userID, status, page, perPage)
	if err != nil {
		config.Logger.Error("Failed to list suggestions:", err)
		writeError(w, "Failed to fetch suggestions", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, types.SuggestionListResponse{
		Success:     true,
		Suggestions: suggestions,
		Total:       len(suggestions),
		Page:        page,
		PerPage:     perPage,
	})
}

func GetSingleSuggestionHandler(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, "Missing suggestion ID", http.StatusBadRequest)
		return
	}

	client, userID, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	suggestion, err := supabase.GetSuggestedEvent(client, id, userID)
	if err != nil {
		config.Logger.Error("Failed to fetch suggestion:", err)
		writeError(w, "Suggestion not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, types.SuggestionResponse{
		Success:    true,
		Suggestion: &suggestion,
	})
}

// CreateSuggestionHandler stores a manually-authored suggestion outside
// a generation run.
func CreateSuggestionHandler(w http.ResponseWriter, r *http.Request) {
	var suggestion types.SuggestedEvent
	if err := json.NewDecoder(r.Body).Decode(&suggestion); err != nil {
		config.Logger.Error("Failed to decode suggestion JSON:", err)
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	if suggestion.Title == "" || suggestion.SuggestedStartTime.IsZero() || suggestion.SuggestedEndTime.IsZero() {
		writeError(w, "Missing title or suggested times", http.StatusBadRequest)
		return
	}
	if suggestion.Priority < 1 || suggestion.Priority > 5 {
		writeError(w, "Priority must be between 1 and 5", http.StatusBadRequest)
		return
	}

	client, userID, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	suggestion.UserID = userID
	saved, err := supabase.InsertAndReturnSuggestedEvent(client, suggestion)
	if err != nil {
		config.Logger.Error("Failed to create suggestion:", err)
		writeError(w, "Failed to create suggestion", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, types.SuggestionResponse{
		Success:    true,
		Suggestion: &saved,
	})
}

type updateStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// UpdateSuggestionStatusHandler applies the one-way lifecycle
// transition. Illegal transitions come back as 409.
func UpdateSuggestionStatusHandler(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Logger.Error("Failed to decode status update JSON:", err)
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	if req.ID == "" {
		writeError(w, "Missing suggestion ID", http.StatusBadRequest)
		return
	}
	if req.Status != types.SuggestionAccepted && req.Status != types.SuggestionRejected {
		writeError(w, "Status must be accepted or rejected", http.StatusBadRequest)
		return
	}

	client, userID, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	updated, err := supabase.UpdateSuggestedEventStatus(client, req.ID, userID, req.Status)
	if err != nil {
		if errors.Is(err, apperrors.ErrLifecycleViolation) {
			writeError(w, "Suggestion status can only move from pending", http.StatusConflict)
			return
		}
		config.Logger.Error("Failed to update suggestion status:", err)
		writeError(w, "Failed to update suggestion", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, types.SuggestionResponse{
		Success:    true,
		Suggestion: &updated,
	})
}

func DeleteSuggestionHandler(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, "Missing suggestion ID", http.StatusBadRequest)
		return
	}

	client, userID, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := supabase.DeleteSuggestedEvent(client, id, userID); err != nil {
		config.Logger.Error("Failed to delete suggestion:", err)
		writeError(w, "Could not delete suggestion", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, types.DeleteSuggestionResponse{
		Success: true,
		Message: "Suggestion deleted",
	})
}
