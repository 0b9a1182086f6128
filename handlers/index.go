package handlers

import (
	"net/http"
	"time"

	"kairoplan/schedule-ai/config"
	"kairoplan/schedule-ai/embeddings"
	"kairoplan/schedule-ai/supabase"
	"kairoplan/schedule-ai/types"
)

type syncResponse struct {
	Success bool `json:"success"`
	Queued  int  `json:"queued"`
}

// SyncEmbeddingsHandler re-indexes the caller's recent engineering
// artifacts and calendar events into the vector store. Per-item
// embedding failures are logged inside the indexer and never fail the
// request.
func SyncEmbeddingsHandler(w http.ResponseWriter, r *http.Request) {
	client, userID, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	since := time.Now().AddDate(0, 0, -config.Pipeline.LookbackDays)

	artifacts, err := supabase.GetRecentArtifacts(client, userID, since)
	if err != nil {
		config.Logger.Error("Failed to fetch artifacts for indexing:", err)
		writeError(w, "Failed to fetch artifacts", http.StatusInternalServerError)
		return
	}

	calendarEvents, err := supabase.GetCalendarEventsBetween(client, userID, since, time.Now())
	if err != nil {
		config.Logger.Error("Failed to fetch calendar events for indexing:", err)
		writeError(w, "Failed to fetch calendar events", http.StatusInternalServerError)
		return
	}

	items := make([]embeddings.Item, 0, len(artifacts)+len(calendarEvents))
	for _, art := range artifacts {
		items = append(items, embeddings.Item{
			ID:      art.ID,
			Type:    artifactSourceType(art.Kind),
			Content: art.Title + "\n" + art.Body,
			Metadata: map[string]interface{}{
				"status": art.Status,
				"url":    art.URL,
			},
		})
	}
	for _, ev := range calendarEvents {
		items = append(items, embeddings.Item{
			ID:      ev.ID,
			Type:    embeddings.SourceCalendarEvent,
			Content: ev.Title + "\n" + ev.Description,
			Metadata: map[string]interface{}{
				"startTime": ev.StartTime.Format(time.RFC3339),
			},
		})
	}

	indexer := embeddings.NewIndexer(embeddings.NewOpenAIEmbedder(), &supabase.VectorIndex{Client: client})
	indexer.EmbedBatch(r.Context(), items)

	writeJSON(w, http.StatusOK, syncResponse{Success: true, Queued: len(items)})
}

func artifactSourceType(kind types.ArtifactKind) string {
	switch kind {
	case types.ArtifactPullRequest:
		return embeddings.SourcePullRequest
	case types.ArtifactCommit:
		return embeddings.SourceCommit
	default:
		return embeddings.SourceIssue
	}
}
