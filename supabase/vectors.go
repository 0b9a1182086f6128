package supabase

import (
	"encoding/json"
	"fmt"

	"kairoplan/schedule-ai/types"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
)

const chunksTable = "document_chunks"

// VectorIndex is the pgvector-backed chunk store. The embedding column
// lives in the same database as the relational tables, so one client
// serves both.
type VectorIndex struct {
	Client *supabase.Client
}

type chunkRow struct {
	ID          string                 `json:"id"`
	SourceID    string                 `json:"source_id"`
	SourceType  string                 `json:"source_type"`
	ChunkIndex  int                    `json:"chunk_index"`
	TotalChunks int                    `json:"total_chunks"`
	Content     string                 `json:"content"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	Embedding   []float32              `json:"embedding"`
}

type matchRow struct {
	Content    string                 `json:"content"`
	Metadata   map[string]interface{} `json:"metadata"`
	Similarity float64                `json:"similarity"`
}

// Upsert writes one embedded chunk. Chunk ids are derived from the
// source id and chunk index so a re-embed of the same source overwrites
// rather than duplicates.
func (v *VectorIndex) Upsert(chunk types.EmbeddedChunk) error {
	row := chunkRow{
		ID:          chunk.ID,
		SourceID:    chunk.SourceID,
		SourceType:  chunk.SourceType,
		ChunkIndex:  chunk.ChunkIndex,
		TotalChunks: chunk.TotalChunks,
		Content:     chunk.Content,
		Metadata:    chunk.Metadata,
		Embedding:   chunk.Embedding,
	}
	if row.ID == "" {
		row.ID = uuid.NewString()[:30]
	}

	_, _, err := v.Client.From(chunksTable).
		Upsert(row, "id", "", "").
		Execute()

	if err != nil {
		return fmt.Errorf("failed to upsert chunk %s: %w", row.ID, err)
	}

	return nil
}

// DeleteBySource removes every chunk belonging to a source item.
// Updating an item's embedding is delete-then-reinsert, never a partial
// patch.
func (v *VectorIndex) DeleteBySource(sourceID string) error {
	_, _, err := v.Client.From(chunksTable).
		Delete("", "").
		Eq("source_id", sourceID).
		Execute()

	if err != nil {
		return fmt.Errorf("failed to delete chunks for source %s: %w", sourceID, err)
	}

	return nil
}

// SimilaritySearch runs the match_document_chunks RPC, which orders by
// embedding distance and returns the top matches with their metadata.
func (v *VectorIndex) SimilaritySearch(embedding []float32, limit int) ([]types.RetrievedChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	params := map[string]interface{}{
		"query_embedding": embedding,
		"match_count":     limit,
	}

	resp := v.Client.Rpc("match_document_chunks", "", params)
	if resp == "" {
		return nil, fmt.Errorf("match_document_chunks returned no response")
	}

	var rows []matchRow
	if err := json.Unmarshal([]byte(resp), &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match results: %w", err)
	}

	results := make([]types.RetrievedChunk, 0, len(rows))
	for _, row := range rows {
		results = append(results, types.RetrievedChunk{
			Content:  row.Content,
			Metadata: row.Metadata,
			Score:    row.Similarity,
		})
	}

	return results, nil
}
