// Package embeddings chunks, sanitizes and embeds heterogeneous textual
// records into the vector index, and retrieves them again by semantic
// similarity.
package embeddings

import (
	"context"
	"fmt"

	"kairoplan/schedule-ai/config"
	"kairoplan/schedule-ai/types"
)

// Source types whose content is embedded. pull_request and commit stay
// atomic: splitting a diff summary or commit message mid-way ruins it.
const (
	SourcePullRequest   = "pull_request"
	SourceCommit        = "commit"
	SourceIssue         = "issue"
	SourceCalendarEvent = "calendar_event"
	SourceActivity      = "activity"
	SourceCodingSession = "coding_session"
)

// Item is one record queued for indexing.
type Item struct {
	ID       string
	Type     string
	Content  string
	Metadata map[string]interface{}
}

// Index is the vector store the indexer writes to and the retriever
// reads from. supabase.VectorIndex is the production implementation.
type Index interface {
	Upsert(chunk types.EmbeddedChunk) error
	DeleteBySource(sourceID string) error
	SimilaritySearch(embedding []float32, limit int) ([]types.RetrievedChunk, error)
}

type Indexer struct {
	Embedder Embedder
	Index    Index
	Chunker  Chunker
	Batch    int
}

func NewIndexer(embedder Embedder, index Index) *Indexer {
	return &Indexer{
		Embedder: embedder,
		Index:    index,
		Chunker: Chunker{
			Size:    config.Pipeline.ChunkSize,
			Overlap: config.Pipeline.ChunkOverlap,
		},
		Batch: config.Pipeline.BatchSize,
	}
}

// EmbedBatch indexes items in fixed-size batches. A single item failing
// to embed is logged and skipped; the batch and the run continue.
func (ix *Indexer) EmbedBatch(ctx context.Context, items []Item) {
	batch := ix.Batch
	if batch <= 0 {
		batch = 100
	}

	for i := 0; i < len(items); i += batch {
		end := i + batch
		if end > len(items) {
			end = len(items)
		}
		config.Logger.Infof("Embedding batch %d of %d", i/batch+1, (len(items)+batch-1)/batch)

		for _, item := range items[i:end] {
			if err := ix.embedItem(ctx, item); err != nil {
				config.Logger.Errorf("Failed to embed %s %s: %v", item.Type, item.ID, err)
			}
		}
	}
}

func (ix *Indexer) embedItem(ctx context.Context, item Item) error {
	chunks := ix.chunksFor(item)
	if len(chunks) == 0 {
		return nil
	}

	for i, content := range chunks {
		vector, err := ix.Embedder.Embed(ctx, content)
		if err != nil {
			return fmt.Errorf("embed chunk %d: %w", i, err)
		}

		metadata := map[string]interface{}{
			"type":        item.Type,
			"id":          item.ID,
			"chunkIndex":  i,
			"totalChunks": len(chunks),
		}
		for k, v := range item.Metadata {
			metadata[k] = v
		}

		chunk := types.EmbeddedChunk{
			ID:          chunkID(item.ID, i),
			SourceID:    item.ID,
			SourceType:  item.Type,
			ChunkIndex:  i,
			TotalChunks: len(chunks),
			Content:     content,
			Metadata:    metadata,
			Embedding:   vector,
		}

		if err := ix.Index.Upsert(chunk); err != nil {
			return fmt.Errorf("upsert chunk %d: %w", i, err)
		}
	}

	return nil
}

// chunksFor applies the per-type chunking policy: structured types stay
// whole, free text is sanitized then split.
func (ix *Indexer) chunksFor(item Item) []string {
	switch item.Type {
	case SourcePullRequest, SourceCommit:
		if item.Content == "" {
			return nil
		}
		return []string{item.Content}
	default:
		return ix.Chunker.Split(StripMarkup(item.Content))
	}
}

// UpdateItem replaces all of an item's chunks: delete by source id, then
// re-embed. Never a partial patch — chunk boundaries shift when content
// changes.
func (ix *Indexer) UpdateItem(ctx context.Context, item Item) error {
	if err := ix.Index.DeleteBySource(item.ID); err != nil {
		return fmt.Errorf("delete before reinsert: %w", err)
	}
	return ix.embedItem(ctx, item)
}

// Chunk ids are deterministic per (source, index) so re-embedding a
// source overwrites its previous rows. Kept inside the 30-char id
// column.
func chunkID(sourceID string, index int) string {
	id := fmt.Sprintf("%s:%d", sourceID, index)
	if len(id) > 30 {
		id = id[len(id)-30:]
	}
	return id
}
