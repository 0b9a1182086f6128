package embeddings

import (
	"context"

	"kairoplan/schedule-ai/config"
	"kairoplan/schedule-ai/types"
)

// Retriever answers free-text queries with the top-k most similar
// chunks. Index unavailability degrades to an empty result set so
// downstream stages run with reduced context instead of failing.
type Retriever struct {
	Embedder Embedder
	Index    Index
}

func (r *Retriever) Search(ctx context.Context, query string, limit int) []types.RetrievedChunk {
	vector, err := r.Embedder.Embed(ctx, query)
	if err != nil {
		config.Logger.Warnf("Retrieval embedding failed for query %q: %v", query, err)
		return nil
	}

	results, err := r.Index.SimilaritySearch(vector, limit)
	if err != nil {
		config.Logger.Warnf("Similarity search failed for query %q: %v", query, err)
		return nil
	}

	return results
}
