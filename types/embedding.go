package types

// EmbeddedChunk is one vector-indexed slice of a source item. ChunkIndex
// and TotalChunks let a parent item's chunks be reassembled in order.
type EmbeddedChunk struct {
	ID          string                 `json:"id"`
	SourceID    string                 `json:"source_id"`
	SourceType  string                 `json:"source_type"`
	ChunkIndex  int                    `json:"chunk_index"`
	TotalChunks int                    `json:"total_chunks"`
	Content     string                 `json:"content"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	Embedding   []float32              `json:"embedding,omitempty"`
}

// RetrievedChunk is a similarity-search hit handed to the synthesizer.
type RetrievedChunk struct {
	Content  string                 `json:"content"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Score    float64                `json:"score,omitempty"`
}
