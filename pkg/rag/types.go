// Package rag defines the shared retrieval types: the chunk, its provenance
// metadata and the per-query scores attached during hybrid fusion.
package rag

// Metadata is the provenance attached to a chunk at ingestion time.
type Metadata struct {
	Source     string `json:"source"`
	Domain     string `json:"domain"`
	Title      string `json:"title"`
	Kind       string `json:"kind"`
	ChunkIndex int    `json:"chunk_index"`
}

// Chunk is the unit of retrieval. Distance comes from the vector store
// (cosine distance, lower = more similar). KeywordScore and CombinedScore are
// ephemeral per-query fields written during hybrid fusion; they are never
// persisted.
type Chunk struct {
	Text     string   `json:"text"`
	Metadata Metadata `json:"metadata"`

	Distance      float64 `json:"distance"`
	KeywordScore  float64 `json:"keyword_score,omitempty"`
	CombinedScore float64 `json:"combined_score,omitempty"`
}
