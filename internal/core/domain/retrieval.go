package domain

// SearchHit is one similarity-search result, ordered by descending score.
type SearchHit struct {
	ChunkID int
	Score   float64
}

// RetrievalCandidate is a search hit annotated for tier reranking. It lives
// for the duration of a single query and is never persisted.
type RetrievalCandidate struct {
	ChunkID  int
	RawScore float64
	Tier     Tier
	Adjusted float64
}

// ContextChunk is a chunk selected into the generation context. Injected
// marks chunks that were force-included ahead of the score ranking.
type ContextChunk struct {
	Chunk
	Score    float64
	Injected bool
}

// ContextSet is the ordered, deduplicated, size-capped context handed to
// generation. Weak signals that retrieval confidence fell below threshold
// and the answer must be flagged as hybrid.
type ContextSet struct {
	Chunks []ContextChunk
	Weak   bool
}
