package domain

// Source cites one retrieved chunk used to ground an answer.
type Source struct {
	Source  string  `json:"source"`
	Snippet string  `json:"snippet"`
	Score   float64 `json:"score"`
}

// Meta carries per-query observability counters.
type Meta struct {
	RetrievalCount int   `json:"retrieval_count"`
	ElapsedMS      int64 `json:"elapsed_ms"`
}

// Response is the answer payload handed to any transport layer.
// DetPath is "deterministic/<extractor>" for extractor answers, "hybrid"
// when weak retrieval let generation draw on general knowledge, and empty
// for plain retrieval-grounded answers.
type Response struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
	DetPath string   `json:"det_path,omitempty"`
	Meta    Meta     `json:"meta"`
}

// GenerationParams tunes a single generation call.
type GenerationParams struct {
	Temperature float64
	MaxTokens   int
}
