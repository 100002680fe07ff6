package ollama

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bujinkan-tools/densho/internal/core/domain"
	"github.com/bujinkan-tools/densho/internal/infrastructure/resilience"
)

// maxInputRunes bounds a single embedding input. Chunking keeps corpus text
// far below this, so hitting the limit means a wiring bug upstream.
const maxInputRunes = 8192

// Client embeds text batches through the Ollama /api/embed endpoint and
// unit-normalizes the vectors so index similarities behave as cosine scores.
type Client struct {
	baseURL    string
	model      string
	dimensions int
	httpClient *http.Client
	exec       *resilience.Executor
}

func New(baseURL, model string, dimensions int, exec *resilience.Executor) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		dimensions: dimensions,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		exec:       exec,
	}
}

func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "embed", fmt.Errorf("no input texts"))
	}
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			return nil, domain.WrapError(domain.ErrInvalidInput, "embed", fmt.Errorf("input %d is empty", i))
		}
		if utf8.RuneCountInString(text) > maxInputRunes {
			return nil, domain.WrapError(domain.ErrInvalidInput, "embed",
				fmt.Errorf("input %d exceeds %d runes", i, maxInputRunes))
		}
	}

	request := map[string]any{
		"model": c.model,
		"input": texts,
	}

	var response struct {
		Embeddings [][]float32 `json:"embeddings"`
	}
	err := c.exec.Execute(ctx, "embed", func(ctx context.Context) error {
		return c.postJSON(ctx, "/api/embed", request, &response, "embed")
	}, classifyEmbedError)
	if err != nil {
		return nil, wrapEmbedError("embed", err)
	}

	if len(response.Embeddings) != len(texts) {
		return nil, domain.WrapError(domain.ErrEmbedding, "embed",
			fmt.Errorf("got %d vectors for %d inputs", len(response.Embeddings), len(texts)))
	}
	for i, vector := range response.Embeddings {
		if len(vector) != c.dimensions {
			return nil, domain.WrapError(domain.ErrEmbedding, "embed",
				fmt.Errorf("vector %d has %d dimensions, want %d", i, len(vector), c.dimensions))
		}
		normalize(vector)
	}
	return response.Embeddings, nil
}

func (c *Client) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// normalize rescales the vector to unit length in place. Zero vectors are
// left alone rather than divided by zero.
func normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	norm := float32(math.Sqrt(sum))
	for i := range v {
		v[i] /= norm
	}
}
