package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/bujinkan-tools/densho/internal/core/domain"
)

const hybridPath = "hybrid"

// snippetRunes caps how much chunk text a source citation carries.
const snippetRunes = 240

// Assembler builds the generation prompt from a context set and shapes
// pipeline outcomes into transport-ready responses. Deterministic
// answers pass through verbatim; generated answers carry the context
// chunks as scored citations.
type Assembler struct{}

func NewAssembler() *Assembler {
	return &Assembler{}
}

// Prompt renders the grounded generation prompt. Weak retrieval swaps
// the context-only instruction for one that permits general knowledge,
// because the caller is about to flag the answer as hybrid anyway.
func (a *Assembler) Prompt(question string, set domain.ContextSet) string {
	var contextBuilder strings.Builder
	for idx, chunk := range set.Chunks {
		contextBuilder.WriteString(fmt.Sprintf(
			"[%d] source=%s category=%s score=%.3f\n%s\n\n",
			idx+1,
			chunk.Source,
			chunk.Category,
			chunk.Score,
			chunk.Text,
		))
	}

	instruction := `Answer the question only from the context below.
If the context is insufficient, say it directly.`
	if set.Weak {
		instruction = `Answer the question using the context below where it helps.
The context may be incomplete. You may draw on general Bujinkan knowledge,
but say clearly when you do.`
	}

	return fmt.Sprintf(`%s

Question:
%s

Context:
%s`, instruction, question, contextBuilder.String())
}

// Deterministic wraps an extractor answer. No sources are attached:
// the text is quoted from authoritative records, not retrieved chunks.
func (a *Assembler) Deterministic(res domain.ExtractorResult, elapsed time.Duration) *domain.Response {
	return &domain.Response{
		Answer:  res.Text,
		Sources: []domain.Source{},
		DetPath: res.Path,
		Meta:    domain.Meta{RetrievalCount: 0, ElapsedMS: elapsed.Milliseconds()},
	}
}

// Grounded wraps a generated answer with the context it was built from.
// Weak retrieval marks the response as hybrid so callers can tell a
// context-grounded answer from a partially general one.
func (a *Assembler) Grounded(answer string, set domain.ContextSet, elapsed time.Duration) *domain.Response {
	sources := make([]domain.Source, 0, len(set.Chunks))
	for _, chunk := range set.Chunks {
		sources = append(sources, domain.Source{
			Source:  chunk.Source,
			Snippet: snippet(chunk.Text),
			Score:   chunk.Score,
		})
	}

	path := ""
	if set.Weak {
		path = hybridPath
	}

	return &domain.Response{
		Answer:  answer,
		Sources: sources,
		DetPath: path,
		Meta:    domain.Meta{RetrievalCount: len(set.Chunks), ElapsedMS: elapsed.Milliseconds()},
	}
}

// snippet trims chunk text to citation size on a rune boundary.
func snippet(text string) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= snippetRunes {
		return text
	}
	return strings.TrimSpace(string(runes[:snippetRunes])) + "…"
}
