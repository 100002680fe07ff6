package usecase

import (
	"strings"
	"testing"
	"time"

	"github.com/bujinkan-tools/densho/internal/core/domain"
)

func sampleContext(weak bool) domain.ContextSet {
	return domain.ContextSet{
		Weak: weak,
		Chunks: []domain.ContextChunk{
			{
				Chunk: domain.Chunk{ID: 1, Text: "Togakure Ryu focuses on ninjutsu.", Source: "schools.txt", Category: domain.CategorySchool},
				Score: 0.812,
			},
			{
				Chunk: domain.Chunk{ID: 2, Text: "General training notes.", Source: "notes.txt", Category: domain.CategoryOther},
				Score: 0.455,
			},
		},
	}
}

func TestPromptNumbersContextBlocks(t *testing.T) {
	a := NewAssembler()
	prompt := a.Prompt("Tell me about Togakure Ryu", sampleContext(false))

	if !strings.Contains(prompt, "[1] source=schools.txt category=school score=0.812") {
		t.Fatalf("missing first context header:\n%s", prompt)
	}
	if !strings.Contains(prompt, "[2] source=notes.txt category=other score=0.455") {
		t.Fatalf("missing second context header:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Togakure Ryu focuses on ninjutsu.") {
		t.Fatalf("missing chunk text:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Question:\nTell me about Togakure Ryu") {
		t.Fatalf("missing question:\n%s", prompt)
	}
	if !strings.Contains(prompt, "only from the context") {
		t.Fatalf("missing grounded instruction:\n%s", prompt)
	}
}

func TestPromptWeakRelaxesInstruction(t *testing.T) {
	a := NewAssembler()
	prompt := a.Prompt("q", sampleContext(true))

	if strings.Contains(prompt, "only from the context") {
		t.Fatalf("weak prompt must not demand context-only answers:\n%s", prompt)
	}
	if !strings.Contains(prompt, "general Bujinkan knowledge") {
		t.Fatalf("weak prompt must permit general knowledge:\n%s", prompt)
	}
}

func TestDeterministicResponse(t *testing.T) {
	a := NewAssembler()
	res := domain.Answered("deterministic/rank", "6th Kyu throws: Seoi Nage.")
	resp := a.Deterministic(res, 42*time.Millisecond)

	if resp.Answer != "6th Kyu throws: Seoi Nage." {
		t.Fatalf("answer must pass through verbatim, got %q", resp.Answer)
	}
	if resp.DetPath != "deterministic/rank" {
		t.Fatalf("unexpected det path %q", resp.DetPath)
	}
	if resp.Sources == nil || len(resp.Sources) != 0 {
		t.Fatalf("expected empty non-nil sources, got %#v", resp.Sources)
	}
	if resp.Meta.RetrievalCount != 0 || resp.Meta.ElapsedMS != 42 {
		t.Fatalf("unexpected meta %+v", resp.Meta)
	}
}

func TestGroundedResponseCarriesSources(t *testing.T) {
	a := NewAssembler()
	resp := a.Grounded("answer", sampleContext(false), 10*time.Millisecond)

	if resp.DetPath != "" {
		t.Fatalf("grounded answer must have empty det path, got %q", resp.DetPath)
	}
	if len(resp.Sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(resp.Sources))
	}
	if resp.Sources[0].Source != "schools.txt" || resp.Sources[0].Score != 0.812 {
		t.Fatalf("unexpected first source %+v", resp.Sources[0])
	}
	if resp.Meta.RetrievalCount != 2 {
		t.Fatalf("expected retrieval_count=2, got %d", resp.Meta.RetrievalCount)
	}
}

func TestGroundedResponseHybridPath(t *testing.T) {
	a := NewAssembler()
	resp := a.Grounded("answer", sampleContext(true), time.Millisecond)
	if resp.DetPath != "hybrid" {
		t.Fatalf("weak context must mark the response hybrid, got %q", resp.DetPath)
	}
}

func TestSnippetTruncation(t *testing.T) {
	long := strings.Repeat("タ", 500)
	set := domain.ContextSet{Chunks: []domain.ContextChunk{
		{Chunk: domain.Chunk{Text: long, Source: "s"}, Score: 1},
	}}
	resp := NewAssembler().Grounded("a", set, 0)

	got := []rune(resp.Sources[0].Snippet)
	if len(got) > snippetRunes+1 {
		t.Fatalf("snippet too long: %d runes", len(got))
	}
	if !strings.HasSuffix(resp.Sources[0].Snippet, "…") {
		t.Fatalf("truncated snippet must end with ellipsis")
	}
}
