package usecase

import (
	"testing"

	"github.com/bujinkan-tools/densho/internal/core/domain"
)

func sanshinFixtures() []domain.SanshinForm {
	return []domain.SanshinForm{
		{Name: "Chi no Kata", Element: "earth"},
		{Name: "Sui no Kata", Element: "water"},
		{Name: "Ka no Kata", Element: "fire"},
		{Name: "Fu no Kata", Element: "wind"},
		{Name: "Ku no Kata", Element: "void"},
	}
}

func TestSanshinCanonicalAnswer(t *testing.T) {
	e := NewSanshinExtractor(sanshinFixtures())
	res := e.TryAnswer(newTestNormalizer().Normalize("What is Sanshin no Kata?"))
	if !res.Answered || res.Path != "deterministic/sanshin" {
		t.Fatalf("unexpected result %+v", res)
	}
	want := "Sanshin no Kata consists of Chi no Kata, Sui no Kata, Ka no Kata, Fu no Kata, and Ku no Kata."
	if res.Text != want {
		t.Fatalf("unexpected answer %q", res.Text)
	}
}

func TestSanshinAlternatePhrasings(t *testing.T) {
	e := NewSanshinExtractor(sanshinFixtures())
	for _, q := range []string{
		"explain san shin",
		"what are the five elements kata",
	} {
		if res := e.TryAnswer(newTestNormalizer().Normalize(q)); !res.Answered {
			t.Fatalf("%q: expected an answer", q)
		}
	}
}

func TestSanshinUnrelatedDeclines(t *testing.T) {
	e := NewSanshinExtractor(sanshinFixtures())
	for _, q := range []string{
		"what are the five kata of gyokko ryu",
		"list the elements of good posture",
	} {
		if res := e.TryAnswer(newTestNormalizer().Normalize(q)); res.Answered {
			t.Fatalf("%q: unexpected answer %q", q, res.Text)
		}
	}
}

func TestSanshinNoRecordsDeclines(t *testing.T) {
	e := NewSanshinExtractor(nil)
	if res := e.TryAnswer(newTestNormalizer().Normalize("what is sanshin")); res.Answered {
		t.Fatalf("empty records must decline, got %q", res.Text)
	}
}
