package usecase

import (
	"testing"

	"github.com/bujinkan-tools/densho/internal/core/domain"
)

func glossaryFixtures() []domain.GlossaryEntry {
	return []domain.GlossaryEntry{
		{Term: "Soke", Definition: "Head of a school lineage."},
		{Term: "Kamae", Definition: "Structural posture linking body and intention."},
		{Term: "Ukemi", Definition: "Receiving the ground safely through rolls and breakfalls."},
		{Term: "Taijutsu", Definition: "Unarmed body movement."},
		{Term: "Empty", Definition: "   "},
	}
}

func newGlossaryFixture() *GlossaryExtractor {
	return NewGlossaryExtractor(newTestNormalizer(), glossaryFixtures(), techniqueFixtures())
}

func TestGlossaryDefinitionLead(t *testing.T) {
	res := newGlossaryFixture().TryAnswer(newTestNormalizer().Normalize("What does soke mean?"))
	if !res.Answered || res.Path != "deterministic/glossary" {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.Text != "Soke: Head of a school lineage." {
		t.Fatalf("unexpected answer %q", res.Text)
	}
}

func TestGlossaryBareTerm(t *testing.T) {
	res := newGlossaryFixture().TryAnswer(newTestNormalizer().Normalize("taijutsu"))
	if !res.Answered || res.Text != "Taijutsu: Unarmed body movement." {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestGlossaryContainedTerm(t *testing.T) {
	res := newGlossaryFixture().TryAnswer(newTestNormalizer().Normalize("define the word ukemi"))
	if !res.Answered || res.Text != "Ukemi: Receiving the ground safely through rolls and breakfalls." {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestGlossaryTechniqueShapedDeclines(t *testing.T) {
	e := newGlossaryFixture()
	// Technique names that reached the glossary are unknown catalog
	// entries; they belong to retrieval, not to a loose term match.
	for _, q := range []string{
		"What is Omote Gyaku?",
		"what is koshi kudaki",
		"define te hodoki no kata",
	} {
		if res := e.TryAnswer(newTestNormalizer().Normalize(q)); res.Answered {
			t.Fatalf("%q: unexpected answer %q", q, res.Text)
		}
	}
}

func TestGlossaryOpenQuestionsDecline(t *testing.T) {
	e := newGlossaryFixture()
	for _, q := range []string{
		"who teaches kamae",
		"how long does training take and where",
	} {
		if res := e.TryAnswer(newTestNormalizer().Normalize(q)); res.Answered {
			t.Fatalf("%q: unexpected answer %q", q, res.Text)
		}
	}
}

func TestGlossaryEmptyDefinitionSkipped(t *testing.T) {
	res := newGlossaryFixture().TryAnswer(newTestNormalizer().Normalize("empty"))
	if res.Answered {
		t.Fatalf("blank definitions must not answer, got %q", res.Text)
	}
}

func TestGlossaryUnknownTermDeclines(t *testing.T) {
	res := newGlossaryFixture().TryAnswer(newTestNormalizer().Normalize("what does seiza mean"))
	if res.Answered {
		t.Fatalf("unexpected answer %q", res.Text)
	}
}
