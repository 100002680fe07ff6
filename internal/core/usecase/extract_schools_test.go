package usecase

import (
	"strings"
	"testing"

	"github.com/bujinkan-tools/densho/internal/core/domain"
)

func schoolFixtures() []domain.SchoolProfile {
	return []domain.SchoolProfile{
		{
			Name:        "Togakure Ryū",
			Aliases:     []string{"togakure-ryu", "togakure ryu"},
			Translation: "Hidden Door School",
			Type:        "Ninpō Taijutsu",
			Focus:       "Evasion, stealth, unconventional movement",
			Weapons:     "Shuko, shuriken, ninja-to",
			Notes:       "Oldest of the nine lineages.",
			Soke:        "Takumi Harada",
		},
		{
			Name:        "Gyokko Ryū",
			Aliases:     []string{"gyokko-ryu", "gyokku ryu"},
			Translation: "Jeweled Tiger School",
			Type:        "Kosshijutsu",
			Focus:       "Bone-muscle attacks, angular footwork",
			Soke:        "",
		},
		{
			Name:    "Kumogakure Ryū",
			Aliases: []string{"kumogakure-ryu"},
		},
	}
}

func newSchoolsFixture() *SchoolsExtractor {
	return NewSchoolsExtractor(newTestNormalizer(), schoolFixtures())
}

func TestSchoolsProfileByName(t *testing.T) {
	res := newSchoolsFixture().TryAnswer(newTestNormalizer().Normalize("Tell me about Togakure Ryu"))
	if !res.Answered || res.Path != "deterministic/schools" {
		t.Fatalf("unexpected result %+v", res)
	}
	for _, want := range []string{"Togakure Ryū:", "Translation: Hidden Door School", "Type: Ninpō Taijutsu", "Notes: Oldest of the nine lineages."} {
		if !strings.Contains(res.Text, want) {
			t.Fatalf("missing %q in %q", want, res.Text)
		}
	}
}

func TestSchoolsProfileByMacronAndTypo(t *testing.T) {
	e := newSchoolsFixture()
	for _, q := range []string{
		"What is Tōgakure Ryū?",
		"gyokku ryu focus",
	} {
		if res := e.TryAnswer(newTestNormalizer().Normalize(q)); !res.Answered {
			t.Fatalf("%q: expected a profile answer", q)
		}
	}
}

func TestSchoolsSokeAnswer(t *testing.T) {
	res := newSchoolsFixture().TryAnswer(newTestNormalizer().Normalize("Who is the grandmaster of Togakure Ryu?"))
	if !res.Answered {
		t.Fatalf("expected an answer")
	}
	if res.Text != "Takumi Harada is the current sōke of Togakure Ryū." {
		t.Fatalf("unexpected soke answer %q", res.Text)
	}
}

func TestSchoolsSokeUnknownDeclines(t *testing.T) {
	e := newSchoolsFixture()
	// Gyokko has no recorded soke and an unnamed school gives nothing
	// to look up; both go to retrieval rather than a guess.
	for _, q := range []string{
		"Who is the soke of Gyokko Ryu?",
		"Who is the current soke?",
	} {
		if res := e.TryAnswer(newTestNormalizer().Normalize(q)); res.Answered {
			t.Fatalf("%q: unexpected answer %q", q, res.Text)
		}
	}
}

func TestSchoolsListAnswer(t *testing.T) {
	res := newSchoolsFixture().TryAnswer(newTestNormalizer().Normalize("What are the nine schools of the Bujinkan?"))
	if !res.Answered {
		t.Fatalf("expected an answer")
	}
	if !strings.HasPrefix(res.Text, "The Nine Schools of the Bujinkan:") {
		t.Fatalf("unexpected lead %q", res.Text)
	}
	for _, want := range []string{"Togakure Ryū", "Gyokko Ryū", "Kumogakure Ryū"} {
		if !strings.Contains(res.Text, want) {
			t.Fatalf("missing school %q in %q", want, res.Text)
		}
	}
}

func TestSchoolsUnrelatedDeclines(t *testing.T) {
	res := newSchoolsFixture().TryAnswer(newTestNormalizer().Normalize("What throws do I need for 6th kyu?"))
	if res.Answered {
		t.Fatalf("unexpected answer %+v", res)
	}
}
