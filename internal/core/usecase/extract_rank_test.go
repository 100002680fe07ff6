package usecase

import (
	"strings"
	"testing"

	"github.com/bujinkan-tools/densho/internal/core/domain"
)

func rankFixtures() []domain.RankRequirement {
	return []domain.RankRequirement{
		{
			Rank:  "8th kyu",
			Label: "8th Kyu",
			Block: "=== 8th Kyu ===\nStriking: Hoken Juroppo Ken, Sokuho Geri, Koho Geri, Happo Geri\nKihon Happo: Omote Gyaku, Ura Gyaku",
			Sections: []domain.RankSection{
				{Name: "Striking", Items: []string{"Hoken Juroppo Ken", "Sokuho Geri", "Koho Geri", "Happo Geri"}},
				{Name: "Kihon Happo", Items: []string{"Omote Gyaku", "Ura Gyaku"}},
			},
		},
		{
			Rank:  "6th kyu",
			Label: "6th Kyu",
			Block: "=== 6th Kyu ===\nNage: Seoi Nage, Oosoto Otoshi, Ganseki Otoshi\nWeapons: Hanbo kihon",
			Sections: []domain.RankSection{
				{Name: "Nage", Items: []string{"Seoi Nage", "Oosoto Otoshi", "Ganseki Otoshi"}},
				{Name: "Weapons", Items: []string{"Hanbo kihon"}},
			},
		},
		{
			Rank:  "5th kyu",
			Label: "5th Kyu",
			Block: "=== 5th Kyu ===\nNage: Harai Goshi\nJime: Hon Jime",
			Sections: []domain.RankSection{
				{Name: "Nage", Items: []string{"Harai Goshi"}},
				{Name: "Jime", Items: []string{"Hon Jime"}},
			},
		},
	}
}

func rankQuery(t *testing.T, question string) domain.NormalizedQuery {
	t.Helper()
	return newTestNormalizer().Normalize(question)
}

func TestRankThrowsStayInRank(t *testing.T) {
	e := NewRankExtractor(rankFixtures())
	res := e.TryAnswer(rankQuery(t, "What throws do I need for 6th kyu?"))
	if !res.Answered || res.Path != "deterministic/rank" {
		t.Fatalf("unexpected result %+v", res)
	}
	for _, want := range []string{"6th Kyu", "Seoi Nage", "Oosoto Otoshi", "Ganseki Otoshi"} {
		if !strings.Contains(res.Text, want) {
			t.Fatalf("missing %q in %q", want, res.Text)
		}
	}
	if strings.Contains(res.Text, "Harai Goshi") {
		t.Fatalf("5th kyu material leaked into 6th kyu answer: %q", res.Text)
	}
}

func TestRankKicksFilterStriking(t *testing.T) {
	e := NewRankExtractor(rankFixtures())
	res := e.TryAnswer(rankQuery(t, "What are the kicks for 8th kyu?"))
	if !res.Answered {
		t.Fatalf("expected an answer")
	}
	for _, want := range []string{"Sokuho Geri", "Koho Geri", "Happo Geri"} {
		if !strings.Contains(res.Text, want) {
			t.Fatalf("missing kick %q in %q", want, res.Text)
		}
	}
	if strings.Contains(res.Text, "Hoken Juroppo Ken") {
		t.Fatalf("punches leaked into a kicks answer: %q", res.Text)
	}
}

func TestRankWholeBlockVerbatim(t *testing.T) {
	e := NewRankExtractor(rankFixtures())
	res := e.TryAnswer(rankQuery(t, "What are the requirements for 5th kyu?"))
	if !res.Answered {
		t.Fatalf("expected an answer")
	}
	if res.Text != "=== 5th Kyu ===\nNage: Harai Goshi\nJime: Hon Jime" {
		t.Fatalf("block must pass through verbatim, got %q", res.Text)
	}
}

func TestRankSectionIntentKihonHappo(t *testing.T) {
	e := NewRankExtractor(rankFixtures())
	res := e.TryAnswer(rankQuery(t, "Which Kihon Happo kata are required for 8th kyu?"))
	if !res.Answered {
		t.Fatalf("expected an answer")
	}
	if !strings.Contains(res.Text, "Omote Gyaku") || !strings.Contains(res.Text, "Ura Gyaku") {
		t.Fatalf("missing kihon items: %q", res.Text)
	}
	if strings.Contains(res.Text, "Sokuho Geri") {
		t.Fatalf("striking leaked into a kihon answer: %q", res.Text)
	}
}

func TestRankEmptySectionSaysNone(t *testing.T) {
	e := NewRankExtractor(rankFixtures())
	res := e.TryAnswer(rankQuery(t, "What chokes do I need for 6th kyu?"))
	if !res.Answered {
		t.Fatalf("expected an answer")
	}
	if !strings.Contains(res.Text, "(none listed)") {
		t.Fatalf("missing section must answer none, got %q", res.Text)
	}
}

func TestRankUnknownRankDeclines(t *testing.T) {
	e := NewRankExtractor(rankFixtures())
	// Dan grades are not on the sheet; the question falls to retrieval.
	if res := e.TryAnswer(rankQuery(t, "What do I need for 2nd dan?")); res.Answered {
		t.Fatalf("unexpected answer %+v", res)
	}
}

func TestRankNoRankTermDeclines(t *testing.T) {
	e := NewRankExtractor(rankFixtures())
	if res := e.TryAnswer(rankQuery(t, "What throws exist in ninjutsu?")); res.Answered {
		t.Fatalf("unexpected answer %+v", res)
	}
}
