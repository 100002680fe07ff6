package curriculum

import (
	"strings"
	"testing"
)

const rankSheet = `Ninjutsu Rank Requirements

=== 8th Kyu ===
Striking: Sanshin no Kata, Kihon Happo
Nage: Ganseki Nage
Weapons:
  - Hanbo basics; Kamae drills

=== 7th Kyu ===
Nage: Harai Goshi and Seoi Nage

Shodan
Advanced material beyond the kyu grades.
`

func TestParseRanksBlocksEndAtNextHeader(t *testing.T) {
	ranks := ParseRanks(rankSheet)
	if len(ranks) != 2 {
		t.Fatalf("ParseRanks returned %d ranks, want 2", len(ranks))
	}
	if ranks[0].Rank != "8th kyu" || ranks[0].Label != "8th Kyu" {
		t.Fatalf("first rank = %q / %q, want 8th kyu / 8th Kyu", ranks[0].Rank, ranks[0].Label)
	}
	if !strings.Contains(ranks[0].Block, "Ganseki Nage") {
		t.Errorf("8th kyu block lost its own content: %q", ranks[0].Block)
	}
	if strings.Contains(ranks[0].Block, "Harai Goshi") {
		t.Errorf("8th kyu block leaked 7th kyu content: %q", ranks[0].Block)
	}
	if strings.Contains(ranks[1].Block, "Advanced material") {
		t.Errorf("7th kyu block leaked past the Shodan header: %q", ranks[1].Block)
	}
}

func TestParseRanksSections(t *testing.T) {
	ranks := ParseRanks(rankSheet)
	if len(ranks) != 2 {
		t.Fatalf("ParseRanks returned %d ranks, want 2", len(ranks))
	}

	striking, ok := ranks[0].Section("striking")
	if !ok {
		t.Fatal("8th kyu has no Striking section")
	}
	if len(striking.Items) != 2 || striking.Items[0] != "Sanshin no Kata" {
		t.Fatalf("Striking items = %v", striking.Items)
	}

	weapons, ok := ranks[0].Section("Weapons")
	if !ok {
		t.Fatal("8th kyu has no Weapons section")
	}
	if len(weapons.Items) != 2 || weapons.Items[0] != "Hanbo basics" || weapons.Items[1] != "Kamae drills" {
		t.Fatalf("Weapons items = %v, want bullet continuation split on semicolon", weapons.Items)
	}

	nage, ok := ranks[1].Section("Nage")
	if !ok {
		t.Fatal("7th kyu has no Nage section")
	}
	if len(nage.Items) != 2 || nage.Items[0] != "Harai Goshi" || nage.Items[1] != "Seoi Nage" {
		t.Fatalf("Nage items = %v, want split on the word and", nage.Items)
	}
}

func TestParseRanksKyuColonHeader(t *testing.T) {
	ranks := ParseRanks("Kyu: 6th Kyu\nNage: Seoi Nage\n")
	if len(ranks) != 1 || ranks[0].Rank != "6th kyu" {
		t.Fatalf("ParseRanks = %+v, want single 6th kyu", ranks)
	}
}

func TestParseRanksDuplicateHeaderFirstWins(t *testing.T) {
	sheet := "=== 6th Kyu ===\nNage: Seoi Nage\n\n=== 6th Kyu ===\nNage: Something Else\n"
	ranks := ParseRanks(sheet)
	if len(ranks) != 1 {
		t.Fatalf("ParseRanks returned %d ranks, want 1", len(ranks))
	}
	if strings.Contains(ranks[0].Block, "Something Else") {
		t.Errorf("duplicate header overwrote the first block: %q", ranks[0].Block)
	}
}

func TestParseRanksInBlockMentionIsNotAHeader(t *testing.T) {
	sheet := "=== 6th Kyu ===\nWeapons: Hanbo (introduced at 6th kyu), Kusari Fundo\n"
	ranks := ParseRanks(sheet)
	if len(ranks) != 1 {
		t.Fatalf("in-block rank mention split the block: %d ranks", len(ranks))
	}
	weapons, ok := ranks[0].Section("weapons")
	if !ok || len(weapons.Items) != 2 {
		t.Fatalf("Weapons section = %+v, ok=%v", weapons, ok)
	}
}
