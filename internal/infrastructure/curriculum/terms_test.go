package curriculum

import "testing"

const kyushoSheet = `# Kyūsho Reference

Kyusho Points:
Jakkin: Nerve point on the inside of the upper arm.
- Asagasumi: Point under the chin.
  Strike upward with the fingertips.
Kimon: Chest point near the ribs.
Jakkin: duplicate that must not override.
`

const glossarySheet = `Glossary
========

Soke - Head of a school lineage.
Kamae – Structural posture.
Holds intention as well as shape.
Ukemi — The art of receiving; falling safely.
Empty -
Soke - Duplicate definition to ignore.
Taijutsu‐ Body movement art.
`

func TestParseKyushoEntries(t *testing.T) {
	points := ParseKyusho(kyushoSheet)
	if len(points) != 3 {
		t.Fatalf("ParseKyusho returned %d points, want 3: %+v", len(points), points)
	}
	if points[0].Name != "Jakkin" || points[0].Description != "Nerve point on the inside of the upper arm." {
		t.Fatalf("first point = %+v", points[0])
	}
	if points[1].Name != "Asagasumi" {
		t.Fatalf("bullet entry not parsed: %+v", points[1])
	}
	if points[1].Description != "Point under the chin. Strike upward with the fingertips." {
		t.Errorf("indented line not appended: %q", points[1].Description)
	}
}

func TestParseKyushoFirstEntryWins(t *testing.T) {
	points := ParseKyusho(kyushoSheet)
	for _, p := range points {
		if p.Name == "Jakkin" && p.Description != "Nerve point on the inside of the upper arm." {
			t.Fatalf("duplicate overrode the first entry: %q", p.Description)
		}
	}
}

func TestParseKyushoSkipsSectionHeader(t *testing.T) {
	points := ParseKyusho(kyushoSheet)
	for _, p := range points {
		if fold(p.Name) == "kyusho points" {
			t.Fatal("section header parsed as a point")
		}
	}
}

func TestParseGlossaryDashVarieties(t *testing.T) {
	entries := ParseGlossary(glossarySheet)
	if len(entries) != 4 {
		t.Fatalf("ParseGlossary returned %d entries, want 4: %+v", len(entries), entries)
	}

	byTerm := make(map[string]string, len(entries))
	for _, e := range entries {
		byTerm[e.Term] = e.Definition
	}
	if byTerm["Soke"] != "Head of a school lineage." {
		t.Errorf("Soke = %q, want the first definition kept", byTerm["Soke"])
	}
	if byTerm["Ukemi"] != "The art of receiving; falling safely." {
		t.Errorf("em dash entry = %q", byTerm["Ukemi"])
	}
	if byTerm["Taijutsu"] != "Body movement art." {
		t.Errorf("hyphen variant entry = %q", byTerm["Taijutsu"])
	}
}

func TestParseGlossaryContinuationExtendsDefinition(t *testing.T) {
	entries := ParseGlossary(glossarySheet)
	for _, e := range entries {
		if e.Term == "Kamae" {
			if e.Definition != "Structural posture. Holds intention as well as shape." {
				t.Fatalf("Kamae definition = %q", e.Definition)
			}
			return
		}
	}
	t.Fatal("Kamae entry missing")
}

func TestParseGlossaryDropsBlankDefinitions(t *testing.T) {
	entries := ParseGlossary(glossarySheet)
	for _, e := range entries {
		if e.Term == "Empty" {
			t.Fatalf("blank definition kept: %+v", e)
		}
	}
}

func TestParseGlossaryDeferredDefinition(t *testing.T) {
	entries := ParseGlossary("Kukan -\nThe space between opponents.\n")
	if len(entries) != 1 || entries[0].Term != "Kukan" {
		t.Fatalf("ParseGlossary = %+v", entries)
	}
	if entries[0].Definition != "The space between opponents." {
		t.Errorf("deferred definition = %q", entries[0].Definition)
	}
}
