package domain

import "strings"

// Curriculum is the structured authoritative record set the deterministic
// extractors answer from. It is parsed once at startup and read-only
// afterwards.
type Curriculum struct {
	Ranks      []RankRequirement
	Techniques []TechniqueRecord
	Schools    []SchoolProfile
	Weapons    []WeaponProfile
	Kyusho     []KyushoPoint
	Glossary   []GlossaryEntry
	Kihon      []KihonForm
	Sanshin    []SanshinForm
}

// RankRequirement is one rank's block from the rank requirements sheet.
// Block holds the verbatim text from the rank header to the next one, so a
// whole-requirements answer can never leak adjacent ranks.
type RankRequirement struct {
	Rank     string // canonical form, e.g. "6th kyu"
	Label    string // display form, e.g. "6th Kyu"
	Block    string
	Sections []RankSection
}

// RankSection is one named line within a rank block ("Nage: Seoi Nage, ...").
type RankSection struct {
	Name  string
	Items []string
}

// Section returns the named section, matched case-insensitively.
func (r RankRequirement) Section(name string) (RankSection, bool) {
	for _, s := range r.Sections {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return RankSection{}, false
}

// TechniqueRecord is one row of the technique catalog. The tristate fields
// stay nil when the source row leaves them blank.
type TechniqueRecord struct {
	Name            string
	Japanese        string
	Translation     string
	Type            string
	Rank            string // as written in the catalog, e.g. "6th Kyu"
	InRank          *bool
	PrimaryFocus    string
	Safety          string
	PartnerRequired *bool
	Solo            *bool
	Tags            []string
	Description     string
}

// SchoolProfile describes one of the nine schools.
type SchoolProfile struct {
	Name        string
	Aliases     []string
	Translation string
	Type        string
	Focus       string
	Weapons     string
	Notes       string
	Soke        string
}

// WeaponProfile describes a curriculum weapon block.
type WeaponProfile struct {
	Name        string
	Aliases     []string
	Type        string
	Kamae       []string
	CoreActions []string
	Ranks       string // verbatim ranks line, e.g. "Introduced at 4th Kyu"
	Notes       string
}

// KyushoPoint is a pressure point with its description.
type KyushoPoint struct {
	Name        string
	Description string
}

// GlossaryEntry is a terminology definition.
type GlossaryEntry struct {
	Term       string
	Definition string
}

// Kihon Happo set keys.
const (
	KihonSetKosshi = "kosshi"
	KihonSetTorite = "torite"
)

// KihonForm is one of the eight fundamental forms.
type KihonForm struct {
	Name        string
	Set         string // KihonSetKosshi or KihonSetTorite
	Description string
}

// SanshinForm is one of the five elemental kata.
type SanshinForm struct {
	Name        string
	Element     string
	Description string
}
