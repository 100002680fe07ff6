package curriculum

import (
	"regexp"
	"strings"

	"github.com/bujinkan-tools/densho/internal/core/domain"
)

// ParseKyusho reads the pressure-point sheet: "Name: description"
// lines, with or without a leading bullet. Indented follow-up lines
// extend the description. The first entry for a point wins.
func ParseKyusho(text string) []domain.KyushoPoint {
	var out []domain.KyushoPoint
	seen := make(map[string]bool)
	last := -1

	for _, raw := range splitLines(text) {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			last = -1
			continue
		}
		line = strings.TrimLeft(line, "-•·* \t")

		idx := strings.Index(line, ":")
		if idx > 0 && idx <= 40 {
			name := strings.TrimSpace(line[:idx])
			desc := strings.TrimSpace(line[idx+1:])
			if desc == "" {
				last = -1 // section header such as "Kyusho Points:"
				continue
			}
			if name != "" && len(strings.Fields(name)) <= 4 {
				key := fold(name)
				if seen[key] {
					last = -1
					continue
				}
				seen[key] = true
				out = append(out, domain.KyushoPoint{Name: name, Description: desc})
				last = len(out) - 1
				continue
			}
		}
		if last >= 0 {
			out[last].Description = joinClause(out[last].Description, line)
		}
	}
	return out
}

var (
	glossaryEntryRe = regexp.MustCompile(`^(.{1,60}?)\s*[-–—‐‑]\s+(.*)$`)
	glossaryOpenRe  = regexp.MustCompile(`^(.{1,60}?)\s*[-–—‐‑]$`)
)

// ParseGlossary reads "Term - Definition" lines; any dash variety
// separates, and a trailing dash defers the definition to the lines
// below. Plain follow-up lines extend the previous definition, the
// first entry for a term wins, and entries whose definition stays
// blank are dropped.
func ParseGlossary(text string) []domain.GlossaryEntry {
	var out []domain.GlossaryEntry
	index := make(map[string]int)
	last := -1

	insert := func(term, def string) bool {
		term = strings.TrimSpace(term)
		if term == "" || len(strings.Fields(term)) > 6 {
			return false
		}
		key := fold(term)
		if _, dup := index[key]; dup {
			last = -1
			return true
		}
		out = append(out, domain.GlossaryEntry{Term: term, Definition: strings.TrimSpace(def)})
		index[key] = len(out) - 1
		last = len(out) - 1
		return true
	}

	for _, raw := range splitLines(text) {
		line := strings.TrimSpace(raw)
		if line == "" {
			last = -1
			continue
		}
		if strings.HasPrefix(line, "#") || strings.Trim(line, "-–—= ") == "" || fold(line) == "glossary" {
			last = -1
			continue
		}
		if m := glossaryEntryRe.FindStringSubmatch(line); m != nil && insert(m[1], m[2]) {
			continue
		}
		if m := glossaryOpenRe.FindStringSubmatch(line); m != nil && insert(m[1], "") {
			continue
		}
		if last >= 0 {
			out[last].Definition = joinClause(out[last].Definition, line)
		}
	}

	kept := out[:0]
	for _, e := range out {
		if strings.TrimSpace(e.Definition) != "" {
			kept = append(kept, e)
		}
	}
	return kept
}
