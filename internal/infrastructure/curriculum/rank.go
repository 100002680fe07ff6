package curriculum

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bujinkan-tools/densho/internal/core/domain"
)

var (
	rankOrdinalRe = regexp.MustCompile(`^(\d{1,2})(st|nd|rd|th)$`)
	namedDanRe    = regexp.MustCompile(`^(sho|ni|san|yon|go|roku|nana|hachi|ku|ju)dan$`)
	sectionRe     = regexp.MustCompile(`^([A-Za-z][A-Za-z' ]{0,40}?)\s*:\s*(.*)$`)
)

// ParseRanks cuts a rank requirements sheet into per-rank blocks. A
// header is a line leading with an ordinal rank ("=== 8th Kyu ===",
// "Kyu: 8th Kyu"); the block runs verbatim to the next header, so an
// answer quoting it can never leak adjacent ranks. Within a block,
// "Name:" lines and their bullet continuations become sections.
func ParseRanks(text string) []domain.RankRequirement {
	lines := splitLines(text)

	type header struct {
		line int
		term domain.RankTerm
		real bool // false for named dan headers that only terminate
	}
	var headers []header
	for i, ln := range lines {
		if term, ok := parseRankHeader(ln); ok {
			headers = append(headers, header{line: i, term: term, real: true})
		} else if isNamedDanHeader(ln) {
			headers = append(headers, header{line: i, real: false})
		}
	}

	seen := make(map[string]bool, len(headers))
	var out []domain.RankRequirement
	for idx, h := range headers {
		if !h.real {
			continue
		}
		end := len(lines)
		if idx+1 < len(headers) {
			end = headers[idx+1].line
		}
		rank := h.term.Canonical()
		if seen[rank] {
			continue
		}
		seen[rank] = true

		block := strings.TrimSpace(strings.Join(lines[h.line:end], "\n"))
		out = append(out, domain.RankRequirement{
			Rank:     rank,
			Label:    h.term.Label(),
			Block:    block,
			Sections: parseSections(lines[h.line+1 : end]),
		})
	}
	return out
}

// parseRankHeader accepts a line whose leading tokens name an ordinal
// rank. The ordinal must sit within the first three word tokens, which
// keeps in-block mentions ("introduced at 8th kyu") from splitting.
func parseRankHeader(line string) (domain.RankTerm, bool) {
	tokens := strings.Fields(fold(decorationTrim(line)))
	limit := 3
	if len(tokens) < limit {
		limit = len(tokens)
	}
	for i := 0; i < limit; i++ {
		m := rankOrdinalRe.FindStringSubmatch(tokens[i])
		if m == nil {
			continue
		}
		if i+1 >= len(tokens) {
			return domain.RankTerm{}, false
		}
		grade := tokens[i+1]
		if grade != "kyu" && grade != "dan" {
			return domain.RankTerm{}, false
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 {
			return domain.RankTerm{}, false
		}
		return domain.RankTerm{Number: n, Grade: grade}, true
	}
	return domain.RankTerm{}, false
}

// isNamedDanHeader recognizes "Shodan", "=== Nidan ===" and similar
// lines. They terminate the preceding kyu block even though no
// structured record is built for them.
func isNamedDanHeader(line string) bool {
	tokens := strings.Fields(fold(decorationTrim(line)))
	limit := 3
	if len(tokens) < limit {
		limit = len(tokens)
	}
	for i := 0; i < limit; i++ {
		if namedDanRe.MatchString(tokens[i]) {
			return true
		}
	}
	return false
}

func parseSections(lines []string) []domain.RankSection {
	var sections []domain.RankSection
	current := -1

	flushTo := func(items []string) {
		if current < 0 || len(items) == 0 {
			return
		}
		sections[current].Items = appendUnique(sections[current].Items, items)
	}

	for _, raw := range lines {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			current = -1
			continue
		}

		bullet := strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "•") || strings.HasPrefix(trimmed, "·")
		indented := raw != trimmed

		if !bullet {
			if m := sectionRe.FindStringSubmatch(trimmed); m != nil && len(strings.Fields(m[1])) <= 4 {
				sections = append(sections, domain.RankSection{Name: strings.TrimSpace(m[1])})
				current = len(sections) - 1
				flushTo(splitItems(m[2]))
				continue
			}
		}

		if bullet || indented {
			flushTo(splitItems(trimmed))
		}
	}
	return sections
}

func appendUnique(existing, add []string) []string {
	seen := make(map[string]bool, len(existing)+len(add))
	for _, it := range existing {
		seen[fold(it)] = true
	}
	for _, it := range add {
		key := fold(it)
		if seen[key] {
			continue
		}
		seen[key] = true
		existing = append(existing, it)
	}
	return existing
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

// decorationTrim strips markdown and banner decoration from a header
// candidate so "=== 8th Kyu ===" and "## 8th Kyu" read alike.
func decorationTrim(line string) string {
	return strings.Trim(strings.TrimSpace(line), "=#* \t")
}
