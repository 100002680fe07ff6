package curriculum

import (
	"regexp"
	"strings"

	"github.com/bujinkan-tools/densho/internal/core/domain"
)

// ParseSchools reads the nine-schools sheet. A block starts at a
// "School: Name" line or a line that is just the school name ending in
// a colon ("Togakure Ryū:"), carries "Key: value" fields, and ends at
// "---" or the next header. Lines that are neither continue the field
// above them, so multi-line notes survive.
func ParseSchools(text string) []domain.SchoolProfile {
	var out []domain.SchoolProfile
	cur := -1
	lastKey := ""

	for _, raw := range splitLines(text) {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			lastKey = ""
			continue
		}
		if strings.HasPrefix(trimmed, "---") {
			cur = -1
			lastKey = ""
			continue
		}
		if name, ok := schoolHeader(trimmed); ok {
			out = append(out, domain.SchoolProfile{Name: name})
			cur = len(out) - 1
			lastKey = ""
			continue
		}
		if cur < 0 {
			continue
		}
		if key, value, ok := fieldLine(trimmed); ok {
			setSchoolField(&out[cur], key, value)
			lastKey = key
			continue
		}
		if lastKey != "" {
			setSchoolField(&out[cur], lastKey, trimmed)
		} else {
			setSchoolField(&out[cur], "notes", trimmed)
		}
	}
	return out
}

func schoolHeader(line string) (string, bool) {
	body := decorationTrim(line)
	lower := strings.ToLower(body)
	if strings.HasPrefix(lower, "school:") {
		name := strings.TrimSpace(body[len("school:"):])
		return name, name != ""
	}
	if strings.HasSuffix(body, ":") {
		name := strings.TrimSpace(strings.TrimSuffix(body, ":"))
		if strings.HasSuffix(fold(name), " ryu") {
			return name, true
		}
	}
	return "", false
}

// fieldLine splits a "Key: value" line. Keys are short; a long left
// side is prose that happens to contain a colon, not a field.
func fieldLine(line string) (key, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 || idx > 24 {
		return "", "", false
	}
	key = canonFieldKey(line[:idx])
	if key == "" {
		return "", "", false
	}
	return key, strings.TrimSpace(line[idx+1:]), true
}

func canonFieldKey(raw string) string {
	k := fold(raw)
	switch {
	case k == "translation" || k == "meaning":
		return "translation"
	case k == "type":
		return "type"
	case k == "focus" || k == "specialty":
		return "focus"
	case strings.HasPrefix(k, "weapon"):
		return "weapons"
	case strings.HasPrefix(k, "note"):
		return "notes"
	case strings.HasPrefix(k, "alias") || k == "aka" || k == "also known as":
		return "aliases"
	case strings.Contains(k, "soke") || k == "grandmaster":
		return "soke"
	}
	return ""
}

func setSchoolField(p *domain.SchoolProfile, key, value string) {
	if value == "" {
		return
	}
	switch key {
	case "translation":
		p.Translation = joinClause(p.Translation, value)
	case "type":
		p.Type = joinClause(p.Type, value)
	case "focus":
		p.Focus = joinClause(p.Focus, value)
	case "weapons":
		p.Weapons = joinClause(p.Weapons, value)
	case "notes":
		p.Notes = joinClause(p.Notes, value)
	case "aliases":
		p.Aliases = appendUnique(p.Aliases, splitItems(value))
	case "soke":
		p.Soke = joinClause(p.Soke, value)
	}
}

func joinClause(existing, add string) string {
	if existing == "" {
		return add
	}
	return existing + " " + add
}

// SokePair links a school to its current head, as read from the
// leadership sheet.
type SokePair struct {
	School string
	Person string
}

var (
	sokeOfRe   = regexp.MustCompile(`(?i)^(.+?)\s+is\s+(?:the\s+)?(?:current\s+)?s[oō]ke\s+of\s+(?:the\s+)?(.+?)\.?$`)
	sokeOfIsRe = regexp.MustCompile(`(?i)^(?:the\s+)?(?:current\s+)?s[oō]ke\s+of\s+(?:the\s+)?(.+?)\s+is\s+(.+?)\.?$`)
)

// ParseLeadership reads soke assignments from the leadership sheet.
// Three line shapes occur: "School: Person" pairs, markdown table rows,
// and prose ("X is the sōke of Y"). Casing of names is preserved.
func ParseLeadership(text string) []SokePair {
	var pairs []SokePair
	add := func(school, person string) {
		school = strings.Trim(strings.TrimSpace(school), ".")
		person = strings.Trim(strings.TrimSpace(person), ".")
		if school == "" || person == "" {
			return
		}
		pairs = append(pairs, SokePair{School: school, Person: person})
	}

	for _, raw := range splitLines(text) {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.Contains(line, "|") {
			if school, person, ok := tableRowPair(line); ok {
				add(school, person)
			}
			continue
		}
		if m := sokeOfRe.FindStringSubmatch(line); m != nil {
			add(m[2], m[1])
			continue
		}
		if m := sokeOfIsRe.FindStringSubmatch(line); m != nil {
			add(m[1], m[2])
			continue
		}
		if school, person, ok := kvPair(line); ok {
			add(school, person)
		}
	}
	return pairs
}

// kvPair reads "Togakure Ryū: Person" or the dash-separated variant.
// The left side must name a school to count.
func kvPair(line string) (string, string, bool) {
	for _, sep := range []string{":", " - ", " – ", " — "} {
		idx := strings.Index(line, sep)
		if idx <= 0 {
			continue
		}
		left := strings.TrimSpace(line[:idx])
		right := strings.TrimSpace(line[idx+len(sep):])
		if strings.Contains(fold(left), "ryu") && right != "" {
			return left, right, true
		}
	}
	return "", "", false
}

func tableRowPair(line string) (string, string, bool) {
	var cells []string
	for _, c := range strings.Split(line, "|") {
		c = strings.TrimSpace(c)
		if c != "" && strings.Trim(c, "-: ") != "" {
			cells = append(cells, c)
		}
	}
	if len(cells) < 2 {
		return "", "", false
	}
	school, person := "", ""
	for _, c := range cells {
		key := fold(c)
		if key == "school" || key == "soke" || key == "grandmaster" || key == "current soke" || key == "person" {
			return "", "", false // header row
		}
		if school == "" && strings.Contains(key, "ryu") {
			school = c
		} else if person == "" {
			person = c
		}
	}
	return school, person, school != "" && person != ""
}

// ApplySoke writes leadership assignments onto the school profiles.
// The leadership sheet wins over any soke line in the schools sheet;
// the first assignment for a school sticks.
func ApplySoke(schools []domain.SchoolProfile, pairs []SokePair) {
	applied := make(map[int]bool, len(schools))
	for _, pair := range pairs {
		key := fold(pair.School)
		if key == "" {
			continue
		}
		for i := range schools {
			if applied[i] || !schoolKeyMatches(schools[i], key) {
				continue
			}
			schools[i].Soke = pair.Person
			applied[i] = true
		}
	}
}

func schoolKeyMatches(p domain.SchoolProfile, key string) bool {
	name := fold(p.Name)
	if name != "" && (name == key || strings.Contains(key, name) || strings.Contains(name, key)) {
		return true
	}
	for _, a := range p.Aliases {
		af := fold(a)
		if af != "" && (af == key || strings.Contains(key, af)) {
			return true
		}
	}
	return false
}
