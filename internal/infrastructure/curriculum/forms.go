package curriculum

import (
	"regexp"
	"strings"

	"github.com/bujinkan-tools/densho/internal/core/domain"
)

var parenRe = regexp.MustCompile(`\(([^)]*)\)`)

// ParseKihon reads the Kihon Happo sheet. The "Kosshi Kihon Sanpo" and
// "Torite Goho" lines open the two sets; listed lines under them become
// forms. A form line may carry a description after a colon or spaced
// dash.
func ParseKihon(text string) []domain.KihonForm {
	var out []domain.KihonForm
	seen := make(map[string]bool)
	set := ""

	for _, raw := range splitLines(text) {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		folded := fold(trimmed)
		if strings.Contains(folded, "kosshi") {
			set = domain.KihonSetKosshi
			continue
		}
		if strings.Contains(folded, "torite") {
			set = domain.KihonSetTorite
			continue
		}
		if set == "" || !listedLine(raw, trimmed) {
			continue
		}
		name, desc := splitNameDesc(trimmed)
		key := fold(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, domain.KihonForm{Name: name, Set: set, Description: desc})
	}
	return out
}

// ParseSanshin reads the Sanshin no Kata sheet. Listed lines naming a
// "... no Kata" become forms; a parenthetical holds the element.
func ParseSanshin(text string) []domain.SanshinForm {
	var out []domain.SanshinForm
	seen := make(map[string]bool)

	for _, raw := range splitLines(text) {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || !listedLine(raw, trimmed) {
			continue
		}
		name, desc := splitNameDesc(trimmed)

		element := ""
		if m := parenRe.FindStringSubmatch(name); m != nil {
			element = strings.TrimSpace(m[1])
			name = strings.Join(strings.Fields(parenRe.ReplaceAllString(name, " ")), " ")
		} else if m := parenRe.FindStringSubmatch(desc); m != nil {
			element = strings.TrimSpace(m[1])
		}

		key := fold(name)
		if name == "" || seen[key] || !strings.HasSuffix(key, "no kata") || strings.Contains(key, "sanshin") {
			continue
		}
		seen[key] = true
		out = append(out, domain.SanshinForm{Name: name, Element: element, Description: desc})
	}
	return out
}

var numberedRe = regexp.MustCompile(`^\d{1,2}[.)]\s+`)

// listedLine accepts bullets, numbered items, indented lines and short
// plain lines. Prose sentences stay out so a preamble paragraph never
// reads as a form.
func listedLine(raw, trimmed string) bool {
	switch trimmed[0] {
	case '-', '*':
		return true
	}
	if strings.HasPrefix(trimmed, "•") || strings.HasPrefix(trimmed, "·") {
		return true
	}
	if numberedRe.MatchString(trimmed) {
		return true
	}
	if raw != trimmed {
		return true
	}
	return len(strings.Fields(trimmed)) <= 5 && !strings.HasSuffix(trimmed, ".")
}

func splitNameDesc(line string) (string, string) {
	body := strings.TrimLeft(numberedRe.ReplaceAllString(line, ""), "-•·* \t")
	if body == "" {
		return "", ""
	}
	for _, sep := range []string{" - ", " – ", " — ", ":"} {
		if idx := strings.Index(body, sep); idx > 0 {
			return strings.TrimSpace(body[:idx]), strings.TrimSpace(body[idx+len(sep):])
		}
	}
	return strings.Join(strings.Fields(body), " "), ""
}
