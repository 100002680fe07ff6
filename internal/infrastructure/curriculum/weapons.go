package curriculum

import (
	"regexp"
	"strings"

	"github.com/bujinkan-tools/densho/internal/core/domain"
)

var weaponTagRe = regexp.MustCompile(`(?i)^\[\s*weapon\s*\]\s*(.+)$`)

// ParseWeapons reads the weapons sheet. Each block opens with a
// "[WEAPON] Name" line followed by upper-cased "KEY: value" fields;
// bullet lines under a field continue it.
func ParseWeapons(text string) []domain.WeaponProfile {
	var out []domain.WeaponProfile
	cur := -1
	lastKey := ""

	for _, raw := range splitLines(text) {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			lastKey = ""
			continue
		}
		if m := weaponTagRe.FindStringSubmatch(trimmed); m != nil {
			out = append(out, domain.WeaponProfile{Name: strings.TrimSpace(m[1])})
			cur = len(out) - 1
			lastKey = ""
			continue
		}
		if cur < 0 {
			continue
		}
		if key, value, ok := weaponField(trimmed); ok {
			setWeaponField(&out[cur], key, value)
			lastKey = key
			continue
		}
		if lastKey != "" {
			setWeaponField(&out[cur], lastKey, trimmed)
		}
	}
	return out
}

func weaponField(line string) (key, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 || idx > 20 {
		return "", "", false
	}
	switch fold(line[:idx]) {
	case "aliases", "alias":
		key = "aliases"
	case "type":
		key = "type"
	case "kamae":
		key = "kamae"
	case "core actions", "actions":
		key = "actions"
	case "ranks", "rank":
		key = "ranks"
	case "notes", "note":
		key = "notes"
	default:
		return "", "", false
	}
	return key, strings.TrimSpace(line[idx+1:]), true
}

func setWeaponField(p *domain.WeaponProfile, key, value string) {
	if value == "" {
		return
	}
	switch key {
	case "aliases":
		p.Aliases = appendUnique(p.Aliases, splitItems(value))
	case "type":
		p.Type = joinClause(p.Type, value)
	case "kamae":
		p.Kamae = appendUnique(p.Kamae, splitItems(value))
	case "actions":
		p.CoreActions = appendUnique(p.CoreActions, splitItems(value))
	case "ranks":
		p.Ranks = joinClause(p.Ranks, value)
	case "notes":
		p.Notes = joinClause(p.Notes, value)
	}
}
