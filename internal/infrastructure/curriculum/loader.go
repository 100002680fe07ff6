package curriculum

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bujinkan-tools/densho/internal/core/domain"
)

// Load parses every recognized curriculum file under dir into the
// structured record set the extractors answer from. Files are matched
// by name keyword; a directory missing a sheet simply yields an empty
// record list, and the extractor that needs it declines at query time.
func Load(dir string) (*domain.Curriculum, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read curriculum dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".txt", ".md":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	cur := &domain.Curriculum{}
	var sokePairs []SokePair
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		text := string(data)

		switch {
		case nameHas(name, "rank"):
			cur.Ranks = append(cur.Ranks, ParseRanks(text)...)
		case nameHas(name, "technique"):
			cur.Techniques = append(cur.Techniques, ParseTechniques(text)...)
		case nameHas(name, "school"):
			cur.Schools = append(cur.Schools, ParseSchools(text)...)
		case nameHas(name, "leadership"):
			sokePairs = append(sokePairs, ParseLeadership(text)...)
		case nameHas(name, "weapon"):
			cur.Weapons = append(cur.Weapons, ParseWeapons(text)...)
		case nameHas(name, "kyusho"):
			cur.Kyusho = append(cur.Kyusho, ParseKyusho(text)...)
		case nameHas(name, "glossary"):
			cur.Glossary = append(cur.Glossary, ParseGlossary(text)...)
		case nameHas(name, "kihon"):
			cur.Kihon = append(cur.Kihon, ParseKihon(text)...)
		case nameHas(name, "sanshin"):
			cur.Sanshin = append(cur.Sanshin, ParseSanshin(text)...)
		}
	}

	ApplySoke(cur.Schools, sokePairs)
	return cur, nil
}

func nameHas(name, keyword string) bool {
	return strings.Contains(strings.ToLower(name), keyword)
}

// fold lowercases, strips macrons, maps dash runes to spaces and
// collapses whitespace. Parsers match headers and names with it so the
// sheet's typography never matters.
func fold(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch r {
		case 'ō':
			r = 'o'
		case 'ū':
			r = 'u'
		case 'ā':
			r = 'a'
		case 'ī':
			r = 'i'
		case 'ē':
			r = 'e'
		case '-', '–', '—', '‐', '‑':
			r = ' '
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

var andWordRe = regexp.MustCompile(`(?i)\band\b`)

// splitItems splits a curriculum listing into entries. Sheets mix
// commas, semicolons, slashes, bullets, pipes and the word "and", so
// all of them separate. Order is kept, duplicates dropped.
func splitItems(s string) []string {
	s = andWordRe.ReplaceAllString(s, ",")
	s = strings.NewReplacer("•", ",", "・", ",", "|", ",", "\n", ",", ";", ",", "/", ",").Replace(s)

	fields := strings.Split(s, ",")
	seen := make(map[string]bool, len(fields))
	var out []string
	for _, f := range fields {
		item := strings.Trim(strings.TrimSpace(f), "-–— \t")
		if strings.HasPrefix(item, "(") && strings.HasSuffix(item, ")") {
			item = strings.TrimSpace(item[1 : len(item)-1])
		}
		item = strings.Join(strings.Fields(item), " ")
		if item == "" {
			continue
		}
		key := fold(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}
