package usecase

import "strings"

// joinOxford joins items as prose: "A", "A and B", "A, B, and C".
// Empty items are dropped before joining.
func joinOxford(items []string) string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			cleaned = append(cleaned, item)
		}
	}
	switch len(cleaned) {
	case 0:
		return ""
	case 1:
		return cleaned[0]
	case 2:
		return cleaned[0] + " and " + cleaned[1]
	default:
		return strings.Join(cleaned[:len(cleaned)-1], ", ") + ", and " + cleaned[len(cleaned)-1]
	}
}

// joinComma joins items with ", ", dropping empties. Curriculum listings
// keep the sheet's own order, so no oxford comma here.
func joinComma(items []string) string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			cleaned = append(cleaned, item)
		}
	}
	return strings.Join(cleaned, ", ")
}

// titleWords capitalizes the first letter of every space-separated word.
func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		if len(r) > 0 && r[0] >= 'a' && r[0] <= 'z' {
			r[0] = r[0] - 'a' + 'A'
		}
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// yesNo renders a tristate flag, using dash for unknown.
func yesNo(v *bool, unknown string) string {
	if v == nil {
		return unknown
	}
	if *v {
		return "Yes"
	}
	return "No"
}
