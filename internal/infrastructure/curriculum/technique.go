package curriculum

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/bujinkan-tools/densho/internal/core/domain"
)

// Column order used when the catalog carries no header row.
var techniqueFields = []string{
	"name", "japanese", "translation", "type", "rank", "in_rank",
	"primary_focus", "safety", "partner_required", "solo", "tags", "description",
}

var columnAliases = map[string]string{
	"japanese name": "japanese",
	"jp":            "japanese",
	"trans":         "translation",
	"focus":         "primary_focus",
	"rank intro":    "rank",
	"rank_intro":    "rank",
	"in rank":       "in_rank",
	"partner":       "partner_required",
	"tag":           "tags",
}

// ParseTechniques reads the technique catalog, a CSV table living
// inside a markdown file. Heading and fence lines are stripped first;
// only comma-carrying lines reach the CSV reader. A first row
// containing a "name" column is a header, otherwise the canonical
// column order applies. Rows without a name are dropped.
func ParseTechniques(text string) []domain.TechniqueRecord {
	rows := csvRows(text)
	if len(rows) == 0 {
		return nil
	}

	header := make([]string, len(rows[0]))
	hasName := false
	for i, cell := range rows[0] {
		header[i] = canonColumn(cell)
		if header[i] == "name" {
			hasName = true
		}
	}
	body := rows
	if hasName {
		body = rows[1:]
	} else {
		header = techniqueFields
	}

	var out []domain.TechniqueRecord
	for _, row := range body {
		if rec, ok := techniqueFromRow(header, row); ok {
			out = append(out, rec)
		}
	}
	return out
}

func csvRows(text string) [][]string {
	var kept []string
	for _, raw := range splitLines(text) {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "```") {
			continue
		}
		if !strings.Contains(line, ",") {
			continue
		}
		kept = append(kept, raw)
	}
	if len(kept) == 0 {
		return nil
	}

	r := csv.NewReader(strings.NewReader(strings.Join(kept, "\n")))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // malformed line, reader resumes at the next one
		}
		rows = append(rows, row)
	}
	return rows
}

func canonColumn(cell string) string {
	k := fold(cell)
	if v, ok := columnAliases[k]; ok {
		return v
	}
	k = strings.ReplaceAll(k, " ", "_")
	if v, ok := columnAliases[k]; ok {
		return v
	}
	for _, f := range techniqueFields {
		if k == f {
			return f
		}
	}
	return ""
}

func techniqueFromRow(header, row []string) (domain.TechniqueRecord, bool) {
	var rec domain.TechniqueRecord
	n := len(header)
	if len(row) < n {
		n = len(row)
	}
	for i := 0; i < n; i++ {
		val := strings.TrimSpace(row[i])
		if val == "" {
			continue
		}
		switch header[i] {
		case "name":
			rec.Name = val
		case "japanese":
			rec.Japanese = val
		case "translation":
			rec.Translation = val
		case "type":
			rec.Type = val
		case "rank":
			rec.Rank = val
		case "in_rank":
			rec.InRank = parseTristate(val)
		case "primary_focus":
			rec.PrimaryFocus = val
		case "safety":
			rec.Safety = val
		case "partner_required":
			rec.PartnerRequired = parseTristate(val)
		case "solo":
			rec.Solo = parseTristate(val)
		case "tags":
			rec.Tags = splitTags(val)
		case "description":
			rec.Description = val
		}
	}
	if rec.Name == "" {
		return domain.TechniqueRecord{}, false
	}
	return rec, true
}

// parseTristate keeps blank and unrecognized cells as nil so a missing
// value never reads as "no".
func parseTristate(val string) *bool {
	switch fold(val) {
	case "1", "true", "yes", "y":
		v := true
		return &v
	case "0", "false", "no", "n":
		v := false
		return &v
	}
	return nil
}

func splitTags(val string) []string {
	var tags []string
	for _, t := range strings.FieldsFunc(val, func(r rune) bool { return r == '|' || r == ',' }) {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
