package ingest

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"
	"golang.org/x/net/html"
)

// FileReader extracts plain text from a source file by extension.
// Unknown extensions are treated as text with a UTF-8 guard.
type FileReader struct{}

func NewFileReader() *FileReader {
	return &FileReader{}
}

func (r *FileReader) Extract(path string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extractPDF(data)
	case ".xlsx":
		return extractWorkbook(data)
	case ".html", ".htm":
		return extractHTML(data)
	default:
		return extractPlain(path, data)
	}
}

func extractPlain(path string, data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("unsupported binary format: %s", filepath.Base(path))
	}
	return strings.TrimSpace(string(data)), nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	out, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// extractWorkbook flattens every sheet into tab-separated lines under a
// "Sheet: name" banner so rank tables keep their row grouping.
func extractWorkbook(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		if len(rows) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("Sheet: ")
		b.WriteString(sheet)
		b.WriteByte('\n')
		for _, row := range rows {
			b.WriteString(strings.Join(row, "\t"))
			b.WriteByte('\n')
		}
	}
	return strings.TrimSpace(b.String()), nil
}

var skippedHTMLTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
}

func extractHTML(data []byte) (string, error) {
	tz := html.NewTokenizer(bytes.NewReader(data))
	var b strings.Builder
	skip := 0
	for {
		switch tz.Next() {
		case html.ErrorToken:
			if tz.Err() == io.EOF {
				return strings.TrimSpace(b.String()), nil
			}
			return "", fmt.Errorf("parse html: %w", tz.Err())
		case html.StartTagToken:
			name, _ := tz.TagName()
			if skippedHTMLTags[string(name)] {
				skip++
			}
		case html.EndTagToken:
			name, _ := tz.TagName()
			if skippedHTMLTags[string(name)] && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip > 0 {
				continue
			}
			if txt := strings.TrimSpace(string(tz.Text())); txt != "" {
				b.WriteString(txt)
				b.WriteByte('\n')
			}
		}
	}
}
