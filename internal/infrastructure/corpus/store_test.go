package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bujinkan-tools/densho/internal/core/domain"
)

func sampleChunks() []domain.Chunk {
	return []domain.Chunk{
		{ID: 0, Text: "=== 6th Kyu ===\nNage: Seoi Nage", Source: "ranks.txt", Category: domain.CategoryRank},
		{ID: 1, Text: "Togakure Ryū profile", Source: "schools.txt", Category: domain.CategorySchool},
		{ID: 2, Text: "=== 7th Kyu ===", Source: "ranks.txt", Category: domain.CategoryRank},
	}
}

func TestStoreGet(t *testing.T) {
	s := NewStore(sampleChunks())
	ch, err := s.Get(1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ch.Source != "schools.txt" || ch.Category != domain.CategorySchool {
		t.Fatalf("Get(1) = %+v", ch)
	}

	if _, err := s.Get(99); !domain.IsKind(err, domain.ErrChunkNotFound) {
		t.Fatalf("Get(99) err = %v, want ErrChunkNotFound", err)
	}
}

func TestStoreIDsByCategorySortedCopy(t *testing.T) {
	s := NewStore(sampleChunks())
	ids := s.IDsByCategory(domain.CategoryRank)
	if len(ids) != 2 || ids[0] != 0 || ids[1] != 2 {
		t.Fatalf("IDsByCategory = %v", ids)
	}

	ids[0] = 42
	again := s.IDsByCategory(domain.CategoryRank)
	if again[0] != 0 {
		t.Fatal("IDsByCategory returned a shared slice")
	}

	if got := s.IDsByCategory(domain.CategoryKyusho); len(got) != 0 {
		t.Fatalf("IDsByCategory(kyusho) = %v, want empty", got)
	}
}

func TestWriterRoundTrip(t *testing.T) {
	dir := t.TempDir()
	if err := NewWriter(dir).SaveChunks(sampleChunks()); err != nil {
		t.Fatalf("SaveChunks: %v", err)
	}

	s, err := Load(Path(dir))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Count() != 3 {
		t.Fatalf("Count = %d, want 3", s.Count())
	}
	ch, err := s.Get(0)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ch.Text != "=== 6th Kyu ===\nNage: Seoi Nage" {
		t.Fatalf("chunk text = %q", ch.Text)
	}
}

func TestWriterReplacesExistingCorpus(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	if err := w.SaveChunks(sampleChunks()); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := w.SaveChunks(sampleChunks()[:1]); err != nil {
		t.Fatalf("second save: %v", err)
	}

	s, err := Load(Path(dir))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Count() != 1 {
		t.Fatalf("Count = %d, want 1 after rewrite", s.Count())
	}
}

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	raw := `[{"id":0,"text":"a","source":"x","category":"other"},{"id":0,"text":"b","source":"x","category":"other"}]`
	if err := os.WriteFile(Path(dir), []byte(raw), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Load(Path(dir)); !domain.IsKind(err, domain.ErrCorpusMisaligned) {
		t.Fatalf("Load err = %v, want ErrCorpusMisaligned", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "chunks.json")); err == nil {
		t.Fatal("Load succeeded on a missing artifact")
	}
}
