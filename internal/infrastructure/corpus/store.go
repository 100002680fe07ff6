package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bujinkan-tools/densho/internal/core/domain"
)

// FileName is the chunk corpus artifact written at ingestion time and
// loaded once at startup.
const FileName = "chunks.json"

// Path returns the corpus artifact location under an index directory.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Store serves the immutable chunk corpus. All lookups are in-memory;
// the corpus never changes after Load.
type Store struct {
	chunks     map[int]domain.Chunk
	byCategory map[domain.Category][]int
}

func NewStore(chunks []domain.Chunk) *Store {
	s := &Store{
		chunks:     make(map[int]domain.Chunk, len(chunks)),
		byCategory: make(map[domain.Category][]int),
	}
	for _, ch := range chunks {
		s.chunks[ch.ID] = ch
		s.byCategory[ch.Category] = append(s.byCategory[ch.Category], ch.ID)
	}
	for _, ids := range s.byCategory {
		sort.Ints(ids)
	}
	return s
}

// Load reads the chunks.json artifact. Duplicate IDs mean the artifact
// no longer lines up with the vector index, which is fatal.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chunk corpus: %w", err)
	}
	var chunks []domain.Chunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, fmt.Errorf("decode chunk corpus: %w", err)
	}

	store := NewStore(chunks)
	if store.Count() != len(chunks) {
		return nil, domain.WrapError(domain.ErrCorpusMisaligned, "load chunk corpus",
			fmt.Errorf("%d records, %d unique ids", len(chunks), store.Count()))
	}
	return store, nil
}

func (s *Store) Get(id int) (domain.Chunk, error) {
	ch, ok := s.chunks[id]
	if !ok {
		return domain.Chunk{}, fmt.Errorf("chunk %d: %w", id, domain.ErrChunkNotFound)
	}
	return ch, nil
}

func (s *Store) Count() int {
	return len(s.chunks)
}

// IDsByCategory returns the sorted chunk IDs of one category. The slice
// is a copy, callers may reorder it.
func (s *Store) IDsByCategory(category domain.Category) []int {
	ids := s.byCategory[category]
	out := make([]int, len(ids))
	copy(out, ids)
	return out
}

// Writer persists the chunk corpus produced by ingestion. The artifact
// is written to a temp file and renamed so readers never observe a
// partial corpus.
type Writer struct {
	dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

func (w *Writer) SaveChunks(chunks []domain.Chunk) error {
	if chunks == nil {
		chunks = []domain.Chunk{}
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}

	tmp, err := os.CreateTemp(w.dir, "chunks-*.json")
	if err != nil {
		return fmt.Errorf("create temp corpus file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := json.NewEncoder(tmp).Encode(chunks); err != nil {
		tmp.Close()
		return fmt.Errorf("encode chunk corpus: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp corpus file: %w", err)
	}
	if err := os.Rename(tmp.Name(), Path(w.dir)); err != nil {
		return fmt.Errorf("replace chunk corpus: %w", err)
	}
	return nil
}
