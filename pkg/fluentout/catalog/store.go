package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ukaji3/fluentout-go/pkg/fluentout/models"
	"github.com/ukaji3/fluentout-go/pkg/fluentout/parser"
)

// ErrStoreNotFound indicates that the reference store does not exist yet.
var ErrStoreNotFound = errors.New("reference store not found")

// Store persists reference records across runs.
type Store interface {
	// Load returns all valid records in stored order.
	Load() ([]models.Quantity, error)
	// Append adds a record. A record of the same name is rewritten in place.
	Append(q models.Quantity) error
	// Update rewrites the first record of the same name, or appends it.
	Update(q models.Quantity) error
	// Location names the store in operator messages.
	Location() string
}

// FileStore is a Store backed by a delimiter-separated text file.
type FileStore struct {
	Path      string
	Delimiter rune
}

// NewFileStore creates a FileStore. A zero delimiter selects the default.
func NewFileStore(path string, delim rune) *FileStore {
	if delim == 0 {
		delim = parser.DefaultDelimiter
	}
	return &FileStore{Path: path, Delimiter: delim}
}

// Location implements Store.
func (s *FileStore) Location() string {
	return s.Path
}

// Load implements Store.
func (s *FileStore) Load() ([]models.Quantity, error) {
	lines, err := s.readLines()
	if err != nil {
		return nil, err
	}
	return parser.ParseReferences(lines, s.Delimiter), nil
}

// Append implements Store.
func (s *FileStore) Append(q models.Quantity) error {
	lines, err := s.readLines()
	if err != nil && !errors.Is(err, ErrStoreNotFound) {
		return err
	}
	if s.find(lines, q.Name) >= 0 {
		return s.Update(q)
	}

	return s.writeLines(append(lines, parser.FormatReference(q, s.Delimiter)))
}

// Update implements Store.
func (s *FileStore) Update(q models.Quantity) error {
	lines, err := s.readLines()
	if err != nil && !errors.Is(err, ErrStoreNotFound) {
		return err
	}

	record := parser.FormatReference(q, s.Delimiter)
	if i := s.find(lines, q.Name); i >= 0 {
		lines[i] = record
	} else {
		lines = append(lines, record)
	}
	return s.writeLines(lines)
}

func (s *FileStore) find(lines []string, name string) int {
	for i, line := range lines {
		if parser.ReferenceName(line, s.Delimiter) == name {
			return i
		}
	}
	return -1
}

func (s *FileStore) readLines() ([]string, error) {
	if _, err := os.Stat(s.Path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrStoreNotFound, s.Path)
	}
	lines, err := parser.ReadLines(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference store: %w", err)
	}
	return lines, nil
}

func (s *FileStore) writeLines(lines []string) error {
	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("failed to write reference store: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write reference store: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write reference store: %w", err)
	}
	return f.Close()
}

// MemStore is an in-memory Store. Nothing outlives the process.
type MemStore struct {
	Records []models.Quantity
}

// NewMemStore creates a MemStore seeded with records.
func NewMemStore(records ...models.Quantity) *MemStore {
	return &MemStore{Records: append([]models.Quantity(nil), records...)}
}

// Location implements Store.
func (m *MemStore) Location() string {
	return "(in memory)"
}

// Load implements Store.
func (m *MemStore) Load() ([]models.Quantity, error) {
	return append([]models.Quantity(nil), m.Records...), nil
}

// Append implements Store.
func (m *MemStore) Append(q models.Quantity) error {
	return m.Update(q)
}

// Update implements Store.
func (m *MemStore) Update(q models.Quantity) error {
	q.Occurrences = 0
	for i := range m.Records {
		if m.Records[i].Name == q.Name {
			m.Records[i] = q
			return nil
		}
	}
	m.Records = append(m.Records, q)
	return nil
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MemStore)(nil)
)
