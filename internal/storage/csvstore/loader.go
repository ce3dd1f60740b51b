// Package csvstore reads the reviews dataset from disk. It is the only
// storage backend: records never persist back.
package csvstore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"review_insights/internal/domain"
)

// Default candidate filenames, preferred first.
const (
	PreferredFile = "BA_reviews_cleaned.csv"
	FallbackFile  = "BA_reviews.csv"
)

// TextColumn is the required free-text column.
const TextColumn = "reviews"

type Loader struct {
	dir        string
	candidates []string
}

// New builds a loader over dir. With no explicit candidates it tries the
// cleaned dataset first and falls back to the raw export.
func New(dir string, candidates ...string) *Loader {
	if len(candidates) == 0 {
		candidates = []string{PreferredFile, FallbackFile}
	}
	return &Loader{dir: dir, candidates: candidates}
}

// resolve returns the first candidate that exists on disk.
func (l *Loader) resolve() (string, error) {
	for _, name := range l.candidates {
		p := filepath.Join(l.dir, name)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("no dataset file in %s (tried %v): %w", l.dir, l.candidates, domain.ErrConfiguration)
}

// Load reads the dataset and returns the reviews column, one value per
// row. A leading unnamed index column is ignored; short rows are coerced
// to empty strings rather than failing the batch.
func (l *Loader) Load(ctx context.Context) ([]string, error) {
	path, err := l.resolve()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%s has no header row: %w", path, domain.ErrConfiguration)
	}

	col := -1
	for i, name := range header {
		if name == TextColumn {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("%s lacks required %q column: %w", path, TextColumn, domain.ErrConfiguration)
	}

	var out []string
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// unparseable row: degrade to an empty value, keep going
			out = append(out, "")
			continue
		}
		if col < len(row) {
			out = append(out, row[col])
		} else {
			out = append(out, "")
		}
	}
	return out, nil
}

// Fingerprint identifies the resolved file's current content by path,
// size and mtime. It changes whenever the source file does.
func (l *Loader) Fingerprint() (string, error) {
	path, err := l.resolve()
	if err != nil {
		return "", err
	}
	st, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	return fmt.Sprintf("%s:%d:%d", path, st.Size(), st.ModTime().UnixNano()), nil
}
