// Package history keeps an append-only JSON file of run records.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/valutatrade/hubrun/internal/models"
)

const emptyDocument = `{"runs":[]}`

// Store reads and appends run records in a single JSON document of the
// form {"runs":[...]}. The file is small and rewritten whole; only one
// run executes at a time, so no locking is needed.
type Store struct {
	Path  string
	Limit int
}

// NewStore creates a Store. A limit of zero keeps every record.
func NewStore(path string, limit int) *Store {
	return &Store{Path: path, Limit: limit}
}

// Append adds a record, trimming the oldest entries beyond the limit.
func (s *Store) Append(record models.RunRecord) error {
	doc, err := s.read()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshaling run record: %w", err)
	}

	doc, err = sjson.SetRaw(doc, "runs.-1", string(raw))
	if err != nil {
		return fmt.Errorf("appending run record: %w", err)
	}

	if s.Limit > 0 {
		for int(gjson.Get(doc, "runs.#").Int()) > s.Limit {
			doc, err = sjson.Delete(doc, "runs.0")
			if err != nil {
				return fmt.Errorf("trimming run history: %w", err)
			}
		}
	}

	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating history directory: %w", err)
		}
	}
	if err := os.WriteFile(s.Path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("writing history file: %w", err)
	}
	return nil
}

// Recent returns up to n records, newest first. n <= 0 returns all.
func (s *Store) Recent(n int) ([]models.RunRecord, error) {
	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	runs := gjson.Get(doc, "runs").Array()
	if n <= 0 || n > len(runs) {
		n = len(runs)
	}

	records := make([]models.RunRecord, 0, n)
	for i := len(runs) - 1; i >= len(runs)-n; i-- {
		var rec models.RunRecord
		if err := json.Unmarshal([]byte(runs[i].Raw), &rec); err != nil {
			return nil, fmt.Errorf("decoding run record: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *Store) read() (string, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return emptyDocument, nil
	}
	if err != nil {
		return "", fmt.Errorf("reading history file: %w", err)
	}
	if !gjson.ValidBytes(data) || !gjson.GetBytes(data, "runs").Exists() {
		// A corrupt history file should never block a run.
		return emptyDocument, nil
	}
	return string(data), nil
}
