package store

import (
	"os"
	"path/filepath"

	"github.com/fntrack/fntrack/internal/domain"
)

const metaFile = "meta.json"

// Meta is the single small metadata record for the data directory. It holds
// the schema version tag only; it is never an identifier counter.
type Meta struct {
	SchemaVersion int `json:"schema_version"`
}

// ReadMeta returns the data directory's meta record.
func (s *Store) ReadMeta() (Meta, error) {
	var meta Meta
	if err := readJSON(filepath.Join(s.root, metaFile), &meta); err != nil {
		if os.IsNotExist(err) {
			return Meta{}, &domain.NotFoundError{Kind: "meta record", ID: metaFile}
		}
		return Meta{}, err
	}
	return meta, nil
}

func (s *Store) writeMeta(meta Meta) error {
	return atomicWriteJSON(filepath.Join(s.root, metaFile), meta)
}
