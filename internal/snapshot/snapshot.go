// Package snapshot reads and writes the aggregated gallery file handed to
// consumers. The file is pretty-printed JSON so diffs between refreshes stay
// reviewable.
package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/bardionson/gallery-cli/internal/enrich"
)

// Write marshals collections to path, creating parent directories as needed.
// The file is written to a temp sibling and renamed so a crashed refresh never
// leaves a half-written snapshot behind.
func Write(path string, collections []enrich.Collection) error {
	data, err := json.MarshalIndent(collections, "", "  ")
	if err != nil {
		return eris.Wrap(err, "snapshot: marshal collections")
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "snapshot: create directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return eris.Wrap(err, "snapshot: create temp file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return eris.Wrapf(err, "snapshot: write %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return eris.Wrapf(err, "snapshot: close %s", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return eris.Wrapf(err, "snapshot: rename into %s", path)
	}
	return nil
}

// Load reads a snapshot previously produced by Write.
func Load(path string) ([]enrich.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "snapshot: read %s", path)
	}
	var collections []enrich.Collection
	if err := json.Unmarshal(data, &collections); err != nil {
		return nil, eris.Wrapf(err, "snapshot: parse %s", path)
	}
	return collections, nil
}
