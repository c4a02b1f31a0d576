// Package report formats generated coordinate sets for output and persists
// them to disk.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"guessrset/internal/geo"
)

// Document is the JSON payload printed to stdout and optionally saved to a
// file: {"locations": [[lat, lon], ...]}.
type Document struct {
	Locations [][2]float64 `json:"locations"`
}

// New builds a Document from generated samples, preserving their order.
func New(samples []geo.Sample) Document {
	doc := Document{Locations: make([][2]float64, 0, len(samples))}
	for _, s := range samples {
		doc.Locations = append(doc.Locations, [2]float64{s.Lat, s.Lon})
	}
	return doc
}

// MarshalIndented renders the document with 4-space indentation.
func (d Document) MarshalIndented() ([]byte, error) {
	return json.MarshalIndent(d, "", "    ")
}

// Save writes the document to path atomically (temp file + rename), so a
// crash never leaves a half-written set behind.
func (d Document) Save(path string) error {
	data, err := d.MarshalIndented()
	if err != nil {
		return err
	}
	return writeFileAtomic(path, append(data, '\n'), 0o644)
}

// OSMLink returns the static OpenStreetMap link for a sample at zoom 10.
func OSMLink(s geo.Sample) string {
	return fmt.Sprintf("https://www.openstreetmap.org/#map=10/%v/%v", s.Lat, s.Lon)
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	_ = tmp.Sync() // best-effort durability
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
