package jsondb

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	usersFile     = "usuarios.json"
	articlesFile  = "articulos.json"
	sequencesFile = "secuencias.json"
)

type sequences struct {
	Users    int `json:"usuarios"`
	Articles int `json:"articulos"`
}

// files is the data directory
type files string

func openFiles(dir string) (files, error) {
	if dir == "" {
		return "", errors.New("no data directory given")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating data directory: %w", err)
	}
	return files(dir), nil
}

func (f files) path(name string) string {
	return filepath.Join(string(f), name)
}

// read decodes a file into v. A missing or empty file leaves v unchanged.
func (f files) read(name string, v any) error {
	data, err := os.ReadFile(f.path(name))
	if errors.Is(err, fs.ErrNotExist) || (err == nil && len(data) == 0) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error reading %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("error decoding %s: %w", name, err)
	}
	return nil
}

// write replaces a file atomically.
func (f files) write(name string, v any) error {

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(string(f), name+".*.tmp")
	if err != nil {
		return fmt.Errorf("error writing %s: %w", name, err)
	}
	defer os.Remove(tmp.Name()) // fails after a successful rename, that's fine

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error writing %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), f.path(name)); err != nil {
		return fmt.Errorf("error writing %s: %w", name, err)
	}
	return nil
}

// next increments and returns a counter in secuencias.json.
// Data written by older versions has no counters, so the counter never falls below maxID.
func (f files) next(counter func(*sequences) *int, maxID int) (int, error) {
	var seq sequences
	if err := f.read(sequencesFile, &seq); err != nil {
		return 0, err
	}
	var c = counter(&seq)
	if *c < maxID {
		*c = maxID
	}
	*c++
	if err := f.write(sequencesFile, seq); err != nil {
		return 0, err
	}
	return *c, nil
}
