package fund

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store is the persistence boundary: a private snapshot (with plaintext
// invite codes) and a public one (hashes only), kept in sync on every save.
// Writes go through a temp file and rename, so a failed save never corrupts
// the previous snapshot.
type Store struct {
	PrivateFile string
	PublicFile  string
}

// NewStore lays the snapshot pair out in a data directory, matching the
// files the dashboard site consumes.
func NewStore(dir string) *Store {
	return &Store{
		PrivateFile: filepath.Join(dir, "investors.json"),
		PublicFile:  filepath.Join(dir, "investors.pub.json"),
	}
}

// Load reads the private snapshot. A missing file yields a fresh fund with
// default terms: the first command ever run creates the store.
func (s *Store) Load() (*Fund, error) {
	f, err := os.Open(s.PrivateFile)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open fund store %q: %w", s.PrivateFile, err)
	}
	defer f.Close()
	return DecodeFund(f)
}

// Save writes both snapshots. Both documents are fully rendered in memory
// first; only then are the files swapped in, so a failure at any point
// leaves the prior pair readable and mutually consistent.
func (s *Store) Save(f *Fund) error {
	var private, public bytes.Buffer
	if err := EncodeFund(&private, f, true); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	if err := EncodeFund(&public, f, false); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	if err := writeFileAtomic(s.PrivateFile, private.Bytes(), 0600); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	if err := writeFileAtomic(s.PublicFile, public.Bytes(), 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	return nil
}

// writeFileAtomic writes data to a sibling temp file and renames it over the
// target.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
