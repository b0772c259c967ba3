// Package storage keeps backup artifacts on a filesystem.
package storage

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// ArtifactStore reads and writes artifact files by bare filename. Names
// containing a path separator are rejected.
type ArtifactStore struct {
	fs afero.Fs
}

// NewArtifactStore wraps fs. Production code passes a base-path filesystem
// rooted at the backup directory; tests pass afero.NewMemMapFs.
func NewArtifactStore(fs afero.Fs) *ArtifactStore {
	return &ArtifactStore{fs: fs}
}

// NewDiskArtifactStore roots a store at dir, creating it if needed.
func NewDiskArtifactStore(dir string) (*ArtifactStore, error) {
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup dir: %w", err)
	}
	return NewArtifactStore(afero.NewBasePathFs(osFs, dir)), nil
}

func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || path.Clean(name) != name {
		return fmt.Errorf("invalid artifact name %q", name)
	}
	return nil
}

// Write stores data under name atomically: a reader sees either the old
// content or the full new content, never a partial file.
func (s *ArtifactStore) Write(name string, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}

	tmp := fmt.Sprintf(".%s.%s.tmp", name, uuid.NewString())
	f, err := s.fs.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create temp artifact: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("failed to sync artifact: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("failed to close artifact: %w", err)
	}

	if err := s.fs.Rename(tmp, name); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("failed to move artifact into place: %w", err)
	}
	return nil
}

// Read returns the content of name. A missing file yields an error
// matching os.ErrNotExist.
func (s *ArtifactStore) Read(name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(s.fs, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}
	return data, nil
}

func (s *ArtifactStore) Exists(name string) (bool, error) {
	if err := checkName(name); err != nil {
		return false, err
	}
	return afero.Exists(s.fs, name)
}

// Remove deletes name. A missing file yields an error matching
// os.ErrNotExist.
func (s *ArtifactStore) Remove(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := s.fs.Remove(name); err != nil {
		return fmt.Errorf("failed to remove artifact: %w", err)
	}
	return nil
}
