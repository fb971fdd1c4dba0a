package slot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var _ Slot = (*FileSlot)(nil)
var _ HealthChecker = (*FileSlot)(nil)

// FileSlot stores the state in a JSON file. Writes go through a temp file
// and a rename so a crash mid-write never leaves a torn slot behind.
type FileSlot struct {
	path string
}

// NewFileSlot creates a file slot at dir/name.json, creating dir if needed.
func NewFileSlot(dir, name string) (*FileSlot, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create slot dir: %w", err)
	}
	return &FileSlot{path: filepath.Join(dir, name+".json")}, nil
}

// Path returns the location of the slot file.
func (f *FileSlot) Path() string { return f.path }

func (f *FileSlot) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read slot file: %w", err)
	}
	return data, nil
}

func (f *FileSlot) Write(_ context.Context, data []byte) error {
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp slot file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("rename slot file: %w", err)
	}
	return nil
}

func (f *FileSlot) IsHealthy(_ context.Context) (bool, error) {
	if _, err := os.Stat(filepath.Dir(f.path)); err != nil {
		return false, fmt.Errorf("stat slot dir: %w", err)
	}
	return true, nil
}
