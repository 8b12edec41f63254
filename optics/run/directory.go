package run

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

const (
	RunsDir       = "runs"
	LatestSymlink = "latest"
)

// Dir is the output directory of one CLI invocation
type Dir struct {
	Path      string    // Absolute path to the run directory
	ID        string    // Unique run identifier
	Timestamp time.Time // When the run was created
}

// Create makes a new run directory under root and points root/latest at it
func Create(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating runs directory: %w", err)
	}

	id := GenerateID()
	absPath, err := filepath.Abs(filepath.Join(root, id))
	if err != nil {
		return nil, fmt.Errorf("getting absolute path: %w", err)
	}

	if err := os.Mkdir(absPath, 0755); err != nil {
		return nil, fmt.Errorf("creating run directory: %w", err)
	}

	latestPath := filepath.Join(root, LatestSymlink)
	_ = os.Remove(latestPath)
	if err := os.Symlink(id, latestPath); err != nil {
		// The run is still usable without the link
		log.Warn("failed to create latest symlink", "path", latestPath, "err", err)
	}

	log.Debug("created run directory", "path", absPath)
	return &Dir{
		Path:      absPath,
		ID:        id,
		Timestamp: time.Now().UTC(),
	}, nil
}

// FilePath returns the absolute path for a file in the run directory
func (d *Dir) FilePath(filename string) string {
	return filepath.Join(d.Path, filename)
}

// CopyFile copies srcPath into the run directory under its own base name
func (d *Dir) CopyFile(srcPath string) error {
	content, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", srcPath, err)
	}

	destPath := d.FilePath(filepath.Base(srcPath))
	if err := os.WriteFile(destPath, content, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", destPath, err)
	}

	return nil
}
