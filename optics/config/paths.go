package config

import (
	"os"
	"path/filepath"
)

// PathResolver finds the files a scene refers to. Relative references are anchored at the scene
// file's directory so a scene and its defaults file travel together.
type PathResolver struct {
	sceneDir string
}

func NewPathResolver(sceneDir string) *PathResolver {
	return &PathResolver{sceneDir: sceneDir}
}

func (pr *PathResolver) ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(pr.sceneDir, path)
}

// FileExists reports whether path names a regular file once resolved
func (pr *PathResolver) FileExists(path string) bool {
	info, err := os.Stat(pr.ResolvePath(path))
	return err == nil && info.Mode().IsRegular()
}
