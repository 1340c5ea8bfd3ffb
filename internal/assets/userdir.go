package assets

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// appDirName is the directory name used under XDG base directories.
const appDirName = "mdbook-embedify"

// UserTemplateDir returns the per-user template directory,
// $XDG_DATA_HOME/mdbook-embedify/templates. The directory may not exist.
func UserTemplateDir() string {
	return filepath.Join(xdg.DataHome, appDirName, "templates")
}

// userLoader returns a FilesystemLoader for dir, or nil when dir does not
// exist.
func userLoader(dir string) *FilesystemLoader {
	if dir == "" {
		return nil
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil
	}
	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		return nil
	}
	return loader
}
