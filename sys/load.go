package sys

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// EnvLibraryDir names the environment variable holding a path list of
// directories to search for the vendor shared library.
const EnvLibraryDir = "RTSA_DIR"

// ErrLibraryNotFound is returned by Load when the shared library cannot be
// located in RTSA_DIR or the default install directories.
var ErrLibraryNotFound = errors.New("vendor library not found, set RTSA_DIR")

// Load locates the vendor shared library, loads it and binds every entry
// point into a Library table. Loading does not initialize the library;
// callers pair Init and Shutdown themselves.
func Load() (*Library, error) {
	path, err := locate()
	if err != nil {
		return nil, err
	}
	return loadFrom(path)
}

func locate() (string, error) {
	dirs := filepath.SplitList(os.Getenv(EnvLibraryDir))
	if len(dirs) == 0 || (len(dirs) == 1 && dirs[0] == "") {
		dirs = defaultSearchDirs()
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		p := filepath.Join(dir, libraryFileName)
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w (looked in %d directories)", ErrLibraryNotFound, len(dirs))
}
