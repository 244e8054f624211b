//go:build windows

package sys

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ebitengine/purego"
	"golang.org/x/sys/windows"
)

var libraryFileName = "AaroniaRTSAAPI.dll"

func defaultSearchDirs() []string {
	var dirs []string
	for _, env := range []string{"ProgramFiles", "ProgramFiles(x86)"} {
		if pf := os.Getenv(env); pf != "" {
			dirs = append(dirs, filepath.Join(pf, "Aaronia AG", "Aaronia RTSA-Suite PRO", "sdk"))
		}
	}
	return dirs
}

func loadFrom(path string) (*Library, error) {
	handle, err := windows.LoadLibraryEx(path, 0, windows.LOAD_WITH_ALTERED_SEARCH_PATH)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	lib := &Library{}
	var bindErr error
	lib.register(func(fptr any, name string) {
		if bindErr != nil {
			return
		}
		addr, err := windows.GetProcAddress(handle, name)
		if err != nil {
			bindErr = fmt.Errorf("bind %s in %s: %w", name, path, err)
			return
		}
		purego.RegisterFunc(fptr, addr)
	})
	if bindErr != nil {
		_ = windows.FreeLibrary(handle)
		return nil, bindErr
	}
	return lib, nil
}
