//go:build darwin || freebsd || linux

package sys

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/ebitengine/purego"
)

var libraryFileName = func() string {
	if runtime.GOOS == "darwin" {
		return "libAaroniaRTSAAPI.dylib"
	}
	return "libAaroniaRTSAAPI.so"
}()

func defaultSearchDirs() []string {
	home, _ := os.UserHomeDir()
	dirs := []string{
		filepath.Join(home, "Aaronia", "RTSA", "Aaronia-RTSA-Suite-PRO"),
	}
	if runtime.GOOS == "darwin" {
		dirs = append(dirs, "/Applications/Aaronia RTSA-Suite PRO.app/Contents/Frameworks")
	} else {
		dirs = append(dirs, "/opt/aaronia/Aaronia-RTSA-Suite-PRO", "/usr/local/lib")
	}
	return dirs
}

func loadFrom(path string) (*Library, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	lib := &Library{}
	var bindErr error
	lib.register(func(fptr any, name string) {
		if bindErr != nil {
			return
		}
		defer func() {
			if r := recover(); r != nil {
				bindErr = fmt.Errorf("bind %s in %s: %v", name, path, r)
			}
		}()
		purego.RegisterLibFunc(fptr, handle, name)
	})
	if bindErr != nil {
		_ = purego.Dlclose(handle)
		return nil, bindErr
	}
	return lib, nil
}
