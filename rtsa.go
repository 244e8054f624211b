// Package rtsa wraps the vendor spectrum analyzer API: library lifecycle,
// device discovery, the device state machine, the hierarchical
// configuration tree and the packet streaming interface.
//
// The vendor library is a process-wide resource. Opening the first Handle
// loads and initializes it, closing the last one shuts it down. Devices,
// handles and packets are owned by their caller and are not safe for
// concurrent use without external synchronization.
package rtsa

import (
	"fmt"
	"sync"

	"github.com/sdrkit/rtsa/sys"
)

// Memory is the buffer sizing tier handed to the vendor library. It is
// honored only when the first Handle in the process is opened; later
// opens share the already initialized library.
type Memory uint32

const (
	MemorySmall Memory = iota
	MemoryMedium
	MemoryLarge
	MemoryLudicrous
)

func (m Memory) String() string {
	switch m {
	case MemorySmall:
		return "small"
	case MemoryMedium:
		return "medium"
	case MemoryLarge:
		return "large"
	case MemoryLudicrous:
		return "ludicrous"
	}
	return fmt.Sprintf("memory(%d)", uint32(m))
}

// ParseMemory converts a tier name to a Memory value. Unknown names and
// the empty string map to MemoryMedium.
func ParseMemory(s string) Memory {
	switch s {
	case "small":
		return MemorySmall
	case "large":
		return MemoryLarge
	case "ludicrous", "largest":
		return MemoryLudicrous
	default:
		return MemoryMedium
	}
}

// Process-wide library state. The mutex guards the whole check-and-mutate
// sequence of acquire/release; the loaded function table is cached for the
// process lifetime even while the handle count is zero.
var (
	libMu         sync.Mutex
	libTable      *sys.Library
	activeHandles int

	loadLibrary = sys.Load
)

// loadTableLocked returns the cached function table, loading the shared
// library on first use. Callers hold libMu.
func loadTableLocked() (*sys.Library, error) {
	if libTable != nil {
		return libTable, nil
	}
	l, err := loadLibrary()
	if err != nil {
		return nil, err
	}
	libTable = l
	return l, nil
}

// acquire registers one more consumer of the vendor library, initializing
// it on the zero-to-one transition. A failed initialization leaves no
// partial state behind.
func acquire(mem Memory) (*sys.Library, error) {
	libMu.Lock()
	defer libMu.Unlock()

	l, err := loadTableLocked()
	if err != nil {
		return nil, err
	}
	if activeHandles == 0 {
		if err := statusError("init library", l.Init(uint32(mem))); err != nil {
			return nil, err
		}
	}
	activeHandles++
	return l, nil
}

// release drops one consumer and shuts the library down when the count
// returns to zero. A shutdown failure is a fatal internal condition: it is
// raised to the releasing caller as a panic.
func release() {
	libMu.Lock()
	defer libMu.Unlock()

	if activeHandles <= 0 {
		panic("rtsa: release without matching acquire")
	}
	activeHandles--
	if activeHandles == 0 {
		if err := statusError("shutdown library", libTable.Shutdown()); err != nil {
			panic("rtsa: library shutdown failed: " + err.Error())
		}
	}
}

// Version reports the vendor library version as "major.minor". It loads
// the shared library if needed but does not initialize it.
func Version() (string, error) {
	libMu.Lock()
	defer libMu.Unlock()

	l, err := loadTableLocked()
	if err != nil {
		return "", err
	}
	v := l.Version()
	return fmt.Sprintf("%d.%d", v>>16, v&0xffff), nil
}
