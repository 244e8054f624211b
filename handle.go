package rtsa

import (
	"time"
	"unsafe"

	"github.com/sdrkit/rtsa/sys"
)

// DeviceTypeSpectranV6 is the enumeration type filter for SPECTRAN V6
// analyzers; DeviceTypeSpectranV6Raw selects the raw IQ variant.
const (
	DeviceTypeSpectranV6    = "spectranv6"
	DeviceTypeSpectranV6Raw = "spectranv6/raw"
)

// DeviceInfo is an immutable enumeration snapshot of one attached device.
type DeviceInfo struct {
	Serial     string
	Ready      bool
	Boost      bool
	SuperSpeed bool
	Active     bool
}

// Handle is one session into the vendor library, created by Open and
// destroyed by Close. Handles share the process-wide library but are
// otherwise independent.
type Handle struct {
	lib  *sys.Library
	h    sys.Handle
	open bool
}

// Open opens a session with the default medium memory tier.
func Open() (*Handle, error) {
	return OpenWithMemory(MemoryMedium)
}

// OpenWithMemory opens a session. The memory tier only takes effect when
// this is the first open session in the process.
func OpenWithMemory(mem Memory) (*Handle, error) {
	lib, err := acquire(mem)
	if err != nil {
		return nil, err
	}
	h := &Handle{lib: lib, open: true}
	if err := statusError("open session", lib.Open(&h.h)); err != nil {
		release()
		return nil, err
	}
	return h, nil
}

// Close ends the session and releases the shared library reference,
// shutting the library down if this was the last session. Closing an
// already closed handle is a no-op.
func (h *Handle) Close() error {
	if !h.open {
		return nil
	}
	h.open = false
	err := statusError("close session", h.lib.Close(&h.h))
	release()
	return err
}

func (h *Handle) ensureOpen() {
	if !h.open {
		panic("rtsa: use of closed handle")
	}
}

// RescanDevices triggers a hardware rescan, retrying for as long as the
// vendor library answers retry. The timeout bounds one underlying scan
// attempt, not the retry loop.
func (h *Handle) RescanDevices(timeout time.Duration) error {
	h.ensureOpen()
	ms := int32(timeout / time.Millisecond)
	for {
		r := h.lib.RescanDevices(&h.h, ms)
		if r == sys.ResultRetry {
			continue
		}
		return statusError("rescan devices", r)
	}
}

// ResetDevices issues a single-shot reset request for all attached
// devices, with no retry loop.
func (h *Handle) ResetDevices() error {
	h.ensureOpen()
	return statusError("reset devices", h.lib.ResetDevices(&h.h))
}

// Devices enumerates attached devices matching devType, in index order,
// until the vendor library reports the list exhausted. An empty devType
// selects DeviceTypeSpectranV6.
func (h *Handle) Devices(devType string) ([]DeviceInfo, error) {
	h.ensureOpen()
	if devType == "" {
		devType = DeviceTypeSpectranV6
	}
	wt := sys.WString(devType)

	var out []DeviceInfo
	for i := int32(0); ; i++ {
		var info sys.DeviceInfo
		info.Cbsize = int64(unsafe.Sizeof(info))
		r := h.lib.EnumDevice(&h.h, &wt[0], i, &info)
		if r == sys.ResultEmpty {
			return out, nil
		}
		if err := statusError("enumerate devices", r); err != nil {
			return nil, err
		}
		out = append(out, DeviceInfo{
			Serial:     sys.GoStringN(info.SerialNumber[:]),
			Ready:      info.Ready != 0,
			Boost:      info.Boost != 0,
			SuperSpeed: info.SuperSpeed != 0,
			Active:     info.Active != 0,
		})
	}
}

// Device returns the first ready SPECTRAN V6 device, in Uninit state.
func (h *Handle) Device() (*Device, error) {
	infos, err := h.Devices(DeviceTypeSpectranV6)
	if err != nil {
		return nil, err
	}
	for _, info := range infos {
		if info.Ready {
			return h.DeviceBySerial(DeviceTypeSpectranV6, info.Serial), nil
		}
	}
	return nil, statusError("select device", sys.ResultErrorNotFound)
}

// DeviceBySerial returns a Device bound to the given type and serial, in
// Uninit state. The device is not validated until Open is called on it.
func (h *Handle) DeviceBySerial(devType, serial string) *Device {
	h.ensureOpen()
	if devType == "" {
		devType = DeviceTypeSpectranV6
	}
	return &Device{h: h, devType: devType, serial: serial, gens: make(map[int32]uint64)}
}
