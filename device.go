package rtsa

import (
	"fmt"

	"github.com/sdrkit/rtsa/sys"
)

// LifecycleState is the wrapper-side device lifecycle position. It gates
// which operations are legal; calling a transition from any other state is
// a programming error and panics.
type LifecycleState int

const (
	StateUninit LifecycleState = iota
	StateOpened
	StateConnected
	StateStarted
)

func (s LifecycleState) String() string {
	switch s {
	case StateUninit:
		return "uninitialized"
	case StateOpened:
		return "opened"
	case StateConnected:
		return "connected"
	case StateStarted:
		return "started"
	}
	return fmt.Sprintf("lifecycle(%d)", int(s))
}

// DeviceState is the live hardware status as reported by the vendor
// library, distinct from the wrapper's lifecycle bookkeeping.
type DeviceState int

const (
	DeviceIdle DeviceState = iota
	DeviceConnecting
	DeviceConnected
	DeviceStarting
	DeviceRunning
	DeviceStopping
	DeviceDisconnecting
)

func (s DeviceState) String() string {
	switch s {
	case DeviceIdle:
		return "idle"
	case DeviceConnecting:
		return "connecting"
	case DeviceConnected:
		return "connected"
	case DeviceStarting:
		return "starting"
	case DeviceRunning:
		return "running"
	case DeviceStopping:
		return "stopping"
	case DeviceDisconnecting:
		return "disconnecting"
	}
	return fmt.Sprintf("devicestate(%d)", int(s))
}

// Device owns one opaque device token plus its session handle. Its
// lifecycle walks Uninit → Opened → Connected → Started and back down;
// every transition advances only on vendor success.
type Device struct {
	h       *Handle
	devType string
	serial  string
	dev     sys.Device
	state   LifecycleState

	// per-channel consume generation, bumped by Consume; packets carry a
	// snapshot so stale sample views fail loudly.
	gens map[int32]uint64
}

// Serial returns the device serial the Device was bound to.
func (d *Device) Serial() string { return d.serial }

// Lifecycle returns the wrapper-side lifecycle state.
func (d *Device) Lifecycle() LifecycleState { return d.state }

func (d *Device) require(want LifecycleState, op string) {
	if d.state != want {
		panic(fmt.Sprintf("rtsa: %s requires %s device, state is %s", op, want, d.state))
	}
}

// Open allocates the device-side structures without touching hardware.
// Uninit → Opened.
func (d *Device) Open() error {
	d.require(StateUninit, "Open")
	wt := sys.WString(d.devType)
	ws := sys.WString(d.serial)
	if err := statusError("open device", d.h.lib.OpenDevice(&d.h.h, &d.dev, &wt[0], &ws[0])); err != nil {
		return err
	}
	d.state = StateOpened
	return nil
}

// Close releases the device-side structures. Opened → Uninit.
func (d *Device) Close() error {
	d.require(StateOpened, "Close")
	if err := statusError("close device", d.h.lib.CloseDevice(&d.h.h, &d.dev)); err != nil {
		return err
	}
	d.state = StateUninit
	return nil
}

// Connect establishes the physical link. Opened → Connected.
func (d *Device) Connect() error {
	d.require(StateOpened, "Connect")
	if err := statusError("connect device", d.h.lib.ConnectDevice(&d.dev)); err != nil {
		return err
	}
	d.state = StateConnected
	return nil
}

// Disconnect tears down the physical link. Connected → Opened.
func (d *Device) Disconnect() error {
	d.require(StateConnected, "Disconnect")
	if err := statusError("disconnect device", d.h.lib.DisconnectDevice(&d.dev)); err != nil {
		return err
	}
	d.state = StateOpened
	return nil
}

// Start begins acquisition or transmission. Connected → Started.
func (d *Device) Start() error {
	d.require(StateConnected, "Start")
	if err := statusError("start device", d.h.lib.StartDevice(&d.dev)); err != nil {
		return err
	}
	d.state = StateStarted
	return nil
}

// Stop halts acquisition or transmission. Started → Connected.
func (d *Device) Stop() error {
	d.require(StateStarted, "Stop")
	if err := statusError("stop device", d.h.lib.StopDevice(&d.dev)); err != nil {
		return err
	}
	d.state = StateConnected
	return nil
}

// Release unwinds the device to Uninit from whatever state it is in,
// chaining stop, disconnect and close as needed. Errors from the unwind
// are discarded; Release is meant for defer.
func (d *Device) Release() {
	switch d.state {
	case StateStarted:
		_ = d.h.lib.StopDevice(&d.dev)
		fallthrough
	case StateConnected:
		_ = d.h.lib.DisconnectDevice(&d.dev)
		fallthrough
	case StateOpened:
		_ = d.h.lib.CloseDevice(&d.h.h, &d.dev)
	}
	d.state = StateUninit
}

// State queries the live hardware status. The underlying primitive answers
// through its status channel only, so a plain success here is itself
// anomalous and surfaces as an undocumented-status error.
func (d *Device) State() (DeviceState, error) {
	r := d.h.lib.GetDeviceState(&d.dev)
	switch r {
	case sys.ResultIdle:
		return DeviceIdle, nil
	case sys.ResultConnecting:
		return DeviceConnecting, nil
	case sys.ResultConnected:
		return DeviceConnected, nil
	case sys.ResultStarting:
		return DeviceStarting, nil
	case sys.ResultRunning:
		return DeviceRunning, nil
	case sys.ResultStopping:
		return DeviceStopping, nil
	case sys.ResultDisconnecting:
		return DeviceDisconnecting, nil
	case sys.ResultOK:
		return 0, anomalousError("device state", r)
	}
	if err := statusError("device state", r); err != nil {
		return 0, err
	}
	return 0, anomalousError("device state", r)
}
