// Package cmd defines the rtsactl command tree.
package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/sdrkit/rtsa"
)

// CLI is the root command structure parsed by kong.
type CLI struct {
	Log struct {
		Level   string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"RTSACTL_LOG_LEVEL"`
		File    string `help:"Log file path (rotated); empty logs to console" env:"RTSACTL_LOG_FILE"`
		RawFile string `help:"Raw packet trace file path" env:"RTSACTL_LOG_RAW_FILE"`
	} `embed:"" prefix:"log."`

	ConfigPath string `name:"config" help:"Path to a config file (JSON, YAML or TOML)" type:"path"`

	Info     Info       `cmd:"" help:"Show library version and attached devices"`
	Reset    Reset      `cmd:"" help:"Request a reset of all attached devices"`
	Config   ConfigCmd  `cmd:"" help:"Read, write and export the device configuration tree"`
	Health   Health     `cmd:"" help:"Export the device health tree"`
	Rx       Rx         `cmd:"" help:"Capture IQ sample packets to a file"`
	Spectrum Spectrum   `cmd:"" help:"Capture and render one spectrum sweep"`
}

// DeviceFlags are shared by every command that talks to a device.
type DeviceFlags struct {
	Serial        string        `help:"Device serial number (default: first ready device)"`
	DeviceType    string        `help:"Enumeration type filter" default:"spectranv6"`
	Memory        string        `help:"Library memory tier, honored by the first session only" enum:"small,medium,large,ludicrous" default:"medium"`
	RescanTimeout time.Duration `help:"Bound for one hardware rescan attempt" default:"10s"`
}

// open brings up a session and returns the selected device in Opened
// state. Callers release the device and close the handle themselves.
func (f *DeviceFlags) open(logger *slog.Logger) (*rtsa.Handle, *rtsa.Device, error) {
	h, err := rtsa.OpenWithMemory(rtsa.ParseMemory(f.Memory))
	if err != nil {
		return nil, nil, fmt.Errorf("open session: %w", err)
	}
	if err := h.RescanDevices(f.RescanTimeout); err != nil {
		_ = h.Close()
		return nil, nil, fmt.Errorf("rescan: %w", err)
	}

	var dev *rtsa.Device
	if f.Serial != "" {
		dev = h.DeviceBySerial(f.DeviceType, f.Serial)
	} else {
		dev, err = h.Device()
		if err != nil {
			_ = h.Close()
			return nil, nil, fmt.Errorf("select device: %w", err)
		}
	}
	if err := dev.Open(); err != nil {
		_ = h.Close()
		return nil, nil, fmt.Errorf("open device %s: %w", dev.Serial(), err)
	}
	logger.Debug("device opened", "serial", dev.Serial())
	return h, dev, nil
}
