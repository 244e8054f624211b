package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/sdrkit/rtsa"
)

// Info prints the library version and a table of attached devices.
type Info struct {
	Memory        string        `help:"Library memory tier, honored by the first session only" enum:"small,medium,large,ludicrous" default:"medium"`
	RescanTimeout time.Duration `help:"Bound for one hardware rescan attempt" default:"10s"`
}

func (c *Info) Run(logger *slog.Logger) error {
	version, err := rtsa.Version()
	if err != nil {
		return err
	}
	fmt.Printf("RTSA library version: %s\n", version)

	h, err := rtsa.OpenWithMemory(rtsa.ParseMemory(c.Memory))
	if err != nil {
		return err
	}
	defer func() { _ = h.Close() }()

	if err := h.RescanDevices(c.RescanTimeout); err != nil {
		return err
	}
	devices, err := h.Devices(rtsa.DeviceTypeSpectranV6)
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		fmt.Println("no devices found")
		return nil
	}

	fmt.Printf("%-24s %-6s %-6s %-10s %-6s\n", "SERIAL", "READY", "BOOST", "SUPERSPEED", "ACTIVE")
	for _, d := range devices {
		fmt.Printf("%-24s %-6t %-6t %-10t %-6t\n", d.Serial, d.Ready, d.Boost, d.SuperSpeed, d.Active)
	}
	logger.Debug("enumeration complete", "devices", len(devices))
	return nil
}

// Reset issues a single-shot reset request for all attached devices.
type Reset struct {
	Memory string `help:"Library memory tier, honored by the first session only" enum:"small,medium,large,ludicrous" default:"medium"`
}

func (c *Reset) Run(logger *slog.Logger) error {
	h, err := rtsa.OpenWithMemory(rtsa.ParseMemory(c.Memory))
	if err != nil {
		return err
	}
	defer func() { _ = h.Close() }()

	if err := h.ResetDevices(); err != nil {
		return err
	}
	logger.Info("reset requested")
	return nil
}
