package cmd

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/sdrkit/rtsa/internal/log"
)

// Rx captures IQ sample packets to a file of interleaved little-endian
// float32 pairs.
type Rx struct {
	DeviceFlags `embed:""`

	CenterFreq float64  `help:"Center frequency in Hz" default:"98e6"`
	RefLevel   float64  `help:"Reference level in dBm" default:"-20"`
	Assign     []string `name:"set" help:"Extra config assignments, path=value" placeholder:"PATH=VALUE"`
	Count      int      `help:"Number of packets to capture" default:"100"`
	Channel    int      `help:"Packet channel to read from" default:"0"`
	Output     string   `help:"Output file (default iq-<session>.bin)"`
}

func (c *Rx) Run(logger *slog.Logger, raw log.RawLogger) error {
	session := uuid.NewString()
	output := c.Output
	if output == "" {
		output = "iq-" + session + ".bin"
	}
	logger = logger.With("session", session)

	h, dev, err := c.open(logger)
	if err != nil {
		return err
	}
	defer func() { _ = h.Close() }()
	defer dev.Release()

	if err := dev.Set("device/outputformat", "iq"); err != nil {
		return err
	}
	if err := dev.SetFloat("main/centerfreq", c.CenterFreq); err != nil {
		return err
	}
	if err := dev.SetFloat("main/reflevel", c.RefLevel); err != nil {
		return err
	}
	if err := applyAssignments(dev, c.Assign); err != nil {
		return err
	}

	if err := dev.Connect(); err != nil {
		return err
	}
	if err := dev.Start(); err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	w := bufio.NewWriter(f)

	logger.Info("capturing", "packets", c.Count, "channel", c.Channel, "output", output)
	var samples int
	for i := 0; i < c.Count; i++ {
		p, err := dev.Packet(c.Channel)
		if err != nil {
			return err
		}
		iq := p.IQ()
		if err := binary.Write(w, binary.LittleEndian, iq); err != nil {
			return err
		}
		raw.Log(c.Channel, p.StreamID(), samplePrefixBytes(p.Samples()))
		samples += len(iq)
		if err := dev.Consume(c.Channel); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	logger.Info("capture complete", "samples", samples)

	if err := dev.Stop(); err != nil {
		return err
	}
	if err := dev.Disconnect(); err != nil {
		return err
	}
	return dev.Close()
}

// samplePrefixBytes encodes the first few samples for the raw trace; the
// trace logger truncates anyway, so there is no point encoding the rest.
func samplePrefixBytes(samples []float32) []byte {
	n := len(samples)
	if n > 16 {
		n = 16
	}
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(samples[i]))
	}
	return out
}

type configSetter interface {
	Set(path, value string) error
}

func applyAssignments(dev configSetter, assigns []string) error {
	for _, a := range assigns {
		path, value, ok := strings.Cut(a, "=")
		if !ok {
			return fmt.Errorf("invalid assignment %q, want path=value", a)
		}
		if err := dev.Set(path, value); err != nil {
			return err
		}
	}
	return nil
}
