package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// Spectrum captures one spectra sweep and renders it.
type Spectrum struct {
	DeviceFlags `embed:""`

	CenterFreq float64  `help:"Center frequency in Hz" default:"98e6"`
	RefLevel   float64  `help:"Reference level in dBm" default:"-20"`
	Assign     []string `name:"set" help:"Extra config assignments, path=value" placeholder:"PATH=VALUE"`
	Channel    int      `help:"Packet channel to read from" default:"2"`
	Width      int      `help:"Render width in columns (default: terminal width)"`
}

func (c *Spectrum) Run(logger *slog.Logger) error {
	h, dev, err := c.open(logger)
	if err != nil {
		return err
	}
	defer func() { _ = h.Close() }()
	defer dev.Release()

	if err := dev.Set("device/outputformat", "spectra"); err != nil {
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

	p, err := dev.Packet(c.Channel)
	if err != nil {
		return err
	}
	bins := append([]float32(nil), p.Spectrum()...)
	start := p.StartFrequency()
	step := p.StepFrequency()
	if err := dev.Consume(c.Channel); err != nil {
		return err
	}

	if err := dev.Stop(); err != nil {
		return err
	}
	if err := dev.Disconnect(); err != nil {
		return err
	}
	if err := dev.Close(); err != nil {
		return err
	}

	renderSweep(bins, start, step, c.renderWidth())
	return nil
}

func (c *Spectrum) renderWidth() int {
	if c.Width > 0 {
		return c.Width
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return 80
}

var sweepBlocks = []rune(" ▁▂▃▄▅▆▇█")

// renderSweep prints peak information and a one-line bar chart, bucketing
// bins down to the render width by peak-hold.
func renderSweep(bins []float32, startFreq, stepFreq float64, width int) {
	if len(bins) == 0 {
		fmt.Println("empty sweep")
		return
	}

	peakIdx := 0
	lo, hi := bins[0], bins[0]
	for i, v := range bins {
		if v > hi {
			hi = v
			peakIdx = i
		}
		if v < lo {
			lo = v
		}
	}
	peakFreq := startFreq + float64(peakIdx)*stepFreq
	fmt.Printf("sweep: %d bins, %.3f MHz .. %.3f MHz\n",
		len(bins), startFreq/1e6, (startFreq+float64(len(bins)-1)*stepFreq)/1e6)
	fmt.Printf("peak: %.1f dBm at %.3f MHz  (floor %.1f dBm)\n", hi, peakFreq/1e6, lo)

	if width > len(bins) {
		width = len(bins)
	}
	if width <= 0 || hi <= lo {
		return
	}
	line := make([]rune, width)
	for col := 0; col < width; col++ {
		a := col * len(bins) / width
		b := (col + 1) * len(bins) / width
		if b <= a {
			b = a + 1
		}
		m := bins[a]
		for _, v := range bins[a:b] {
			if v > m {
				m = v
			}
		}
		level := int(float32(len(sweepBlocks)-1) * (m - lo) / (hi - lo))
		line[col] = sweepBlocks[level]
	}
	fmt.Println(string(line))
}
