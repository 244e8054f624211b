package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/sdrkit/rtsa"
)

// ConfigCmd groups configuration-tree subcommands.
type ConfigCmd struct {
	Get    ConfigGet    `cmd:"" help:"Read one configuration node"`
	Set    ConfigSet    `cmd:"" help:"Write one configuration value"`
	Export ConfigExport `cmd:"" help:"Export the configuration tree"`
	Init   ConfigInit   `cmd:"" help:"Generate a configuration template for a command"`
}

// ConfigGet reads one node (or subtree) by path.
type ConfigGet struct {
	DeviceFlags `embed:""`
	Path string `arg:"" help:"Slash-delimited node path, e.g. main/centerfreq"`
}

func (c *ConfigGet) Run(logger *slog.Logger) error {
	h, dev, err := c.open(logger)
	if err != nil {
		return err
	}
	defer func() { _ = h.Close() }()
	defer dev.Release()

	item, err := dev.Get(c.Path)
	if err != nil {
		return err
	}
	return writeEncoded(os.Stdout, rtsa.Export(item), "yaml")
}

// ConfigSet writes one value as text.
type ConfigSet struct {
	DeviceFlags `embed:""`
	Path  string `arg:"" help:"Slash-delimited node path"`
	Value string `arg:"" help:"Value in text form"`
}

func (c *ConfigSet) Run(logger *slog.Logger) error {
	h, dev, err := c.open(logger)
	if err != nil {
		return err
	}
	defer func() { _ = h.Close() }()
	defer dev.Release()

	if err := dev.Set(c.Path, c.Value); err != nil {
		return err
	}
	logger.Info("config written", "path", c.Path, "value", c.Value)
	return nil
}

// ConfigExport dumps the whole configuration tree.
type ConfigExport struct {
	DeviceFlags `embed:""`
	Format string `help:"Output format" enum:"json,yaml,toml" default:"yaml"`
	Output string `help:"Destination file (defaults to stdout)"`
}

func (c *ConfigExport) Run(logger *slog.Logger) error {
	h, dev, err := c.open(logger)
	if err != nil {
		return err
	}
	defer func() { _ = h.Close() }()
	defer dev.Release()

	item, err := dev.Config()
	if err != nil {
		return err
	}
	return writeExport(rtsa.Export(item), c.Format, c.Output)
}

// Health dumps the health telemetry tree, which shares the configuration
// tree's shape.
type Health struct {
	DeviceFlags `embed:""`
	Format string `help:"Output format" enum:"json,yaml,toml" default:"yaml"`
	Output string `help:"Destination file (defaults to stdout)"`
}

func (c *Health) Run(logger *slog.Logger) error {
	h, dev, err := c.open(logger)
	if err != nil {
		return err
	}
	defer func() { _ = h.Close() }()
	defer dev.Release()

	item, err := dev.Health()
	if err != nil {
		return err
	}
	return writeExport(rtsa.Export(item), c.Format, c.Output)
}

func writeExport(value any, format, output string) error {
	if output == "" {
		return writeEncoded(os.Stdout, value, format)
	}
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return writeEncoded(f, value, format)
}

func writeEncoded(w *os.File, value any, format string) error {
	var data []byte
	var err error
	switch format {
	case "json":
		data, err = json.MarshalIndent(value, "", "  ")
	case "toml":
		data, err = toml.Marshal(value)
	default:
		data, err = yaml.Marshal(value)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	_, err = w.Write(data)
	return err
}
