package config

import "fmt"

// ExportConfig controls how finished plans are written out.
type ExportConfig struct {
	// Format is "json" or "csv".
	Format string `json:"format"`
	// Path is the output file; "-" writes to stdout.
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *ExportConfig) SetDefaults() {
	if c.Format == "" {
		c.Format = "json"
	}
	if c.Path == "" {
		c.Path = "-"
	}
}

// Validate checks the format selection.
func (c ExportConfig) Validate() error {
	if c.Format != "json" && c.Format != "csv" {
		return fmt.Errorf("unknown export format %s", c.Format)
	}
	return nil
}
