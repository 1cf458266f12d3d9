package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"

	"github.com/Alia5/mouseplay/internal/configpaths"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// InitCmd scaffolds a template mapping file covering all three mapping
// variants (spec.md §6), so an operator has a working starting point to
// edit rather than an empty array.
type InitCmd struct {
	Output string `arg:"" help:"Destination file path."`
	Format string `help:"Output format." enum:"json,yaml,toml" default:"json"`
	Force  bool   `help:"Overwrite the destination if it already exists."`
}

func (c *InitCmd) Run(logger *slog.Logger) error {
	if !c.Force {
		if _, err := os.Stat(c.Output); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}
	if err := configpaths.EnsureDir(c.Output); err != nil {
		return err
	}

	template := defaultMappingTemplate()

	var data []byte
	var err error
	switch c.Format {
	case "yaml":
		data, err = yaml.Marshal(template)
	case "toml":
		data, err = toml.Marshal(map[string]any{"mappings": template})
	default:
		data, err = json.MarshalIndent(template, "", "  ")
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(c.Output, data, 0o644); err != nil {
		return err
	}
	logger.Info("wrote mapping template", "path", c.Output, "format", c.Format)
	return nil
}

// defaultMappingTemplate covers one of each mapping variant with sane
// defaults, using the raw wire shape mapper.LoadBytes decodes (tag
// discriminator plus the JSON field names from spec.md §6) rather than the
// typed Mapping structs, so the same map marshals correctly for all three
// output formats.
func defaultMappingTemplate() []map[string]any {
	return []map[string]any{
		{
			"type":   "Button",
			"input":  "w",
			"output": "cross",
		},
		{
			"type":   "Axis",
			"input":  "space",
			"output": "ly",
			"value":  -1.0,
		},
		{
			"type":         "Mouse",
			"output_x":     "rx",
			"output_y":     "ry",
			"multiplier_x": 2.5,
			"multiplier_y": 2.5,
			"dead_zone_x":  8,
			"dead_zone_y":  8,
			"sensitivity":  1.0,
			"exponent":     1.0,
			"shape":        "square",
		},
	}
}
