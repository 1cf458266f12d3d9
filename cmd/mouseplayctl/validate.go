package main

import (
	"log/slog"
	"path/filepath"

	"github.com/Alia5/mouseplay/mapper"
)

// ValidateCmd loads a mapping file through the same mapper.Load path the
// injected library uses and reports the first decode error, if any.
type ValidateCmd struct {
	Path   string `arg:"" help:"Path to the mapping file."`
	Format string `help:"Mapping file format; inferred from the file extension if omitted." enum:"json,yaml,toml," default:""`
}

func (c *ValidateCmd) Run(logger *slog.Logger) error {
	format := mapper.FormatFromExtension(c.Format)
	if c.Format == "" {
		format = mapper.FormatFromExtension(filepath.Ext(c.Path))
	}

	m, err := mapper.Load(c.Path, format)
	if err != nil {
		logger.Error("mapping file invalid", "path", c.Path, "error", err)
		return err
	}

	logger.Info("mapping file valid", "path", c.Path, "mappings", m.Len())
	return nil
}
