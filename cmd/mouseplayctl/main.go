// Command mouseplayctl is the operator-facing tool for scaffolding and
// validating mapping files; it is not the injected library (spec.md §1
// scopes the mapping-file format as interface, not core — this is that
// interface's home).
package main

import (
	"os"

	"github.com/Alia5/mouseplay/internal/vplog"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

// CLI is the top-level command tree.
type CLI struct {
	Log struct {
		Level string `help:"Log level (trace,debug,info,warn,error)." enum:"trace,debug,info,warn,error" default:"info"`
		File  string `help:"Also write logs to this file; console logs then all go to stderr."`
	} `embed:"" prefix:"log-"`

	Validate ValidateCmd `cmd:"" help:"Load a mapping file and report the first error found."`
	Init     InitCmd     `cmd:"" help:"Scaffold a template mapping file."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("mouseplayctl"),
		kong.Description("Scaffold and validate mouseplay mapping files"),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON),
		kong.Configuration(kongyaml.Loader),
		kong.Configuration(kongtoml.Loader),
	)

	logger, closers, err := vplog.Setup(cli.Log.Level, cli.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to set up logging: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()

	ctx.Bind(logger)

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}
