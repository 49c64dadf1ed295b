package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/ticos/tmgen/internal/codegen/generator"
	cgen "github.com/ticos/tmgen/internal/codegen/generator/c"
	"github.com/ticos/tmgen/internal/codegen/generr"
	"github.com/ticos/tmgen/internal/codegen/render"
	"github.com/ticos/tmgen/internal/codegen/thingmodel"
	"github.com/ticos/tmgen/internal/log"
)

type Generate struct {
	ThingModel string `name:"thingmodel" short:"t" help:"Thing model: path to a .json file, a literal JSON document, or '-' for stdin" env:"TMGEN_THINGMODEL"`
	To         string `help:"Output directory for the generated sources" default:"." env:"TMGEN_OUTPUT"`
	Platform   string `help:"Target platform: none, arduino or esp32" default:"arduino" enum:"none,arduino,esp32" env:"TMGEN_PLATFORM"`
	Templates  string `help:"Directory holding iot_h, iot_c and mqtt_wrapper_c templates (built-in templates when empty)" type:"path" env:"TMGEN_TEMPLATES"`
	NoCommands bool   `help:"Reject command capabilities instead of generating handlers for them" env:"TMGEN_NO_COMMANDS"`
	Mkdir      bool   `help:"Create the output directory when it does not exist" env:"TMGEN_MKDIR"`

	Stdin io.Reader        `kong:"-"`
	Now   func() time.Time `kong:"-"`
}

// Run is called by Kong when the generate command is executed.
func (c *Generate) Run(logger *slog.Logger, dumper log.ArtifactDumper) error {
	logger.Info("Starting thing model code generation", "output", c.To, "platform", c.Platform)

	if c.Mkdir {
		if err := os.MkdirAll(c.To, 0o755); err != nil {
			return generr.IO("create output directory "+c.To, err)
		}
	}

	opts := generator.Options{
		OutputDir: c.To,
		Platform:  c.Platform,
		Now:       c.Now,
		Dumper:    dumper,
	}
	if c.Templates != "" {
		opts.Templates = render.DirSource(c.Templates)
		logger.Debug("Using template directory", "dir", c.Templates)
	}
	if c.NoCommands {
		opts.Policy = cgen.TelemetryPropertyPolicy()
	}
	gen := generator.New(opts, logger)

	var (
		res *generator.Result
		err error
	)
	if c.ThingModel == "-" {
		in := c.Stdin
		if in == nil {
			in = os.Stdin
		}
		var m *thingmodel.Model
		m, err = thingmodel.LoadReader(in)
		if err != nil {
			return fmt.Errorf("load thing model: %w", err)
		}
		res, err = gen.GenerateModel(m)
	} else {
		res, err = gen.Generate(c.ThingModel)
	}
	if err != nil {
		return err
	}
	logger.Debug("Generation result", "run", res.RunID, "files", len(res.Files), "skipped", len(res.Skipped))
	return nil
}
