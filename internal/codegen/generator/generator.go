// Package generator turns a thing model into the C sources of a device
// bundle: it loads the model, emits symbols, renders every artifact in memory
// and only then writes the files.
package generator

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ticos/tmgen/internal/codegen/common"
	"github.com/ticos/tmgen/internal/codegen/generr"
	cgen "github.com/ticos/tmgen/internal/codegen/generator/c"
	"github.com/ticos/tmgen/internal/codegen/render"
	"github.com/ticos/tmgen/internal/codegen/thingmodel"
	"github.com/ticos/tmgen/internal/codegen/writer"
	"github.com/ticos/tmgen/internal/log"
)

// DateLayout formats the DATE_TIME placeholder.
const DateLayout = "2006-01-02 15:04:05"

// Options configures a Generator. Zero values select the defaults.
type Options struct {
	OutputDir string
	Platform  string
	Templates render.Source
	Policy    cgen.Policy
	Now       func() time.Time
	Dumper    log.ArtifactDumper
}

// Artifact is a fully rendered output file.
type Artifact struct {
	Name    string
	Content string
	Mode    fs.FileMode
}

// Result summarizes a successful run.
type Result struct {
	RunID        string
	Digest       string
	Dir          string
	Files        []string
	Counts       map[thingmodel.Kind]int
	Declarations int
	Skipped      []string
}

// Generator runs the load, emit, render and write stages for one output
// directory. It holds no state between runs.
type Generator struct {
	opts   Options
	logger *slog.Logger
}

// New returns a Generator for opts. A nil logger discards all records.
func New(opts Options, logger *slog.Logger) *Generator {
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	if opts.Templates == nil {
		opts.Templates = render.Builtin()
	}
	if opts.Policy == nil {
		opts.Policy = cgen.DefaultPolicy()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Generator{opts: opts, logger: logger}
}

// Generate loads src (a .json path or literal JSON) and writes the bundle.
func (g *Generator) Generate(src string) (*Result, error) {
	m, err := thingmodel.Load(src)
	if err != nil {
		return nil, fmt.Errorf("load thing model: %w", err)
	}
	return g.GenerateModel(m)
}

// GenerateModel renders every artifact of m and writes them. Nothing is written
// unless all artifacts rendered.
func (g *Generator) GenerateModel(m *thingmodel.Model) (*Result, error) {
	runID := uuid.NewString()
	logger := g.logger.With("run", runID)
	logger.Info("Generating thing model", "output", g.opts.OutputDir, "platform", g.platformName(), "digest", m.Digest)

	artifacts, out, err := g.render(logger, m)
	if err != nil {
		return nil, err
	}

	dir, err := g.targetDir()
	if err != nil {
		return nil, err
	}
	files := make([]writer.File, 0, len(artifacts))
	for _, a := range artifacts {
		files = append(files, writer.File{Name: a.Name, Content: []byte(a.Content), Mode: a.Mode})
	}
	paths, err := writer.WriteAll(dir, files)
	if err != nil {
		return nil, fmt.Errorf("write artifacts: %w", err)
	}
	for _, p := range paths {
		logger.Info("Generated file", "file", p)
	}

	res := &Result{
		RunID:        runID,
		Digest:       m.Digest,
		Dir:          dir,
		Files:        paths,
		Counts:       make(map[thingmodel.Kind]int, len(thingmodel.Kinds)),
		Declarations: out.DeclarationCount(),
		Skipped:      m.Skipped,
	}
	for _, k := range thingmodel.Kinds {
		res.Counts[k] = out.Kinds[k].Items
	}
	logger.Info("Thing model generation complete",
		"telemetry", res.Counts[thingmodel.Telemetry],
		"property", res.Counts[thingmodel.Property],
		"command", res.Counts[thingmodel.Command],
		"declarations", res.Declarations)
	return res, nil
}

// Render produces the artifacts of m without touching the file system.
func (g *Generator) Render(m *thingmodel.Model) ([]Artifact, error) {
	artifacts, _, err := g.render(g.logger, m)
	return artifacts, err
}

// targetDir returns the directory the artifacts go to. A platform bundle
// directory is created inside the output directory, which must already exist.
func (g *Generator) targetDir() (string, error) {
	platform, err := LookupPlatform(g.opts.Platform)
	if err != nil {
		return "", err
	}
	if platform.Subdir == "" {
		return g.opts.OutputDir, nil
	}
	dir := filepath.Join(g.opts.OutputDir, platform.Subdir)
	if err := os.Mkdir(dir, 0o755); err != nil && !errors.Is(err, fs.ErrExist) {
		return "", generr.IO("create bundle directory "+dir, err)
	}
	return dir, nil
}

func (g *Generator) platformName() string {
	if g.opts.Platform == "" {
		return "none"
	}
	return g.opts.Platform
}

func (g *Generator) render(logger *slog.Logger, m *thingmodel.Model) ([]Artifact, *cgen.Output, error) {
	platform, err := LookupPlatform(g.opts.Platform)
	if err != nil {
		return nil, nil, err
	}
	version, err := common.CurrentVersion()
	if err != nil {
		return nil, nil, fmt.Errorf("get version: %w", err)
	}

	for _, tag := range m.Skipped {
		logger.Warn("Skipping thing model entry that is not a capability", "type", tag)
	}

	out, err := cgen.Emit(m, g.opts.Policy)
	if err != nil {
		return nil, nil, fmt.Errorf("emit symbols: %w", err)
	}
	logger.Debug("Emitted symbols", "declarations", out.DeclarationCount())

	date := g.opts.Now().Format(DateLayout)
	ctx := out.Context(render.Context{
		"DATE_TIME":               date,
		"GEN_DATE":                date,
		"SCHEMA_DIGEST":           m.Digest,
		"GENERATOR_VERSION":       version.String(),
		"GENERATOR_VERSION_MAJOR": strconv.Itoa(version.Major),
		"GENERATOR_VERSION_MINOR": strconv.Itoa(version.Minor),
		"GENERATOR_VERSION_PATCH": strconv.Itoa(version.Patch),
	})

	core := [][2]string{
		{render.HeaderTemplate, HeaderFile},
		{render.SourceTemplate, SourceFile},
	}
	if platform.Wrapper {
		core = append(core, [2]string{render.WrapperTemplate, WrapperFile})
	}

	var artifacts []Artifact
	for _, c := range core {
		tmpl, file := c[0], c[1]
		text, err := g.opts.Templates.Template(tmpl)
		if err != nil {
			return nil, nil, fmt.Errorf("load template for %s: %w", file, err)
		}
		rendered, err := render.Render(text, ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("render %s: %w", file, err)
		}
		artifacts = append(artifacts, Artifact{Name: file, Content: rendered})
	}

	info := common.BundleInfo{
		Platform:  platform.Name,
		Version:   version.String(),
		Digest:    m.Digest,
		Generated: date,
		Headers:   []string{HeaderFile},
		Counts:    make(map[string]int, len(thingmodel.Kinds)),
	}
	for _, a := range artifacts[1:] {
		info.Sources = append(info.Sources, a.Name)
	}
	for _, k := range thingmodel.Kinds {
		info.Counts[string(k)] = out.Kinds[k].Items
	}
	for _, aux := range platform.Aux {
		a, err := aux(info)
		if err != nil {
			return nil, nil, err
		}
		artifacts = append(artifacts, a)
	}

	if g.opts.Dumper != nil {
		for _, a := range artifacts {
			g.opts.Dumper.Dump(a.Name, []byte(a.Content))
		}
	}
	return artifacts, out, nil
}
