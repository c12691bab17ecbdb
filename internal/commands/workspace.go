package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/simonhull/firebird-suite/anvil/forge"
	"github.com/simonhull/firebird-suite/anvil/input"
	"github.com/simonhull/firebird-suite/anvil/internal/config"
	"github.com/simonhull/firebird-suite/anvil/internal/data"
	"github.com/simonhull/firebird-suite/anvil/output"
	"github.com/simonhull/firebird-suite/anvil/render"
)

// workspace is everything an operation needs to render: the manifest, the
// template engine and the merged data.
type workspace struct {
	cfg    *config.Config
	engine *render.Engine
	data   data.Data
}

// load reads the manifest and data and sets up the engine. Relative paths
// inside a manifest resolve against the manifest's directory; paths given
// as flags resolve against the working directory.
func (o *options) load(cmd *cobra.Command) (*workspace, error) {
	cfg, err := config.Load(o.config)
	if err != nil {
		return nil, err
	}
	o.setLogger(cmd, cfg.LogLevel)
	if cfg.File != "" {
		o.logger.Debug("loaded manifest", "file", cfg.File, "operations", len(cfg.Operations))
	}

	base := "."
	if cfg.File != "" {
		base = filepath.Dir(cfg.File)
	}

	templates := o.templates
	if templates == "" {
		templates = resolve(base, cfg.Templates)
	}
	engine, err := render.NewEngine(render.WithDir(templates))
	if err != nil {
		return nil, err
	}
	output.Verbose(fmt.Sprintf("Templates: %s", templates))

	files := make([]string, 0, len(cfg.Data)+len(o.dataFiles))
	for _, f := range cfg.Data {
		files = append(files, resolve(base, f))
	}
	files = append(files, o.dataFiles...)

	vars, err := data.Load(files, o.sets)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("loaded data", "files", len(files), "keys", len(vars))

	return &workspace{cfg: cfg, engine: engine, data: vars}, nil
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// op renders the output path and binds the template to the data, producing
// a file operation of the given kind.
func (w *workspace) op(kind forge.Kind, name, path string) (*forge.FileOp, error) {
	target, err := w.engine.RenderString(path, w.data)
	if err != nil {
		return nil, fmt.Errorf("failed to render path %q: %w", path, err)
	}
	if target == "" {
		return nil, fmt.Errorf("path %q rendered empty", path)
	}

	tmpl, err := w.engine.Template(name, w.data)
	if err != nil {
		return nil, err
	}

	switch kind {
	case forge.KindAppend:
		return forge.At(target, render.Append(tmpl)), nil
	case forge.KindGenerate:
		return forge.At(target, render.Generate(tmpl)), nil
	default:
		return nil, fmt.Errorf("unknown action %q", kind)
	}
}

// manifestOps builds one file operation per manifest entry.
func (w *workspace) manifestOps() ([]*forge.FileOp, error) {
	if len(w.cfg.Operations) == 0 {
		if w.cfg.File == "" {
			return nil, fmt.Errorf("no %s.yml found; pass one with --config", config.DefaultName)
		}
		return nil, fmt.Errorf("%s has no operations", w.cfg.File)
	}

	ops := make([]*forge.FileOp, 0, len(w.cfg.Operations))
	for i, entry := range w.cfg.Operations {
		op, err := w.op(forge.Kind(entry.Action), entry.Template, entry.Path)
		if err != nil {
			return nil, fmt.Errorf("operations[%d]: %w", i, err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// apply runs ops through the executor. Several operations on an
// interactive terminal are confirmed first unless --yes or --dry-run.
func (o *options) apply(cmd *cobra.Command, ops []*forge.FileOp) error {
	if len(ops) > 1 && !o.yes && !o.dryRun && isTerminal(os.Stdin) {
		for _, op := range ops {
			output.Step(op.Description())
		}
		prompt := fmt.Sprintf("Apply %d operations?", len(ops))
		if !input.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt, true) {
			output.Info("Cancelled, nothing written")
			return nil
		}
	}

	operations := make([]forge.Operation, 0, len(ops))
	for _, op := range ops {
		operations = append(operations, op)
	}

	return forge.Execute(cmd.Context(), operations, forge.ExecuteOptions{
		DryRun:  o.dryRun,
		Preview: o.preview,
		Writer:  output.Writer(),
		Logger:  o.logger,
	})
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// paths lists the targets of ops, sorted, for summaries.
func paths(ops []*forge.FileOp) []string {
	out := make([]string, 0, len(ops))
	for _, op := range ops {
		out = append(out, op.Path)
	}
	slices.Sort(out)
	return out
}
