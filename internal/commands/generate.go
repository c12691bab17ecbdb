package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/anvil/forge"
	"github.com/simonhull/firebird-suite/anvil/output"
)

func generateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <template> <path>",
		Short: "Render a template into a new file",
		Long: `Render a template into a new file.

The file must not exist yet; parent directories are created as needed.
The path is itself a template, rendered with the same data.

Examples:
  anvil generate model.go.tmpl "models/{{ name|snakecase }}.go" --set name=BlogPost
  anvil generate handler.gotmpl internal/handlers/post.go -d post.yaml
  anvil generate model.go.tmpl models/post.go --set name=Post --dry-run --preview`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.single(cmd, forge.KindGenerate, args[0], args[1])
		},
	}
}

func appendCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "append <template> <path>",
		Short: "Append a rendered template to an existing file",
		Long: `Append a rendered template to the end of an existing file.

The file must already exist; append never creates one.

Examples:
  anvil append route.tmpl routes.go --set name=Post
  anvil append migration.sql.tmpl db/schema.sql -d post.yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.single(cmd, forge.KindAppend, args[0], args[1])
		},
	}
}

// single runs one ad-hoc operation outside the manifest.
func (o *options) single(cmd *cobra.Command, kind forge.Kind, name, path string) error {
	ws, err := o.load(cmd)
	if err != nil {
		return err
	}

	output.Verbose(fmt.Sprintf("%s %s -> %s", kind, name, path))

	op, err := ws.op(kind, name, path)
	if err != nil {
		return err
	}
	return o.apply(cmd, []*forge.FileOp{op})
}
