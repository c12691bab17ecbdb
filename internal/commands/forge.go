package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/anvil/forge"
	"github.com/simonhull/firebird-suite/anvil/output"
)

func forgeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "forge",
		Short: "Run every operation in anvil.yml",
		Long: `Run every operation listed in the manifest (./anvil.yml or --config).

All operations are validated before anything is written. If one fails
part-way, files already touched are restored: appended files are
truncated back and generated files removed.

Examples:
  anvil forge --set name=BlogPost
  anvil forge -c scaffolds/resource.yml -d post.yaml --yes
  anvil forge --dry-run --preview`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := opts.load(cmd)
			if err != nil {
				return err
			}
			ops, err := ws.manifestOps()
			if err != nil {
				return err
			}
			if err := opts.apply(cmd, ops); err != nil {
				return err
			}
			if !opts.dryRun {
				output.Success(fmt.Sprintf("Forged %d file(s)", len(ops)))
			}
			return nil
		},
	}
}

func verifyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that files match what anvil.yml would produce",
		Long: `Check, without writing, that every file in the manifest is up to date.

Generated files must hold exactly the rendered content; appended files
must end with it. Exits non-zero listing every file that drifted, which
makes it suitable for CI.

Examples:
  anvil verify --set name=BlogPost
  anvil verify -c scaffolds/resource.yml -d post.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := opts.load(cmd)
			if err != nil {
				return err
			}
			ops, err := ws.manifestOps()
			if err != nil {
				return err
			}

			err = forge.Verify(cmd.Context(), ops)
			var drift *multierror.Error
			if errors.As(err, &drift) {
				for _, e := range drift.Errors {
					output.Step(strings.TrimPrefix(e.Error(), forge.ErrDrift.Error()+": "))
				}
				return fmt.Errorf("%d of %d file(s) out of date", len(drift.Errors), len(ops))
			}
			if err != nil {
				return err
			}

			for _, p := range paths(ops) {
				output.Verbose(p)
			}
			output.Success(fmt.Sprintf("All %d file(s) up to date", len(ops)))
			return nil
		},
	}
}
