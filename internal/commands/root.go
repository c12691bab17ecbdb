package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/anvil"
	"github.com/simonhull/firebird-suite/anvil/internal/logging"
	"github.com/simonhull/firebird-suite/anvil/output"
)

// options holds the global flags shared by every subcommand.
type options struct {
	verbose   bool
	logLevel  string
	config    string
	templates string
	dryRun    bool
	preview   bool
	yes       bool
	dataFiles []string
	sets      []string

	logger *slog.Logger
}

// RootCmd creates and returns the root command for the Anvil CLI, with
// every subcommand attached.
func RootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "anvil",
		Short: "Render templates into files",
		Long: `Anvil renders pongo2 and text/template templates into your project.

A template can either create a new file or append to an existing one:
• generate refuses to touch a file that already exists
• append refuses to create a file that is missing
• forge runs a whole anvil.yml manifest, all or nothing

Templates get the case filters snakecase, kebabcase, camelcase,
pascalcase and titlecase, plus plural.`,
		Version:       anvil.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetOutput(cmd.OutOrStdout())
			output.SetVerbose(opts.verbose)
			opts.setLogger(cmd, "warn")
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output for debugging")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error (default from the manifest)")
	flags.StringVarP(&opts.config, "config", "c", "", "Manifest to read (default ./anvil.yml)")
	flags.StringVar(&opts.templates, "templates", "", "Template directory (overrides the manifest)")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Show what would be written without touching files")
	flags.BoolVar(&opts.preview, "preview", false, "With --dry-run, print a diff of each change")
	flags.BoolVarP(&opts.yes, "yes", "y", false, "Apply without asking for confirmation")
	flags.StringArrayVarP(&opts.dataFiles, "data", "d", nil, "Data file (.yaml, .json, .env); repeatable")
	flags.StringArrayVar(&opts.sets, "set", nil, "Inline data as key=value; repeatable")

	cmd.AddCommand(
		generateCmd(opts),
		appendCmd(opts),
		forgeCmd(opts),
		verifyCmd(opts),
		caseCmd(),
		filtersCmd(),
		versionCmd(),
	)

	return cmd
}

// setLogger builds the logger from --log-level, then fallback. --verbose
// always means debug.
func (o *options) setLogger(cmd *cobra.Command, fallback string) {
	level := logging.ParseLevel(fallback)
	if o.logLevel != "" {
		level = logging.ParseLevel(o.logLevel)
	}
	if o.verbose {
		level = slog.LevelDebug
	}
	o.logger = logging.NewLogger(cmd.ErrOrStderr(), level)
}

// Execute runs the root command and reports any error.
func Execute() error {
	cmd := RootCmd()
	if err := cmd.Execute(); err != nil {
		output.Error(err.Error())
		return err
	}
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Anvil v%s\n", anvil.Version)
		},
	}
}
