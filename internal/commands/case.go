package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/anvil/filters"
)

func caseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "case <filter> <value>...",
		Short: "Apply a template filter from the shell",
		Long: `Apply a template filter to each value and print one result per line.

Handy in scripts and for checking what a template will produce.

Examples:
  anvil case snakecase BlogPost          # blog_post
  anvil case pascalcase "user profile"   # UserProfile
  anvil case plural category             # categories`,
		Args: cobra.MinimumNArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return filters.All(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fn, ok := filters.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown filter %q (available: %s)", args[0], strings.Join(filters.All(), ", "))
			}
			for _, v := range args[1:] {
				s, err := fn(v)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
}

func filtersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "List the filters available to templates",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range filters.All() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
