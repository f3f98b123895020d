package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
)

func truncateCmd(withStore func(runFunc) func(*cobra.Command, []string) error) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "truncate <table> | --all",
		Short: "Delete every row of a table",
		Long: `Delete every row of one table (lists, authors, titles or comments), or of
all tables with --all.

Truncating titles or authors leaves their comments behind; run
"catalogctl sweep" afterwards to remove them.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if all && len(args) > 0 {
				return fmt.Errorf("give either a table or --all")
			}
			if !all && len(args) != 1 {
				return fmt.Errorf("give a table name or --all")
			}
			return nil
		},
		RunE: withStore(func(cmd *cobra.Command, store Store, args []string) error {
			out := cmd.OutOrStdout()
			if all {
				if err := store.TruncateAll(); err != nil {
					return fmt.Errorf("failed to truncate: %w", err)
				}
				okColor.Fprintln(out, "✓ All tables truncated")
				return nil
			}

			table := args[0]
			if err := store.TruncateTable(table); err != nil {
				return fmt.Errorf("failed to truncate %s: %w", table, err)
			}
			okColor.Fprintf(out, "✓ Truncated %s\n", table)
			if table == "titles" || table == "authors" {
				warnColor.Fprintln(out, `  Comments of removed items remain; run "catalogctl sweep".`)
			}
			return nil
		}),
	}
	cmd.Flags().BoolVar(&all, "all", false, "truncate every table")
	return cmd
}

func sweepCmd(withStore func(runFunc) func(*cobra.Command, []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Delete comments whose title or author no longer exists",
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, store Store, _ []string) error {
			deleted, err := store.DeleteOrphanComments()
			if err != nil {
				return fmt.Errorf("failed to sweep comments: %w", err)
			}
			okColor.Fprintf(cmd.OutOrStdout(), "✓ Removed %d orphaned comments\n", deleted)
			return nil
		}),
	}
}
