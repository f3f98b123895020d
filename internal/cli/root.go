// Package cli implements catalogctl, the administration tool for the catalog
// database.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrlokans/catalog/internal/entities"
)

// Store is the part of the catalog database the commands use.
type Store interface {
	GetAllLists() ([]*entities.KCLSList, error)
	GetListByName(listType entities.ListType, name string) (*entities.KCLSList, error)
	GetTitlesForList(listName string) ([]*entities.Title, error)
	GetAuthorsForList(listName string) ([]*entities.Author, error)
	TruncateTable(name string) error
	TruncateAll() error
	DeleteOrphanComments() (int64, error)
	Close() error
}

// Opener opens the store at dbPath. An empty path means the configured one.
type Opener func(dbPath string) (Store, error)

type runFunc func(cmd *cobra.Command, store Store, args []string) error

// NewRootCmd builds the catalogctl command tree.
func NewRootCmd(open Opener, version string) *cobra.Command {
	var dbPath string

	root := &cobra.Command{
		Use:          "catalogctl",
		Short:        "Inspect and maintain the media catalog database",
		Version:      version,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&dbPath, "db", "", "catalog database path (default: DATABASE_PATH)")

	withStore := func(run runFunc) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			store, err := open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()
			return run(cmd, store, args)
		}
	}

	root.AddCommand(listsCmd(withStore))
	root.AddCommand(listCmd(withStore))
	root.AddCommand(truncateCmd(withStore))
	root.AddCommand(sweepCmd(withStore))
	return root
}
