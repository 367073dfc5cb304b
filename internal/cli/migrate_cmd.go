package cli

import (
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	internaldb "regmap/internal/db"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending metastore migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}

			conn, err := internaldb.OpenSQLite(cfg.MetaDBPath)
			if err != nil {
				return err
			}
			defer conn.Close() //nolint:errcheck

			if err := internaldb.RunMigrations(conn); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "metastore %s is up to date\n", cfg.MetaDBPath)
			return nil
		},
	}
	addStoreFlags(cmd)
	return cmd
}
