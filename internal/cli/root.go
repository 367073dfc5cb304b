// Package cli implements the regmap command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"regmap/internal/config"
)

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "regmap",
		Short: "Regulatory report mapping compiler",
		Long: `regmap compiles a regulatory classification schema and a report-cell
catalogue into a join graph and executable per-cell filter sources.

The metadata catalogue lives in a SQLite metastore; generated artifacts
are written to the output directory. Configuration comes from the
environment (a .env file is honoured) plus an optional static tables
YAML file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("env-file", ".env", "path to a .env file loaded before configuration")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newTemplatesCmd())
	return root
}

// loadConfig loads the .env file named by the command's flags, then the
// full configuration, applying flag overrides.
func loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	envFile, _ := flags.GetString("env-file")
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, err
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, err
	}

	if path, _ := flags.GetString("db"); path != "" {
		cfg.MetaDBPath = path
	}
	if dir, _ := flags.GetString("out"); dir != "" {
		cfg.OutDir = dir
	}
	if path, _ := flags.GetString("static-tables"); path != "" {
		loaded, err := config.LoadStaticTables(path)
		if err != nil {
			return nil, err
		}
		cfg.Static = cfg.Static.Merge(loaded)
		if err := cfg.Static.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func addStoreFlags(cmd *cobra.Command) {
	cmd.Flags().String("db", "", "path to the SQLite metastore (overrides META_DB_PATH)")
	cmd.Flags().String("static-tables", "", "static tables YAML file (overrides STATIC_TABLES_PATH)")
}
