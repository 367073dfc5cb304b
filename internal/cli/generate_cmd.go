package cli

import (
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	internaldb "regmap/internal/db"
	"regmap/internal/db/repository"
	"regmap/internal/service"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [template...]",
		Short: "Compile the join graph and filter sources",
		Long: `Runs one full generation pass: resolves every report column of the
requested templates to its input columns, persists the resulting cube
links, and writes one filter source file and one navigation page per
template. With no arguments, all in-scope templates are generated.

The run always completes with a diagnostics report; degraded cells and
columns are listed rather than failing the run.`,
		Example: `  # Generate every in-scope template
  regmap generate

  # Generate a single template into a custom directory
  regmap generate T_01 --out ./artifacts`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			logger := cfg.NewLogger()
			for _, w := range cfg.Warnings {
				logger.Warn(w)
			}

			conn, err := internaldb.OpenSQLite(cfg.MetaDBPath)
			if err != nil {
				return err
			}
			defer conn.Close() //nolint:errcheck

			svc := service.NewGenerationService(
				repository.NewMetadataRepo(conn),
				repository.NewMappingRepo(conn),
				cfg.Static,
				cfg.OutDir,
				logger,
			)

			report, err := svc.Generate(cmd.Context(), args)
			if err != nil {
				return err
			}
			printReport(report)
			return nil
		},
	}
	addStoreFlags(cmd)
	cmd.Flags().String("out", "", "output directory for generated artifacts (overrides OUT_DIR)")
	return cmd
}

func printReport(report *service.RunReport) {
	for _, r := range report.Results {
		fmt.Fprintf(os.Stdout, "%s: %d links, %d item links, %d classes -> %s\n",
			r.Template, r.Links, r.ItemLinks, r.Classes, r.SourceFile)
	}
	if len(report.Diags) == 0 {
		fmt.Fprintln(os.Stdout, "no degraded cells or columns")
		return
	}
	fmt.Fprintf(os.Stdout, "%d degraded cells/columns:\n", len(report.Diags))
	for _, d := range report.Diags {
		fmt.Fprintf(os.Stdout, "  %s\n", d)
	}
}
