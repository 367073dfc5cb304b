package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the report templates in scope",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}

			if len(cfg.Static.Templates) == 0 {
				fmt.Fprintln(os.Stdout, "no report templates configured")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TEMPLATE\tFRAMEWORK")
			for _, t := range cfg.Static.Templates {
				fmt.Fprintf(w, "%s\t%s\n", t.Code, t.FrameworkCode)
			}
			return w.Flush()
		},
	}
	addStoreFlags(cmd)
	return cmd
}
