package cli

import (
	"github.com/spf13/cobra"

	"github.com/BayAreaMetro/tm2kit/internal/infra/csvtable"
	"github.com/BayAreaMetro/tm2kit/internal/tui"
)

func browseCmd() *cobra.Command {
	var run string

	c := &cobra.Command{
		Use:   "browse",
		Short: "Browse a run's summary tables in the terminal",
		RunE: func(_ *cobra.Command, _ []string) error {
			rc, err := loadRun(run)
			if err != nil {
				return err
			}
			return tui.Run(rc.summariesDir(), csvtable.New())
		},
	}

	c.Flags().StringVarP(&run, "run", "r", "", "Model run directory (optional; autodetected if omitted)")
	return c
}
