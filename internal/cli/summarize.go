package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BayAreaMetro/tm2kit/internal/domain"
	"github.com/BayAreaMetro/tm2kit/internal/infra/logger"
	"github.com/BayAreaMetro/tm2kit/internal/usecase"
)

func summarizeCmd(debug *bool) *cobra.Command {
	var run string
	var only []string
	var noManifest bool

	c := &cobra.Command{
		Use:   "summarize",
		Short: "Produce summary tables from a model run's CTRAMP outputs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := loadRun(run)
			if err != nil {
				return err
			}
			defer setupLogging(rc.root, *debug)()

			specs, err := selectSpecs(only)
			if err != nil {
				return err
			}

			store := rc.store
			if noManifest {
				store = nil
			}

			uc := usecase.NewSummarize(rc.models, rc.tables, rc.writer, store)
			m, err := uc.Execute(cmd.Context(), usecase.SummarizeInput{
				RunDir: rc.root,
				Config: rc.cfg,
				Specs:  specs,
			})
			if err != nil {
				return err
			}

			logger.L().Info("summarize.done", "run", rc.root, "tables", len(m.Summaries))
			for _, s := range m.Summaries {
				fmt.Fprintf(os.Stdout, "- %s (%d rows) -> %s\n", s.Name, s.Rows, s.File)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&run, "run", "r", "", "Model run directory (optional; autodetected if omitted)")
	c.Flags().StringSliceVar(&only, "only", nil, "Summary names to produce (default: all)")
	c.Flags().BoolVar(&noManifest, "no-manifest", false, "Do not write a run manifest")
	return c
}

func selectSpecs(only []string) ([]domain.SummarySpec, error) {
	if len(only) == 0 {
		return nil, nil
	}

	byName := map[string]domain.SummarySpec{}
	for _, s := range usecase.DefaultSummaries {
		byName[s.Name] = s
	}

	out := make([]domain.SummarySpec, 0, len(only))
	for _, name := range only {
		s, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown summary %q", name)
		}
		out = append(out, s)
	}
	return out, nil
}
