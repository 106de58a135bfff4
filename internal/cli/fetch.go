package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/BayAreaMetro/tm2kit/internal/infra/census"
	"github.com/BayAreaMetro/tm2kit/internal/usecase"
)

func fetchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "fetch",
		Short: "Download observed reference data",
	}
	c.AddCommand(fetchACSCmd())
	return c
}

func fetchACSCmd() *cobra.Command {
	var run string
	var table string
	var year int
	var counties []string

	c := &cobra.Command{
		Use:   "acs",
		Short: "Download an ACS table into the run's observed-data directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := loadRun(run)
			if err != nil {
				return err
			}

			if _, ok := census.Tables[table]; !ok {
				names := make([]string, 0, len(census.Tables))
				for n := range census.Tables {
					names = append(names, n)
				}
				sort.Strings(names)
				return fmt.Errorf("unknown ACS table %q (available: %v)", table, names)
			}

			cfg := census.DefaultConfig()
			cfg.APIKey = os.Getenv("CENSUS_API_KEY")
			fetcher := census.NewFetcher(census.New(cfg))

			uc := usecase.NewFetchObserved(fetcher, rc.writer)
			out, err := uc.Execute(cmd.Context(), usecase.FetchInput{
				Table:       table,
				Year:        year,
				Counties:    counties,
				ObservedDir: rc.observedDir(),
			})
			if err != nil {
				return err
			}

			fmt.Printf("fetched %s -> %s\n", table, out)
			return nil
		},
	}

	c.Flags().StringVarP(&run, "run", "r", "", "Model run directory (optional; autodetected if omitted)")
	c.Flags().StringVarP(&table, "table", "t", "", "ACS table short name (required)")
	c.Flags().IntVarP(&year, "year", "y", 2019, "ACS 5-year vintage")
	c.Flags().StringSliceVar(&counties, "counties", nil, "County names (default: all nine Bay Area counties)")

	_ = c.MarkFlagRequired("table")
	return c
}
