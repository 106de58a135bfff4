package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BayAreaMetro/tm2kit/internal/infra/csvtable"
	"github.com/BayAreaMetro/tm2kit/internal/infra/skimmatrix"
	"github.com/BayAreaMetro/tm2kit/internal/usecase"
)

func skimsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "skims",
		Short: "Work with binary skim containers",
	}
	c.AddCommand(skimsExportCmd(), skimsInfoCmd())
	return c
}

func skimsExportCmd() *cobra.Command {
	var in string
	var out string
	var format string
	var tables []string

	c := &cobra.Command{
		Use:   "export",
		Short: "Flatten skim tables to long-form CSV or Parquet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := usecase.NewExportSkims(csvtable.New())
			rows, err := uc.Execute(cmd.Context(), usecase.SkimExportInput{
				InPath:  in,
				OutPath: out,
				Format:  format,
				Tables:  tables,
			})
			if err != nil {
				return err
			}

			fmt.Printf("exported %d rows -> %s\n", rows, out)
			return nil
		},
	}

	c.Flags().StringVarP(&in, "in", "i", "", "Skim container path (required)")
	c.Flags().StringVarP(&out, "out", "o", "", "Output path (required)")
	c.Flags().StringVar(&format, "format", "csv", "Output format: csv|parquet")
	c.Flags().StringSliceVarP(&tables, "tables", "t", nil, "Tables to export (default: all)")

	_ = c.MarkFlagRequired("in")
	_ = c.MarkFlagRequired("out")
	return c
}

func skimsInfoCmd() *cobra.Command {
	var in string

	c := &cobra.Command{
		Use:   "info",
		Short: "Print a skim container's zone count and tables",
		RunE: func(_ *cobra.Command, _ []string) error {
			r, err := skimmatrix.Open(in)
			if err != nil {
				return err
			}
			defer r.Close()

			fmt.Printf("zones:  %d\n", r.Zones())
			fmt.Printf("tables: %d\n", len(r.TableNames()))
			for _, name := range r.TableNames() {
				fmt.Printf("- %s\n", name)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&in, "in", "i", "", "Skim container path (required)")
	_ = c.MarkFlagRequired("in")
	return c
}
