package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BayAreaMetro/tm2kit/internal/domain"
	"github.com/BayAreaMetro/tm2kit/internal/infra/csvtable"
	"github.com/BayAreaMetro/tm2kit/internal/usecase"
)

func pivotCmd() *cobra.Command {
	var in string
	var index []string
	var column string
	var value string
	var agg string
	var out string

	c := &cobra.Command{
		Use:   "pivot",
		Short: "Reshape a long summary table into a wide one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, err := domain.ParseAggKind(agg)
			if err != nil {
				return err
			}

			codec := csvtable.New()
			uc := usecase.NewPivotTable(codec, codec)
			wide, err := uc.Execute(cmd.Context(), usecase.PivotInput{
				InPath:  in,
				Index:   index,
				Column:  column,
				Value:   value,
				Agg:     kind,
				OutPath: out,
			})
			if err != nil {
				return err
			}

			fmt.Printf("pivoted %d rows x %d cols -> %s\n", len(wide.Rows), len(wide.Cols), out)
			return nil
		},
	}

	c.Flags().StringVarP(&in, "in", "i", "", "Input long CSV (required)")
	c.Flags().StringSliceVar(&index, "index", nil, "Index columns (required)")
	c.Flags().StringVarP(&column, "columns", "c", "", "Column whose values become headers (required)")
	c.Flags().StringVarP(&value, "values", "v", "", "Value column (required for sum)")
	c.Flags().StringVar(&agg, "agg", string(domain.AggSum), "Aggregation: sum|count")
	c.Flags().StringVarP(&out, "out", "o", "", "Output CSV path (required)")

	_ = c.MarkFlagRequired("in")
	_ = c.MarkFlagRequired("index")
	_ = c.MarkFlagRequired("columns")
	_ = c.MarkFlagRequired("out")
	return c
}
