package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BayAreaMetro/tm2kit/internal/domain"
	"github.com/BayAreaMetro/tm2kit/internal/infra/csvtable"
	"github.com/BayAreaMetro/tm2kit/internal/usecase"
)

func joinCmd() *cobra.Command {
	var summary string
	var observedPath string
	var surveyCategory string
	var keys []string
	var measures []string
	var kind string
	var out string

	c := &cobra.Command{
		Use:   "join",
		Short: "Join a model summary against an observed reference table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			jk := domain.JoinKind(kind)
			if jk != domain.JoinInner && jk != domain.JoinLeft {
				return fmt.Errorf("unsupported join kind %q (expected inner|left)", kind)
			}

			pairs, err := parseMeasures(measures)
			if err != nil {
				return err
			}

			codec := csvtable.New()
			uc := usecase.NewJoinObserved(codec, codec)
			joined, err := uc.Execute(cmd.Context(), usecase.JoinInput{
				SummaryPath:    summary,
				ObservedPath:   observedPath,
				SurveyCategory: surveyCategory,
				Keys:           keys,
				Kind:           jk,
				Measures:       pairs,
				OutPath:        out,
			})
			if err != nil {
				return err
			}

			fmt.Printf("joined %d rows -> %s\n", len(joined.Rows), out)
			return nil
		},
	}

	c.Flags().StringVarP(&summary, "summary", "s", "", "Model summary CSV (required)")
	c.Flags().StringVar(&observedPath, "observed", "", "Observed reference CSV (required)")
	c.Flags().StringVar(&surveyCategory, "survey-category", "", "Treat the observed file as a survey tabulation and join this category")
	c.Flags().StringSliceVarP(&keys, "on", "k", nil, "Join key columns (required)")
	c.Flags().StringSliceVarP(&measures, "measure", "m", nil, "Measure pairs model_col=observed_col")
	c.Flags().StringVar(&kind, "kind", string(domain.JoinInner), "Join kind: inner|left")
	c.Flags().StringVarP(&out, "out", "o", "", "Output CSV path (required)")

	_ = c.MarkFlagRequired("summary")
	_ = c.MarkFlagRequired("observed")
	_ = c.MarkFlagRequired("on")
	_ = c.MarkFlagRequired("out")
	return c
}

func parseMeasures(in []string) ([]usecase.MeasurePair, error) {
	out := make([]usecase.MeasurePair, 0, len(in))
	for _, m := range in {
		model, observed, ok := strings.Cut(m, "=")
		if !ok || model == "" || observed == "" {
			return nil, fmt.Errorf("invalid measure %q (expected model_col=observed_col)", m)
		}
		out = append(out, usecase.MeasurePair{Model: model, Observed: observed})
	}
	return out, nil
}
