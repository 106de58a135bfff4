package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/BayAreaMetro/tm2kit/internal/domain"
	"github.com/BayAreaMetro/tm2kit/internal/infra/checksfile"
	"github.com/BayAreaMetro/tm2kit/internal/usecase"
)

func validateCmd() *cobra.Command {
	var run string
	var checksPath string
	var format string

	c := &cobra.Command{
		Use:   "validate",
		Short: "Evaluate configured checks against written summaries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := loadRun(run)
			if err != nil {
				return err
			}

			checks, err := checksfile.Load(checksPath)
			if err != nil {
				return err
			}

			uc := usecase.NewValidateSummaries(rc.tables)
			report, err := uc.Execute(cmd.Context(), usecase.ValidateInput{
				SummariesDir: rc.summariesDir(),
				Checks:       checks,
			})
			if err != nil {
				return err
			}

			if err := printReport(os.Stdout, report, format); err != nil {
				return err
			}

			if n := report.Failures(); n > 0 {
				return fmt.Errorf("validation failed (%d failed check(s))", n)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&run, "run", "r", "", "Model run directory (optional; autodetected if omitted)")
	c.Flags().StringVarP(&checksPath, "checks", "c", "", "Checks YAML file (required)")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")

	_ = c.MarkFlagRequired("checks")
	return c
}

func printReport(w io.Writer, report domain.ValidationReport, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "pretty", "":
		for _, r := range report.Results {
			status := "OK"
			if !r.Passed {
				status = "FAIL"
			}
			fmt.Fprintf(w, "- [%s] %s (%s): %s\n", status, r.Name, r.Table, r.Message)
		}
		fmt.Fprintf(w, "\n%d check(s), %d failed\n", len(report.Results), report.Failures())
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}
