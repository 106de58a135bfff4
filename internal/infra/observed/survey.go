// Package observed reads externally sourced reference tables. Survey
// tabulations have a fixed layout, so they go through a struct codec
// rather than the generic CSV reader.
package observed

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/BayAreaMetro/tm2kit/internal/domain"
)

// SurveyRow is one row of a travel-survey tabulation extract.
type SurveyRow struct {
	County   string  `csv:"county"`
	Category string  `csv:"category"`
	Value    string  `csv:"value"`
	Weight   float64 `csv:"weight"`
}

// LoadSurvey reads a survey tabulation CSV and lifts it into a domain table
// so it can be joined like any other observed source.
func LoadSurvey(path string) (*domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "observed.survey",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	defer f.Close()

	var rows []SurveyRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, &domain.OpError{
			Op:   "observed.survey",
			Kind: domain.KindInvalidSchema,
			Path: path,
			Err:  err,
		}
	}

	t := domain.NewTable("survey", "county", "category", "value", "weight")
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.County, r.Category, r.Value, domain.FormatValue(r.Weight)})
	}
	return t, nil
}

// SurveyMeasure filters one tabulation category and reshapes it into a
// joinable table keyed on (county, <category>) with a weight measure.
func SurveyMeasure(path, category string) (*domain.Table, error) {
	t, err := LoadSurvey(path)
	if err != nil {
		return nil, err
	}

	out := domain.NewTable("survey_"+category, "county", category, "weight")
	for _, row := range t.Rows {
		if row[1] != category {
			continue
		}
		out.Rows = append(out.Rows, []string{row[0], row[2], row[3]})
	}
	if len(out.Rows) == 0 {
		return nil, &domain.OpError{
			Op:   "observed.survey",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  fmt.Errorf("no rows for category %q", category),
		}
	}
	return out, nil
}
