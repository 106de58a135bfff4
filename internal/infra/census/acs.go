package census

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BayAreaMetro/tm2kit/internal/domain"
	"github.com/BayAreaMetro/tm2kit/internal/ports"
)

// Tables maps the short table names the CLI accepts onto ACS variables.
// Variables follow the ACS 5-year detailed table naming.
var Tables = map[string][]string{
	// households by vehicles available
	"vehicles": {"B08201_001E", "B08201_002E", "B08201_003E", "B08201_004E", "B08201_005E", "B08201_006E"},
	// households by household size
	"hh_size": {"B11016_001E", "B11016_010E", "B11016_011E", "B11016_012E", "B11016_013E"},
	// workers by county
	"workers": {"B08007_001E"},
}

// Fetcher adapts Client to the ObservedSource port. Counties are Bay Area
// county names; FIPS lookups are fixed for the TM2 region.
type Fetcher struct {
	client *Client
}

func NewFetcher(client *Client) *Fetcher {
	return &Fetcher{client: client}
}

var _ ports.ObservedSource = (*Fetcher)(nil)

const californiaFIPS = "06"

// bayAreaFIPS covers the nine TM2 counties.
var bayAreaFIPS = map[string]string{
	"Alameda":       "001",
	"Contra Costa":  "013",
	"Marin":         "041",
	"Napa":          "055",
	"San Francisco": "075",
	"San Mateo":     "081",
	"Santa Clara":   "085",
	"Solano":        "095",
	"Sonoma":        "097",
}

// FetchTable downloads one ACS table and converts the API's array-of-arrays
// response into a table keyed by county name.
func (f *Fetcher) FetchTable(ctx context.Context, table string, year int, counties []string) (*domain.Table, error) {
	variables, ok := Tables[table]
	if !ok {
		return nil, &domain.OpError{
			Op:   "census.fetch",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("unknown ACS table %q", table),
		}
	}

	fips := make([]string, 0, len(counties))
	for _, name := range counties {
		code, ok := bayAreaFIPS[name]
		if !ok {
			return nil, &domain.OpError{
				Op:   "census.fetch",
				Kind: domain.KindInvalidConfig,
				Err:  fmt.Errorf("unknown county %q", name),
			}
		}
		fips = append(fips, code)
	}

	req, err := f.client.BuildRequest(ctx, year, variables, californiaFIPS, fips)
	if err != nil {
		return nil, err
	}
	body, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	return ParseResponse(table, body)
}

// ParseResponse decodes the ACS JSON payload: a header row followed by data
// rows, all strings.
func ParseResponse(table string, body []byte) (*domain.Table, error) {
	var rows [][]string
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, &domain.OpError{
			Op:   "census.parse",
			Kind: domain.KindInvalidSchema,
			Err:  fmt.Errorf("table %q: %w", table, err),
		}
	}
	if len(rows) == 0 {
		return nil, &domain.OpError{
			Op:   "census.parse",
			Kind: domain.KindInvalidSchema,
			Err:  fmt.Errorf("table %q: empty response", table),
		}
	}

	t := domain.NewTable(table, rows[0]...)
	for i, row := range rows[1:] {
		if err := t.AppendRow(row...); err != nil {
			return nil, &domain.OpError{
				Op:   "census.parse",
				Kind: domain.KindInvalidSchema,
				Err:  fmt.Errorf("table %q row %d: %w", table, i, err),
			}
		}
	}

	// The API reports "<County> County, California"; summaries key on the
	// bare county name.
	if i := t.ColIndex("NAME"); i >= 0 {
		for r := range t.Rows {
			t.Rows[r][i] = strings.TrimSuffix(t.Rows[r][i], " County, California")
		}
		if err := t.RenameCol("NAME", "county"); err != nil {
			return nil, err
		}
	}
	return t, nil
}
