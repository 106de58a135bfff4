// Package census fetches ACS tables from the Census Bureau API and turns
// them into observed reference tables.
package census

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/BayAreaMetro/tm2kit/internal/domain"
)

const defaultBaseURL = "https://api.census.gov/data"

// Config controls transport behavior. There is no retry: a failed fetch
// surfaces immediately.
type Config struct {
	BaseURL string
	Timeout time.Duration
	APIKey  string
}

func DefaultConfig() Config {
	return Config{
		BaseURL: defaultBaseURL,
		Timeout: 30 * time.Second,
	}
}

type Client struct {
	cfg  Config
	http *http.Client
}

func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// BuildRequest assembles the ACS detailed-table request for a set of county
// FIPS codes within one state.
func (c *Client) BuildRequest(ctx context.Context, year int, variables []string, stateFIPS string, countyFIPS []string) (*http.Request, error) {
	if len(variables) == 0 {
		return nil, &domain.OpError{
			Op:   "census.build",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("no variables requested"),
		}
	}
	if stateFIPS == "" {
		return nil, &domain.OpError{
			Op:   "census.build",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("state FIPS is required"),
		}
	}

	u := fmt.Sprintf("%s/%d/acs/acs5", strings.TrimRight(c.cfg.BaseURL, "/"), year)
	q := url.Values{}
	q.Set("get", "NAME,"+strings.Join(variables, ","))
	county := "*"
	if len(countyFIPS) > 0 {
		county = strings.Join(countyFIPS, ",")
	}
	q.Set("for", "county:"+county)
	q.Set("in", "state:"+stateFIPS)
	if c.cfg.APIKey != "" {
		q.Set("key", c.cfg.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u+"?"+q.Encode(), nil)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "census.build",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// Do executes the request and returns the response body. Non-2xx statuses
// are execution errors carrying the body for diagnostics.
func (c *Client) Do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "census.do",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, &domain.OpError{
			Op:   "census.do",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.OpError{
			Op:   "census.do",
			Kind: domain.KindExecution,
			Err:  fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}
	return body, nil
}
