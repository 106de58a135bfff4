package census

import (
	"context"
	"strings"
	"testing"
)

func TestBuildRequest(t *testing.T) {
	c := New(DefaultConfig())

	req, err := c.BuildRequest(context.Background(), 2019, []string{"B08201_001E"}, "06", []string{"001", "075"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u := req.URL.String()
	if !strings.Contains(u, "/2019/acs/acs5") {
		t.Fatalf("expected vintage in URL, got %q", u)
	}
	q := req.URL.Query()
	if q.Get("get") != "NAME,B08201_001E" {
		t.Fatalf("unexpected get param %q", q.Get("get"))
	}
	if q.Get("for") != "county:001,075" {
		t.Fatalf("unexpected for param %q", q.Get("for"))
	}
	if q.Get("in") != "state:06" {
		t.Fatalf("unexpected in param %q", q.Get("in"))
	}
}

func TestBuildRequestRequiresVariables(t *testing.T) {
	c := New(DefaultConfig())
	_, err := c.BuildRequest(context.Background(), 2019, nil, "06", nil)
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestParseResponse(t *testing.T) {
	body := []byte(`[
		["NAME","B08201_001E","state","county"],
		["Alameda County, California","577177","06","001"],
		["Marin County, California","103210","06","041"]
	]`)

	tb, err := ParseResponse("vehicles", body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tb.Cols[0] != "county" {
		t.Fatalf("expected NAME renamed to county, got %v", tb.Cols)
	}
	if tb.Rows[0][0] != "Alameda" || tb.Rows[1][0] != "Marin" {
		t.Fatalf("county suffix not stripped: %v", tb.Rows)
	}
	if tb.Rows[0][1] != "577177" {
		t.Fatalf("unexpected value %v", tb.Rows[0])
	}
}

func TestParseResponseNotJSON(t *testing.T) {
	_, err := ParseResponse("vehicles", []byte("<html>error</html>"))
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestFetchTableUnknownCounty(t *testing.T) {
	f := NewFetcher(New(DefaultConfig()))
	_, err := f.FetchTable(context.Background(), "vehicles", 2019, []string{"Atlantis"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "Atlantis") {
		t.Fatalf("expected county in error, got %v", err)
	}
}
