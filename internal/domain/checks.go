package domain

// CheckSpec is one validation check from a checks file. Path is a JSONPath
// expression addressed against the summary table rendered as JSON.
type CheckSpec struct {
	Name       string
	Table      string // summary CSV (without extension) the check reads
	Path       string
	Exists     bool
	Eq         *string
	Gt         *float64
	Lt         *float64
	MaxPctDiff *PctDiffSpec
}

// PctDiffSpec bounds the percent difference between a model value and an
// observed control addressed by a second JSONPath expression.
type PctDiffSpec struct {
	Observed string // JSONPath of the observed value
	Limit    float64
}

// CheckResult is the outcome of one evaluated check.
type CheckResult struct {
	Name    string `json:"name"`
	Table   string `json:"table"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// ValidationReport aggregates check results for one run.
type ValidationReport struct {
	RunDir  string        `json:"run_dir"`
	Results []CheckResult `json:"results"`
}

// Failures counts failed checks.
func (r ValidationReport) Failures() int {
	n := 0
	for _, c := range r.Results {
		if !c.Passed {
			n++
		}
	}
	return n
}
