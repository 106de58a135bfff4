// Package check evaluates validation checks against a summary table
// rendered as a JSON document.
package check

import (
	"fmt"
	"math"
	"strconv"

	"github.com/PaesslerAG/jsonpath"

	"github.com/BayAreaMetro/tm2kit/internal/domain"
)

// Evaluate applies one check spec against the document, emitting one
// result per configured assertion.
func Evaluate(spec domain.CheckSpec, doc any) []domain.CheckResult {
	var out []domain.CheckResult

	val, getErr := jsonpath.Get(spec.Path, doc)

	if spec.Exists {
		out = append(out, checkExists(spec, val, getErr))
	}
	if spec.Eq != nil {
		out = append(out, checkEq(spec, val, getErr, *spec.Eq))
	}
	if spec.Gt != nil {
		out = append(out, checkCompare(spec, val, getErr, *spec.Gt, "gt"))
	}
	if spec.Lt != nil {
		out = append(out, checkCompare(spec, val, getErr, *spec.Lt, "lt"))
	}
	if spec.MaxPctDiff != nil {
		out = append(out, checkPctDiff(spec, val, getErr, doc))
	}
	return out
}

func result(spec domain.CheckSpec, assertion string, passed bool, msg string) domain.CheckResult {
	return domain.CheckResult{
		Name:    spec.Name + "." + assertion,
		Table:   spec.Table,
		Passed:  passed,
		Message: msg,
	}
}

func checkExists(spec domain.CheckSpec, val any, getErr error) domain.CheckResult {
	if getErr != nil {
		return result(spec, "exists", false, fmt.Sprintf("jsonpath %q: %v", spec.Path, getErr))
	}
	if isEmptyValue(val) {
		return result(spec, "exists", false, fmt.Sprintf("jsonpath %q: expected value to exist, got empty", spec.Path))
	}
	return result(spec, "exists", true, fmt.Sprintf("jsonpath %q exists", spec.Path))
}

func checkEq(spec domain.CheckSpec, val any, getErr error, expected string) domain.CheckResult {
	if getErr != nil {
		return result(spec, "eq", false, fmt.Sprintf("jsonpath %q: %v", spec.Path, getErr))
	}
	s, err := toString(val)
	if err != nil {
		return result(spec, "eq", false, fmt.Sprintf("jsonpath %q: %v", spec.Path, err))
	}
	if s == expected {
		return result(spec, "eq", true, fmt.Sprintf("jsonpath %q eq %q", spec.Path, expected))
	}
	return result(spec, "eq", false, fmt.Sprintf("jsonpath %q: expected %q, got %q", spec.Path, expected, s))
}

func checkCompare(spec domain.CheckSpec, val any, getErr error, threshold float64, dir string) domain.CheckResult {
	if getErr != nil {
		return result(spec, dir, false, fmt.Sprintf("jsonpath %q: %v", spec.Path, getErr))
	}
	f, err := toFloat64(val)
	if err != nil {
		return result(spec, dir, false, fmt.Sprintf("jsonpath %q: %v", spec.Path, err))
	}

	passed := f > threshold
	op := ">"
	if dir == "lt" {
		passed = f < threshold
		op = "<"
	}
	if passed {
		return result(spec, dir, true, fmt.Sprintf("jsonpath %q: %v %s %v", spec.Path, f, op, threshold))
	}
	return result(spec, dir, false, fmt.Sprintf("jsonpath %q: expected %s %v, got %v", spec.Path, op, threshold, f))
}

func checkPctDiff(spec domain.CheckSpec, val any, getErr error, doc any) domain.CheckResult {
	const name = "max_pct_diff"
	if getErr != nil {
		return result(spec, name, false, fmt.Sprintf("jsonpath %q: %v", spec.Path, getErr))
	}
	model, err := toFloat64(val)
	if err != nil {
		return result(spec, name, false, fmt.Sprintf("jsonpath %q: %v", spec.Path, err))
	}

	obsVal, err := jsonpath.Get(spec.MaxPctDiff.Observed, doc)
	if err != nil {
		return result(spec, name, false, fmt.Sprintf("jsonpath %q: %v", spec.MaxPctDiff.Observed, err))
	}
	observed, err := toFloat64(obsVal)
	if err != nil {
		return result(spec, name, false, fmt.Sprintf("jsonpath %q: %v", spec.MaxPctDiff.Observed, err))
	}
	if observed == 0 {
		return result(spec, name, false, fmt.Sprintf("jsonpath %q: observed value is zero", spec.MaxPctDiff.Observed))
	}

	pct := math.Abs(100 * (model - observed) / observed)
	if pct <= spec.MaxPctDiff.Limit {
		return result(spec, name, true, fmt.Sprintf("pct diff %.2f%% <= %.2f%%", pct, spec.MaxPctDiff.Limit))
	}
	return result(spec, name, false, fmt.Sprintf("pct diff %.2f%% exceeds %.2f%% (model=%v observed=%v)", pct, spec.MaxPctDiff.Limit, model, observed))
}

func isEmptyValue(val any) bool {
	switch v := val.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}
	return false
}

func toString(val any) (string, error) {
	switch v := val.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case nil:
		return "", fmt.Errorf("value is null")
	}
	// Single-element jsonpath results come back as slices.
	if s, ok := val.([]any); ok && len(s) == 1 {
		return toString(s[0])
	}
	return "", fmt.Errorf("value %T is not scalar", val)
}

func toFloat64(val any) (float64, error) {
	switch v := val.(type) {
	case float64:
		return v, nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not numeric", v)
		}
		return f, nil
	}
	if s, ok := val.([]any); ok && len(s) == 1 {
		return toFloat64(s[0])
	}
	return 0, fmt.Errorf("value %T is not numeric", val)
}
