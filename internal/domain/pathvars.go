package domain

import (
	"fmt"
	"regexp"
)

// PathVars substitutes into CTRAMP file patterns such as
// "householdData_{iteration}.csv".
type PathVars map[string]string

var pathToken = regexp.MustCompile(`\{([a-z_]+)\}`)

// ResolvePattern expands every {token} in pattern. An unknown token is a
// config error so a typoed data model fails loudly instead of producing a
// literal "{iteration}" file name.
func (v PathVars) ResolvePattern(pattern string) (string, error) {
	var missing string
	out := pathToken.ReplaceAllStringFunc(pattern, func(m string) string {
		name := pathToken.FindStringSubmatch(m)[1]
		val, ok := v[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return m
		}
		return val
	})
	if missing != "" {
		return "", &OpError{
			Op:   "pathvars.resolve",
			Kind: KindInvalidConfig,
			Err:  fmt.Errorf("pattern %q: unknown token {%s}", pattern, missing),
		}
	}
	return out, nil
}
