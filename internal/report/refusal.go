package report

import (
	"regexp"
	"strings"
)

// refusalPattern matches text indicating the model declined to answer rather
// than provide content. Kept as a standalone predicate so refusal handling
// can be tested without a model call.
var refusalPattern = regexp.MustCompile(`(?i)cannot recommend|cannot provide|i cannot recommend|consult a doctor|no recommendations|cannot advise`)

// IsRefusalList reports whether a model-produced list is unusable: missing,
// empty, or carrying refusal language instead of content.
func IsRefusalList(items []string) bool {
	if len(items) == 0 {
		return true
	}
	return refusalPattern.MatchString(strings.Join(items, " "))
}
