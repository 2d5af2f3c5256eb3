package tt

import (
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

// AssertCalls asserts that the recorded call order matches expected. On
// mismatch it reports a unified diff, one listener name per line.
func AssertCalls(t *testing.T, expected, actual []string) bool {
	t.Helper()

	if strings.Join(expected, "\n") == strings.Join(actual, "\n") && len(expected) == len(actual) {
		return true
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(strings.Join(expected, "\n")),
		B:        difflib.SplitLines(strings.Join(actual, "\n")),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  2,
	})
	if err != nil {
		t.Errorf("call order mismatch: expected %v, actual %v", expected, actual)
		return false
	}
	t.Errorf("call order mismatch:\n%s", diff)
	return false
}
