package qatest

import (
	"strings"
)

// Results is the aggregate outcome of a full scenario run. Skipped scenarios
// are tracked separately from failures: a skip means a scenario's
// preconditions could not be met (for instance, no browser session could be
// acquired), not that an assertion was violated, so skips never make OK()
// false.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Skipped  []TestResult
}

// TestResult describes the outcome of a single scenario. Exactly one of the
// three states applies: passed (no Errors, not Skipped), failed (one or more
// Errors), or skipped (Skipped true, with SkipReason).
type TestResult struct {
	TestID     TestID
	Errors     []error
	Skipped    bool
	SkipReason string
}

// OK reports whether the run as a whole succeeded. Only failures count;
// skipped scenarios are an environment condition, not a defect in the
// application under test.
func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// TestID identifies a scenario by its path in the suite tree, e.g.
// {"ui", "homepage load"}.
type TestID []string

func (t TestID) String() string {
	return strings.Join(t, "/")
}

// Plus returns a new TestID with an appended path component, leaving the
// receiver unmodified.
func (t TestID) Plus(name string) TestID {
	return append(append(TestID(nil), t...), name)
}
