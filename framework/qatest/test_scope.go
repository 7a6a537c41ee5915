package qatest

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/liveqa/platform-test-harness/framework"
)

type environment struct {
	config  TestConfiguration
	results Results
}

// T represents a scenario scope. It is deliberately similar to Go's
// testing.T: it satisfies the assert.TestingT and require.TestingT
// interfaces from testify, so assertion helpers can be used directly
// inside scenario bodies.
type T struct {
	env        *environment
	id         TestID
	debugLog   framework.CapturingLogger
	failed     bool
	skipped    bool
	skipReason string
	cleanups   []func()
	errors     []error
}

// TestConfiguration contains options for the entire scenario run.
type TestConfiguration struct {
	// Filter is an optional function for deciding which scenarios to run
	// based on their names.
	Filter Filter

	// TestLogger receives status information about each scenario.
	TestLogger TestLogger

	// Context is an optional application-defined value which scenarios can
	// access through T.Context.
	Context interface{}
}

// Run starts a top-level scenario scope and returns the aggregated results
// once every selected scenario has executed. A failure in one scenario never
// prevents the remaining scenarios from running.
func Run(
	config TestConfiguration,
	action func(*T),
) Results {
	if config.TestLogger == nil {
		config.TestLogger = nullTestLogger{}
	}
	env := &environment{
		config: config,
	}
	t := &T{env: env}
	t.run(action)
	return env.results
}

func (t *T) run(action func(*T)) (result TestResult) {
	result.TestID = t.id
	defer func() {
		if r := recover(); r != nil && !t.skipped {
			t.failed = true
			var addError error
			if _, ok := r.(*T); ok {
				if len(t.errors) == 0 {
					addError = errors.New("scenario failed with no failure message")
				}
			} else {
				addError = fmt.Errorf("unexpected panic in scenario: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				t.errors = append(t.errors, addError)
				t.env.config.TestLogger.TestError(t.id, addError)
			}
		}
		result.Errors = t.errors
		result.Skipped = t.skipped
		result.SkipReason = t.skipReason
		if len(t.id) != 0 { // the root scope is not itself a scenario
			switch {
			case t.skipped:
				t.env.results.Skipped = append(t.env.results.Skipped, result)
			case t.failed:
				t.env.results.Failures = append(t.env.results.Failures, result)
			}
			t.env.results.Tests = append(t.env.results.Tests, result)
		}
		for i := len(t.cleanups) - 1; i >= 0; i-- {
			t.cleanups[i]()
		}
	}()

	action(t)
	return result
}

// ID returns the full name of the current scenario.
func (t *T) ID() TestID {
	return t.id
}

// Run runs a scenario or scenario group in its own scope, like Go's
// testing.T.Run.
func (t *T) Run(name string, action func(*T)) {
	id := t.id.Plus(name)

	t.env.config.TestLogger.TestStarted(id)
	if t.env.config.Filter != nil && !t.env.config.Filter(id) {
		t.env.config.TestLogger.TestSkipped(id, "excluded by filter parameters")
		return
	}
	c := &T{
		id:  id,
		env: t.env,
	}
	result := c.run(action)
	if c.skipped {
		t.env.config.TestLogger.TestSkipped(id, c.skipReason)
	} else {
		t.env.config.TestLogger.TestFinished(id, result, c.debugLog.Output())
	}
}

// Errorf reports a scenario failure without terminating the scenario. It is
// mostly called indirectly through assertion helpers.
func (t *T) Errorf(format string, args ...interface{}) {
	t.failed = true
	err := normalizeError(fmt.Errorf(format, args...), callerLocation())
	t.errors = append(t.errors, err)
	t.env.config.TestLogger.TestError(t.id, err)
}

// FailNow terminates the scenario immediately and marks it as failed.
func (t *T) FailNow() {
	panic(t)
}

// Skip terminates the scenario immediately and marks it as skipped rather
// than failed.
func (t *T) Skip() {
	t.skipped = true
	panic(t)
}

// SkipWithReason is equivalent to Skip but records an explanation, such as
// the acquisition errors that made a browser session unavailable.
func (t *T) SkipWithReason(reason string) {
	t.skipReason = reason
	t.Skip()
}

// Debug writes a message to the captured output for this scenario scope.
// Depending on command-line options, the output is shown for failed
// scenarios, all scenarios, or not at all.
func (t *T) Debug(message string, args ...interface{}) {
	t.debugLog.Printf(message, args...)
}

// DebugLogger returns a Logger that writes to this scenario's captured
// output.
func (t *T) DebugLogger() framework.Logger {
	return &t.debugLog
}

// Defer schedules a cleanup function which is guaranteed to run when this
// scenario scope exits for any reason: normal completion, assertion failure,
// skip, or unexpected panic. Unlike a Go defer statement, Defer can be used
// from within helper functions.
func (t *T) Defer(cleanupFn func()) {
	t.cleanups = append(t.cleanups, cleanupFn)
}

// Context returns the application-defined context value, if any, that was
// specified in the TestConfiguration.
func (t *T) Context() interface{} {
	return t.env.config.Context
}
