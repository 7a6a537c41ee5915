package browser

import (
	"fmt"

	"github.com/liveqa/platform-test-harness/framework"
)

// Scope is the subset of the scenario framework that the session lifecycle
// needs. *qatest.T satisfies it.
type Scope interface {
	// SkipWithReason marks the scenario as skipped and stops executing it.
	SkipWithReason(reason string)
	// Defer registers a cleanup that runs when the scenario exits for any
	// reason.
	Defer(cleanupFn func())
	// Debug records a message in the scenario's captured output.
	Debug(message string, args ...interface{})
	// DebugLogger returns a Logger writing to the scenario's captured
	// output.
	DebugLogger() framework.Logger
}

// WithSession scopes a browser session to exactly one scenario execution.
//
// If no session can be acquired, the scenario is skipped, not failed:
// acquisition failure is an environment problem, not a defect in the
// application under test. On success the configured session is handed to the
// action; release of the underlying browser process is registered with the
// scope so that it runs on every exit path, exactly once, and an error
// during release never masks the scenario's actual outcome.
//
// Acquisition attempts are traced into the scenario's debug output, so a
// skip caused by a flaky environment can be diagnosed from the captured log.
func WithSession(t Scope, cfg SessionConfig, action func(*Session), strategies ...Strategy) {
	logger := framework.LoggerWithPrefix(t.DebugLogger(), "browser: ")
	session, err := AcquireSession(cfg, logger, strategies...)
	if err != nil {
		t.SkipWithReason(fmt.Sprintf("could not acquire a browser session: %s", err))
		return
	}

	t.Defer(func() {
		if err := session.Release(); err != nil {
			t.Debug("error while releasing browser session (ignored): %s", err)
		}
	})

	action(session)
}
