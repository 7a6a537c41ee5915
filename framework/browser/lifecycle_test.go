package browser

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liveqa/platform-test-harness/framework"
)

// fakeScope stands in for a scenario scope. Unlike the real one it does not
// panic on skip, so WithSession's plain return path is exercised; cleanups
// are run explicitly the way the framework runs them, in reverse order.
type fakeScope struct {
	skipped    bool
	skipReason string
	cleanups   []func()
	debugs     []string
	debugLog   framework.CapturingLogger
}

func (f *fakeScope) SkipWithReason(reason string) {
	f.skipped = true
	f.skipReason = reason
}

func (f *fakeScope) Defer(cleanupFn func()) {
	f.cleanups = append(f.cleanups, cleanupFn)
}

func (f *fakeScope) Debug(message string, args ...interface{}) {
	f.debugs = append(f.debugs, fmt.Sprintf(message, args...))
}

func (f *fakeScope) DebugLogger() framework.Logger {
	return &f.debugLog
}

func (f *fakeScope) runCleanups() {
	for i := len(f.cleanups) - 1; i >= 0; i-- {
		f.cleanups[i]()
	}
}

func releasableSession(releases *int, releaseErr error) *Session {
	return &Session{closeFn: func() error {
		*releases++
		return releaseErr
	}}
}

func TestWithSessionSkipsWhenAcquisitionFails(t *testing.T) {
	scope := &fakeScope{}
	ran := false
	WithSession(scope, DefaultSessionConfig(),
		func(*Session) { ran = true },
		Strategy{Name: "broken", Acquire: func(SessionConfig) (*Session, error) {
			return nil, errors.New("no browser anywhere")
		}},
	)
	scope.runCleanups()

	assert.False(t, ran, "scenario body must not run without a session")
	assert.True(t, scope.skipped)
	assert.Contains(t, scope.skipReason, "no browser anywhere")
}

func TestWithSessionReleasesOnNormalExit(t *testing.T) {
	scope := &fakeScope{}
	releases := 0
	var got *Session
	session := releasableSession(&releases, nil)
	WithSession(scope, DefaultSessionConfig(),
		func(s *Session) { got = s },
		Strategy{Name: "stub", Acquire: func(SessionConfig) (*Session, error) {
			return session, nil
		}},
	)
	scope.runCleanups()

	assert.Same(t, session, got)
	assert.False(t, scope.skipped)
	assert.Equal(t, 1, releases)
}

func TestWithSessionReleasesWhenScenarioBodyPanics(t *testing.T) {
	scope := &fakeScope{}
	releases := 0
	session := releasableSession(&releases, nil)

	func() {
		defer func() {
			_ = recover() // the framework would turn this into a failure
			scope.runCleanups()
		}()
		WithSession(scope, DefaultSessionConfig(),
			func(*Session) { panic("assertion blew up") },
			Strategy{Name: "stub", Acquire: func(SessionConfig) (*Session, error) {
				return session, nil
			}},
		)
	}()

	assert.Equal(t, 1, releases, "release must run even when the scenario body panics")
}

func TestWithSessionSwallowsReleaseErrors(t *testing.T) {
	scope := &fakeScope{}
	releases := 0
	session := releasableSession(&releases, errors.New("browser already gone"))
	WithSession(scope, DefaultSessionConfig(),
		func(*Session) {},
		Strategy{Name: "stub", Acquire: func(SessionConfig) (*Session, error) {
			return session, nil
		}},
	)
	scope.runCleanups()

	assert.Equal(t, 1, releases)
	require.Len(t, scope.debugs, 1)
	assert.Contains(t, scope.debugs[0], "browser already gone")
}

func TestWithSessionTracesAcquisitionIntoDebugOutput(t *testing.T) {
	scope := &fakeScope{}
	WithSession(scope, DefaultSessionConfig(),
		func(*Session) {},
		Strategy{Name: "broken", Acquire: func(SessionConfig) (*Session, error) {
			return nil, errors.New("no browser anywhere")
		}},
	)
	scope.runCleanups()

	out := scope.debugLog.Output().ToString("")
	assert.Contains(t, out, `browser: strategy "broken" failed: no browser anywhere`)
}

func TestSessionReleaseIsIdempotent(t *testing.T) {
	releases := 0
	session := releasableSession(&releases, nil)
	require.NoError(t, session.Release())
	require.NoError(t, session.Release())
	assert.Equal(t, 1, releases)
}
