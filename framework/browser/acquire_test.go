package browser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liveqa/platform-test-harness/framework"
)

func stubStrategy(name string, calls *[]string, session *Session, err error) Strategy {
	return Strategy{Name: name, Acquire: func(SessionConfig) (*Session, error) {
		*calls = append(*calls, name)
		return session, err
	}}
}

func TestAcquireSessionStopsAtFirstSuccess(t *testing.T) {
	var calls []string
	want := &Session{}
	session, err := AcquireSession(DefaultSessionConfig(), framework.NullLogger(),
		stubStrategy("a", &calls, nil, errors.New("a is unavailable")),
		stubStrategy("b", &calls, want, nil),
		stubStrategy("c", &calls, &Session{}, nil),
	)
	require.NoError(t, err)
	assert.Same(t, want, session)
	assert.Equal(t, []string{"a", "b"}, calls, "strategies after the first success must not be attempted")
}

func TestAcquireSessionCollectsAllFailures(t *testing.T) {
	var calls []string
	session, err := AcquireSession(DefaultSessionConfig(), framework.NullLogger(),
		stubStrategy("a", &calls, nil, errors.New("first failure")),
		stubStrategy("b", &calls, nil, errors.New("last failure")),
	)
	require.Nil(t, session)
	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, []string{"a", "b"}, calls)
	require.Len(t, exhausted.Attempts, 2)
	assert.Equal(t, "a", exhausted.Attempts[0].Strategy)
	assert.Contains(t, err.Error(), "first failure")
	assert.Contains(t, err.Error(), "last failure")
	assert.Equal(t, "last failure", errors.Unwrap(err).Error(),
		"Unwrap should expose the last observed failure")
}

func TestAcquireSessionTreatsPanicAsStrategyFailure(t *testing.T) {
	var calls []string
	want := &Session{}
	session, err := AcquireSession(DefaultSessionConfig(), framework.NullLogger(),
		Strategy{Name: "explosive", Acquire: func(SessionConfig) (*Session, error) {
			panic("boom")
		}},
		stubStrategy("fallback", &calls, want, nil),
	)
	require.NoError(t, err)
	assert.Same(t, want, session)
	assert.Equal(t, []string{"fallback"}, calls)
}

func TestAcquireSessionPanicMessageIsRecorded(t *testing.T) {
	_, err := AcquireSession(DefaultSessionConfig(), framework.NullLogger(),
		Strategy{Name: "explosive", Acquire: func(SessionConfig) (*Session, error) {
			panic("boom")
		}},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `strategy "explosive"`)
	assert.Contains(t, err.Error(), "boom")
}

func TestAcquireSessionLogsEachAttempt(t *testing.T) {
	var calls []string
	var log framework.CapturingLogger
	_, err := AcquireSession(DefaultSessionConfig(), &log,
		stubStrategy("a", &calls, nil, errors.New("a is unavailable")),
		stubStrategy("b", &calls, &Session{}, nil),
	)
	require.NoError(t, err)

	messages := log.Output().ToString("")
	assert.Contains(t, messages, `strategy "a" failed: a is unavailable`)
	assert.Contains(t, messages, `acquired a session with strategy "b"`)
}

func TestAcquireSessionAcceptsNilLogger(t *testing.T) {
	var calls []string
	_, err := AcquireSession(DefaultSessionConfig(), nil,
		stubStrategy("only", &calls, &Session{}, nil),
	)
	require.NoError(t, err)
}

func TestDefaultStrategiesOrder(t *testing.T) {
	var names []string
	for _, s := range DefaultStrategies() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"system", "managed-latest", "managed-pinned", "default"}, names)
}
