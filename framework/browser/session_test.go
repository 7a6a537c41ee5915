package browser

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTimeout(t *testing.T) {
	assert.True(t, IsTimeout(context.DeadlineExceeded))
	assert.True(t, IsTimeout(fmt.Errorf("eval failed: %w", context.DeadlineExceeded)),
		"wrapped deadline errors are still timeouts")
	assert.False(t, IsTimeout(errors.New("browser process crashed")))
	assert.False(t, IsTimeout(nil))
}

func TestSessionTimeoutReportsConfiguredBound(t *testing.T) {
	cfg := DefaultSessionConfig()
	s := &Session{timeout: cfg.Timeout}
	assert.Equal(t, cfg.Timeout, s.Timeout())
}
