package browser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	"github.com/liveqa/platform-test-harness/framework"
)

// Chromium 119.x, the same line as the known-good driver version used before
// managed downloads existed here.
const pinnedBrowserRevision = 1204232

// Strategy is one named way of producing a Session. Strategies carry no
// precondition checks: an unavailable strategy is expected to fail, and the
// chain moves on to the next one.
type Strategy struct {
	Name    string
	Acquire func(cfg SessionConfig) (*Session, error)
}

// DefaultStrategies returns the acquisition strategies in their fixed trial
// order, from most specific to most generic:
//
//  1. use a locally installed browser as-is
//  2. download the latest compatible browser build
//  3. download a pinned known-good build
//  4. fall back to the launcher's own resolution with no pinning
//
// Browser/driver version skew and network availability are both unreliable
// in CI and developer environments; any single method has a high failure
// rate unrelated to the application under test.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: "system", Acquire: acquireSystemBrowser},
		{Name: "managed-latest", Acquire: acquireManagedLatest},
		{Name: "managed-pinned", Acquire: acquireManagedPinned},
		{Name: "default", Acquire: acquireDefault},
	}
}

func acquireSystemBrowser(cfg SessionConfig) (*Session, error) {
	path, ok := launcher.LookPath()
	if !ok {
		return nil, errors.New("no locally installed browser found")
	}
	return launchAndConnect(newLauncher(cfg).Bin(path), cfg)
}

func acquireManagedLatest(cfg SessionConfig) (*Session, error) {
	path, err := launcher.NewBrowser().Get()
	if err != nil {
		return nil, fmt.Errorf("browser download failed: %w", err)
	}
	return launchAndConnect(newLauncher(cfg).Bin(path), cfg)
}

func acquireManagedPinned(cfg SessionConfig) (*Session, error) {
	b := launcher.NewBrowser()
	b.Revision = pinnedBrowserRevision
	path, err := b.Get()
	if err != nil {
		return nil, fmt.Errorf("download of pinned browser revision %d failed: %w", pinnedBrowserRevision, err)
	}
	return launchAndConnect(newLauncher(cfg).Bin(path), cfg)
}

func acquireDefault(cfg SessionConfig) (*Session, error) {
	return launchAndConnect(newLauncher(cfg), cfg)
}

// AcquisitionError records one strategy's failure.
type AcquisitionError struct {
	Strategy string
	Err      error
}

func (e AcquisitionError) Error() string {
	return fmt.Sprintf("strategy %q: %s", e.Strategy, e.Err)
}

func (e AcquisitionError) Unwrap() error { return e.Err }

// ExhaustedError is returned when every strategy in the chain has failed. It
// carries each attempt's failure for diagnostics.
type ExhaustedError struct {
	Attempts []AcquisitionError
}

func (e *ExhaustedError) Error() string {
	msgs := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		msgs = append(msgs, a.Error())
	}
	return "all acquisition strategies failed: " + strings.Join(msgs, "; ")
}

// Unwrap returns the last observed failure.
func (e *ExhaustedError) Unwrap() error {
	if len(e.Attempts) == 0 {
		return nil
	}
	return e.Attempts[len(e.Attempts)-1].Err
}

// AcquireSession tries strategies strictly in order and returns the first
// Session any of them produces; strategies after the first success are never
// attempted. If no strategies are given, DefaultStrategies is used. When
// every strategy fails, the result is a *ExhaustedError.
//
// Individual strategy failures are expected and only reported through the
// logger; they become visible as an error only once the whole chain is
// exhausted.
func AcquireSession(cfg SessionConfig, logger framework.Logger, strategies ...Strategy) (*Session, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	var attempts []AcquisitionError
	for _, strategy := range strategies {
		logger.Printf("trying acquisition strategy %q", strategy.Name)
		session, err := tryStrategy(strategy, cfg)
		if err == nil {
			logger.Printf("acquired a session with strategy %q", strategy.Name)
			return session, nil
		}
		logger.Printf("strategy %q failed: %s", strategy.Name, err)
		attempts = append(attempts, AcquisitionError{Strategy: strategy.Name, Err: err})
	}
	return nil, &ExhaustedError{Attempts: attempts}
}

// tryStrategy isolates one attempt: a panic inside a strategy counts as that
// strategy's failure rather than aborting the chain.
func tryStrategy(strategy Strategy, cfg SessionConfig) (session *Session, err error) {
	defer func() {
		if r := recover(); r != nil {
			session = nil
			err = fmt.Errorf("panic during acquisition: %+v", r)
		}
	}()
	return strategy.Acquire(cfg)
}
