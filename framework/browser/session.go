// Package browser manages controllable browser instances for the UI
// scenario suite: acquiring them from an unreliable local environment,
// scoping their lifetime to one scenario, and releasing them on every exit
// path.
package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// SessionConfig configures browser launch and interaction behavior.
type SessionConfig struct {
	Headless     bool          // run without a visible window (default: true)
	Timeout      time.Duration // bound for navigation and DOM waits (default: 10s)
	WindowWidth  int
	WindowHeight int
}

// DefaultSessionConfig returns the standard configuration for the UI
// scenario suite.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Headless:     true,
		Timeout:      10 * time.Second,
		WindowWidth:  1920,
		WindowHeight: 1080,
	}
}

// Session is an opaque handle to one running browser instance. It owns the
// underlying browser process for the duration of one scenario; Release
// terminates that process and is safe to call from any exit path.
type Session struct {
	browser *rod.Browser
	page    *rod.Page
	timeout time.Duration
	closeFn func() error
	release sync.Once
}

func newLauncher(cfg SessionConfig) *launcher.Launcher {
	return launcher.New().
		Headless(cfg.Headless).
		Set("no-sandbox").
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("disable-extensions")
}

func launchAndConnect(l *launcher.Launcher, cfg SessionConfig) (*Session, error) {
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	s := &Session{
		browser: b,
		timeout: cfg.Timeout,
		closeFn: func() error {
			err := b.Close()
			l.Kill()
			l.Cleanup()
			return err
		},
	}

	// A session is only usable once its working page is open and sized, so
	// that is part of acquisition, not the scenario body.
	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = s.Release()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	s.page = page
	if err := s.SetViewport(cfg.WindowWidth, cfg.WindowHeight, false); err != nil {
		_ = s.Release()
		return nil, fmt.Errorf("failed to set viewport: %w", err)
	}
	return s, nil
}

// SetViewport resizes the rendered viewport; scenarios use this to emulate
// mobile devices.
func (s *Session) SetViewport(width, height int, mobile bool) error {
	return s.page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: 1,
		Mobile:            mobile,
	})
}

// Navigate loads the given URL and waits for the load event, bounded by the
// session timeout.
func (s *Session) Navigate(url string) error {
	p := s.page.Timeout(s.timeout)
	defer p.CancelTimeout()
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return p.WaitLoad()
}

// Element waits for an element matching the selector to appear, bounded by
// the session timeout.
func (s *Session) Element(selector string) (*rod.Element, error) {
	p := s.page.Timeout(s.timeout)
	defer p.CancelTimeout()
	return p.Element(selector)
}

// ElementMatching waits for an element matching the selector whose text
// matches the given JavaScript regex (e.g. "/welcome/i"), bounded by the
// session timeout. A timeout here is detectable with IsTimeout, so scenarios
// can degrade to a less specific lookup.
func (s *Session) ElementMatching(selector, jsRegex string) (*rod.Element, error) {
	p := s.page.Timeout(s.timeout)
	defer p.CancelTimeout()
	return p.ElementR(selector, jsRegex)
}

// WaitFor blocks until the given JavaScript function returns a truthy value,
// bounded by the session timeout.
func (s *Session) WaitFor(js string) error {
	p := s.page.Timeout(s.timeout)
	defer p.CancelTimeout()
	return p.Wait(rod.Eval(js))
}

// Optional checks for an element without waiting. Scenarios use this for
// features whose absence is a note, not a failure.
func (s *Session) Optional(selector string) (*rod.Element, bool) {
	has, el, err := s.page.Has(selector)
	if err != nil || !has {
		return nil, false
	}
	return el, true
}

// Eval runs a JavaScript function in the page, bounded by the session
// timeout.
func (s *Session) Eval(js string) (*proto.RuntimeRemoteObject, error) {
	p := s.page.Timeout(s.timeout)
	defer p.CancelTimeout()
	obj, err := p.Eval(js)
	if err != nil {
		return nil, fmt.Errorf("eval failed: %w", err)
	}
	return obj, nil
}

// CurrentURL returns the page's current address, after any redirects.
func (s *Session) CurrentURL() (string, error) {
	info, err := s.page.Info()
	if err != nil {
		return "", err
	}
	return info.URL, nil
}

// Title returns the current document title.
func (s *Session) Title() (string, error) {
	info, err := s.page.Info()
	if err != nil {
		return "", err
	}
	return info.Title, nil
}

// Timeout returns the configured bound for navigation and DOM waits.
func (s *Session) Timeout() time.Duration {
	return s.timeout
}

// Release terminates the underlying browser process and frees its resources.
// Only the first call has any effect; later calls return nil. The session is
// always considered released afterwards, even if termination reported an
// error.
func (s *Session) Release() error {
	var err error
	s.release.Do(func() {
		if s.closeFn != nil {
			err = s.closeFn()
		}
	})
	return err
}

// IsTimeout reports whether an error from a Session operation was caused by
// the bounded wait expiring. Scenarios may catch this to fall back to a more
// permissive check.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
