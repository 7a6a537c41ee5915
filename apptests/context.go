package apptests

import (
	"net/http"
	"time"

	"github.com/liveqa/platform-test-harness/framework/browser"
	"github.com/liveqa/platform-test-harness/framework/qatest"
)

// AppTestContext is the application-defined context handed to every
// scenario. It carries the target configuration plus the shared HTTP client
// for probes; scenarios themselves hold no state between runs.
type AppTestContext struct {
	config        TargetConfig
	httpClient    *http.Client
	sessionConfig browser.SessionConfig
}

func newAppTestContext(config TargetConfig) AppTestContext {
	sessionConfig := browser.DefaultSessionConfig()
	sessionConfig.Headless = config.Headless
	sessionConfig.Timeout = time.Duration(config.RequestTimeout)
	return AppTestContext{
		config: config,
		// redirects are followed by default, which is what the route
		// reachability probes want
		httpClient:    &http.Client{Timeout: time.Duration(config.RequestTimeout)},
		sessionConfig: sessionConfig,
	}
}

func appContext(t *qatest.T) AppTestContext {
	return t.Context().(AppTestContext)
}

// withSession runs a scenario body against a freshly acquired browser
// session. The scenario is skipped, not failed, when no session can be
// acquired, and the session never outlives the scenario.
func withSession(t *qatest.T, action func(t *qatest.T, s *browser.Session)) {
	c := appContext(t)
	browser.WithSession(t, c.sessionConfig, func(s *browser.Session) {
		action(t, s)
	})
}
