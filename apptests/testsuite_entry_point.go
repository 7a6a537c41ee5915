// Package apptests contains the verification battery for the Live Q&A
// platform: session-free HTTP probes against the front-end and backend API,
// and browser-driven UI scenarios. The application under test is a black
// box; only HTTP responses and rendered DOM state are examined.
package apptests

import (
	"github.com/liveqa/platform-test-harness/framework/qatest"
)

// RunAppTestSuite executes every selected scenario against the configured
// deployment and returns the aggregated results. Scenarios run sequentially;
// a failure in one never aborts the rest, and browser-session acquisition
// failures surface as skips rather than failures.
func RunAppTestSuite(
	config TargetConfig,
	filter qatest.Filter,
	testLogger qatest.TestLogger,
) qatest.Results {
	testConfig := qatest.TestConfiguration{
		Filter:     filter,
		TestLogger: testLogger,
		Context:    newAppTestContext(config),
	}

	return qatest.Run(testConfig, func(t *qatest.T) {
		t.Run("http", doHTTPProbeTests)
		t.Run("ui", doUIScenarioTests)
	})
}
