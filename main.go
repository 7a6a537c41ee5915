package main

import (
	_ "embed" // this is required in order for go:embed to work
	"fmt"
	"os"
	"strings"

	"github.com/liveqa/platform-test-harness/apptests"
	"github.com/liveqa/platform-test-harness/framework/qatest"
)

//go:embed VERSION
var versionString string // comes from the VERSION file which we update for each release

func main() {
	fmt.Printf("liveqa-platform-test-harness v%s\n", strings.TrimSpace(versionString))

	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	results, err := run(params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// skipped scenarios do not affect the exit code
	if !results.OK() {
		os.Exit(1)
	}
}

func run(params commandParams) (*qatest.Results, error) {
	config, err := loadTargetConfig(params)
	if err != nil {
		return nil, err
	}

	var testLogger qatest.TestLogger
	consoleLogger := qatest.ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	if params.jUnitFile == "" {
		testLogger = consoleLogger
	} else {
		testLogger = &qatest.MultiTestLogger{Loggers: []qatest.TestLogger{
			consoleLogger,
			qatest.NewJUnitTestLogger(params.jUnitFile, map[string]string{
				"target.frontendBaseURL": config.FrontendBaseURL,
				"target.backendBaseURL":  config.BackendBaseURL,
				"filters.run":            params.filters.MustMatch.String(),
				"filters.skip":           params.filters.MustNotMatch.String(),
			}),
		}}
	}

	filters := params.filters
	if params.noBrowser {
		if err := filters.MustNotMatch.Set("^ui$"); err != nil {
			return nil, err
		}
	}

	fmt.Printf("Verifying front-end at %s and backend at %s\n\n", config.FrontendBaseURL, config.BackendBaseURL)

	results := apptests.RunAppTestSuite(config, filters.Match, testLogger)

	fmt.Println()
	if err := testLogger.EndLog(results); err != nil {
		return nil, fmt.Errorf("error writing log: %v", err)
	}

	return &results, nil
}

func loadTargetConfig(params commandParams) (apptests.TargetConfig, error) {
	config := apptests.DefaultTargetConfig()
	if params.configFile != "" {
		var err error
		config, err = apptests.LoadConfigFile(params.configFile)
		if err != nil {
			return config, err
		}
	}
	if params.frontendURL != "" {
		config.FrontendBaseURL = params.frontendURL
	}
	if params.backendURL != "" {
		config.BackendBaseURL = params.backendURL
	}
	if params.timeout > 0 {
		config.RequestTimeout = apptests.Duration(params.timeout)
	}
	if params.headlessSet {
		config.Headless = params.headless
	}
	return config, nil
}
