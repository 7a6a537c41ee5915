package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/liveqa/platform-test-harness/framework/qatest"
)

type commandParams struct {
	configFile  string
	frontendURL string
	backendURL  string
	timeout     time.Duration
	headless    bool
	headlessSet bool
	noBrowser   bool
	filters     qatest.RegexFilters
	debug       bool
	debugAll    bool
	jUnitFile   string
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.configFile, "config", "", "optional YAML file with target URLs and timeouts")
	fs.StringVar(&c.frontendURL, "frontend-url", "", "front-end base URL (default http://localhost:3001)")
	fs.StringVar(&c.backendURL, "backend-url", "", "backend API base URL (default http://localhost:3000)")
	fs.DurationVar(&c.timeout, "timeout", 0, "request and interaction timeout (default 10s)")
	fs.BoolVar(&c.headless, "headless", true, "run the browser in headless mode")
	fs.BoolVar(&c.noBrowser, "no-browser", false, "run only the HTTP probes, skipping browser scenarios")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select scenarios to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select scenarios not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed scenarios")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all scenarios")
	fs.StringVar(&c.jUnitFile, "junit", "", "write JUnit XML output to the specified path")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "headless" {
			c.headlessSet = true
		}
	})
	return true
}
