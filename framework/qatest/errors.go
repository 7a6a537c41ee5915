package qatest

import (
	"errors"
	"fmt"
	"regexp"
	"runtime"
	"strings"
)

var errorTraceInMessageRegex = regexp.MustCompile(`^(?s:\s*Error Trace:.*\sError:\s*)`)

// normalizeError strips the stacktrace noise that testify's assert/require
// functions embed in failure messages, and tags the message with the
// location of the assertion that produced it.
func normalizeError(err error, location string) error {
	message := err.Error()
	if strings.Contains(message, "Error Trace:") {
		message = strings.TrimSpace(errorTraceInMessageRegex.ReplaceAllLiteralString(message, ""))
	}
	if location == "" {
		return errors.New(message)
	}
	return fmt.Errorf("%s (at %s)", message, location)
}

// callerLocation returns a short file:line description of the first caller
// outside of this package and outside of testify, or "" if none is found.
func callerLocation() string {
	for i := 2; i < 20; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			return ""
		}
		f := runtime.FuncForPC(pc)
		if f == nil {
			return ""
		}
		name := f.Name()
		if strings.Contains(name, "framework/qatest.") ||
			strings.Contains(name, "stretchr/testify/") {
			continue
		}
		parts := strings.Split(file, "/")
		return fmt.Sprintf("%s:%d", parts[len(parts)-1], line)
	}
	return ""
}
