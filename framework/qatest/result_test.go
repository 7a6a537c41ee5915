package qatest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTestIDString(t *testing.T) {
	assert.Equal(t, "", TestID{}.String())
	assert.Equal(t, "http", TestID{"http"}.String())
	assert.Equal(t, "http/front-end liveness", TestID{"http", "front-end liveness"}.String())
	assert.Equal(t, "ui/sign-in page/email field", TestID{"ui", "sign-in page", "email field"}.String())
}

func TestTestIDPlus(t *testing.T) {
	assert.Equal(t, TestID{"name 1"}, TestID{}.Plus("name 1"))
	assert.Equal(t, TestID{"name 1", "name 2"}, TestID{}.Plus("name 1").Plus("name 2"))

	// Calling Plus does not modify the original value
	id1 := TestID{"name 1"}
	id2a := id1.Plus("name 2a")
	id2b := id1.Plus("name 2b")
	assert.Equal(t, TestID{"name 1"}, id1)
	assert.Equal(t, TestID{"name 1", "name 2a"}, id2a)
	assert.Equal(t, TestID{"name 1", "name 2b"}, id2b)
}

func TestResultsOK(t *testing.T) {
	assert.True(t, Results{}.OK())

	withSkips := Results{Skipped: []TestResult{{TestID: TestID{"ui", "homepage"}, Skipped: true}}}
	assert.True(t, withSkips.OK(), "skipped scenarios must not affect the overall outcome")

	withFailure := Results{Failures: []TestResult{{TestID: TestID{"http", "liveness"}, Errors: []error{errors.New("boom")}}}}
	assert.False(t, withFailure.OK())
}
