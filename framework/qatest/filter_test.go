package qatest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTestIDPattern(t *testing.T) {
	p, err := ParseTestIDPattern("ui/sign-in.*")
	require.NoError(t, err)
	assert.Equal(t, "ui/sign-in.*", p.String())

	_, err = ParseTestIDPattern("ui/(")
	assert.Error(t, err)
}

func TestTestIDPatternMatch(t *testing.T) {
	p, err := ParseTestIDPattern("ui/homepage")
	require.NoError(t, err)

	assert.True(t, p.Match(TestID{"ui", "homepage load"}, true))
	assert.False(t, p.Match(TestID{"http", "homepage load"}, true))

	// a parent scope matches when includeParents is set, so that entering
	// the scope is allowed before its children are filtered individually
	assert.True(t, p.Match(TestID{"ui"}, true))
	assert.False(t, p.Match(TestID{"ui"}, false))
}

func TestRegexFiltersMatch(t *testing.T) {
	var f RegexFilters
	require.NoError(t, f.MustMatch.Set("ui"))
	require.NoError(t, f.MustNotMatch.Set("ui/theme"))

	assert.True(t, f.Match(TestID{"ui", "homepage load"}))
	assert.False(t, f.Match(TestID{"http", "front-end liveness"}))
	assert.False(t, f.Match(TestID{"ui", "theme toggle"}))
}

func TestRegexFiltersEmptyMatchesEverything(t *testing.T) {
	var f RegexFilters
	assert.True(t, f.Match(TestID{"anything", "at all"}))
}
