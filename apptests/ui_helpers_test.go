package apptests

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsProductTerm(t *testing.T) {
	assert.True(t, containsProductTerm("Live Q&A - Home"))
	assert.True(t, containsProductTerm("Welcome to LIVE sessions"))
	assert.True(t, containsProductTerm("the qna platform"))
	assert.False(t, containsProductTerm("Generic Web App"))
	assert.False(t, containsProductTerm(""))
}

func TestFitsViewport(t *testing.T) {
	assert.True(t, fitsViewport(390, 390), "exact fit is within tolerance")
	assert.True(t, fitsViewport(410, 390), "20px overflow is within tolerance")
	assert.False(t, fitsViewport(411, 390), "just past the tolerance is overflow")
	assert.False(t, fitsViewport(900, 390))
	assert.True(t, fitsViewport(200, 390), "narrower than the viewport is fine")
}

func TestAcceptableProtectedLanding(t *testing.T) {
	assert.True(t, acceptableProtectedLanding("http://localhost:3001/auth/signin?next=/rooms/create", "create"),
		"a sign-in redirect is acceptable")
	assert.True(t, acceptableProtectedLanding("http://localhost:3001/rooms/create", "create"),
		"staying on the route itself is acceptable")
	assert.False(t, acceptableProtectedLanding("http://localhost:3001/", "create"),
		"landing on an unrelated page is not acceptable")
	assert.False(t, acceptableProtectedLanding("http://localhost:3001/rooms/create", "join"))
}

func TestHasValidationSignal(t *testing.T) {
	empty := ""
	assert.True(t, hasValidationSignal(&empty, "", ""), "a required attribute is a signal")
	assert.True(t, hasValidationSignal(nil, "input is-invalid", ""), "an error class is a signal")
	assert.True(t, hasValidationSignal(nil, "input error", ""))
	assert.True(t, hasValidationSignal(nil, "", "Please fill out this field."),
		"a constraint validation message is a signal")
	assert.False(t, hasValidationSignal(nil, "input primary", ""))
	assert.False(t, hasValidationSignal(nil, "", ""))
}
