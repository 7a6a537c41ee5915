package apptests

import (
	"strings"

	"github.com/go-rod/rod"
)

var productTerms = []string{"live", "q&a", "qna"}

// productTermPattern is the same term set as a JavaScript regex, for
// matching element text inside the page.
const productTermPattern = "/live|q&a|qna/i"

// containsProductTerm reports whether the text names the product,
// case-insensitively.
func containsProductTerm(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range productTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// widthTolerancePx allows for a scrollbar when comparing the rendered
// document width against the viewport.
const widthTolerancePx = 20

// fitsViewport reports whether a rendered document width stays within the
// viewport width, within tolerance. Anything wider means unintended
// horizontal overflow.
func fitsViewport(documentWidth, viewportWidth int) bool {
	return documentWidth <= viewportWidth+widthTolerancePx
}

// acceptableProtectedLanding reports whether navigating to an
// authenticated-only route ended up somewhere acceptable: either the route
// itself or a sign-in redirect.
func acceptableProtectedLanding(currentURL, targetFragment string) bool {
	return strings.Contains(currentURL, "signin") || strings.Contains(currentURL, targetFragment)
}

// hasValidationSignal reports whether an input field showed any of the
// validation signals a front-end might use after an empty submit: the HTML5
// required attribute, a validation class, or a native validation message.
func hasValidationSignal(required *string, class string, validationMessage string) bool {
	return required != nil ||
		strings.Contains(class, "invalid") ||
		strings.Contains(class, "error") ||
		validationMessage != ""
}

// elementClass returns an element's class attribute, or "" when absent.
func elementClass(el *rod.Element) string {
	attr, err := el.Attribute("class")
	if err != nil || attr == nil {
		return ""
	}
	return *attr
}

// isVisible is a lenient visibility check: lookup errors count as not
// visible rather than failing the scenario.
func isVisible(el *rod.Element) bool {
	visible, err := el.Visible()
	return err == nil && visible
}
