package apptests

import (
	"fmt"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liveqa/platform-test-harness/framework/browser"
	"github.com/liveqa/platform-test-harness/framework/qatest"
)

// Mobile viewport for the responsive layout scenario (iPhone 12 Pro).
const mobileViewportWidth = 390
const mobileViewportHeight = 844

const loadTimeCeiling = 10 * time.Second

// Each scenario acquires its own session, so scenarios stay independent and
// satisfiable in any order. Optional page features (theme toggle, footer,
// sign-in link) degrade to a logged note when absent; required elements are
// hard failures.
func doUIScenarioTests(t *qatest.T) {
	t.Run("homepage load", doHomepageLoadScenario)
	t.Run("navigation menu", doNavigationMenuScenario)
	t.Run("sign-in page", doSignInPageScenario)
	t.Run("sign-in form validation", doSignInValidationScenario)
	t.Run("create room route", func(t *qatest.T) {
		doProtectedRouteScenario(t, "/rooms/create", "create", "input[name='title'], input[placeholder*='title' i]")
	})
	t.Run("join room route", func(t *qatest.T) {
		doProtectedRouteScenario(t, "/rooms/join", "join", "input[name='code'], input[placeholder*='code' i]")
	})
	t.Run("theme toggle", doThemeToggleScenario)
	t.Run("footer", doFooterScenario)
	t.Run("responsive layout", doResponsiveLayoutScenario)
	t.Run("load performance", doLoadPerformanceScenario)
}

func doHomepageLoadScenario(t *qatest.T) {
	withSession(t, func(t *qatest.T, s *browser.Session) {
		c := appContext(t)
		require.NoError(t, s.Navigate(c.config.FrontendBaseURL))

		title, err := s.Title()
		require.NoError(t, err)
		t.Debug("homepage title: %q", title)

		// prefer a heading that names the product; if none appears within
		// the timeout, degrade to accepting any heading
		heading, err := s.ElementMatching("h1", productTermPattern)
		if browser.IsTimeout(err) {
			t.Debug("note: no heading names the product, accepting any heading")
			heading, err = s.Element("h1")
		}
		require.NoError(t, err, "homepage has no top-level heading")
		assert.True(t, isVisible(heading), "top-level heading is present but not visible")

		headingText, err := heading.Text()
		require.NoError(t, err)
		if !containsProductTerm(title) && !containsProductTerm(headingText) {
			t.Errorf("neither title %q nor heading %q names the product", title, headingText)
		}
	})
}

func doNavigationMenuScenario(t *qatest.T) {
	withSession(t, func(t *qatest.T, s *browser.Session) {
		c := appContext(t)
		require.NoError(t, s.Navigate(c.config.FrontendBaseURL))

		nav, err := s.Element("nav")
		require.NoError(t, err, "no navigation landmark on the homepage")
		assert.True(t, isVisible(nav), "navigation landmark is present but not visible")

		if link, ok := s.Optional("a[href*='signin']"); ok && isVisible(link) {
			t.Debug("sign-in link present in navigation")
		} else {
			t.Debug("note: sign-in link not found in navigation")
		}
	})
}

func doSignInPageScenario(t *qatest.T) {
	withSession(t, func(t *qatest.T, s *browser.Session) {
		c := appContext(t)
		require.NoError(t, s.Navigate(c.config.frontendURL("/auth/signin")))

		email, err := s.Element("input[type='email'], input[name='email']")
		require.NoError(t, err, "sign-in page has no email field")
		assert.True(t, isVisible(email), "email field is present but not visible")

		password, err := s.Element("input[type='password'], input[name='password']")
		require.NoError(t, err, "sign-in page has no password field")
		assert.True(t, isVisible(password), "password field is present but not visible")
	})
}

// Best-effort by design: if no validation signal can be established at all,
// the scenario logs a note and still passes, because the front-end may
// render validation in markup this harness cannot enumerate.
func doSignInValidationScenario(t *qatest.T) {
	withSession(t, func(t *qatest.T, s *browser.Session) {
		c := appContext(t)
		require.NoError(t, s.Navigate(c.config.frontendURL("/auth/signin")))

		submit, err := s.Element("button[type='submit']")
		if err != nil {
			t.Debug("note: no submit button found, validation cannot be checked: %s", err)
			return
		}
		if err := submit.Click(proto.InputMouseButtonLeft, 1); err != nil {
			t.Debug("note: could not click the submit button: %s", err)
			return
		}

		email, err := s.Element("input[type='email'], input[name='email']")
		if err != nil {
			t.Debug("note: email field not found after submit: %s", err)
			return
		}

		required, err := email.Attribute("required")
		if err != nil {
			required = nil
		}
		validationMessage := ""
		if msg, err := email.Property("validationMessage"); err == nil {
			validationMessage = msg.Str()
		}

		if hasValidationSignal(required, elementClass(email), validationMessage) {
			t.Debug("validation signal observed on the email field")
		} else {
			t.Debug("note: no validation signal observed on the email field")
		}
	})
}

func doProtectedRouteScenario(t *qatest.T, route, targetFragment, formSelector string) {
	withSession(t, func(t *qatest.T, s *browser.Session) {
		c := appContext(t)
		require.NoError(t, s.Navigate(c.config.frontendURL(route)))

		currentURL, err := s.CurrentURL()
		require.NoError(t, err)
		t.Debug("navigating to %s landed on %s", route, currentURL)

		// both the route itself and a sign-in redirect are acceptable
		if !acceptableProtectedLanding(currentURL, targetFragment) {
			t.Errorf("navigating to %s landed on %s, expected the route itself or a sign-in redirect",
				route, currentURL)
			return
		}
		if field, ok := s.Optional(formSelector); ok && isVisible(field) {
			t.Debug("form field found on %s", route)
		} else {
			t.Debug("note: form field not visible on %s (may require auth)", route)
		}
	})
}

func doThemeToggleScenario(t *qatest.T) {
	withSession(t, func(t *qatest.T, s *browser.Session) {
		c := appContext(t)
		require.NoError(t, s.Navigate(c.config.FrontendBaseURL))

		toggle, ok := s.Optional("button[aria-label*='theme'], button[class*='theme']")
		if !ok {
			t.Debug("note: theme toggle button not found")
			return
		}

		htmlEl, err := s.Element("html")
		require.NoError(t, err)
		before := elementClass(htmlEl)

		require.NoError(t, toggle.Click(proto.InputMouseButtonLeft, 1))

		// the theme class may be applied asynchronously
		err = s.WaitFor(fmt.Sprintf(
			`() => (document.documentElement.className || '') !== %q`, before))
		if browser.IsTimeout(err) {
			t.Errorf("clicking the theme toggle did not change the document theme within %s", s.Timeout())
			return
		}
		require.NoError(t, err)
	})
}

func doFooterScenario(t *qatest.T) {
	withSession(t, func(t *qatest.T, s *browser.Session) {
		c := appContext(t)
		require.NoError(t, s.Navigate(c.config.FrontendBaseURL))

		_, err := s.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`)
		require.NoError(t, err)

		footer, ok := s.Optional("footer")
		if !ok {
			t.Debug("note: footer element not found")
			return
		}
		if !isVisible(footer) {
			t.Debug("note: footer element present but not visible")
			return
		}
		links, err := footer.Elements("a")
		if err != nil {
			t.Debug("note: could not inspect footer links: %s", err)
			return
		}
		t.Debug("footer found with %d links", len(links))
	})
}

func doResponsiveLayoutScenario(t *qatest.T) {
	withSession(t, func(t *qatest.T, s *browser.Session) {
		c := appContext(t)
		require.NoError(t, s.SetViewport(mobileViewportWidth, mobileViewportHeight, true))
		require.NoError(t, s.Navigate(c.config.FrontendBaseURL))

		widthObj, err := s.Eval(`() => document.body.scrollWidth`)
		require.NoError(t, err)
		viewportObj, err := s.Eval(`() => window.innerWidth`)
		require.NoError(t, err)

		documentWidth := widthObj.Value.Int()
		viewportWidth := viewportObj.Value.Int()
		t.Debug("document width %dpx in a %dpx viewport", documentWidth, viewportWidth)
		if !fitsViewport(documentWidth, viewportWidth) {
			t.Errorf("horizontal overflow at mobile size: document is %dpx wide in a %dpx viewport (tolerance %dpx)",
				documentWidth, viewportWidth, widthTolerancePx)
		}

		if h, ok := s.Optional("h1"); ok && isVisible(h) {
			t.Debug("main heading visible at mobile size")
		} else {
			t.Debug("note: main heading visibility check inconclusive")
		}
	})
}

func doLoadPerformanceScenario(t *qatest.T) {
	withSession(t, func(t *qatest.T, s *browser.Session) {
		c := appContext(t)
		start := time.Now()
		require.NoError(t, s.Navigate(c.config.FrontendBaseURL))
		wallClock := time.Since(start)

		// prefer the browser's own navigation timing: it excludes the
		// harness's automation overhead
		obj, err := s.Eval(`() => {
			const entries = performance.getEntriesByType('navigation');
			if (entries.length > 0) {
				return Math.round(entries[0].duration);
			}
			const t = performance.timing;
			return t.loadEventEnd - t.navigationStart;
		}`)
		if err == nil {
			if millis := obj.Value.Int(); millis > 0 {
				loadTime := time.Duration(millis) * time.Millisecond
				t.Debug("page load time (navigation timing): %s", loadTime)
				assert.Less(t, loadTime, loadTimeCeiling,
					"page load took %s, ceiling is %s", loadTime, loadTimeCeiling)
				return
			}
		} else {
			t.Debug("note: navigation timing unavailable: %s", err)
		}

		t.Debug("page load time (wall clock): %s", wallClock)
		assert.Less(t, wallClock, loadTimeCeiling,
			"page load took %s, ceiling is %s", wallClock, loadTimeCeiling)
	})
}
