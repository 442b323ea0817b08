// Package sanitize cleans field-list markup fragments before they are mounted
// into a document. The policy keeps form structure and the attributes the
// field-list contract depends on, and strips scripts, styles and inline event
// handlers.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// Fragment sanitizes an HTML fragment.
func Fragment(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(Policy().Sanitize(trimmed))
}

// Bytes sanitizes an HTML fragment held in a byte slice.
func Bytes(raw []byte) []byte {
	return []byte(Fragment(string(raw)))
}

// Policy returns the shared field-list policy.
func Policy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.StrictPolicy()

		p.AllowElements(
			"form", "fieldset", "legend", "ul", "ol", "li", "div", "span", "p",
			"label", "input", "select", "option", "optgroup", "textarea", "button",
			"small", "strong", "em",
		)

		p.AllowAttrs("id", "class", "title", "role").Globally()
		p.AllowAttrs("hidden").Globally()
		p.AllowAttrs("data-bs-theme").Globally()
		p.AllowAttrs("aria-label", "aria-labelledby", "aria-describedby", "aria-pressed", "aria-hidden").Globally()

		p.AllowAttrs(
			"name", "type", "value", "placeholder", "checked", "disabled",
			"readonly", "required", "min", "max", "step", "pattern", "autocomplete",
		).OnElements("input")
		p.AllowAttrs("name", "multiple", "disabled", "required").OnElements("select")
		p.AllowAttrs("value", "selected", "disabled", "label").OnElements("option")
		p.AllowAttrs("label", "disabled").OnElements("optgroup")
		p.AllowAttrs("name", "rows", "cols", "placeholder", "disabled", "readonly", "required").OnElements("textarea")
		p.AllowAttrs("type", "name", "value", "disabled").OnElements("button")
		p.AllowAttrs("for").OnElements("label")
		p.AllowAttrs("method").OnElements("form")

		policy = p
	})
	return policy
}
