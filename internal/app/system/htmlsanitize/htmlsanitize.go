// Package htmlsanitize strips unsafe markup from user-supplied rich text
// (firm notes, posting comments) before storage and rendering.
package htmlsanitize

import (
	"html/template"

	"github.com/microcosm-cc/bluemonday"
)

var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("colspan", "rowspan").OnElements("td", "th")
	return p
}

// Sanitize returns s with unsafe HTML removed. Plain text passes through
// unchanged.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}

// SanitizeHTML sanitizes and marks the result safe for template interpolation.
func SanitizeHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}
