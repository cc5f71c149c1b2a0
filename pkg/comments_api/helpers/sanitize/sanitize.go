// Package sanitize cleans user-submitted comment HTML with a strict
// allow-list and auto-links bare URLs and email addresses.
package sanitize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Allowed: <a href title>, <code>, <i>, <strong>; http/https/mailto schemes.
// Everything else, comments included, is stripped.
var policy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("a", "code", "i", "strong")
	p.AllowAttrs("href", "title").OnElements("a")
	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireParseableURLs(true)
	return p
}()

var (
	urlRe   = regexp.MustCompile(`\bhttps?://[^\s<>"']+`)
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

// CommentHTML linkifies bare URLs/emails and cleans the result. Empty input
// yields "".
func CommentHTML(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	linked := linkify(raw)
	return policy.Sanitize(linked)
}

func linkify(s string) string {
	s = urlRe.ReplaceAllStringFunc(s, func(u string) string {
		return fmt.Sprintf(`<a href="%s">%s</a>`, u, u)
	})
	s = emailRe.ReplaceAllStringFunc(s, func(m string) string {
		return fmt.Sprintf(`<a href="mailto:%s">%s</a>`, m, m)
	})
	return s
}
