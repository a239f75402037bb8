package pagescan

import (
	"net/url"
	"strings"
)

// resolveRef resolves a possibly-relative reference against base. A nil
// base or an unparsable reference leaves the reference as-is; resolution
// is best-effort, never an error.
func resolveRef(base *url.URL, href string) string {
	if base == nil {
		return href
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
