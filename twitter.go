package pagescan

import (
	"fmt"
	"net/url"
	"regexp"
)

var twitterStatusRE = regexp.MustCompile(`^https://twitter\.com/(\w+)/status/\d+`)

// TwitterRecognizer guesses a title for Twitter status pages from the
// user handle in the page URL. The guess carries the lowest weight so any
// richer title found in the document wins.
type TwitterRecognizer struct {
	hooks *Hooks
	base  *url.URL
}

// NewTwitterRecognizer returns a TwitterRecognizer for a single scan.
func NewTwitterRecognizer() *TwitterRecognizer {
	r := &TwitterRecognizer{}
	r.hooks = &Hooks{
		BaseURL: func(base *url.URL) { r.base = base },
		EndTag: map[string]func(*Tag) []Stuff{
			"body": r.endBody,
		},
	}
	return r
}

// Hooks implements Recognizer.
func (r *TwitterRecognizer) Hooks() *Hooks { return r.hooks }

func (r *TwitterRecognizer) endBody(*Tag) []Stuff {
	if r.base == nil {
		return nil
	}
	m := twitterStatusRE.FindStringSubmatch(r.base.String())
	if m == nil {
		return nil
	}
	return []Stuff{&Title{Text: fmt.Sprintf("@%s on Twitter", m[1]), Weight: 0}}
}
