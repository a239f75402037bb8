package pagescan

import (
	"net/url"
	"strings"
)

// OpenGraphRecognizer captures OpenGraph (og:-prefixed) and twitter-card
// meta properties. Each pair is emitted immediately as a low-priority
// Property and buffered; when the body closes the buffer is drained into an
// HEntry (or a bare Img when only an image was present), with anything left
// over emitted again as plain Properties.
type OpenGraphRecognizer struct {
	hooks *Hooks
	base  *url.URL
	props map[string]string
	order []string
}

// NewOpenGraphRecognizer returns an OpenGraphRecognizer for a single scan.
func NewOpenGraphRecognizer() *OpenGraphRecognizer {
	r := &OpenGraphRecognizer{props: make(map[string]string)}
	r.hooks = &Hooks{
		BaseURL: func(base *url.URL) { r.base = base },
		EndTag: map[string]func(*Tag) []Stuff{
			"meta": r.endMeta,
			"body": r.endBody,
		},
	}
	return r
}

// Hooks implements Recognizer.
func (r *OpenGraphRecognizer) Hooks() *Hooks { return r.hooks }

func (r *OpenGraphRecognizer) endMeta(t *Tag) []Stuff {
	name := ""
	if prop, _ := t.Get("property"); strings.HasPrefix(prop, "og:") {
		name = prop
	} else if n, _ := t.Get("name"); strings.HasPrefix(n, "twitter") {
		name = n
	}
	if name == "" {
		return nil
	}
	value, _ := t.Get("content")
	if value == "" {
		return nil
	}
	if _, seen := r.props[name]; !seen {
		r.order = append(r.order, name)
	}
	r.props[name] = value
	return []Stuff{&Property{Classes: []string{name}, Value: value}}
}

func (r *OpenGraphRecognizer) endBody(*Tag) []Stuff {
	imageSrc := r.pop("og:image", "twitter:image")
	if imageSrc != "" {
		imageSrc = resolveRef(r.base, imageSrc)
	}
	title := r.pop("og:title", "twitter:title")
	desc := r.pop("og:description", "twitter:description")
	pageURL := r.pop("og:url", "twitter:url")

	var stuff []Stuff
	for _, name := range r.order {
		if value, ok := r.props[name]; ok {
			stuff = append(stuff, &Property{Classes: []string{name}, Value: value})
		}
	}
	switch {
	case title != "" || desc != "" || pageURL != "":
		entry := &HEntry{HRef: resolveRef(r.base, pageURL), Name: title, Summary: desc}
		if imageSrc != "" {
			entry.Images = []*Img{{Src: imageSrc}}
		}
		stuff = append(stuff, entry)
	case imageSrc != "":
		stuff = append(stuff, &Img{Src: imageSrc})
	}
	return stuff
}

// pop removes and returns the first buffered value found under the given
// keys, or "" when none is present.
func (r *OpenGraphRecognizer) pop(keys ...string) string {
	for _, k := range keys {
		if v, ok := r.props[k]; ok {
			delete(r.props, k)
			return v
		}
	}
	return ""
}
