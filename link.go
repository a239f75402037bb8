package pagescan

import (
	"net/url"
	"strconv"
	"strings"
)

// LinkRecognizer spots links, anchors, images and hidden form-field URLs.
// All hrefs and srcs are resolved against the base URL in effect at the
// moment the element is observed.
type LinkRecognizer struct {
	hooks *Hooks
	base  *url.URL

	pendingLinks   map[*Tag]*Link
	pendingAnchors map[*Tag]*Link
	pendingImgs    map[*Tag]*Img

	// Anchors still open and collecting their rendered text, innermost
	// last. Text inside nested anchors accrues to every open one.
	wantText []*Link
}

// NewLinkRecognizer returns a LinkRecognizer for a single scan.
func NewLinkRecognizer() *LinkRecognizer {
	r := &LinkRecognizer{
		pendingLinks:   make(map[*Tag]*Link),
		pendingAnchors: make(map[*Tag]*Link),
		pendingImgs:    make(map[*Tag]*Img),
	}
	r.hooks = &Hooks{
		BaseURL: func(base *url.URL) { r.base = base },
		StartTag: map[string]func(*Tag){
			"link": r.startLink,
			"a":    r.startAnchor,
			"img":  r.startImg,
		},
		Text: r.text,
		EndTag: map[string]func(*Tag) []Stuff{
			"link":  r.endLink,
			"a":     r.endAnchor,
			"img":   r.endImg,
			"input": r.endInput,
		},
	}
	return r
}

// Hooks implements Recognizer.
func (r *LinkRecognizer) Hooks() *Hooks { return r.hooks }

func (r *LinkRecognizer) resolve(href string) string {
	return resolveRef(r.base, href)
}

func (r *LinkRecognizer) startLink(t *Tag) {
	rel, _ := t.Get("rel")
	href, ok := t.Get("href")
	if rel == "" || !ok {
		return
	}
	typ, _ := t.Get("type")
	title, _ := t.Get("title")
	r.pendingLinks[t] = &Link{
		Rel:   NewSet(strings.Fields(rel)...),
		HRef:  r.resolve(href),
		Type:  normalizeWhitespace(typ),
		Title: normalizeWhitespace(title),
	}
}

func (r *LinkRecognizer) endLink(t *Tag) []Stuff {
	link, ok := r.pendingLinks[t]
	if !ok {
		return nil
	}
	delete(r.pendingLinks, t)
	return []Stuff{link}
}

func (r *LinkRecognizer) startAnchor(t *Tag) {
	href, ok := t.Get("href")
	if !ok || strings.HasPrefix(href, "#") {
		// Pure same-page anchors carry no information about other pages.
		return
	}
	rel, _ := t.Get("rel")
	typ, _ := t.Get("type")
	title, _ := t.Get("title")
	link := &Link{
		Rel:     NewSet(strings.Fields(rel)...),
		HRef:    r.resolve(href),
		Type:    typ,
		Title:   title,
		Classes: t.Classes,
	}
	r.pendingAnchors[t] = link
	r.wantText = append(r.wantText, link)
}

func (r *LinkRecognizer) text(_ *Tag, text string) {
	for _, link := range r.wantText {
		link.Text += text
	}
}

func (r *LinkRecognizer) endAnchor(t *Tag) []Stuff {
	link, ok := r.pendingAnchors[t]
	if !ok {
		return nil
	}
	delete(r.pendingAnchors, t)
	for i := len(r.wantText) - 1; i >= 0; i-- {
		if r.wantText[i] == link {
			r.wantText = append(r.wantText[:i], r.wantText[i+1:]...)
			break
		}
	}
	link.Text = normalizeWhitespace(link.Text)
	return []Stuff{link}
}

// endInput handles URLs hidden in form fields: an input classed u-* whose
// value is a URL, as seen in the wild on Tantek Çelik's blog.
func (r *LinkRecognizer) endInput(t *Tag) []Stuff {
	value, ok := t.Get("value")
	if !ok {
		return nil
	}
	for _, c := range t.Classes {
		if strings.HasPrefix(c, "u-") {
			return []Stuff{&Link{Rel: NewSet(), HRef: r.resolve(value), Classes: t.Classes}}
		}
	}
	return nil
}

func (r *LinkRecognizer) startImg(t *Tag) {
	src, ok := t.Get("src")
	if !ok {
		return
	}
	typ, _ := t.Get("type")
	title, _ := t.Get("title")
	width, _ := t.Get("width")
	height, _ := t.Get("height")
	r.pendingImgs[t] = &Img{
		Src:     r.resolve(src),
		Type:    typ,
		Title:   title,
		Classes: t.Classes,
		Width:   parseDimension(width),
		Height:  parseDimension(height),
	}
}

func (r *LinkRecognizer) endImg(t *Tag) []Stuff {
	img, ok := r.pendingImgs[t]
	if !ok {
		return nil
	}
	delete(r.pendingImgs, t)
	return []Stuff{img}
}

// parseDimension parses a width or height attribute leniently; anything
// that is not a positive integer means the dimension is unknown.
func parseDimension(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
