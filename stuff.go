package pagescan

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Stuff is the common interface of everything a scan can produce: links,
// images, titles, plain microformats2 properties, and the composite
// entities assembled from them. The variant set is closed; the unexported
// method prevents packages outside pagescan from adding variants.
type Stuff interface {
	fmt.Stringer

	// Fingerprint returns a structural-equality key for the value. Two
	// values of the same variant with equal fields (rel sets compared
	// without order) have equal fingerprints. Used for order-insensitive
	// comparison of stuff collections.
	Fingerprint() uint64

	// classList reports the microformats2 class markers attached to the
	// value, consulted by the pop rules during composite assembly.
	classList() []string
}

// Set is an unordered collection of strings, used for link rel values.
type Set map[string]struct{}

// NewSet returns a Set holding the given elements.
func NewSet(elems ...string) Set {
	s := make(Set, len(elems))
	for _, e := range elems {
		s[e] = struct{}{}
	}
	return s
}

// Has reports whether v is in the set.
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Add inserts v into the set.
func (s Set) Add(v string) {
	s[v] = struct{}{}
}

// Intersects reports whether the two sets share any element.
func (s Set) Intersects(other Set) bool {
	for v := range other {
		if s.Has(v) {
			return true
		}
	}
	return false
}

// Sorted returns the elements in lexical order.
func (s Set) Sorted() []string {
	elems := make([]string, 0, len(s))
	for v := range s {
		elems = append(elems, v)
	}
	sort.Strings(elems)
	return elems
}

func (s Set) String() string {
	return strings.Join(s.Sorted(), " ")
}

// Property is a simple property in the microformats2 sense, expected to be
// consumed to form part of an h-something.
type Property struct {
	// Classes are the microformats2 class markers that produced the
	// property (usually exactly one p- or dt- token).
	Classes []string

	// Value is the normalized text value. For dt- properties it is the raw
	// source string even when Time is set.
	Value string

	// Time carries the parsed value of a dt- property. Zero when the
	// property is not a date or the value did not parse.
	Time time.Time

	// Original is the pre-override value: the rendered text of an abbr
	// whose title attribute supplied Value, or the element text of a dt-
	// property whose datetime attribute supplied Value. Empty otherwise.
	Original string
}

func (p *Property) String() string {
	if len(p.Classes) == 1 {
		return fmt.Sprintf("%s=%q", p.Classes[0], p.Value)
	}
	return fmt.Sprintf("%v=%q", p.Classes, p.Value)
}

func (p *Property) classList() []string { return p.Classes }

func (p *Property) Fingerprint() uint64 {
	return fingerprint("property", strings.Join(p.Classes, " "), p.Value, timeKey(p.Time), p.Original)
}

// Link is information gleaned about a link. An h-cite citation is
// represented as a Link carrying the "h-cite" class: a citation is a link
// with provenance.
type Link struct {
	Rel     Set
	HRef    string // always absolute
	Type    string
	Title   string
	Text    string
	Classes []string

	// Author and Published are populated by h-cite assembly.
	Author    *HCard
	Published time.Time
}

func (l *Link) String() string {
	return fmt.Sprintf("%s (%s)", l.HRef, l.Rel)
}

func (l *Link) classList() []string { return l.Classes }

func (l *Link) Fingerprint() uint64 {
	return fingerprint("link", l.Rel.String(), l.HRef, l.Type, l.Title, l.Text,
		strings.Join(l.Classes, " "), subKey(l.Author), timeKey(l.Published))
}

// Img is information about an image. Width and Height are zero when the
// source document did not supply usable numbers.
type Img struct {
	Src     string // always absolute
	Type    string
	Title   string
	Text    string
	Classes []string
	Width   int
	Height  int
}

func (i *Img) String() string {
	if i.Width != 0 {
		return fmt.Sprintf("%s (%dx%d)", i.Src, i.Width, i.Height)
	}
	return i.Src
}

func (i *Img) classList() []string { return i.Classes }

func (i *Img) Fingerprint() uint64 {
	return fingerprint("img", i.Src, i.Type, i.Title, i.Text,
		strings.Join(i.Classes, " "), strconv.Itoa(i.Width), strconv.Itoa(i.Height))
}

// Title is a candidate title for the page. Higher weights take precedence;
// weight 0 marks a low-confidence fallback (e.g. a title guessed from the
// page URL). The scan returns all candidates and leaves choosing a winner
// to the caller.
type Title struct {
	Text   string
	Weight int
}

func (t *Title) String() string { return t.Text }

func (t *Title) classList() []string { return nil }

func (t *Title) Fingerprint() uint64 {
	return fingerprint("title", t.Text, strconv.Itoa(t.Weight))
}

// HCard is an h-card entity, representing a person.
type HCard struct {
	Name    string
	URL     *Link
	Photo   *Img
	Classes []string

	// ShortName is set when an abbr supplied a longer Name through its
	// title attribute; it holds the abbreviated rendered text.
	ShortName string
}

func (c *HCard) String() string { return c.Name }

func (c *HCard) classList() []string { return c.Classes }

func (c *HCard) Fingerprint() uint64 {
	return fingerprint("hcard", c.Name, subKey(c.URL), subKey(c.Photo),
		strings.Join(c.Classes, " "), c.ShortName)
}

// HEntry is an h-entry entity, representing a blog entry or similar.
type HEntry struct {
	HRef    string // empty means same as the containing page
	Name    string
	Summary string
	Author  *HCard
	Classes []string
	Role    string

	// Images is every image found inside the entry.
	Images []*Img

	// Links is every link inside the entry whose rel marks it as being
	// about the entry rather than mentioned in it (webmention endpoints).
	Links []*Link
}

func (e *HEntry) String() string { return e.Name }

func (e *HEntry) classList() []string { return e.Classes }

func (e *HEntry) Fingerprint() uint64 {
	parts := []string{"hentry", e.HRef, e.Name, e.Summary, subKey(e.Author),
		strings.Join(e.Classes, " "), e.Role}
	for _, img := range e.Images {
		parts = append(parts, subKey(img))
	}
	for _, link := range e.Links {
		parts = append(parts, subKey(link))
	}
	return fingerprint(parts...)
}

// HSomething is an h-xxx entity for which there is no dedicated assembly
// rule. It retains all nested stuff verbatim.
type HSomething struct {
	HClass  string   // the h- class that rooted the entity, e.g. "h-event"
	Classes []string // the element's remaining (non h-) classes
	Stuff   []Stuff
}

func (h *HSomething) String() string {
	for _, x := range h.Stuff {
		if p, ok := x.(*Property); ok && hasClass(p.Classes, "p-name") {
			return fmt.Sprintf("%s (%s)", p.Value, h.HClass)
		}
	}
	return h.HClass
}

func (h *HSomething) classList() []string { return h.Classes }

func (h *HSomething) Fingerprint() uint64 {
	parts := []string{"hsomething", h.HClass, strings.Join(h.Classes, " ")}
	for _, x := range h.Stuff {
		parts = append(parts, strconv.FormatUint(x.Fingerprint(), 16))
	}
	return fingerprint(parts...)
}

// EqualUnordered reports whether the two collections hold structurally
// equal stuff, ignoring order.
func EqualUnordered(a, b []Stuff) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[uint64]int, len(a))
	for _, x := range a {
		counts[x.Fingerprint()]++
	}
	for _, x := range b {
		counts[x.Fingerprint()]--
	}
	for _, n := range counts {
		if n != 0 {
			return false
		}
	}
	return true
}

func fingerprint(parts ...string) uint64 {
	d := xxhash.New()
	for _, p := range parts {
		_, _ = d.WriteString(p)
		_, _ = d.Write([]byte{0x1f})
	}
	return d.Sum64()
}

func subKey(s Stuff) string {
	// Typed nils arrive as non-nil Stuff; check the concrete pointers.
	switch v := s.(type) {
	case nil:
		return ""
	case *Link:
		if v == nil {
			return ""
		}
	case *Img:
		if v == nil {
			return ""
		}
	case *HCard:
		if v == nil {
			return ""
		}
	}
	return strconv.FormatUint(s.Fingerprint(), 16)
}

func timeKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

func hasClass(classes []string, want string) bool {
	for _, c := range classes {
		if c == want {
			return true
		}
	}
	return false
}
