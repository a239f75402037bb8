package pagescan

import "strings"

// Attr is a single element attribute. Attribute order is preserved and
// duplicate keys may occur; lookups take the last occurrence.
type Attr struct {
	Key string
	Val string
}

// Tag is the scanner's per-element scratch record: the element name, its
// raw attributes, the parsed class list, and the stuff discovered inside
// the element while it is open. A Tag is owned by the scanner's stack and
// is discarded once its stuff has bubbled to the parent; recognizers must
// not retain one past that point.
type Tag struct {
	Name    string
	Attrs   []Attr
	Classes []string
	Stuff   []Stuff
}

// NewTag returns a frame for an element with the given (lowercase) name and
// attributes, with the class attribute already split into tokens.
func NewTag(name string, attrs []Attr) *Tag {
	t := &Tag{Name: name, Attrs: attrs}
	if class, ok := t.Get("class"); ok {
		t.Classes = strings.Fields(class)
	}
	return t
}

// Get returns the value of the named attribute. When the attribute occurs
// more than once the last occurrence wins.
func (t *Tag) Get(name string) (string, bool) {
	val, ok := "", false
	for _, a := range t.Attrs {
		if a.Key == name {
			val, ok = a.Val, true
		}
	}
	return val, ok
}

func (t *Tag) String() string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(t.Name)
	for _, c := range t.Classes {
		b.WriteByte('.')
		b.WriteString(c)
	}
	b.WriteByte('>')
	return b.String()
}

// PopBest removes and returns the best candidate of type T from the list:
// the first candidate carrying the wanted microformats2 class, or, when no
// candidate carries it, the first candidate of the type at all.
func PopBest[T Stuff](stuff *[]Stuff, htmlClass string) (T, bool) {
	best, bestClassy := -1, false
	for i, x := range *stuff {
		v, ok := x.(T)
		if !ok {
			continue
		}
		classy := hasClass(v.classList(), htmlClass)
		if best < 0 || classy && !bestClassy {
			best, bestClassy = i, classy
		}
	}
	return popAt[T](stuff, best)
}

// PopStrict removes and returns the most recently added candidate of type T
// that carries the wanted microformats2 class, or reports false when no
// candidate qualifies.
func PopStrict[T Stuff](stuff *[]Stuff, htmlClass string) (T, bool) {
	best := -1
	for i, x := range *stuff {
		if v, ok := x.(T); ok && hasClass(v.classList(), htmlClass) {
			best = i
		}
	}
	return popAt[T](stuff, best)
}

func popAt[T Stuff](stuff *[]Stuff, i int) (T, bool) {
	var zero T
	if i < 0 {
		return zero, false
	}
	v := (*stuff)[i].(T)
	*stuff = append((*stuff)[:i], (*stuff)[i+1:]...)
	return v, true
}
