package pagescan

import (
	"strings"

	"github.com/araddon/dateparse"
)

// PropertyRecognizer spots plain (p-) and date/time (dt-) microformats2
// properties. An element may be both a p- and a dt- property root at once,
// emitting one Property per matching class.
type PropertyRecognizer struct {
	hooks *Hooks

	// Property roots currently open, outermost first. Text accrues to
	// every open property, so nested properties each see their own
	// subtree's text.
	open []*openProperty
}

type openProperty struct {
	tag   *Tag
	names []string
	value strings.Builder
}

// NewPropertyRecognizer returns a PropertyRecognizer for a single scan.
func NewPropertyRecognizer() *PropertyRecognizer {
	r := &PropertyRecognizer{}
	r.hooks = &Hooks{
		Start: r.start,
		Text:  r.text,
		End:   r.end,
	}
	return r
}

// Hooks implements Recognizer.
func (r *PropertyRecognizer) Hooks() *Hooks { return r.hooks }

func (r *PropertyRecognizer) start(t *Tag) {
	var names []string
	for _, c := range t.Classes {
		if strings.HasPrefix(c, "p-") || strings.HasPrefix(c, "dt-") {
			names = append(names, c)
		}
	}
	if len(names) > 0 {
		r.open = append(r.open, &openProperty{tag: t, names: names})
	}
}

func (r *PropertyRecognizer) text(_ *Tag, text string) {
	for _, op := range r.open {
		op.value.WriteString(text)
	}
}

func (r *PropertyRecognizer) end(t *Tag) []Stuff {
	if len(r.open) == 0 || r.open[len(r.open)-1].tag != t {
		return nil
	}
	op := r.open[len(r.open)-1]
	r.open = r.open[:len(r.open)-1]

	value := normalizeWhitespace(op.value.String())
	original := ""
	if t.Name == "abbr" {
		// An abbr's title attribute carries the expanded value; the
		// rendered text is kept as the original.
		title, _ := t.Get("title")
		if long := normalizeWhitespace(title); long != "" && long != value {
			original = value
			value = long
		}
	}

	var stuff []Stuff
	for _, name := range op.names {
		if strings.HasPrefix(name, "p-") {
			stuff = append(stuff, &Property{Classes: []string{name}, Value: value, Original: original})
		}
	}
	var dtNames []string
	for _, name := range op.names {
		if strings.HasPrefix(name, "dt-") {
			dtNames = append(dtNames, name)
		}
	}
	if len(dtNames) > 0 {
		if original == "" {
			original = value
		}
		raw := value
		if attr, ok := t.Get("datetime"); ok && attr != "" {
			raw = attr
		}
		parsed, err := dateparse.ParseAny(raw)
		for _, name := range dtNames {
			p := &Property{Classes: []string{name}, Value: raw, Original: original}
			if err == nil {
				p.Time = parsed
			}
			stuff = append(stuff, p)
		}
	}
	return stuff
}
