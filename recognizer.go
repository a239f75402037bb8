package pagescan

import "net/url"

// Recognizer is an observer of scanner events. A recognizer declares the
// events it cares about by filling in a Hooks table once at construction;
// nil entries are simply never invoked.
//
// Recognizers may hold private mutable state (stacks of pending entities
// keyed by open frames) but must not reach into one another's state: all
// cross-recognizer communication happens through the Tag frames' stuff
// accumulators. A recognizer instance is scoped to a single scan.
type Recognizer interface {
	Hooks() *Hooks
}

// Hooks is a recognizer's event table. The scanner dispatches through the
// maps by element, attribute or class name instead of synthesizing method
// names at runtime.
type Hooks struct {
	// BaseURL is called when the document's base URL is established, and
	// again whenever a base element changes it mid-document. Resolution of
	// hrefs already observed is never revisited.
	BaseURL func(base *url.URL)

	// Start is called for every element as its start tag is seen, before
	// any named hooks.
	Start func(t *Tag)

	// StartTag is called for elements with the given name.
	StartTag map[string]func(t *Tag)

	// Attr is called once per occurrence of the given attribute.
	Attr map[string]func(t *Tag, key, val string)

	// Class is called once per occurrence of the given class token.
	Class map[string]func(t *Tag)

	// Text is called with runs of character data; t is the innermost open
	// element. A non-empty alt attribute is delivered here as well, as if
	// it were rendered text of its element.
	Text func(t *Tag, text string)

	// End and EndTag are called as the element closes and return stuff to
	// contribute to it. All recognizers' End results precede all EndTag
	// results in the element's candidate list.
	End    func(t *Tag) []Stuff
	EndTag map[string]func(t *Tag) []Stuff

	// Assemble post-processes a closing element's complete candidate list,
	// strictly after every per-element hook has run. Returning replace=true
	// substitutes the returned list for the candidate list.
	Assemble func(t *Tag, stuff []Stuff) (replacement []Stuff, replace bool)
}

// DefaultRecognizers returns fresh instances of the standard recognizer set
// in its documented notification order. The ordering is part of the
// contract: property emissions precede link emissions in an element's
// candidate list, and the h-something assembler must observe stuff placed
// by every other recognizer.
func DefaultRecognizers() []Recognizer {
	return []Recognizer{
		NewPropertyRecognizer(),
		NewLinkRecognizer(),
		NewHSomethingRecognizer(),
		NewTitleRecognizer(),
		NewBlockquoteRecognizer(),
		NewMastodonMediaGalleryRecognizer(),
		NewOpenGraphRecognizer(),
		NewTwitterRecognizer(),
	}
}
