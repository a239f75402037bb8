package pagescan

import "strings"

// BlockquoteRecognizer captures blockquotes that cite their source with an
// h-cite link. On close the quote's own rendered text replaces the link's
// text, the link gains the linotak:blockquote rel marker, and the enriched
// link stands in for everything else collected inside the blockquote.
type BlockquoteRecognizer struct {
	hooks *Hooks
	open  []*openQuote
}

type openQuote struct {
	tag  *Tag
	text strings.Builder
}

// NewBlockquoteRecognizer returns a BlockquoteRecognizer for a single scan.
func NewBlockquoteRecognizer() *BlockquoteRecognizer {
	r := &BlockquoteRecognizer{}
	r.hooks = &Hooks{
		StartTag: map[string]func(*Tag){
			"blockquote": r.startBlockquote,
		},
		Text: r.text,
		EndTag: map[string]func(*Tag) []Stuff{
			"blockquote": r.endBlockquote,
		},
	}
	return r
}

// Hooks implements Recognizer.
func (r *BlockquoteRecognizer) Hooks() *Hooks { return r.hooks }

func (r *BlockquoteRecognizer) startBlockquote(t *Tag) {
	r.open = append(r.open, &openQuote{tag: t})
}

// text accumulates only text directly inside the innermost open blockquote;
// text belonging to child elements (the cite itself) is not part of the quote.
func (r *BlockquoteRecognizer) text(t *Tag, text string) {
	if len(r.open) > 0 && r.open[len(r.open)-1].tag == t {
		r.open[len(r.open)-1].text.WriteString(text)
	}
}

func (r *BlockquoteRecognizer) endBlockquote(t *Tag) []Stuff {
	if len(r.open) == 0 || r.open[len(r.open)-1].tag != t {
		return nil
	}
	q := r.open[len(r.open)-1]
	r.open = r.open[:len(r.open)-1]

	link, ok := PopStrict[*Link](&t.Stuff, "h-cite")
	if !ok {
		return nil
	}
	t.Stuff = nil
	if link.Rel == nil {
		link.Rel = NewSet()
	}
	link.Rel.Add("linotak:blockquote")
	link.Text = strings.TrimSpace(q.text.String())
	return []Stuff{link}
}
