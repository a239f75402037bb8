package pagescan

// TitleRecognizer captures the document title from a title element inside
// head. Titles outside head are ignored, which excludes the titles of
// embedded documents such as inline SVG.
//
// Head scoping is a single flag toggled by the head start and end tags, so
// a document with more than one head, or a head re-entered by way of
// seriously malformed nesting, is not handled; one head, not re-entered,
// is a documented limitation.
type TitleRecognizer struct {
	hooks   *Hooks
	inHead  bool
	pending map[*Tag]*Title
}

// NewTitleRecognizer returns a TitleRecognizer for a single scan.
func NewTitleRecognizer() *TitleRecognizer {
	r := &TitleRecognizer{pending: make(map[*Tag]*Title)}
	r.hooks = &Hooks{
		StartTag: map[string]func(*Tag){
			"head":  func(*Tag) { r.inHead = true },
			"title": r.startTitle,
		},
		Text: r.text,
		EndTag: map[string]func(*Tag) []Stuff{
			"head":  r.endHead,
			"title": r.endTitle,
		},
	}
	return r
}

// Hooks implements Recognizer.
func (r *TitleRecognizer) Hooks() *Hooks { return r.hooks }

func (r *TitleRecognizer) startTitle(t *Tag) {
	if r.inHead {
		r.pending[t] = &Title{Weight: 1}
	}
}

func (r *TitleRecognizer) text(t *Tag, text string) {
	if title, ok := r.pending[t]; ok {
		title.Text += text
	}
}

func (r *TitleRecognizer) endHead(*Tag) []Stuff {
	r.inHead = false
	return nil
}

func (r *TitleRecognizer) endTitle(t *Tag) []Stuff {
	title, ok := r.pending[t]
	if !ok {
		return nil
	}
	delete(r.pending, t)
	return []Stuff{title}
}
