// Package html implements scanning over the golang.org/x/net/html
// tokenizer.
//
// The Scanner drives a stack of Tag frames from the token stream: start
// tags fan out to every recognizer's hook table, text goes to the innermost
// open frame, and when an element closes its accumulated stuff (plus each
// recognizer's end-of-element contribution, post-processed by any
// whole-element assembler) bubbles up to the parent frame, or to the scan's
// top-level output once no parent remains. Malformed markup never fails a
// scan; unmatched tags unwind the stack and truncated input is treated as
// end of document.
package html

import (
	"io"
	"net/url"
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/linotak/pagescan"
)

// Ensure Scanner implements the domain interface.
var _ pagescan.Scanner = (*Scanner)(nil)

// voidElements never have content or an end tag; their frames close as
// soon as they open.
var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Link: true, atom.Meta: true, atom.Param: true, atom.Source: true,
	atom.Track: true, atom.Wbr: true,
}

// Scanner scans one HTML document for stuff. It is good for a single
// document and must not be shared between goroutines; independent scans
// need independent Scanner instances and recognizer sets.
type Scanner struct {
	base        *url.URL
	recognizers []pagescan.Recognizer
	hooks       []*pagescan.Hooks
	stack       []*pagescan.Tag
	stuff       []pagescan.Stuff
	buf         strings.Builder
	closed      bool
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithRecognizers replaces the default recognizer set. Recognizers are
// notified in the order given; whole-element assemblers always run after
// every per-element hook for the same close event regardless of position.
func WithRecognizers(recognizers ...pagescan.Recognizer) Option {
	return func(s *Scanner) { s.recognizers = recognizers }
}

// New returns a Scanner for a single document rooted at the given base
// URL. An unparsable base is an EINVALID error; an empty base leaves hrefs
// unresolved.
func New(base string, opts ...Option) (*Scanner, error) {
	s := &Scanner{}
	for _, opt := range opts {
		opt(s)
	}
	if s.recognizers == nil {
		s.recognizers = pagescan.DefaultRecognizers()
	}
	for _, r := range s.recognizers {
		s.hooks = append(s.hooks, r.Hooks())
	}
	if base != "" {
		u, err := url.Parse(base)
		if err != nil {
			return nil, pagescan.Errorf(pagescan.EINVALID, "invalid base URL %q: %s", base, err)
		}
		s.setBase(u)
	}
	return s, nil
}

// Scan is a convenience that scans a whole document read from r.
func Scan(base string, r io.Reader) ([]pagescan.Stuff, error) {
	s, err := New(base)
	if err != nil {
		return nil, err
	}
	return s.Scan(r)
}

// Feed buffers a chunk of decoded document text. Chunks may split the
// document at any byte offset; tokenization happens at Close.
func (s *Scanner) Feed(text string) {
	s.buf.WriteString(text)
}

// Close finalizes the scan: the buffered input is tokenized, any frames
// still open (truncated or malformed documents) are unwound, and the
// top-level stuff is returned in document order. Closing before the
// document is complete simply means end of input. Close is idempotent.
func (s *Scanner) Close() []pagescan.Stuff {
	if s.closed {
		return s.stuff
	}
	s.closed = true
	_ = s.run(strings.NewReader(s.buf.String()))
	s.buf.Reset()
	s.unwind()
	return s.stuff
}

// Scan processes an entire document from r and finalizes the scan. Unlike
// Feed/Close it reports reader failures; markup problems are still never
// an error.
func (s *Scanner) Scan(r io.Reader) ([]pagescan.Stuff, error) {
	if err := s.run(r); err != nil {
		return nil, err
	}
	s.closed = true
	s.unwind()
	return s.stuff, nil
}

func (s *Scanner) run(r io.Reader) error {
	tz := xhtml.NewTokenizer(r)
	for {
		switch tz.Next() {
		case xhtml.ErrorToken:
			if err := tz.Err(); err != io.EOF {
				return pagescan.Errorf(pagescan.EINTERNAL, "tokenize: %s", err)
			}
			return nil
		case xhtml.StartTagToken:
			tok := tz.Token()
			s.startTag(&tok, false)
		case xhtml.SelfClosingTagToken:
			tok := tz.Token()
			s.startTag(&tok, true)
		case xhtml.EndTagToken:
			tok := tz.Token()
			s.endTag(tok.Data)
		case xhtml.TextToken:
			tok := tz.Token()
			if len(s.stack) > 0 {
				s.notifyText(s.stack[len(s.stack)-1], tok.Data)
			}
		}
	}
}

func (s *Scanner) setBase(u *url.URL) {
	s.base = u
	for _, h := range s.hooks {
		if h.BaseURL != nil {
			h.BaseURL(u)
		}
	}
}

func (s *Scanner) startTag(tok *xhtml.Token, selfClosing bool) {
	attrs := make([]pagescan.Attr, len(tok.Attr))
	for i, a := range tok.Attr {
		attrs[i] = pagescan.Attr{Key: a.Key, Val: a.Val}
	}
	tag := pagescan.NewTag(tok.Data, attrs)

	// The driver owns the base URL; a base element changes it for
	// everything observed from here on, never retroactively.
	if tok.DataAtom == atom.Base {
		if href, ok := tag.Get("href"); ok && href != "" {
			if u, err := url.Parse(href); err == nil {
				if s.base != nil {
					u = s.base.ResolveReference(u)
				}
				s.setBase(u)
			}
		}
	}

	for _, h := range s.hooks {
		if h.Start != nil {
			h.Start(tag)
		}
	}
	for _, h := range s.hooks {
		if f := h.StartTag[tag.Name]; f != nil {
			f(tag)
		}
	}
	for _, a := range attrs {
		for _, h := range s.hooks {
			if f := h.Attr[a.Key]; f != nil {
				f(tag, a.Key, a.Val)
			}
		}
	}
	for _, c := range tag.Classes {
		for _, h := range s.hooks {
			if f := h.Class[c]; f != nil {
				f(tag)
			}
		}
	}

	// A non-empty alt attribute reads as the element's text, as if images
	// were switched off.
	if alt, ok := tag.Get("alt"); ok && alt != "" {
		s.notifyText(tag, alt)
	}

	s.stack = append(s.stack, tag)
	if selfClosing || voidElements[tok.DataAtom] {
		s.popTag()
	}
}

// endTag pops frames until the named one has been popped, tolerating
// omitted end tags for the intermediates. An end tag whose element was
// never opened still counts as a close: its hooks run on an empty frame.
func (s *Scanner) endTag(name string) {
	for len(s.stack) > 0 {
		if s.popTag().Name == name {
			return
		}
	}
	s.stack = append(s.stack, pagescan.NewTag(name, nil))
	s.popTag()
}

func (s *Scanner) popTag() *pagescan.Tag {
	tag := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]

	// End hooks may consume from the frame's accumulated stuff, so the
	// accumulator is read only after they have all run.
	var emitted []pagescan.Stuff
	for _, h := range s.hooks {
		if h.End != nil {
			emitted = append(emitted, h.End(tag)...)
		}
	}
	for _, h := range s.hooks {
		if f := h.EndTag[tag.Name]; f != nil {
			emitted = append(emitted, f(tag)...)
		}
	}
	stuff := append(append([]pagescan.Stuff(nil), tag.Stuff...), emitted...)

	// Whole-element post-processing: assemblers substitute, not merge.
	for _, h := range s.hooks {
		if h.Assemble != nil {
			if replacement, ok := h.Assemble(tag, stuff); ok {
				stuff = replacement
			}
		}
	}

	if len(s.stack) > 0 {
		parent := s.stack[len(s.stack)-1]
		parent.Stuff = append(parent.Stuff, stuff...)
	} else {
		s.stuff = append(s.stuff, stuff...)
	}
	return tag
}

func (s *Scanner) notifyText(tag *pagescan.Tag, text string) {
	for _, h := range s.hooks {
		if h.Text != nil {
			h.Text(tag, text)
		}
	}
}

func (s *Scanner) unwind() {
	for len(s.stack) > 0 {
		s.popTag()
	}
}
