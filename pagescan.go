// Package pagescan extracts hyperlinks, images, page titles and
// microformats2 entities from arbitrary, often malformed, HTML documents.
// A scan walks one document in order and returns a flat, document-ordered
// list of "stuff": Link, Img, Title and Property values plus the composite
// h-entry, h-card and h-cite entities assembled from them.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. The tokenizer-driven scanner implementation
// lives in html/ (named after its primary dependency, golang.org/x/net/html).
package pagescan

// Scanner scans a single HTML document for stuff.
//
// Feed may be called any number of times with decoded-text chunks; Close
// finalizes the scan (unwinding any elements left open by truncated input)
// and returns the top-level stuff in document order. A Scanner is good for
// one document only and is not safe for concurrent use; independent scans
// need independent Scanner instances.
type Scanner interface {
	Feed(text string)
	Close() []Stuff
}
