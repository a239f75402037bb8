package mock

import "github.com/linotak/pagescan"

var _ pagescan.Scanner = (*Scanner)(nil)

// Scanner is a mock implementation of pagescan.Scanner.
type Scanner struct {
	FeedFn  func(text string)
	CloseFn func() []pagescan.Stuff
}

func (s *Scanner) Feed(text string) {
	s.FeedFn(text)
}

func (s *Scanner) Close() []pagescan.Stuff {
	return s.CloseFn()
}
