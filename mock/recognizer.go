package mock

import "github.com/linotak/pagescan"

var _ pagescan.Recognizer = (*Recognizer)(nil)

// Recognizer is a mock implementation of pagescan.Recognizer. Tests fill
// in only the hook-table entries they want to observe.
type Recognizer struct {
	HooksFn func() *pagescan.Hooks
}

func (r *Recognizer) Hooks() *pagescan.Hooks {
	return r.HooksFn()
}
