// Package slog provides logging decorators for pagescan interfaces.
package slog

import (
	"log/slog"
	"time"

	"github.com/linotak/pagescan"
)

// Ensure LoggingScanner implements pagescan.Scanner.
var _ pagescan.Scanner = (*LoggingScanner)(nil)

// LoggingScanner wraps a Scanner with logging of input volume, result
// count and scan duration.
type LoggingScanner struct {
	next   pagescan.Scanner
	logger *slog.Logger
	url    string
	bytes  int
	begin  time.Time
}

// NewLoggingScanner creates a new LoggingScanner. The url is only used to
// label log lines.
func NewLoggingScanner(next pagescan.Scanner, logger *slog.Logger, url string) *LoggingScanner {
	return &LoggingScanner{next: next, logger: logger, url: url, begin: time.Now()}
}

// Feed counts the chunk and delegates to the wrapped scanner.
func (s *LoggingScanner) Feed(text string) {
	s.bytes += len(text)
	s.next.Feed(text)
}

// Close delegates to the wrapped scanner and logs the scan outcome.
func (s *LoggingScanner) Close() []pagescan.Stuff {
	stuff := s.next.Close()
	s.logger.Info("scan",
		"url", s.url,
		"bytes", s.bytes,
		"stuff", len(stuff),
		"duration", time.Since(s.begin),
	)
	return stuff
}
