// Command pagescan scans HTML documents for links, images, titles and
// microformats2 entities, and prints one JSON report per document. It
// reads local files (or stdin) only; fetching pages is someone else's job.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI is the kong command grammar.
type CLI struct {
	Base        string   `help:"Base URL used to resolve relative references." placeholder:"URL"`
	Concurrency int      `help:"Number of documents scanned concurrently." default:"4"`
	Quiet       bool     `help:"Suppress log output."`
	Paths       []string `arg:"" optional:"" type:"existingfile" help:"HTML files to scan; reads stdin when omitted."`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagescan"),
		kong.Description("Extract links, titles and microformats2 entities from HTML documents."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}
	if _, err := parser.Parse(args); err != nil {
		return err
	}
	return m.scanAll(ctx, cli, stdin, stdout, stderr)
}
