package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/linotak/pagescan"
	pshtml "github.com/linotak/pagescan/html"
	psslog "github.com/linotak/pagescan/slog"
)

// report is the JSON document emitted per scanned input.
type report struct {
	ID     string           `json:"id"`
	Source string           `json:"source"`
	Base   string           `json:"base,omitempty"`
	Stuff  []map[string]any `json:"stuff"`
}

func (m *Main) scanAll(ctx context.Context, cli *CLI, stdin io.Reader, stdout, stderr io.Writer) error {
	logW := stderr
	if cli.Quiet {
		logW = io.Discard
	}
	logger := slog.New(slog.NewTextHandler(logW, nil))

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")

	if len(cli.Paths) == 0 {
		rep, err := scanOne(logger, cli.Base, "(stdin)", stdin)
		if err != nil {
			return err
		}
		return enc.Encode(rep)
	}

	reports := make([]*report, len(cli.Paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cli.Concurrency)
	for i, path := range cli.Paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			rep, err := scanOne(logger, cli.Base, path, f)
			if err != nil {
				return err
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, rep := range reports {
		if err := enc.Encode(rep); err != nil {
			return err
		}
	}
	return nil
}

// scanOne scans a single document through the Feed/Close interface so the
// logging decorator can account for input volume and duration.
func scanOne(logger *slog.Logger, base, source string, r io.Reader) (*report, error) {
	inner, err := pshtml.New(base)
	if err != nil {
		return nil, err
	}
	scanner := psslog.NewLoggingScanner(inner, logger, source)

	buf := make([]byte, 32*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			scanner.Feed(string(buf[:n]))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, pagescan.Errorf(pagescan.EINTERNAL, "read %s: %s", source, err)
		}
	}

	rep := &report{
		ID:     uuid.NewString(),
		Source: source,
		Base:   base,
	}
	for _, x := range scanner.Close() {
		rep.Stuff = append(rep.Stuff, entityJSON(x))
	}
	return rep, nil
}

func entityJSON(x pagescan.Stuff) map[string]any {
	m := map[string]any{}
	put := func(k string, v any) {
		switch val := v.(type) {
		case string:
			if val != "" {
				m[k] = val
			}
		case int:
			if val != 0 {
				m[k] = val
			}
		case []string:
			if len(val) > 0 {
				m[k] = val
			}
		case time.Time:
			if !val.IsZero() {
				m[k] = val.Format(time.RFC3339)
			}
		default:
			if v != nil {
				m[k] = v
			}
		}
	}
	switch v := x.(type) {
	case *pagescan.Link:
		m["kind"] = "link"
		put("rel", v.Rel.Sorted())
		put("href", v.HRef)
		put("type", v.Type)
		put("title", v.Title)
		put("text", v.Text)
		put("classes", v.Classes)
		if v.Author != nil {
			m["author"] = entityJSON(v.Author)
		}
		put("published", v.Published)
	case *pagescan.Img:
		m["kind"] = "img"
		put("src", v.Src)
		put("type", v.Type)
		put("title", v.Title)
		put("text", v.Text)
		put("classes", v.Classes)
		put("width", v.Width)
		put("height", v.Height)
	case *pagescan.Title:
		m["kind"] = "title"
		put("text", v.Text)
		m["weight"] = v.Weight
	case *pagescan.Property:
		m["kind"] = "property"
		put("classes", v.Classes)
		put("value", v.Value)
		put("time", v.Time)
		put("original", v.Original)
	case *pagescan.HCard:
		m["kind"] = "h-card"
		put("name", v.Name)
		if v.URL != nil {
			m["url"] = entityJSON(v.URL)
		}
		if v.Photo != nil {
			m["photo"] = entityJSON(v.Photo)
		}
		put("classes", v.Classes)
		put("shortName", v.ShortName)
	case *pagescan.HEntry:
		m["kind"] = "h-entry"
		put("href", v.HRef)
		put("name", v.Name)
		put("summary", v.Summary)
		if v.Author != nil {
			m["author"] = entityJSON(v.Author)
		}
		put("classes", v.Classes)
		put("role", v.Role)
		for _, img := range v.Images {
			m["images"] = append(asSlice(m["images"]), entityJSON(img))
		}
		for _, link := range v.Links {
			m["links"] = append(asSlice(m["links"]), entityJSON(link))
		}
	case *pagescan.HSomething:
		m["kind"] = v.HClass
		put("classes", v.Classes)
		for _, nested := range v.Stuff {
			m["stuff"] = append(asSlice(m["stuff"]), entityJSON(nested))
		}
	}
	return m
}

func asSlice(v any) []map[string]any {
	s, _ := v.([]map[string]any)
	return s
}
