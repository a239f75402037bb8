package pagescan_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linotak/pagescan"
)

func TestHSomethingRecognizer_Assemble(t *testing.T) {
	t.Parallel()

	assemble := func(t *testing.T, tag *pagescan.Tag, stuff []pagescan.Stuff) []pagescan.Stuff {
		t.Helper()
		out, ok := pagescan.NewHSomethingRecognizer().Hooks().Assemble(tag, stuff)
		require.True(t, ok)
		return out
	}

	t.Run("ignores elements without h- classes", func(t *testing.T) {
		t.Parallel()
		tag := pagescan.NewTag("div", []pagescan.Attr{{Key: "class", Val: "entry"}})
		_, ok := pagescan.NewHSomethingRecognizer().Hooks().Assemble(tag, nil)
		assert.False(t, ok)
	})

	t.Run("assembles an h-card from link, photo and name", func(t *testing.T) {
		t.Parallel()
		link := &pagescan.Link{Rel: pagescan.NewSet(), HRef: "https://example.com/who", Classes: []string{"u-url"}}
		photo := &pagescan.Img{Src: "https://example.com/face.jpg", Classes: []string{"u-photo"}}
		name := &pagescan.Property{Classes: []string{"p-name"}, Value: "Alice de Winter"}
		tag := pagescan.NewTag("span", []pagescan.Attr{{Key: "class", Val: "h-card vcard"}})

		out := assemble(t, tag, []pagescan.Stuff{link, photo, name})

		require.Len(t, out, 1)
		card, ok := out[0].(*pagescan.HCard)
		require.True(t, ok)
		assert.Equal(t, "Alice de Winter", card.Name)
		assert.Same(t, link, card.URL)
		assert.Same(t, photo, card.Photo)
		assert.Equal(t, []string{"vcard"}, card.Classes)
	})

	t.Run("h-card name falls back to link text", func(t *testing.T) {
		t.Parallel()
		link := &pagescan.Link{Rel: pagescan.NewSet(), HRef: "https://example.com/who", Text: "Alice  de\nWinter"}
		tag := pagescan.NewTag("span", []pagescan.Attr{{Key: "class", Val: "h-card"}})

		out := assemble(t, tag, []pagescan.Stuff{link})

		card := out[0].(*pagescan.HCard)
		assert.Equal(t, "Alice de Winter", card.Name)
	})

	t.Run("h-card keeps the abbreviated name when abbr supplied the long one", func(t *testing.T) {
		t.Parallel()
		name := &pagescan.Property{Classes: []string{"p-name"}, Value: "Alice de Winter", Original: "adw"}
		tag := pagescan.NewTag("abbr", []pagescan.Attr{{Key: "class", Val: "h-card"}})

		out := assemble(t, tag, []pagescan.Stuff{name})

		card := out[0].(*pagescan.HCard)
		assert.Equal(t, "Alice de Winter", card.Name)
		assert.Equal(t, "adw", card.ShortName)
	})

	t.Run("assembles an h-cite onto its link", func(t *testing.T) {
		t.Parallel()
		link := &pagescan.Link{Rel: pagescan.NewSet(), HRef: "https://example.com/post", Classes: []string{"u-url"}, Text: "An Article"}
		author := &pagescan.HCard{Name: "Alice", Classes: []string{"p-author"}}
		published := &pagescan.Property{
			Classes: []string{"dt-published"},
			Value:   "2018-10-24",
			Time:    time.Date(2018, time.October, 24, 0, 0, 0, 0, time.UTC),
		}
		tag := pagescan.NewTag("div", []pagescan.Attr{{Key: "class", Val: "h-cite"}})

		out := assemble(t, tag, []pagescan.Stuff{link, author, published})

		require.Len(t, out, 1)
		cite, ok := out[0].(*pagescan.Link)
		require.True(t, ok)
		assert.Same(t, link, cite)
		assert.Equal(t, []string{"h-cite"}, cite.Classes)
		assert.Equal(t, "An Article", cite.Title)
		assert.Equal(t, "", cite.Text)
		assert.Same(t, author, cite.Author)
		assert.Equal(t, published.Time, cite.Published)
	})

	t.Run("h-cite without a link degrades to a generic entity", func(t *testing.T) {
		t.Parallel()
		name := &pagescan.Property{Classes: []string{"p-name"}, Value: "An Article"}
		tag := pagescan.NewTag("div", []pagescan.Attr{{Key: "class", Val: "h-cite"}})

		out := assemble(t, tag, []pagescan.Stuff{name})

		require.Len(t, out, 1)
		generic, ok := out[0].(*pagescan.HSomething)
		require.True(t, ok)
		assert.Equal(t, "h-cite", generic.HClass)
		assert.Equal(t, []pagescan.Stuff{name}, generic.Stuff)
	})

	t.Run("h-cite assembly is idempotent", func(t *testing.T) {
		t.Parallel()
		link := &pagescan.Link{Rel: pagescan.NewSet(), HRef: "https://example.com/post", Classes: []string{"u-url"}, Text: "An Article"}
		tag := pagescan.NewTag("div", []pagescan.Attr{{Key: "class", Val: "h-cite"}})

		out := assemble(t, tag, []pagescan.Stuff{link})
		once := out[0].(*pagescan.Link)
		want := *once

		out = assemble(t, tag, out)
		twice := out[0].(*pagescan.Link)
		assert.Equal(t, want, *twice)
	})

	t.Run("assembles an h-entry", func(t *testing.T) {
		t.Parallel()
		link := &pagescan.Link{Rel: pagescan.NewSet(), HRef: "https://example.com/entry", Classes: []string{"u-url"}}
		name := &pagescan.Property{Classes: []string{"p-name"}, Value: "A Day Out"}
		summary := &pagescan.Property{Classes: []string{"p-summary"}, Value: "We went out."}
		author := &pagescan.HCard{Name: "Alice", Classes: []string{"p-author"}}
		img := &pagescan.Img{Src: "https://example.com/pic.jpg"}
		webmention := &pagescan.Link{Rel: pagescan.NewSet("webmention"), HRef: "https://example.com/wm"}
		plainLink := &pagescan.Link{Rel: pagescan.NewSet(), HRef: "https://example.com/elsewhere"}
		tag := pagescan.NewTag("article", []pagescan.Attr{{Key: "class", Val: "h-entry"}})

		out := assemble(t, tag, []pagescan.Stuff{link, name, summary, author, img, webmention, plainLink})

		require.Len(t, out, 1)
		entry, ok := out[0].(*pagescan.HEntry)
		require.True(t, ok)
		assert.Equal(t, "https://example.com/entry", entry.HRef)
		assert.Equal(t, "A Day Out", entry.Name)
		assert.Equal(t, "We went out.", entry.Summary)
		assert.Same(t, author, entry.Author)
		assert.Equal(t, []*pagescan.Img{img}, entry.Images)
		assert.Equal(t, []*pagescan.Link{webmention}, entry.Links)
	})

	t.Run("h-entry author from a bare p-author property", func(t *testing.T) {
		t.Parallel()
		author := &pagescan.Property{Classes: []string{"p-author"}, Value: "Alice"}
		tag := pagescan.NewTag("article", []pagescan.Attr{{Key: "class", Val: "h-entry"}})

		out := assemble(t, tag, []pagescan.Stuff{author})

		entry := out[0].(*pagescan.HEntry)
		require.NotNil(t, entry.Author)
		assert.Equal(t, "Alice", entry.Author.Name)
	})

	t.Run("successive h- classes share the consumed stuff", func(t *testing.T) {
		t.Parallel()
		name := &pagescan.Property{Classes: []string{"p-name"}, Value: "Alice"}
		tag := pagescan.NewTag("div", []pagescan.Attr{{Key: "class", Val: "h-card h-adr"}})

		out := assemble(t, tag, []pagescan.Stuff{name})

		require.Len(t, out, 2)
		card := out[0].(*pagescan.HCard)
		assert.Equal(t, "Alice", card.Name)
		adr := out[1].(*pagescan.HSomething)
		assert.Equal(t, "h-adr", adr.HClass)
		assert.Empty(t, adr.Stuff)
	})
}
