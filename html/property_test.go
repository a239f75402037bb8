package html_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linotak/pagescan"
)

func properties(stuff []pagescan.Stuff) []*pagescan.Property {
	var out []*pagescan.Property
	for _, x := range stuff {
		if p, ok := x.(*pagescan.Property); ok {
			out = append(out, p)
		}
	}
	return out
}

func TestScan_Properties(t *testing.T) {
	t.Parallel()

	t.Run("captures a plain property", func(t *testing.T) {
		t.Parallel()
		stuff := scan(t, `<span class="p-name">Property Value</span>`)
		require.Len(t, stuff, 1)
		assert.Equal(t, &pagescan.Property{Classes: []string{"p-name"}, Value: "Property Value"}, stuff[0])
	})

	t.Run("normalizes whitespace in the value", func(t *testing.T) {
		t.Parallel()
		stuff := scan(t, "<span class=\"p-location\">  Portland,\n\t Oregon </span>")
		require.Len(t, stuff, 1)
		assert.Equal(t, "Portland, Oregon", stuff[0].(*pagescan.Property).Value)
	})

	t.Run("nested properties each see their own subtree", func(t *testing.T) {
		t.Parallel()
		stuff := scan(t, `<div class="p-summary">Went to <span class="p-location">Portland</span> today</div>`)
		got := properties(stuff)
		require.Len(t, got, 2)
		assert.Equal(t, "Portland", got[0].Value)
		assert.Equal(t, "Went to Portland today", got[1].Value)
	})

	t.Run("a child image's alt contributes to the value", func(t *testing.T) {
		t.Parallel()
		stuff := scan(t, `<span class="p-name">Before <img src="/i.png" alt="middle"> after</span>`)
		got := properties(stuff)
		require.Len(t, got, 1)
		assert.Equal(t, "Before middle after", got[0].Value)
	})

	t.Run("abbr title overrides the value and keeps the original", func(t *testing.T) {
		t.Parallel()
		stuff := scan(t, `<abbr class="p-name" title="Alice de Winter">adw</abbr>`)
		require.Len(t, stuff, 1)
		assert.Equal(t, &pagescan.Property{
			Classes:  []string{"p-name"},
			Value:    "Alice de Winter",
			Original: "adw",
		}, stuff[0])
	})

	t.Run("abbr title equal to the text is not an override", func(t *testing.T) {
		t.Parallel()
		stuff := scan(t, `<abbr class="p-name" title="Same">Same</abbr>`)
		require.Len(t, stuff, 1)
		p := stuff[0].(*pagescan.Property)
		assert.Equal(t, "Same", p.Value)
		assert.Empty(t, p.Original)
	})

	t.Run("one element may be several properties at once", func(t *testing.T) {
		t.Parallel()
		stuff := scan(t, `<span class="p-name dt-start">2019-06-22</span>`)
		got := properties(stuff)
		require.Len(t, got, 2)
		assert.Equal(t, []string{"p-name"}, got[0].Classes)
		assert.Equal(t, []string{"dt-start"}, got[1].Classes)
		assert.Equal(t, "2019-06-22", got[1].Value)
		assert.False(t, got[1].Time.IsZero())
	})
}

func TestScan_DateProperties(t *testing.T) {
	t.Parallel()

	t.Run("parses the element text", func(t *testing.T) {
		t.Parallel()
		stuff := scan(t, `<span class="dt-published">2018-10-24</span>`)
		require.Len(t, stuff, 1)
		p := stuff[0].(*pagescan.Property)
		assert.Equal(t, "2018-10-24", p.Value)
		assert.Equal(t, "2018-10-24", p.Original)
		assert.Equal(t, time.Date(2018, time.October, 24, 0, 0, 0, 0, time.UTC), p.Time)
	})

	t.Run("a datetime attribute overrides the rendered text", func(t *testing.T) {
		t.Parallel()
		stuff := scan(t, `<time class="dt-published" datetime="2018-10-24">24 October</time>`)
		require.Len(t, stuff, 1)
		p := stuff[0].(*pagescan.Property)
		assert.Equal(t, "2018-10-24", p.Value)
		assert.Equal(t, "24 October", p.Original)
		assert.Equal(t, time.Date(2018, time.October, 24, 0, 0, 0, 0, time.UTC), p.Time)
	})

	t.Run("an unparsable value keeps the raw string", func(t *testing.T) {
		t.Parallel()
		stuff := scan(t, `<span class="dt-published">whenever suits</span>`)
		require.Len(t, stuff, 1)
		p := stuff[0].(*pagescan.Property)
		assert.Equal(t, "whenever suits", p.Value)
		assert.True(t, p.Time.IsZero())
	})
}
