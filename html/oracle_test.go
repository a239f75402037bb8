package html_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linotak/pagescan"
	"github.com/linotak/pagescan/html"
)

// TestScan_AgreesWithDOMExtraction cross-checks the streaming scan against
// a DOM query over the parsed document: every anchor href the DOM sees
// (fragment-only anchors excepted) must come out of the scan, resolved the
// same way, in the same order.
func TestScan_AgreesWithDOMExtraction(t *testing.T) {
	t.Parallel()

	const doc = `<html><head><title>T</title></head><body>
<p>Some <a href="/a">first</a> prose with a
<a href="https://other.example/b" class="external">second</a> link,
a <a href="#frag">fragment anchor</a>, and
<a href="../c?q=1">a third</a>.</p>
</body></html>`
	const base = "https://example.com/dir/page"

	stuff, err := html.Scan(base, strings.NewReader(doc))
	require.NoError(t, err)
	var got []string
	for _, x := range stuff {
		if link, ok := x.(*pagescan.Link); ok {
			got = append(got, link.HRef)
		}
	}

	baseURL, err := url.Parse(base)
	require.NoError(t, err)
	gq, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	require.NoError(t, err)
	var want []string
	gq.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if strings.HasPrefix(href, "#") {
			return
		}
		ref, err := url.Parse(href)
		require.NoError(t, err)
		want = append(want, baseURL.ResolveReference(ref).String())
	})

	require.NotEmpty(t, want)
	assert.Equal(t, want, got)
}
