package htmlutil

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestGetAnchors(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
		<h4 class="panel-title"><a href="#c1">
			Attorney   General
		</a></h4>
		<h4 class="panel-title"><a href="#c2">State <b>Treasurer</b></a></h4>
	`))
	require.NoError(t, err)

	anchors := GetAnchors(context.Background(), doc.Find("h4.panel-title a"))
	require.Equal(t, []Anchor{
		{Name: "Attorney General", Href: "#c1"},
		{Name: "State Treasurer", Href: "#c2"},
	}, anchors)
}

func TestCleanText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
		<div id="a">  Perry
			County <script>var x = 1;</script><span>Results&#x7;</span></div>
	`))
	require.NoError(t, err)
	require.Equal(t, "Perry County Results", CleanText(doc.Find("#a")))
	require.Equal(t, "", CleanText(doc.Find("#missing")))
}

func TestAttrs(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
		<button class="btnCandPrecincts" value=" 101 "></button>
		<button class="btnCandPrecincts"></button>
		<button class="btnCandPrecincts" value="102"></button>
	`))
	require.NoError(t, err)
	require.Equal(t, []string{"101", "102"}, Attrs(doc.Find("button.btnCandPrecincts"), "value"))
}
