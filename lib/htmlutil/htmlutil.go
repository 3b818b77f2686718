package htmlutil

import (
	"context"
	"net/url"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/net/html"
)

var tracer = otel.Tracer("precinct-results.lib.htmlutil")

func writeText(node *html.Node, out *strings.Builder) {
	switch node.Type {
	case html.TextNode:
		out.WriteString(node.Data)
		return
	case html.ElementNode:
		if node.Data == "script" || node.Data == "style" {
			return
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		writeText(child, out)
	}
}

// CleanText joins the visible text of every node in sel into a single line.
// Script and style contents are skipped, whitespace runs become one space.
func CleanText(sel *goquery.Selection) string {
	var out strings.Builder
	for _, n := range sel.Nodes {
		writeText(n, &out)
		out.WriteByte(' ')
	}
	text := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.IsPrint(r) {
			return r
		}
		return -1
	}, out.String())
	return strings.Join(strings.Fields(text), " ")
}

// Attrs returns the trimmed value of attr for every node in sel that has a
// non-empty one, in document order.
func Attrs(sel *goquery.Selection, attr string) []string {
	var values []string
	sel.Each(func(_ int, s *goquery.Selection) {
		value := strings.TrimSpace(s.AttrOr(attr, ""))
		if value != "" {
			values = append(values, value)
		}
	})
	return values
}

type Anchor struct {
	Name string
	Href string
}

// GetAnchors reads the text and href of every anchor in sel. Anchors with an
// unparsable href are skipped and recorded on the span.
func GetAnchors(ctx context.Context, sel *goquery.Selection) []Anchor {
	_, span := tracer.Start(ctx, "GetAnchors")
	defer span.End()

	var anchors []Anchor
	sel.Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		link, err := url.Parse(href)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "unparsable anchor href")
			return
		}
		anchors = append(anchors, Anchor{
			Name: CleanText(s),
			Href: link.String(),
		})
	})
	span.SetAttributes(attribute.Int("anchors", len(anchors)))

	return anchors
}
