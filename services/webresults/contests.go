package webresults

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"precinct-results/lib/htmlutil"
	"precinct-results/lib/textutil"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antzucaro/matchr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type Contest struct {
	ID     string
	Office string
	// Title is the results page panel the contest was matched to, it may
	// be empty when the page has no usable panel titles.
	Title string
}

// panels without a results button, these never line up with button order
const skippedPanel = "Delegate"

func (c *Client) FetchContests(ctx context.Context) ([]Contest, error) {
	ctx, span := tracer.Start(ctx, "FetchContests")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		Get("/")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch results page")
		return nil, err
	}
	if res.IsError() {
		err = fmt.Errorf("fetch results page: %s", res.Status())
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse results page")
		return nil, err
	}

	ids := htmlutil.Attrs(doc.Find("button.btnCandPrecincts"), "value")
	var titles []string
	for _, a := range htmlutil.GetAnchors(ctx, doc.Find("h4.panel-title a")) {
		titles = append(titles, a.Name)
	}
	span.SetAttributes(
		attribute.Int("buttons", len(ids)),
		attribute.Int("panels", len(titles)),
	)

	contests, err := assignContests(ctx, c.opts.Offices, ids, titles)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to assign contests")
		return nil, err
	}
	return contests, nil
}

func assignContests(ctx context.Context, offices, ids, titles []string) ([]Contest, error) {
	if len(offices) == 0 {
		var contests []Contest
		for _, title := range titles {
			if strings.Contains(title, skippedPanel) {
				continue
			}
			if len(contests) >= len(ids) {
				slog.WarnContext(ctx, "panel has no results button", "title", title)
				break
			}
			contests = append(contests, Contest{ID: ids[len(contests)], Office: title, Title: title})
		}
		return contests, nil
	}

	if len(ids) < len(offices) {
		return nil, fmt.Errorf(
			"results page has %d contests, %d offices are configured",
			len(ids), len(offices),
		)
	}

	contests := make([]Contest, len(offices))
	for i, office := range offices {
		contests[i] = Contest{ID: ids[i], Office: office}
	}
	if len(titles) == 0 {
		return contests, nil
	}

	for _, m := range MatchContests(offices, titles) {
		if m.Index < 0 {
			continue
		}
		contests[m.Office].Title = titles[m.Index]
		if m.Index != m.Office {
			slog.WarnContext(
				ctx, "configured office does not line up with the results page",
				"office", offices[m.Office],
				"position", m.Office,
				"matched_title", titles[m.Index],
				"matched_position", m.Index,
			)
		}
	}
	return contests, nil
}

type Match struct {
	// Office is the index of the configured office
	Office int
	// Index is the index of the matched title, or -1
	Index      int
	Similarity float64
}

// MatchContests pairs every office with at most one panel title. Exact
// matches (ignoring case and whitespace) are taken first, the remaining
// offices greedily take the most similar unmatched title.
func MatchContests(offices, titles []string) []Match {
	matches := make([]Match, len(offices))
	matchedTitle := make(map[int]struct{})

	for i, office := range offices {
		matches[i] = Match{Office: i, Index: -1}
		for j, title := range titles {
			if _, taken := matchedTitle[j]; taken {
				continue
			}
			if textutil.NormalizeName(office) == textutil.NormalizeName(title) {
				matches[i].Index = j
				matches[i].Similarity = 1
				matchedTitle[j] = struct{}{}
				break
			}
		}
	}

	for i, office := range offices {
		if matches[i].Index >= 0 {
			continue
		}

		var mostSimilarity float64
		mostSimilar := -1
		for j, title := range titles {
			if _, taken := matchedTitle[j]; taken {
				continue
			}
			similarity := matchr.JaroWinkler(office, title, false)
			if similarity > mostSimilarity {
				mostSimilarity = similarity
				mostSimilar = j
			}
		}

		if mostSimilar >= 0 {
			matches[i].Index = mostSimilar
			matches[i].Similarity = mostSimilarity
			matchedTitle[mostSimilar] = struct{}{}
		}
	}

	return matches
}
