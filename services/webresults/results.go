package webresults

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"precinct-results/services/tally"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

// Columns is the output header of a web scrape, web results carry a single
// vote total.
var Columns = append(slices.Clone(tally.BaseColumns), "votes")

type Result struct {
	PrecinctName string `json:"precinctName"`
	Party        string `json:"party"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	TotalVotes   int    `json:"totalVotes"`
}

func (c *Client) FetchResults(ctx context.Context, contestID string) ([]Result, error) {
	ctx, span := tracer.Start(ctx, "FetchResults")
	defer span.End()
	span.SetAttributes(attribute.String("contest_id", contestID))

	party := c.opts.Party
	if party == "" {
		party = " "
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"partyname":  party,
			"electionid": c.opts.ElectionID,
			"el_off_id":  contestID,
			"type":       "precinct",
		}).
		Get("/getData.ashx")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch results")
		return nil, err
	}
	if res.IsError() {
		err = fmt.Errorf("fetch results of contest %s: %s", contestID, res.Status())
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var results []Result
	err = json.Unmarshal(res.Body(), &results)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode results")
		return nil, fmt.Errorf("decode results of contest %s: %w", contestID, err)
	}
	span.SetAttributes(attribute.Int("results", len(results)))
	return results, nil
}

// Scrape fetches every contest in page order and writes one record per
// candidate and precinct to sink. The summary counts contests as pages.
func (c *Client) Scrape(ctx context.Context, sink tally.Sink) (tally.Summary, error) {
	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()

	var summary tally.Summary

	contests, err := c.FetchContests(ctx)
	if err != nil {
		return summary, err
	}
	err = sink.WriteHeader(Columns)
	if err != nil {
		return summary, fmt.Errorf("write header: %w", err)
	}

	attrs := metric.WithAttributes(attribute.String("county", c.opts.County))
	for _, contest := range contests {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		slog.InfoContext(ctx, "fetching contest", "office", contest.Office, "id", contest.ID)
		results, err := c.FetchResults(ctx, contest.ID)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to fetch contest")
			return summary, err
		}
		contestsFetched.Add(ctx, 1, attrs)

		for _, r := range results {
			err = sink.WriteRow(tally.Record{
				County:    c.opts.County,
				Precinct:  r.PrecinctName,
				Office:    contest.Office,
				Party:     r.Party,
				Candidate: r.FirstName + " " + r.LastName,
				Counts:    map[string]int{"votes": r.TotalVotes},
			})
			if err != nil {
				return summary, fmt.Errorf("write row of %s: %w", contest.Office, err)
			}
			summary.Records++
		}
		summary.Pages++
	}

	span.SetAttributes(
		attribute.Int("contests", summary.Pages),
		attribute.Int("records", summary.Records),
	)
	return summary, nil
}
