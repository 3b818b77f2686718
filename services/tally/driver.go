package tally

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"precinct-results/lib/tokens"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Driver runs every page of a document through a PageParser, threading the
// continuation from each page into the next, and streams records to Sink.
type Driver struct {
	Layout Layout
	Sink   Sink
}

// Summary counts the pages read and records emitted by one run.
type Summary struct {
	Pages   int
	Records int
}

// Run parses every page in order. It stops at the first parse, sink or
// context error and returns the summary of what was written so far.
func (d Driver) Run(ctx context.Context, doc tokens.Document) (Summary, error) {
	ctx, span := tracer.Start(ctx, "Driver:Run")
	defer span.End()

	summary, err := d.run(ctx, doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse document")
	}
	span.SetAttributes(
		attribute.Int("pages", summary.Pages),
		attribute.Int("records", summary.Records),
	)
	return summary, err
}

func (d Driver) run(ctx context.Context, doc tokens.Document) (Summary, error) {
	var summary Summary

	err := d.Layout.Validate()
	if err != nil {
		return summary, err
	}
	pages, err := doc.Pages()
	if err != nil {
		return summary, fmt.Errorf("read pages: %w", err)
	}

	err = d.Sink.WriteHeader(d.Layout.Columns())
	if err != nil {
		return summary, fmt.Errorf("write header: %w", err)
	}

	var cont Continuation
	lastPage := 0
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		n, next, err := d.runPage(ctx, page, cont)
		summary.Records += n
		if err != nil {
			return summary, err
		}
		summary.Pages++
		cont = next
		lastPage = page.Number()
	}

	if cont.TableHeader != "" {
		return summary, &ParseError{
			Kind:   ErrIncompleteTable,
			Page:   lastPage,
			Token:  cont.TableHeader,
			Detail: "document ended before the total row",
		}
	}

	return summary, nil
}

func (d Driver) runPage(ctx context.Context, page tokens.Page, cont Continuation) (int, Continuation, error) {
	ctx, span := tracer.Start(ctx, "Driver:runPage", trace.WithAttributes(
		attribute.Int("page", page.Number()),
		attribute.String("continued_precinct", cont.Precinct),
		attribute.String("continued_table", cont.TableHeader),
	))
	defer span.End()

	slog.InfoContext(ctx, "processing page", "page", page.Number())

	parser, err := NewPageParser(d.Layout, page, cont)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid page header")
		return 0, cont, err
	}

	records := 0
	for {
		record, err := parser.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to parse page")
			return records, cont, err
		}

		err = d.Sink.WriteRow(record)
		if err != nil {
			return records, cont, fmt.Errorf("write row on page %d: %w", page.Number(), err)
		}
		records++
	}

	next := parser.Continuation()
	if next.TableHeader != "" || next.Precinct != "" {
		slog.DebugContext(
			ctx, "page continues",
			"page", page.Number(),
			"precinct", next.Precinct,
			"table", next.TableHeader,
		)
	}

	attrs := metric.WithAttributes(attribute.String("county", d.Layout.County))
	pagesParsed.Add(ctx, 1, attrs)
	recordsEmitted.Add(ctx, int64(records), attrs)

	return records, next, nil
}
