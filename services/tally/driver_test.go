package tally

import (
	"context"
	"errors"
	"precinct-results/lib/tokens"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func runDriver(t testing.TB, pages ...tokens.SlicePage) (*memSink, Summary, error) {
	sink := &memSink{}
	driver := Driver{Layout: PerryPrimary2020, Sink: sink}
	summary, err := driver.Run(context.Background(), tokens.SliceDocument(pages))
	return sink, summary, err
}

func TestDriverSinglePage(t *testing.T) {
	sink, summary, err := runDriver(t, makePage(1, blainBody...))
	require.NoError(t, err)
	require.Equal(t, Summary{Pages: 1, Records: len(blainRecords)}, summary)
	require.Equal(t, []string{
		"county", "precinct", "office", "district", "party", "candidate",
		"election_day", "absentee", "provisional", "military", "votes",
	}, sink.header)
	if diff := cmp.Diff(blainRecords, sink.records); diff != "" {
		t.Fatal(diff)
	}
}

func TestDriverSplitMatchesUnsplit(t *testing.T) {
	unsplit, _, err := runDriver(t, makePage(1, blainBody...))
	require.NoError(t, err)

	for k := 0; k <= len(blainBody); k++ {
		split, _, err := runDriver(t,
			makePage(1, blainBody[:k]...),
			makePage(2, blainBody[k:]...),
		)
		require.NoError(t, err, "split at %d", k)
		if diff := cmp.Diff(unsplit.records, split.records); diff != "" {
			t.Fatalf("split at %d:\n%s", k, diff)
		}
	}
}

func TestDriverThreeWaySplit(t *testing.T) {
	unsplit, _, err := runDriver(t, makePage(1, blainBody...))
	require.NoError(t, err)

	for i := 0; i <= len(blainBody); i++ {
		for j := i; j <= len(blainBody); j++ {
			split, summary, err := runDriver(t,
				makePage(1, blainBody[:i]...),
				makePage(2, blainBody[i:j]...),
				makePage(3, blainBody[j:]...),
			)
			require.NoError(t, err, "split at %d, %d", i, j)
			require.Equal(t, 3, summary.Pages)
			if diff := cmp.Diff(unsplit.records, split.records); diff != "" {
				t.Fatalf("split at %d, %d:\n%s", i, j, diff)
			}
		}
	}
}

func TestDriverHeaderMismatch(t *testing.T) {
	page := makePage(1, blainBody...)
	page.Strings[1] = "Perry County PA, PA_Perry_2020G, Nov 03, 2020"

	sink, summary, err := runDriver(t, page)
	require.ErrorIs(t, err, ErrHeaderMismatch)
	require.Empty(t, sink.records)
	require.Equal(t, 0, summary.Records)
}

func TestDriverStopsAtFailingPage(t *testing.T) {
	bad := makePage(2, blainBody...)
	bad.Strings[0] = "Something Else"

	sink, summary, err := runDriver(t, makePage(1, blainBody...), bad, makePage(3))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, 2, perr.Page)
	require.Equal(t, 1, summary.Pages)
	require.Len(t, sink.records, len(blainRecords))
}

func TestDriverTruncatedTable(t *testing.T) {
	_, _, err := runDriver(t, makePage(1, blainBody[:3]...))
	require.ErrorIs(t, err, ErrIncompleteTable)
}

func TestDriverCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	driver := Driver{Layout: PerryPrimary2020, Sink: &memSink{}}
	_, err := driver.Run(ctx, tokens.SliceDocument{makePage(1, blainBody...)})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDriverInvalidLayout(t *testing.T) {
	layout := PerryPrimary2020
	layout.PrecinctPrefix = ""
	driver := Driver{Layout: layout, Sink: &memSink{}}
	_, err := driver.Run(context.Background(), tokens.SliceDocument{})
	require.Error(t, err)
}

type failingSink struct {
	memSink
}

var errSinkClosed = errors.New("sink closed")

func (failingSink) WriteRow(Record) error {
	return errSinkClosed
}

func TestDriverSinkError(t *testing.T) {
	driver := Driver{Layout: PerryPrimary2020, Sink: &failingSink{}}
	_, err := driver.Run(context.Background(), tokens.SliceDocument{makePage(1, blainBody...)})
	require.ErrorIs(t, err, errSinkClosed)
}
