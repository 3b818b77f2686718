package sinks

import (
	"bytes"
	"errors"
	"precinct-results/services/tally"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var columns = []string{"county", "precinct", "office", "district", "party", "candidate", "votes"}

var records = []tally.Record{
	{
		County: "Perry", Precinct: "Blain", Office: "State Senate", District: 15, Party: "DEM",
		Candidate: "John Smith", Counts: map[string]int{"votes": 150},
	},
	{
		County: "Perry", Precinct: "Bloomfield Borough", Office: "Attorney General, PA", Party: "REP",
		Candidate: "Write-In", Counts: map[string]int{"votes": 2},
	},
}

func write(t testing.TB, sink tally.Sink) {
	require.NoError(t, sink.WriteHeader(columns))
	for _, r := range records {
		require.NoError(t, sink.WriteRow(r))
	}
}

func TestCSV(t *testing.T) {
	buff := &bytes.Buffer{}
	sink := NewCSV(buff)
	write(t, sink)
	require.NoError(t, sink.Flush())

	require.Equal(t, strings.Join([]string{
		"county,precinct,office,district,party,candidate,votes",
		"Perry,Blain,State Senate,15,DEM,John Smith,150",
		`Perry,Bloomfield Borough,"Attorney General, PA",,REP,Write-In,2`,
		"",
	}, "\n"), buff.String())
}

func TestTable(t *testing.T) {
	buff := &bytes.Buffer{}
	sink := NewTable(buff)
	write(t, sink)
	require.Empty(t, buff.String())
	require.NoError(t, sink.Flush())

	out := buff.String()
	require.Contains(t, out, "CANDIDATE")
	require.Contains(t, out, "John Smith")
	require.Contains(t, out, "Bloomfield Borough")
}

type brokenSink struct{}

var errBroken = errors.New("broken")

func (brokenSink) WriteHeader([]string) error { return errBroken }
func (brokenSink) WriteRow(tally.Record) error { return errBroken }

func TestMulti(t *testing.T) {
	first := &bytes.Buffer{}
	second := &bytes.Buffer{}
	multi := Multi{NewCSV(first), brokenSink{}, NewCSV(second)}

	err := multi.WriteHeader(columns)
	require.ErrorIs(t, err, errBroken)
	err = multi.WriteRow(records[0])
	require.ErrorIs(t, err, errBroken)
	require.NoError(t, multi.Flush())

	require.Equal(t, first.String(), second.String())
	require.Contains(t, first.String(), "John Smith")
}
