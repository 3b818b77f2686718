package tally

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTableHeader(t *testing.T) {
	testCases := []struct {
		raw      string
		expected contest
	}{
		{
			raw:      "12 PA Senator 15 (DEM)",
			expected: contest{Office: "State Senate", District: 15, Party: "DEM"},
		},
		{
			raw:      "7 Congress 12 (REP)",
			expected: contest{Office: "U.S. House", District: 12, Party: "REP"},
		},
		{
			raw:      "1 President of the United States (REP)",
			expected: contest{Office: "President of the United States", Party: "REP"},
		},
		{
			raw:      "2 Auditor General (DEM) (Vote for 1)",
			expected: contest{Office: "Auditor General", Party: "DEM"},
		},
	}

	for _, test := range testCases {
		c, err := parseTableHeader(PerryPrimary2020, test.raw)
		require.NoError(t, err, test.raw)
		require.Equal(t, test.expected, c)
	}
}

func TestParseTableHeaderErrors(t *testing.T) {
	_, err := parseTableHeader(PerryPrimary2020, "12 PA Senator 15 (GRN)")
	require.ErrorIs(t, err, ErrInvalidParty)

	_, err = parseTableHeader(PerryPrimary2020, "12 PA Senator 15")
	require.ErrorIs(t, err, ErrMalformedTableHeader)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "12 PA Senator 15", perr.Token)
}

func TestNormalizeCandidate(t *testing.T) {
	require.Equal(t, "Write-In", normalizeCandidate(PerryPrimary2020, "WRITE-IN SOMETHING"))
	require.Equal(t, "Write-In", normalizeCandidate(PerryPrimary2020, "Write-in"))
	require.Equal(t, "Joseph R Biden", normalizeCandidate(PerryPrimary2020, "JOSEPH R BIDEN"))
	require.Equal(t, "Total", normalizeCandidate(PerryPrimary2020, "TOTAL"))
	require.Equal(t, "O'Brien", normalizeCandidate(PerryPrimary2020, "O'BRIEN"))
	require.Equal(t, "Mary-Kate O'Neil", normalizeCandidate(PerryPrimary2020, "MARY-KATE O'NEIL"))
}

func TestKeepRecord(t *testing.T) {
	require.False(t, keepRecord(PerryPrimary2020, Record{Office: "REP STATE COMMITTEE", Candidate: "A"}))
	require.False(t, keepRecord(PerryPrimary2020, Record{Office: "Delegate 12", Candidate: "A"}))
	require.False(t, keepRecord(PerryPrimary2020, Record{Office: "Governor", Candidate: "Total"}))
	require.True(t, keepRecord(PerryPrimary2020, Record{Office: "Governor", Candidate: "A"}))
	// markers are case sensitive
	require.True(t, keepRecord(PerryPrimary2020, Record{Office: "Committee Of Seventy", Candidate: "A"}))
}
