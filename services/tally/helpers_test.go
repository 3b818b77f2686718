package tally

import (
	"fmt"
	"precinct-results/lib/tokens"
	"slices"
)

type memSink struct {
	header  []string
	records []Record
}

func (s *memSink) WriteHeader(columns []string) error {
	s.header = columns
	return nil
}

func (s *memSink) WriteRow(record Record) error {
	s.records = append(s.records, record)
	return nil
}

func row(candidate string, counts ...string) []string {
	return append([]string{candidate}, counts...)
}

// makePage surrounds body with the Perry page header and a footer.
func makePage(number int, body ...[]string) tokens.SlicePage {
	toks := slices.Clone(PerryPrimary2020.PageHeader)
	for _, b := range body {
		toks = append(toks, b...)
	}
	toks = append(toks, fmt.Sprintf("Page: %d of 3", number))
	return tokens.SlicePage{PageNumber: number, Strings: toks}
}

func counts(votes, absentee, electionDay, military, provisional int) map[string]int {
	return map[string]int{
		"votes":        votes,
		"absentee":     absentee,
		"election_day": electionDay,
		"military":     military,
		"provisional":  provisional,
	}
}

// blainBody is a complete two-precinct sample in units that may be split
// across pages at any boundary.
var blainBody = [][]string{
	{"Precinct Blain"},
	{"12 PA Senator 15 (DEM)"},
	row("JOHN SMITH", "150", "62.3", "120", "25", "3", "2"),
	row("WRITE-IN SOMETHING", "5", "2.1", "1", "4", "0", "0"),
	row("Total", "155", "100.00%", "121", "29", "3", "2"),
	{"3 DEM STATE COMMITTEE (DEM)"},
	row("MARY JONES", "40", "100.00%", "10", "30", "0", "0"),
	row("Total", "40", "100.00%", "10", "30", "0", "0"),
	{"Precinct Bloomfield Borough"},
	{"1 Attorney General (REP)"},
	row("HEATHER HEIDELBAUGH", "88", "97.78%", "30", "56", "1", "1"),
	row("Write-in", "2", "2.22%", "0", "2", "0", "0"),
	row("Total", "90", "100.00%", "30", "58", "1", "1"),
}

var blainRecords = []Record{
	{
		County: "Perry", Precinct: "Blain", Office: "State Senate", District: 15, Party: "DEM",
		Candidate: "John Smith", Counts: counts(150, 120, 25, 3, 2),
	},
	{
		County: "Perry", Precinct: "Blain", Office: "State Senate", District: 15, Party: "DEM",
		Candidate: "Write-In", Counts: counts(5, 1, 4, 0, 0),
	},
	{
		County: "Perry", Precinct: "Bloomfield Borough", Office: "Attorney General", Party: "REP",
		Candidate: "Heather Heidelbaugh", Counts: counts(88, 30, 56, 1, 1),
	},
	{
		County: "Perry", Precinct: "Bloomfield Borough", Office: "Attorney General", Party: "REP",
		Candidate: "Write-In", Counts: counts(2, 0, 2, 0, 0),
	},
}
