package tally

import (
	"strconv"
)

// BaseColumns are the output columns preceding the vote counts.
var BaseColumns = []string{"county", "precinct", "office", "district", "party", "candidate"}

// Record is a single candidate's tally in a single precinct and contest.
// District is zero when the office has no district.
type Record struct {
	County    string
	Precinct  string
	Office    string
	District  int
	Party     string
	Candidate string
	Counts    map[string]int
}

// Values renders the record in the given column order. Unknown columns
// render as empty cells.
func (r Record) Values(columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		switch c {
		case "county":
			out[i] = r.County
		case "precinct":
			out[i] = r.Precinct
		case "office":
			out[i] = r.Office
		case "district":
			if r.District != 0 {
				out[i] = strconv.Itoa(r.District)
			}
		case "party":
			out[i] = r.Party
		case "candidate":
			out[i] = r.Candidate
		default:
			count, ok := r.Counts[c]
			if ok {
				out[i] = strconv.Itoa(count)
			}
		}
	}
	return out
}

// Sink receives the header once and then every record in production order.
type Sink interface {
	WriteHeader(columns []string) error
	WriteRow(record Record) error
}

// Continuation is the work left open when a page ends mid-table or
// mid-precinct. Empty fields mean nothing is pending.
type Continuation struct {
	TableHeader string
	Precinct    string
}
