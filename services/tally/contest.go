package tally

import (
	"fmt"
	"precinct-results/lib/textutil"
	"slices"
	"strings"
)

type contest struct {
	Office   string
	District int
	Party    string
}

// parseTableHeader splits a raw header such as "12 PA Senator 15 (DEM)" into
// its office, district and party, the leading contest number is dropped.
// Failures are *ParseError values without a page number.
func parseTableHeader(layout Layout, raw string) (contest, error) {
	malformed := func(detail string) error {
		return &ParseError{Kind: ErrMalformedTableHeader, Token: raw, Detail: detail}
	}

	office, rest, found := strings.Cut(raw, " (")
	if !found {
		return contest{}, malformed("no party suffix")
	}
	_, office, found = strings.Cut(office, " ")
	if !found || office == "" {
		return contest{}, malformed("no contest number")
	}
	party, _, found := strings.Cut(rest, ")")
	if !found {
		return contest{}, malformed("unterminated party")
	}
	if !slices.Contains(layout.Parties, party) {
		return contest{}, &ParseError{
			Kind:   ErrInvalidParty,
			Token:  raw,
			Detail: fmt.Sprintf("%q is not one of %v", party, layout.Parties),
		}
	}

	c := contest{Office: office, Party: party}
	override, ok := layout.OfficeOverrides[office]
	if ok {
		c.Office = override.Office
		c.District = override.District
	}
	return c, nil
}

func normalizeCandidate(layout Layout, raw string) string {
	candidate := textutil.TitleCase(raw)
	if strings.HasPrefix(candidate, layout.WriteInPrefix) {
		return layout.WriteInLabel
	}
	return candidate
}

func keepRecord(layout Layout, record Record) bool {
	if record.Candidate == layout.TotalCandidate {
		return false
	}
	for _, marker := range layout.ExcludedOffices {
		if strings.Contains(record.Office, marker) {
			return false
		}
	}
	return true
}
