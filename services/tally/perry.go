package tally

// PerryPrimary2020 is the layout of the Perry County, PA 2020 primary
// precinct results export.
var PerryPrimary2020 = Layout{
	County: "Perry",
	PageHeader: []string{
		"County Elections Results",
		"Perry County PA, PA_Perry_2020P, Jun 02, 2020",
		"All Precincts, All Districts, All Counter Groups, All ScanStations, All Contests, All Boxes",
		"Total Ballots Cast: 11262, Registered Voters: 24587, Overall Turnout: 45.80%",
		"31 precincts reported out of 31 total",
		"2020-06-05",
		"13:07:51",
		"Choice",
		"Votes",
		"Vote %",
		"AB",
		"ED",
		"MI",
		"PR",
	},
	PrecinctPrefix:   "Precinct ",
	PageFooterPrefix: "Page: ",
	TotalCandidate:   "Total",
	WriteInPrefix:    "Write-In",
	WriteInLabel:     "Write-In",
	VoteColumns:      []string{"votes", "", "absentee", "election_day", "military", "provisional"},
	OutputOrder:      []string{"election_day", "absentee", "provisional", "military", "votes"},
	OfficeOverrides: map[string]OfficeOverride{
		"Congress 12":   {Office: "U.S. House", District: 12},
		"PA Senator 15": {Office: "State Senate", District: 15},
		"PA Rep 86":     {Office: "General Assembly", District: 86},
	},
	Parties:         []string{"REP", "DEM"},
	ExcludedOffices: []string{"COMMITTEE", "Delegate"},
}

// Layouts are the built-in layouts by name.
var Layouts = map[string]Layout{
	"perry-2020-primary": PerryPrimary2020,
}
