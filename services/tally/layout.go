package tally

import (
	"fmt"
	"precinct-results/lib/configutil"
	"slices"
)

// OfficeOverride maps a raw contest label onto a display office and district.
type OfficeOverride struct {
	Office   string `json:"office" yaml:"office"`
	District int    `json:"district" yaml:"district"`
}

// Layout holds every literal the page parser depends on. Each county export
// has its own layout.
type Layout struct {
	County string `json:"county" yaml:"county"`

	// PageHeader is the exact token sequence every page starts with.
	PageHeader       []string `json:"page_header" yaml:"page_header"`
	PrecinctPrefix   string   `json:"precinct_prefix" yaml:"precinct_prefix"`
	PageFooterPrefix string   `json:"page_footer_prefix" yaml:"page_footer_prefix"`
	// TotalCandidate closes a contest table, compared after title casing.
	TotalCandidate string `json:"total_candidate" yaml:"total_candidate"`
	WriteInPrefix  string `json:"write_in_prefix" yaml:"write_in_prefix"`
	WriteInLabel   string `json:"write_in_label" yaml:"write_in_label"`

	// VoteColumns names the tokens following a candidate, in order. An
	// empty name marks a slot that is read and discarded (vote percentage).
	VoteColumns []string `json:"vote_columns" yaml:"vote_columns"`
	// OutputOrder optionally reorders the count columns in the output.
	OutputOrder []string `json:"output_order" yaml:"output_order"`

	OfficeOverrides map[string]OfficeOverride `json:"office_overrides" yaml:"office_overrides"`
	Parties         []string                  `json:"parties" yaml:"parties"`
	// ExcludedOffices are case sensitive substrings, contests whose office
	// contains one of them are dropped.
	ExcludedOffices []string `json:"excluded_offices" yaml:"excluded_offices"`
}

// Validate rejects layouts missing a literal the parser relies on.
func (l Layout) Validate() error {
	if l.PrecinctPrefix == "" {
		return fmt.Errorf("layout: precinct_prefix is required")
	}
	if l.PageFooterPrefix == "" {
		return fmt.Errorf("layout: page_footer_prefix is required")
	}
	if l.TotalCandidate == "" {
		return fmt.Errorf("layout: total_candidate is required")
	}
	if l.WriteInPrefix == "" || l.WriteInLabel == "" {
		return fmt.Errorf("layout: write_in_prefix and write_in_label are required")
	}
	if len(l.Parties) == 0 {
		return fmt.Errorf("layout: at least one party is required")
	}

	counts := l.CountColumns()
	if len(counts) == 0 {
		return fmt.Errorf("layout: vote_columns must name at least one count")
	}
	seen := make(map[string]struct{}, len(counts))
	for _, c := range counts {
		if slices.Contains(BaseColumns, c) {
			return fmt.Errorf("layout: vote column %q collides with a record column", c)
		}
		if _, dup := seen[c]; dup {
			return fmt.Errorf("layout: duplicate vote column %q", c)
		}
		seen[c] = struct{}{}
	}

	if len(l.OutputOrder) > 0 {
		if len(l.OutputOrder) != len(counts) {
			return fmt.Errorf(
				"layout: output_order has %d columns, vote_columns has %d counts",
				len(l.OutputOrder), len(counts),
			)
		}
		for _, c := range l.OutputOrder {
			if _, ok := seen[c]; !ok {
				return fmt.Errorf("layout: output_order column %q is not a vote column", c)
			}
			delete(seen, c)
		}
	}

	return nil
}

// CountColumns returns the named vote columns in token order.
func (l Layout) CountColumns() []string {
	var out []string
	for _, c := range l.VoteColumns {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

// OutputColumns returns the count columns in output order.
func (l Layout) OutputColumns() []string {
	if len(l.OutputOrder) > 0 {
		return l.OutputOrder
	}
	return l.CountColumns()
}

// Columns returns the full output header.
func (l Layout) Columns() []string {
	return append(slices.Clone(BaseColumns), l.OutputColumns()...)
}

// LoadLayout reads a JSON5 or YAML layout file (with optional .local
// overrides) and validates it.
func LoadLayout(path string) (Layout, error) {
	layout, err := configutil.ReadConfig[Layout](path)
	if err != nil {
		return Layout{}, err
	}
	err = layout.Validate()
	if err != nil {
		return Layout{}, err
	}
	return layout, nil
}
