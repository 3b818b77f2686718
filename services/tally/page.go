package tally

import (
	"errors"
	"fmt"
	"io"
	"precinct-results/lib/tokens"
	"strconv"
	"strings"
)

type parserState int

const (
	stateNeedPrecinct parserState = iota
	stateNeedTable
	stateInTable
	stateDone
)

// PageParser turns one page of tokens into records. Records are produced
// lazily by Next, the continuation for the following page is available
// through Continuation once Next has returned io.EOF.
type PageParser struct {
	layout Layout
	page   int
	stream tokens.Stream

	// inherited continuation, each field is cleared once consumed
	inherited Continuation

	state       parserState
	precinct    string
	tableHeader string
	contest     contest
	err         error
}

// NewPageParser consumes and checks the page header, a page whose header
// differs from the layout is rejected with ErrHeaderMismatch.
func NewPageParser(layout Layout, page tokens.Page, cont Continuation) (*PageParser, error) {
	p := &PageParser{
		layout:    layout,
		page:      page.Number(),
		stream:    page.Tokens(),
		inherited: cont,
	}

	for i, expected := range layout.PageHeader {
		tok, err := p.stream.Next()
		if errors.Is(err, io.EOF) {
			return nil, p.fail(ErrHeaderMismatch, "", fmt.Sprintf("page ended at header line %d", i+1))
		}
		if err != nil {
			return nil, err
		}
		if tok != expected {
			return nil, p.fail(ErrHeaderMismatch, tok, fmt.Sprintf("header line %d, expected %q", i+1, expected))
		}
	}

	return p, nil
}

func (p *PageParser) fail(kind error, token, detail string) *ParseError {
	return &ParseError{Kind: kind, Page: p.page, Token: token, Detail: detail}
}

// Next returns the next record on the page, or io.EOF once the page footer
// is reached. Any other error is fatal and is returned on every later call.
func (p *PageParser) Next() (Record, error) {
	for p.err == nil {
		record, emit, err := p.step()
		if err != nil {
			p.err = err
			p.state = stateDone
			break
		}
		if emit {
			return record, nil
		}
		if p.state == stateDone {
			p.err = io.EOF
		}
	}
	return Record{}, p.err
}

// Continuation reports the table header left open (the page ended before
// the total row) and the precinct still open at the end of the page. When
// the page resolved no precinct, the inherited continuation is passed on.
func (p *PageParser) Continuation() Continuation {
	if p.precinct == "" {
		return p.inherited
	}
	header := p.tableHeader
	if header == "" {
		header = p.inherited.TableHeader
	}
	return Continuation{TableHeader: header, Precinct: p.precinct}
}

func (p *PageParser) step() (Record, bool, error) {
	switch p.state {
	case stateNeedPrecinct:
		done, err := p.pageDone()
		if err != nil {
			return Record{}, false, err
		}
		if done {
			p.state = stateDone
			return Record{}, false, nil
		}
		err = p.resolvePrecinct()
		if err != nil {
			return Record{}, false, err
		}
		p.state = stateNeedTable

	case stateNeedTable:
		done, err := p.pageDone()
		if err != nil {
			return Record{}, false, err
		}
		if done {
			p.state = stateDone
			return Record{}, false, nil
		}
		next, err := p.precinctDone()
		if err != nil {
			return Record{}, false, err
		}
		if next {
			p.state = stateNeedPrecinct
			return Record{}, false, nil
		}
		err = p.openTable()
		if err != nil {
			return Record{}, false, err
		}
		p.state = stateInTable

	case stateInTable:
		done, err := p.pageDone()
		if err != nil {
			return Record{}, false, err
		}
		if done {
			// table stays open and is carried to the next page
			p.state = stateDone
			return Record{}, false, nil
		}
		record, err := p.readRow()
		if err != nil {
			return Record{}, false, err
		}
		if record.Candidate == p.layout.TotalCandidate {
			p.tableHeader = ""
			p.state = stateNeedTable
		}
		if keepRecord(p.layout, record) {
			return record, true, nil
		}
	}

	return Record{}, false, nil
}

func (p *PageParser) peek() (string, error) {
	tok, err := p.stream.Peek()
	if errors.Is(err, io.EOF) {
		return "", p.fail(ErrUnexpectedEnd, "", "page footer not found")
	}
	return tok, err
}

func (p *PageParser) next(expecting string) (string, error) {
	tok, err := p.stream.Next()
	if errors.Is(err, io.EOF) {
		return "", p.fail(ErrUnexpectedEnd, "", "expected "+expecting)
	}
	return tok, err
}

func (p *PageParser) pageDone() (bool, error) {
	tok, err := p.peek()
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(tok, p.layout.PageFooterPrefix), nil
}

func (p *PageParser) precinctDone() (bool, error) {
	tok, err := p.peek()
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(tok, p.layout.PrecinctPrefix), nil
}

func (p *PageParser) resolvePrecinct() error {
	precinct := p.inherited.Precinct
	p.inherited.Precinct = ""

	marker, err := p.precinctDone()
	if err != nil {
		return err
	}
	if marker {
		tok, err := p.next("precinct")
		if err != nil {
			return err
		}
		if p.inherited.TableHeader != "" {
			return p.fail(ErrIncompleteTable, tok, fmt.Sprintf("table %q never reached its total row", p.inherited.TableHeader))
		}
		precinct = strings.TrimPrefix(tok, p.layout.PrecinctPrefix)
		if precinct == "" {
			return p.fail(ErrMissingPrecinct, tok, "empty precinct name")
		}
	}

	if precinct == "" {
		tok, _ := p.stream.Peek()
		return p.fail(ErrMissingPrecinct, tok, "")
	}
	p.precinct = precinct
	return nil
}

func (p *PageParser) openTable() error {
	header := p.inherited.TableHeader
	p.inherited.TableHeader = ""
	if header == "" {
		var err error
		header, err = p.next("table header")
		if err != nil {
			return err
		}
	}

	c, err := parseTableHeader(p.layout, header)
	var perr *ParseError
	if errors.As(err, &perr) {
		perr.Page = p.page
		return perr
	}
	if err != nil {
		return err
	}
	p.tableHeader = header
	p.contest = c
	return nil
}

func (p *PageParser) readRow() (Record, error) {
	tok, err := p.next("candidate")
	if err != nil {
		return Record{}, err
	}

	record := Record{
		County:    p.layout.County,
		Precinct:  p.precinct,
		Office:    p.contest.Office,
		District:  p.contest.District,
		Party:     p.contest.Party,
		Candidate: normalizeCandidate(p.layout, tok),
		Counts:    make(map[string]int, len(p.layout.VoteColumns)),
	}

	for i, column := range p.layout.VoteColumns {
		raw, err := p.stream.Next()
		if errors.Is(err, io.EOF) || (err == nil && strings.HasPrefix(raw, p.layout.PageFooterPrefix)) {
			return Record{}, p.fail(ErrShortVoteTuple, raw, fmt.Sprintf(
				"candidate %q has %d of %d vote columns", record.Candidate, i, len(p.layout.VoteColumns),
			))
		}
		if err != nil {
			return Record{}, err
		}
		if column == "" {
			continue
		}
		count, err := strconv.Atoi(raw)
		if err != nil || count < 0 {
			return Record{}, p.fail(ErrInvalidCount, raw, fmt.Sprintf("column %q of candidate %q", column, record.Candidate))
		}
		record.Counts[column] = count
	}

	return record, nil
}
