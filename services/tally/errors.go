package tally

import (
	"errors"
	"fmt"
)

var (
	ErrHeaderMismatch       = errors.New("page header does not match layout")
	ErrMalformedTableHeader = errors.New("malformed table header")
	ErrInvalidParty         = errors.New("invalid party")
	ErrShortVoteTuple       = errors.New("vote tuple shorter than layout")
	ErrInvalidCount         = errors.New("invalid vote count")
	ErrUnexpectedEnd        = errors.New("unexpected end of tokens")
	ErrMissingPrecinct      = errors.New("missing precinct marker")
	ErrIncompleteTable      = errors.New("table left incomplete")
)

// ParseError is a structural failure at a specific page and token. Kind is
// one of the Err* sentinels above.
type ParseError struct {
	Kind   error
	Page   int
	Token  string
	Detail string
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("page %d: %s", e.Page, e.Kind.Error())
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Token != "" {
		msg += fmt.Sprintf(" (token %q)", e.Token)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}
