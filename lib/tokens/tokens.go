package tokens

import (
	"io"
)

// Stream is an ordered sequence of text tokens with one token of look-ahead.
//
// Next consumes and returns the next token, Peek returns it without consuming.
// Both return io.EOF once the sequence is exhausted.
type Stream interface {
	Next() (string, error)
	Peek() (string, error)
}

// Page is a single page of a document.
type Page interface {
	Number() int
	Tokens() Stream
}

// Document is an ordered sequence of pages.
type Document interface {
	Pages() ([]Page, error)
}

// SliceStream is a Stream over an immutable token list.
type SliceStream struct {
	tokens []string
	pos    int
}

func NewSliceStream(tokens []string) *SliceStream {
	return &SliceStream{tokens: tokens}
}

func (s *SliceStream) Next() (string, error) {
	if s.pos >= len(s.tokens) {
		return "", io.EOF
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok, nil
}

func (s *SliceStream) Peek() (string, error) {
	if s.pos >= len(s.tokens) {
		return "", io.EOF
	}
	return s.tokens[s.pos], nil
}

// Producer yields tokens one at a time, ok is false once it is exhausted.
type Producer func() (tok string, ok bool, err error)

// BufferedStream adapts a forward-only Producer into a Stream by holding
// at most one token back.
type BufferedStream struct {
	produce  Producer
	buffered bool
	next     string
	err      error
}

func NewBufferedStream(produce Producer) *BufferedStream {
	return &BufferedStream{produce: produce}
}

func (s *BufferedStream) fill() error {
	if s.buffered {
		return nil
	}
	if s.err != nil {
		return s.err
	}
	tok, ok, err := s.produce()
	if err != nil {
		s.err = err
		return err
	}
	if !ok {
		s.err = io.EOF
		return io.EOF
	}
	s.next = tok
	s.buffered = true
	return nil
}

func (s *BufferedStream) Next() (string, error) {
	err := s.fill()
	if err != nil {
		return "", err
	}
	s.buffered = false
	return s.next, nil
}

func (s *BufferedStream) Peek() (string, error) {
	err := s.fill()
	if err != nil {
		return "", err
	}
	return s.next, nil
}

// SlicePage is a Page backed by an in-memory token list, each call to
// Tokens returns a fresh stream positioned at the first token.
type SlicePage struct {
	PageNumber int      `json:"number" yaml:"number"`
	Strings    []string `json:"tokens" yaml:"tokens"`
}

func (p SlicePage) Number() int {
	return p.PageNumber
}

func (p SlicePage) Tokens() Stream {
	return NewSliceStream(p.Strings)
}

// SliceDocument is a Document over in-memory pages.
type SliceDocument []SlicePage

func (d SliceDocument) Pages() ([]Page, error) {
	pages := make([]Page, len(d))
	for i, p := range d {
		pages[i] = p
	}
	return pages, nil
}
