package tokens

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/titanous/json5"
)

// PageBreak is the line separating pages in a text dump.
const PageBreak = "\f"

type jsonDump struct {
	Pages []SlicePage `json:"pages"`
}

// LoadJSON reads a token dump of the form
//
//	{pages: [{number: 1, tokens: ["...", ...]}, ...]}
//
// JSON5 syntax (comments, trailing commas) is accepted. Pages without a
// number are numbered by position starting at 1.
func LoadJSON(path string) (SliceDocument, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseJSON(contents)
}

func ParseJSON(contents []byte) (SliceDocument, error) {
	var dump jsonDump
	err := json5.Unmarshal(contents, &dump)
	if err != nil {
		return nil, fmt.Errorf("decode token dump: %w", err)
	}
	for i := range dump.Pages {
		if dump.Pages[i].PageNumber == 0 {
			dump.Pages[i].PageNumber = i + 1
		}
	}
	return SliceDocument(dump.Pages), nil
}

// ReadText reads a text dump with one token per line, pages are separated
// by a line holding a single form feed. Trailing carriage returns are
// dropped, all other whitespace is kept as part of the token.
func ReadText(r io.Reader) (SliceDocument, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var doc SliceDocument
	current := SlicePage{PageNumber: 1}
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == PageBreak {
			doc = append(doc, current)
			current = SlicePage{PageNumber: current.PageNumber + 1}
			continue
		}
		current.Strings = append(current.Strings, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(current.Strings) > 0 {
		doc = append(doc, current)
	}
	return doc, nil
}

// Open picks a loader by file extension: .json/.json5 dumps are decoded as
// JSON, anything else is read as a text dump.
func Open(path string) (SliceDocument, error) {
	if strings.HasSuffix(path, ".json") || strings.HasSuffix(path, ".json5") {
		return LoadJSON(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadText(f)
}
