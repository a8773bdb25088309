package grades

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	ErrNoSeparator  = errors.New("no tab between course and grade")
	ErrEmptyCourse  = errors.New("empty course")
	ErrInvalidGrade = errors.New("invalid grade")
)

// Record is a single grade of one participant.
type Record struct {
	// Course is the compound key, everything before the last tab of the
	// line. It may contain tabs itself, e.g. "<semester>\t<course name>".
	Course string
	Grade  float64

	// Line is the 1-based line number in the input.
	Line int
}

// ParseError reports a malformed input line.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }

// HeaderMode selects the line ParseRecords discards as the header.
type HeaderMode uint

const (
	// HeaderSorted discards the first line after sorting all lines by their
	// content. A data line that sorts before the header is dropped instead,
	// and the header is then rejected as a malformed record.
	HeaderSorted HeaderMode = iota
	// HeaderFirstLine discards the first non-blank line of the input.
	HeaderFirstLine
)

func (m HeaderMode) String() string {
	switch m {
	case HeaderSorted:
		return "sorted"
	case HeaderFirstLine:
		return "first"
	}
	return "invalid"
}

// ParseHeaderMode parses "sorted" or "first".
func ParseHeaderMode(s string) (HeaderMode, error) {
	switch s {
	case "sorted", "":
		return HeaderSorted, nil
	case "first":
		return HeaderFirstLine, nil
	}
	return 0, errors.Errorf("invalid header mode %q, want sorted or first", s)
}

// ParseOptions control how ParseRecords treats the header line.
type ParseOptions struct {
	Header HeaderMode
}

// ParseRecord splits line at its last tab into course and grade.
func ParseRecord(line string) (course string, grade float64, err error) {
	sep := strings.LastIndexByte(line, '\t')
	if sep < 0 {
		return "", 0, ErrNoSeparator
	}

	course = line[:sep]
	if course == "" {
		return "", 0, ErrEmptyCourse
	}

	grade, err = strconv.ParseFloat(strings.TrimSpace(line[sep+1:]), 64)
	if err != nil || math.IsNaN(grade) || math.IsInf(grade, 0) {
		return "", 0, errors.Wrapf(ErrInvalidGrade, "%q", line[sep+1:])
	}
	return course, grade, nil
}

type numberedLine struct {
	n    int
	text string
}

// ParseRecords parses tab-separated grade records. Blank lines are ignored,
// the remaining lines are sorted by their full content and the header line
// selected by opts.Header is discarded. A single malformed line fails the
// whole input.
func ParseRecords(content string, opts ParseOptions) ([]Record, error) {
	var lines []numberedLine
	for i, text := range strings.Split(content, "\n") {
		text = strings.TrimSuffix(text, "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		lines = append(lines, numberedLine{n: i + 1, text: text})
	}
	if len(lines) == 0 {
		return nil, nil
	}

	if opts.Header == HeaderFirstLine {
		log.Debugf("discarding header line %d: %q", lines[0].n, lines[0].text)
		lines = lines[1:]
	}
	slices.SortStableFunc(lines, func(a, b numberedLine) int {
		return strings.Compare(a.text, b.text)
	})
	if opts.Header == HeaderSorted && len(lines) > 0 {
		log.Debugf("discarding first sorted line %d: %q", lines[0].n, lines[0].text)
		lines = lines[1:]
	}

	records := make([]Record, 0, len(lines))
	for _, l := range lines {
		course, grade, err := ParseRecord(l.text)
		if err != nil {
			return nil, &ParseError{Line: l.n, Text: l.text, Err: err}
		}
		records = append(records, Record{Course: course, Grade: grade, Line: l.n})
	}
	return records, nil
}
