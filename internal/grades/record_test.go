package grades

import (
	"testing"

	"github.com/pkg/errors"
)

func TestParseRecord(t *testing.T) {
	tests := []struct {
		line   string
		course string
		grade  float64
	}{
		{"CourseA\t4.0", "CourseA", 4.0},
		// split at the last tab, the course keeps its own tabs
		{"SS 2021\tAlgorithmen und Datenstrukturen\t1.7", "SS 2021\tAlgorithmen und Datenstrukturen", 1.7},
		{"WS 2020/21\tInformatik I\t\t5.0 ", "WS 2020/21\tInformatik I\t", 5.0},
	}
	for _, test := range tests {
		course, grade, err := ParseRecord(test.line)
		if err != nil {
			t.Fatalf("ParseRecord(%q) failed: %v", test.line, err)
		}
		if course != test.course || grade != test.grade {
			t.Fatalf("ParseRecord(%q) = %q, %v ; want %q, %v", test.line, course, grade, test.course, test.grade)
		}
	}
}

func TestParseRecordErrors(t *testing.T) {
	tests := []struct {
		line string
		err  error
	}{
		{"CourseA 4.0", ErrNoSeparator},
		{"\t4.0", ErrEmptyCourse},
		{"CourseA\tvery good", ErrInvalidGrade},
		{"CourseA\t", ErrInvalidGrade},
		{"CourseA\tNaN", ErrInvalidGrade},
	}
	for _, test := range tests {
		_, _, err := ParseRecord(test.line)
		if !errors.Is(err, test.err) {
			t.Errorf("ParseRecord(%q) error = %v ; want %v", test.line, err, test.err)
		}
	}
}

func TestParseRecords(t *testing.T) {
	content := "Course\tGrade\r\nCourseB\t3.0\r\n\r\nCourseA\t5.0\nCourseA\t4.0\n"
	records, err := ParseRecords(content, ParseOptions{})
	if err != nil {
		t.Fatalf("ParseRecords failed: %v", err)
	}

	want := []Record{
		{Course: "CourseA", Grade: 4.0, Line: 5},
		{Course: "CourseA", Grade: 5.0, Line: 4},
		{Course: "CourseB", Grade: 3.0, Line: 2},
	}
	if len(records) != len(want) {
		t.Fatalf("got %d records, want %d: %v", len(records), len(want), records)
	}
	for i := range want {
		if records[i] != want[i] {
			t.Fatalf("record %d = %+v ; want %+v", i, records[i], want[i])
		}
	}
}

func TestParseRecordsHeader(t *testing.T) {
	// the header is the first line after sorting, wherever it is in the file;
	// "Course\tGrade" sorts before every "Course<name>\t..." line
	content := "CourseB\t3.0\nCourse\tGrade\nCourseA\t4.0\n"
	records, err := ParseRecords(content, ParseOptions{})
	if err != nil {
		t.Fatalf("ParseRecords failed: %v", err)
	}
	if len(records) != 2 || records[0].Course != "CourseA" || records[1].Course != "CourseB" {
		t.Fatalf("unexpected records %+v", records)
	}

	// a lower case header sorts last and is parsed as data
	lower := "course\tgrade\nCourseA\t4.0\nCourseB\t3.0\n"
	_, err = ParseRecords(lower, ParseOptions{})
	if !errors.Is(err, ErrInvalidGrade) {
		t.Fatalf("ParseRecords error = %v ; want ErrInvalidGrade", err)
	}

	records, err = ParseRecords(lower, ParseOptions{Header: HeaderFirstLine})
	if err != nil {
		t.Fatalf("ParseRecords failed: %v", err)
	}
	if len(records) != 2 || records[0].Course != "CourseA" || records[1].Course != "CourseB" {
		t.Fatalf("unexpected records %+v", records)
	}

	// in first line mode a header further down is parsed as data
	_, err = ParseRecords(content, ParseOptions{Header: HeaderFirstLine})
	if !errors.Is(err, ErrInvalidGrade) {
		t.Fatalf("ParseRecords error = %v ; want ErrInvalidGrade", err)
	}
}

func TestParseHeaderMode(t *testing.T) {
	for _, m := range []HeaderMode{HeaderSorted, HeaderFirstLine} {
		got, err := ParseHeaderMode(m.String())
		if err != nil || got != m {
			t.Fatalf("ParseHeaderMode(%q) = %v, %v ; want %v", m.String(), got, err, m)
		}
	}
	if m, err := ParseHeaderMode(""); err != nil || m != HeaderSorted {
		t.Fatalf("ParseHeaderMode(\"\") = %v, %v ; want sorted", m, err)
	}
	if _, err := ParseHeaderMode("last"); err == nil {
		t.Fatal("ParseHeaderMode(last) did not fail")
	}
}

func TestParseRecordsEmpty(t *testing.T) {
	for _, content := range []string{"", "\n\n", "course\tgrade\n"} {
		records, err := ParseRecords(content, ParseOptions{})
		if err != nil || len(records) != 0 {
			t.Fatalf("ParseRecords(%q) = %v, %v ; want no records", content, records, err)
		}
	}
}

func TestParseRecordsMalformed(t *testing.T) {
	content := "Course\tGrade\nCourseA\t4.0\nCourseA 5.0\nCourseB\t3.0\n"
	_, err := ParseRecords(content, ParseOptions{})

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("ParseRecords error = %v ; want *ParseError", err)
	}
	if perr.Line != 3 || perr.Text != "CourseA 5.0" || !errors.Is(err, ErrNoSeparator) {
		t.Fatalf("unexpected parse error %+v", perr)
	}
}
