package grades

import (
	"strconv"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/skyline93/gradestat/internal/hashtable"
)

// FailingGrade marks a failed exam. It is excluded from the average and
// counted towards the failure percentage.
const FailingGrade = 5.0

// ErrNoPassingGrades is returned for a course without any passing grade,
// whose average grade is undefined.
var ErrNoPassingGrades = errors.New("no passing grades")

// CourseStats summarizes the grades of one course.
type CourseStats struct {
	Course         string  `json:"course"`
	Participants   int     `json:"participants"`
	AverageGrade   float64 `json:"average_grade"`
	FailPercentage float64 `json:"fail_percentage"`
}

// Build stores the grades of records in a table keyed by course. The table
// has exactly one bucket per distinct course.
func Build(records []Record) (*hashtable.Table[float64], error) {
	courses := make(map[string]struct{})
	for _, r := range records {
		courses[r.Course] = struct{}{}
	}

	log.Debugf("sizing table to %d buckets for %d records", len(courses), len(records))
	tab, err := hashtable.New[float64](len(courses))
	if err != nil {
		return nil, err
	}

	for _, r := range records {
		if err := tab.Insert(r.Course, r.Grade); err != nil {
			return nil, errors.Wrapf(err, "line %d", r.Line)
		}
	}
	return tab, nil
}

// Aggregate computes the statistics of every course in records, ordered by
// course in the given order.
func Aggregate(records []Record, order hashtable.Order) ([]CourseStats, error) {
	if len(records) == 0 {
		return nil, nil
	}

	tab, err := Build(records)
	if err != nil {
		return nil, err
	}

	entries := tab.KeyValuePairs(order)
	stats := make([]CourseStats, 0, tab.Len())
	for start := 0; start < len(entries); {
		course := entries[start].Key
		end := start
		var values []float64
		for end < len(entries) && entries[end].Key == course {
			values = append(values, entries[end].Value)
			end++
		}

		st, err := Summarize(course, values)
		if err != nil {
			return nil, err
		}
		stats = append(stats, st)
		start = end
	}
	return stats, nil
}

// Summarize computes the statistics of one course from its grades. The
// average is rounded to two decimals, the failure percentage to one.
func Summarize(course string, grades []float64) (CourseStats, error) {
	var passed, failed int
	var sum float64
	for _, g := range grades {
		if g == FailingGrade {
			failed++
			continue
		}
		passed++
		sum += g
	}
	if passed == 0 {
		return CourseStats{}, errors.Wrapf(ErrNoPassingGrades, "course %q with %d participants", course, len(grades))
	}

	return CourseStats{
		Course:         course,
		Participants:   len(grades),
		AverageGrade:   round(sum/float64(passed), 2),
		FailPercentage: round(float64(failed)/float64(len(grades))*100, 1),
	}, nil
}

// round rounds the exact binary value of x to the given number of decimal
// places, resolving ties to even, and returns the nearest float64.
func round(x float64, places int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', places, 64), 64)
	if err != nil {
		// FormatFloat always yields a parseable number for finite x
		return x
	}
	return r
}
