package grades

import (
	"bufio"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sugawarayuuta/sonnet"
)

// Report is the result of aggregating one input.
type Report struct {
	Source  string        `json:"source"`
	ID      string        `json:"id"`
	Order   string        `json:"order"`
	Courses []CourseStats `json:"courses"`
}

// WriteTSV writes one line per course:
//
//	<course>\t<participants>\t<average grade>\t<failure percentage>
//
// with the average formatted to two decimals and the percentage to one.
func WriteTSV(w io.Writer, stats []CourseStats) error {
	bw := bufio.NewWriter(w)
	for _, st := range stats {
		line := st.Course + "\t" +
			strconv.Itoa(st.Participants) + "\t" +
			strconv.FormatFloat(st.AverageGrade, 'f', 2, 64) + "\t" +
			strconv.FormatFloat(st.FailPercentage, 'f', 1, 64) + "\n"
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteJSON writes r as a single JSON document followed by a newline.
func WriteJSON(w io.Writer, r Report) error {
	if r.Courses == nil {
		r.Courses = []CourseStats{}
	}
	buf, err := sonnet.Marshal(r)
	if err != nil {
		return errors.Wrap(err, "json.Marshal")
	}

	_, err = w.Write(append(buf, '\n'))
	return err
}
