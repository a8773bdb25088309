package grades

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const createCourseStats = `
	CREATE TABLE IF NOT EXISTS course_stats (
		input_id        TEXT    NOT NULL,
		source          TEXT    NOT NULL,
		course          TEXT    NOT NULL,
		participants    INTEGER NOT NULL,
		average_grade   REAL    NOT NULL,
		fail_percentage REAL    NOT NULL,
		PRIMARY KEY (input_id, course)
	)`

// ExportSQLite stores the courses of r in the course_stats table of the
// SQLite database at path, creating both if necessary. Rows of an earlier
// export of the same input (same r.ID) are replaced.
func ExportSQLite(ctx context.Context, path string, r Report) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return errors.Wrapf(err, "open %v", path)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, createCourseStats); err != nil {
		return errors.Wrap(err, "create table")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "BeginTx")
	}
	defer func() {
		_ = tx.Rollback() // no-op after Commit
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM course_stats WHERE input_id = ?`, r.ID); err != nil {
		return errors.Wrap(err, "delete previous export")
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO course_stats (input_id, source, course, participants, average_grade, fail_percentage)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "prepare insert")
	}
	defer stmt.Close()

	for _, st := range r.Courses {
		_, err := stmt.ExecContext(ctx, r.ID, r.Source, st.Course, st.Participants, st.AverageGrade, st.FailPercentage)
		if err != nil {
			return errors.Wrapf(err, "insert course %q", st.Course)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "Commit")
	}
	log.Debugf("exported %d courses of %v to %v", len(r.Courses), r.Source, path)
	return nil
}
