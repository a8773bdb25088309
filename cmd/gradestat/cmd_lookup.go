package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/skyline93/gradestat/internal/fs"
	"github.com/skyline93/gradestat/internal/grades"
)

var cmdLookup = &cobra.Command{
	Use:   "lookup [flags] FILE COURSE",
	Short: "Print the last grade recorded for a course",
	Long: `
The "lookup" command reads FILE like the "report" command and prints the
grade that was stored last for COURSE. COURSE must match the part of the
record before the last tab exactly, including any tabs.

EXIT STATUS
===========

Exit status is 0 if the course was found, and 1 if it was not found or
there was any other error.
`,
	DisableAutoGenTag: true,
	Args:              cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		applyInputConfig(cmd.Flags(), globalOptions.cfg, &lookupOptions.Compression, &lookupOptions.Header)
		return runLookup(cmd.Context(), cmd.OutOrStdout(), lookupOptions, args[0], args[1])
	},
}

// LookupOptions bundles all options for the lookup command.
type LookupOptions struct {
	Indexed     bool
	Header      string
	Compression string
}

var lookupOptions LookupOptions

func init() {
	cmdRoot.AddCommand(cmdLookup)

	f := cmdLookup.Flags()
	f.BoolVar(&lookupOptions.Indexed, "indexed", false, "follow the probe sequence from the course's hash bucket instead of scanning all buckets")
	addInputFlags(f, &lookupOptions.Compression, &lookupOptions.Header)
}

func runLookup(ctx context.Context, stdout io.Writer, opts LookupOptions, location, course string) error {
	header, err := grades.ParseHeaderMode(opts.Header)
	if err != nil {
		return err
	}
	cfg, err := parseInput(location, opts.Compression)
	if err != nil {
		return err
	}

	in, records, err := loadRecords(ctx, fs.Local{}, *cfg, header)
	if err != nil {
		return err
	}
	tab, err := grades.Build(records)
	if err != nil {
		return errors.Wrap(err, in.Name)
	}

	lookup := tab.Lookup
	if opts.Indexed {
		lookup = tab.LookupIndexed
	}
	grade, ok := lookup(course)
	if !ok {
		return errors.Errorf("course %q not found in %v", course, in.Name)
	}

	_, err = fmt.Fprintln(stdout, formatGrade(grade))
	return err
}

// formatGrade formats a grade with as many decimals as needed, but at least
// one.
func formatGrade(g float64) string {
	s := strconv.FormatFloat(g, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
