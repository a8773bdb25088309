package main

import (
	"context"
	"io"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/skyline93/gradestat/internal/config"
	"github.com/skyline93/gradestat/internal/fs"
	"github.com/skyline93/gradestat/internal/grades"
	"github.com/skyline93/gradestat/internal/hashtable"
	"github.com/skyline93/gradestat/internal/source"
)

var cmdReport = &cobra.Command{
	Use:   "report [flags] FILE...",
	Short: "Print per-course statistics of grade files",
	Long: `
The "report" command reads each FILE, a tab-separated list of grade records
with one header line, and prints one line per course:

    <course>\t<participants>\t<average grade>\t<failure percentage>

The course is everything before the last tab of a record, so it may contain
tabs itself (e.g. "<semester>\t<course name>"). A grade of 5.0 counts as
failed and is left out of the average. Use "-" as FILE to read standard
input; files ending in .zst are decompressed.

All lines are sorted by their content and the first one is discarded as the
header, so the header must sort before the data, e.g. "Course\tGrade" or a
line starting with "#". Use --header first to discard the first line of the
file instead.

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if there was an error, e.g. a malformed record or a course
in which every participant failed. Nothing is printed in that case.
`,
	DisableAutoGenTag: true,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.Errorf("usage: %s", cmd.UseLine())
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		reportOptions.applyConfig(cmd.Flags(), globalOptions.cfg)
		return runReport(cmd.Context(), cmd.OutOrStdout(), reportOptions, args)
	},
}

// ReportOptions bundles all options for the report command.
type ReportOptions struct {
	Order       string
	Format      string
	Header      string
	Compression string
	Workers     uint
	SQLite      string
}

var reportOptions ReportOptions

func init() {
	cmdRoot.AddCommand(cmdReport)

	f := cmdReport.Flags()
	f.StringVar(&reportOptions.Order, "order", "desc", "sort courses in `order` asc or desc (default: $GRADESTAT_ORDER)")
	f.StringVar(&reportOptions.Format, "format", "tsv", "output `format` tsv or json (default: $GRADESTAT_FORMAT)")
	f.UintVar(&reportOptions.Workers, "workers", 2, "process `n` files concurrently (default: $GRADESTAT_WORKERS)")
	f.StringVar(&reportOptions.SQLite, "sqlite", "", "also store the statistics in the SQLite database at `path`")
	addInputFlags(f, &reportOptions.Compression, &reportOptions.Header)
}

// addInputFlags adds the flags controlling how input files are read.
func addInputFlags(f *pflag.FlagSet, compression, header *string) {
	f.StringVar(compression, "compression", "auto", "input compression `mode` auto, off or zstd (default: $GRADESTAT_COMPRESSION)")
	f.StringVar(header, "header", "sorted", "discard the first line after sorting (sorted) or the first line of the file (first) as `header` (default: $GRADESTAT_HEADER)")
}

// applyInputConfig replaces the input flags not given on the command line
// with the defaults from the environment.
func applyInputConfig(f *pflag.FlagSet, cfg *config.Config, compression, header *string) {
	if cfg == nil {
		return
	}
	if !f.Changed("compression") {
		*compression = cfg.Compression
	}
	if !f.Changed("header") {
		*header = cfg.Header
	}
}

// applyConfig replaces the values of all flags not given on the command line
// with the defaults from the environment.
func (opts *ReportOptions) applyConfig(f *pflag.FlagSet, cfg *config.Config) {
	if cfg == nil {
		return
	}
	if !f.Changed("order") {
		opts.Order = cfg.Order
	}
	if !f.Changed("format") {
		opts.Format = cfg.Format
	}
	if !f.Changed("workers") {
		opts.Workers = cfg.Workers
	}
	applyInputConfig(f, cfg, &opts.Compression, &opts.Header)
}

func runReport(ctx context.Context, stdout io.Writer, opts ReportOptions, args []string) error {
	order, err := hashtable.ParseOrder(opts.Order)
	if err != nil {
		return err
	}
	if opts.Format != "tsv" && opts.Format != "json" {
		return errors.Errorf("invalid format %q, want tsv or json", opts.Format)
	}
	header, err := grades.ParseHeaderMode(opts.Header)
	if err != nil {
		return err
	}
	workers := opts.Workers
	if workers == 0 {
		workers = 1
	}

	inputs := make([]source.Config, 0, len(args))
	stdinUsed := false
	for _, arg := range args {
		cfg, err := parseInput(arg, opts.Compression)
		if err != nil {
			return err
		}
		if cfg.IsStdin() {
			if stdinUsed {
				return errors.Errorf("standard input (%q) can only be read once", source.StdinPath)
			}
			stdinUsed = true
		}
		inputs = append(inputs, *cfg)
	}

	reports := make([]grades.Report, len(inputs))
	wg, wgCtx := errgroup.WithContext(ctx)
	wg.SetLimit(int(workers))
	for i, in := range inputs {
		i, in := i, in
		wg.Go(func() error {
			r, err := buildReport(wgCtx, fs.Local{}, in, order, header)
			if err != nil {
				return err
			}
			reports[i] = *r
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		return err
	}

	for _, r := range reports {
		switch opts.Format {
		case "json":
			err = grades.WriteJSON(stdout, r)
		default:
			err = grades.WriteTSV(stdout, r.Courses)
		}
		if err != nil {
			return errors.Wrap(err, "write report")
		}

		if opts.SQLite != "" {
			if err := grades.ExportSQLite(ctx, opts.SQLite, r); err != nil {
				return err
			}
		}
	}
	return nil
}

// parseInput parses an input location and applies the compression mode.
func parseInput(location, compression string) (*source.Config, error) {
	cfg, err := source.ParseConfig(location)
	if err != nil {
		return nil, err
	}
	cfg.Compression, err = source.ParseCompression(compression)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadRecords reads and parses the grade records of one input.
func loadRecords(ctx context.Context, fsys fs.FS, cfg source.Config, header grades.HeaderMode) (*source.Input, []grades.Record, error) {
	in, err := source.Load(ctx, fsys, cfg)
	if err != nil {
		return nil, nil, err
	}

	records, err := grades.ParseRecords(in.Content, grades.ParseOptions{Header: header})
	if err != nil {
		return nil, nil, errors.Wrap(err, in.Name)
	}
	return in, records, nil
}

func buildReport(ctx context.Context, fsys fs.FS, cfg source.Config, order hashtable.Order, header grades.HeaderMode) (*grades.Report, error) {
	in, records, err := loadRecords(ctx, fsys, cfg, header)
	if err != nil {
		return nil, err
	}

	stats, err := grades.Aggregate(records, order)
	if err != nil {
		return nil, errors.Wrap(err, in.Name)
	}
	log.Infof("%v: %d records in %d courses", in.Name, len(records), len(stats))

	return &grades.Report{
		Source:  in.Name,
		ID:      in.ID.String(),
		Order:   order.String(),
		Courses: stats,
	}, nil
}
