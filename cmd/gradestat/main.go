package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/skyline93/gradestat/internal/config"
)

var version = "0.3.0"

// GlobalOptions hold all global options for gradestat.
type GlobalOptions struct {
	LogLevel string
	Verbose  bool

	// defaults loaded from the environment, nil until a command runs
	cfg *config.Config
}

var globalOptions GlobalOptions

// cmdRoot is the base command when no other command has been specified.
var cmdRoot = &cobra.Command{
	Use:   "gradestat",
	Short: "Compute per-course statistics from grade records",
	Long: `
gradestat reads tab-separated grade records and prints, per course, the
number of participants, the average passing grade and the percentage of
participants who failed.

Defaults for most flags can be set with GRADESTAT_* environment variables
or a .env file in the working directory.

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if there was an error, including a missing command.
`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	DisableAutoGenTag: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupGlobals(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return errors.Errorf("usage: %s", cmdReport.UseLine())
	},
}

func init() {
	f := cmdRoot.PersistentFlags()
	f.StringVar(&globalOptions.LogLevel, "log-level", "warn", "log `level` (debug, info, warn, error) (default: $GRADESTAT_LOG_LEVEL)")
	f.BoolVarP(&globalOptions.Verbose, "verbose", "v", false, "be verbose, same as --log-level debug")
}

// setupGlobals loads the environment configuration and sets up logging.
func setupGlobals(cmd *cobra.Command) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return errors.Wrap(err, "load configuration")
	}
	globalOptions.cfg = cfg

	if !cmd.Flags().Changed("log-level") {
		globalOptions.LogLevel = cfg.LogLevel
	}
	level, err := log.ParseLevel(globalOptions.LogLevel)
	if err != nil {
		return err
	}
	if globalOptions.Verbose {
		level = log.DebugLevel
	}

	log.SetOutput(os.Stderr)
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	log.Debugf("configuration: %+v", *cfg)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cmdRoot.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
