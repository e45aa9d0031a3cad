package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/macoscontainers/clearbusy/internal/busyflag"
	"github.com/macoscontainers/clearbusy/internal/config"
	"github.com/macoscontainers/clearbusy/internal/logging"
	"github.com/macoscontainers/clearbusy/internal/process"
	"github.com/macoscontainers/clearbusy/internal/xattr"
	"github.com/spf13/cobra"
)

// Returned when one or more files could not be processed (each failure has already been reported)
var errFailures = errors.New("one or more files could not be processed")

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// Runs the command with the specified arguments and returns the process exit status
func run(args []string, stderr io.Writer) int {
	cmd := newRootCommand(stderr)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errFailures) {
			fmt.Fprintln(stderr, "Error:", err)
		}
		return 1
	}
	return 0
}

func newRootCommand(stderr io.Writer) *cobra.Command {
	v := config.NewViper()

	cmd := &cobra.Command{
		Use:   "clearbusy [--debug] file1 [file2 ...]",
		Short: "Clear the busy flag in the Finder info of files",
		Long: `clearbusy clears the busy bit in the com.apple.FinderInfo extended attribute
of each file, leaving the rest of the Finder info untouched. Files without
Finder info are skipped. The exit status is 1 if any file could not be processed.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {

			// With nothing to do, just print the usage
			if len(args) == 0 {
				return cmd.Help()
			}

			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			// Wire up the logger, the xattr helper and the clearer
			logger := logging.New(stderr, "clearbusy", logging.Options{
				Debug:     cfg.Debug,
				NoColor:   cfg.LogNoColor,
				Timestamp: cfg.LogTimestamp,
			})
			runner := process.NewRunner(logger)
			runner.Diagnostics = stderr
			clearer := &busyflag.Clearer{
				Store:  &xattr.Helper{Program: cfg.XattrPath, Runner: runner, Debug: cfg.Debug},
				Logger: logger,
				Debug:  cfg.Debug,
			}

			if err := clearer.ClearFiles(args); err != nil {
				return errFailures
			}
			return nil
		},
	}

	// Usage and help are diagnostics, not output
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)

	cmd.Flags().Bool("debug", false, "trace each xattr invocation and report each cleared file")
	cmd.Flags().String("xattr", xattr.DefaultProgram, "path to the xattr program")
	v.BindPFlag(config.KeyDebug, cmd.Flags().Lookup("debug"))
	v.BindPFlag(config.KeyXattrPath, cmd.Flags().Lookup("xattr"))

	return cmd
}
