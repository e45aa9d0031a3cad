package process

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/tensorworks/go-build-helpers/pkg/validation"
)

// Describes a single invocation of an external program
type Request struct {

	// The program to run followed by its arguments
	Argv []string

	// Return stdout and stderr interleaved in the order they were written, rather than stdout alone
	CombinedOutput bool

	// If non-nil, receives the captured stderr of the child process instead of the diagnostic stream
	Stderr io.Writer

	// Log the command line before running it
	Debug bool
}

// Runs external programs and captures their output
type Runner struct {

	// The diagnostic stream that uncaptured stderr is forwarded to (defaults to os.Stderr)
	Diagnostics io.Writer

	// Receives the command trace for requests with Debug set
	Logger zerolog.Logger

	// Terminates the process for MustRun() (defaults to validation.ExitIfError)
	exit func(error)
}

// Creates a Runner that forwards diagnostics to the process's stderr
func NewRunner(logger zerolog.Logger) *Runner {
	return &Runner{
		Diagnostics: os.Stderr,
		Logger:      logger,
		exit:        validation.ExitIfError,
	}
}

// Runs the requested command, returning its output on success.
//
// Failure to launch, abnormal termination and a non-zero exit status are all
// reported as an *ExecError carrying whatever output was captured. The output
// itself is never inspected to decide success.
func (r *Runner) Run(req Request) (string, error) {

	// Refuse to run an empty command
	if len(req.Argv) == 0 {
		return "", &ExecError{Message: "empty command line"}
	}
	line := CommandLine(req.Argv)

	// Trace the command if requested
	if req.Debug {
		r.Logger.Info().Str("command", line).Msg("running")
	}

	// Capture each stream separately as well as interleaved
	var stdout, stderr bytes.Buffer
	combined := &lockedBuffer{}
	cmd := exec.Command(req.Argv[0], req.Argv[1:]...)
	cmd.Stdout = io.MultiWriter(&stdout, combined)
	cmd.Stderr = io.MultiWriter(&stderr, combined)

	// Run the child process and wait for both pipes to drain
	runErr := cmd.Run()

	// Route stderr to the caller's sink, or to the diagnostic stream unless it is part of the combined output
	if stderr.Len() > 0 {
		if req.Stderr != nil {
			if _, err := req.Stderr.Write(stderr.Bytes()); err != nil && runErr == nil {
				runErr = fmt.Errorf("capturing stderr: %w", err)
			}
		} else if !req.CombinedOutput {
			r.diagnostics().Write(stderr.Bytes())
		}
	}

	if runErr != nil {
		return "", &ExecError{
			Command:  line,
			Message:  runErr.Error(),
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
			Combined: combined.String(),
			Err:      runErr,
		}
	}

	if req.CombinedOutput {
		return combined.String(), nil
	}
	return stdout.String(), nil
}

// Runs the requested command and terminates the process if it fails
func (r *Runner) MustRun(req Request) string {
	output, err := r.Run(req)
	if err != nil {
		var execErr *ExecError
		if errors.As(err, &execErr) {
			err = fmt.Errorf("command %s failed: %s", execErr.Command, execErr.Message)
		}
		r.fatal(err)
		return ""
	}
	return output
}

func (r *Runner) diagnostics() io.Writer {
	if r.Diagnostics == nil {
		return os.Stderr
	}
	return r.Diagnostics
}

func (r *Runner) fatal(err error) {
	if r.exit == nil {
		validation.ExitIfError(err)
		return
	}
	r.exit(err)
}

// Formats an argument vector for display, quoting any argument that would be ambiguous
func CommandLine(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		if arg == "" || strings.ContainsAny(arg, " \t\n\"'\\") {
			quoted[i] = strconv.Quote(arg)
		} else {
			quoted[i] = arg
		}
	}
	return strings.Join(quoted, " ")
}

// A bytes.Buffer that is safe for the concurrent writes made by the stdout and stderr copiers
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
