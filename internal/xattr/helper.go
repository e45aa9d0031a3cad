package xattr

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/macoscontainers/clearbusy/internal/process"
)

// The extended attribute that holds the Finder information record
const FinderInfo = "com.apple.FinderInfo"

// The location of the xattr helper shipped with macOS
const DefaultProgram = "/usr/bin/xattr"

// The diagnostic printed by xattr when a file lacks the requested attribute
const absentMarker = "No such xattr"

// Returned by ReadHex() when the file does not carry the requested attribute
var ErrAttributeAbsent = errors.New("attribute does not exist")

// Reads and writes extended attributes by invoking the xattr command-line tool
type Helper struct {

	// The path to the xattr program (defaults to DefaultProgram)
	Program string

	// Runs the xattr program
	Runner *process.Runner

	// Trace every xattr invocation
	Debug bool
}

// Retrieves the hex dump of the named attribute of the specified file
func (h *Helper) ReadHex(path string, name string) (string, error) {

	// Capture stderr so we can recognise a missing attribute
	stderr := &bytes.Buffer{}
	output, err := h.Runner.Run(process.Request{
		Argv:   []string{h.program(), "-px", name, path},
		Stderr: stderr,
		Debug:  h.Debug,
	})
	if err == nil {
		return output, nil
	}

	// A missing attribute is an expected condition rather than a failure
	if strings.Contains(stderr.String(), absentMarker) {
		return "", fmt.Errorf("%s on %s: %w", name, path, ErrAttributeAbsent)
	}

	// Surface whatever xattr had to say about the failure
	if detail := strings.TrimSpace(stderr.String()); detail != "" {
		return "", fmt.Errorf("%w (%s)", err, detail)
	}
	return "", err
}

// Replaces the named attribute of the specified file with the bytes represented by a hex string
func (h *Helper) WriteHex(path string, name string, value string) error {
	_, err := h.Runner.Run(process.Request{
		Argv:  []string{h.program(), "-wx", name, value, path},
		Debug: h.Debug,
	})
	return err
}

func (h *Helper) program() string {
	if h.Program == "" {
		return DefaultProgram
	}
	return h.Program
}
