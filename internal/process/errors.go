package process

// Describes a command that could not be launched or did not exit successfully
type ExecError struct {

	// The command line that was run
	Command string

	// The execution failure as reported by os/exec (e.g. "exit status 1")
	Message string

	// The output captured before the command failed
	Stdout   string
	Stderr   string
	Combined string

	// The underlying os/exec error
	Err error
}

func (e *ExecError) Error() string {
	if e.Command == "" {
		return e.Message
	}
	return e.Command + ": " + e.Message
}

func (e *ExecError) Unwrap() error {
	return e.Err
}
