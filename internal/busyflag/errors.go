package busyflag

import (
	"errors"
	"fmt"
)

// Classes of per-file operational error
var (

	// xattr failed to read the record for any reason other than the attribute being absent
	ErrReadFailure = errors.New("failed to read Finder info")

	// The record was larger than a Finder information record can be
	ErrUnexpectedLength = errors.New("unexpected Finder info length")

	// xattr failed to write the updated record
	ErrWriteFailure = errors.New("failed to write Finder info")
)

// Describes an operational error encountered while processing a single file
type FileError struct {

	// The file being processed
	Path string

	// One of ErrReadFailure, ErrUnexpectedLength or ErrWriteFailure
	Kind error

	// The observed record length in bytes, for ErrUnexpectedLength
	Length int

	// The underlying error
	Err error
}

func (e *FileError) Error() string {
	if e.Kind == ErrUnexpectedLength {
		return fmt.Sprintf("%s: %s (%d bytes)", e.Path, e.Kind, e.Length)
	}
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Kind, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Allows errors.Is() to match the error class
func (e *FileError) Is(target error) bool {
	return target == e.Kind
}
