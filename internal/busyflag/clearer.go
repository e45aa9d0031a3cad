package busyflag

import (
	"errors"

	"github.com/hashicorp/go-multierror"
	"github.com/macoscontainers/clearbusy/internal/filesystem"
	"github.com/macoscontainers/clearbusy/internal/finderinfo"
	"github.com/macoscontainers/clearbusy/internal/xattr"
	"github.com/rs/zerolog"
)

// Reads and writes the hex dumps of extended attributes
type AttributeStore interface {
	ReadHex(path string, name string) (string, error)
	WriteHex(path string, name string, value string) error
}

// Provides functionality for clearing the busy bit in the Finder information of files
type Clearer struct {

	// Where the Finder information records are read from and written to
	Store AttributeStore

	// Receives per-file diagnostics
	Logger zerolog.Logger

	// Report each file whose busy bit was cleared
	Debug bool
}

// Clears the busy bit of each file in turn, continuing past any failures.
// The returned error aggregates the failures of every file that could not be processed.
func (c *Clearer) ClearFiles(paths []string) error {
	var result *multierror.Error
	for _, path := range paths {
		if err := c.ClearFile(path); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// Clears the busy bit of a single file. Files without Finder information are skipped without error.
func (c *Clearer) ClearFile(path string) error {

	// Don't bother invoking xattr for files that don't exist
	if !filesystem.Exists(path) {
		return c.fail(&FileError{Path: path, Kind: ErrReadFailure, Err: errors.New("no such file or directory")})
	}

	// Attempt to read the existing Finder information
	dump, err := c.Store.ReadHex(path, xattr.FinderInfo)
	if errors.Is(err, xattr.ErrAttributeAbsent) {
		return nil
	} else if err != nil {
		return c.fail(&FileError{Path: path, Kind: ErrReadFailure, Err: err})
	}

	// Parse the record, refusing anything larger than we know how to handle
	record, err := finderinfo.Decode(dump)
	if err != nil {
		var verr *finderinfo.ValidationError
		if errors.As(err, &verr) && verr.Kind == finderinfo.LengthExceeded {
			c.Logger.Warn().Str("file", path).Int("length", verr.Length).Msg("unexpected Finder info length, skipping")
			return &FileError{Path: path, Kind: ErrUnexpectedLength, Length: verr.Length, Err: err}
		}
		return c.fail(&FileError{Path: path, Kind: ErrReadFailure, Err: err})
	}

	// Clear the busy bit and write the record back
	record.ClearBusyBit()
	if err := c.Store.WriteHex(path, xattr.FinderInfo, record.Encode()); err != nil {
		return c.fail(&FileError{Path: path, Kind: ErrWriteFailure, Err: err})
	}

	if c.Debug {
		c.Logger.Info().Str("file", path).Msg("cleared busy flag")
	}
	return nil
}

// Logs an operational error and returns it
func (c *Clearer) fail(err *FileError) error {
	c.Logger.Error().Str("file", err.Path).Msgf("%s: %v", err.Kind, err.Err)
	return err
}
