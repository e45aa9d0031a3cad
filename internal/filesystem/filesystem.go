package filesystem

import (
	"errors"
	"io/fs"
	"os"
)

// Determines if the specified file or directory exists, without following a trailing symlink
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}
