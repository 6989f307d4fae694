package processor

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTarget = errors.New("path is neither a file nor a directory")
	ErrProcessing    = errors.New("processing failed")
)

// FileError reports the file a pipeline step failed on. It matches both
// ErrProcessing and the underlying cause.
type FileError struct {
	Action Action
	Path   string
	Err    error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Action, e.Path, e.Err)
}

func (e *FileError) Unwrap() []error {
	return []error{ErrProcessing, e.Err}
}
