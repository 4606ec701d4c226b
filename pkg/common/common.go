// 29 Apr 2020

package common

import (
	"errors"
	"io"
	"syscall"
)

const (
	ExitSuccess = iota
	ExitFailure
	ExitUsageError
)

// IsBrokenPipe reports whether err comes from writing to a closed pipe,
// as when output goes to head. Commands treat this as a normal exit.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
