package debounce

import (
	"github.com/pkg/errors"
)

// ErrInvalidArgument is returned when a debouncer or memoizer is constructed
// with a nil function. All other malformed input is normalized instead.
var ErrInvalidArgument = errors.New("invalid argument")

func invalidArgument(msg string) error {
	return errors.Wrap(ErrInvalidArgument, msg)
}
