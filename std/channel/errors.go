package channel

import "errors"

var ErrClosed = errors.New("channel is closed")

var ErrNonWritable = errors.New("channel is not writable")

var ErrOverflow = errors.New("combined channel size overflows int64")

var ErrOutsideWindow = errors.New("position is before the start of the window")

type ErrInvalidArgument struct {
	Msg string
}

func (e ErrInvalidArgument) Error() string {
	return "invalid argument: " + e.Msg
}
