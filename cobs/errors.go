package cobs

import (
	"github.com/go-pantheon/fabrica-util/errors"
)

// These are the reasons a frame can be dropped.  The Decoder never returns
// them; they are handed to the DropHandler, and returned by DecodeFrame.
var (
	// ErrZeroLength is reported when a zero byte appears where a length
	// prefix was expected.
	ErrZeroLength = errors.New("cobs: zero length prefix")
	// ErrTruncated is reported when a length prefix announces more bytes than
	// the frame contains.
	ErrTruncated = errors.New("cobs: frame truncated")
	// ErrUnexpectedZero is reported when a data run contains a zero byte.
	ErrUnexpectedZero = errors.New("cobs: unexpected zero in data run")
	// ErrFrameTooLarge is reported when the unterminated tail of the stream
	// grows past the decoder's maximum buffer size.
	ErrFrameTooLarge = errors.New("cobs: frame exceeds buffer limit")

	// ErrShortWrite is returned by Writer when the underlying writer accepts
	// fewer bytes than the encoded frame.
	ErrShortWrite = errors.New("cobs: short write")
)
