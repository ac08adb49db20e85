package cobs

import (
	"bytes"
)

// DropHandler is told about every frame that a Decoder discards.  frame is the
// raw encoded span that was dropped, and is only valid for the duration of the
// call.  err is one of ErrZeroLength, ErrTruncated, ErrUnexpectedZero, or
// ErrFrameTooLarge.
type DropHandler func(frame []byte, err error)

// DecoderOption configures a Decoder.
type DecoderOption func(d *Decoder)

// WithDropHandler installs a hook that is called for each malformed frame.
// Without one, malformed frames are dropped silently.
func WithDropHandler(h DropHandler) DecoderOption {
	return func(d *Decoder) {
		d.onDrop = h
	}
}

// WithMaxBufferSize bounds the number of unterminated bytes a Decoder will
// hold.  When the limit is exceeded the pending bytes are dropped, and so is
// the rest of the stream up to and including the next zero byte.  Zero, the
// default, means no limit.
func WithMaxBufferSize(n int) DecoderOption {
	return func(d *Decoder) {
		d.maxBuffer = n
	}
}

// Decoder reassembles payloads from a COBS-encoded byte stream that arrives in
// arbitrary chunks.  The zero value is ready to use.  A Decoder must only be
// fed a single stream, and must not be used from multiple goroutines at once.
type Decoder struct {
	// buf[off:] holds the bytes that have not been resolved into a frame yet.
	// buf[off:scanned] is known not to contain a delimiter.
	buf     []byte
	off     int
	scanned int

	// Set after an oversized frame, until its delimiter shows up.
	discarding bool

	onDrop    DropHandler
	maxBuffer int
}

// NewDecoder returns a Decoder with an empty buffer and the given options.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode appends chunk to the stream and returns the payloads of every frame
// that is now complete, in stream order.  It returns nil if no frame was
// completed by this chunk.  Incomplete frames are kept for later calls.
// The returned slices do not alias chunk or the decoder's buffer.
func (d *Decoder) Decode(chunk []byte) [][]byte {
	if d.discarding {
		i := bytes.IndexByte(chunk, delimiter)
		if i < 0 {
			return nil
		}
		d.discarding = false
		chunk = chunk[i+1:]
	}
	d.buf = append(d.buf, chunk...)

	var packets [][]byte
	for {
		i := bytes.IndexByte(d.buf[d.scanned:], delimiter)
		if i < 0 {
			break
		}

		end := d.scanned + i + 1
		frame := d.buf[d.off:end]
		d.off, d.scanned = end, end

		payload, err := DecodeFrame(frame)
		if err != nil {
			d.drop(frame, err)
			continue
		}
		packets = append(packets, payload)
	}
	d.scanned = len(d.buf)

	if d.maxBuffer > 0 && d.Buffered() > d.maxBuffer {
		d.drop(d.buf[d.off:], ErrFrameTooLarge)
		d.Reset()
		d.discarding = true
	}
	d.compact()
	return packets
}

// Buffered returns the number of bytes that belong to a frame whose delimiter
// has not arrived yet.
func (d *Decoder) Buffered() int {
	return len(d.buf) - d.off
}

// Reset discards any buffered bytes.  Options are kept.
func (d *Decoder) Reset() {
	d.buf = d.buf[:0]
	d.off = 0
	d.scanned = 0
	d.discarding = false
}

func (d *Decoder) drop(frame []byte, err error) {
	if d.onDrop != nil {
		d.onDrop(frame, err)
	}
}

// compact moves the pending bytes to the front of buf once the consumed prefix
// is at least as large as what is left.
func (d *Decoder) compact() {
	if d.off == 0 {
		return
	}
	if d.off == len(d.buf) {
		d.buf = d.buf[:0]
		d.off, d.scanned = 0, 0
		return
	}
	if d.off >= len(d.buf)-d.off {
		n := copy(d.buf, d.buf[d.off:])
		d.buf = d.buf[:n]
		d.scanned -= d.off
		d.off = 0
	}
}

// DecodeFrame decodes a single frame, which must include its trailing zero
// byte.  Anything after the first zero byte is ignored.  A malformed frame
// yields a nil payload and the reason it was rejected.
func DecodeFrame(frame []byte) ([]byte, error) {
	payload := make([]byte, 0, len(frame))
	for len(frame) > 0 {
		length := int(frame[0])
		frame = frame[1:]
		if length == 0 {
			return nil, ErrZeroLength
		}
		// The run must be followed by at least one more byte: either the
		// delimiter or the next length prefix.
		if len(frame) < length {
			return nil, ErrTruncated
		}

		run := frame[:length-1]
		if bytes.IndexByte(run, delimiter) >= 0 {
			return nil, ErrUnexpectedZero
		}
		payload = append(payload, run...)
		frame = frame[length-1:]

		if frame[0] == delimiter {
			return payload, nil
		}
		if length != fullRun {
			payload = append(payload, 0)
		}
	}
	return nil, ErrTruncated
}
