package cobs

import (
	"io"

	"github.com/go-pantheon/fabrica-util/errors"
)

const defaultReadSize = 4096

// maxEmptyReads is how many consecutive (0, nil) reads Reader tolerates.
const maxEmptyReads = 100

// ReaderOption configures a Reader.
type ReaderOption func(r *Reader)

// WithReadSize sets how many bytes Reader asks its source for at a time.
func WithReadSize(n int) ReaderOption {
	return func(r *Reader) {
		r.readSize = n
	}
}

// WithDecoderOptions configures the Decoder behind a Reader.
func WithDecoderOptions(opts ...DecoderOption) ReaderOption {
	return func(r *Reader) {
		r.decoderOpts = append(r.decoderOpts, opts...)
	}
}

// Reader pulls a COBS stream from an io.Reader and returns one payload at a
// time.
type Reader struct {
	src         io.Reader
	dec         *Decoder
	buf         []byte
	queue       [][]byte
	err         error
	readSize    int
	decoderOpts []DecoderOption
}

// NewReader returns a Reader that decodes the COBS stream read from src.
func NewReader(src io.Reader, opts ...ReaderOption) *Reader {
	r := &Reader{
		src:      src,
		readSize: defaultReadSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.readSize <= 0 {
		r.readSize = defaultReadSize
	}
	r.dec = NewDecoder(r.decoderOpts...)
	r.buf = make([]byte, r.readSize)
	return r
}

// ReadPacket returns the next payload in the stream.  It returns io.EOF when
// the source is exhausted on a frame boundary, and io.ErrUnexpectedEOF when it
// ends in the middle of a frame.  A source that keeps returning no data and no
// error yields io.ErrNoProgress.  Malformed frames are skipped.
func (r *Reader) ReadPacket() ([]byte, error) {
	empty := 0
	for len(r.queue) == 0 {
		if r.err != nil {
			return nil, r.err
		}

		n, err := r.src.Read(r.buf)
		if n > 0 {
			empty = 0
			r.queue = append(r.queue, r.dec.Decode(r.buf[:n])...)
		}
		if err != nil {
			r.err = r.finish(err)
			continue
		}
		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return nil, io.ErrNoProgress
			}
		}
	}

	packet := r.queue[0]
	r.queue[0] = nil
	r.queue = r.queue[1:]
	return packet, nil
}

func (r *Reader) finish(err error) error {
	if err != io.EOF {
		return errors.Wrap(err, "cobs: read stream failed")
	}
	if r.dec.Buffered() > 0 {
		return io.ErrUnexpectedEOF
	}
	return io.EOF
}

// Writer encodes payloads onto an io.Writer, one frame per WritePacket call.
type Writer struct {
	w       io.Writer
	scratch []byte
}

// NewWriter returns a Writer that sends each frame to w in a single Write.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w: w,
	}
}

// WritePacket encodes p and writes the whole frame to the underlying writer.
// ErrShortWrite is returned if the writer accepts only part of the frame
// without reporting an error.
func (w *Writer) WritePacket(p []byte) error {
	w.scratch = AppendEncode(w.scratch[:0], p)

	n, err := w.w.Write(w.scratch)
	if err != nil {
		return errors.Wrap(err, "cobs: write frame failed")
	}

	if n != len(w.scratch) {
		return ErrShortWrite
	}

	return nil
}
