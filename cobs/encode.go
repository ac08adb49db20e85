package cobs

import (
	"bytes"
)

const delimiter = 0x00

// maxRun is the longest chunk of non-zero bytes that a single length prefix
// can describe.  A prefix of fullRun announces a chunk of exactly maxRun bytes
// that is not followed by an implied zero.
const maxRun = 0xfe
const fullRun = 0xff

// MaxEncodedLen returns the largest frame that Encode can produce for a
// payload of n bytes, trailing delimiter included.
func MaxEncodedLen(n int) int {
	return n + n/maxRun + 2
}

// Encode returns the COBS frame for payload.  The result contains no zero
// bytes except for the trailing delimiter.  Every payload, including the empty
// one, can be encoded.
func Encode(payload []byte) []byte {
	return AppendEncode(make([]byte, 0, MaxEncodedLen(len(payload))), payload)
}

// AppendEncode appends the COBS frame for payload to dst and returns the
// extended buffer.
func AppendEncode(dst, payload []byte) []byte {
	for {
		end := bytes.IndexByte(payload, delimiter)
		if end < 0 {
			dst = appendSegment(dst, payload)
			return append(dst, delimiter)
		}

		dst = appendSegment(dst, payload[:end])
		if end > 0 && end%maxRun == 0 {
			// The segment ended on a full chunk, whose prefix implies no zero.
			// Spell out the zero we just split on as an empty segment.
			dst = append(dst, 1)
		}
		payload = payload[end+1:]
	}
}

// appendSegment writes one zero-free segment of the payload, split into chunks
// of at most maxRun bytes.
func appendSegment(dst, segment []byte) []byte {
	if len(segment) == 0 {
		return append(dst, 1)
	}

	for len(segment) > 0 {
		n := min(len(segment), maxRun)
		dst = append(dst, byte(n+1))
		dst = append(dst, segment[:n]...)
		segment = segment[n:]
	}
	return dst
}
