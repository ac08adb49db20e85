package cobs

import (
	"bytes"
)

// Scanner walks the frames of an in-memory COBS stream.  Use Reset to point it
// at an encoded buffer, then call Next until it returns false.
//
//	var s cobs.Scanner
//	s.Reset(encoded)
//	for s.Next() {
//		err := s.Decode(&record)
//		...
//	}
type Scanner struct {
	rest  []byte
	frame []byte
}

// Reset starts scanning encoded from the beginning.
func (s *Scanner) Reset(encoded []byte) {
	s.rest = encoded
	s.frame = nil
}

// Next advances to the next terminated frame.  It returns false once no
// delimiter is left; whatever follows the last delimiter is available from
// Rest.
func (s *Scanner) Next() bool {
	i := bytes.IndexByte(s.rest, delimiter)
	if i < 0 {
		s.frame = nil
		return false
	}
	s.frame = s.rest[:i+1]
	s.rest = s.rest[i+1:]
	return true
}

// Encoded returns the current frame, including its delimiter.
func (s *Scanner) Encoded() []byte {
	return s.frame
}

// Decode writes the payload of the current frame into record.  Nothing is
// written if the frame is malformed.
func (s *Scanner) Decode(record *bytes.Buffer) error {
	payload, err := DecodeFrame(s.frame)
	if err != nil {
		return err
	}
	record.Write(payload)
	return nil
}

// Rest returns the bytes after the last frame returned by Next.
func (s *Scanner) Rest() []byte {
	return s.rest
}
