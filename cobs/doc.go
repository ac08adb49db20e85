// Package cobs provides a Go implementation of Consistent Overhead Byte
// Stuffing (COBS).  Encoding removes every zero byte from a payload, so that a
// single `0x00` can be used as an unambiguous frame delimiter on a byte stream
// such as a serial link.
//
// Encode turns one payload into one frame, including its trailing zero.  A
// Decoder accepts arbitrarily fragmented chunks of a stream, buffers whatever
// is incomplete, and hands back every payload whose frame has been terminated.
// Malformed frames are dropped and the decoder resynchronizes on the next zero
// byte; install a DropHandler if you need to know about them.
package cobs
