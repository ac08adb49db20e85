package cobs

import (
	"bytes"
)

// RecordBuilder collects several payloads in one bytes.Buffer and frames them
// all at once.  Write a payload's content through the embedded buffer, call
// FinishRecord to close it, and call Encode when every payload is in.
type RecordBuilder struct {
	bytes.Buffer
	start   int
	records []span
}

type span struct {
	start, end int
}

// FinishRecord closes the payload written since the previous call.  Nothing is
// encoded until Encode.
func (rb *RecordBuilder) FinishRecord() {
	end := rb.Len()
	rb.records = append(rb.records, span{rb.start, end})
	rb.start = end
}

// Records returns the number of finished records.
func (rb *RecordBuilder) Records() int {
	return len(rb.records)
}

// Encode writes one frame per finished record into dest.  Content written
// after the last FinishRecord is not included.
func (rb *RecordBuilder) Encode(dest *bytes.Buffer) {
	content := rb.Bytes()
	for _, r := range rb.records {
		frame := Encode(content[r.start:r.end])
		dest.Write(frame)
	}
}

// Reset discards all content and finished records.
func (rb *RecordBuilder) Reset() {
	rb.Buffer.Reset()
	rb.start = 0
	rb.records = rb.records[:0]
}
