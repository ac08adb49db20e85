package cobs_test

import (
	"bytes"
	"testing"

	"github.com/dcreager/cobs-go/cobs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkRecordBuilder(t require.TestingT, inputList [][]byte) {
	var builder cobs.RecordBuilder
	var encoded bytes.Buffer
	for _, record := range inputList {
		builder.Write(record)
		builder.FinishRecord()
	}
	require.Equal(t, len(inputList), builder.Records())
	builder.Encode(&encoded)

	var decoded bytes.Buffer
	var scanner cobs.Scanner
	scanner.Reset(encoded.Bytes())
	actual := [][]byte{}
	for scanner.Next() {
		decoded.Reset()
		err := scanner.Decode(&decoded)
		require.NoError(t, err)
		actual = append(actual, append([]byte{}, decoded.Bytes()...))
	}
	assert.Empty(t, scanner.Rest())

	require.Len(t, actual, len(inputList))
	for i := range inputList {
		assert.Equal(t, inputList[i], actual[i])
	}
}

func TestRecordBuilder(t *testing.T) {
	testCases := [][][]byte{
		{},
		{[]byte("hello"), []byte("there")},
		{[]byte("what is\x00going on")},
		{{}, []byte("after empty"), {}},
		shortTestCaseInputs(),
	}
	for i := range testCases {
		checkRecordBuilder(t, testCases[i])
	}
}

func TestRecordBuilderIgnoresUnfinishedRecord(t *testing.T) {
	var builder cobs.RecordBuilder
	builder.WriteString("done")
	builder.FinishRecord()
	builder.WriteString("pending")

	var encoded bytes.Buffer
	builder.Encode(&encoded)
	assert.Equal(t, "\x05done\x00", encoded.String())

	builder.Reset()
	assert.Equal(t, 0, builder.Records())
	assert.Equal(t, 0, builder.Len())
}

func TestScannerMalformedFrame(t *testing.T) {
	var s cobs.Scanner
	s.Reset([]byte("\x05ab\x00\x02c\x00"))

	var decoded bytes.Buffer
	require.True(t, s.Next())
	assert.Equal(t, "\x05ab\x00", string(s.Encoded()))
	assert.Equal(t, cobs.ErrTruncated, s.Decode(&decoded))
	assert.Equal(t, 0, decoded.Len())

	require.True(t, s.Next())
	require.NoError(t, s.Decode(&decoded))
	assert.Equal(t, "c", decoded.String())

	assert.False(t, s.Next())
	assert.Nil(t, s.Encoded())
}
