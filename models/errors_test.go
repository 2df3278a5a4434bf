package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMalformedRecordingErrorMessages(t *testing.T) {
	cause := errors.New("boom")

	headerErr := &MalformedRecordingError{Source: "m.csv", Column: "z", Err: cause}
	assert.Equal(t, `m.csv: column "z": boom`, headerErr.Error())

	rowErr := &MalformedRecordingError{Source: "m.csv", Row: 7, Column: "x", Err: cause}
	assert.Equal(t, `m.csv: row 7, column "x": boom`, rowErr.Error())

	rawErr := &MalformedRecordingError{Source: "m.csv", Row: 7, Err: cause}
	assert.Equal(t, "m.csv: row 7: boom", rawErr.Error())

	require.ErrorIs(t, fmt.Errorf("load: %w", rowErr), cause)
}

func TestAlignmentErrorMessages(t *testing.T) {
	unindexed := &AlignmentError{SampleIndex: -1, TimestampNs: 42}
	assert.NotContains(t, unindexed.Error(), "sample -1")

	indexed := &AlignmentError{SampleIndex: 3, TimestampNs: 42}
	assert.Contains(t, indexed.Error(), "sample 3")
	assert.Contains(t, indexed.Error(), "t=42ns")
}
