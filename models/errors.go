package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the recoverable failure kinds the pipeline can hit.
// All are matched with errors.Is; none is fatal inside the core.
var (
	// ErrEmptyRecording is returned when a source contains zero data rows.
	ErrEmptyRecording = errors.New("recording contains no samples")

	// ErrEmptyInput is returned when grid building receives zero estimates.
	ErrEmptyInput = errors.New("no position estimates given")

	// ErrInvalidCellSize is returned for non-positive grid cell dimensions.
	ErrInvalidCellSize = errors.New("cell size must be strictly positive")

	// ErrNoOverlap is returned when the magnetic and reference recordings
	// share no portion of their timestamp ranges at all.
	ErrNoOverlap = errors.New("recordings have no overlapping time range")
)

// MalformedRecordingError reports a structural problem in a source file:
// a missing required column, or a field that failed numeric parsing.
// Row is the 1-based data row (0 for header-level problems).
type MalformedRecordingError struct {
	Source string
	Row    int
	Column string
	Err    error
}

func (e *MalformedRecordingError) Error() string {
	switch {
	case e.Column == "":
		return fmt.Sprintf("%s: row %d: %v", e.Source, e.Row, e.Err)
	case e.Row == 0:
		return fmt.Sprintf("%s: column %q: %v", e.Source, e.Column, e.Err)
	default:
		return fmt.Sprintf("%s: row %d, column %q: %v", e.Source, e.Row, e.Column, e.Err)
	}
}

func (e *MalformedRecordingError) Unwrap() error { return e.Err }

// AlignmentError reports a magnetic sample for which no reference position
// could be matched within the strategy's alignment rules. SampleIndex is
// filled in by the calculator; strategies leave it at -1.
type AlignmentError struct {
	SampleIndex int
	TimestampNs int64
}

func (e *AlignmentError) Error() string {
	if e.SampleIndex < 0 {
		return fmt.Sprintf("no reference position aligns with sample at t=%dns", e.TimestampNs)
	}
	return fmt.Sprintf("no reference position aligns with sample %d at t=%dns", e.SampleIndex, e.TimestampNs)
}
