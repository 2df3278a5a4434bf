package models

import (
	"sort"

	"github.com/google/uuid"
)

// MagneticRecording is an ordered magnetometer recording loaded from one
// source file. Samples are sorted ascending by timestamp (stable, so rows
// sharing a timestamp keep their file order). Read-only after construction.
type MagneticRecording struct {
	ID      uuid.UUID
	Source  string
	Samples []MagneticSample
}

// NewMagneticRecording assigns an ID and establishes the timestamp order
// invariant over the given samples.
func NewMagneticRecording(source string, samples []MagneticSample) *MagneticRecording {
	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].TimestampNs < samples[j].TimestampNs
	})
	return &MagneticRecording{
		ID:      uuid.New(),
		Source:  source,
		Samples: samples,
	}
}

// TimeRange returns the first and last sample timestamps.
// Both are zero for an empty recording.
func (r *MagneticRecording) TimeRange() (startNs, endNs int64) {
	if len(r.Samples) == 0 {
		return 0, 0
	}
	return r.Samples[0].TimestampNs, r.Samples[len(r.Samples)-1].TimestampNs
}

// PositionRecording is the ground-truth counterpart of a MagneticRecording.
type PositionRecording struct {
	ID     uuid.UUID
	Source string
	Fixes  []PositionFix
}

func NewPositionRecording(source string, fixes []PositionFix) *PositionRecording {
	sort.SliceStable(fixes, func(i, j int) bool {
		return fixes[i].TimestampNs < fixes[j].TimestampNs
	})
	return &PositionRecording{
		ID:     uuid.New(),
		Source: source,
		Fixes:  fixes,
	}
}

func (r *PositionRecording) TimeRange() (startNs, endNs int64) {
	if len(r.Fixes) == 0 {
		return 0, 0
	}
	return r.Fixes[0].TimestampNs, r.Fixes[len(r.Fixes)-1].TimestampNs
}
