package models

// PositionEstimate is one computed planar position for a magnetic sample.
// It carries the sample's field magnitude so downstream grid aggregation
// needs no back-reference into the source recording.
type PositionEstimate struct {
	SampleIndex int     `json:"sample_index"` // index into the source recording
	TimestampNs int64   `json:"timestamp_ns"`
	X           float64 `json:"x"` // metres, floor-plan frame
	Y           float64 `json:"y"`
	Magnitude   float64 `json:"magnitude"` // |B| of the source sample, µT
}

func (PositionEstimate) CSVHeader() []string {
	return []string{"sample_index", "timestamp_ns", "x", "y", "magnitude"}
}

func (e *PositionEstimate) CSVRow() []string {
	return []string{
		itoa(e.SampleIndex),
		itoa64(e.TimestampNs),
		gtoa(e.X), gtoa(e.Y),
		gtoa(e.Magnitude),
	}
}
