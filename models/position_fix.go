package models

// PositionFix holds one ground-truth position measurement, typically a
// surveyor tapping a known waypoint on a floor plan.
type PositionFix struct {
	TimestampNs int64   `json:"timestamp_ns"`
	X           float64 `json:"x"` // metres, floor-plan frame
	Y           float64 `json:"y"`
	Floor       int     `json:"floor"`
	Type        string  `json:"type"` // waypoint, corrected, …
	Accuracy    float64 `json:"accuracy"`
}

func (PositionFix) CSVHeader() []string {
	return []string{"timestamp_ns", "x", "y", "floor", "type", "accuracy"}
}

func (p *PositionFix) CSVRow() []string {
	return []string{
		itoa64(p.TimestampNs),
		gtoa(p.X), gtoa(p.Y),
		itoa(p.Floor),
		p.Type,
		gtoa(p.Accuracy),
	}
}
