package models

import "math"

// MagneticSample holds one magnetometer reading from a survey recording.
type MagneticSample struct {
	TimestampNs int64   `json:"timestamp_ns"`
	MagX        float64 `json:"mag_x"` // µT (micro-tesla)
	MagY        float64 `json:"mag_y"`
	MagZ        float64 `json:"mag_z"`
	Accuracy    float64 `json:"accuracy"` // sensor-reported accuracy class
}

// Magnitude returns the scalar field strength |B| in µT.
func (m *MagneticSample) Magnitude() float64 {
	return math.Sqrt(m.MagX*m.MagX + m.MagY*m.MagY + m.MagZ*m.MagZ)
}

func (MagneticSample) CSVHeader() []string {
	return []string{"timestamp_ns", "mag_x", "mag_y", "mag_z", "accuracy"}
}

func (m *MagneticSample) CSVRow() []string {
	return []string{
		itoa64(m.TimestampNs),
		gtoa(m.MagX), gtoa(m.MagY), gtoa(m.MagZ),
		gtoa(m.Accuracy),
	}
}
