package models

import (
	"strconv"
)

// ─── shared formatting helpers (package-private) ────────────────────────

func itoa(v int) string     { return strconv.Itoa(v) }
func itoa64(v int64) string { return strconv.FormatInt(v, 10) }

// gtoa formats a float with the shortest representation that parses back
// exactly, so exported rows round-trip the loaded values bit-for-bit.
func gtoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// CSVRowWriter is the interface every exportable model must satisfy.
type CSVRowWriter interface {
	CSVHeader() []string
	CSVRow() []string
}
