package views

// CSVSchema defines the column layout for each pipeline output.
// This file serves as the single source of truth for column ordering.

// OutputKind identifies an output artifact for schema lookups.
type OutputKind int

const (
	OutputMagnetics OutputKind = iota
	OutputPositions
	OutputEstimates
	OutputGrid
)

var outputNames = map[OutputKind]string{
	OutputMagnetics: "magnetics",
	OutputPositions: "positions",
	OutputEstimates: "estimates",
	OutputGrid:      "grid",
}

func (k OutputKind) String() string {
	if n, ok := outputNames[k]; ok {
		return n
	}
	return "unknown"
}

// SchemaColumns returns the canonical column list per output.
// The actual header writing is handled by each model's CSVHeader() method;
// this is kept here as a human-readable reference and for validation.
var SchemaColumns = map[OutputKind][]string{
	OutputMagnetics: {
		"timestamp_ns", "mag_x", "mag_y", "mag_z", "accuracy",
	},
	OutputPositions: {
		"timestamp_ns", "x", "y", "floor", "type", "accuracy",
	},
	OutputEstimates: {
		"sample_index", "timestamp_ns", "x", "y", "magnitude",
	},
	OutputGrid: {
		"row", "col", "cell_x", "cell_y", "avg_magnitude",
	},
}
