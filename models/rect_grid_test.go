package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectGridExtent(t *testing.T) {
	g := &RectGrid{OriginX: -1, OriginY: 2, CellWidth: 0.5, CellHeight: 2, Cols: 4, Rows: 3}

	assert.Equal(t, 2.0, g.Width())
	assert.Equal(t, 6.0, g.Height())

	assert.True(t, g.Contains(-1, 2))   // min corner
	assert.True(t, g.Contains(1, 8))    // max corner, inclusive
	assert.True(t, g.Contains(0, 5))    // interior
	assert.False(t, g.Contains(1.1, 5)) // past max x
	assert.False(t, g.Contains(0, 1.9)) // below min y
}

func TestRectGridCellOf(t *testing.T) {
	g := &RectGrid{OriginX: 0, OriginY: 0, CellWidth: 1, CellHeight: 1, Cols: 3, Rows: 2}

	cases := []struct {
		name string
		x, y float64
		want CellIndex
	}{
		{"origin", 0, 0, CellIndex{0, 0}},
		{"interior", 1.5, 0.5, CellIndex{0, 1}},
		{"cell boundary goes right", 1, 0, CellIndex{0, 1}},
		{"max corner clamps", 3, 2, CellIndex{1, 2}},
		{"below range clamps", -5, -5, CellIndex{0, 0}},
		{"above range clamps", 99, 99, CellIndex{1, 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, g.CellOf(tc.x, tc.y))
		})
	}
}

func TestRecordingSortInvariant(t *testing.T) {
	rec := NewMagneticRecording("m.csv", []MagneticSample{
		{TimestampNs: 30}, {TimestampNs: 10}, {TimestampNs: 20},
	})
	start, end := rec.TimeRange()
	require.Equal(t, int64(10), start)
	require.Equal(t, int64(30), end)

	empty := &MagneticRecording{}
	start, end = empty.TimeRange()
	require.Zero(t, start)
	require.Zero(t, end)
}
