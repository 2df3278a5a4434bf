package models

import "math"

// RectGrid is a regular rectangular lattice over a bounding box.
// origin + (Cols×CellWidth, Rows×CellHeight) covers every point the grid
// was built from.
type RectGrid struct {
	OriginX    float64 `json:"origin_x"`
	OriginY    float64 `json:"origin_y"`
	CellWidth  float64 `json:"cell_width"`
	CellHeight float64 `json:"cell_height"`
	Cols       int     `json:"cols"`
	Rows       int     `json:"rows"`
}

// CellIndex addresses one grid cell.
type CellIndex struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Width returns the total grid extent along x.
func (g *RectGrid) Width() float64 { return float64(g.Cols) * g.CellWidth }

// Height returns the total grid extent along y.
func (g *RectGrid) Height() float64 { return float64(g.Rows) * g.CellHeight }

// Contains reports whether (x, y) lies inside the grid extent,
// max edges included.
func (g *RectGrid) Contains(x, y float64) bool {
	return x >= g.OriginX && x <= g.OriginX+g.Width() &&
		y >= g.OriginY && y <= g.OriginY+g.Height()
}

// CellOf returns the cell containing (x, y). Points exactly on the max edge
// land in the last row/column; the result is clamped so it is always a
// valid index for points inside the extent.
func (g *RectGrid) CellOf(x, y float64) CellIndex {
	col := int(math.Floor((x - g.OriginX) / g.CellWidth))
	row := int(math.Floor((y - g.OriginY) / g.CellHeight))
	if col < 0 {
		col = 0
	} else if col >= g.Cols {
		col = g.Cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.Rows {
		row = g.Rows - 1
	}
	return CellIndex{Row: row, Col: col}
}
