package controller

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"ips-mapper/models"
	"ips-mapper/utils"
)

// GridBuilder lays a regular rectangular lattice over the bounding box of a
// set of position estimates and aggregates per-cell magnetic statistics.
// Pure; the same inputs always produce the same grid.
type GridBuilder struct {
	CellWidth  float64 // metres
	CellHeight float64
}

// Build computes the bounding box of the estimates and sizes the grid so
// every estimate falls inside some cell, max edges included.
func (b GridBuilder) Build(estimates []models.PositionEstimate) (*models.RectGrid, error) {
	if b.CellWidth <= 0 || b.CellHeight <= 0 {
		return nil, fmt.Errorf("cell %g x %g: %w", b.CellWidth, b.CellHeight, models.ErrInvalidCellSize)
	}
	if len(estimates) == 0 {
		return nil, models.ErrEmptyInput
	}

	xs := make([]float64, len(estimates))
	ys := make([]float64, len(estimates))
	for i, e := range estimates {
		xs[i] = e.X
		ys[i] = e.Y
	}

	minX, maxX := floats.Min(xs), floats.Max(xs)
	minY, maxY := floats.Min(ys), floats.Max(ys)

	cols := int(math.Ceil((maxX - minX) / b.CellWidth))
	if cols < 1 {
		cols = 1
	}
	rows := int(math.Ceil((maxY - minY) / b.CellHeight))
	if rows < 1 {
		rows = 1
	}

	grid := &models.RectGrid{
		OriginX:    minX,
		OriginY:    minY,
		CellWidth:  b.CellWidth,
		CellHeight: b.CellHeight,
		Cols:       cols,
		Rows:       rows,
	}
	utils.L().Debug("grid built              (origin=(%g,%g), cells=%dx%d)",
		minX, minY, cols, rows)
	return grid, nil
}

// Assign returns the containing cell for each estimate, in input order.
func (GridBuilder) Assign(grid *models.RectGrid, estimates []models.PositionEstimate) []models.CellIndex {
	cells := make([]models.CellIndex, len(estimates))
	for i, e := range estimates {
		cells[i] = grid.CellOf(e.X, e.Y)
	}
	return cells
}

// Heatmap aggregates the average magnetic magnitude per cell into a
// Rows×Cols dense matrix. Cells no estimate fell into hold NaN so they
// render as gaps rather than as zero-field readings.
func (GridBuilder) Heatmap(grid *models.RectGrid, estimates []models.PositionEstimate) *mat.Dense {
	sum := mat.NewDense(grid.Rows, grid.Cols, nil)
	count := mat.NewDense(grid.Rows, grid.Cols, nil)

	for _, e := range estimates {
		c := grid.CellOf(e.X, e.Y)
		sum.Set(c.Row, c.Col, sum.At(c.Row, c.Col)+e.Magnitude)
		count.Set(c.Row, c.Col, count.At(c.Row, c.Col)+1)
	}

	avg := mat.NewDense(grid.Rows, grid.Cols, nil)
	for r := 0; r < grid.Rows; r++ {
		for c := 0; c < grid.Cols; c++ {
			n := count.At(r, c)
			if n == 0 {
				avg.Set(r, c, math.NaN())
				continue
			}
			avg.Set(r, c, sum.At(r, c)/n)
		}
	}
	return avg
}
