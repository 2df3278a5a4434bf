package views

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"sync"

	"gonum.org/v1/gonum/mat"

	"ips-mapper/models"
	"ips-mapper/utils"
)

// CSVWriter is a concurrency-safe, buffered CSV writer shared by all
// pipeline exports.
//
//   - Underlying bufio.Writer absorbs write syscall overhead.
//   - Mutex is held only for the duration of a single row encode.
//   - Flush() is the caller's responsibility, so row writes never block
//     on I/O.
type CSVWriter struct {
	mu   sync.Mutex
	file *os.File
	buf  *bufio.Writer
	csv  *csv.Writer
	rows uint64
}

// NewCSVWriter opens (or creates) a file and writes the CSV header row.
func NewCSVWriter(path string, bufSizeBytes int, writeHeader bool, header []string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv create %s: %w", path, err)
	}

	if bufSizeBytes <= 0 {
		bufSizeBytes = 256 * 1024 // 256 KB default
	}

	bw := bufio.NewWriterSize(f, bufSizeBytes)
	cw := csv.NewWriter(bw)

	w := &CSVWriter{
		file: f,
		buf:  bw,
		csv:  cw,
	}

	if writeHeader && len(header) > 0 {
		if err := cw.Write(header); err != nil {
			f.Close()
			return nil, fmt.Errorf("csv write header: %w", err)
		}
	}

	return w, nil
}

// WriteRow appends a single CSV row. Thread-safe.
func (w *CSVWriter) WriteRow(row []string) {
	w.mu.Lock()
	_ = w.csv.Write(row) // error is buffered; checked on Flush
	w.rows++
	w.mu.Unlock()
}

// Flush pushes the buffered data to the OS and reports any deferred
// encode error.
func (w *CSVWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return err
	}
	return w.buf.Flush()
}

// Close flushes remaining data and closes the file.
func (w *CSVWriter) Close() error {
	if err := w.Flush(); err != nil {
		w.file.Close()
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}

// Rows returns the number of data rows written (excludes header).
func (w *CSVWriter) Rows() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rows
}

// ─── pipeline exports ───────────────────────────────────────────────────

// ExportEstimates writes estimates.csv for a session.
func ExportEstimates(path string, estimates []models.PositionEstimate, cfg utils.CSVStorageConfig) error {
	w, err := NewCSVWriter(path, cfg.BufferSizeKB*1024, cfg.WriteHeader,
		models.PositionEstimate{}.CSVHeader())
	if err != nil {
		return err
	}
	for i := range estimates {
		w.WriteRow(estimates[i].CSVRow())
	}
	return w.Close()
}

// ExportGrid writes grid.csv: one row per cell with its min corner and the
// aggregated average magnitude. Empty cells export an empty value field.
func ExportGrid(path string, grid *models.RectGrid, heat *mat.Dense, cfg utils.CSVStorageConfig) error {
	w, err := NewCSVWriter(path, cfg.BufferSizeKB*1024, cfg.WriteHeader,
		SchemaColumns[OutputGrid])
	if err != nil {
		return err
	}
	for r := 0; r < grid.Rows; r++ {
		for c := 0; c < grid.Cols; c++ {
			v := heat.At(r, c)
			val := ""
			if !math.IsNaN(v) {
				val = strconv.FormatFloat(v, 'g', -1, 64)
			}
			w.WriteRow([]string{
				strconv.Itoa(r),
				strconv.Itoa(c),
				strconv.FormatFloat(grid.OriginX+float64(c)*grid.CellWidth, 'g', -1, 64),
				strconv.FormatFloat(grid.OriginY+float64(r)*grid.CellHeight, 'g', -1, 64),
				val,
			})
		}
	}
	return w.Close()
}

// ─── round-trip serialisation back into a source schema ─────────────────

func formatUnits(ns int64, unit float64) string {
	return strconv.FormatFloat(float64(ns)/unit, 'g', -1, 64)
}

// WriteMagnetics serialises a recording back to the column names and time
// unit of the given schema, reproducing the loaded values exactly.
func WriteMagnetics(out io.Writer, rec *models.MagneticRecording, schema utils.MagneticsSchema) error {
	unit, err := utils.UnitNanos(schema.TimeUnit)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(out)
	header := []string{schema.Timestamp, schema.MagX, schema.MagY, schema.MagZ}
	if schema.Accuracy != "" {
		header = append(header, schema.Accuracy)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	g := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for i := range rec.Samples {
		s := &rec.Samples[i]
		row := []string{formatUnits(s.TimestampNs, unit), g(s.MagX), g(s.MagY), g(s.MagZ)}
		if schema.Accuracy != "" {
			row = append(row, g(s.Accuracy))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePositions is the positions counterpart of WriteMagnetics.
func WritePositions(out io.Writer, rec *models.PositionRecording, schema utils.PositionsSchema) error {
	unit, err := utils.UnitNanos(schema.TimeUnit)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(out)
	header := []string{schema.Timestamp, schema.X, schema.Y}
	if schema.Floor != "" {
		header = append(header, schema.Floor)
	}
	if schema.Type != "" {
		header = append(header, schema.Type)
	}
	if schema.Accuracy != "" {
		header = append(header, schema.Accuracy)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	g := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for i := range rec.Fixes {
		f := &rec.Fixes[i]
		row := []string{formatUnits(f.TimestampNs, unit), g(f.X), g(f.Y)}
		if schema.Floor != "" {
			row = append(row, strconv.Itoa(f.Floor))
		}
		if schema.Type != "" {
			row = append(row, f.Type)
		}
		if schema.Accuracy != "" {
			row = append(row, g(f.Accuracy))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
