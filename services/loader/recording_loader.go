package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"ips-mapper/models"
	"ips-mapper/utils"
)

// Loader turns delimited recording exports into ordered model recordings.
// One loader function per recording kind, mirroring the one-reader-per-source
// layout of the capture side.

var errMissingColumn = errors.New("required column missing")

// columns maps header names to field indices.
type columns map[string]int

func readHeader(r *csv.Reader, source string) (columns, error) {
	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: %w", source, models.ErrEmptyRecording)
	}
	if err != nil {
		return nil, &models.MalformedRecordingError{Source: source, Err: err}
	}
	cols := make(columns, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	return cols, nil
}

func (c columns) require(source, name string) (int, error) {
	idx, ok := c[name]
	if !ok {
		return 0, &models.MalformedRecordingError{
			Source: source, Column: name, Err: errMissingColumn,
		}
	}
	return idx, nil
}

// optional returns -1 when the schema leaves the field unnamed or the file
// lacks the column.
func (c columns) optional(name string) int {
	if name == "" {
		return -1
	}
	if idx, ok := c[name]; ok {
		return idx
	}
	return -1
}

func parseField(source string, row int, record []string, idx int, col string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(record[idx]), 64)
	if err != nil {
		return 0, &models.MalformedRecordingError{
			Source: source, Row: row, Column: col, Err: err,
		}
	}
	return v, nil
}

// LoadMagnetics parses a magnetics CSV stream into a MagneticRecording,
// sorted ascending by timestamp.
func LoadMagnetics(r io.Reader, source string, schema utils.MagneticsSchema) (*models.MagneticRecording, error) {
	unit, err := utils.UnitNanos(schema.TimeUnit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	cols, err := readHeader(cr, source)
	if err != nil {
		return nil, err
	}

	tIdx, err := cols.require(source, schema.Timestamp)
	if err != nil {
		return nil, err
	}
	xIdx, err := cols.require(source, schema.MagX)
	if err != nil {
		return nil, err
	}
	yIdx, err := cols.require(source, schema.MagY)
	if err != nil {
		return nil, err
	}
	zIdx, err := cols.require(source, schema.MagZ)
	if err != nil {
		return nil, err
	}
	accIdx := cols.optional(schema.Accuracy)

	var samples []models.MagneticSample
	for row := 1; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &models.MalformedRecordingError{Source: source, Row: row, Err: err}
		}

		t, err := parseField(source, row, record, tIdx, schema.Timestamp)
		if err != nil {
			return nil, err
		}
		mx, err := parseField(source, row, record, xIdx, schema.MagX)
		if err != nil {
			return nil, err
		}
		my, err := parseField(source, row, record, yIdx, schema.MagY)
		if err != nil {
			return nil, err
		}
		mz, err := parseField(source, row, record, zIdx, schema.MagZ)
		if err != nil {
			return nil, err
		}

		s := models.MagneticSample{
			TimestampNs: int64(math.Round(t * unit)),
			MagX:        mx, MagY: my, MagZ: mz,
		}
		if accIdx >= 0 {
			if s.Accuracy, err = parseField(source, row, record, accIdx, schema.Accuracy); err != nil {
				return nil, err
			}
		}
		samples = append(samples, s)
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("%s: %w", source, models.ErrEmptyRecording)
	}
	return models.NewMagneticRecording(source, samples), nil
}

// LoadPositions parses a ground-truth positions CSV stream into a
// PositionRecording, sorted ascending by timestamp.
func LoadPositions(r io.Reader, source string, schema utils.PositionsSchema) (*models.PositionRecording, error) {
	unit, err := utils.UnitNanos(schema.TimeUnit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	cols, err := readHeader(cr, source)
	if err != nil {
		return nil, err
	}

	tIdx, err := cols.require(source, schema.Timestamp)
	if err != nil {
		return nil, err
	}
	xIdx, err := cols.require(source, schema.X)
	if err != nil {
		return nil, err
	}
	yIdx, err := cols.require(source, schema.Y)
	if err != nil {
		return nil, err
	}
	floorIdx := cols.optional(schema.Floor)
	typeIdx := cols.optional(schema.Type)
	accIdx := cols.optional(schema.Accuracy)

	var fixes []models.PositionFix
	for row := 1; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &models.MalformedRecordingError{Source: source, Row: row, Err: err}
		}

		t, err := parseField(source, row, record, tIdx, schema.Timestamp)
		if err != nil {
			return nil, err
		}
		x, err := parseField(source, row, record, xIdx, schema.X)
		if err != nil {
			return nil, err
		}
		y, err := parseField(source, row, record, yIdx, schema.Y)
		if err != nil {
			return nil, err
		}

		f := models.PositionFix{
			TimestampNs: int64(math.Round(t * unit)),
			X:           x, Y: y,
		}
		if floorIdx >= 0 {
			fl, err := parseField(source, row, record, floorIdx, schema.Floor)
			if err != nil {
				return nil, err
			}
			f.Floor = int(fl)
		}
		if typeIdx >= 0 {
			f.Type = strings.TrimSpace(record[typeIdx])
		}
		if accIdx >= 0 {
			if f.Accuracy, err = parseField(source, row, record, accIdx, schema.Accuracy); err != nil {
				return nil, err
			}
		}
		fixes = append(fixes, f)
	}

	if len(fixes) == 0 {
		return nil, fmt.Errorf("%s: %w", source, models.ErrEmptyRecording)
	}
	return models.NewPositionRecording(source, fixes), nil
}

// LoadMagneticsFile opens path and loads it as a magnetics recording.
func LoadMagneticsFile(path string, schema utils.MagneticsSchema) (*models.MagneticRecording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open magnetics: %w", err)
	}
	defer f.Close()

	rec, err := LoadMagnetics(f, path, schema)
	if err != nil {
		return nil, err
	}
	utils.L().Info("magnetics loaded        (source=%s, samples=%d)", path, len(rec.Samples))
	return rec, nil
}

// LoadPositionsFile opens path and loads it as a positions recording.
func LoadPositionsFile(path string, schema utils.PositionsSchema) (*models.PositionRecording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open positions: %w", err)
	}
	defer f.Close()

	rec, err := LoadPositions(f, path, schema)
	if err != nil {
		return nil, err
	}
	utils.L().Info("positions loaded        (source=%s, fixes=%d)", path, len(rec.Fixes))
	return rec, nil
}
