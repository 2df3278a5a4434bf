package loader

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"ips-mapper/models"
	"ips-mapper/utils"
	"ips-mapper/views"
)

func magSchemaNs() utils.MagneticsSchema {
	return utils.MagneticsSchema{
		Timestamp: "t",
		MagX:      "x", MagY: "y", MagZ: "z",
		Accuracy: "accuracy",
		TimeUnit: "ns",
	}
}

func posSchemaNs() utils.PositionsSchema {
	return utils.PositionsSchema{
		Timestamp: "t",
		X:         "x", Y: "y",
		Floor: "floor", Type: "type", Accuracy: "accuracy",
		TimeUnit: "ns",
	}
}

func TestLoadMagneticsSortsByTimestamp(t *testing.T) {
	in := strings.Join([]string{
		"t,x,y,z,accuracy",
		"2,0,0,3,1",
		"0,1,0,0,1",
		"1,0,2,0,1",
	}, "\n")

	rec, err := LoadMagnetics(strings.NewReader(in), "magnetics.csv", magSchemaNs())
	require.NoError(t, err)
	require.Len(t, rec.Samples, 3, "sample count must equal data row count")
	require.Equal(t, "magnetics.csv", rec.Source)
	require.NotEqual(t, rec.ID.String(), "00000000-0000-0000-0000-000000000000")

	for i := 1; i < len(rec.Samples); i++ {
		require.LessOrEqual(t, rec.Samples[i-1].TimestampNs, rec.Samples[i].TimestampNs)
	}
	require.Equal(t, 1.0, rec.Samples[0].MagX) // the t=0 row sorted first
	require.Equal(t, 3.0, rec.Samples[2].MagZ)
}

func TestLoadMagneticsStableOnDuplicateTimestamps(t *testing.T) {
	in := strings.Join([]string{
		"t,x,y,z,accuracy",
		"5,1,0,0,1",
		"5,2,0,0,1",
		"1,3,0,0,1",
	}, "\n")

	rec, err := LoadMagnetics(strings.NewReader(in), "dup.csv", magSchemaNs())
	require.NoError(t, err)
	require.Len(t, rec.Samples, 3)
	// Duplicates keep file order behind the earlier row.
	require.Equal(t, 3.0, rec.Samples[0].MagX)
	require.Equal(t, 1.0, rec.Samples[1].MagX)
	require.Equal(t, 2.0, rec.Samples[2].MagX)
}

func TestLoadMagneticsTimeUnitScaling(t *testing.T) {
	in := "t,x,y,z,accuracy\n1.5,0,0,0,1\n"

	schema := magSchemaNs()
	schema.TimeUnit = "s"
	rec, err := LoadMagnetics(strings.NewReader(in), "sec.csv", schema)
	require.NoError(t, err)
	require.Equal(t, int64(1_500_000_000), rec.Samples[0].TimestampNs)

	schema.TimeUnit = "ms"
	rec, err = LoadMagnetics(strings.NewReader(in), "ms.csv", schema)
	require.NoError(t, err)
	require.Equal(t, int64(1_500_000), rec.Samples[0].TimestampNs)

	schema.TimeUnit = "fortnights"
	_, err = LoadMagnetics(strings.NewReader(in), "bad.csv", schema)
	require.Error(t, err)
}

func TestLoadMagneticsMissingColumn(t *testing.T) {
	in := "t,x,y,accuracy\n0,1,2,1\n" // no z column

	_, err := LoadMagnetics(strings.NewReader(in), "broken.csv", magSchemaNs())
	var mre *models.MalformedRecordingError
	require.ErrorAs(t, err, &mre)
	require.Equal(t, "z", mre.Column)
	require.Equal(t, "broken.csv", mre.Source)
}

func TestLoadMagneticsBadNumericField(t *testing.T) {
	in := strings.Join([]string{
		"t,x,y,z,accuracy",
		"0,1,2,3,1",
		"1,oops,2,3,1",
	}, "\n")

	_, err := LoadMagnetics(strings.NewReader(in), "broken.csv", magSchemaNs())
	var mre *models.MalformedRecordingError
	require.ErrorAs(t, err, &mre)
	require.Equal(t, 2, mre.Row)
	require.Equal(t, "x", mre.Column)
}

func TestLoadMagneticsRaggedRow(t *testing.T) {
	in := strings.Join([]string{
		"t,x,y,z,accuracy",
		"0,1,2,3,1",
		"1,2,3",
	}, "\n")

	_, err := LoadMagnetics(strings.NewReader(in), "ragged.csv", magSchemaNs())
	var mre *models.MalformedRecordingError
	require.ErrorAs(t, err, &mre)
	require.Equal(t, 2, mre.Row)
}

func TestLoadMagneticsEmpty(t *testing.T) {
	for name, in := range map[string]string{
		"header only": "t,x,y,z,accuracy\n",
		"no content":  "",
	} {
		_, err := LoadMagnetics(strings.NewReader(in), "empty.csv", magSchemaNs())
		require.ErrorIs(t, err, models.ErrEmptyRecording, name)
	}
}

func TestLoadPositions(t *testing.T) {
	in := strings.Join([]string{
		"t,x,y,floor,type,accuracy",
		"10,1.5,2.5,2,waypoint,0.5",
		"0,0,0,2,waypoint,0.5",
	}, "\n")

	rec, err := LoadPositions(strings.NewReader(in), "positions.csv", posSchemaNs())
	require.NoError(t, err)
	require.Len(t, rec.Fixes, 2)
	require.Equal(t, int64(0), rec.Fixes[0].TimestampNs)
	require.Equal(t, 1.5, rec.Fixes[1].X)
	require.Equal(t, 2, rec.Fixes[1].Floor)
	require.Equal(t, "waypoint", rec.Fixes[1].Type)
}

func TestLoadPositionsOptionalColumnsAbsent(t *testing.T) {
	in := "t,x,y\n0,1,2\n"

	rec, err := LoadPositions(strings.NewReader(in), "bare.csv", posSchemaNs())
	require.NoError(t, err)
	require.Len(t, rec.Fixes, 1)
	require.Zero(t, rec.Fixes[0].Floor)
	require.Empty(t, rec.Fixes[0].Type)
}

func TestMagneticsRoundTrip(t *testing.T) {
	// Rows arrive out of order; the round-trip reproduces them sorted
	// ascending with values intact.
	in := strings.Join([]string{
		"t,x,y,z,accuracy",
		"2,0.25,-1.5,3,1",
		"0,1,0,0,2",
		"1,0,2,0,3",
	}, "\n") + "\n"
	want := strings.Join([]string{
		"t,x,y,z,accuracy",
		"0,1,0,0,2",
		"1,0,2,0,3",
		"2,0.25,-1.5,3,1",
	}, "\n") + "\n"

	schema := magSchemaNs()
	rec, err := LoadMagnetics(strings.NewReader(in), "roundtrip.csv", schema)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, views.WriteMagnetics(&out, rec, schema))
	require.Equal(t, want, out.String())
}

func TestPositionsRoundTrip(t *testing.T) {
	in := strings.Join([]string{
		"t,x,y,floor,type,accuracy",
		"0,0,0,1,waypoint,0.5",
		"1000,4.25,2,1,corrected,0.75",
	}, "\n") + "\n"

	schema := posSchemaNs()
	rec, err := LoadPositions(strings.NewReader(in), "roundtrip.csv", schema)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, views.WritePositions(&out, rec, schema))
	require.Equal(t, in, out.String())
}

func TestLoadMagneticsFileMissing(t *testing.T) {
	_, err := LoadMagneticsFile("does/not/exist.csv", magSchemaNs())
	require.Error(t, err)
	require.False(t, errors.Is(err, models.ErrEmptyRecording))
}
