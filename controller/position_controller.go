package controller

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"ips-mapper/models"
	"ips-mapper/utils"
)

// MappingStrategy converts one magnetic sample into planar coordinates,
// anchored on a ground-truth position recording. Strategies are pure and
// swappable; the calculator only orchestrates.
type MappingStrategy interface {
	Name() string
	Estimate(s models.MagneticSample, ref *models.PositionRecording) (x, y float64, err error)
}

// InterpolationStrategy assumes constant velocity between consecutive
// ground-truth fixes and interpolates the sample position linearly on the
// segment that brackets its timestamp. Samples outside the ground-truth
// range cannot be placed and yield an AlignmentError.
type InterpolationStrategy struct{}

func (InterpolationStrategy) Name() string { return "interpolation" }

func (InterpolationStrategy) Estimate(s models.MagneticSample, ref *models.PositionRecording) (float64, float64, error) {
	fixes := ref.Fixes
	t := s.TimestampNs
	if t < fixes[0].TimestampNs || t > fixes[len(fixes)-1].TimestampNs {
		return 0, 0, &models.AlignmentError{SampleIndex: -1, TimestampNs: t}
	}

	// First fix strictly after t. i >= 1 because t >= fixes[0].
	i := sort.Search(len(fixes), func(i int) bool { return fixes[i].TimestampNs > t })
	if i == len(fixes) {
		// t equals the final fix timestamp.
		f := fixes[len(fixes)-1]
		return f.X, f.Y, nil
	}

	a, b := fixes[i-1], fixes[i]
	dt := float64(b.TimestampNs - a.TimestampNs)
	if dt == 0 {
		return a.X, a.Y, nil
	}
	elapsed := float64(t - a.TimestampNs)
	x := a.X + elapsed*(b.X-a.X)/dt
	y := a.Y + elapsed*(b.Y-a.Y)/dt
	return x, y, nil
}

// NearestNeighborStrategy snaps each sample to the ground-truth fix closest
// in time. ToleranceNs bounds the acceptable |Δt|; zero or negative means
// unbounded.
type NearestNeighborStrategy struct {
	ToleranceNs int64
}

func (NearestNeighborStrategy) Name() string { return "nearest" }

func (n NearestNeighborStrategy) Estimate(s models.MagneticSample, ref *models.PositionRecording) (float64, float64, error) {
	fixes := ref.Fixes
	t := s.TimestampNs

	i := sort.Search(len(fixes), func(i int) bool { return fixes[i].TimestampNs >= t })

	best := -1
	var bestDt int64 = math.MaxInt64
	if i < len(fixes) {
		best, bestDt = i, fixes[i].TimestampNs-t
	}
	if i > 0 {
		if d := t - fixes[i-1].TimestampNs; d < bestDt {
			best, bestDt = i-1, d
		}
	}

	if best < 0 || (n.ToleranceNs > 0 && bestDt > n.ToleranceNs) {
		return 0, 0, &models.AlignmentError{SampleIndex: -1, TimestampNs: t}
	}
	return fixes[best].X, fixes[best].Y, nil
}

// PositionCalculator derives one PositionEstimate per magnetic sample by
// aligning the sample against a ground-truth recording and applying the
// injected mapping strategy. Pure; safe for concurrent use.
type PositionCalculator struct {
	Strategy MappingStrategy

	// SkipUnaligned drops samples the strategy cannot place instead of
	// failing the whole computation. The survey app behaves this way for
	// magnetics trailing the last ground-truth fix.
	SkipUnaligned bool
}

// NewPositionCalculator returns a calculator with the given strategy,
// defaulting to interpolation when nil.
func NewPositionCalculator(strategy MappingStrategy) *PositionCalculator {
	if strategy == nil {
		strategy = InterpolationStrategy{}
	}
	return &PositionCalculator{Strategy: strategy}
}

// Compute returns estimates in the magnetic recording's sample order,
// one-to-one minus any skipped samples.
func (c *PositionCalculator) Compute(mag *models.MagneticRecording, ref *models.PositionRecording) ([]models.PositionEstimate, error) {
	if mag == nil || len(mag.Samples) == 0 {
		return nil, fmt.Errorf("magnetic recording: %w", models.ErrEmptyRecording)
	}
	if ref == nil || len(ref.Fixes) == 0 {
		return nil, fmt.Errorf("reference recording: %w", models.ErrEmptyRecording)
	}

	magStart, magEnd := mag.TimeRange()
	refStart, refEnd := ref.TimeRange()
	if magEnd < refStart || magStart > refEnd {
		return nil, fmt.Errorf("%s vs %s: %w", mag.Source, ref.Source, models.ErrNoOverlap)
	}

	estimates := make([]models.PositionEstimate, 0, len(mag.Samples))
	skipped := 0
	for i := range mag.Samples {
		s := mag.Samples[i]
		x, y, err := c.Strategy.Estimate(s, ref)
		if err != nil {
			var ae *models.AlignmentError
			if errors.As(err, &ae) {
				ae.SampleIndex = i
				if c.SkipUnaligned {
					skipped++
					continue
				}
			}
			return nil, err
		}
		estimates = append(estimates, models.PositionEstimate{
			SampleIndex: i,
			TimestampNs: s.TimestampNs,
			X:           x,
			Y:           y,
			Magnitude:   s.Magnitude(),
		})
	}

	if skipped > 0 {
		utils.L().Debug("position calculator: skipped %d unaligned samples (strategy=%s)",
			skipped, c.Strategy.Name())
	}
	return estimates, nil
}
