package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated ripple statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Pointer traffic during the window
	Samples      int `csv:"samples"`       // pointer samples fed to the field
	StillSamples int `csv:"still_samples"` // samples that repeated the previous position
	Expired      int `csv:"expired"`

	// Field state at window end
	ActivePoints int `csv:"active_points"`

	IntensityMean float64 `csv:"intensity_mean"`
	IntensityStd  float64 `csv:"intensity_std"`
	IntensityP10  float64 `csv:"intensity_p10"`
	IntensityP50  float64 `csv:"intensity_p50"`
	IntensityP90  float64 `csv:"intensity_p90"`

	ForceMean float64 `csv:"force_mean"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Distribution summarises a sample.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// Summarize computes mean, sample standard deviation and percentiles.
// Empty input yields the zero Distribution; a single value has Std 0.
func Summarize(values []float64) Distribution {
	n := len(values)
	if n == 0 {
		return Distribution{}
	}

	var d Distribution
	if n == 1 {
		d.Mean = values[0]
	} else {
		d.Mean, d.Std = stat.MeanStdDev(values, nil)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	d.P10 = Percentile(sorted, 0.10)
	d.P50 = Percentile(sorted, 0.50)
	d.P90 = Percentile(sorted, 0.90)
	return d
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("samples", s.Samples),
		slog.Int("still_samples", s.StillSamples),
		slog.Int("expired", s.Expired),
		slog.Int("active_points", s.ActivePoints),
		slog.Float64("intensity_mean", s.IntensityMean),
		slog.Float64("intensity_std", s.IntensityStd),
		slog.Float64("intensity_p10", s.IntensityP10),
		slog.Float64("intensity_p50", s.IntensityP50),
		slog.Float64("intensity_p90", s.IntensityP90),
		slog.Float64("force_mean", s.ForceMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
