package telemetry

// Collector accumulates ripple events within time windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32
	dt                  float64

	windowStartTick int32

	samples      int
	stillSamples int
	expired      int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulated seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordSample records a pointer sample fed to the field.
// still marks a sample that repeated the previous position.
func (c *Collector) RecordSample(still bool) {
	c.samples++
	if still {
		c.stillSamples++
	}
}

// RecordExpired records points removed by a field step.
func (c *Collector) RecordExpired(n int) {
	c.expired += n
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// intensities and forces describe the live points at currentTick.
func (c *Collector) Flush(currentTick int32, intensities, forces []float64) WindowStats {
	dist := Summarize(intensities)
	forceDist := Summarize(forces)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Samples:      c.samples,
		StillSamples: c.stillSamples,
		Expired:      c.expired,

		ActivePoints: len(intensities),

		IntensityMean: dist.Mean,
		IntensityStd:  dist.Std,
		IntensityP10:  dist.P10,
		IntensityP50:  dist.P50,
		IntensityP90:  dist.P90,

		ForceMean: forceDist.Mean,
	}

	c.windowStartTick = currentTick
	c.samples = 0
	c.stillSamples = 0
	c.expired = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
