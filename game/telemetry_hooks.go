package game

import (
	"log/slog"
)

// flushTelemetry flushes the stats window when it is due.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	intensities, forces := g.sampleIntensities()

	stats := g.collector.Flush(g.tick, intensities, forces)
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// sampleIntensities collects intensity and force for every live point.
// The returned slices are reused on the next call.
func (g *Game) sampleIntensities() (intensities, forces []float64) {
	g.intensityBuf = g.field.Intensities(g.intensityBuf[:0])

	g.forceBuf = g.forceBuf[:0]
	for _, p := range g.field.Points() {
		g.forceBuf = append(g.forceBuf, p.Force)
	}
	return g.intensityBuf, g.forceBuf
}
