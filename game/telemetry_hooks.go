package game

import "log/slog"

// flushTelemetry emits a stats window once enough ticks have passed.
func (g *Game) flushTelemetry() {
	tick := g.world.Tick()
	if !g.collector.ShouldFlush(tick) {
		return
	}

	stats := g.collector.Flush(tick, g.world.Bodies())
	perfStats := g.perfCollector.Stats()
	g.lastStats = stats

	if stats.NonFinite > 0 {
		slog.Warn("non-finite velocities", "tick", tick, "bodies", stats.NonFinite)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
