package telemetry

import (
	"log/slog"
	"time"
)

// Phase identifies one pass of a simulation step.
type Phase int

// Step phases in execution order.
const (
	PhaseCollision Phase = iota
	PhaseIntegrate
	PhaseContain
	PhaseTelemetry
	NumPhases
)

// Phases lists every step phase in the order they run.
var Phases = [NumPhases]Phase{PhaseCollision, PhaseIntegrate, PhaseContain, PhaseTelemetry}

var phaseNames = [NumPhases]string{"collision", "integrate", "contain", "telemetry"}

func (p Phase) String() string {
	if p < 0 || p >= NumPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// stepSample is the timing of one step.
type stepSample struct {
	total  time.Duration
	phases [NumPhases]time.Duration
}

// PerfCollector keeps step timings for the last windowSize steps in a ring
// and maintains running sums over it.
type PerfCollector struct {
	ring  []stepSample
	next  int
	count int

	sumTotal  time.Duration
	sumPhases [NumPhases]time.Duration

	cur        stepSample
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	lastFrame time.Time
	frameTime time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize steps.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{ring: make([]stepSample, windowSize)}
}

// StartTick begins timing a step.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.cur = stepSample{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and opens phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
	p.inPhase = phase >= 0 && phase < NumPhases
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.inPhase = false
}

// EndTick closes the step and folds it into the window, evicting the
// oldest step once the window is full.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.cur.total = now.Sub(p.tickStart)

	if p.count == len(p.ring) {
		old := p.ring[p.next]
		p.sumTotal -= old.total
		for i := range p.sumPhases {
			p.sumPhases[i] -= old.phases[i]
		}
	} else {
		p.count++
	}

	p.ring[p.next] = p.cur
	p.sumTotal += p.cur.total
	for i := range p.sumPhases {
		p.sumPhases[i] += p.cur.phases[i]
	}
	p.next = (p.next + 1) % len(p.ring)
}

// RecordFrame records the time since the previous rendered frame.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frameTime = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarises the current window.
type PerfStats struct {
	Steps           int
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	TicksPerSecond  float64

	PhaseAvg [NumPhases]time.Duration
	PhasePct [NumPhases]float64 // share of the average step, 0-100

	FrameDuration time.Duration // graphics mode only
	FPS           float64
}

// Stats computes averages over the steps currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{Steps: p.count, FrameDuration: p.frameTime}
	if p.frameTime > 0 {
		s.FPS = float64(time.Second) / float64(p.frameTime)
	}
	if p.count == 0 {
		return s
	}

	n := time.Duration(p.count)
	s.AvgTickDuration = p.sumTotal / n
	for i, sample := range p.ring[:p.count] {
		if i == 0 || sample.total < s.MinTickDuration {
			s.MinTickDuration = sample.total
		}
		s.MaxTickDuration = max(s.MaxTickDuration, sample.total)
	}
	for i, sum := range p.sumPhases {
		s.PhaseAvg[i] = sum / n
		if s.AvgTickDuration > 0 {
			s.PhasePct[i] = float64(s.PhaseAvg[i]) / float64(s.AvgTickDuration) * 100
		}
	}
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("steps", s.Steps),
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range Phases {
		attrs = append(attrs, slog.Float64(phase.String()+"_pct", s.PhasePct[phase]))
	}
	return slog.GroupValue(attrs...)
}

// LogStats logs the window using slog.
func (s PerfStats) LogStats() {
	slog.Info("perf", "window", s)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	CollisionPct float64 `csv:"collision_pct"`
	IntegratePct float64 `csv:"integrate_pct"`
	ContainPct   float64 `csv:"contain_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats into a perf.csv row.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		CollisionPct: s.PhasePct[PhaseCollision],
		IntegratePct: s.PhasePct[PhaseIntegrate],
		ContainPct:   s.PhasePct[PhaseContain],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
