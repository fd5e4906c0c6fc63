package dispatcher

import (
	"sort"
	"sync"
	"time"
)

// Metrics collects dispatch statistics.
type Metrics struct {
	mu sync.RWMutex

	// Per-action metrics
	actionMetrics map[ActionKind]*ActionMetrics

	// Global counters
	totalDispatches uint64
	totalIgnored    uint64
	totalSuppressed uint64
	totalNoSelect   uint64
	totalPanics     uint64

	// Timing
	totalDuration time.Duration
}

// ActionMetrics holds metrics for a specific action kind.
type ActionMetrics struct {
	Kind          ActionKind
	DispatchCount uint64
	PanicCount    uint64
	TotalDuration time.Duration
	MinDuration   time.Duration
	MaxDuration   time.Duration
	LastDispatch  time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		actionMetrics: make(map[ActionKind]*ActionMetrics),
	}
}

// RecordDispatch records an effective action.
func (m *Metrics) RecordDispatch(kind ActionKind, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalDispatches++
	m.totalDuration += duration

	am := m.actionMetrics[kind]
	if am == nil {
		am = &ActionMetrics{
			Kind:        kind,
			MinDuration: duration,
			MaxDuration: duration,
		}
		m.actionMetrics[kind] = am
	}

	am.DispatchCount++
	am.TotalDuration += duration
	am.LastDispatch = time.Now()

	if duration < am.MinDuration {
		am.MinDuration = duration
	}
	if duration > am.MaxDuration {
		am.MaxDuration = duration
	}
}

// RecordIgnored records a key with no meaning in the current mode.
func (m *Metrics) RecordIgnored() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalIgnored++
}

// RecordSuppressed records a key dropped because the game is over.
func (m *Metrics) RecordSuppressed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalSuppressed++
}

// RecordNoSelection records a cell key pressed with no cell selected.
func (m *Metrics) RecordNoSelection() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalNoSelect++
}

// RecordPanic records a recovered hook panic.
func (m *Metrics) RecordPanic(kind ActionKind) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalPanics++

	if am := m.actionMetrics[kind]; am != nil {
		am.PanicCount++
	}
}

// TotalDispatches returns the total number of effective actions.
func (m *Metrics) TotalDispatches() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalDispatches
}

// TopActions returns the top N most dispatched actions.
func (m *Metrics) TopActions(n int) []*ActionMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	actions := make([]*ActionMetrics, 0, len(m.actionMetrics))
	for _, am := range m.actionMetrics {
		copy := *am
		actions = append(actions, &copy)
	}

	sort.Slice(actions, func(i, j int) bool {
		if actions[i].DispatchCount == actions[j].DispatchCount {
			return actions[i].Kind < actions[j].Kind
		}
		return actions[i].DispatchCount > actions[j].DispatchCount
	})

	if n > len(actions) {
		n = len(actions)
	}
	return actions[:n]
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.actionMetrics = make(map[ActionKind]*ActionMetrics)
	m.totalDispatches = 0
	m.totalIgnored = 0
	m.totalSuppressed = 0
	m.totalNoSelect = 0
	m.totalPanics = 0
	m.totalDuration = 0
}

// MetricsSnapshot is a point-in-time copy of the global counters.
type MetricsSnapshot struct {
	TotalDispatches  uint64
	TotalIgnored     uint64
	TotalSuppressed  uint64
	TotalNoSelection uint64
	TotalPanics      uint64
	AverageDuration  time.Duration
	Timestamp        time.Time
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := MetricsSnapshot{
		TotalDispatches:  m.totalDispatches,
		TotalIgnored:     m.totalIgnored,
		TotalSuppressed:  m.totalSuppressed,
		TotalNoSelection: m.totalNoSelect,
		TotalPanics:      m.totalPanics,
		Timestamp:        time.Now(),
	}

	if m.totalDispatches > 0 {
		snapshot.AverageDuration = m.totalDuration / time.Duration(m.totalDispatches)
	}

	return snapshot
}

// AverageActionDuration returns the average duration for the action.
func (am *ActionMetrics) AverageActionDuration() time.Duration {
	if am.DispatchCount == 0 {
		return 0
	}
	return am.TotalDuration / time.Duration(am.DispatchCount)
}
