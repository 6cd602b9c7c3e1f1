// Package ingestprogress tracks the state of an in-flight directory
// ingestion so Core.GetHealth can surface it without polling the
// ingestion pipeline directly.
package ingestprogress

import (
	"sync"
	"time"
)

// Status is the overall ingestion state.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusIngesting Status = "ingesting"
	StatusReady     Status = "ready"
	StatusError     Status = "error"
)

// Stage is the current phase of an in-flight ingestion.
type Stage string

const (
	StageScanning   Stage = "scanning"
	StageProcessing Stage = "processing"
)

// Snapshot is an immutable view of ingestion progress, suitable for
// embedding directly in a get_health() response.
type Snapshot struct {
	Status         string  `json:"status"`
	Stage          string  `json:"stage"`
	FilesTotal     int     `json:"files_total"`
	FilesProcessed int     `json:"files_processed"`
	ProgressPct    float64 `json:"progress_pct"`
	ElapsedSeconds int     `json:"elapsed_seconds"`
	ErrorMessage   string  `json:"error_message,omitempty"`
}

// Tracker is a thread-safe ingestion-progress tracker. One Tracker
// instance covers one directory ingestion at a time; starting a new
// ingestion resets it.
type Tracker struct {
	mu sync.RWMutex

	status         Status
	stage          Stage
	filesTotal     int
	filesProcessed int
	startTime      time.Time
	errorMessage   string
}

// New returns a Tracker in the idle state.
func New() *Tracker {
	return &Tracker{status: StatusIdle}
}

// Start resets the tracker for a new ingestion run.
func (t *Tracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.status = StatusIngesting
	t.stage = StageScanning
	t.filesTotal = 0
	t.filesProcessed = 0
	t.errorMessage = ""
	t.startTime = time.Now()
}

// SetTotal records the number of files discovered by the directory walk
// and advances the stage to processing.
func (t *Tracker) SetTotal(total int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stage = StageProcessing
	t.filesTotal = total
}

// Advance records that processed files have completed, mirroring the
// on_progress(processed, total) ingestion callback.
func (t *Tracker) Advance(processed int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.filesProcessed = processed
}

// Fail marks the tracked ingestion as failed.
func (t *Tracker) Fail(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.status = StatusError
	t.errorMessage = message
}

// Done marks the tracked ingestion as complete.
func (t *Tracker) Done() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.status = StatusReady
}

// IsIngesting reports whether an ingestion is currently in flight.
func (t *Tracker) IsIngesting() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.status == StatusIngesting
}

// Snapshot returns an immutable copy of the current progress state.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var pct float64
	if t.filesTotal > 0 {
		pct = float64(t.filesProcessed) / float64(t.filesTotal) * 100.0
	}

	var elapsed int
	if !t.startTime.IsZero() {
		elapsed = int(time.Since(t.startTime).Seconds())
	}

	return Snapshot{
		Status:         string(t.status),
		Stage:          string(t.stage),
		FilesTotal:     t.filesTotal,
		FilesProcessed: t.filesProcessed,
		ProgressPct:    pct,
		ElapsedSeconds: elapsed,
		ErrorMessage:   t.errorMessage,
	}
}
