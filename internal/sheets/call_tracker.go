package sheets

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	opValuesGet         = "values_get"
	opValuesBatchUpdate = "values_batch_update"
)

// CallTracker counts Sheets API requests per operation.
type CallTracker struct {
	start       time.Time
	calls       int64
	byOperation map[string]int64
	mutex       sync.RWMutex
}

// NewCallTracker creates a new call tracker
func NewCallTracker() *CallTracker {
	return &CallTracker{
		start:       time.Now(),
		byOperation: make(map[string]int64),
	}
}

// RecordCall records one request
func (t *CallTracker) RecordCall(operation string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.calls++
	t.byOperation[operation]++
}

// Stats returns a snapshot of the recorded calls
func (t *CallTracker) Stats() CallStats {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	byOperation := make(map[string]int64, len(t.byOperation))
	for k, v := range t.byOperation {
		byOperation[k] = v
	}

	return CallStats{
		Calls:       t.calls,
		Duration:    time.Since(t.start),
		ByOperation: byOperation,
	}
}

// LogSummary logs the recorded calls at info level
func (t *CallTracker) LogSummary() {
	stats := t.Stats()

	logEvent := log.Info().
		Int64("calls", stats.Calls).
		Dur("duration", stats.Duration)

	for operation, count := range stats.ByOperation {
		logEvent = logEvent.Int64(operation+"_calls", count)
	}

	logEvent.Msg("Sheets API call summary")
}

// CallStats represents Sheets API call statistics
type CallStats struct {
	Calls       int64
	Duration    time.Duration
	ByOperation map[string]int64
}

// EstimateCalls is the request count for appending n monsters: one column
// read and one batched write each.
func EstimateCalls(monsters int) int64 {
	return int64(monsters) * 2
}
