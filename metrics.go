package stylist

import "sync/atomic"

// Metrics captures lightweight runtime counters for observability.
type Metrics struct {
	batches              atomic.Int64
	records              atomic.Int64
	analysisCalls        atomic.Int64
	analysisFailures     atomic.Int64
	mergesAccepted       atomic.Int64
	mergesRejected       atomic.Int64
	appends              atomic.Int64
	compactionsAttempted atomic.Int64
	compactionsSucceeded atomic.Int64
	checkpointSaves      atomic.Int64
}

func (m *Metrics) IncBatches()              { m.batches.Add(1) }
func (m *Metrics) IncRecords(n int)         { m.records.Add(int64(n)) }
func (m *Metrics) IncAnalysisCalls()        { m.analysisCalls.Add(1) }
func (m *Metrics) IncAnalysisFailures()     { m.analysisFailures.Add(1) }
func (m *Metrics) IncMergesAccepted()       { m.mergesAccepted.Add(1) }
func (m *Metrics) IncMergesRejected()       { m.mergesRejected.Add(1) }
func (m *Metrics) IncAppends()              { m.appends.Add(1) }
func (m *Metrics) IncCompactionsAttempted() { m.compactionsAttempted.Add(1) }
func (m *Metrics) IncCompactionsSucceeded() { m.compactionsSucceeded.Add(1) }
func (m *Metrics) IncCheckpointSaves()      { m.checkpointSaves.Add(1) }

// MetricsSnapshot returns the current values for reporting/logging.
type MetricsSnapshot struct {
	Batches              int64 `json:"batches"`
	Records              int64 `json:"records"`
	AnalysisCalls        int64 `json:"analysis_calls"`
	AnalysisFailures     int64 `json:"analysis_failures"`
	MergesAccepted       int64 `json:"merges_accepted"`
	MergesRejected       int64 `json:"merges_rejected"`
	Appends              int64 `json:"appends"`
	CompactionsAttempted int64 `json:"compactions_attempted"`
	CompactionsSucceeded int64 `json:"compactions_succeeded"`
	CheckpointSaves      int64 `json:"checkpoint_saves"`
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	return MetricsSnapshot{
		Batches:              m.batches.Load(),
		Records:              m.records.Load(),
		AnalysisCalls:        m.analysisCalls.Load(),
		AnalysisFailures:     m.analysisFailures.Load(),
		MergesAccepted:       m.mergesAccepted.Load(),
		MergesRejected:       m.mergesRejected.Load(),
		Appends:              m.appends.Load(),
		CompactionsAttempted: m.compactionsAttempted.Load(),
		CompactionsSucceeded: m.compactionsSucceeded.Load(),
		CheckpointSaves:      m.checkpointSaves.Load(),
	}
}
