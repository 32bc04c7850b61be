package model

import "time"

// RunStatus tracks the lifecycle of a refresh run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// RunStats summarizes what a refresh produced.
type RunStats struct {
	SourceCounts map[string]int `json:"source_counts,omitempty"`
	Fetched      int            `json:"fetched"`
	Deduped      int            `json:"deduped"`
	Priced       int            `json:"priced"`
	Collections  int            `json:"collections"`
	DurationMS   int64          `json:"duration_ms"`
}

// Run is one recorded refresh of the gallery snapshot.
type Run struct {
	ID         string    `json:"id"`
	Status     RunStatus `json:"status"`
	Stats      *RunStats `json:"stats,omitempty"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}
