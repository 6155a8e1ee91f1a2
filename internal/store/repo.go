package store

import (
	"context"
	"time"
)

// RunEventData is the summary of one multiplication run as handed to the
// audit log.
type RunEventData struct {
	BaseFactID        string
	Subject           string
	PolicyVersion     string
	Factor            int
	Seed              uint64
	MainCount         int
	HighImpactCount   int
	ContextualCount   int
	TypeCounts        map[string]int
	Failures          []string
	DuplicatesRemoved int
	Total             int
	Duration          time.Duration
}

// Run is a recorded run read back from the audit log.
type Run struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	RunEventData
}

// RunRepo appends and lists generation runs.
type RunRepo interface {
	// AppendRun records a finished run and returns its sequence number.
	AppendRun(ctx context.Context, data RunEventData) (int64, error)

	// RecentRuns returns up to limit runs, newest first. A limit of zero
	// or less returns every run.
	RecentRuns(ctx context.Context, limit int) ([]Run, error)

	// RunsForFact returns every run of one base fact, newest first.
	RunsForFact(ctx context.Context, baseFactID string) ([]Run, error)
}
