package store

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/factforge/ent"
	"github.com/abhisek/factforge/ent/generationrunevent"
)

type runRepo struct {
	client *ent.Client
	seq    *sequenceCounter
}

func (r *runRepo) AppendRun(ctx context.Context, data RunEventData) (int64, error) {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}

	typeCounts := data.TypeCounts
	if typeCounts == nil {
		typeCounts = map[string]int{}
	}

	_, err = r.client.GenerationRunEvent.Create().
		SetSequence(seqNum).
		SetBaseFactID(data.BaseFactID).
		SetSubject(data.Subject).
		SetPolicyVersion(data.PolicyVersion).
		SetFactor(data.Factor).
		// SQLite integers are signed; the bit pattern round-trips.
		SetSeed(int64(data.Seed)).
		SetMainCount(data.MainCount).
		SetHighImpactCount(data.HighImpactCount).
		SetContextualCount(data.ContextualCount).
		SetTypeCounts(typeCounts).
		SetFailures(data.Failures).
		SetDuplicatesRemoved(data.DuplicatesRemoved).
		SetTotal(data.Total).
		SetDurationMs(data.Duration.Milliseconds()).
		Save(ctx)
	if err != nil {
		return 0, fmt.Errorf("save generation run event: %w", err)
	}

	return seqNum, nil
}

func (r *runRepo) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	q := r.client.GenerationRunEvent.Query().
		Order(ent.Desc(generationrunevent.FieldSequence))
	if limit > 0 {
		q = q.Limit(limit)
	}
	rows, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	return toRuns(rows), nil
}

func (r *runRepo) RunsForFact(ctx context.Context, baseFactID string) ([]Run, error) {
	rows, err := r.client.GenerationRunEvent.Query().
		Where(generationrunevent.BaseFactID(baseFactID)).
		Order(ent.Desc(generationrunevent.FieldSequence)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query runs for %s: %w", baseFactID, err)
	}
	return toRuns(rows), nil
}

func toRuns(rows []*ent.GenerationRunEvent) []Run {
	runs := make([]Run, 0, len(rows))
	for _, row := range rows {
		runs = append(runs, Run{
			ID:        row.ID,
			Sequence:  row.Sequence,
			Timestamp: row.Timestamp,
			RunEventData: RunEventData{
				BaseFactID:        row.BaseFactID,
				Subject:           row.Subject,
				PolicyVersion:     row.PolicyVersion,
				Factor:            row.Factor,
				Seed:              uint64(row.Seed),
				MainCount:         row.MainCount,
				HighImpactCount:   row.HighImpactCount,
				ContextualCount:   row.ContextualCount,
				TypeCounts:        row.TypeCounts,
				Failures:          row.Failures,
				DuplicatesRemoved: row.DuplicatesRemoved,
				Total:             row.Total,
				Duration:          time.Duration(row.DurationMs) * time.Millisecond,
			},
		})
	}
	return runs
}
