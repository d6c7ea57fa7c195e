// Package runs records dataset run provenance alongside the generated
// tables, so the store itself answers what was generated, from which
// spec, and with which seed.
package runs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmrzaf/earthgen/internal/domain"
	"github.com/mmrzaf/earthgen/internal/storage"
)

const Table = "dataset_runs"

var runSchema = []domain.Field{
	{Name: "run_id", Type: domain.FieldTypeText},
	{Name: "spec_hash", Type: domain.FieldTypeText},
	{Name: "seed", Type: domain.FieldTypeBigInt},
	{Name: "status", Type: domain.FieldTypeText},
	{Name: "total_records", Type: domain.FieldTypeBigInt},
	{Name: "wall_clock_seconds", Type: domain.FieldTypeFloat},
	{Name: "parallel_efficiency", Type: domain.FieldTypeFloat},
	{Name: "started_at", Type: domain.FieldTypeTimestamp},
	{Name: "completed_at", Type: domain.FieldTypeTimestamp},
	{Name: "error", Type: domain.FieldTypeText},
}

type Recorder struct {
	loader *storage.Loader
}

func NewRecorder(loader *storage.Loader) *Recorder {
	return &Recorder{loader: loader}
}

// Record appends one provenance row. Run history is append-only even
// when the data tables themselves were truncated.
func (r *Recorder) Record(ctx context.Context, run *domain.Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	if err := r.loader.EnsureTable(ctx, Table, runSchema); err != nil {
		return err
	}

	completedAt := ""
	if run.CompletedAt != nil {
		completedAt = run.CompletedAt.UTC().Format(time.RFC3339)
	}

	batch := domain.NewBatch(runSchema)
	if err := batch.Append(domain.Record{
		Fields: batch.Columns,
		Values: []interface{}{
			run.ID,
			run.SpecHash,
			run.Seed,
			run.Status,
			run.TotalRecords,
			run.WallClockSeconds,
			run.ParallelEfficiency,
			run.StartedAt.UTC().Format(time.RFC3339),
			completedAt,
			run.Error,
		},
	}); err != nil {
		return err
	}

	return r.loader.Write(ctx, Table, batch, domain.WriteModeAppend)
}

// List returns the most recent runs, newest first.
func (r *Recorder) List(ctx context.Context, limit int) ([]*domain.Run, error) {
	query := fmt.Sprintf(
		"SELECT run_id, spec_hash, seed, status, total_records, wall_clock_seconds, parallel_efficiency, started_at, completed_at, error FROM %s ORDER BY started_at DESC",
		r.loader.QualifiedTable(Table))
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := r.loader.Read(ctx, query)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Run, 0, len(rows))
	for _, row := range rows {
		run := &domain.Run{
			ID:                 asString(row["run_id"]),
			SpecHash:           asString(row["spec_hash"]),
			Seed:               asInt64(row["seed"]),
			Status:             asString(row["status"]),
			TotalRecords:       asInt64(row["total_records"]),
			WallClockSeconds:   asFloat64(row["wall_clock_seconds"]),
			ParallelEfficiency: asFloat64(row["parallel_efficiency"]),
			Error:              asString(row["error"]),
		}
		if ts, err := time.Parse(time.RFC3339, asString(row["started_at"])); err == nil {
			run.StartedAt = ts
		}
		if s := asString(row["completed_at"]); s != "" {
			if ts, err := time.Parse(time.RFC3339, s); err == nil {
				run.CompletedAt = &ts
			}
		}
		out = append(out, run)
	}
	return out, nil
}

func asString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	default:
		return ""
	}
}

func asInt64(v interface{}) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	default:
		return 0
	}
}

func asFloat64(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int64:
		return float64(t)
	default:
		return 0
	}
}
