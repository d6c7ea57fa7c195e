package domain

import (
	"fmt"
	"time"
)

type WriteMode string

const (
	WriteModeAppend   WriteMode = "append"
	WriteModeTruncate WriteMode = "truncate"
)

func ParseWriteMode(s string) (WriteMode, error) {
	switch WriteMode(s) {
	case WriteModeAppend:
		return WriteModeAppend, nil
	case WriteModeTruncate:
		return WriteModeTruncate, nil
	default:
		return "", fmt.Errorf("%w: unknown write mode %q", ErrInvalidSpec, s)
	}
}

type FieldType string

const (
	FieldTypeInt       FieldType = "int"
	FieldTypeBigInt    FieldType = "bigint"
	FieldTypeFloat     FieldType = "float"
	FieldTypeText      FieldType = "text"
	FieldTypeBool      FieldType = "bool"
	FieldTypeDate      FieldType = "date"
	FieldTypeTimestamp FieldType = "timestamp"
)

type Field struct {
	Name string
	Type FieldType
}

// Record is one generated entity instance. Values are ordered to match
// Fields; every record of one entity type within a run carries the same
// field set in the same order.
type Record struct {
	Fields []string
	Values []interface{}
}

func (r Record) Value(name string) (interface{}, bool) {
	for i, f := range r.Fields {
		if f == name {
			return r.Values[i], true
		}
	}
	return nil, false
}

// Batch groups records that are persisted together.
type Batch struct {
	Columns []string
	Rows    [][]interface{}
}

func NewBatch(schema []Field) *Batch {
	cols := make([]string, len(schema))
	for i, f := range schema {
		cols[i] = f.Name
	}
	return &Batch{Columns: cols}
}

// Append adds a record, enforcing schema uniformity within the batch.
func (b *Batch) Append(rec Record) error {
	if len(rec.Fields) != len(b.Columns) {
		return fmt.Errorf("record has %d fields, batch expects %d", len(rec.Fields), len(b.Columns))
	}
	for i, f := range rec.Fields {
		if f != b.Columns[i] {
			return fmt.Errorf("record field %q at position %d, batch expects %q", f, i, b.Columns[i])
		}
	}
	b.Rows = append(b.Rows, rec.Values)
	return nil
}

func (b *Batch) Len() int {
	return len(b.Rows)
}

// GenerationSpec describes one entity generation request for direct
// library use, bypassing the orchestrator.
type GenerationSpec struct {
	EntityType string `json:"entity_type" yaml:"entity_type"`
	Count      int64  `json:"count" yaml:"count"`
	Seed       int64  `json:"seed" yaml:"seed"`
	BatchSize  int    `json:"batch_size" yaml:"batch_size"`
}

// DatasetSpec describes one full multi-entity generation run.
type DatasetSpec struct {
	Entities    map[string]int64 `json:"entities" yaml:"entities"`
	Seed        int64            `json:"seed" yaml:"seed"`
	BatchSize   int              `json:"batch_size" yaml:"batch_size"`
	WriteMode   WriteMode        `json:"write_mode" yaml:"write_mode"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
}

func (s *DatasetSpec) TotalRequested() int64 {
	var total int64
	for _, count := range s.Entities {
		total += count
	}
	return total
}

type ExecutionStatus string

const (
	StatusCompleted ExecutionStatus = "completed"
	StatusFailed    ExecutionStatus = "failed"
	StatusSkipped   ExecutionStatus = "skipped"
)

// ExecutionResult is produced once per entity workflow and is immutable
// after the orchestrator records it.
type ExecutionResult struct {
	EntityType       string          `json:"entity_type"`
	RecordsGenerated int64           `json:"records_generated"`
	Duration         time.Duration   `json:"duration"`
	Status           ExecutionStatus `json:"status"`
	Error            string          `json:"error,omitempty"`
}

// ExecutionSummary aggregates all results of a dataset run.
type ExecutionSummary struct {
	SpecHash           string            `json:"spec_hash"`
	Seed               int64             `json:"seed"`
	Results            []ExecutionResult `json:"results"`
	TotalRecords       int64             `json:"total_records"`
	WallClock          time.Duration     `json:"wall_clock"`
	WorkTime           time.Duration     `json:"work_time"`
	ParallelEfficiency float64           `json:"parallel_efficiency"`
	RecordsPerSecond   float64           `json:"records_per_second"`
	StartedAt          time.Time         `json:"started_at"`
	CompletedAt        time.Time         `json:"completed_at"`
}

func (s *ExecutionSummary) Result(entityType string) *ExecutionResult {
	for i := range s.Results {
		if s.Results[i].EntityType == entityType {
			return &s.Results[i]
		}
	}
	return nil
}

// Completed reports whether every entity workflow finished successfully.
func (s *ExecutionSummary) Completed() bool {
	for _, r := range s.Results {
		if r.Status != StatusCompleted {
			return false
		}
	}
	return true
}

// Run is the provenance row persisted for each orchestrator execution.
type Run struct {
	ID                 string     `json:"run_id"`
	SpecHash           string     `json:"spec_hash"`
	Seed               int64      `json:"seed"`
	Status             string     `json:"status"`
	TotalRecords       int64      `json:"total_records"`
	WallClockSeconds   float64    `json:"wall_clock_seconds"`
	ParallelEfficiency float64    `json:"parallel_efficiency"`
	StartedAt          time.Time  `json:"started_at"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	Error              string     `json:"error,omitempty"`
}
