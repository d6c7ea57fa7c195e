// Package generators produces fully-formed entity records. Every
// generator owns a private random stream seeded from the run seed mixed
// with its entity type, so generation is reproducible per
// (entity_type, count, seed) and concurrent generators never interfere.
package generators

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/mmrzaf/earthgen/internal/domain"
)

const (
	EntityPerson     = "person"
	EntityCompany    = "company"
	EntityCareerStep = "career_step"
)

// DefaultMaxRecords is the safety ceiling applied when a config does not
// set its own.
const DefaultMaxRecords = 1_000_000

// Config parameterizes generator construction.
type Config struct {
	Seed int64

	// RefTime anchors derived dates (created_at, birth dates, founded
	// years). It is fixed once per run; records never read the wall
	// clock directly, otherwise reproduction with a seed would be
	// impossible. Zero means midnight UTC of the current day.
	RefTime time.Time

	// MaxRecords caps a single generation request. Zero means
	// DefaultMaxRecords.
	MaxRecords int64
}

func (c Config) normalized() Config {
	if c.RefTime.IsZero() {
		c.RefTime = time.Now().UTC().Truncate(24 * time.Hour)
	}
	if c.MaxRecords <= 0 {
		c.MaxRecords = DefaultMaxRecords
	}
	return c
}

// Generator yields records for one entity type. Implementations are not
// safe for concurrent use; each goroutine gets its own instance.
type Generator interface {
	EntityType() string
	// Table is the target table name under the raw namespace.
	Table() string
	Schema() []domain.Field
	// DependsOn lists entity types that must be generated before this
	// one when both appear in a dataset spec.
	DependsOn() []string
	Next() (domain.Record, error)
}

// entitySeed derives an independent per-entity seed so the order in
// which generators run never shifts another entity's random stream.
func entitySeed(seed int64, entityType string) int64 {
	h := fnv.New64a()
	h.Write([]byte(entityType))
	return seed ^ int64(h.Sum64())
}

func newRand(cfg Config, entityType string) *rand.Rand {
	return rand.New(rand.NewSource(entitySeed(cfg.Seed, entityType)))
}

// Stream is a finite, lazy record sequence with the count policy applied
// up front: count 0 is an empty stream, a count beyond the ceiling fails
// before any record is produced. Restart by building a new stream from a
// freshly resolved generator.
type Stream struct {
	gen       Generator
	remaining int64
}

func NewStream(gen Generator, count, maxRecords int64) (*Stream, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative count %d for entity %q", domain.ErrInvalidSpec, count, gen.EntityType())
	}
	if maxRecords <= 0 {
		maxRecords = DefaultMaxRecords
	}
	if count > maxRecords {
		return nil, fmt.Errorf("%w: entity %q requested %d records, ceiling is %d",
			domain.ErrGenerationLimitExceeded, gen.EntityType(), count, maxRecords)
	}
	return &Stream{gen: gen, remaining: count}, nil
}

func (s *Stream) Remaining() int64 {
	return s.remaining
}

// NextBatch produces up to batchSize records. A nil batch signals
// exhaustion.
func (s *Stream) NextBatch(batchSize int) (*domain.Batch, error) {
	if s.remaining <= 0 {
		return nil, nil
	}
	n := int64(batchSize)
	if n > s.remaining {
		n = s.remaining
	}
	batch := domain.NewBatch(s.gen.Schema())
	for i := int64(0); i < n; i++ {
		rec, err := s.gen.Next()
		if err != nil {
			return nil, fmt.Errorf("entity %q: %w", s.gen.EntityType(), err)
		}
		if err := batch.Append(rec); err != nil {
			return nil, fmt.Errorf("entity %q: %w", s.gen.EntityType(), err)
		}
	}
	s.remaining -= n
	return batch, nil
}

// Generate is the direct library entry point: it resolves the entity
// type from the default registry and materializes the whole sequence.
func Generate(spec domain.GenerationSpec) ([]domain.Record, error) {
	gen, err := Default().Resolve(spec.EntityType, Config{Seed: spec.Seed})
	if err != nil {
		return nil, err
	}
	stream, err := NewStream(gen, spec.Count, 0)
	if err != nil {
		return nil, err
	}

	batchSize := spec.BatchSize
	if batchSize <= 0 {
		batchSize = 1000
	}

	records := make([]domain.Record, 0, spec.Count)
	for {
		batch, err := stream.NextBatch(batchSize)
		if err != nil {
			return nil, err
		}
		if batch == nil {
			break
		}
		for _, row := range batch.Rows {
			records = append(records, domain.Record{Fields: batch.Columns, Values: row})
		}
	}
	return records, nil
}
