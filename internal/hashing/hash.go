// Package hashing produces the canonical fingerprint of a dataset spec.
// Two specs with the same entities, counts, seed, batch size and write
// mode hash identically regardless of map iteration order.
package hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/mmrzaf/earthgen/internal/domain"
)

type specHashPayload struct {
	Entities  []entityCount `json:"entities"`
	Seed      int64         `json:"seed"`
	BatchSize int           `json:"batch_size"`
	WriteMode string        `json:"write_mode"`
}

type entityCount struct {
	EntityType string `json:"entity_type"`
	Count      int64  `json:"count"`
}

func HashDatasetSpec(spec *domain.DatasetSpec) (string, error) {
	entities := make([]entityCount, 0, len(spec.Entities))
	for name, count := range spec.Entities {
		entities = append(entities, entityCount{EntityType: name, Count: count})
	}
	sort.Slice(entities, func(i, j int) bool {
		return entities[i].EntityType < entities[j].EntityType
	})

	p := specHashPayload{
		Entities:  entities,
		Seed:      spec.Seed,
		BatchSize: spec.BatchSize,
		WriteMode: string(spec.WriteMode),
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
