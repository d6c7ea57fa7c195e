package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/mmrzaf/earthgen/internal/domain"
	"github.com/mmrzaf/earthgen/internal/generators"
)

func validSpec() *domain.DatasetSpec {
	return &domain.DatasetSpec{
		Entities:  map[string]int64{"person": 100, "company": 10},
		Seed:      42,
		BatchSize: 1000,
		WriteMode: domain.WriteModeAppend,
	}
}

func TestValidateDatasetSpec(t *testing.T) {
	registry := generators.Default()

	if err := ValidateDatasetSpec(validSpec(), registry); err != nil {
		t.Fatalf("valid spec rejected: %v", err)
	}

	cases := []struct {
		name    string
		mutate  func(*domain.DatasetSpec)
		wantErr error
	}{
		{
			name:    "no entities",
			mutate:  func(s *domain.DatasetSpec) { s.Entities = nil },
			wantErr: domain.ErrInvalidSpec,
		},
		{
			name:    "zero batch size",
			mutate:  func(s *domain.DatasetSpec) { s.BatchSize = 0 },
			wantErr: domain.ErrInvalidSpec,
		},
		{
			name:    "bad write mode",
			mutate:  func(s *domain.DatasetSpec) { s.WriteMode = "upsert" },
			wantErr: domain.ErrInvalidSpec,
		},
		{
			name:    "negative count",
			mutate:  func(s *domain.DatasetSpec) { s.Entities["person"] = -1 },
			wantErr: domain.ErrInvalidSpec,
		},
		{
			name:    "unknown entity",
			mutate:  func(s *domain.DatasetSpec) { s.Entities["starship"] = 5 },
			wantErr: domain.ErrUnknownEntityType,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec := validSpec()
			tc.mutate(spec)
			err := ValidateDatasetSpec(spec, registry)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
		})
	}

	if err := ValidateDatasetSpec(nil, registry); !errors.Is(err, domain.ErrInvalidSpec) {
		t.Fatalf("nil spec: got %v, want ErrInvalidSpec", err)
	}
}

func TestValidateDatasetSpec_ZeroCountAllowed(t *testing.T) {
	spec := validSpec()
	spec.Entities["person"] = 0
	if err := ValidateDatasetSpec(spec, generators.Default()); err != nil {
		t.Fatalf("zero count rejected: %v", err)
	}
}

func TestRatioWarnings(t *testing.T) {
	spec := validSpec()
	spec.Entities["person"] = 100
	spec.Entities["company"] = 10
	if warnings := RatioWarnings(spec); len(warnings) != 0 {
		t.Fatalf("ratio 10 warned: %v", warnings)
	}

	spec.Entities["person"] = 5
	spec.Entities["company"] = 50
	warnings := RatioWarnings(spec)
	if len(warnings) != 1 || !strings.Contains(warnings[0], "below") {
		t.Fatalf("ratio 0.1: got %v", warnings)
	}

	spec.Entities["person"] = 100000
	spec.Entities["company"] = 10
	warnings = RatioWarnings(spec)
	if len(warnings) != 1 || !strings.Contains(warnings[0], "above") {
		t.Fatalf("ratio 10000: got %v", warnings)
	}

	// Without both entity types there is nothing to compare.
	spec.Entities = map[string]int64{"person": 100}
	if warnings := RatioWarnings(spec); warnings != nil {
		t.Fatalf("person-only spec warned: %v", warnings)
	}
}

func TestIsValidIdentifier(t *testing.T) {
	for _, ok := range []string{"persons", "raw_persons", "_t1"} {
		if !IsValidIdentifier(ok) {
			t.Fatalf("%q rejected", ok)
		}
	}
	for _, bad := range []string{"", "1persons", "raw.persons", "p;drop"} {
		if IsValidIdentifier(bad) {
			t.Fatalf("%q accepted", bad)
		}
	}
}
