// Package validation checks dataset specs once, at the orchestrator
// boundary. Hard violations surface domain.ErrInvalidSpec; ratio
// imbalances are quality signals returned as warnings, never errors.
package validation

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/mmrzaf/earthgen/internal/domain"
	"github.com/mmrzaf/earthgen/internal/generators"
)

// Recommended people-to-companies bounds from the source data model: a
// company-heavy dataset has no employable population to draw from.
const (
	MinRatioPeopleToCompanies = 1.0
	MaxRatioPeopleToCompanies = 100.0
)

// identifier validation: simple SQL identifiers only, applied to table
// names before they reach SQL text.
var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func IsValidIdentifier(s string) bool {
	return identRe.MatchString(s)
}

// ValidateDatasetSpec verifies the spec against the registry. It returns
// on the first violation so callers get one actionable message.
func ValidateDatasetSpec(spec *domain.DatasetSpec, registry *generators.Registry) error {
	if spec == nil {
		return fmt.Errorf("%w: nil spec", domain.ErrInvalidSpec)
	}
	if len(spec.Entities) == 0 {
		return fmt.Errorf("%w: no entities requested", domain.ErrInvalidSpec)
	}
	if spec.BatchSize <= 0 {
		return fmt.Errorf("%w: batch_size must be > 0, got %d", domain.ErrInvalidSpec, spec.BatchSize)
	}
	if _, err := domain.ParseWriteMode(string(spec.WriteMode)); err != nil {
		return err
	}

	for _, entityType := range sortedEntities(spec) {
		count := spec.Entities[entityType]
		if count < 0 {
			return fmt.Errorf("%w: entity %q count must be >= 0, got %d", domain.ErrInvalidSpec, entityType, count)
		}
		if !registry.Known(entityType) {
			return fmt.Errorf("%w: %q (available: %v)", domain.ErrUnknownEntityType, entityType, registry.Types())
		}
	}
	return nil
}

// RatioWarnings reports entity-count ratios outside the recommended
// bounds.
func RatioWarnings(spec *domain.DatasetSpec) []string {
	people, hasPeople := spec.Entities[generators.EntityPerson]
	companies, hasCompanies := spec.Entities[generators.EntityCompany]
	if !hasPeople || !hasCompanies || companies == 0 {
		return nil
	}

	ratio := float64(people) / float64(companies)
	var warnings []string
	if ratio < MinRatioPeopleToCompanies {
		warnings = append(warnings, fmt.Sprintf(
			"companies (%d) exceed people (%d); ratio %.2f is below the recommended minimum %.0f",
			companies, people, ratio, MinRatioPeopleToCompanies))
	}
	if ratio > MaxRatioPeopleToCompanies {
		warnings = append(warnings, fmt.Sprintf(
			"people (%d) far exceed companies (%d); ratio %.2f is above the recommended maximum %.0f",
			people, companies, ratio, MaxRatioPeopleToCompanies))
	}
	return warnings
}

func sortedEntities(spec *domain.DatasetSpec) []string {
	types := make([]string, 0, len(spec.Entities))
	for t := range spec.Entities {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
