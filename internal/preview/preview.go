// Package preview produces a handful of throwaway records per entity
// type for eyeballing field shapes before a real run. Preview output is
// not seeded and not reproducible; reproducible data comes from the
// generators package.
package preview

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"

	"github.com/mmrzaf/earthgen/internal/domain"
	"github.com/mmrzaf/earthgen/internal/generators"
)

const MaxRows = 50

// Records returns up to n sample records for the entity type.
func Records(entityType string, n int) ([]domain.Record, error) {
	if n <= 0 {
		n = 5
	}
	if n > MaxRows {
		n = MaxRows
	}

	switch entityType {
	case generators.EntityPerson:
		return persons(n), nil
	case generators.EntityCompany:
		return companies(n), nil
	case generators.EntityCareerStep:
		return careerSteps(n), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownEntityType, entityType)
	}
}

func persons(n int) []domain.Record {
	fields := []string{"person_id", "first_name", "last_name", "email", "phone", "age", "city"}
	out := make([]domain.Record, n)
	for i := range out {
		first := faker.FirstName()
		last := faker.LastName()
		out[i] = domain.Record{
			Fields: fields,
			Values: []interface{}{
				uuid.New().String(),
				first,
				last,
				strings.ToLower(first + "." + last + "@example.com"),
				faker.Phonenumber(),
				int64(18 + rand.Intn(68)),
				faker.GetRealAddress().City,
			},
		}
	}
	return out
}

func companies(n int) []domain.Record {
	fields := []string{"company_id", "company_name", "industry", "employee_count", "founded_year"}
	industries := []string{"technology", "financial_services", "healthcare", "professional_services", "manufacturing", "general"}
	out := make([]domain.Record, n)
	for i := range out {
		out[i] = domain.Record{
			Fields: fields,
			Values: []interface{}{
				uuid.New().String(),
				faker.LastName() + " " + faker.Word() + " Inc",
				industries[rand.Intn(len(industries))],
				int64(1 + rand.Intn(5000)),
				int64(time.Now().Year() - rand.Intn(60)),
			},
		}
	}
	return out
}

func careerSteps(n int) []domain.Record {
	fields := []string{"step_id", "career_id", "step_index", "age", "career_level", "job_title"}
	careerID := uuid.New().String()
	age := 22
	out := make([]domain.Record, n)
	for i := range out {
		level := 1 + i/2
		if level > 8 {
			level = 8
		}
		out[i] = domain.Record{
			Fields: fields,
			Values: []interface{}{
				uuid.New().String(),
				careerID,
				int64(i),
				int64(age),
				fmt.Sprintf("CL-%d", level),
				faker.Word() + " " + faker.Word(),
			},
		}
		age += 2 + rand.Intn(4)
	}
	return out
}
