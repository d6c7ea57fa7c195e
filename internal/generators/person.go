package generators

import (
	"fmt"
	"math/rand"

	"github.com/mmrzaf/earthgen/internal/correlate"
	"github.com/mmrzaf/earthgen/internal/domain"
)

var personSchema = []domain.Field{
	{Name: "person_id", Type: domain.FieldTypeText},
	{Name: "first_name", Type: domain.FieldTypeText},
	{Name: "last_name", Type: domain.FieldTypeText},
	{Name: "full_name", Type: domain.FieldTypeText},
	{Name: "gender", Type: domain.FieldTypeText},
	{Name: "age", Type: domain.FieldTypeInt},
	{Name: "date_of_birth", Type: domain.FieldTypeDate},
	{Name: "email", Type: domain.FieldTypeText},
	{Name: "username", Type: domain.FieldTypeText},
	{Name: "phone_number", Type: domain.FieldTypeText},
	{Name: "street_address", Type: domain.FieldTypeText},
	{Name: "city", Type: domain.FieldTypeText},
	{Name: "state", Type: domain.FieldTypeText},
	{Name: "zip_code", Type: domain.FieldTypeText},
	{Name: "education_level", Type: domain.FieldTypeText},
	{Name: "marital_status", Type: domain.FieldTypeText},
	{Name: "employment_status", Type: domain.FieldTypeText},
	{Name: "industry", Type: domain.FieldTypeText},
	{Name: "career_level", Type: domain.FieldTypeInt},
	{Name: "job_title", Type: domain.FieldTypeText},
	{Name: "annual_income", Type: domain.FieldTypeBigInt},
	{Name: "created_at", Type: domain.FieldTypeTimestamp},
}

// PersonGenerator produces demographic profiles with the career fields
// correlated through the engine: age bounds the career level, level and
// industry bound the salary.
type PersonGenerator struct {
	cfg Config
	rng *rand.Rand
}

func NewPersonGenerator(cfg Config) *PersonGenerator {
	cfg = cfg.normalized()
	return &PersonGenerator{cfg: cfg, rng: newRand(cfg, EntityPerson)}
}

func (g *PersonGenerator) EntityType() string { return EntityPerson }

func (g *PersonGenerator) Table() string { return "persons" }

func (g *PersonGenerator) Schema() []domain.Field { return personSchema }

// People are generated after companies when both are requested, keeping
// the employable-population ordering of the source data.
func (g *PersonGenerator) DependsOn() []string { return []string{EntityCompany} }

func (g *PersonGenerator) Next() (domain.Record, error) {
	rng := g.rng

	age := int(correlate.IntBetween(rng, correlate.MinAge, correlate.MaxAge))

	var gender, firstName string
	if rng.Float64() < 0.5 {
		gender = "Male"
		firstName = correlate.Choice(rng, maleFirstNames)
	} else {
		gender = "Female"
		firstName = correlate.Choice(rng, femaleFirstNames)
	}
	lastName := correlate.Choice(rng, lastNames)
	fullName := firstName + " " + lastName

	dob := g.cfg.RefTime.AddDate(-age, 0, -rng.Intn(364)).Format("2006-01-02")

	email, err := correlate.Email(rng, firstName, lastName)
	if err != nil {
		return domain.Record{}, err
	}
	username := correlate.Username(rng, firstName, lastName)
	phone, err := correlate.Phone(rng)
	if err != nil {
		return domain.Record{}, err
	}

	loc := correlate.Choice(rng, locations)
	street := fmt.Sprintf("%d %s %s",
		1+rng.Intn(9999),
		correlate.Choice(rng, streetNames),
		correlate.Choice(rng, streetSuffixes))
	zip := fmt.Sprintf("%s%02d", loc.zipPrefix, rng.Intn(100))

	education := correlate.EducationLevelFor(rng)
	marital := correlate.MaritalStatusFor(rng, age)
	status := correlate.EmploymentStatusFor(rng, age)
	industry := correlate.IndustryFor(rng)
	career := correlate.CareerForStatus(rng, age, industry, status)

	return domain.Record{
		Fields: batchColumns(personSchema),
		Values: []interface{}{
			correlate.ID(rng),
			firstName,
			lastName,
			fullName,
			gender,
			int64(age),
			dob,
			email,
			username,
			phone,
			street,
			loc.city,
			loc.state,
			zip,
			education,
			marital,
			status,
			career.Industry,
			int64(career.Level),
			career.JobTitle,
			career.AnnualIncome,
			g.cfg.RefTime,
		},
	}, nil
}

func batchColumns(schema []domain.Field) []string {
	cols := make([]string, len(schema))
	for i, f := range schema {
		cols[i] = f.Name
	}
	return cols
}
