package generators

import (
	"math/rand"

	"github.com/mmrzaf/earthgen/internal/correlate"
	"github.com/mmrzaf/earthgen/internal/domain"
)

var careerStepSchema = []domain.Field{
	{Name: "step_id", Type: domain.FieldTypeText},
	{Name: "career_id", Type: domain.FieldTypeText},
	{Name: "step_index", Type: domain.FieldTypeInt},
	{Name: "age", Type: domain.FieldTypeInt},
	{Name: "career_level", Type: domain.FieldTypeInt},
	{Name: "industry", Type: domain.FieldTypeText},
	{Name: "job_title", Type: domain.FieldTypeText},
	{Name: "annual_income", Type: domain.FieldTypeBigInt},
	{Name: "years_in_step", Type: domain.FieldTypeInt},
	{Name: "created_at", Type: domain.FieldTypeTimestamp},
}

// retirement bound for a trajectory; the next record starts a new career.
const careerEndAge = 62

// CareerStepGenerator emits whole career trajectories one step at a
// time: each step advances age, career level never decreases within one
// career_id, and salary follows the step's level and industry.
type CareerStepGenerator struct {
	cfg Config
	rng *rand.Rand

	careerID  string
	industry  string
	age       int
	level     correlate.CareerLevel
	stepIndex int64
}

func NewCareerStepGenerator(cfg Config) *CareerStepGenerator {
	cfg = cfg.normalized()
	return &CareerStepGenerator{cfg: cfg, rng: newRand(cfg, EntityCareerStep)}
}

func (g *CareerStepGenerator) EntityType() string { return EntityCareerStep }

func (g *CareerStepGenerator) Table() string { return "career_steps" }

func (g *CareerStepGenerator) Schema() []domain.Field { return careerStepSchema }

func (g *CareerStepGenerator) DependsOn() []string { return nil }

func (g *CareerStepGenerator) startCareer() {
	rng := g.rng
	g.careerID = correlate.ID(rng)
	g.industry = correlate.IndustryFor(rng)
	g.age = correlate.MinAge + rng.Intn(8)
	floor, _ := correlate.LevelBounds(g.age)
	g.level = floor
	g.stepIndex = 0
}

func (g *CareerStepGenerator) advance() {
	rng := g.rng
	years := 1 + rng.Intn(5)
	g.age += years
	g.stepIndex++

	// Draw from the new age bracket but never step down within one
	// trajectory.
	next := correlate.CareerLevelFor(rng, g.age)
	if next > g.level {
		g.level = next
	}
}

func (g *CareerStepGenerator) Next() (domain.Record, error) {
	rng := g.rng

	if g.careerID == "" || g.age >= careerEndAge {
		g.startCareer()
	} else {
		g.advance()
	}

	yearsInStep := 1 + rng.Intn(5)
	income := correlate.Salary(rng, g.level, g.industry, g.age)
	title := correlate.JobTitle(rng, g.industry, g.level)

	return domain.Record{
		Fields: batchColumns(careerStepSchema),
		Values: []interface{}{
			correlate.ID(rng),
			g.careerID,
			g.stepIndex,
			int64(g.age),
			int64(g.level),
			g.industry,
			title,
			income,
			int64(yearsInStep),
			g.cfg.RefTime,
		},
	}, nil
}
