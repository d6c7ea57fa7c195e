// Package correlate holds the attribute correlation rules: pure functions
// mapping already-generated fields (age, industry, employment status) plus
// a caller-owned random stream to the remaining correlated fields. Nothing
// in this package performs I/O or keeps state between calls.
package correlate

import (
	"fmt"
	"math/rand"
)

const (
	MinAge = 18
	MaxAge = 85
)

// CareerLevel is the 8-tier scale from entry (1) to executive (8).
type CareerLevel int

const (
	LevelEntry     CareerLevel = 1
	LevelAssociate CareerLevel = 2
	LevelMid       CareerLevel = 3
	LevelSenior    CareerLevel = 4
	LevelLead      CareerLevel = 5
	LevelDirector  CareerLevel = 6
	LevelVP        CareerLevel = 7
	LevelExecutive CareerLevel = 8
)

func (l CareerLevel) String() string {
	return fmt.Sprintf("CL-%d", int(l))
}

// levelBracket maps an age range to the career levels reachable in it.
// Both the floor and the ceiling are non-decreasing across brackets, so
// career level is monotone in age bracket.
type levelBracket struct {
	maxAge  int // exclusive
	levels  []CareerLevel
	weights []float64
}

var careerBrackets = []levelBracket{
	{22, []CareerLevel{1}, []float64{1.0}},
	{25, []CareerLevel{1, 2}, []float64{0.8, 0.2}},
	{30, []CareerLevel{1, 2, 3}, []float64{0.2, 0.6, 0.2}},
	{35, []CareerLevel{2, 3, 4}, []float64{0.2, 0.6, 0.2}},
	{40, []CareerLevel{3, 4, 5}, []float64{0.3, 0.5, 0.2}},
	{45, []CareerLevel{3, 4, 5, 6}, []float64{0.2, 0.4, 0.3, 0.1}},
	{50, []CareerLevel{4, 5, 6, 7}, []float64{0.2, 0.4, 0.3, 0.1}},
	{55, []CareerLevel{5, 6, 7, 8}, []float64{0.2, 0.4, 0.3, 0.1}},
	{60, []CareerLevel{6, 7, 8}, []float64{0.4, 0.4, 0.2}},
	{MaxAge + 1, []CareerLevel{6, 7, 8}, []float64{0.4, 0.4, 0.2}},
}

func bracketFor(age int) levelBracket {
	for _, b := range careerBrackets {
		if age < b.maxAge {
			return b
		}
	}
	return careerBrackets[len(careerBrackets)-1]
}

// CareerLevelFor draws a career level for the given age from its bracket.
func CareerLevelFor(rng *rand.Rand, age int) CareerLevel {
	b := bracketFor(age)
	return WeightedChoice(rng, b.levels, b.weights)
}

// LevelBounds returns the lowest and highest career level reachable at
// the given age.
func LevelBounds(age int) (CareerLevel, CareerLevel) {
	b := bracketFor(age)
	return b.levels[0], b.levels[len(b.levels)-1]
}

// Base salary ranges per career level, before industry and experience
// adjustment.
var salaryRanges = map[CareerLevel][2]int64{
	LevelEntry:     {35000, 55000},
	LevelAssociate: {45000, 70000},
	LevelMid:       {60000, 90000},
	LevelSenior:    {80000, 120000},
	LevelLead:      {100000, 150000},
	LevelDirector:  {130000, 200000},
	LevelVP:        {180000, 300000},
	LevelExecutive: {250000, 500000},
}

func experienceMultiplier(age int) float64 {
	if age <= 30 {
		return 1.0
	}
	bonus := float64(age-30) * 0.02
	if bonus > 0.3 {
		bonus = 0.3
	}
	return 1.0 + bonus
}

// SalaryBounds returns the inclusive salary band for a (level, industry,
// age) combination. Generated salaries always fall inside it.
func SalaryBounds(level CareerLevel, industry string, age int) (int64, int64) {
	base := salaryRanges[level]
	mult := IndustryMultiplier(industry) * experienceMultiplier(age)
	lo := int64(float64(base[0]) * mult)
	hi := int64(float64(base[1]) * mult)
	// Rounding to $1000 may land just outside the raw band.
	return lo - 500, hi + 500
}

// Salary draws an annual salary within the band for the given level,
// industry and age, rounded to the nearest $1000.
func Salary(rng *rand.Rand, level CareerLevel, industry string, age int) int64 {
	base := salaryRanges[level]
	mult := IndustryMultiplier(industry) * experienceMultiplier(age)
	lo := int64(float64(base[0]) * mult)
	hi := int64(float64(base[1]) * mult)
	return RoundTo1000(IntBetween(rng, lo, hi))
}

// CareerProfile is the correlated career portion of a person record.
type CareerProfile struct {
	Level        CareerLevel
	JobTitle     string
	Industry     string
	AnnualIncome int64
}

// CareerFor derives a full career profile from age and industry.
func CareerFor(rng *rand.Rand, age int, industry string) CareerProfile {
	level := CareerLevelFor(rng, age)
	return CareerProfile{
		Level:        level,
		JobTitle:     JobTitle(rng, industry, level),
		Industry:     industry,
		AnnualIncome: Salary(rng, level, industry, age),
	}
}

// CareerForStatus adjusts the career profile for non-standard employment
// situations. Standard statuses fall through to CareerFor.
func CareerForStatus(rng *rand.Rand, age int, industry, status string) CareerProfile {
	switch status {
	case "Unemployed":
		return CareerProfile{
			Level:        CareerLevelFor(rng, age),
			JobTitle:     "Unemployed",
			Industry:     industry,
			AnnualIncome: RoundTo1000(IntBetween(rng, 0, 15000)),
		}
	case "Student":
		return CareerProfile{
			Level:        LevelEntry,
			JobTitle:     "Student",
			Industry:     industry,
			AnnualIncome: RoundTo1000(IntBetween(rng, 0, 25000)),
		}
	case "Retired":
		level := WeightedChoice(rng,
			[]CareerLevel{LevelLead, LevelDirector, LevelVP, LevelExecutive},
			[]float64{0.4, 0.3, 0.2, 0.1})
		return CareerProfile{
			Level:        level,
			JobTitle:     "Retired",
			Industry:     industry,
			AnnualIncome: RoundTo1000(IntBetween(rng, 30000, 80000)),
		}
	default:
		return CareerFor(rng, age, industry)
	}
}
