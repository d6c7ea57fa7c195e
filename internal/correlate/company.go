package correlate

import (
	"math/rand"
	"strings"
)

// Company size categories with employee ranges, weighted toward small
// companies as in real market distributions.
type SizeCategory struct {
	Name         string
	MinEmployees int64
	MaxEmployees int64
}

var sizeCategories = []SizeCategory{
	{"Startup", 1, 10},
	{"Small", 11, 50},
	{"Medium", 51, 250},
	{"Large", 251, 1000},
	{"Enterprise", 1001, 10000},
	{"Mega Corp", 10001, 500000},
}

var sizeWeights = []float64{0.25, 0.35, 0.20, 0.12, 0.06, 0.02}

// RevenueRange pairs a display label with the dollar band for a size
// category.
type RevenueRange struct {
	Label string
	Min   int64
	Max   int64
}

var revenueRanges = map[string]RevenueRange{
	"Startup":    {"$0-1M", 0, 1_000_000},
	"Small":      {"$1M-10M", 1_000_000, 10_000_000},
	"Medium":     {"$10M-100M", 10_000_000, 100_000_000},
	"Large":      {"$100M-1B", 100_000_000, 1_000_000_000},
	"Enterprise": {"$1B-10B", 1_000_000_000, 10_000_000_000},
	"Mega Corp":  {"$10B+", 10_000_000_000, 500_000_000_000},
}

var businessTypes = []string{
	"Corporation", "LLC", "Partnership", "Sole Proprietorship",
	"S Corporation", "B Corporation", "Non-Profit", "Cooperative",
}

var legalSuffixes = []string{"Inc.", "LLC", "Corp.", "Ltd.", "Co.", "LP"}

var creditRatings = []string{
	"AAA", "AA+", "AA", "AA-", "A+", "A", "A-",
	"BBB+", "BBB", "BBB-", "BB+", "BB", "BB-",
	"B+", "B", "B-", "CCC", "CC", "C", "D",
}

var growthStages = []string{"Startup", "Growth", "Mature", "Decline"}

// CompanySizeFor draws a size category and an employee count within it.
func CompanySizeFor(rng *rand.Rand) (SizeCategory, int64) {
	cat := WeightedChoice(rng, sizeCategories, sizeWeights)
	return cat, IntBetween(rng, cat.MinEmployees, cat.MaxEmployees)
}

// RevenueFor returns the revenue range for a size category plus a drawn
// annual revenue inside it.
func RevenueFor(rng *rand.Rand, sizeName string) (RevenueRange, int64) {
	rr, ok := revenueRanges[sizeName]
	if !ok {
		rr = revenueRanges["Small"]
	}
	return rr, IntBetween(rng, rr.Min, rr.Max)
}

func RevenueBounds(sizeName string) (int64, int64) {
	rr, ok := revenueRanges[sizeName]
	if !ok {
		rr = revenueRanges["Small"]
	}
	return rr.Min, rr.Max
}

func EmployeeBounds(sizeName string) (int64, int64) {
	for _, cat := range sizeCategories {
		if cat.Name == sizeName {
			return cat.MinEmployees, cat.MaxEmployees
		}
	}
	return 0, 0
}

func BusinessTypeFor(rng *rand.Rand) string {
	return Choice(rng, businessTypes)
}

// LegalName appends a legal suffix unless the name already carries one.
func LegalName(rng *rand.Rand, companyName string) string {
	for _, suffix := range legalSuffixes {
		if strings.Contains(companyName, suffix) {
			return companyName
		}
	}
	return companyName + " " + Choice(rng, legalSuffixes)
}

// CreditRatingFor skews larger companies toward investment grade.
func CreditRatingFor(rng *rand.Rand, sizeName string) string {
	switch sizeName {
	case "Enterprise", "Mega Corp":
		return Choice(rng, creditRatings[:10])
	case "Large", "Medium":
		return Choice(rng, creditRatings[4:14])
	default:
		return Choice(rng, creditRatings[7:])
	}
}

// GrowthStageFor correlates the stage with company age in years.
func GrowthStageFor(rng *rand.Rand, yearsInBusiness int) string {
	switch {
	case yearsInBusiness < 5:
		return WeightedChoice(rng, growthStages, []float64{0.7, 0.3, 0.0, 0.0})
	case yearsInBusiness < 15:
		return WeightedChoice(rng, growthStages, []float64{0.1, 0.6, 0.3, 0.0})
	case yearsInBusiness < 40:
		return WeightedChoice(rng, growthStages, []float64{0.0, 0.2, 0.7, 0.1})
	default:
		return WeightedChoice(rng, growthStages, []float64{0.0, 0.05, 0.7, 0.25})
	}
}

// IsPublicFor correlates public listing with company size.
func IsPublicFor(rng *rand.Rand, sizeName string) bool {
	switch sizeName {
	case "Mega Corp":
		return rng.Float64() < 0.9
	case "Enterprise":
		return rng.Float64() < 0.6
	case "Large":
		return rng.Float64() < 0.25
	default:
		return rng.Float64() < 0.02
	}
}

// StockSymbol derives a ticker from the company name.
func StockSymbol(rng *rand.Rand, companyName string) string {
	letters := make([]rune, 0, 4)
	for _, r := range strings.ToUpper(companyName) {
		if r >= 'A' && r <= 'Z' {
			letters = append(letters, r)
		}
		if len(letters) == 4 {
			break
		}
	}
	for len(letters) < 3 {
		letters = append(letters, rune('A'+rng.Intn(26)))
	}
	return string(letters)
}
