package generators

import (
	"math/rand"

	"github.com/mmrzaf/earthgen/internal/correlate"
	"github.com/mmrzaf/earthgen/internal/domain"
)

var companySchema = []domain.Field{
	{Name: "company_id", Type: domain.FieldTypeText},
	{Name: "company_name", Type: domain.FieldTypeText},
	{Name: "legal_name", Type: domain.FieldTypeText},
	{Name: "industry", Type: domain.FieldTypeText},
	{Name: "company_size", Type: domain.FieldTypeText},
	{Name: "employee_count", Type: domain.FieldTypeBigInt},
	{Name: "founded_year", Type: domain.FieldTypeInt},
	{Name: "years_in_business", Type: domain.FieldTypeInt},
	{Name: "revenue_range", Type: domain.FieldTypeText},
	{Name: "annual_revenue", Type: domain.FieldTypeBigInt},
	{Name: "business_type", Type: domain.FieldTypeText},
	{Name: "is_public", Type: domain.FieldTypeBool},
	{Name: "stock_symbol", Type: domain.FieldTypeText},
	{Name: "credit_rating", Type: domain.FieldTypeText},
	{Name: "growth_stage", Type: domain.FieldTypeText},
	{Name: "city", Type: domain.FieldTypeText},
	{Name: "state", Type: domain.FieldTypeText},
	{Name: "website", Type: domain.FieldTypeText},
	{Name: "email_domain", Type: domain.FieldTypeText},
	{Name: "created_at", Type: domain.FieldTypeTimestamp},
}

// CompanyGenerator produces business profiles where size category drives
// the employee count and revenue band, and company age drives the growth
// stage.
type CompanyGenerator struct {
	cfg Config
	rng *rand.Rand
}

func NewCompanyGenerator(cfg Config) *CompanyGenerator {
	cfg = cfg.normalized()
	return &CompanyGenerator{cfg: cfg, rng: newRand(cfg, EntityCompany)}
}

func (g *CompanyGenerator) EntityType() string { return EntityCompany }

func (g *CompanyGenerator) Table() string { return "companies" }

func (g *CompanyGenerator) Schema() []domain.Field { return companySchema }

func (g *CompanyGenerator) DependsOn() []string { return nil }

func (g *CompanyGenerator) companyName() string {
	rng := g.rng
	switch rng.Intn(3) {
	case 0:
		return correlate.Choice(rng, lastNames) + " " + correlate.Choice(rng, companyNouns)
	case 1:
		return correlate.Choice(rng, locations).city + " " + correlate.Choice(rng, companyNouns)
	default:
		return correlate.Choice(rng, companyAdjectives) + " " + correlate.Choice(rng, companyNouns)
	}
}

func (g *CompanyGenerator) Next() (domain.Record, error) {
	rng := g.rng

	name := g.companyName()
	legalName := correlate.LegalName(rng, name)
	industry := correlate.IndustryFor(rng)

	size, employees := correlate.CompanySizeFor(rng)
	revRange, revenue := correlate.RevenueFor(rng, size.Name)

	yearsInBusiness := 1 + rng.Intn(60)
	foundedYear := g.cfg.RefTime.Year() - yearsInBusiness

	isPublic := correlate.IsPublicFor(rng, size.Name)
	symbol := ""
	if isPublic {
		symbol = correlate.StockSymbol(rng, name)
	}

	loc := correlate.Choice(rng, locations)

	return domain.Record{
		Fields: batchColumns(companySchema),
		Values: []interface{}{
			correlate.ID(rng),
			name,
			legalName,
			industry,
			size.Name,
			employees,
			int64(foundedYear),
			int64(yearsInBusiness),
			revRange.Label,
			revenue,
			correlate.BusinessTypeFor(rng),
			isPublic,
			symbol,
			correlate.CreditRatingFor(rng, size.Name),
			correlate.GrowthStageFor(rng, yearsInBusiness),
			loc.city,
			loc.state,
			correlate.Website(name),
			correlate.EmailDomainFor(name),
			g.cfg.RefTime,
		},
	}, nil
}
