package correlate

import "math/rand"

// Industries with their salary multipliers, a cut of the NAICS-aligned
// set from the source data with realistic US job-market weights.
var industryMultipliers = map[string]float64{
	"technology":            1.4,
	"financial_services":    1.3,
	"healthcare":            1.0,
	"professional_services": 0.9,
	"manufacturing":         0.8,
	"general":               0.9,
}

var (
	industryNames   = []string{"technology", "financial_services", "healthcare", "professional_services", "manufacturing", "general"}
	industryWeights = []float64{0.15, 0.12, 0.18, 0.15, 0.15, 0.25}
)

func Industries() []string {
	return industryNames
}

func IndustryMultiplier(industry string) float64 {
	if m, ok := industryMultipliers[industry]; ok {
		return m
	}
	return 1.0
}

// IndustryFor draws an industry with the configured distribution.
func IndustryFor(rng *rand.Rand) string {
	return WeightedChoice(rng, industryNames, industryWeights)
}

var careerTitles = map[string]map[CareerLevel][]string{
	"technology": {
		LevelEntry:     {"Software Engineer I", "Junior Developer", "QA Tester", "Technical Support Specialist"},
		LevelAssociate: {"Software Engineer II", "Frontend Developer", "Backend Developer", "Data Analyst"},
		LevelMid:       {"Software Engineer III", "Full Stack Developer", "DevOps Engineer", "Product Analyst"},
		LevelSenior:    {"Senior Software Engineer", "Technical Lead", "Senior Data Scientist", "Security Engineer"},
		LevelLead:      {"Engineering Manager", "Lead Developer", "Principal Engineer", "Team Lead"},
		LevelDirector:  {"Senior Engineering Manager", "Director of Engineering", "Principal Architect"},
		LevelVP:        {"VP of Engineering", "Senior Director of Technology", "Chief Architect"},
		LevelExecutive: {"Chief Technology Officer", "VP of Product", "Chief Data Officer"},
	},
	"financial_services": {
		LevelEntry:     {"Financial Analyst I", "Banking Associate", "Credit Analyst"},
		LevelAssociate: {"Financial Analyst II", "Investment Advisor", "Portfolio Analyst"},
		LevelMid:       {"Senior Financial Analyst", "Relationship Manager", "Risk Analyst"},
		LevelSenior:    {"Finance Manager", "Portfolio Manager", "Branch Manager"},
		LevelLead:      {"Senior Finance Manager", "Investment Director", "Risk Manager"},
		LevelDirector:  {"Finance Director", "VP of Investments", "Managing Director"},
		LevelVP:        {"VP of Finance", "Senior Managing Director", "Chief Investment Officer"},
		LevelExecutive: {"Chief Financial Officer", "President", "Chief Executive Officer"},
	},
	"healthcare": {
		LevelEntry:     {"Medical Assistant", "Healthcare Aide", "Lab Technician"},
		LevelAssociate: {"Registered Nurse", "Physical Therapist", "Medical Technologist"},
		LevelMid:       {"Senior Nurse", "Nurse Practitioner", "Clinical Specialist"},
		LevelSenior:    {"Charge Nurse", "Clinical Manager", "Department Supervisor"},
		LevelLead:      {"Nursing Manager", "Clinical Director", "Program Manager"},
		LevelDirector:  {"Director of Nursing", "Medical Director", "VP of Patient Care"},
		LevelVP:        {"VP of Clinical Operations", "Chief Medical Officer"},
		LevelExecutive: {"Chief Executive Officer", "President", "System CEO"},
	},
	"professional_services": {
		LevelEntry:     {"Junior Consultant", "Associate", "Staff Accountant"},
		LevelAssociate: {"Consultant", "Senior Associate", "Accountant"},
		LevelMid:       {"Senior Consultant", "Manager", "Principal Analyst"},
		LevelSenior:    {"Principal Consultant", "Senior Manager", "Director"},
		LevelLead:      {"Director", "Principal", "Senior Director"},
		LevelDirector:  {"Senior Director", "Partner", "VP of Consulting"},
		LevelVP:        {"Senior Partner", "Executive Director", "Practice Leader"},
		LevelExecutive: {"Managing Partner", "CEO", "Global Managing Partner"},
	},
	"manufacturing": {
		LevelEntry:     {"Production Worker", "Assembly Technician", "Machine Operator"},
		LevelAssociate: {"Process Technician", "Quality Analyst", "Maintenance Technician"},
		LevelMid:       {"Team Lead", "Process Engineer", "Shift Supervisor"},
		LevelSenior:    {"Production Supervisor", "Manufacturing Engineer", "Quality Manager"},
		LevelLead:      {"Production Manager", "Operations Manager", "Plant Manager"},
		LevelDirector:  {"VP of Operations", "General Manager", "Operations Director"},
		LevelVP:        {"Senior VP of Operations", "Division President", "Executive VP"},
		LevelExecutive: {"Chief Executive Officer", "President", "Chief Operating Officer"},
	},
	"general": {
		LevelEntry:     {"Customer Service Rep", "Administrative Assistant", "Support Specialist"},
		LevelAssociate: {"Administrative Coordinator", "Specialist", "Associate"},
		LevelMid:       {"Team Lead", "Operations Specialist", "Program Coordinator"},
		LevelSenior:    {"Supervisor", "Operations Manager", "Team Manager"},
		LevelLead:      {"Manager", "Department Manager", "Program Manager"},
		LevelDirector:  {"Senior Manager", "Director", "Regional Manager"},
		LevelVP:        {"Vice President", "Executive Director", "Senior VP"},
		LevelExecutive: {"President", "Chief Executive Officer", "Managing Director"},
	},
}

// JobTitle draws a title for the industry and level. Unknown industries
// fall back to the general pool.
func JobTitle(rng *rand.Rand, industry string, level CareerLevel) string {
	titles, ok := careerTitles[industry]
	if !ok {
		titles = careerTitles["general"]
	}
	pool := titles[level]
	if len(pool) == 0 {
		pool = careerTitles["general"][level]
	}
	return Choice(rng, pool)
}

var employmentStatuses = []string{
	"Full-time", "Part-time", "Contract", "Freelance",
	"Self-employed", "Unemployed", "Student", "Retired",
}

var employmentWeights = []float64{0.55, 0.12, 0.06, 0.05, 0.07, 0.05, 0.05, 0.05}

func EmploymentStatuses() []string {
	return employmentStatuses
}

// EmploymentStatusFor draws an employment status; students skew young and
// retirees old.
func EmploymentStatusFor(rng *rand.Rand, age int) string {
	status := WeightedChoice(rng, employmentStatuses, employmentWeights)
	if status == "Student" && age > 30 {
		return "Full-time"
	}
	if status == "Retired" && age < 55 {
		return "Full-time"
	}
	if age >= 70 && status != "Self-employed" {
		return "Retired"
	}
	return status
}

var educationLevels = []string{
	"High School", "Some College", "Associate Degree",
	"Bachelor's Degree", "Master's Degree", "Doctoral Degree",
}

func EducationLevelFor(rng *rand.Rand) string {
	return WeightedChoice(rng, educationLevels,
		[]float64{0.25, 0.15, 0.10, 0.30, 0.15, 0.05})
}

var maritalStatuses = []string{"Single", "Married", "Divorced", "Widowed", "Separated"}

func MaritalStatusFor(rng *rand.Rand, age int) string {
	if age < 25 {
		return WeightedChoice(rng, maritalStatuses, []float64{0.85, 0.12, 0.02, 0.0, 0.01})
	}
	return WeightedChoice(rng, maritalStatuses, []float64{0.30, 0.50, 0.12, 0.04, 0.04})
}
