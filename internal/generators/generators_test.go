package generators

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/mmrzaf/earthgen/internal/correlate"
	"github.com/mmrzaf/earthgen/internal/domain"
)

func testConfig(seed int64) Config {
	return Config{
		Seed:    seed,
		RefTime: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func collect(t *testing.T, entityType string, count int64, cfg Config) []domain.Record {
	t.Helper()
	gen, err := Default().Resolve(entityType, cfg)
	if err != nil {
		t.Fatal(err)
	}
	stream, err := NewStream(gen, count, 0)
	if err != nil {
		t.Fatal(err)
	}
	var records []domain.Record
	for {
		batch, err := stream.NextBatch(64)
		if err != nil {
			t.Fatal(err)
		}
		if batch == nil {
			break
		}
		for _, row := range batch.Rows {
			records = append(records, domain.Record{Fields: batch.Columns, Values: row})
		}
	}
	return records
}

func TestGenerate_DeterministicPerSeed(t *testing.T) {
	for _, entityType := range []string{EntityPerson, EntityCompany, EntityCareerStep} {
		a := collect(t, entityType, 50, testConfig(42))
		b := collect(t, entityType, 50, testConfig(42))
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("%s: same seed produced different sequences", entityType)
		}

		c := collect(t, entityType, 50, testConfig(43))
		if reflect.DeepEqual(a, c) {
			t.Fatalf("%s: different seeds produced identical sequences", entityType)
		}
	}
}

func TestGenerate_SeedStreamsIndependentAcrossEntities(t *testing.T) {
	// Generating companies must not shift the person stream: both draw
	// from private rngs derived per entity type.
	alone := collect(t, EntityPerson, 20, testConfig(7))
	_ = collect(t, EntityCompany, 100, testConfig(7))
	after := collect(t, EntityPerson, 20, testConfig(7))
	if !reflect.DeepEqual(alone, after) {
		t.Fatal("person stream changed after generating companies")
	}
}

func TestGenerate_SchemaUniform(t *testing.T) {
	for _, entityType := range []string{EntityPerson, EntityCompany, EntityCareerStep} {
		records := collect(t, entityType, 30, testConfig(1))
		if len(records) != 30 {
			t.Fatalf("%s: got %d records, want 30", entityType, len(records))
		}
		fields := records[0].Fields
		for i, rec := range records {
			if !reflect.DeepEqual(rec.Fields, fields) {
				t.Fatalf("%s: record %d field set differs", entityType, i)
			}
			if len(rec.Values) != len(fields) {
				t.Fatalf("%s: record %d has %d values for %d fields", entityType, i, len(rec.Values), len(fields))
			}
		}
	}
}

func TestStream_CountZeroIsEmpty(t *testing.T) {
	gen := NewPersonGenerator(testConfig(1))
	stream, err := NewStream(gen, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	batch, err := stream.NextBatch(10)
	if err != nil {
		t.Fatal(err)
	}
	if batch != nil {
		t.Fatalf("expected exhausted stream, got %d rows", batch.Len())
	}
}

func TestStream_NegativeCountRejected(t *testing.T) {
	gen := NewPersonGenerator(testConfig(1))
	_, err := NewStream(gen, -1, 0)
	if !errors.Is(err, domain.ErrInvalidSpec) {
		t.Fatalf("got %v, want ErrInvalidSpec", err)
	}
}

func TestStream_CeilingRejectedBeforeGeneration(t *testing.T) {
	gen := NewPersonGenerator(testConfig(1))
	_, err := NewStream(gen, 11, 10)
	if !errors.Is(err, domain.ErrGenerationLimitExceeded) {
		t.Fatalf("got %v, want ErrGenerationLimitExceeded", err)
	}
}

func TestGenerate_CountZeroReturnsEmptySequence(t *testing.T) {
	records, err := Generate(domain.GenerationSpec{
		EntityType: EntityPerson,
		Count:      0,
		Seed:       1,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Fatalf("got %d records, want 0", len(records))
	}
}

func TestGenerate_CeilingRejectedWithNoRecords(t *testing.T) {
	records, err := Generate(domain.GenerationSpec{
		EntityType: EntityPerson,
		Count:      10_000_000,
		Seed:       1,
	})
	if !errors.Is(err, domain.ErrGenerationLimitExceeded) {
		t.Fatalf("got %v, want ErrGenerationLimitExceeded", err)
	}
	if len(records) != 0 {
		t.Fatalf("%d records produced despite the ceiling", len(records))
	}
}

func TestGenerate_UnknownEntityType(t *testing.T) {
	_, err := Generate(domain.GenerationSpec{EntityType: "starship", Count: 1, Seed: 1})
	if !errors.Is(err, domain.ErrUnknownEntityType) {
		t.Fatalf("got %v, want ErrUnknownEntityType", err)
	}
}

func TestGenerate_ReproduciblePerSeed(t *testing.T) {
	spec := domain.GenerationSpec{EntityType: EntityCompany, Count: 25, Seed: 42, BatchSize: 7}
	a, err := Generate(spec)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(spec)
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != 25 {
		t.Fatalf("got %d records, want 25", len(a))
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same generation spec produced different sequences")
	}
}

func TestRegistry_UnknownType(t *testing.T) {
	_, err := Default().Resolve("starship", Config{})
	if !errors.Is(err, domain.ErrUnknownEntityType) {
		t.Fatalf("got %v, want ErrUnknownEntityType", err)
	}
}

func TestPerson_CorrelatedFields(t *testing.T) {
	knownStatuses := map[string]bool{}
	for _, s := range correlate.EmploymentStatuses() {
		knownStatuses[s] = true
	}

	records := collect(t, EntityPerson, 300, testConfig(99))
	for _, rec := range records {
		ageVal, _ := rec.Value("age")
		age := int(ageVal.(int64))
		if age < correlate.MinAge || age > correlate.MaxAge {
			t.Fatalf("age %d outside [%d, %d]", age, correlate.MinAge, correlate.MaxAge)
		}

		levelVal, _ := rec.Value("career_level")
		level := correlate.CareerLevel(levelVal.(int64))
		statusVal, _ := rec.Value("employment_status")
		status := statusVal.(string)
		if !knownStatuses[status] {
			t.Fatalf("unknown employment status %q", status)
		}
		if status == "Full-time" || status == "Part-time" || status == "Self-employed" {
			min, max := correlate.LevelBounds(age)
			if level < min || level > max {
				t.Fatalf("age %d level %s outside [%s, %s]", age, level, min, max)
			}

			industryVal, _ := rec.Value("industry")
			incomeVal, _ := rec.Value("annual_income")
			lo, hi := correlate.SalaryBounds(level, industryVal.(string), age)
			income := incomeVal.(int64)
			if income < lo || income > hi {
				t.Fatalf("income %d outside [%d, %d] for %s age %d", income, lo, hi, level, age)
			}
		}

		emailVal, _ := rec.Value("email")
		if !correlate.ValidEmail(emailVal.(string)) {
			t.Fatalf("invalid email %q", emailVal)
		}
		phoneVal, _ := rec.Value("phone_number")
		if !correlate.ValidPhone(phoneVal.(string)) {
			t.Fatalf("invalid phone %q", phoneVal)
		}
		usernameVal, _ := rec.Value("username")
		if usernameVal.(string) == "" {
			t.Fatal("person record missing username")
		}
	}
}

func TestCompany_CorrelatedFields(t *testing.T) {
	records := collect(t, EntityCompany, 200, testConfig(17))
	for _, rec := range records {
		sizeVal, _ := rec.Value("company_size")
		size := sizeVal.(string)

		employeesVal, _ := rec.Value("employee_count")
		employees := employeesVal.(int64)
		lo, hi := correlate.EmployeeBounds(size)
		if employees < lo || employees > hi {
			t.Fatalf("%s: %d employees outside [%d, %d]", size, employees, lo, hi)
		}

		revenueVal, _ := rec.Value("annual_revenue")
		revenue := revenueVal.(int64)
		rlo, rhi := correlate.RevenueBounds(size)
		if revenue < rlo || revenue > rhi {
			t.Fatalf("%s: revenue %d outside [%d, %d]", size, revenue, rlo, rhi)
		}
	}
}

func TestCareerSteps_LevelsNeverDecreaseWithinTrajectory(t *testing.T) {
	records := collect(t, EntityCareerStep, 400, testConfig(23))
	lastLevel := map[string]int64{}
	lastAge := map[string]int64{}
	for _, rec := range records {
		idVal, _ := rec.Value("career_id")
		careerID := idVal.(string)
		levelVal, _ := rec.Value("career_level")
		level := levelVal.(int64)
		ageVal, _ := rec.Value("age")
		age := ageVal.(int64)

		if prev, ok := lastLevel[careerID]; ok {
			if level < prev {
				t.Fatalf("career %s: level dropped %d -> %d", careerID, prev, level)
			}
			if age <= lastAge[careerID] {
				t.Fatalf("career %s: age did not advance %d -> %d", careerID, lastAge[careerID], age)
			}
		}
		lastLevel[careerID] = level
		lastAge[careerID] = age
	}
}
