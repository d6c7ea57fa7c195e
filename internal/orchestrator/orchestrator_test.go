package orchestrator

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mmrzaf/earthgen/internal/domain"
	"github.com/mmrzaf/earthgen/internal/generators"
	"github.com/mmrzaf/earthgen/internal/runs"
	"github.com/mmrzaf/earthgen/internal/storage"
)

func testLoader(t *testing.T) *storage.Loader {
	t.Helper()
	loader, err := storage.Open(storage.Config{
		Kind: storage.KindSQLite,
		DSN:  filepath.Join(t.TempDir(), "store.sqlite"),
	}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { loader.Close() })
	return loader
}

func testOrchestrator(t *testing.T, loader *storage.Loader, opts Options) *Orchestrator {
	t.Helper()
	if opts.RefTime.IsZero() {
		opts.RefTime = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	}
	return New(generators.Default(), loader, runs.NewRecorder(loader), zap.NewNop(), opts)
}

func specFor(entities map[string]int64) *domain.DatasetSpec {
	return &domain.DatasetSpec{
		Entities:  entities,
		Seed:      42,
		BatchSize: 25,
		WriteMode: domain.WriteModeTruncate,
	}
}

func TestExecute_FullDataset(t *testing.T) {
	loader := testLoader(t)
	orch := testOrchestrator(t, loader, Options{})
	ctx := context.Background()

	spec := specFor(map[string]int64{
		"person":      60,
		"company":     10,
		"career_step": 40,
	})

	summary, err := orch.Execute(ctx, spec)
	if err != nil {
		t.Fatal(err)
	}
	if !summary.Completed() {
		t.Fatalf("run not completed: %+v", summary.Results)
	}
	if summary.TotalRecords != 110 {
		t.Fatalf("total records %d, want 110", summary.TotalRecords)
	}
	if len(summary.Results) != 3 {
		t.Fatalf("got %d results, want 3", len(summary.Results))
	}
	if summary.SpecHash == "" {
		t.Fatal("summary missing spec hash")
	}
	if summary.ParallelEfficiency <= 0 {
		t.Fatalf("parallel efficiency %f, want > 0", summary.ParallelEfficiency)
	}

	for table, want := range map[string]int64{
		"persons":      60,
		"companies":    10,
		"career_steps": 40,
	} {
		count, err := loader.Count(ctx, table)
		if err != nil {
			t.Fatal(err)
		}
		if count != want {
			t.Fatalf("table %s has %d rows, want %d", table, count, want)
		}
	}

	// A provenance row landed alongside the data.
	history, err := runs.NewRecorder(loader).List(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 {
		t.Fatalf("got %d run rows, want 1", len(history))
	}
	if history[0].Status != "completed" || history[0].TotalRecords != 110 {
		t.Fatalf("unexpected run row: %+v", history[0])
	}
}

func TestExecute_SameSeedReproducesRows(t *testing.T) {
	ctx := context.Background()
	spec := specFor(map[string]int64{"person": 30, "company": 5})

	readAll := func(loader *storage.Loader, table string) []map[string]interface{} {
		rows, err := loader.Read(ctx, "SELECT * FROM "+loader.QualifiedTable(table)+" ORDER BY rowid")
		if err != nil {
			t.Fatal(err)
		}
		return rows
	}

	first := testLoader(t)
	if _, err := testOrchestrator(t, first, Options{}).Execute(ctx, spec); err != nil {
		t.Fatal(err)
	}

	second := testLoader(t)
	if _, err := testOrchestrator(t, second, Options{}).Execute(ctx, spec); err != nil {
		t.Fatal(err)
	}

	for _, table := range []string{"persons", "companies"} {
		a := readAll(first, table)
		b := readAll(second, table)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("table %s differs between identical runs", table)
		}
	}
}

func TestExecute_TruncateReplacesAppendAccumulates(t *testing.T) {
	loader := testLoader(t)
	orch := testOrchestrator(t, loader, Options{})
	ctx := context.Background()

	spec := specFor(map[string]int64{"company": 8})
	if _, err := orch.Execute(ctx, spec); err != nil {
		t.Fatal(err)
	}
	if _, err := orch.Execute(ctx, spec); err != nil {
		t.Fatal(err)
	}
	count, _ := loader.Count(ctx, "companies")
	if count != 8 {
		t.Fatalf("after two truncate runs: %d rows, want 8", count)
	}

	spec.WriteMode = domain.WriteModeAppend
	if _, err := orch.Execute(ctx, spec); err != nil {
		t.Fatal(err)
	}
	count, _ = loader.Count(ctx, "companies")
	if count != 16 {
		t.Fatalf("after append run: %d rows, want 16", count)
	}
}

func TestExecute_MultiBatchTruncateKeepsAllBatches(t *testing.T) {
	// Write mode applies to the first batch only; later batches of the
	// same workflow append.
	loader := testLoader(t)
	orch := testOrchestrator(t, loader, Options{})
	ctx := context.Background()

	spec := specFor(map[string]int64{"person": 90})
	spec.BatchSize = 20
	if _, err := orch.Execute(ctx, spec); err != nil {
		t.Fatal(err)
	}
	count, _ := loader.Count(ctx, "persons")
	if count != 90 {
		t.Fatalf("multi-batch truncate run left %d rows, want 90", count)
	}
}

func TestExecute_FailureSkipsDependentsOnly(t *testing.T) {
	loader := testLoader(t)
	// Ceiling of 20 fails the company workflow; person depends on it,
	// career_step does not.
	orch := testOrchestrator(t, loader, Options{MaxRecords: 20})
	ctx := context.Background()

	spec := specFor(map[string]int64{
		"company":     25,
		"person":      10,
		"career_step": 15,
	})

	summary, err := orch.Execute(ctx, spec)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Completed() {
		t.Fatal("expected a failed run")
	}

	company := summary.Result("company")
	if company == nil || company.Status != domain.StatusFailed {
		t.Fatalf("company result: %+v", company)
	}
	if company.Error == "" {
		t.Fatal("failed result carries no error")
	}

	person := summary.Result("person")
	if person == nil || person.Status != domain.StatusSkipped {
		t.Fatalf("person result: %+v", person)
	}

	step := summary.Result("career_step")
	if step == nil || step.Status != domain.StatusCompleted || step.RecordsGenerated != 15 {
		t.Fatalf("career_step result: %+v", step)
	}

	count, _ := loader.Count(ctx, "career_steps")
	if count != 15 {
		t.Fatalf("career_steps has %d rows, want 15", count)
	}

	history, err := runs.NewRecorder(loader).List(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || history[0].Status != "partial" {
		t.Fatalf("run history: %+v", history)
	}
}

func TestExecute_ZeroCountEnsuresSchemaOnly(t *testing.T) {
	loader := testLoader(t)
	orch := testOrchestrator(t, loader, Options{})
	ctx := context.Background()

	summary, err := orch.Execute(ctx, specFor(map[string]int64{"company": 0}))
	if err != nil {
		t.Fatal(err)
	}
	res := summary.Result("company")
	if res == nil || res.Status != domain.StatusCompleted || res.RecordsGenerated != 0 {
		t.Fatalf("zero-count result: %+v", res)
	}

	count, err := loader.Count(ctx, "companies")
	if err != nil {
		t.Fatalf("table was not created: %v", err)
	}
	if count != 0 {
		t.Fatalf("zero-count run wrote %d rows", count)
	}
}

func TestExecute_SingleReferenceTimeAcrossEntities(t *testing.T) {
	// With no RefTime configured the run stamps one itself; every
	// created_at in the run must carry that same instant, across all
	// entity workflows.
	loader := testLoader(t)
	orch := New(generators.Default(), loader, nil, zap.NewNop(), Options{})
	ctx := context.Background()

	spec := specFor(map[string]int64{"person": 10, "company": 5, "career_step": 5})
	if _, err := orch.Execute(ctx, spec); err != nil {
		t.Fatal(err)
	}

	var stamp interface{}
	for _, table := range []string{"persons", "companies", "career_steps"} {
		rows, err := loader.Read(ctx, "SELECT DISTINCT created_at FROM "+loader.QualifiedTable(table))
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != 1 {
			t.Fatalf("table %s carries %d distinct created_at values, want 1", table, len(rows))
		}
		if stamp == nil {
			stamp = rows[0]["created_at"]
		} else if rows[0]["created_at"] != stamp {
			t.Fatalf("table %s stamped %v, other tables stamped %v", table, rows[0]["created_at"], stamp)
		}
	}
}

func TestExecute_InvalidSpecRejectedBeforeAnyWrite(t *testing.T) {
	loader := testLoader(t)
	orch := testOrchestrator(t, loader, Options{})
	ctx := context.Background()

	_, err := orch.Execute(ctx, &domain.DatasetSpec{
		Entities:  map[string]int64{"person": 10},
		BatchSize: 0,
		WriteMode: domain.WriteModeAppend,
	})
	if !errors.Is(err, domain.ErrInvalidSpec) {
		t.Fatalf("got %v, want ErrInvalidSpec", err)
	}

	_, err = orch.Execute(ctx, specFor(map[string]int64{"starship": 10}))
	if !errors.Is(err, domain.ErrUnknownEntityType) {
		t.Fatalf("got %v, want ErrUnknownEntityType", err)
	}
}

func TestDependencyGroups_PersonAfterCompany(t *testing.T) {
	orch := testOrchestrator(t, nil, Options{})
	groups, err := orch.dependencyGroups(specFor(map[string]int64{
		"person":      1,
		"company":     1,
		"career_step": 1,
	}))
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2: %v", len(groups), groups)
	}
	if !reflect.DeepEqual(groups[0], []string{"career_step", "company"}) {
		t.Fatalf("first group %v", groups[0])
	}
	if !reflect.DeepEqual(groups[1], []string{"person"}) {
		t.Fatalf("second group %v", groups[1])
	}
}

func TestDependencyGroups_IgnoresAbsentDependencies(t *testing.T) {
	orch := testOrchestrator(t, nil, Options{})
	groups, err := orch.dependencyGroups(specFor(map[string]int64{"person": 1}))
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 1 || !reflect.DeepEqual(groups[0], []string{"person"}) {
		t.Fatalf("groups %v", groups)
	}
}
