package runs

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mmrzaf/earthgen/internal/domain"
	"github.com/mmrzaf/earthgen/internal/storage"
)

func testRecorder(t *testing.T) *Recorder {
	t.Helper()
	loader, err := storage.Open(storage.Config{
		Kind: storage.KindSQLite,
		DSN:  filepath.Join(t.TempDir(), "store.sqlite"),
	}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { loader.Close() })
	return NewRecorder(loader)
}

func TestRecorder_RecordAndList(t *testing.T) {
	recorder := testRecorder(t)
	ctx := context.Background()

	started := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		completed := started.Add(time.Duration(i+1) * time.Minute)
		run := &domain.Run{
			SpecHash:           "abc123",
			Seed:               int64(i),
			Status:             "completed",
			TotalRecords:       int64(100 * (i + 1)),
			WallClockSeconds:   1.5,
			ParallelEfficiency: 2.1,
			StartedAt:          started.Add(time.Duration(i) * time.Hour),
			CompletedAt:        &completed,
		}
		if err := recorder.Record(ctx, run); err != nil {
			t.Fatal(err)
		}
		if run.ID == "" {
			t.Fatal("record did not assign a run id")
		}
	}

	history, err := recorder.List(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 3 {
		t.Fatalf("got %d runs, want 3", len(history))
	}
	// Newest first.
	if history[0].TotalRecords != 300 {
		t.Fatalf("first run has %d records, want 300", history[0].TotalRecords)
	}
	if history[0].SpecHash != "abc123" || history[0].Status != "completed" {
		t.Fatalf("unexpected run row: %+v", history[0])
	}
	if history[0].CompletedAt == nil {
		t.Fatal("completed_at not round-tripped")
	}

	limited, err := recorder.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Fatalf("limit 2 returned %d runs", len(limited))
	}
}
