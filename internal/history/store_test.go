package history

import (
	"context"
	"path/filepath"
	"testing"

	"ripdoctor/internal/report"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return store
}

func sampleReport() report.AnalysisReport {
	return report.Aggregate([]report.ProbeResult{
		report.NewResult("structure", nil),
		report.NewResult("integrity", []report.Finding{
			{Probe: "integrity", Severity: report.SeverityError, Message: "decode verification failed"},
		}),
	})
}

func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.Record(ctx, "/library/movie.mkv", "full", sampleReport())
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if id == "" {
		t.Fatalf("expected generated run ID")
	}

	runs, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	run := runs[0]
	if run.ID != id || run.Path != "/library/movie.mkv" || run.Mode != "full" {
		t.Fatalf("unexpected run %+v", run)
	}
	if run.TotalIssues != 1 || run.Findings != 1 {
		t.Fatalf("counts lost: %+v", run)
	}
	if len(run.Report.Results) != 2 {
		t.Fatalf("report round trip lost results: %+v", run.Report)
	}
}

func TestForPath(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, path := range []string{"/a.mkv", "/b.mkv", "/a.mkv"} {
		if _, err := store.Record(ctx, path, "quick", sampleReport()); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	runs, err := store.ForPath(ctx, "/a.mkv", 10)
	if err != nil {
		t.Fatalf("ForPath: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs for /a.mkv, got %d", len(runs))
	}
}

func TestRecentEmpty(t *testing.T) {
	store := openTestStore(t)
	runs, err := store.Recent(context.Background(), 5)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected no runs, got %d", len(runs))
	}
}
