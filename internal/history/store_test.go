package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_RecordAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	older := Record{
		CreatedAt: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		Archive:   "/backups/minecraft_worlds_backup_20250101_120000.zip",
		SizeBytes: 1024,
		Worlds:    2,
		Duration:  3 * time.Second,
	}
	newer := Record{
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Archive:   "/backups/minecraft_worlds_backup_20250601_120000.zip",
		SizeBytes: 2048,
		Worlds:    3,
		Duration:  5 * time.Second,
	}

	if _, err := s.Record(ctx, older); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	id, err := s.Record(ctx, newer)
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if id == "" {
		t.Error("expected generated id")
	}

	records, err := s.List(ctx, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Archive != newer.Archive {
		t.Errorf("expected newest first, got %s", records[0].Archive)
	}
	if records[0].Worlds != 3 || records[0].SizeBytes != 2048 {
		t.Errorf("record fields lost: %+v", records[0])
	}
	if records[0].Duration != 5*time.Second {
		t.Errorf("expected 5s duration, got %v", records[0].Duration)
	}
}

func TestStore_Last(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, ok, err := s.Last(ctx); err != nil || ok {
		t.Fatalf("expected no last record, ok=%v err=%v", ok, err)
	}

	if _, err := s.Record(ctx, Record{Archive: "/b/a.zip", Worlds: 1}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	rec, ok, err := s.Last(ctx)
	if err != nil {
		t.Fatalf("Last failed: %v", err)
	}
	if !ok || rec.Archive != "/b/a.zip" {
		t.Errorf("unexpected last record: ok=%v %+v", ok, rec)
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := s.Record(context.Background(), Record{Archive: "/b/a.zip"}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	s.Close()

	// Schema creation is idempotent and data survives reopen.
	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s2.Close()

	records, err := s2.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected 1 record after reopen, got %d", len(records))
	}
}
