package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"shelfmark/internal/renamer"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndLoadBatch(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	renames := []renamer.Rename{
		{From: "berserk v1.cbz", To: "Berserk, Vol. 01.cbz"},
		{From: "berserk v2.cbz", To: "Berserk, Vol. 02.cbz"},
	}
	id, err := store.RecordBatch(ctx, "/library", renames)
	if err != nil {
		t.Fatalf("RecordBatch: %v", err)
	}
	if id == "" {
		t.Fatal("expected a batch ID")
	}

	batch, err := store.GetBatch(ctx, id)
	if err != nil {
		t.Fatalf("GetBatch: %v", err)
	}
	if batch.Directory != "/library" {
		t.Errorf("directory = %q", batch.Directory)
	}
	if len(batch.Renames) != 2 {
		t.Fatalf("entries = %d, want 2", len(batch.Renames))
	}
	if batch.Renames[0].From != "berserk v1.cbz" || batch.Renames[1].To != "Berserk, Vol. 02.cbz" {
		t.Errorf("entries out of order: %+v", batch.Renames)
	}
	if batch.UndoneAt != nil {
		t.Error("fresh batch should not be undone")
	}
}

func TestRecordBatchSkipsEmpty(t *testing.T) {
	store := openStore(t)

	id, err := store.RecordBatch(context.Background(), "/library", nil)
	if err != nil {
		t.Fatalf("RecordBatch: %v", err)
	}
	if id != "" {
		t.Errorf("empty batch recorded with ID %q", id)
	}
}

func TestLatestBatchSkipsUndone(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first, err := store.RecordBatch(ctx, "/library", []renamer.Rename{{From: "a.cbz", To: "b.cbz"}})
	if err != nil {
		t.Fatal(err)
	}
	second, err := store.RecordBatch(ctx, "/library", []renamer.Rename{{From: "c.cbz", To: "d.cbz"}})
	if err != nil {
		t.Fatal(err)
	}

	if err := store.MarkUndone(ctx, second); err != nil {
		t.Fatalf("MarkUndone: %v", err)
	}

	latest, err := store.LatestBatch(ctx)
	if err != nil {
		t.Fatalf("LatestBatch: %v", err)
	}
	if latest.ID != first {
		t.Errorf("latest = %s, want the batch that was not undone", latest.ID)
	}
}

func TestLatestBatchEmptyJournal(t *testing.T) {
	store := openStore(t)

	_, err := store.LatestBatch(context.Background())
	if !errors.Is(err, ErrNoBatches) {
		t.Fatalf("err = %v, want ErrNoBatches", err)
	}
}

func TestMarkUndoneUnknownBatch(t *testing.T) {
	store := openStore(t)

	err := store.MarkUndone(context.Background(), "nope")
	if !errors.Is(err, ErrBatchNotFound) {
		t.Fatalf("err = %v, want ErrBatchNotFound", err)
	}
}

func TestListBatchesNewestFirst(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, err := store.RecordBatch(ctx, "/one", []renamer.Rename{{From: "a.cbz", To: "b.cbz"}}); err != nil {
		t.Fatal(err)
	}
	second, err := store.RecordBatch(ctx, "/two", []renamer.Rename{{From: "c.cbz", To: "d.cbz"}})
	if err != nil {
		t.Fatal(err)
	}

	batches, err := store.ListBatches(ctx, 10)
	if err != nil {
		t.Fatalf("ListBatches: %v", err)
	}
	if len(batches) != 2 {
		t.Fatalf("batches = %d, want 2", len(batches))
	}
	if batches[0].ID != second {
		t.Errorf("first listed = %s, want newest", batches[0].ID)
	}
}
