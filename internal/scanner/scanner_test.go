package scanner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"shelfmark/internal/config"
	"shelfmark/internal/identify"
	"shelfmark/internal/reconcile"
)

type fakeSource struct {
	records map[string]identify.Record
	err     error
	calls   []string
	resets  int
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) ResetQuota() { f.resets++ }

func (f *fakeSource) Lookup(_ context.Context, req identify.Request) (identify.Record, error) {
	f.calls = append(f.calls, req.Term)
	if f.err != nil {
		return identify.NullRecord(), f.err
	}
	if rec, ok := f.records[req.Term]; ok {
		return rec, nil
	}
	return identify.NullRecord(), nil
}

type fakeSaver struct {
	saves int
}

func (f *fakeSaver) Save() error {
	f.saves++
	return nil
}

func testConfig(t *testing.T, mode string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Scan.Mode = mode
	return &cfg
}

func writeArchives(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("pk"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestScanLocalMode(t *testing.T) {
	dir := writeArchives(t, "berserk v1.cbz", "one piece ch 3.cbz", "notes.txt")

	s := New(testConfig(t, config.ScanModeLocal), nil, nil, nil, nil)
	rows, err := s.Scan(context.Background(), dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (non-archives skipped)", len(rows))
	}
	if rows[0].FinalName != "berserk, Vol. 01.cbz" {
		t.Errorf("rows[0] final = %q", rows[0].FinalName)
	}
	if rows[1].FinalName != "one piece, Chapter 03.cbz" {
		t.Errorf("rows[1] final = %q", rows[1].FinalName)
	}
	for _, row := range rows {
		if row.Status != reconcile.StatusReady {
			t.Errorf("row %q status = %s, want Ready", row.Original, row.Status)
		}
	}
}

func TestScanBothModeUsesSource(t *testing.T) {
	dir := writeArchives(t, "berserk v1.cbz")

	source := &fakeSource{records: map[string]identify.Record{
		"berserk": {Series: "Berserk", RawTitle: "Berserk, Vol. 1", Separator: " - "},
	}}
	saver := &fakeSaver{}

	s := New(testConfig(t, config.ScanModeBoth), source, saver, nil, nil)
	rows, err := s.Scan(context.Background(), dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Status != reconcile.StatusVerified {
		t.Errorf("status = %s, want Verified", rows[0].Status)
	}
	if rows[0].FinalName != "Berserk, Vol. 01.cbz" {
		t.Errorf("final = %q", rows[0].FinalName)
	}
	if source.resets != 1 {
		t.Errorf("quota resets = %d, want 1", source.resets)
	}
	if saver.saves != 1 {
		t.Errorf("cache saves = %d, want 1", saver.saves)
	}
}

func TestScanColonSeparatorSurvives(t *testing.T) {
	dir := writeArchives(t, "berserk v1.cbz")

	source := &fakeSource{records: map[string]identify.Record{
		"berserk": {
			Series:    "Berserk",
			RawTitle:  "Berserk, Vol. 1: The Black Swordsman",
			Subtitle:  "The Black Swordsman",
			Separator: ": ",
		},
	}}

	cfg := testConfig(t, config.ScanModeBoth)
	cfg.Naming.UseSourceFormat = false
	cfg.Naming.IncludeSubtitle = true
	cfg.Naming.SubtitleSeparator = config.SeparatorColon

	s := New(cfg, source, nil, nil, nil)
	rows, err := s.Scan(context.Background(), dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if want := "Berserk, Vol. 01: The Black Swordsman.cbz"; rows[0].FinalName != want {
		t.Errorf("final = %q, want %q", rows[0].FinalName, want)
	}
}

func TestScanLookupErrorKeepsLocalRow(t *testing.T) {
	dir := writeArchives(t, "berserk v1.cbz")

	source := &fakeSource{err: errors.New("boom")}
	s := New(testConfig(t, config.ScanModeBoth), source, nil, nil, nil)
	rows, err := s.Scan(context.Background(), dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Status != reconcile.StatusReady {
		t.Errorf("status = %s, want Ready fallback", rows[0].Status)
	}
}

func TestScanInvalidKeyAborts(t *testing.T) {
	dir := writeArchives(t, "a v1.cbz", "b v1.cbz")

	source := &fakeSource{err: identify.ErrInvalidAPIKey}
	s := New(testConfig(t, config.ScanModeBoth), source, nil, nil, nil)
	_, err := s.Scan(context.Background(), dir)
	if !errors.Is(err, identify.ErrInvalidAPIKey) {
		t.Fatalf("err = %v, want ErrInvalidAPIKey", err)
	}
	if len(source.calls) != 1 {
		t.Errorf("lookups = %d, want scan to stop after the first", len(source.calls))
	}
}

func TestScanHonorsCancellation(t *testing.T) {
	dir := writeArchives(t, "a v1.cbz", "b v1.cbz")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(testConfig(t, config.ScanModeLocal), nil, nil, nil, nil)
	_, err := s.Scan(ctx, dir)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestScanFlagsDuplicates(t *testing.T) {
	dir := writeArchives(t, "berserk v1.cbz", "berserk vol 1.cbz")

	s := New(testConfig(t, config.ScanModeLocal), nil, nil, nil, nil)
	rows, err := s.Scan(context.Background(), dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	for _, row := range rows {
		if row.Status != reconcile.StatusDuplicate {
			t.Errorf("row %q status = %s, want Duplicate", row.Original, row.Status)
		}
	}
}
