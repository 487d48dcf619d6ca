package lookupcache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"shelfmark/internal/identify"
)

func cachePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "lookup_cache.json")
}

func TestPutGetRoundTrip(t *testing.T) {
	c := New("", nil)

	record := identify.Record{
		Series:    "Berserk",
		RawTitle:  "Berserk, Vol. 1: The Black Swordsman",
		Subtitle:  "The Black Swordsman",
		Separator: ": ",
	}
	c.Put("Berserk", record)

	got, ok := c.Get("Berserk")
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if got != record {
		t.Errorf("got %+v, want %+v", got, record)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("unexpected hit for an absent key")
	}
}

func TestNullRecordHitIsDistinctFromMiss(t *testing.T) {
	c := New("", nil)
	c.Put("Nothing Found", identify.NullRecord())

	got, ok := c.Get("Nothing Found")
	if !ok {
		t.Fatal("an explicit no-match entry must still be a cache hit")
	}
	if got.Found() {
		t.Errorf("got %+v, want null record", got)
	}
}

func TestSaveAndReload(t *testing.T) {
	path := cachePath(t)

	c := New(path, nil)
	c.Put("Berserk", identify.Record{Series: "Berserk", RawTitle: "Berserk, Vol. 1", Separator: " - "})
	c.Put("miss", identify.NullRecord())
	if err := c.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded := New(path, nil)
	if reloaded.Len() != 2 {
		t.Fatalf("reloaded entries = %d, want 2", reloaded.Len())
	}

	got, ok := reloaded.Get("Berserk")
	if !ok || got.Series != "Berserk" || got.RawTitle != "Berserk, Vol. 1" {
		t.Errorf("reloaded record = %+v", got)
	}
	if got.Separator != " - " {
		t.Errorf("separator = %q", got.Separator)
	}

	null, ok := reloaded.Get("miss")
	if !ok || null.Found() {
		t.Error("null entries must survive a reload")
	}
}

func TestDiskFormatUsesNullsForAbsentFields(t *testing.T) {
	path := cachePath(t)

	c := New(path, nil)
	c.Put("miss", identify.NullRecord())
	if err := c.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string][4]*string
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("cache file is not the expected JSON shape: %v", err)
	}
	entry, ok := raw["miss"]
	if !ok {
		t.Fatal("missing entry")
	}
	if entry[0] != nil || entry[1] != nil || entry[2] != nil {
		t.Errorf("absent fields should serialize as null: %v", entry)
	}
	if entry[3] == nil || *entry[3] != " - " {
		t.Error("separator is always present, defaulting to \" - \"")
	}
}

func TestCorruptFileDegradesToEmpty(t *testing.T) {
	path := cachePath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(path, nil)
	if c.Len() != 0 {
		t.Errorf("entries = %d, want empty cache after corrupt load", c.Len())
	}

	// The cache must still be usable and savable.
	c.Put("Berserk", identify.Record{Series: "Berserk", Separator: " - "})
	if err := c.Save(); err != nil {
		t.Fatalf("Save after corrupt load: %v", err)
	}
}

func TestSaveSkipsWhenClean(t *testing.T) {
	path := cachePath(t)

	c := New(path, nil)
	if err := c.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("an untouched cache should not create a file")
	}
}

func TestClear(t *testing.T) {
	c := New("", nil)
	c.Put("a", identify.Record{Series: "A", Separator: " - "})
	c.Put("b", identify.Record{Series: "B", Separator: " - "})

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("entries = %d after Clear", c.Len())
	}
}
