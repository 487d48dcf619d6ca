package identify

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		series   string
		number   string
		kind     Kind
	}{
		{"short volume marker", "berserk v1.cbz", "berserk", "1", KindVolume},
		{"vol abbreviation", "Berserk Vol. 3.cbz", "Berserk", "3", KindVolume},
		{"volume word", "Berserk Volume 12.cbz", "Berserk", "12", KindVolume},
		{"chapter marker", "one piece ch 52.cbz", "one piece", "52", KindChapter},
		{"chapter word", "One Piece Chapter 7.cbz", "One Piece", "7", KindChapter},
		{"hash number", "Saga #9.cbz", "Saga", "9", KindChapter},
		{"volume beats chapter", "Dorohedoro Vol. 2 Ch. 10.cbz", "Dorohedoro", "2", KindVolume},
		{"bare number fallback", "Akira 3.cbz", "Akira", "3", KindChapter},
		{"no number at all", "Blankets.cbz", "Blankets", "0", KindVolume},
		{"underscores become spaces", "tokyo_ghoul_v5.cbz", "tokyo ghoul", "5", KindVolume},
		{"bracket groups stripped", "Uzumaki (2018) [digital] v1.cbz", "Uzumaki", "1", KindVolume},
		{"bracketed number ignored", "Monster (2004) Vol. 8.cbz", "Monster", "8", KindVolume},
		{"trailing separators trimmed", "Pluto - v2.cbz", "Pluto", "2", KindVolume},
		{"uppercase extension", "BERSERK V1.CBZ", "BERSERK", "1", KindVolume},
		{"empty series falls back to filename", "v2.cbz", "v2", "2", KindVolume},
		{"leading zeros dropped", "Berserk Vol. 03 (Digital).cbz", "Berserk", "3", KindVolume},
		{"zero-padded chapter", "One Piece c0045.cbz", "One Piece", "45", KindChapter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.filename)
			if got.Series != tt.series {
				t.Errorf("series = %q, want %q", got.Series, tt.series)
			}
			if got.Number != tt.number {
				t.Errorf("number = %q, want %q", got.Number, tt.number)
			}
			if got.Kind != tt.kind {
				t.Errorf("kind = %q, want %q", got.Kind, tt.kind)
			}
		})
	}
}
