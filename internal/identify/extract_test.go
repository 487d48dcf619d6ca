package identify

import "testing"

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name      string
		rawTitle  string
		term      string
		series    string
		subtitle  string
		separator string
	}{
		{
			name:      "volume marker with colon subtitle",
			rawTitle:  "Berserk, Vol. 1: The Black Swordsman",
			term:      "Berserk",
			series:    "Berserk",
			subtitle:  "The Black Swordsman",
			separator: ": ",
		},
		{
			name:      "volume marker with dash subtitle",
			rawTitle:  "Berserk, Vol. 2 - Guardians of Desire",
			term:      "Berserk",
			series:    "Berserk",
			subtitle:  "Guardians of Desire",
			separator: " - ",
		},
		{
			name:      "no subtitle",
			rawTitle:  "Uzumaki, Vol. 3",
			term:      "Uzumaki",
			series:    "Uzumaki",
			separator: " - ",
		},
		{
			name:      "chapter marker",
			rawTitle:  "One Piece, Chapter 7",
			term:      "One Piece",
			series:    "One Piece",
			separator: " - ",
		},
		{
			name:      "trailing bare number",
			rawTitle:  "Akira 3",
			term:      "Akira",
			series:    "Akira",
			separator: " - ",
		},
		{
			name:      "volume word spelled out",
			rawTitle:  "Monster Volume 8",
			term:      "Monster",
			series:    "Monster",
			separator: " - ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTitle(tt.rawTitle, tt.term)
			if !got.Found() {
				t.Fatalf("ExtractTitle(%q, %q) returned the null record", tt.rawTitle, tt.term)
			}
			if got.Series != tt.series {
				t.Errorf("series = %q, want %q", got.Series, tt.series)
			}
			if got.Subtitle != tt.subtitle {
				t.Errorf("subtitle = %q, want %q", got.Subtitle, tt.subtitle)
			}
			if got.Separator != tt.separator {
				t.Errorf("separator = %q, want %q", got.Separator, tt.separator)
			}
			if got.RawTitle != tt.rawTitle {
				t.Errorf("raw title = %q, want the input preserved", got.RawTitle)
			}
		})
	}
}

func TestExtractTitleRejections(t *testing.T) {
	tests := []struct {
		name     string
		rawTitle string
		term     string
	}{
		{"irrelevant title", "One Piece, Vol. 1", "Berserk"},
		{"title reduces to nothing", "Vol. 5", "Berserk"},
		{"candidate less specific than search", "Solo Leveling, Vol. 1", "Solo Leveling Ragnarok"},
		{"empty raw title", "", "Berserk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractTitle(tt.rawTitle, tt.term); got.Found() {
				t.Errorf("ExtractTitle(%q, %q) = %+v, want null record", tt.rawTitle, tt.term, got)
			}
		})
	}
}
