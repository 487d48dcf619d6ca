package identify

import "testing"

func TestRelevant(t *testing.T) {
	tests := []struct {
		name      string
		search    string
		candidate string
		want      bool
	}{
		{"exact match", "Berserk", "Berserk", true},
		{"case and punctuation ignored", "one-piece", "One Piece", true},
		{"candidate more specific", "Berserk", "Berserk Deluxe Edition", true},
		{"leading article dropped from search", "The Walking Dead", "Walking Dead", true},
		{"candidate is a prefix of search", "Solo Leveling Ragnarok", "Solo Leveling", false},
		{"unrelated titles", "Berserk", "One Piece", false},
		{"empty search", "", "Berserk", false},
		{"empty candidate", "Berserk", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Relevant(tt.search, tt.candidate); got != tt.want {
				t.Errorf("Relevant(%q, %q) = %v, want %v", tt.search, tt.candidate, got, tt.want)
			}
		})
	}
}

func TestRelevantLoose(t *testing.T) {
	if !RelevantLoose("Solo Leveling Ragnarok", "Solo Leveling") {
		t.Error("loose matching should accept either direction of containment")
	}
	if RelevantLoose("Berserk", "One Piece") {
		t.Error("loose matching still rejects unrelated titles")
	}
}
