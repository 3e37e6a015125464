package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already clean", "algiers", "algiers"},
		{"leading and trailing space", "  oran  ", "oran"},
		{"internal runs collapse", "sidi   bel \t abbes", "sidi bel abbes"},
		{"empty", "", ""},
		{"only whitespace", "   \t ", ""},
		{"arabic preserved", "  محمد   أمين ", "محمد أمين"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeCity(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Algiers", "algiers"},
		{"  ORAN ", "oran"},
		{"Sidi  Bel Abbes", "sidi bel abbes"},
	}

	for _, tt := range tests {
		if got := NormalizeCity(tt.input); got != tt.want {
			t.Errorf("NormalizeCity(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"national algerian mobile", "0550 12 34 56", "+213550123456"},
		{"already e164", "+213550123456", "+213550123456"},
		{"french number", "+33612345678", "+33612345678"},
		{"garbage", "not-a-phone", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhone(tt.input); got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
