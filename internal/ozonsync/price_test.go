package ozonsync

import "testing"

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"5'990.00 руб.", "5990"},
		{"123", "123"},
		{"нет.цены", ""},
		{"1 234 567.89", "1234567"},
		{"", ""},
		{".50", ""},
		{"12'490.00 руб.", "12490"},
		{"руб. 100", "100"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizePrice(tt.input); got != tt.want {
				t.Errorf("NormalizePrice(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
