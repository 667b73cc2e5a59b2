package arbitrage

import (
	"strings"
	"testing"
)

func TestNormalizeEventName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "lowercases",
			in:   "Will X Happen",
			want: "will x happen",
		},
		{
			name: "collapses whitespace",
			in:   "will   x\t\thappen",
			want: "will x happen",
		},
		{
			name: "newlines and tabs become single spaces",
			in:   "will\nx\r\n\thappen",
			want: "will x happen",
		},
		{
			name: "trims leading and trailing whitespace",
			in:   "  will x happen  ",
			want: "will x happen",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "whitespace only",
			in:   " \t\n ",
			want: "",
		},
		{
			name: "truncates to 100 characters",
			in:   strings.Repeat("a", 150),
			want: strings.Repeat("a", 100),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeEventName(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeEventName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeEventName_Idempotent(t *testing.T) {
	inputs := []string{
		"Will X Happen",
		"  MIXED   Case\twith\nNEWLINES  ",
		strings.Repeat("word ", 40), // truncation cuts at a word boundary
		strings.Repeat("é", 150),    // multi-byte runes
		"",
	}
	for _, in := range inputs {
		once := NormalizeEventName(in)
		twice := NormalizeEventName(once)
		if once != twice {
			t.Errorf("not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestNormalizeEventName_TruncatesRunesNotBytes(t *testing.T) {
	in := strings.Repeat("é", 120)
	got := NormalizeEventName(in)
	if n := len([]rune(got)); n != 100 {
		t.Errorf("rune length = %d, want 100", n)
	}
	if !strings.HasPrefix(in, got) {
		t.Error("truncation split a multi-byte rune")
	}
}

func TestGroupKey(t *testing.T) {
	a := GroupKey("Will X Happen", "YES")
	b := GroupKey("will   x happen", "yes")
	if a != b {
		t.Errorf("keys differ for equivalent quotes: %q vs %q", a, b)
	}

	c := GroupKey("will x happen", "NO")
	if a == c {
		t.Error("different outcomes must not share a key")
	}
}
