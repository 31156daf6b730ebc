package utils

import "testing"

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	if len(a) != 32 {
		t.Fatalf("len = %d, want 32", len(a))
	}
	if a == b {
		t.Fatal("ids not unique")
	}
	for _, r := range a {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			t.Fatalf("non-hex rune %q in %q", r, a)
		}
	}
}

func TestShortToken(t *testing.T) {
	if got := ShortToken(8); len(got) != 8 {
		t.Fatalf("len = %d, want 8", len(got))
	}
	if got := ShortToken(0); len(got) != 32 {
		t.Fatalf("len = %d, want full id for n<=0", len(got))
	}
	if got := ShortToken(100); len(got) != 32 {
		t.Fatalf("len = %d, want full id for oversized n", len(got))
	}
}

func TestSanitizeAccountID(t *testing.T) {
	cases := []struct{ in, want string }{
		{"alice", "alice"},
		{"alice.smith+work", "alicesmithwork"},
		{"日本語abc", "abc"},
		{"A-1_b", "A1b"},
		{"", ""},
		{"...", ""},
	}
	for _, tc := range cases {
		if got := SanitizeAccountID(tc.in); got != tc.want {
			t.Errorf("SanitizeAccountID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
