package storage

import "testing"

func TestStagingFileName(t *testing.T) {
	cases := []struct {
		key  string
		want string
	}{
		{"tmp/a1b2c3-avatar.png", "avatar.png"},
		{"tmp/a1b2c3-my-cool-pic.jpg", "my-cool-pic.jpg"},
		{"a1b2c3-noslash.png", "noslash.png"},
		{"tmp/nodash.png", ""},
		{"tmp/", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := stagingFileName(tc.key); got != tc.want {
			t.Errorf("stagingFileName(%q) = %q, want %q", tc.key, got, tc.want)
		}
	}
}
