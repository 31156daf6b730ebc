package utils

import "testing"

func TestPasswordRoundtrip(t *testing.T) {
	h := HashPassword("s3cret")
	if h == "" || h == "s3cret" {
		t.Fatalf("hash = %q", h)
	}
	if !CheckPassword("s3cret", h) {
		t.Fatal("correct password rejected")
	}
	if CheckPassword("wrong", h) {
		t.Fatal("wrong password accepted")
	}
}

func TestCheckPasswordBadHash(t *testing.T) {
	if CheckPassword("x", "not-a-bcrypt-hash") {
		t.Fatal("garbage hash accepted")
	}
}
