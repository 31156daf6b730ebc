package router

import (
	"strings"
	"testing"

	"sns-api/internal/core/auth"
)

func TestProfileDefaultsFromEmail(t *testing.T) {
	d := profileDefaults(&auth.Profile{
		Email:   "alice.smith+work@example.com",
		Name:    "Alice Smith",
		Picture: "https://example.com/a.png",
	})
	if d.AccountID != "alicesmithwork" {
		t.Fatalf("accountId = %q", d.AccountID)
	}
	if d.DisplayName != "Alice Smith" {
		t.Fatalf("displayName = %q", d.DisplayName)
	}
	if d.AvatarURL == nil || *d.AvatarURL != "https://example.com/a.png" {
		t.Fatalf("avatarUrl = %v", d.AvatarURL)
	}
	if d.Bio == nil || *d.Bio != "" {
		t.Fatalf("bio = %v", d.Bio)
	}
}

func TestProfileDefaultsFallbacks(t *testing.T) {
	d := profileDefaults(&auth.Profile{Email: "日本語@example.com"})
	if !strings.HasPrefix(d.AccountID, "user") || len(d.AccountID) != len("user")+8 {
		t.Fatalf("accountId = %q, want random user handle", d.AccountID)
	}
	if d.DisplayName != "Jane Doe" {
		t.Fatalf("displayName = %q", d.DisplayName)
	}
	if d.AvatarURL != nil {
		t.Fatalf("avatarUrl = %v, want nil", d.AvatarURL)
	}
}

func TestProfileDefaultsNoEmail(t *testing.T) {
	d := profileDefaults(&auth.Profile{Name: "Bob"})
	if !strings.HasPrefix(d.AccountID, "user") {
		t.Fatalf("accountId = %q", d.AccountID)
	}
	if d.DisplayName != "Bob" {
		t.Fatalf("displayName = %q", d.DisplayName)
	}
}
