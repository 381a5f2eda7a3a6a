package storageconfig_test

import (
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-blog/internal/storageconfig"
)

func TestParseProfile_FS(t *testing.T) {
	profile, err := storageconfig.ParseProfile(map[string]any{
		"provider":               "fs",
		"root":                   "/var/blog/objects",
		"base_url":               "https://cdn.example.com",
		"max_upload_bytes":       1048576,
		"signed_url_ttl_seconds": 900,
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if profile.Provider != "fs" || profile.Root != "/var/blog/objects" {
		t.Fatalf("profile = %+v", profile)
	}
	if profile.MaxUploadBytes != 1048576 {
		t.Fatalf("max upload = %d", profile.MaxUploadBytes)
	}
	if profile.SignedURLTTL != 15*time.Minute {
		t.Fatalf("ttl = %v", profile.SignedURLTTL)
	}
}

func TestParseProfile_MemoryNeedsNoRoot(t *testing.T) {
	profile, err := storageconfig.ParseProfile(map[string]any{"provider": "memory"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if profile.Provider != "memory" {
		t.Fatalf("profile = %+v", profile)
	}
}

func TestParseProfile_UnknownProvider(t *testing.T) {
	_, err := storageconfig.ParseProfile(map[string]any{"provider": "s3"})
	if !errors.Is(err, storageconfig.ErrProfileInvalid) {
		t.Fatalf("expected ErrProfileInvalid, got %v", err)
	}
}

func TestParseProfile_UnknownKeyRejected(t *testing.T) {
	_, err := storageconfig.ParseProfile(map[string]any{
		"provider": "memory",
		"rooot":    "/tmp",
	})
	if !errors.Is(err, storageconfig.ErrProfileInvalid) {
		t.Fatalf("expected ErrProfileInvalid, got %v", err)
	}

	var validationErr *storageconfig.ProfileValidationError
	if !errors.As(err, &validationErr) || len(validationErr.Issues) == 0 {
		t.Fatalf("expected located issues, got %v", err)
	}
}

func TestParseProfile_FSRequiresRoot(t *testing.T) {
	_, err := storageconfig.ParseProfile(map[string]any{"provider": "fs"})
	if !errors.Is(err, storageconfig.ErrProfileInvalid) {
		t.Fatalf("expected ErrProfileInvalid, got %v", err)
	}
}

func TestParseProfile_Empty(t *testing.T) {
	if _, err := storageconfig.ParseProfile(nil); !errors.Is(err, storageconfig.ErrProfileInvalid) {
		t.Fatalf("expected ErrProfileInvalid, got %v", err)
	}
}
