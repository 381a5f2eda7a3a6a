package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// TagUUID derives the stable identifier for a tag name so repeated upserts
// across imports and API writes converge on one row.
func TagUUID(name string) uuid.UUID {
	return UUID("go-blog:tag:" + strings.ToLower(strings.TrimSpace(name)))
}

// ObjectUUID derives the metadata row identifier for a content-addressed
// storage key.
func ObjectUUID(key string) uuid.UUID {
	return UUID("go-blog:object:" + strings.TrimSpace(key))
}

// ImportUUID derives the feed identifier used when importing markdown files,
// keyed by slug so re-imports update instead of duplicating.
func ImportUUID(slug string) uuid.UUID {
	return UUID("go-blog:import:" + strings.ToLower(strings.TrimSpace(slug)))
}
