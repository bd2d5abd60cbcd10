package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must prefix keys by kind so identifiers never collide across kinds.
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

// DocumentUUID identifies a markdown document by its output name, so the same
// page keeps its ID across runs and machines.
func DocumentUUID(name string) uuid.UUID {
	return UUID("mdstrings:document:" + strings.TrimSpace(name))
}

// RunUUID returns a random correlation ID for one CLI invocation.
func RunUUID() uuid.UUID {
	return uuid.New()
}
