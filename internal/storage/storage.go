// Package storage is the upload adapter: it turns uploaded image bytes into
// durable storage and a stable reference usable as a retrievable URL.
package storage

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Store persists image bytes and returns a stable reference for them.
// References are either local paths under /uploads or object URLs.
type Store interface {
	Save(ctx context.Context, filename string, data []byte, contentType string) (string, error)
}

// ObjectName builds a collision-free stored name from an upload's original
// filename and processed extension.
func ObjectName(original, ext string) string {
	base := strings.TrimSpace(original)
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	base = sanitize(base)
	if base == "" {
		base = "image"
	}
	return uuid.New().String() + "-" + base + ext
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
