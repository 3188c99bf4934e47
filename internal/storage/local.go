package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Local stores uploads on disk under a server-managed directory and serves
// them back via the /uploads route.
type Local struct {
	Dir string
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir %s: %w", dir, err)
	}
	return &Local{Dir: dir}, nil
}

func (l *Local) Save(_ context.Context, filename string, data []byte, _ string) (string, error) {
	// filename comes from ObjectName and contains no separators, but clean
	// it anyway so a bad caller cannot escape the uploads dir.
	name := filepath.Base(filepath.Clean(filename))
	if name == "." || name == ".." || name == "" {
		return "", fmt.Errorf("invalid upload filename %q", filename)
	}
	full := filepath.Join(l.Dir, name)
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload %s: %w", name, err)
	}
	return "/uploads/" + name, nil
}
