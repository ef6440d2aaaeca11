package blobstore

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("blob not found")

// Store keeps raw uploaded file bytes, addressed by the path returned from Put.
type Store interface {
	Put(ctx context.Context, data []byte, name, prefix string) (string, error)
	Get(ctx context.Context, path string) ([]byte, error)
	Delete(ctx context.Context, path string) error
}

// objectPath builds "<prefix>/<uuid>-<name>"; the random id keeps equally named uploads apart.
func objectPath(prefix, name string) (string, error) {
	cleanName := sanitizeName(name)
	if cleanName == "" {
		return "", fmt.Errorf("invalid blob name: %q", name)
	}
	cleanPrefix := strings.Trim(path.Clean("/"+prefix), "/")
	objectName := fmt.Sprintf("%s-%s", uuid.NewString(), cleanName)
	if cleanPrefix == "" {
		return objectName, nil
	}
	return cleanPrefix + "/" + objectName, nil
}

func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	// keep only the base name, whatever separator the client used
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if name == "." || name == ".." {
		return ""
	}
	return name
}
