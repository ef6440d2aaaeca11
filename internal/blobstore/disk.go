package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/2beens/fitcompare/internal/telemetry/tracing"
	"github.com/2beens/fitcompare/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var _ Store = (*DiskStore)(nil)

// DiskStore keeps blobs as plain files under a root directory.
type DiskStore struct {
	rootPath string
	mutex    sync.RWMutex
}

func NewDiskStore(rootPath string) (*DiskStore, error) {
	if rootPath == "" {
		return nil, errors.New("root path cannot be empty")
	}

	exists, err := pkg.PathExists(rootPath, true)
	if err != nil {
		return nil, fmt.Errorf("check root path: %w", err)
	}
	if !exists {
		if err := os.MkdirAll(rootPath, 0o750); err != nil {
			return nil, fmt.Errorf("create root path: %w", err)
		}
		log.Debugf("disk store: created root dir [%s]", rootPath)
	}

	absRoot, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	return &DiskStore{
		rootPath: absRoot,
	}, nil
}

func (ds *DiskStore) Put(ctx context.Context, data []byte, name, prefix string) (_ string, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "diskStore.put")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("blob.name", name))
	span.SetAttributes(attribute.Int("blob.size", len(data)))

	objectPath, err := objectPath(prefix, name)
	if err != nil {
		return "", err
	}
	fullPath, err := ds.resolve(objectPath)
	if err != nil {
		return "", err
	}

	ds.mutex.Lock()
	defer ds.mutex.Unlock()

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
		return "", fmt.Errorf("create blob dir: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o640); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}

	log.Debugf("disk store: saved [%s], %d bytes", objectPath, len(data))

	return objectPath, nil
}

func (ds *DiskStore) Get(ctx context.Context, path string) (_ []byte, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "diskStore.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("blob.path", path))

	fullPath, err := ds.resolve(path)
	if err != nil {
		return nil, err
	}

	ds.mutex.RLock()
	defer ds.mutex.RUnlock()

	data, err := os.ReadFile(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read blob: %w", err)
	}

	return data, nil
}

func (ds *DiskStore) Delete(ctx context.Context, path string) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "diskStore.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("blob.path", path))

	fullPath, err := ds.resolve(path)
	if err != nil {
		return err
	}

	ds.mutex.Lock()
	defer ds.mutex.Unlock()

	if err := os.Remove(fullPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("remove blob: %w", err)
	}

	log.Debugf("disk store: removed [%s]", path)

	return nil
}

// resolve maps a blob path to a file under the root, rejecting anything that escapes it.
func (ds *DiskStore) resolve(path string) (string, error) {
	if path == "" {
		return "", ErrNotFound
	}
	fullPath := filepath.Join(ds.rootPath, filepath.FromSlash(path))
	if fullPath != ds.rootPath && !strings.HasPrefix(fullPath, ds.rootPath+string(filepath.Separator)) {
		return "", fmt.Errorf("blob path escapes storage root: %q", path)
	}
	if fullPath == ds.rootPath {
		return "", ErrNotFound
	}
	return fullPath, nil
}
