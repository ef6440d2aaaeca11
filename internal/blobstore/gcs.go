package blobstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/2beens/fitcompare/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/storage/v1"
)

var _ Store = (*GCSStore)(nil)

// GCSStore keeps blobs as objects in a Google Cloud Storage bucket.
type GCSStore struct {
	bucket  string
	service *storage.Service
}

// NewGCSStore builds the storage client; credentials come from opts or the
// default application credentials (GOOGLE_APPLICATION_CREDENTIALS).
func NewGCSStore(ctx context.Context, bucket string, opts ...option.ClientOption) (*GCSStore, error) {
	if bucket == "" {
		return nil, errors.New("bucket cannot be empty")
	}

	service, err := storage.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("new storage service: %w", err)
	}

	return &GCSStore{
		bucket:  bucket,
		service: service,
	}, nil
}

func (gs *GCSStore) Put(ctx context.Context, data []byte, name, prefix string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "gcsStore.put")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("blob.name", name))
	span.SetAttributes(attribute.Int("blob.size", len(data)))

	objectPath, err := objectPath(prefix, name)
	if err != nil {
		return "", err
	}

	object := &storage.Object{
		Name:        objectPath,
		ContentType: "application/octet-stream",
	}
	if _, err := gs.service.Objects.
		Insert(gs.bucket, object).
		Media(bytes.NewReader(data)).
		Context(ctx).
		Do(); err != nil {
		return "", fmt.Errorf("insert object: %w", err)
	}

	log.Debugf("gcs store: saved [%s/%s], %d bytes", gs.bucket, objectPath, len(data))

	return objectPath, nil
}

func (gs *GCSStore) Get(ctx context.Context, path string) (_ []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "gcsStore.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("blob.path", path))

	resp, err := gs.service.Objects.Get(gs.bucket, path).Context(ctx).Download()
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("download object: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warnf("gcs store: close body of [%s]: %s", path, closeErr)
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read object: %w", err)
	}
	return data, nil
}

func (gs *GCSStore) Delete(ctx context.Context, path string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "gcsStore.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("blob.path", path))

	if err := gs.service.Objects.Delete(gs.bucket, path).Context(ctx).Do(); err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

func isNotFound(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound
}
