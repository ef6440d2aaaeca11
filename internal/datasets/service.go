package datasets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/fitcompare/internal/activity"
	"github.com/2beens/fitcompare/internal/blobstore"
	"github.com/2beens/fitcompare/internal/events"
	"github.com/2beens/fitcompare/internal/telemetry/metrics"
	"github.com/2beens/fitcompare/internal/telemetry/tracing"
	"github.com/2beens/fitcompare/pkg"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
	"golang.org/x/crypto/blake2b"
)

const (
	blobPrefix = "fit-files"
	// share tokens carry 256 bits of randomness
	shareTokenBytes = 32
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=datasets_test

type datasetRepo interface {
	CreateDataset(ctx context.Context, dataset *Dataset) error
	AddFiles(ctx context.Context, datasetID uuid.UUID, files []FitFile) error
	ListDatasets(ctx context.Context, userID string) ([]*Dataset, error)
	GetDataset(ctx context.Context, id uuid.UUID) (*Dataset, error)
	GetDatasetByShareHash(ctx context.Context, hash []byte) (*Dataset, error)
	GetFile(ctx context.Context, id uuid.UUID) (*FitFile, error)
	RenameDataset(ctx context.Context, id uuid.UUID, name string) (time.Time, error)
	DeleteDataset(ctx context.Context, id uuid.UUID) error
	DeleteFile(ctx context.Context, datasetID, fileID uuid.UUID) error
	SetShareHash(ctx context.Context, id uuid.UUID, hash []byte) error
}

type shareViewCounter interface {
	Incr(ctx context.Context, datasetID uuid.UUID) (int64, error)
	Get(ctx context.Context, datasetID uuid.UUID) (int64, error)
	Reset(ctx context.Context, datasetID uuid.UUID) error
}

type Service struct {
	repo        datasetRepo
	blobs       blobstore.Store
	views       shareViewCounter
	publisher   events.Publisher
	metrics     *metrics.Manager
	concurrency int
}

type NewServiceParams struct {
	Repo           datasetRepo
	Blobs          blobstore.Store
	ShareViews     shareViewCounter
	Publisher      events.Publisher
	MetricsManager *metrics.Manager
	// Concurrency bounds how many files a comparison loads at once.
	Concurrency int
}

func NewService(params NewServiceParams) *Service {
	publisher := params.Publisher
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	concurrency := params.Concurrency
	if concurrency <= 0 {
		concurrency = activity.DefaultComparisonConcurrency
	}
	return &Service{
		repo:        params.Repo,
		blobs:       params.Blobs,
		views:       params.ShareViews,
		publisher:   publisher,
		metrics:     params.MetricsManager,
		concurrency: concurrency,
	}
}

func (s *Service) List(ctx context.Context, userID string) (_ []*Dataset, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.datasets.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	datasets, err := s.repo.ListDatasets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	for _, d := range datasets {
		s.attachShareViews(ctx, d)
	}
	return datasets, nil
}

// Get returns the dataset if userID owns it.
func (s *Service) Get(ctx context.Context, userID string, datasetID uuid.UUID) (_ *Dataset, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.datasets.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("dataset.id", datasetID.String()))

	dataset, err := s.repo.GetDataset(ctx, datasetID)
	if err != nil {
		return nil, fmt.Errorf("get dataset: %w", err)
	}
	if dataset.UserID != userID {
		return nil, ErrForbidden
	}
	s.attachShareViews(ctx, dataset)
	return dataset, nil
}

func (s *Service) Create(ctx context.Context, userID, name string, uploads []Upload) (_ *Dataset, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.datasets.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	fitUploads, err := s.acceptedUploads(uploads)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	dataset := &Dataset{
		ID:        uuid.New(),
		Name:      datasetName(name),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	files, err := s.storeUploads(ctx, dataset.ID, fitUploads, now)
	if err != nil {
		return nil, err
	}
	dataset.FitFiles = files

	if err := s.repo.CreateDataset(ctx, dataset); err != nil {
		s.removeBlobs(ctx, files)
		return nil, fmt.Errorf("create dataset: %w", err)
	}

	s.metrics.CounterUploadedFiles.Add(float64(len(files)))
	event := events.NewEvent(events.DatasetCreated, userID, dataset.ID.String())
	event.FileCount = len(files)
	s.publisher.Publish(ctx, event)

	log.Debugf("dataset [%s] created with %d files", dataset.ID, len(files))

	return dataset, nil
}

func (s *Service) AddFiles(ctx context.Context, userID string, datasetID uuid.UUID, uploads []Upload) (_ *Dataset, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.datasets.addFiles")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := s.Get(ctx, userID, datasetID); err != nil {
		return nil, err
	}

	fitUploads, err := s.acceptedUploads(uploads)
	if err != nil {
		return nil, err
	}

	files, err := s.storeUploads(ctx, datasetID, fitUploads, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.repo.AddFiles(ctx, datasetID, files); err != nil {
		s.removeBlobs(ctx, files)
		return nil, fmt.Errorf("add files: %w", err)
	}

	s.metrics.CounterUploadedFiles.Add(float64(len(files)))
	event := events.NewEvent(events.FilesAdded, userID, datasetID.String())
	event.FileCount = len(files)
	s.publisher.Publish(ctx, event)

	return s.Get(ctx, userID, datasetID)
}

func (s *Service) Rename(ctx context.Context, userID string, datasetID uuid.UUID, name string) (_ *Dataset, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.datasets.rename")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	dataset, err := s.Get(ctx, userID, datasetID)
	if err != nil {
		return nil, err
	}

	updatedAt, err := s.repo.RenameDataset(ctx, datasetID, name)
	if err != nil {
		return nil, fmt.Errorf("rename dataset: %w", err)
	}
	dataset.Name = name
	dataset.UpdatedAt = updatedAt

	return dataset, nil
}

// Delete removes the dataset rows and, best effort, the stored blobs of its files.
func (s *Service) Delete(ctx context.Context, userID string, datasetID uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.datasets.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	dataset, err := s.Get(ctx, userID, datasetID)
	if err != nil {
		return err
	}

	// rows first: a failed row delete must not leave files pointing at removed blobs
	if err := s.repo.DeleteDataset(ctx, datasetID); err != nil {
		return fmt.Errorf("delete dataset: %w", err)
	}
	s.removeBlobs(ctx, dataset.FitFiles)

	if err := s.views.Reset(ctx, datasetID); err != nil {
		log.Warnf("delete dataset [%s]: %s", datasetID, err)
	}
	s.publisher.Publish(ctx, events.NewEvent(events.DatasetDeleted, userID, datasetID.String()))

	return nil
}

func (s *Service) DeleteFile(ctx context.Context, userID string, datasetID, fileID uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.datasets.deleteFile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	dataset, err := s.Get(ctx, userID, datasetID)
	if err != nil {
		return err
	}
	file, ok := dataset.File(fileID)
	if !ok {
		return fmt.Errorf("file %s: %w", fileID, ErrNotFound)
	}

	if err := s.repo.DeleteFile(ctx, datasetID, fileID); err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	s.removeBlobs(ctx, []FitFile{file})

	s.publisher.Publish(ctx, events.NewEvent(events.FileDeleted, userID, datasetID.String()))

	return nil
}

// Share issues a new share token for the dataset, replacing any previous one.
// Only the token hash is stored, so the token is returned exactly once.
func (s *Service) Share(ctx context.Context, userID string, datasetID uuid.UUID) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.datasets.share")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := s.Get(ctx, userID, datasetID); err != nil {
		return "", err
	}

	token, err := pkg.GenerateRandomToken(shareTokenBytes)
	if err != nil {
		return "", fmt.Errorf("generate share token: %w", err)
	}
	if err := s.repo.SetShareHash(ctx, datasetID, hashShareToken(token)); err != nil {
		return "", fmt.Errorf("store share token: %w", err)
	}

	if err := s.views.Reset(ctx, datasetID); err != nil {
		log.Warnf("share dataset [%s]: %s", datasetID, err)
	}
	s.publisher.Publish(ctx, events.NewEvent(events.DatasetShared, userID, datasetID.String()))

	return token, nil
}

func (s *Service) Unshare(ctx context.Context, userID string, datasetID uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.datasets.unshare")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := s.Get(ctx, userID, datasetID); err != nil {
		return err
	}
	if err := s.repo.SetShareHash(ctx, datasetID, nil); err != nil {
		return fmt.Errorf("clear share token: %w", err)
	}
	s.publisher.Publish(ctx, events.NewEvent(events.DatasetUnshared, userID, datasetID.String()))

	return nil
}

// GetShared resolves a share token to its dataset. Every call counts as a view.
func (s *Service) GetShared(ctx context.Context, token string) (_ *Dataset, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.datasets.getShared")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	dataset, err := s.resolveShared(ctx, token)
	if err != nil {
		return nil, err
	}

	views, err := s.views.Incr(ctx, dataset.ID)
	if err != nil {
		log.Warnf("shared dataset [%s]: %s", dataset.ID, err)
	} else {
		dataset.ShareViews = views
	}
	s.metrics.CounterSharedViews.Inc()

	return dataset, nil
}

// SharedDataset resolves a share token without counting a view.
func (s *Service) SharedDataset(ctx context.Context, token string) (*Dataset, error) {
	return s.resolveShared(ctx, token)
}

func (s *Service) resolveShared(ctx context.Context, token string) (*Dataset, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	dataset, err := s.repo.GetDatasetByShareHash(ctx, hashShareToken(token))
	if err != nil {
		return nil, fmt.Errorf("get shared dataset: %w", err)
	}
	return dataset, nil
}

// OwnedFile returns the file if its dataset belongs to userID.
func (s *Service) OwnedFile(ctx context.Context, userID string, fileID uuid.UUID) (_ *FitFile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.datasets.ownedFile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	file, err := s.repo.GetFile(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}
	if _, err := s.Get(ctx, userID, file.DatasetID); err != nil {
		return nil, err
	}
	return file, nil
}

// FileSeries loads, decodes and normalizes one stored file.
func (s *Service) FileSeries(ctx context.Context, file FitFile) (_ activity.Series, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.datasets.fileSeries")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("file.id", file.ID.String()))

	records, err := s.loadRecords(ctx, file)
	if err != nil {
		return activity.Series{}, err
	}
	return activity.Assemble(file.Name, records), nil
}

func (s *Service) loadRecords(ctx context.Context, file FitFile) ([]activity.Record, error) {
	data, err := s.blobs.Get(ctx, file.FilePath)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			s.countLoadFailure("blob_missing")
			log.Errorf("file [%s] references missing blob [%s]", file.ID, file.FilePath)
			return nil, fmt.Errorf("file %s: %w", file.ID, ErrBlobMissing)
		}
		s.countLoadFailure("storage")
		return nil, fmt.Errorf("fetch file %s: %w", file.ID, err)
	}

	records, err := activity.Decode(data)
	if err != nil {
		s.countLoadFailure("unreadable")
		return nil, fmt.Errorf("file %s: %w", file.Name, err)
	}
	return records, nil
}

func (s *Service) countLoadFailure(reason string) {
	s.metrics.CounterDecodeFailures.With(prometheus.Labels{"reason": reason}).Inc()
}

func (s *Service) attachShareViews(ctx context.Context, dataset *Dataset) {
	if !dataset.Shared {
		return
	}
	views, err := s.views.Get(ctx, dataset.ID)
	if err != nil {
		log.Warnf("dataset [%s] share views: %s", dataset.ID, err)
		return
	}
	dataset.ShareViews = views
}

func (s *Service) acceptedUploads(uploads []Upload) ([]Upload, error) {
	fitUploads, rejected := filterFitUploads(uploads)
	if rejected > 0 {
		s.metrics.CounterRejectedFiles.Add(float64(rejected))
		log.Debugf("dropped %d non .fit uploads", rejected)
	}
	if len(fitUploads) == 0 {
		return nil, ErrNoFitFiles
	}
	return fitUploads, nil
}

// storeUploads writes every upload to the blob store. On failure, blobs
// already written are removed again.
func (s *Service) storeUploads(ctx context.Context, datasetID uuid.UUID, uploads []Upload, now time.Time) ([]FitFile, error) {
	files := make([]FitFile, 0, len(uploads))
	for _, u := range uploads {
		path, err := s.blobs.Put(ctx, u.Data, u.Name, blobPrefix)
		if err != nil {
			s.removeBlobs(ctx, files)
			return nil, fmt.Errorf("store %s: %w", u.Name, err)
		}
		files = append(files, FitFile{
			ID:        uuid.New(),
			Name:      u.Name,
			DatasetID: datasetID,
			FilePath:  path,
			CreatedAt: now,
		})
	}
	return files, nil
}

// removeBlobs deletes stored file data best effort; failures are only logged.
func (s *Service) removeBlobs(ctx context.Context, files []FitFile) {
	var errs error
	for _, f := range files {
		if err := s.blobs.Delete(ctx, f.FilePath); err != nil && !errors.Is(err, blobstore.ErrNotFound) {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", f.FilePath, err))
		}
	}
	if errs != nil {
		log.Errorf("remove blobs: %s", errs)
	}
}

func hashShareToken(token string) []byte {
	sum := blake2b.Sum256([]byte(token))
	return sum[:]
}
