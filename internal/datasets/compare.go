package datasets

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitcompare/internal/activity"
	"github.com/2beens/fitcompare/internal/export"
	"github.com/2beens/fitcompare/internal/telemetry/tracing"
	"github.com/2beens/fitcompare/pkg"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	SkipReasonMissing     = "missing"
	SkipReasonUnreadable  = "unreadable"
	SkipReasonUnavailable = "unavailable"
)

const (
	accessOwner  = "owner"
	accessShared = "shared"
)

type SkippedFile struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Comparison is the aligned result of comparing files of one dataset.
type Comparison struct {
	DatasetID uuid.UUID          `json:"datasetId"`
	Series    []activity.Series  `json:"series"`
	Stats     []activity.StatRow `json:"stats"`
	Skipped   []SkippedFile      `json:"skipped"`
	set       activity.ComparisonSet
}

// Compare builds the comparison of an owned dataset. fileIDs selects and
// orders the files; an empty selection compares every file of the dataset.
func (s *Service) Compare(ctx context.Context, userID string, datasetID uuid.UUID, fileIDs []uuid.UUID) (*Comparison, error) {
	dataset, err := s.Get(ctx, userID, datasetID)
	if err != nil {
		return nil, err
	}
	return s.compare(ctx, dataset, fileIDs, accessOwner)
}

// CompareShared builds the comparison of a shared dataset, read only.
func (s *Service) CompareShared(ctx context.Context, token string, fileIDs []uuid.UUID) (*Comparison, error) {
	dataset, err := s.SharedDataset(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.compare(ctx, dataset, fileIDs, accessShared)
}

func (s *Service) compare(ctx context.Context, dataset *Dataset, fileIDs []uuid.UUID, access string) (_ *Comparison, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.datasets.compare")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("dataset.id", dataset.ID.String()),
		attribute.String("access", access),
	)

	files, err := selectFiles(dataset, fileIDs)
	if err != nil {
		return nil, err
	}

	sources := make([]activity.NamedSource, 0, len(files))
	for _, f := range files {
		sources = append(sources, activity.NamedSource{
			Name: f.Name,
			Source: func(ctx context.Context) ([]activity.Record, error) {
				return s.loadRecords(ctx, f)
			},
		})
	}

	set := activity.AssembleComparisonSet(ctx, sources, s.concurrency)

	comparison := &Comparison{
		DatasetID: dataset.ID,
		Series:    set.Series,
		Stats:     activity.ComputeAllStats(set),
		Skipped:   make([]SkippedFile, 0, len(set.Skipped)),
		set:       set,
	}
	for _, skipped := range set.Skipped {
		comparison.Skipped = append(comparison.Skipped, SkippedFile{
			Name:   skipped.Name,
			Reason: skipReason(skipped.Err),
		})
	}

	s.metrics.CounterComparisons.With(prometheus.Labels{"access": access}).Inc()
	s.metrics.HistogramComparedSeries.Observe(float64(len(set.Series)))

	return comparison, nil
}

// Export renders the comparison in the given format and returns the body
// together with its content type.
func (c *Comparison) Export(format export.Format) ([]byte, string, error) {
	switch format {
	case export.FormatCSV:
		buf := &bytes.Buffer{}
		if err := export.WriteCSV(buf, c.set); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), pkg.ContentType.CSV, nil
	case export.FormatParquet:
		data, err := export.MarshalParquet(c.set)
		if err != nil {
			return nil, "", err
		}
		return data, pkg.ContentType.Parquet, nil
	default:
		return nil, "", fmt.Errorf("%w: %s", export.ErrUnknownFormat, format)
	}
}

// selectFiles returns the requested files in request order, duplicates dropped.
func selectFiles(dataset *Dataset, fileIDs []uuid.UUID) ([]FitFile, error) {
	if len(fileIDs) == 0 {
		return dataset.FitFiles, nil
	}

	seen := make(map[uuid.UUID]bool, len(fileIDs))
	files := make([]FitFile, 0, len(fileIDs))
	for _, id := range fileIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		file, ok := dataset.File(id)
		if !ok {
			return nil, fmt.Errorf("file %s: %w", id, ErrNotFound)
		}
		files = append(files, file)
	}
	return files, nil
}

func skipReason(err error) string {
	switch {
	case errors.Is(err, ErrBlobMissing):
		return SkipReasonMissing
	case errors.Is(err, activity.ErrUnreadable):
		return SkipReasonUnreadable
	default:
		return SkipReasonUnavailable
	}
}

// Export compares the selected files of an owned dataset and renders every
// sample of the result in the given format.
func (s *Service) Export(ctx context.Context, userID string, datasetID uuid.UUID, fileIDs []uuid.UUID, format export.Format) ([]byte, string, error) {
	comparison, err := s.Compare(ctx, userID, datasetID, fileIDs)
	if err != nil {
		return nil, "", err
	}
	return comparison.Export(format)
}
