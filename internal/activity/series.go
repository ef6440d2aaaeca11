package activity

import (
	"context"

	"github.com/2beens/fitcompare/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

const DefaultComparisonConcurrency = 4

// RecordSource resolves the decoded records of one file, e.g. by fetching
// the stored blob and running it through Decode.
type RecordSource func(ctx context.Context) ([]Record, error)

type NamedSource struct {
	Name   string
	Source RecordSource
}

type SkippedSeries struct {
	Name string `json:"name"`
	Err  error  `json:"-"`
}

// ComparisonSet holds the series assembled for one comparison request,
// in the order they were requested.
type ComparisonSet struct {
	Series  []Series        `json:"series"`
	Skipped []SkippedSeries `json:"skipped,omitempty"`
}

// Assemble normalizes records in input order, so samples[i].Index == i.
func Assemble(name string, records []Record) Series {
	samples := make([]Sample, len(records))
	for i, r := range records {
		samples[i] = Normalize(r, i)
	}
	return Series{
		Name:    name,
		Samples: samples,
	}
}

// AssembleComparisonSet loads every source (at most concurrency at a time) and
// assembles one series per source. A source that fails is skipped, not fatal:
// the set is built from whatever subset succeeded.
func AssembleComparisonSet(
	ctx context.Context,
	sources []NamedSource,
	concurrency int,
) ComparisonSet {
	ctx, span := tracing.GlobalTracer.Start(ctx, "activity.assembleComparisonSet")
	defer span.End()
	span.SetAttributes(attribute.Int("sources.count", len(sources)))

	if concurrency <= 0 {
		concurrency = DefaultComparisonConcurrency
	}

	type slot struct {
		series Series
		err    error
	}
	slots := make([]slot, len(sources))

	g := &errgroup.Group{}
	g.SetLimit(concurrency)
	for i, src := range sources {
		g.Go(func() error {
			records, err := src.Source(ctx)
			if err != nil {
				slots[i].err = err
				return nil
			}
			slots[i].series = Assemble(src.Name, records)
			return nil
		})
	}
	// slot errors are collected below, the group itself never fails
	_ = g.Wait()

	set := ComparisonSet{
		Series: make([]Series, 0, len(sources)),
	}
	for i, s := range slots {
		if s.err != nil {
			log.Warnf("comparison set: skipping [%s]: %s", sources[i].Name, s.err)
			set.Skipped = append(set.Skipped, SkippedSeries{
				Name: sources[i].Name,
				Err:  s.err,
			})
			continue
		}
		set.Series = append(set.Series, s.series)
	}

	span.SetAttributes(attribute.Int("series.skipped", len(set.Skipped)))

	return set
}
