package datasets

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const shareViewsKeyPrefix = "fitcompare:share-views:"

// ShareViews counts how many times a shared dataset was opened through its token.
type ShareViews struct {
	rdb *redis.Client
}

func NewShareViews(rdb *redis.Client) *ShareViews {
	return &ShareViews{
		rdb: rdb,
	}
}

func shareViewsKey(datasetID uuid.UUID) string {
	return shareViewsKeyPrefix + datasetID.String()
}

func (sv *ShareViews) Incr(ctx context.Context, datasetID uuid.UUID) (int64, error) {
	views, err := sv.rdb.Incr(ctx, shareViewsKey(datasetID)).Result()
	if err != nil {
		return 0, fmt.Errorf("incr share views: %w", err)
	}
	return views, nil
}

func (sv *ShareViews) Get(ctx context.Context, datasetID uuid.UUID) (int64, error) {
	views, err := sv.rdb.Get(ctx, shareViewsKey(datasetID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get share views: %w", err)
	}
	return views, nil
}

func (sv *ShareViews) Reset(ctx context.Context, datasetID uuid.UUID) error {
	if err := sv.rdb.Del(ctx, shareViewsKey(datasetID)).Err(); err != nil {
		return fmt.Errorf("reset share views: %w", err)
	}
	return nil
}
