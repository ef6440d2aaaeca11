package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/fitcompare/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=auth_test

type userStore interface {
	UpsertUser(ctx context.Context, user User) error
}

// Registrar makes sure every verified identity has a local user row.
// Known subjects are cached, so the store is hit once per subject and TTL.
type Registrar struct {
	store userStore
	cache *freecache.Cache
	ttl   time.Duration
}

func NewRegistrar(store userStore, cacheSizeBytes int, ttl time.Duration) *Registrar {
	return &Registrar{
		store: store,
		cache: freecache.NewCache(cacheSizeBytes),
		ttl:   ttl,
	}
}

func (r *Registrar) Ensure(ctx context.Context, identity *Identity) (_ User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.registrar.ensure")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	user := User{
		ID:    identity.Subject,
		Email: identity.Email,
	}

	key := []byte(user.ID)
	if cachedEmail, err := r.cache.Get(key); err == nil && string(cachedEmail) == user.Email {
		return user, nil
	}

	if err := r.store.UpsertUser(ctx, user); err != nil {
		return User{}, fmt.Errorf("upsert user: %w", err)
	}

	if err := r.cache.Set(key, []byte(user.Email), int(r.ttl.Seconds())); err != nil {
		log.Warnf("registrar: cache user [%s]: %s", user.ID, err)
	}

	return user, nil
}
