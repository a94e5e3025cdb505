package repository

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/holidayhub/directory/shared/models"
	sharedredis "github.com/holidayhub/directory/shared/redis"
	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	accountViewKeyPrefix = "account:view:"
	defaultTombstoneTTL  = time.Hour
)

// AccountReadRepository handles all read operations for accounts.
// It uses Redis as the primary store for single-account reads, falling back to
// PostgreSQL on a miss and warming the cache on every cold read.
//
// Cold-read fills never overwrite an existing key, and deletes leave a
// tombstone, so a read that loaded a row before a concurrent write cannot put
// the stale view back. Ids whose tombstone could not be written are read from
// PostgreSQL only for the rest of the process lifetime.
type AccountReadRepository struct {
	db           *sqlx.DB
	cache        *sharedredis.ViewCache[models.AccountView]
	tombstoneTTL time.Duration
	uncached     sync.Map
	log          logrus.FieldLogger
}

func NewAccountReadRepository(db *sqlx.DB, redisClient *goredis.Client, ttl time.Duration, log logrus.FieldLogger) *AccountReadRepository {
	if log == nil {
		log = logrus.StandardLogger()
	}
	tombstoneTTL := ttl
	if tombstoneTTL <= 0 {
		tombstoneTTL = defaultTombstoneTTL
	}
	return &AccountReadRepository{
		db:           db,
		cache:        sharedredis.NewViewCache[models.AccountView](redisClient, ttl, log),
		tombstoneTTL: tombstoneTTL,
		log:          log.WithField("component", "account-reads"),
	}
}

// GetByID returns an AccountView from Redis first, then PostgreSQL.
func (r *AccountReadRepository) GetByID(ctx context.Context, id int64) (*models.AccountView, error) {
	cacheable := r.cacheable(id)
	if cacheable {
		if view, ok := r.cache.Get(ctx, accountViewKey(id)); ok {
			return view, nil
		}
	}

	query, args, err := psql.Select(accountViewColumns...).
		From(accountsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get account query: %w", err)
	}

	var view models.AccountView
	if err := r.db.GetContext(ctx, &view, query, args...); err != nil {
		return nil, classify(err, "get account")
	}

	if cacheable {
		r.cache.SetIfAbsent(ctx, accountViewKey(id), &view)
	}
	return &view, nil
}

// List returns every account in creation order.
func (r *AccountReadRepository) List(ctx context.Context) ([]models.AccountView, error) {
	query, args, err := psql.Select(accountViewColumns...).
		From(accountsTable).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list accounts query: %w", err)
	}

	views := []models.AccountView{}
	if err := r.db.SelectContext(ctx, &views, query, args...); err != nil {
		return nil, classify(err, "list accounts")
	}
	return views, nil
}

// Exists always consults PostgreSQL; the cache is never trusted for
// existence checks that guard writes.
func (r *AccountReadRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.db, accountsTable, sq.Eq{"id": id}, "check account")
}

// CacheAccountView stores or refreshes the Redis read model for an account.
// Called by the command service after every mutation.
func (r *AccountReadRepository) CacheAccountView(ctx context.Context, view *models.AccountView) {
	if r.cacheable(view.ID) {
		r.cache.Set(ctx, accountViewKey(view.ID), view)
	}
}

// InvalidateAccountView tombstones the Redis entry of a deleted account.
func (r *AccountReadRepository) InvalidateAccountView(ctx context.Context, id int64) {
	if err := r.cache.Tombstone(ctx, accountViewKey(id), r.tombstoneTTL); err != nil {
		r.uncached.Store(id, struct{}{})
		r.log.WithError(err).WithField("account_id", id).Warn("cache invalidation failed; reading account from PostgreSQL only")
	}
}

func (r *AccountReadRepository) cacheable(id int64) bool {
	_, skip := r.uncached.Load(id)
	return !skip
}

func accountViewKey(id int64) string {
	return accountViewKeyPrefix + strconv.FormatInt(id, 10)
}
