package service

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authModel "attendance_backend/internals/features/users/auth/model"
)

// Revoker remembers logged-out tokens until they would have expired anyway.
// Keys are token fingerprints.
type Revoker interface {
	Revoke(ctx context.Context, fingerprint string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, fingerprint string) (bool, error)
}

/* ==========================
   Postgres (token_blacklist)
========================== */

type BlacklistRevoker struct {
	db  *gorm.DB
	now func() time.Time
}

func NewBlacklistRevoker(db *gorm.DB, now func() time.Time) *BlacklistRevoker {
	if now == nil {
		now = time.Now
	}
	return &BlacklistRevoker{db: db, now: now}
}

func (r *BlacklistRevoker) Revoke(ctx context.Context, fingerprint string, expiresAt time.Time) error {
	now := r.now().UTC()
	if !expiresAt.After(now) {
		return nil
	}
	db := r.db.WithContext(ctx)

	// expired entries are pruned on write; there is no background sweeper
	if err := db.Where("expired_at <= ?", now).Delete(&authModel.TokenBlacklist{}).Error; err != nil {
		return err
	}
	row := authModel.TokenBlacklist{Token: fingerprint, ExpiredAt: expiresAt.UTC()}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
}

func (r *BlacklistRevoker) IsRevoked(ctx context.Context, fingerprint string) (bool, error) {
	var existing authModel.TokenBlacklist
	err := r.db.WithContext(ctx).
		Select("id").
		Where("token = ? AND expired_at > ?", fingerprint, r.now().UTC()).
		Take(&existing).Error
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, nil
	default:
		return false, err
	}
}

/* ==========================
   Redis
========================== */

const redisRevokedPrefix = "revoked_token:"

type RedisRevoker struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisRevoker(client *redis.Client, now func() time.Time) *RedisRevoker {
	if now == nil {
		now = time.Now
	}
	return &RedisRevoker{client: client, now: now}
}

func (r *RedisRevoker) Revoke(ctx context.Context, fingerprint string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, redisRevokedPrefix+fingerprint, 1, ttl).Err()
}

func (r *RedisRevoker) IsRevoked(ctx context.Context, fingerprint string) (bool, error) {
	n, err := r.client.Exists(ctx, redisRevokedPrefix+fingerprint).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
