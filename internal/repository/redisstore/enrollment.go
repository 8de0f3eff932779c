package redisstore

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/pontocerto/pontocerto-backend-go/internal/config"
)

// ErrTokenNotFound is returned when a token is unknown, expired or
// already consumed. The three cases are indistinguishable on purpose.
var ErrTokenNotFound = errors.New("enrollment token not found")

const tokenKeyPrefix = "enroll:token:"

func NewClient(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return rdb, nil
}

// EnrollmentTokenStore keeps one-time facial enrollment tokens in Redis
// with a TTL. Consume is atomic: a token can never enroll two photos.
type EnrollmentTokenStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewEnrollmentTokenStore(rdb *redis.Client, ttl time.Duration) *EnrollmentTokenStore {
	return &EnrollmentTokenStore{rdb: rdb, ttl: ttl}
}

// Issue creates a fresh token bound to an employee. Issuing again before
// the previous token is used or expires simply creates a second valid
// token; revocation happens through employee deletion, not here.
func (s *EnrollmentTokenStore) Issue(ctx context.Context, employeeID string, companyID string) (string, time.Time, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate enrollment token: %w", err)
	}
	token := hex.EncodeToString(raw)

	value := employeeID + ":" + companyID
	ok, err := s.rdb.SetNX(ctx, tokenKeyPrefix+token, value, s.ttl).Result()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to store enrollment token: %w", err)
	}
	if !ok {
		// 256-bit random collision; treat as an error rather than loop.
		return "", time.Time{}, fmt.Errorf("enrollment token collision")
	}

	return token, time.Now().Add(s.ttl), nil
}

// Consume atomically fetches and deletes a token, returning the bound
// employee and company IDs.
func (s *EnrollmentTokenStore) Consume(ctx context.Context, token string) (employeeID string, companyID string, err error) {
	value, err := s.rdb.GetDel(ctx, tokenKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", "", ErrTokenNotFound
		}
		return "", "", fmt.Errorf("failed to consume enrollment token: %w", err)
	}

	for i := 0; i < len(value); i++ {
		if value[i] == ':' {
			return value[:i], value[i+1:], nil
		}
	}
	return "", "", ErrTokenNotFound
}
