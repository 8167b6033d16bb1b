package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"niche-picker-be/internal/repository/contract"
	"niche-picker-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "picker:session:"
	// updateRetries bounds optimistic retries when another instance writes
	// the same session between WATCH and EXEC
	updateRetries = 10
)

// RedisSessionRepository shares picker sessions between instances. Values are
// the JSON form of store.PickerSession with a sliding TTL.
type RedisSessionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSessionRepository(rdb *redis.Client, ttl time.Duration) contract.SessionRepository {
	return &RedisSessionRepository{rdb: rdb, ttl: ttl}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (r *RedisSessionRepository) Save(ctx context.Context, session *store.PickerSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", session.ID, err)
	}
	return r.rdb.Set(ctx, sessionKey(session.ID), data, r.ttl).Err()
}

func (r *RedisSessionRepository) Get(ctx context.Context, sessionID string) (*store.PickerSession, bool, error) {
	data, err := r.rdb.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var session store.PickerSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, false, fmt.Errorf("unmarshal session %s: %w", sessionID, err)
	}
	return &session, true, nil
}

// Update runs fn inside WATCH/MULTI on the session key and retries when the
// key changed before EXEC.
func (r *RedisSessionRepository) Update(ctx context.Context, sessionID string, fn func(*store.PickerSession) error) (*store.PickerSession, bool, error) {
	key := sessionKey(sessionID)
	for attempt := 0; attempt < updateRetries; attempt++ {
		var (
			updated *store.PickerSession
			found   bool
		)
		err := r.rdb.Watch(ctx, func(tx *redis.Tx) error {
			data, err := tx.Get(ctx, key).Bytes()
			if errors.Is(err, redis.Nil) {
				return nil
			}
			if err != nil {
				return err
			}
			found = true

			var session store.PickerSession
			if err := json.Unmarshal(data, &session); err != nil {
				return fmt.Errorf("unmarshal session %s: %w", sessionID, err)
			}
			if err := fn(&session); err != nil {
				return err
			}
			out, err := json.Marshal(&session)
			if err != nil {
				return fmt.Errorf("marshal session %s: %w", sessionID, err)
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, out, r.ttl)
				return nil
			})
			if err == nil {
				updated = &session
			}
			return err
		}, key)

		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, found, err
		}
		return updated, found, nil
	}
	return nil, true, fmt.Errorf("update session %s: gave up after %d conflicting writes", sessionID, updateRetries)
}

func (r *RedisSessionRepository) Delete(ctx context.Context, sessionID string) error {
	return r.rdb.Del(ctx, sessionKey(sessionID)).Err()
}
