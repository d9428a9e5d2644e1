package settings

import (
	"context"

	"github.com/pkg/errors"

	"gitlab.com/paramountdax-exchange/site_maintenance/net/redis"
)

// DefaultRedisKey is the hash holding all options
const DefaultRedisKey = "site_options"

// RedisStore keeps every option as a field of one redis hash
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore constructor
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

// Get an option by name
func (s *RedisStore) Get(_ context.Context, name string) (string, error) {
	var value string
	isNil, err := s.client.ExecMaybeNil(&value, "HGET", s.key, name)
	if err != nil {
		return "", errors.Wrapf(err, "redis hget %s", name)
	}
	if isNil {
		return "", ErrNotFound
	}
	return value, nil
}

// Set an option
func (s *RedisStore) Set(_ context.Context, name, value string) error {
	if err := s.client.Exec(nil, "HSET", s.key, name, value); err != nil {
		return errors.Wrapf(err, "redis hset %s", name)
	}
	return nil
}

// Delete an option
func (s *RedisStore) Delete(_ context.Context, name string) error {
	if err := s.client.Exec(nil, "HDEL", s.key, name); err != nil {
		return errors.Wrapf(err, "redis hdel %s", name)
	}
	return nil
}

// Close the underlying connection pool
func (s *RedisStore) Close() error {
	return s.client.Disconnect()
}
