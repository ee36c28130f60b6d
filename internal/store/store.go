// Package store keeps named template sources in Redis.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// KeyPrefix is prepended to every template name
const KeyPrefix = "template:source:"

// ErrTemplateNotFound is returned when no source is stored under a name
var ErrTemplateNotFound = errors.New("template not found")

// RedisTemplateStore stores template sources as plain Redis strings
type RedisTemplateStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisTemplateStore creates a new Redis template store
func NewRedisTemplateStore(client *redis.Client, logger *zap.Logger) *RedisTemplateStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisTemplateStore{
		client: client,
		logger: logger,
	}
}

// Key returns the Redis key for a template name
func Key(name string) string {
	return KeyPrefix + name
}

// Save stores a template source. A zero ttl keeps it forever.
func (s *RedisTemplateStore) Save(ctx context.Context, name, source string, ttl time.Duration) error {
	if name == "" {
		return fmt.Errorf("template name is required")
	}

	if err := s.client.Set(ctx, Key(name), source, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}

	s.logger.Debug("saved template", zap.String("name", name), zap.Duration("ttl", ttl))
	return nil
}

// Load returns the source stored under name
func (s *RedisTemplateStore) Load(ctx context.Context, name string) (string, error) {
	source, err := s.client.Get(ctx, Key(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
		return "", fmt.Errorf("failed to load template: %w", err)
	}

	return source, nil
}

// Delete removes a template
func (s *RedisTemplateStore) Delete(ctx context.Context, name string) error {
	if err := s.client.Del(ctx, Key(name)).Err(); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return nil
}

// Exists checks if a template is stored under name
func (s *RedisTemplateStore) Exists(ctx context.Context, name string) (bool, error) {
	result, err := s.client.Exists(ctx, Key(name)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return result > 0, nil
}

// List returns the names of all stored templates
func (s *RedisTemplateStore) List(ctx context.Context) ([]string, error) {
	var names []string
	iter := s.client.Scan(ctx, 0, KeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if name := strings.TrimPrefix(iter.Val(), KeyPrefix); name != "" {
			names = append(names, name)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return names, nil
}
