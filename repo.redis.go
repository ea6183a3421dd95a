package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type redisStorage struct {
	logger *zap.Logger
	client *redis.Client
	key    string
}

// NewRedisStorage provides an instance of redis-based storage. The whole
// dataset is kept as a single json string under the given key.
func NewRedisStorage(logger *zap.Logger, client *redis.Client, key string) Storage {
	return &redisStorage{
		logger: logger,
		client: client,
		key:    key,
	}
}

// GetRedisClient provides a ready to use redis client.
func GetRedisClient(config *RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", config.Host, config.Port),
		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		PoolSize:     config.PoolSize,
		PoolTimeout:  config.PoolTimeout,
		Password:     config.Password,
		Username:     config.Username,
		DB:           config.DatabaseIndex,
	})

	// test connection.
	if pong, err := client.Ping(context.Background()).Result(); pong != "PONG" || err != nil {
		return client, fmt.Errorf("test connection failed: %v", err)
	}
	return client, nil
}

// Load reads the dataset snapshot. A missing key yields an empty dataset.
func (rs *redisStorage) Load(ctx context.Context) (*Database, error) {
	db := NewDatabase()
	data, err := rs.client.Get(ctx, rs.key).Bytes()
	if err == redis.Nil {
		return db, nil
	}
	if err != nil {
		return nil, err
	}
	if err = json.Unmarshal(data, db); err != nil {
		return nil, fmt.Errorf("%w: redis key %s: %v", ErrParse, rs.key, err)
	}
	db.normalize()
	return db, nil
}

// Save replaces the dataset snapshot.
func (rs *redisStorage) Save(ctx context.Context, db *Database) error {
	data, err := json.Marshal(db)
	if err != nil {
		return err
	}
	return rs.client.Set(ctx, rs.key, data, 0).Err()
}
