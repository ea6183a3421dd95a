package main

import (
	"fmt"

	"go.uber.org/zap"
)

// Supported storage drivers.
const (
	FileDriver   = "file"
	MemoryDriver = "memory"
	BoltDriver   = "bolt"
	RedisDriver  = "redis"
)

// SetupStorage builds the storage selected by the configuration. The returned
// closer releases the underlying client if the driver holds one.
func SetupStorage(logger *zap.Logger, config *StorageConfig) (Storage, func(), error) {
	noop := func() {}
	switch config.Driver {
	case "", FileDriver:
		return NewFileStorage(logger, config.DataFile), noop, nil

	case MemoryDriver:
		return NewMemoryStorage(), noop, nil

	case BoltDriver:
		client, err := GetBoltDBClient(&config.BoltDB)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to connect to boltDB server: %s", err)
		}
		closer := func() {
			if cerr := client.Close(); cerr != nil {
				logger.Error("failed to close boltDB client", zap.Error(cerr))
			}
		}
		return NewBoltStorage(logger, &config.BoltDB, client), closer, nil

	case RedisDriver:
		client, err := GetRedisClient(&config.Redis)
		if err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("failed to connect to redis server: %s", err)
		}
		closer := func() {
			if cerr := client.Close(); cerr != nil {
				logger.Error("failed to close redis client", zap.Error(cerr))
			}
		}
		return NewRedisStorage(logger, client, config.Redis.Key), closer, nil
	}

	return nil, noop, fmt.Errorf("unknown storage driver %q", config.Driver)
}
