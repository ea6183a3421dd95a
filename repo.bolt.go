package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/boltdb/bolt"
	"go.uber.org/zap"
)

// BoltDatabaseKey is the key under which the dataset snapshot is stored.
const BoltDatabaseKey string = "database"

type boltStorage struct {
	logger *zap.Logger
	client *bolt.DB
	config *BoltDBConfig
}

// GetBoltDBClient setup the database and the bucket then provides a ready to use client.
func GetBoltDBClient(config *BoltDBConfig) (*bolt.DB, error) {
	db, err := bolt.Open(config.FilePath, 0o600, &bolt.Options{Timeout: config.Timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open the database, %v", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, errB := tx.CreateBucketIfNotExists([]byte(config.BucketName)); errB != nil {
			return fmt.Errorf("failed to create %s bucket: %v", config.BucketName, errB)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set up bucket: %v", err)
	}
	return db, nil
}

// NewBoltStorage provides an instance of bolt-based storage. The whole
// dataset is kept as a single json snapshot inside the configured bucket.
func NewBoltStorage(logger *zap.Logger, config *BoltDBConfig, client *bolt.DB) Storage {
	return &boltStorage{
		logger: logger,
		client: client,
		config: config,
	}
}

// Close shuts down the bolt-based storage.
func (bs *boltStorage) Close() error {
	return bs.client.Close()
}

// Load reads the dataset snapshot. An empty bucket yields an empty dataset.
func (bs *boltStorage) Load(_ context.Context) (*Database, error) {
	// initialize a readable transaction.
	tx, err := bs.client.Begin(false)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	db := NewDatabase()
	result := tx.Bucket([]byte(bs.config.BucketName)).Get([]byte(BoltDatabaseKey))
	if result == nil {
		return db, nil
	}
	if err = json.Unmarshal(result, db); err != nil {
		return nil, fmt.Errorf("%w: bolt bucket %s: %v", ErrParse, bs.config.BucketName, err)
	}
	db.normalize()
	return db, nil
}

// Save replaces the dataset snapshot.
func (bs *boltStorage) Save(_ context.Context, db *Database) error {
	data, err := json.Marshal(db)
	if err != nil {
		return err
	}
	return bs.client.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bs.config.BucketName)).Put([]byte(BoltDatabaseKey), data)
	})
}
