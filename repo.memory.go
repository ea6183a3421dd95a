package main

import (
	"context"
	"sync"
)

type memoryStorage struct {
	mu sync.Mutex
	db *Database
}

// NewMemoryStorage provides an ephemeral storage. Data is lost when the process exits.
func NewMemoryStorage() Storage {
	return &memoryStorage{db: NewDatabase()}
}

// Load returns a copy of the last saved dataset.
func (ms *memoryStorage) Load(_ context.Context) (*Database, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	db := ms.db.Clone()
	db.normalize()
	return db, nil
}

// Save keeps a copy of the given dataset.
func (ms *memoryStorage) Save(_ context.Context, db *Database) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.db = db.Clone()
	return nil
}
