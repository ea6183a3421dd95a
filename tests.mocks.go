package main

import (
	"context"
	"time"
)

// This file contains mocks definitions needed to perform unit tests.

// MockStorage implements a fake Storage.
type MockStorage struct {
	LoadFunc func(ctx context.Context) (*Database, error)
	SaveFunc func(ctx context.Context, db *Database) error
}

// Load mocks the behavior of reading the dataset.
func (m *MockStorage) Load(ctx context.Context) (*Database, error) {
	return m.LoadFunc(ctx)
}

// Save mocks the behavior of persisting the dataset.
func (m *MockStorage) Save(ctx context.Context, db *Database) error {
	return m.SaveFunc(ctx, db)
}

// MockClocker implements a fake Clocker.
type MockClocker struct {
	MockNow time.Time
}

// NewMockClocker returns a mocked instance with fixed time.
func NewMockClocker() *MockClocker {
	return &MockClocker{time.Date(2023, 0o7, 0o2, 0o0, 0o0, 0o0, 0o00000000, time.UTC)}
}

// Now returns an already defined time to be used as mock. This
// equals to `Sun, 02 Jul 2023 00:00:00 UTC` in time.RFC1123 format.
func (mck *MockClocker) Now() time.Time {
	return mck.MockNow
}

// MockUIDHandler implements a fake UIDHandler.
type MockUIDHandler struct {
	MockedUID string
}

// NewMockUIDHandler returns a mocked instance with predictable id.
func NewMockUIDHandler(id string) *MockUIDHandler {
	return &MockUIDHandler{MockedUID: id}
}

// Generate constructs a predictable id to be used as mock.
func (muid *MockUIDHandler) Generate(prefix string) string {
	return prefix + ":" + muid.MockedUID
}
