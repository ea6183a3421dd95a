package main

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const testAPIKey = "test-key"

// newTestConfig returns a configuration usable by handlers and middlewares under test.
func newTestConfig() *Config {
	return &Config{
		APIKey:             testAPIKey,
		OpsEndpointsEnable: true,
		Server: ServerConfig{
			RequestTimeout: 5 * time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
	}
}

// newTestAPIHandler returns an api handler whose both services run on the given storage.
func newTestAPIHandler(config *Config, storage Storage) *APIHandler {
	mu := &sync.RWMutex{}
	return NewAPIHandler(
		zap.NewNop(),
		config,
		&Statistics{started: NewMockClocker().Now()},
		NewMockClocker(),
		NewMockUIDHandler("abc"),
		NewBookService(zap.NewNop(), storage, mu),
		NewUserService(zap.NewNop(), storage, mu),
	)
}

// emptyChains returns a middleware map without any middleware.
func emptyChains() *MiddlewareMap {
	return &MiddlewareMap{public: (&Middlewares{}).Chain, admin: (&Middlewares{}).Chain}
}

// newSeededStorage returns a memory storage holding book 1 and user 1.
func newSeededStorage() Storage {
	db := NewDatabase()
	db.Books = append(db.Books, Book{ID: 1, Title: "Dune", Author: "Frank Herbert", Year: 1965, Genre: "sci-fi", Price: 45})
	db.NextBookID = 2
	db.Users = append(db.Users, User{ID: 1, Name: "Jerome", Email: "jerome@example.com", Role: RoleReader})
	db.NextUserID = 2
	storage := NewMemoryStorage()
	_ = storage.Save(context.Background(), db)
	return storage
}
