package main

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

var EmptyData = struct{}{}

// Statistics holds app stats for ops.
type Statistics struct {
	version   string
	container bool
	runtime   string
	platform  string
	called    uint64
	started   time.Time
	status    map[int]uint64
	mu        *sync.RWMutex
}

// APIHandler defines the API handler.
type APIHandler struct {
	logger      *zap.Logger
	config      *Config
	stats       *Statistics
	clock       Clocker
	idsHandler  UIDHandler
	bookService BookServiceProvider
	userService UserServiceProvider
}

// NewAPIHandler provides a new instance of APIHandler.
func NewAPIHandler(
	logger *zap.Logger,
	config *Config,
	stats *Statistics,
	clock Clocker,
	idsHandler UIDHandler,
	bs BookServiceProvider,
	us UserServiceProvider,
) *APIHandler {
	stats.status = make(map[int]uint64)
	stats.mu = &sync.RWMutex{}
	return &APIHandler{
		logger:      logger,
		config:      config,
		stats:       stats,
		clock:       clock,
		idsHandler:  idsHandler,
		bookService: bs,
		userService: us,
	}
}

// recordStatus increments the counter of responses sent with the given status code.
func (api *APIHandler) recordStatus(code int) {
	api.stats.mu.Lock()
	api.stats.status[code]++
	api.stats.mu.Unlock()
}
