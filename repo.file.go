package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

type fileStorage struct {
	logger *zap.Logger
	path   string
}

// NewFileStorage provides an instance of the json file based storage.
// The file is the single source of truth: it is fully read on each Load
// and fully overwritten on each Save.
func NewFileStorage(logger *zap.Logger, path string) Storage {
	return &fileStorage{
		logger: logger,
		path:   path,
	}
}

// ensure creates the data file with an empty dataset if it does not exist yet.
func (fst *fileStorage) ensure() error {
	_, err := os.Stat(fst.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(fst.path), 0o700); err != nil {
		return fmt.Errorf("failed to create data folder: %w", err)
	}
	fst.logger.Info("storage: creating empty data file", zap.String("storage.path", fst.path))
	return fst.write(NewDatabase())
}

// Load reads and decodes the whole data file.
func (fst *fileStorage) Load(_ context.Context) (*Database, error) {
	if err := fst.ensure(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fst.path)
	if err != nil {
		return nil, err
	}
	db := &Database{}
	if err = json.Unmarshal(data, db); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, fst.path, err)
	}
	db.normalize()
	return db, nil
}

// Save overwrites the data file with the given dataset.
func (fst *fileStorage) Save(_ context.Context, db *Database) error {
	return fst.write(db)
}

func (fst *fileStorage) write(db *Database) error {
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fst.path, data, 0o644)
}
