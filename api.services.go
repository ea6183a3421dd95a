package main

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type BookServiceProvider interface {
	GetAll(ctx context.Context) ([]Book, error)
	GetOne(ctx context.Context, id int) (Book, error)
	Add(ctx context.Context, book Book) (Book, error)
	Update(ctx context.Context, id int, book Book) (Book, error)
	Delete(ctx context.Context, id int) (Book, error)
}

type UserServiceProvider interface {
	GetAll(ctx context.Context) ([]User, error)
	GetOne(ctx context.Context, id int) (User, error)
	Add(ctx context.Context, user User) (User, error)
	Update(ctx context.Context, id int, user User) (User, error)
	Delete(ctx context.Context, id int) (User, error)
}

// BookService runs book operations against the storage. Each mutation
// loads the whole dataset, changes it then saves it back.
type BookService struct {
	logger  *zap.Logger
	storage Storage
	mu      *sync.RWMutex
}

// NewBookService provides a book service. Services built on the same storage
// must share mu so their load-modify-save sequences do not interleave.
func NewBookService(logger *zap.Logger, storage Storage, mu *sync.RWMutex) BookServiceProvider {
	if mu == nil {
		mu = &sync.RWMutex{}
	}
	return &BookService{
		logger:  logger,
		storage: storage,
		mu:      mu,
	}
}

func (bs *BookService) GetAll(ctx context.Context) ([]Book, error) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	db, err := bs.storage.Load(ctx)
	if err != nil {
		return nil, err
	}
	return db.Books, nil
}

func (bs *BookService) GetOne(ctx context.Context, id int) (Book, error) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	db, err := bs.storage.Load(ctx)
	if err != nil {
		return Book{}, err
	}
	i := findBook(db.Books, id)
	if i < 0 {
		return Book{}, ErrBookNotFound
	}
	return db.Books[i], nil
}

// Add assigns the next book id to the record, appends it then persists the dataset.
func (bs *BookService) Add(ctx context.Context, book Book) (Book, error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	db, err := bs.storage.Load(ctx)
	if err != nil {
		return Book{}, err
	}
	book.ID = db.NextBookID
	db.NextBookID++
	db.Books = append(db.Books, book)
	if err = bs.storage.Save(ctx, db); err != nil {
		bs.logger.Error("service: failed to save book", zap.Int("book.id", book.ID), zap.Error(err))
		return Book{}, err
	}
	return book, nil
}

// Update replaces every field of an existing book but its id.
func (bs *BookService) Update(ctx context.Context, id int, book Book) (Book, error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	db, err := bs.storage.Load(ctx)
	if err != nil {
		return Book{}, err
	}
	i := findBook(db.Books, id)
	if i < 0 {
		return Book{}, ErrBookNotFound
	}
	book.ID = id
	db.Books[i] = book
	if err = bs.storage.Save(ctx, db); err != nil {
		bs.logger.Error("service: failed to save book", zap.Int("book.id", id), zap.Error(err))
		return Book{}, err
	}
	return book, nil
}

// Delete removes a book and returns the removed record.
func (bs *BookService) Delete(ctx context.Context, id int) (Book, error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	db, err := bs.storage.Load(ctx)
	if err != nil {
		return Book{}, err
	}
	i := findBook(db.Books, id)
	if i < 0 {
		return Book{}, ErrBookNotFound
	}
	book := db.Books[i]
	db.Books = append(db.Books[:i], db.Books[i+1:]...)
	if err = bs.storage.Save(ctx, db); err != nil {
		bs.logger.Error("service: failed to save after book deletion", zap.Int("book.id", id), zap.Error(err))
		return Book{}, err
	}
	return book, nil
}

func findBook(books []Book, id int) int {
	for i := range books {
		if books[i].ID == id {
			return i
		}
	}
	return -1
}

// UserService runs user operations against the storage.
type UserService struct {
	logger  *zap.Logger
	storage Storage
	mu      *sync.RWMutex
}

func NewUserService(logger *zap.Logger, storage Storage, mu *sync.RWMutex) UserServiceProvider {
	if mu == nil {
		mu = &sync.RWMutex{}
	}
	return &UserService{
		logger:  logger,
		storage: storage,
		mu:      mu,
	}
}

func (us *UserService) GetAll(ctx context.Context) ([]User, error) {
	us.mu.RLock()
	defer us.mu.RUnlock()
	db, err := us.storage.Load(ctx)
	if err != nil {
		return nil, err
	}
	return db.Users, nil
}

func (us *UserService) GetOne(ctx context.Context, id int) (User, error) {
	us.mu.RLock()
	defer us.mu.RUnlock()
	db, err := us.storage.Load(ctx)
	if err != nil {
		return User{}, err
	}
	i := findUser(db.Users, id)
	if i < 0 {
		return User{}, ErrUserNotFound
	}
	return db.Users[i], nil
}

func (us *UserService) Add(ctx context.Context, user User) (User, error) {
	us.mu.Lock()
	defer us.mu.Unlock()
	db, err := us.storage.Load(ctx)
	if err != nil {
		return User{}, err
	}
	user.ID = db.NextUserID
	db.NextUserID++
	db.Users = append(db.Users, user)
	if err = us.storage.Save(ctx, db); err != nil {
		us.logger.Error("service: failed to save user", zap.Int("user.id", user.ID), zap.Error(err))
		return User{}, err
	}
	return user, nil
}

func (us *UserService) Update(ctx context.Context, id int, user User) (User, error) {
	us.mu.Lock()
	defer us.mu.Unlock()
	db, err := us.storage.Load(ctx)
	if err != nil {
		return User{}, err
	}
	i := findUser(db.Users, id)
	if i < 0 {
		return User{}, ErrUserNotFound
	}
	user.ID = id
	db.Users[i] = user
	if err = us.storage.Save(ctx, db); err != nil {
		us.logger.Error("service: failed to save user", zap.Int("user.id", id), zap.Error(err))
		return User{}, err
	}
	return user, nil
}

func (us *UserService) Delete(ctx context.Context, id int) (User, error) {
	us.mu.Lock()
	defer us.mu.Unlock()
	db, err := us.storage.Load(ctx)
	if err != nil {
		return User{}, err
	}
	i := findUser(db.Users, id)
	if i < 0 {
		return User{}, ErrUserNotFound
	}
	user := db.Users[i]
	db.Users = append(db.Users[:i], db.Users[i+1:]...)
	if err = us.storage.Save(ctx, db); err != nil {
		us.logger.Error("service: failed to save after user deletion", zap.Int("user.id", id), zap.Error(err))
		return User{}, err
	}
	return user, nil
}

func findUser(users []User, id int) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}
