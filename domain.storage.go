package main

import "context"

// Database is the whole persisted dataset. It is always loaded
// and saved as a single unit.
type Database struct {
	Books      []Book `json:"books"`
	NextBookID int    `json:"next_id"`
	Users      []User `json:"users"`
	NextUserID int    `json:"next_user_id"`
}

// NewDatabase returns an empty dataset with both counters at 1.
func NewDatabase() *Database {
	return &Database{
		Books:      []Book{},
		NextBookID: 1,
		Users:      []User{},
		NextUserID: 1,
	}
}

// normalize fills the gaps left by older or hand-edited files.
func (db *Database) normalize() {
	if db.Books == nil {
		db.Books = []Book{}
	}
	if db.Users == nil {
		db.Users = []User{}
	}
	// Counters never fall behind stored ids, whatever the file says.
	for _, b := range db.Books {
		if b.ID >= db.NextBookID {
			db.NextBookID = b.ID + 1
		}
	}
	for _, u := range db.Users {
		if u.ID >= db.NextUserID {
			db.NextUserID = u.ID + 1
		}
	}
	if db.NextBookID < 1 {
		db.NextBookID = 1
	}
	if db.NextUserID < 1 {
		db.NextUserID = 1
	}
}

// Clone returns a deep copy of the dataset.
func (db *Database) Clone() *Database {
	c := &Database{
		Books:      make([]Book, len(db.Books)),
		NextBookID: db.NextBookID,
		Users:      make([]User, len(db.Users)),
		NextUserID: db.NextUserID,
	}
	copy(c.Books, db.Books)
	copy(c.Users, db.Users)
	return c
}

// Storage defines the persistence capability used by the services.
// Every call reads or writes the full dataset.
type Storage interface {
	Load(ctx context.Context) (*Database, error)
	Save(ctx context.Context, db *Database) error
}
