package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBookPayload = `{"title":"Solaris", "author":"Stanislaw Lem", "year":1961, "genre":"sci-fi", "price":39.9}`

// TestStatusHandler ensures api handler can provides its status.
func TestStatusHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()
	api := newTestAPIHandler(newTestConfig(), NewMemoryStorage())
	api.Status(w, req, httprouter.Params{})
	res := w.Result()
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/json; charset=UTF-8", res.Header.Get("Content-Type"))
	expected := `{"requestid":"", "status":"up & running since 0 mins", "message":"Hello. Bookshelf api is available. Enjoy :)"}`
	assert.JSONEq(t, expected, string(data))
}

// TestCreateBookHandler ensures api handler can create a book.
//
//nolint:funlen
func TestCreateBookHandler(t *testing.T) {
	t.Run("should pass: valid payload", func(t *testing.T) {
		storage := NewMemoryStorage()
		api := newTestAPIHandler(newTestConfig(), storage)
		req := httptest.NewRequest(http.MethodPost, "/books", bytes.NewBufferString(validBookPayload))
		w := httptest.NewRecorder()
		api.CreateBook(w, req, httprouter.Params{})
		res := w.Result()
		defer res.Body.Close()
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, res.StatusCode)
		assert.Equal(t, "application/json; charset=UTF-8", res.Header.Get("Content-Type"))
		expected := `{"requestid":"", "status":201, "message":"Book created successfully.",
		"data":{"id":1, "title":"Solaris", "author":"Stanislaw Lem", "year":1961, "genre":"sci-fi", "price":39.9}}`
		assert.JSONEq(t, expected, string(data))

		db, err := storage.Load(context.Background())
		require.NoError(t, err)
		assert.Len(t, db.Books, 1)
		assert.Equal(t, 2, db.NextBookID)
	})

	t.Run("should fail: storage saving failure", func(t *testing.T) {
		mockRepo := &MockStorage{
			LoadFunc: func(ctx context.Context) (*Database, error) {
				return NewDatabase(), nil
			},
			SaveFunc: func(ctx context.Context, db *Database) error {
				return errors.New("storage failure")
			},
		}
		api := newTestAPIHandler(newTestConfig(), mockRepo)
		req := httptest.NewRequest(http.MethodPost, "/books", bytes.NewBufferString(validBookPayload))
		w := httptest.NewRecorder()
		api.CreateBook(w, req, httprouter.Params{})
		res := w.Result()
		defer res.Body.Close()
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
		expected := `{"requestid":"", "status":500, "message":"failed to create the book", "data":"storage failure"}`
		assert.JSONEq(t, expected, string(data))
	})

	t.Run("should fail: invalid payload", func(t *testing.T) {
		testCases := []struct {
			name     string
			payload  string
			expected string
		}{
			{
				name:     "wrong type",
				payload:  `{"title":1, "author":"Stanislaw Lem", "year":1961, "genre":"sci-fi", "price":39.9}`,
				expected: `{"requestid":"", "status":400, "message":"failed to create the book", "data":"title has an invalid type"}`,
			},
			{
				name:     "year as text",
				payload:  `{"title":"Solaris", "author":"Stanislaw Lem", "year":"1961", "genre":"sci-fi", "price":39.9}`,
				expected: `{"requestid":"", "status":400, "message":"failed to create the book", "data":"year has an invalid type"}`,
			},
			{
				name:     "missing title",
				payload:  `{"author":"Stanislaw Lem", "year":1961, "genre":"sci-fi", "price":39.9}`,
				expected: `{"requestid":"", "status":400, "message":"failed to create the book", "data":"title is required"}`,
			},
			{
				name:     "missing price",
				payload:  `{"title":"Solaris", "author":"Stanislaw Lem", "year":1961, "genre":"sci-fi"}`,
				expected: `{"requestid":"", "status":400, "message":"failed to create the book", "data":"price is required"}`,
			},
			{
				name:     "empty body",
				payload:  ``,
				expected: `{"requestid":"", "status":400, "message":"failed to create the book", "data":"request body is empty"}`,
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				storage := NewMemoryStorage()
				api := newTestAPIHandler(newTestConfig(), storage)
				req := httptest.NewRequest(http.MethodPost, "/books", bytes.NewBufferString(tc.payload))
				w := httptest.NewRecorder()
				api.CreateBook(w, req, httprouter.Params{})
				res := w.Result()
				defer res.Body.Close()
				assert.Equal(t, http.StatusBadRequest, res.StatusCode)
				data, err := io.ReadAll(res.Body)
				assert.NoError(t, err)
				assert.JSONEq(t, tc.expected, string(data))

				db, err := storage.Load(context.Background())
				require.NoError(t, err)
				assert.Empty(t, db.Books)
			})
		}
	})
}

func TestGetOneBookHandler(t *testing.T) {
	storage := NewMemoryStorage()
	db := NewDatabase()
	db.Books = append(db.Books, Book{ID: 7, Title: "Dune", Author: "Frank Herbert", Year: 1965, Genre: "sci-fi", Price: 45})
	db.NextBookID = 8
	require.NoError(t, storage.Save(context.Background(), db))
	api := newTestAPIHandler(newTestConfig(), storage)

	testCases := []struct {
		name     string
		id       string
		status   int
		expected string
	}{
		{
			name:     "existing book",
			id:       "7",
			status:   http.StatusOK,
			expected: `{"requestid":"", "status":200, "message":"Book fetched successfully.", "data":{"id":7, "title":"Dune", "author":"Frank Herbert", "year":1965, "genre":"sci-fi", "price":45}}`,
		},
		{
			name:     "missing book",
			id:       "8",
			status:   http.StatusNotFound,
			expected: `{"requestid":"", "status":404, "message":"book does not exist", "data":{}}`,
		},
		{
			name:     "invalid id",
			id:       "abc",
			status:   http.StatusBadRequest,
			expected: `{"requestid":"", "status":400, "message":"book id provided is not valid", "data":"id must be a positive integer"}`,
		},
		{
			name:     "zero id",
			id:       "0",
			status:   http.StatusBadRequest,
			expected: `{"requestid":"", "status":400, "message":"book id provided is not valid", "data":"id must be a positive integer"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/books/"+tc.id, nil)
			w := httptest.NewRecorder()
			api.GetOneBook(w, req, httprouter.Params{{Key: "id", Value: tc.id}})
			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tc.status, res.StatusCode)
			data, err := io.ReadAll(res.Body)
			assert.NoError(t, err)
			assert.JSONEq(t, tc.expected, string(data))
		})
	}
}

func TestGetAllBooksHandler(t *testing.T) {
	t.Run("should pass: list with total", func(t *testing.T) {
		storage := NewMemoryStorage()
		db := NewDatabase()
		db.Books = append(db.Books,
			Book{ID: 1, Title: "A", Author: "X", Year: 2000, Genre: "g", Price: 1},
			Book{ID: 2, Title: "B", Author: "Y", Year: 2001, Genre: "g", Price: 2},
		)
		require.NoError(t, storage.Save(context.Background(), db))
		api := newTestAPIHandler(newTestConfig(), storage)

		req := httptest.NewRequest(http.MethodGet, "/books", nil)
		w := httptest.NewRecorder()
		api.GetAllBooks(w, req, httprouter.Params{})
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusOK, res.StatusCode)

		var resp struct {
			Total int    `json:"total"`
			Data  []Book `json:"data"`
		}
		require.NoError(t, json.NewDecoder(res.Body).Decode(&resp))
		assert.Equal(t, 2, resp.Total)
		assert.Equal(t, db.Books, resp.Data)
	})

	t.Run("should fail: corrupted storage", func(t *testing.T) {
		mockRepo := &MockStorage{
			LoadFunc: func(ctx context.Context) (*Database, error) {
				return nil, ErrParse
			},
		}
		api := newTestAPIHandler(newTestConfig(), mockRepo)
		req := httptest.NewRequest(http.MethodGet, "/books", nil)
		w := httptest.NewRecorder()
		api.GetAllBooks(w, req, httprouter.Params{})
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		expected := `{"requestid":"", "status":500, "message":"failed to get all books", "data":"storage: malformed dataset"}`
		assert.JSONEq(t, expected, string(data))
	})
}

func TestUpdateBookHandler(t *testing.T) {
	seed := func(t *testing.T) Storage {
		storage := NewMemoryStorage()
		db := NewDatabase()
		db.Books = append(db.Books, Book{ID: 1, Title: "Old", Author: "Someone", Year: 1990, Genre: "drama", Price: 10})
		db.NextBookID = 2
		require.NoError(t, storage.Save(context.Background(), db))
		return storage
	}

	t.Run("should pass: existing book", func(t *testing.T) {
		storage := seed(t)
		api := newTestAPIHandler(newTestConfig(), storage)
		req := httptest.NewRequest(http.MethodPut, "/books/1", bytes.NewBufferString(validBookPayload))
		w := httptest.NewRecorder()
		api.UpdateBook(w, req, httprouter.Params{{Key: "id", Value: "1"}})
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusOK, res.StatusCode)
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		expected := `{"requestid":"", "status":200, "message":"Book updated successfully.",
		"data":{"id":1, "title":"Solaris", "author":"Stanislaw Lem", "year":1961, "genre":"sci-fi", "price":39.9}}`
		assert.JSONEq(t, expected, string(data))

		db, err := storage.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Solaris", db.Books[0].Title)
		assert.Equal(t, 2, db.NextBookID)
	})

	t.Run("should fail: missing book leaves storage unchanged", func(t *testing.T) {
		storage := seed(t)
		before, err := storage.Load(context.Background())
		require.NoError(t, err)
		api := newTestAPIHandler(newTestConfig(), storage)
		req := httptest.NewRequest(http.MethodPut, "/books/42", bytes.NewBufferString(validBookPayload))
		w := httptest.NewRecorder()
		api.UpdateBook(w, req, httprouter.Params{{Key: "id", Value: "42"}})
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		after, err := storage.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("should fail: missing field", func(t *testing.T) {
		api := newTestAPIHandler(newTestConfig(), seed(t))
		req := httptest.NewRequest(http.MethodPut, "/books/1", bytes.NewBufferString(`{"title":"Solaris"}`))
		w := httptest.NewRecorder()
		api.UpdateBook(w, req, httprouter.Params{{Key: "id", Value: "1"}})
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		expected := `{"requestid":"", "status":400, "message":"failed to update the book", "data":"author is required"}`
		assert.JSONEq(t, expected, string(data))
	})
}

func TestDeleteOneBookHandler(t *testing.T) {
	storage := NewMemoryStorage()
	db := NewDatabase()
	db.Books = append(db.Books, Book{ID: 3, Title: "Ubik", Author: "Philip K. Dick", Year: 1969, Genre: "sci-fi", Price: 25.5})
	db.NextBookID = 4
	require.NoError(t, storage.Save(context.Background(), db))
	api := newTestAPIHandler(newTestConfig(), storage)

	t.Run("should pass: existing book", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/books/3", nil)
		w := httptest.NewRecorder()
		api.DeleteOneBook(w, req, httprouter.Params{{Key: "id", Value: "3"}})
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusOK, res.StatusCode)
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		expected := `{"requestid":"", "status":200, "message":"Book deleted successfully.",
		"data":{"id":3, "title":"Ubik", "author":"Philip K. Dick", "year":1969, "genre":"sci-fi", "price":25.5}}`
		assert.JSONEq(t, expected, string(data))
	})

	t.Run("should fail: already deleted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/books/3", nil)
		w := httptest.NewRecorder()
		api.DeleteOneBook(w, req, httprouter.Params{{Key: "id", Value: "3"}})
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.Equal(t, "application/json; charset=UTF-8", res.Header.Get("Content-Type"))
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		expected := `{"requestid":"", "status":404, "message":"book does not exist", "data":{}}`
		assert.JSONEq(t, expected, string(data))
	})
}
