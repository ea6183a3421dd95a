package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSetupBookRoutes ensures all expected book endpoints are implemented.
func TestSetupBookRoutes(t *testing.T) {
	testCases := []struct {
		name        string
		request     *http.Request
		implemented bool
	}{
		{
			"create book endpoint",
			httptest.NewRequest(http.MethodPost, "/books", nil),
			true,
		},
		{
			"fetch all books endpoint",
			httptest.NewRequest(http.MethodGet, "/books", nil),
			true,
		},
		{
			"fetch single book endpoint",
			httptest.NewRequest(http.MethodGet, "/books/1", nil),
			true,
		},
		{
			"update book endpoint",
			httptest.NewRequest(http.MethodPut, "/books/1", nil),
			true,
		},
		{
			"delete book endpoint",
			httptest.NewRequest(http.MethodDelete, "/books/1", nil),
			true,
		},
		{
			"versioned books endpoint",
			httptest.NewRequest(http.MethodGet, "/v1/books", nil),
			false,
		},
		{
			"nested book endpoint",
			httptest.NewRequest(http.MethodGet, "/books/1/authors", nil),
			false,
		},
	}

	api := newTestAPIHandler(newTestConfig(), newSeededStorage())
	router := httprouter.New()
	api.SetupBookRoutes(router, emptyChains())

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, tc.request)
			if tc.implemented {
				assert.NotEqual(t, 404, w.Code)
			} else {
				assert.Equal(t, 404, w.Code)
			}
		})
	}
}

// TestSetupUserRoutes ensures all expected user endpoints are implemented.
func TestSetupUserRoutes(t *testing.T) {
	testCases := []struct {
		name        string
		request     *http.Request
		implemented bool
	}{
		{
			"create user endpoint",
			httptest.NewRequest(http.MethodPost, "/users", nil),
			true,
		},
		{
			"fetch all users endpoint",
			httptest.NewRequest(http.MethodGet, "/users", nil),
			true,
		},
		{
			"fetch single user endpoint",
			httptest.NewRequest(http.MethodGet, "/users/1", nil),
			true,
		},
		{
			"update user endpoint",
			httptest.NewRequest(http.MethodPut, "/users/1", nil),
			true,
		},
		{
			"delete user endpoint",
			httptest.NewRequest(http.MethodDelete, "/users/1", nil),
			true,
		},
		{
			"unknown user subresource",
			httptest.NewRequest(http.MethodGet, "/users/1/books", nil),
			false,
		},
	}

	api := newTestAPIHandler(newTestConfig(), newSeededStorage())
	router := httprouter.New()
	api.SetupUserRoutes(router, emptyChains())

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, tc.request)
			if tc.implemented {
				assert.NotEqual(t, 404, w.Code)
			} else {
				assert.Equal(t, 404, w.Code)
			}
		})
	}
}

// TestSetupOpsRoutes ensures all expected operations endpoints are implemented.
func TestSetupOpsRoutes(t *testing.T) {
	testCases := []struct {
		name        string
		profiler    bool
		request     *http.Request
		implemented bool
	}{
		{
			"fetch configs endpoint",
			false,
			httptest.NewRequest(http.MethodGet, "/ops/configs", nil),
			true,
		},
		{
			"fetch stats endpoint",
			false,
			httptest.NewRequest(http.MethodGet, "/ops/stats", nil),
			true,
		},
		{
			"fetch vars endpoint",
			false,
			httptest.NewRequest(http.MethodGet, "/ops/debug/vars", nil),
			true,
		},
		{
			"invalid ops endpoint",
			false,
			httptest.NewRequest(http.MethodGet, "/ops", nil),
			false,
		},
		{
			"unknown ops endpoint",
			false,
			httptest.NewRequest(http.MethodGet, "/ops/unknown", nil),
			false,
		},
		{
			"disabled profiler endpoint",
			false,
			httptest.NewRequest(http.MethodGet, "/ops/debug/pprof/", nil),
			false,
		},
		{
			"enabled profiler endpoint",
			true,
			httptest.NewRequest(http.MethodGet, "/ops/debug/pprof/cmdline", nil),
			true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config := newTestConfig()
			config.ProfilerEndpointsEnable = tc.profiler
			api := newTestAPIHandler(config, NewMemoryStorage())
			router := httprouter.New()
			api.SetupOpsRoutes(router, emptyChains())
			w := httptest.NewRecorder()
			router.ServeHTTP(w, tc.request)
			if tc.implemented {
				assert.NotEqual(t, 404, w.Code)
			} else {
				assert.Equal(t, 404, w.Code)
			}
		})
	}
}

// TestSetupRoutes ensures all expected endpoints are implemented.
func TestSetupRoutes(t *testing.T) {
	testCases := []struct {
		name               string
		OpsEndpointsEnable bool
		request            *http.Request
		implemented        bool
	}{
		{
			"ops disable:fetch configs endpoint",
			false,
			httptest.NewRequest(http.MethodGet, "/ops/configs", nil),
			false,
		},
		{
			"ops enable:fetch configs endpoint",
			true,
			httptest.NewRequest(http.MethodGet, "/ops/configs", nil),
			true,
		},
		{
			"ops enable:disabled profiler endpoint",
			true,
			httptest.NewRequest(http.MethodGet, "/ops/debug/pprof/", nil),
			false,
		},
		{
			"index endpoint",
			false,
			httptest.NewRequest(http.MethodGet, "/", nil),
			true,
		},
		{
			"status endpoint",
			false,
			httptest.NewRequest(http.MethodGet, "/status", nil),
			true,
		},
		{
			"health endpoint",
			false,
			httptest.NewRequest(http.MethodGet, "/health", nil),
			true,
		},
		{
			"admin secret endpoint",
			false,
			httptest.NewRequest(http.MethodGet, "/admin/secret", nil),
			true,
		},
		{
			"create book endpoint",
			false,
			httptest.NewRequest(http.MethodPost, "/books", nil),
			true,
		},
		{
			"fetch all users endpoint",
			false,
			httptest.NewRequest(http.MethodGet, "/users", nil),
			true,
		},
		{
			"swagger endpoint",
			false,
			httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil),
			true,
		},
		{
			"unknown admin endpoint",
			false,
			httptest.NewRequest(http.MethodGet, "/admin/unknown", nil),
			false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config := newTestConfig()
			config.OpsEndpointsEnable = tc.OpsEndpointsEnable
			api := newTestAPIHandler(config, NewMemoryStorage())
			router := httprouter.New()
			api.SetupRoutes(router, emptyChains())
			w := httptest.NewRecorder()
			router.ServeHTTP(w, tc.request)
			if tc.implemented {
				assert.NotEqual(t, 404, w.Code)
			} else {
				assert.Equal(t, 404, w.Code)
			}
		})
	}
}

// TestSetupRoutes_NotFound ensures exact status code and json response body when a user requests an inexistant route.
func TestSetupRoutes_NotFound(t *testing.T) {
	api := newTestAPIHandler(newTestConfig(), NewMemoryStorage())
	router := httprouter.New()
	api.SetupRoutes(router, emptyChains())
	r := httptest.NewRequest(http.MethodGet, "/x/books/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "application/json; charset=UTF-8", res.Header.Get("Content-Type"))
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	expected := `{"requestid":"r:abc", "message":"route does not exist", "path":"GET /x/books/"}`
	assert.JSONEq(t, expected, string(data))
	assert.Equal(t, "r:abc", res.Header.Get(RequestIDHeader))
}

// TestSetupRoutes_MethodNotAllowed ensures unsupported methods on known routes get a json 405.
func TestSetupRoutes_MethodNotAllowed(t *testing.T) {
	api := newTestAPIHandler(newTestConfig(), NewMemoryStorage())
	router := httprouter.New()
	api.SetupRoutes(router, emptyChains())
	r := httptest.NewRequest(http.MethodPatch, "/books/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	expected := `{"requestid":"r:abc", "message":"method not allowed", "path":"PATCH /books/1"}`
	assert.JSONEq(t, expected, string(data))
	assert.Equal(t, "r:abc", res.Header.Get(RequestIDHeader))
}

// TestSwaggerDocs ensures the api description is served.
func TestSwaggerDocs(t *testing.T) {
	api := newTestAPIHandler(newTestConfig(), NewMemoryStorage())
	router := httprouter.New()
	api.SetupRoutes(router, emptyChains())
	r := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title": "Bookshelf API"`)
	assert.Contains(t, w.Body.String(), `"/books/{id}"`)
	assert.Contains(t, w.Body.String(), `"X-API-Key"`)
}

// TestHandler_RequestTimeout ensures regular routes are cut by the request
// timeout while profiler routes run to completion.
func TestHandler_RequestTimeout(t *testing.T) {
	config := newTestConfig()
	config.Server.RequestTimeout = 20 * time.Millisecond
	api := newTestAPIHandler(config, NewMemoryStorage())
	slow := func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}
	router := httprouter.New()
	router.GET("/books", slow)
	router.GET("/ops/debug/pprof/profile", slow)
	handler := api.Handler(router)

	testCases := []struct {
		path   string
		status int
	}{
		{"/books", http.StatusServiceUnavailable},
		{"/ops/debug/pprof/profile", http.StatusOK},
	}
	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
			assert.Equal(t, tc.status, w.Code)
			assert.NotEmpty(t, w.Header().Get(ProcessTimeHeader))
		})
	}
}
