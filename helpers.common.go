package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
)

var (
	ErrBookNotFound = errors.New("book not found")
	ErrUserNotFound = errors.New("user not found")
	ErrEmptyBody    = errors.New("request body is empty")
	ErrInvalidID    = errors.New("id must be a positive integer")
	ErrUnauthorized = errors.New("missing or invalid api key")
)

// ErrParse is returned when the persisted dataset cannot be decoded.
var ErrParse = errors.New("storage: malformed dataset")

type (
	ContextKey        string
	missingFieldError string
	invalidFieldError string
)

const (
	RequestIDPrefix         string     = "r"
	RequestIDContextKey     ContextKey = "request.id"
	RequestNumberContextKey ContextKey = "request.number"
	APIKeyHeader            string     = "X-API-Key"
	ProcessTimeHeader       string     = "X-Process-Time"
)

func (m missingFieldError) Error() string {
	return string(m) + " is required"
}

func (m invalidFieldError) Error() string {
	return string(m) + " has an invalid type"
}

// GetValueFromContext returns the value of a given key in the context
// if this key is not available, it returns an empty string.
func GetValueFromContext(ctx context.Context, contextKey ContextKey) string {
	if val := ctx.Value(contextKey); val != nil {
		return val.(string)
	}
	return ""
}

// GetRequestNumberFromContext returns the request number set in
// the context. if not previously set then it returns 0.
func GetRequestNumberFromContext(ctx context.Context) uint64 {
	if val := ctx.Value(RequestNumberContextKey); val != nil {
		return val.(uint64)
	}
	return 0
}

// DecodeRequestBody reads the json content of a creation or update request into v.
// Type mismatches are reported with the name of the offending field.
func DecodeRequestBody(r *http.Request, v interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return ErrEmptyBody
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) {
		return ErrEmptyBody
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return invalidFieldError(typeErr.Field)
	}
	return err
}

// ValidateBookInput checks that every book field is present.
func ValidateBookInput(in *BookInput) error {
	if in.Title == nil {
		return missingFieldError("title")
	}

	if in.Author == nil {
		return missingFieldError("author")
	}

	if in.Year == nil {
		return missingFieldError("year")
	}

	if in.Genre == nil {
		return missingFieldError("genre")
	}

	if in.Price == nil {
		return missingFieldError("price")
	}

	return nil
}

// ValidateUserInput checks that the user name and email are present. The role is optional.
func ValidateUserInput(in *UserInput) error {
	if in.Name == nil {
		return missingFieldError("name")
	}

	if in.Email == nil {
		return missingFieldError("email")
	}

	return nil
}

// ParseEntityID converts a path parameter into an entity id.
func ParseEntityID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 1 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// GetRequestSourceIP helps find the source IP of the caller.
func GetRequestSourceIP(r *http.Request) string {
	// Get IP from the X-REAL-IP header
	ip := r.Header.Get("X-REAL-IP")
	netIP := net.ParseIP(ip)
	if netIP != nil {
		return ip
	}

	// Get IP from X-FORWARDED-FOR header
	ips := r.Header.Get("X-FORWARDED-FOR")
	splitIps := strings.Split(ips, ",")
	for _, ip := range splitIps {
		ip = strings.TrimSpace(ip)
		netIP = net.ParseIP(ip)
		if netIP != nil {
			return ip
		}
	}

	// Get IP from RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return ""
	}
	netIP = net.ParseIP(ip)
	if netIP != nil {
		return ip
	}
	return ""
}

// IsAppRunningInDocker checks the existence of the .dockerenv
// file at the root directory and returns a boolean result.
func IsAppRunningInDocker() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	return false
}
