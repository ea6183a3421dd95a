package main

import (
	"strings"

	"github.com/gofrs/uuid"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// UIDHandler provides prefixed unique identifiers.
type UIDHandler interface {
	Generate(prefix string) string
}

var _ UIDHandler = (*IDsHandler)(nil)

// IDsHandler generates random (v4) uuids.
type IDsHandler struct {
	gen uuid.Generator
}

// NewIDsHandler returns a ready to use IDsHandler.
func NewIDsHandler() *IDsHandler {
	return &IDsHandler{gen: uuid.NewGen()}
}

// Generate provides a random unique identifier in the form `<prefix>:<uuid>`.
// It falls back to a time based uuid if the random source fails.
func (idh *IDsHandler) Generate(prefix string) string {
	id, err := idh.gen.NewV4()
	if err != nil {
		id = uuid.Must(idh.gen.NewV1())
	}
	return prefix + ":" + id.String()
}

// ParseRequestID accepts a client supplied request id if it is a well
// formed `<prefix>:<uuid>` value, otherwise it returns an empty string.
func ParseRequestID(prefix, value string) string {
	raw, found := strings.CutPrefix(value, prefix+":")
	if !found {
		return ""
	}
	id, err := uuid.FromString(raw)
	if err != nil || id == uuid.Nil {
		return ""
	}
	return prefix + ":" + id.String()
}
