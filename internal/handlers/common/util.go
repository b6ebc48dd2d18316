// Package common provides small, shared helpers used across handlers.
// Every handler reports failures through Fail so the error shape is the same
// on every route: {"error": <kind>, "message": <detail>}.
package common

import (
	"errors"
	"io"
	"net/http"

	"github.com/DonSam77/reservasjs/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Error kinds.
const (
	KindNotFound       = "not_found"
	KindInvalidRequest = "invalid_request"
	KindStore          = "store_error"
	KindInternal       = "server_error"
	KindUnauthorized   = "unauthorized"
	KindForbidden      = "forbidden"
)

// Fail maps err onto a status and writes the error body.
// store.ErrNotFound becomes 404 with notFoundMsg; anything else is a 500.
func Fail(c *gin.Context, err error, notFoundMsg string) {
	if errors.Is(err, store.ErrNotFound) {
		Abort(c, http.StatusNotFound, KindNotFound, notFoundMsg)
		return
	}
	log.Error().Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("store operation failed")
	Abort(c, http.StatusInternalServerError, KindStore, err.Error())
}

// Abort writes {"error": kind, "message": msg} and stops the chain.
func Abort(c *gin.Context, status int, kind, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": kind, "message": msg})
}

// BindDocument decodes the request body as a JSON object. Field contents are
// not validated; an empty or null body is an empty document. Empty field
// names are rejected since not every backend can store them.
func BindDocument(c *gin.Context) (map[string]any, bool) {
	var body map[string]any
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return map[string]any{}, true
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, true
		}
		Abort(c, http.StatusBadRequest, KindInvalidRequest, "request body must be a JSON object")
		return nil, false
	}
	if _, ok := body[""]; ok {
		Abort(c, http.StatusBadRequest, KindInvalidRequest, "field names must not be empty")
		return nil, false
	}
	if body == nil {
		body = map[string]any{}
	}
	return body, true
}

// WithID returns the fields plus "id". The store id always wins over an "id"
// key carried in the fields.
func WithID(id string, fields map[string]any) gin.H {
	out := make(gin.H, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["id"] = id
	return out
}

// Documents shapes a collection scan as [{id, ...fields}].
func Documents(docs []store.Document) []gin.H {
	out := make([]gin.H, 0, len(docs))
	for _, d := range docs {
		out = append(out, WithID(d.ID, d.Data))
	}
	return out
}
