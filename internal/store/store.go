package store

import (
	"context"
	"errors"
	"strings"
)

// Package store defines the document store the gateway talks to.
// Backends live in subpackages (firestore, mysql) plus the in-memory Memory
// store used for local runs and tests.

// ErrNotFound is returned by Get and Update when the document does not exist.
var ErrNotFound = errors.New("document not found")

// Collection names used by the gateway.
const (
	Users        = "usuarios"
	Rooms        = "salas"
	Reservations = "reservaciones"
	Ratings      = "calificaciones"
	Reports      = "reportes"
)

// Document is a stored record: the store-assigned id plus its fields.
type Document struct {
	ID   string
	Data map[string]any
}

// Store is the minimal document-store surface the handlers depend on.
// Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, collection, id string) (Document, error)
	List(ctx context.Context, collection string) ([]Document, error)
	Add(ctx context.Context, collection string, fields map[string]any) (string, error)
	// Update merges fields into an existing document. The existence check and
	// the write happen atomically; ErrNotFound when the document is absent.
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	// Delete removes a document. Deleting an absent document is not an error.
	Delete(ctx context.Context, collection, id string) error
	Close() error
}

// SubCollection returns the path of a collection nested under a document,
// e.g. SubCollection("salas", "r1", "calificaciones") == "salas/r1/calificaciones".
func SubCollection(collection, id, sub string) string {
	return strings.Join([]string{collection, id, sub}, "/")
}

// Merge copies fields over base at the top level and returns base.
// A nil base is allocated.
func Merge(base, fields map[string]any) map[string]any {
	if base == nil {
		base = make(map[string]any, len(fields))
	}
	for k, v := range fields {
		base[k] = v
	}
	return base
}
