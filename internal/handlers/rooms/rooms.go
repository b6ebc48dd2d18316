package rooms

import "github.com/DonSam77/reservasjs/internal/store"

// Package rooms provides the salas endpoints: CRUD, manual lockout,
// availability lookup, and the ratings/reports sub-collections.
//
// This file defines the handler type and constructor only.
// The HTTP methods live in focused files:
// - list.go, get.go, create.go, update.go, delete.go: CRUD
// - lock.go:         Handler.Lock
// - availability.go: Handler.Availability
// - feedback.go:     Handler.Rate, Handler.Report, Handler.Ratings, Handler.Reports

const notFound = "Room not found"

// Handler wires room endpoints to the document store.
type Handler struct{ store store.Store }

// New returns a new rooms handler.
func New(s store.Store) *Handler { return &Handler{store: s} }
