package reservations

import "github.com/DonSam77/reservasjs/internal/store"

// Package reservations provides reservation HTTP handlers over the
// reservaciones collection. Referenced room and user ids are not checked.
//
// This file defines the handler type and constructor only.
// The HTTP methods are implemented in dedicated files:
// - list.go:   Handler.List
// - get.go:    Handler.Get
// - create.go: Handler.Create
// - delete.go: Handler.Delete

const notFound = "Reservation not found"

// Handler wires reservation endpoints to the document store.
type Handler struct{ store store.Store }

// NewHandler returns a new reservations handler.
func NewHandler(s store.Store) *Handler { return &Handler{store: s} }
