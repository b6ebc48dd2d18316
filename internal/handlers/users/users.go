package users

import "github.com/DonSam77/reservasjs/internal/store"

// Package users provides user management HTTP handlers over the usuarios
// collection. Users are schemaless documents: bodies are stored as given.
//
// This file defines the handler type and constructor only.
// The HTTP methods are split into dedicated, focused files:
// - list.go:   Handler.List
// - get.go:    Handler.Get
// - create.go: Handler.Create
// - update.go: Handler.Update
// - delete.go: Handler.Delete

const notFound = "User not found"

// Handler wires user endpoints to the document store.
type Handler struct{ store store.Store }

// New returns a new users handler.
func New(s store.Store) *Handler { return &Handler{store: s} }
