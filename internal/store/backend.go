// Package store persists named record collections (tasks, sessions) as JSON
// documents on a pluggable backend. Loading never fails the caller: absent or
// corrupt data reads as empty.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Backend when a collection has never been written.
var ErrNotFound = errors.New("not found")

// Collection names used by pomo.
const (
	CollectionTasks    = "tasks"
	CollectionSessions = "sessions"
)

// Backend reads and writes raw collection documents.
type Backend interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
}

// Journal is implemented by backends that count collection writes.
type Journal interface {
	WriteCount(ctx context.Context, name string) (int, error)
}
