package stats

import (
	"context"
	"slices"

	"github.com/alexanderramin/pomo/internal/domain"
	"github.com/alexanderramin/pomo/internal/observe"
	"github.com/alexanderramin/pomo/internal/store"
	"github.com/google/uuid"
)

// Log is the append-only session log. Records are only removed by Clear.
type Log struct {
	store    *store.Store
	observer observe.UseCaseObserver
	sessions []domain.SessionRecord
}

// OpenLog loads the session collection. Missing or corrupt data yields an
// empty log.
func OpenLog(ctx context.Context, s *store.Store, obs observe.UseCaseObserver) *Log {
	return &Log{
		store:    s,
		observer: observe.OrNoop(obs),
		sessions: store.LoadList[domain.SessionRecord](ctx, s, store.CollectionSessions),
	}
}

// NewMemoryLog returns a log seeded with sessions that is never persisted.
func NewMemoryLog(sessions []domain.SessionRecord) *Log {
	return &Log{observer: observe.Noop{}, sessions: slices.Clone(sessions)}
}

// Append adds rec to the log and persists it. The record stays in memory
// when the write fails; the error is returned as a warning.
func (l *Log) Append(ctx context.Context, rec domain.SessionRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	l.sessions = append(l.sessions, rec)
	fields := map[string]any{"session_id": rec.ID, "type": string(rec.Type), "task": rec.Task}
	return observe.Track(ctx, l.observer, "stats.append_session", fields, func() error {
		return l.save(ctx)
	})
}

// Sessions returns a copy of every record in append order.
func (l *Log) Sessions() []domain.SessionRecord {
	return slices.Clone(l.sessions)
}

// Len returns the number of records.
func (l *Log) Len() int { return len(l.sessions) }

// Clear removes every record.
func (l *Log) Clear(ctx context.Context) error {
	l.sessions = []domain.SessionRecord{}
	return observe.Track(ctx, l.observer, "stats.clear", nil, func() error {
		return l.save(ctx)
	})
}

func (l *Log) save(ctx context.Context) error {
	if l.store == nil {
		return nil
	}
	return store.SaveList(ctx, l.store, store.CollectionSessions, l.sessions)
}
