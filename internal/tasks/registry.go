// Package tasks owns the task list: creation, position-based edits,
// filtering, sorting and the per-task pomodoro counter.
package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/pomo/internal/domain"
	"github.com/alexanderramin/pomo/internal/observe"
	"github.com/alexanderramin/pomo/internal/store"
)

// ErrInvalidName is returned when a task name is empty after trimming.
var ErrInvalidName = errors.New("task name cannot be empty")

// PersistError reports that a change was applied in memory but could not be
// written. Callers treat it as a warning.
type PersistError struct {
	Op  string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s: task list not saved: %v", e.Op, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// document is the on-disk form of the task collection.
type document struct {
	NextID int           `json:"next_id"`
	Tasks  []domain.Task `json:"tasks"`
}

// UnmarshalJSON also accepts the bare task array written by older versions.
func (d *document) UnmarshalJSON(data []byte) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		d.NextID = 0
		return json.Unmarshal(trimmed, &d.Tasks)
	}
	type plain document
	return json.Unmarshal(data, (*plain)(d))
}

// Registry holds the task list in memory and writes it through on every
// mutation. Positions are indexes into the current ordering.
type Registry struct {
	store    *store.Store
	observer observe.UseCaseObserver
	now      func() time.Time

	tasks  []domain.Task
	nextID int
}

type Option func(*Registry)

// WithClock overrides the time source used for created/completed stamps.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

func WithObserver(obs observe.UseCaseObserver) Option {
	return func(r *Registry) { r.observer = observe.OrNoop(obs) }
}

// Open loads the task collection from s. Missing or corrupt data yields an
// empty registry.
func Open(ctx context.Context, s *store.Store, opts ...Option) *Registry {
	r := &Registry{store: s, observer: observe.Noop{}, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	var renumbered bool
	r.tasks, r.nextID, renumbered = load(ctx, s)
	if renumbered {
		// Failure is already logged by the store; the next mutation retries.
		_ = r.persist(ctx, "renumber")
	}
	return r
}

// load never reuses an id: next_id is raised past the largest stored id, and
// tasks that repeat an earlier id (older files numbered by list length) get a
// fresh one. renumbered reports whether any id changed.
func load(ctx context.Context, s *store.Store) (list []domain.Task, nextID int, renumbered bool) {
	var doc document
	if !s.Load(ctx, store.CollectionTasks, &doc) {
		return []domain.Task{}, 1, false
	}

	maxID := 0
	for i := range doc.Tasks {
		doc.Tasks[i].Normalize()
		maxID = max(maxID, doc.Tasks[i].ID)
	}
	nextID = max(doc.NextID, maxID+1)

	seen := make(map[int]bool, len(doc.Tasks))
	for i := range doc.Tasks {
		if id := doc.Tasks[i].ID; id > 0 && !seen[id] {
			seen[id] = true
			continue
		}
		doc.Tasks[i].ID = nextID
		seen[nextID] = true
		nextID++
		renumbered = true
	}
	if doc.Tasks == nil {
		doc.Tasks = []domain.Task{}
	}
	return doc.Tasks, nextID, renumbered
}

func (r *Registry) persist(ctx context.Context, op string) error {
	doc := document{NextID: r.nextID, Tasks: r.tasks}
	if err := r.store.Save(ctx, store.CollectionTasks, doc); err != nil {
		return &PersistError{Op: op, Err: err}
	}
	return nil
}

func (r *Registry) track(ctx context.Context, name string, fields map[string]any, fn func() error) error {
	return observe.Track(ctx, r.observer, name, fields, fn)
}

func (r *Registry) inRange(index int) bool {
	return index >= 0 && index < len(r.tasks)
}

// Add appends a new pending task. An invalid priority falls back to medium.
func (r *Registry) Add(ctx context.Context, name string, priority domain.Priority) (domain.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Task{}, ErrInvalidName
	}
	task := domain.NewTask(r.nextID, name, priority, r.now())
	r.nextID++
	r.tasks = append(r.tasks, task)

	err := r.track(ctx, "tasks.add", map[string]any{"task_id": task.ID}, func() error {
		return r.persist(ctx, "add")
	})
	return task, err
}

// All returns a copy of every task in current order.
func (r *Registry) All() []domain.Task {
	return slices.Clone(r.tasks)
}

// Pending returns incomplete tasks in insertion order.
func (r *Registry) Pending() []domain.Task {
	return r.filter(func(t domain.Task) bool { return !t.Completed })
}

// Completed returns completed tasks in insertion order.
func (r *Registry) Completed() []domain.Task {
	return r.filter(func(t domain.Task) bool { return t.Completed })
}

func (r *Registry) filter(keep func(domain.Task) bool) []domain.Task {
	out := []domain.Task{}
	for _, t := range r.tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// Len returns the number of tasks.
func (r *Registry) Len() int { return len(r.tasks) }

// Get returns the task at index.
func (r *Registry) Get(index int) (domain.Task, bool) {
	if !r.inRange(index) {
		return domain.Task{}, false
	}
	return r.tasks[index], true
}

// FindByID returns the task with the given id.
func (r *Registry) FindByID(id int) (domain.Task, bool) {
	for _, t := range r.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Task{}, false
}

// Complete marks the task at index completed. It reports false when index is
// out of range.
func (r *Registry) Complete(ctx context.Context, index int) (bool, error) {
	return r.mutate(ctx, "tasks.complete", index, func(t *domain.Task) {
		t.MarkComplete(r.now())
	})
}

// Uncomplete marks the task at index pending again and clears CompletedAt.
func (r *Registry) Uncomplete(ctx context.Context, index int) (bool, error) {
	return r.mutate(ctx, "tasks.uncomplete", index, func(t *domain.Task) {
		t.MarkIncomplete()
	})
}

// EditName renames the task at index.
func (r *Registry) EditName(ctx context.Context, index int, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, ErrInvalidName
	}
	return r.mutate(ctx, "tasks.edit_name", index, func(t *domain.Task) {
		t.Name = name
	})
}

// SetPriority changes the priority of the task at index. It reports false for
// an out-of-range index or a priority outside high/medium/low.
func (r *Registry) SetPriority(ctx context.Context, index int, priority domain.Priority) (bool, error) {
	if !domain.ValidPriorities[priority] {
		return false, nil
	}
	return r.mutate(ctx, "tasks.set_priority", index, func(t *domain.Task) {
		t.Priority = priority
	})
}

func (r *Registry) mutate(ctx context.Context, name string, index int, fn func(*domain.Task)) (bool, error) {
	if !r.inRange(index) {
		return false, nil
	}
	fn(&r.tasks[index])
	err := r.track(ctx, name, map[string]any{"task_id": r.tasks[index].ID, "position": index}, func() error {
		return r.persist(ctx, strings.TrimPrefix(name, "tasks."))
	})
	return true, err
}

// Delete removes the task at index and returns it. Later positions shift
// down by one.
func (r *Registry) Delete(ctx context.Context, index int) (domain.Task, bool, error) {
	if !r.inRange(index) {
		return domain.Task{}, false, nil
	}
	removed := r.tasks[index]
	r.tasks = slices.Delete(r.tasks, index, index+1)
	err := r.track(ctx, "tasks.delete", map[string]any{"task_id": removed.ID}, func() error {
		return r.persist(ctx, "delete")
	})
	return removed, true, err
}

// IncrementPomodoro adds one to the pomodoro counter of the task with id.
// Unknown ids are ignored.
func (r *Registry) IncrementPomodoro(ctx context.Context, id int) error {
	for i := range r.tasks {
		if r.tasks[i].ID != id {
			continue
		}
		r.tasks[i].PomodorosSpent++
		return r.track(ctx, "tasks.increment_pomodoro", map[string]any{"task_id": id}, func() error {
			return r.persist(ctx, "increment pomodoro")
		})
	}
	return nil
}

// Search returns tasks whose name contains keyword, ignoring case.
func (r *Registry) Search(keyword string) []domain.Task {
	needle := strings.ToLower(keyword)
	return r.filter(func(t domain.Task) bool {
		return strings.Contains(strings.ToLower(t.Name), needle)
	})
}

// SortByPriority reorders tasks: incomplete before completed, then
// high → medium → low. Ties keep their relative order.
func (r *Registry) SortByPriority(ctx context.Context) error {
	slices.SortStableFunc(r.tasks, func(a, b domain.Task) int {
		if a.Completed != b.Completed {
			if a.Completed {
				return 1
			}
			return -1
		}
		return a.Priority.Rank() - b.Priority.Rank()
	})
	return r.track(ctx, "tasks.sort_priority", nil, func() error {
		return r.persist(ctx, "sort by priority")
	})
}

// SortByDate reorders tasks newest first by creation time.
func (r *Registry) SortByDate(ctx context.Context) error {
	slices.SortStableFunc(r.tasks, func(a, b domain.Task) int {
		return b.CreatedAt.Time().Compare(a.CreatedAt.Time())
	})
	return r.track(ctx, "tasks.sort_date", nil, func() error {
		return r.persist(ctx, "sort by date")
	})
}

// ClearCompleted removes every completed task and returns how many were
// removed.
func (r *Registry) ClearCompleted(ctx context.Context) (int, error) {
	before := len(r.tasks)
	r.tasks = slices.DeleteFunc(r.tasks, func(t domain.Task) bool { return t.Completed })
	removed := before - len(r.tasks)
	err := r.track(ctx, "tasks.clear_completed", map[string]any{"removed": removed}, func() error {
		return r.persist(ctx, "clear completed")
	})
	return removed, err
}

// ClearAll removes every task. The id counter keeps counting.
func (r *Registry) ClearAll(ctx context.Context) error {
	r.tasks = []domain.Task{}
	return r.track(ctx, "tasks.clear_all", nil, func() error {
		return r.persist(ctx, "clear all")
	})
}
