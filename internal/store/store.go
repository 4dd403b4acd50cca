package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
)

// Store encodes collections as indented JSON on a Backend.
type Store struct {
	backend Backend
	logger  *slog.Logger
}

func New(backend Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{backend: backend, logger: logger}
}

// Load decodes the named collection into v. It reports false, leaving v
// untouched, when the collection is absent or cannot be read or parsed.
func (s *Store) Load(ctx context.Context, name string, v any) bool {
	data, err := s.backend.Read(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return false
	}
	if err != nil {
		s.logger.WarnContext(ctx, "store_read_failed", "collection", name, "error", err.Error())
		return false
	}
	if err := Decode(data, v); err != nil {
		s.logger.WarnContext(ctx, "store_corrupt_collection", "collection", name, "error", err.Error())
		return false
	}
	return true
}

// Save encodes v and writes it as the named collection.
func (s *Store) Save(ctx context.Context, name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	if err := s.backend.Write(ctx, name, data); err != nil {
		s.logger.WarnContext(ctx, "store_write_failed", "collection", name, "error", err.Error())
		return err
	}
	return nil
}

// Decode unmarshals data into a scratch value first so v is only touched on
// success. v must be a non-nil pointer.
func Decode(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("decode target must be a non-nil pointer, got %T", v)
	}
	scratch := reflect.New(rv.Elem().Type())
	if err := json.Unmarshal(data, scratch.Interface()); err != nil {
		return err
	}
	rv.Elem().Set(scratch.Elem())
	return nil
}

// LoadList returns the records of the named collection in stored order, or
// an empty slice when the collection is absent or corrupt.
func LoadList[T any](ctx context.Context, s *Store, name string) []T {
	var records []T
	if !s.Load(ctx, name, &records) || records == nil {
		return []T{}
	}
	return records
}

// SaveList writes records as the named collection. A nil slice is stored as
// an empty list.
func SaveList[T any](ctx context.Context, s *Store, name string, records []T) error {
	if records == nil {
		records = []T{}
	}
	return s.Save(ctx, name, records)
}

// WriteSnapshot writes v as indented JSON to path, outside any collection.
func WriteSnapshot(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return writeFileReplacing(path, data)
}
