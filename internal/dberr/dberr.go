// Package dberr defines the error kinds raised by the catalog persistence
// layer and the single error type the database facade returns.
//
// Gateways wrap one of the sentinel kinds with fmt.Errorf("...: %w"). The
// facade then wraps every failure with Wrap, so callers always receive an
// *Error carrying the operation name, the kind and the underlying cause:
//
//	err := db.UpdateAuthor(author)
//	if errors.Is(err, dberr.ErrMissingKey) { ... }
//
//	var dbErr *dberr.Error
//	if errors.As(err, &dbErr) { log.Println(dbErr.Op, dbErr.Kind) }
package dberr

import (
	"errors"
	"fmt"
)

var (
	// ErrUnresolvedReference: a title or author names a list (or a title
	// names an author) that does not exist at write time.
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrMissingKey: update or delete of an entity without a primary key.
	ErrMissingKey = errors.New("missing primary key")

	// ErrInternalConsistency: a row expected to exist is absent at read time.
	ErrInternalConsistency = errors.New("internal consistency violation")

	// ErrNotFound: no row for the requested key or name.
	ErrNotFound = errors.New("not found")

	// ErrClosed: the database facade was closed.
	ErrClosed = errors.New("database closed")

	// ErrStorage: any other failure of the underlying store.
	ErrStorage = errors.New("storage failure")
)

var kinds = []error{
	ErrUnresolvedReference,
	ErrMissingKey,
	ErrInternalConsistency,
	ErrNotFound,
	ErrClosed,
}

// Error is the uniform error returned at the facade boundary.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil || e.Err == e.Kind {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	if e.Kind == ErrStorage {
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the error's kind so storage failures, whose cause does not wrap
// ErrStorage, still satisfy errors.Is(err, ErrStorage).
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

// Wrap attaches the operation name and classifies err. Nil stays nil and an
// existing *Error is returned unchanged.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		return err
	}
	return &Error{Op: op, Kind: KindOf(err), Err: err}
}

// KindOf returns the sentinel kind err wraps, or ErrStorage for anything
// unclassified.
func KindOf(err error) error {
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return ErrStorage
}

// Missing builds a MissingKey error for an entity description.
func Missing(entity string) error {
	return fmt.Errorf("%s has no key: %w", entity, ErrMissingKey)
}

// NotFound builds a NotFound error for an entity and key.
func NotFound(entity string, key any) error {
	return fmt.Errorf("%s %v: %w", entity, key, ErrNotFound)
}
