// Package annotstore persists annotation collections and legacy notes keyed
// by document identity.
//
// The store works at whole-collection granularity: each document's
// annotations are one serialized blob, and Add, Update and Delete are
// read-modify-write cycles over that blob. There is no row-level atomicity;
// concurrent writers for the same key can lose updates. The viewer is the
// single writer, so no locking is layered on top.
//
// Two implementations are provided:
//
// - Badger: embedded BadgerDB-backed persistence for the desktop reader
// - Memory: an in-process map, used by tests and as a volatile fallback
//
// Reading an unknown document key returns an empty collection, never an
// error.
package annotstore

import (
	"context"

	"github.com/quillpdf/quill/pkg/annotation"
)

// Store is the persistence contract for annotations and legacy notes.
type Store interface {
	// Save replaces the whole annotation collection of a document.
	Save(ctx context.Context, documentKey string, annotations []annotation.Annotation) error

	// Get returns the annotation collection of a document. Unknown keys
	// yield an empty collection and a nil error.
	Get(ctx context.Context, documentKey string) ([]annotation.Annotation, error)

	// Add appends one annotation to a document's collection.
	Add(ctx context.Context, documentKey string, a annotation.Annotation) error

	// Update applies mutate to the annotation with the given id. A missing
	// id is a no-op. Note text edits are the only supported in-place
	// mutation in the reader.
	Update(ctx context.Context, documentKey, id string, mutate func(annotation.Annotation)) error

	// Delete removes the annotation with the given id. A missing id is a
	// no-op.
	Delete(ctx context.Context, documentKey, id string) error

	// Documents returns the keys of every document with a stored
	// annotation collection.
	Documents(ctx context.Context) ([]string, error)

	// SaveNote inserts a legacy note, or replaces it when a note with the
	// same key already exists for the document.
	SaveNote(ctx context.Context, note annotation.Note) error

	// Notes returns the legacy notes of a document.
	Notes(ctx context.Context, documentKey string) ([]annotation.Note, error)

	// NotesByPage returns the legacy notes of one page of a document.
	NotesByPage(ctx context.Context, documentKey string, page int) ([]annotation.Note, error)

	// UpdateNote applies mutate to the note with the given key. A missing
	// key is a no-op.
	UpdateNote(ctx context.Context, documentKey, noteKey string, mutate func(*annotation.Note)) error

	// DeleteNote removes the note with the given key.
	DeleteNote(ctx context.Context, documentKey, noteKey string) error

	// Close releases the backing resources.
	Close() error
}
