package annotstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/quillpdf/quill/pkg/annotation"
)

// Memory is an in-process Store backed by maps. Collections round-trip
// through the JSON codec on every access so that it exercises the same
// serialization path as the persistent store.
type Memory struct {
	annotations map[string][]byte
	notes       map[string][]annotation.Note
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		annotations: make(map[string][]byte),
		notes:       make(map[string][]annotation.Note),
	}
}

// Save replaces the whole annotation collection of a document.
func (s *Memory) Save(ctx context.Context, documentKey string, annotations []annotation.Annotation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	blob, err := annotation.MarshalAnnotations(annotations)
	if err != nil {
		return fmt.Errorf("failed to encode annotations for %q: %w", documentKey, err)
	}
	s.annotations[documentKey] = blob
	return nil
}

// Get returns the annotation collection of a document, empty for unknown
// keys.
func (s *Memory) Get(ctx context.Context, documentKey string) ([]annotation.Annotation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	blob, ok := s.annotations[documentKey]
	if !ok {
		return nil, nil
	}
	return annotation.UnmarshalAnnotations(blob)
}

// Add appends one annotation to a document's collection.
func (s *Memory) Add(ctx context.Context, documentKey string, a annotation.Annotation) error {
	annotations, err := s.Get(ctx, documentKey)
	if err != nil {
		return err
	}
	return s.Save(ctx, documentKey, append(annotations, a))
}

// Update applies mutate to the annotation with the given id.
func (s *Memory) Update(ctx context.Context, documentKey, id string, mutate func(annotation.Annotation)) error {
	annotations, err := s.Get(ctx, documentKey)
	if err != nil {
		return err
	}

	for _, a := range annotations {
		if a.Base().ID == id {
			mutate(a)
			return s.Save(ctx, documentKey, annotations)
		}
	}
	return nil
}

// Delete removes the annotation with the given id.
func (s *Memory) Delete(ctx context.Context, documentKey, id string) error {
	annotations, err := s.Get(ctx, documentKey)
	if err != nil {
		return err
	}

	filtered := annotations[:0]
	for _, a := range annotations {
		if a.Base().ID != id {
			filtered = append(filtered, a)
		}
	}
	if len(filtered) == len(annotations) {
		return nil
	}
	return s.Save(ctx, documentKey, filtered)
}

// Documents returns every document key with a stored collection, sorted.
func (s *Memory) Documents(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(s.annotations))
	for key := range s.annotations {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// SaveNote inserts a legacy note, replacing an existing note with the same
// key.
func (s *Memory) SaveNote(ctx context.Context, note annotation.Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	notes := s.notes[note.BookKey]
	for i := range notes {
		if notes[i].Key == note.Key {
			notes[i] = note
			return nil
		}
	}
	s.notes[note.BookKey] = append(notes, note)
	return nil
}

// Notes returns the legacy notes of a document. The returned slice is a
// copy; mutating it does not touch the stored notes.
func (s *Memory) Notes(ctx context.Context, documentKey string) ([]annotation.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]annotation.Note(nil), s.notes[documentKey]...), nil
}

// NotesByPage returns the legacy notes of one page.
func (s *Memory) NotesByPage(ctx context.Context, documentKey string, page int) ([]annotation.Note, error) {
	notes, err := s.Notes(ctx, documentKey)
	if err != nil {
		return nil, err
	}

	var filtered []annotation.Note
	for _, n := range notes {
		if n.Page == page {
			filtered = append(filtered, n)
		}
	}
	return filtered, nil
}

// UpdateNote applies mutate to the note with the given key.
func (s *Memory) UpdateNote(ctx context.Context, documentKey, noteKey string, mutate func(*annotation.Note)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	notes := s.notes[documentKey]
	for i := range notes {
		if notes[i].Key == noteKey {
			mutate(&notes[i])
			return nil
		}
	}
	return nil
}

// DeleteNote removes the note with the given key.
func (s *Memory) DeleteNote(ctx context.Context, documentKey, noteKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	notes := s.notes[documentKey]
	filtered := notes[:0]
	for _, n := range notes {
		if n.Key != noteKey {
			filtered = append(filtered, n)
		}
	}
	s.notes[documentKey] = filtered
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Memory) Close() error {
	return nil
}

var _ Store = (*Memory)(nil)
