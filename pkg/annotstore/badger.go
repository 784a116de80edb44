package annotstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/quillpdf/quill/pkg/annotation"
)

// Config configures the BadgerDB-backed store.
type Config struct {
	// Dir is the directory to store data in.
	Dir string

	// InMemory uses in-memory storage (useful for testing).
	InMemory bool

	// SyncWrites enables synchronous writes for durability.
	SyncWrites bool

	// KeyPrefix is added to all keys.
	KeyPrefix string

	// Logger is the BadgerDB logger (nil silences it).
	Logger badger.Logger
}

// Option configures the BadgerDB-backed store.
type Option func(*Config)

// WithDir sets the data directory.
func WithDir(dir string) Option {
	return func(c *Config) {
		c.Dir = dir
	}
}

// WithInMemory enables in-memory storage.
func WithInMemory() Option {
	return func(c *Config) {
		c.InMemory = true
	}
}

// WithSyncWrites enables synchronous writes.
func WithSyncWrites() Option {
	return func(c *Config) {
		c.SyncWrites = true
	}
}

// WithKeyPrefix sets the key prefix.
func WithKeyPrefix(prefix string) Option {
	return func(c *Config) {
		c.KeyPrefix = prefix
	}
}

// Badger is a BadgerDB-backed Store. Each document's annotations and notes
// are stored as one JSON blob each under "annotations:<key>" and
// "notes:<key>".
type Badger struct {
	db        *badger.DB
	keyPrefix string
}

// NewBadger opens a BadgerDB-backed store with the given configuration.
func NewBadger(cfg Config, opts ...Option) (*Badger, error) {
	for _, opt := range opts {
		opt(&cfg)
	}

	badgerOpts := badger.DefaultOptions(cfg.Dir)
	if cfg.InMemory {
		badgerOpts = badgerOpts.WithInMemory(true)
	}
	badgerOpts = badgerOpts.WithSyncWrites(cfg.SyncWrites)
	badgerOpts = badgerOpts.WithLogger(cfg.Logger)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open annotation store: %w", err)
	}

	return &Badger{db: db, keyPrefix: cfg.KeyPrefix}, nil
}

// NewBadgerFromDB wraps an existing BadgerDB database. The caller manages
// the database lifecycle.
func NewBadgerFromDB(db *badger.DB, keyPrefix string) *Badger {
	return &Badger{db: db, keyPrefix: keyPrefix}
}

func (s *Badger) annotationsKey(documentKey string) []byte {
	return []byte(s.keyPrefix + "annotations:" + documentKey)
}

func (s *Badger) notesKey(documentKey string) []byte {
	return []byte(s.keyPrefix + "notes:" + documentKey)
}

// readBlob loads a raw collection blob. Missing keys yield nil with no
// error.
func (s *Badger) readBlob(key []byte) ([]byte, error) {
	var blob []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		blob, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return blob, nil
}

func (s *Badger) writeBlob(key, blob []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, blob)
	})
}

// Save replaces the whole annotation collection of a document.
func (s *Badger) Save(ctx context.Context, documentKey string, annotations []annotation.Annotation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	blob, err := annotation.MarshalAnnotations(annotations)
	if err != nil {
		return fmt.Errorf("failed to encode annotations for %q: %w", documentKey, err)
	}
	return s.writeBlob(s.annotationsKey(documentKey), blob)
}

// Get returns the annotation collection of a document, empty for unknown
// keys.
func (s *Badger) Get(ctx context.Context, documentKey string) ([]annotation.Annotation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	blob, err := s.readBlob(s.annotationsKey(documentKey))
	if err != nil {
		return nil, err
	}
	if blob == nil {
		return nil, nil
	}

	annotations, err := annotation.UnmarshalAnnotations(blob)
	if err != nil {
		return nil, fmt.Errorf("failed to decode annotations for %q: %w", documentKey, err)
	}
	return annotations, nil
}

// Add appends one annotation to a document's collection.
func (s *Badger) Add(ctx context.Context, documentKey string, a annotation.Annotation) error {
	annotations, err := s.Get(ctx, documentKey)
	if err != nil {
		return err
	}
	return s.Save(ctx, documentKey, append(annotations, a))
}

// Update applies mutate to the annotation with the given id; a missing id
// is a no-op.
func (s *Badger) Update(ctx context.Context, documentKey, id string, mutate func(annotation.Annotation)) error {
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
func (s *Badger) Delete(ctx context.Context, documentKey, id string) error {
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

// Documents scans the annotation key range and returns every stored
// document key.
func (s *Badger) Documents(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := []byte(s.keyPrefix + "annotations:")
	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := it.Item().Key()
			keys = append(keys, string(key[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (s *Badger) readNotes(ctx context.Context, documentKey string) ([]annotation.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	blob, err := s.readBlob(s.notesKey(documentKey))
	if err != nil {
		return nil, err
	}
	if blob == nil {
		return nil, nil
	}

	var notes []annotation.Note
	if err := json.Unmarshal(blob, &notes); err != nil {
		return nil, fmt.Errorf("failed to decode notes for %q: %w", documentKey, err)
	}
	return notes, nil
}

func (s *Badger) writeNotes(documentKey string, notes []annotation.Note) error {
	blob, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("failed to encode notes for %q: %w", documentKey, err)
	}
	return s.writeBlob(s.notesKey(documentKey), blob)
}

// SaveNote inserts a legacy note, replacing an existing note with the same
// key.
func (s *Badger) SaveNote(ctx context.Context, note annotation.Note) error {
	notes, err := s.readNotes(ctx, note.BookKey)
	if err != nil {
		return err
	}

	replaced := false
	for i := range notes {
		if notes[i].Key == note.Key {
			notes[i] = note
			replaced = true
			break
		}
	}
	if !replaced {
		notes = append(notes, note)
	}
	return s.writeNotes(note.BookKey, notes)
}

// Notes returns the legacy notes of a document.
func (s *Badger) Notes(ctx context.Context, documentKey string) ([]annotation.Note, error) {
	return s.readNotes(ctx, documentKey)
}

// NotesByPage returns the legacy notes of one page.
func (s *Badger) NotesByPage(ctx context.Context, documentKey string, page int) ([]annotation.Note, error) {
	notes, err := s.readNotes(ctx, documentKey)
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
func (s *Badger) UpdateNote(ctx context.Context, documentKey, noteKey string, mutate func(*annotation.Note)) error {
	notes, err := s.readNotes(ctx, documentKey)
	if err != nil {
		return err
	}

	for i := range notes {
		if notes[i].Key == noteKey {
			mutate(&notes[i])
			return s.writeNotes(documentKey, notes)
		}
	}
	return nil
}

// DeleteNote removes the note with the given key.
func (s *Badger) DeleteNote(ctx context.Context, documentKey, noteKey string) error {
	notes, err := s.readNotes(ctx, documentKey)
	if err != nil {
		return err
	}

	filtered := notes[:0]
	for _, n := range notes {
		if n.Key != noteKey {
			filtered = append(filtered, n)
		}
	}
	if len(filtered) == len(notes) {
		return nil
	}
	return s.writeNotes(documentKey, filtered)
}

// Close closes the database.
func (s *Badger) Close() error {
	return s.db.Close()
}

// DB returns the underlying BadgerDB database.
func (s *Badger) DB() *badger.DB {
	return s.db
}

var _ Store = (*Badger)(nil)
