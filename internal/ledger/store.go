// Package ledger is the per-user record store for expenses and incomes.
package ledger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"spendwise/internal/models"
	"spendwise/internal/storage"

	"github.com/google/uuid"
)

// Draft holds the caller-supplied fields of a new record.
type Draft struct {
	Description string
	Amount      float64
	Category    string
}

// Patch lists the fields to overwrite on edit. Nil fields are kept.
type Patch struct {
	Description *string
	Amount      *float64
	Category    *string
	Date        *time.Time
}

// Store holds the expense and income collections of the session's user.
// Every mutation persists the full collection before returning.
type Store struct {
	kv      storage.KV
	session models.Session
	now     func() time.Time
	newID   func() (string, error)
	log     *slog.Logger

	records map[models.Kind][]models.Record
	closed  bool
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used to stamp new records.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the default UUIDv7 generator.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(s *Store) { s.newID = gen }
}

// WithLogger sets the store logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.log = logger }
}

// ErrClosed is returned by a Store used after Close.
var ErrClosed = errors.New("record store is closed")

// Open loads the session user's collections from kv.
func Open(kv storage.KV, session models.Session, opts ...Option) (*Store, error) {
	if session.OwnerID() == "" {
		return nil, models.ErrSignedOut
	}
	s := &Store{
		kv:      kv,
		session: session,
		now:     time.Now,
		newID:   newUUID,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		records: make(map[models.Kind][]models.Record, 2),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "ledger", "owner_id", session.OwnerID())

	for _, kind := range []models.Kind{models.KindExpense, models.KindIncome} {
		var recs []models.Record
		if _, err := storage.LoadJSON(kv, storage.RecordsKey(kind, session.OwnerID()), &recs); err != nil {
			return nil, fmt.Errorf("load %s records: %w", kind, err)
		}
		s.records[kind] = recs
	}
	return s, nil
}

// Owner returns the user the store is scoped to.
func (s *Store) Owner() models.User {
	return s.session.User
}

// Close drops the in-memory collections. The store is unusable afterwards.
func (s *Store) Close() {
	s.records = nil
	s.closed = true
}

// Add validates d and appends a new record of kind stamped with a fresh id,
// the current time and the session owner.
func (s *Store) Add(kind models.Kind, d Draft) (models.Record, error) {
	if err := s.check(kind); err != nil {
		return models.Record{}, err
	}
	rec := models.Record{
		Description: strings.TrimSpace(d.Description),
		Amount:      d.Amount,
		Category:    d.Category,
		Date:        s.now(),
		OwnerID:     s.session.OwnerID(),
	}
	if err := rec.Validate(kind); err != nil {
		return models.Record{}, err
	}

	current := s.records[kind]
	id, err := s.uniqueID(current)
	if err != nil {
		return models.Record{}, err
	}
	rec.ID = id

	if err := s.commit(kind, append(slices.Clip(current), rec)); err != nil {
		return models.Record{}, err
	}
	s.log.Debug("record added", "kind", kind, "id", rec.ID, "category", rec.Category)
	return rec, nil
}

// Get returns the record of kind with id.
func (s *Store) Get(kind models.Kind, id string) (models.Record, error) {
	if err := s.check(kind); err != nil {
		return models.Record{}, err
	}
	i := indexOf(s.records[kind], id)
	if i < 0 {
		return models.Record{}, notFound(kind, id)
	}
	return s.records[kind][i], nil
}

// Delete removes the record of kind with id. An unknown id is a no-op.
func (s *Store) Delete(kind models.Kind, id string) error {
	if err := s.check(kind); err != nil {
		return err
	}
	current := s.records[kind]
	i := indexOf(current, id)
	if i < 0 {
		return nil
	}

	next := slices.Delete(slices.Clone(current), i, i+1)
	if err := s.commit(kind, next); err != nil {
		return err
	}
	s.log.Debug("record deleted", "kind", kind, "id", id)
	return nil
}

// Edit merges p into the record of kind with id. The id and owner never
// change; the merged record must still be valid.
func (s *Store) Edit(kind models.Kind, id string, p Patch) (models.Record, error) {
	if err := s.check(kind); err != nil {
		return models.Record{}, err
	}
	current := s.records[kind]
	i := indexOf(current, id)
	if i < 0 {
		return models.Record{}, notFound(kind, id)
	}

	rec := current[i]
	if p.Description != nil {
		rec.Description = strings.TrimSpace(*p.Description)
	}
	if p.Amount != nil {
		rec.Amount = *p.Amount
	}
	if p.Category != nil {
		rec.Category = *p.Category
	}
	if p.Date != nil {
		if p.Date.IsZero() {
			return models.Record{}, &models.ValidationError{Field: "date", Reason: "must be set"}
		}
		rec.Date = *p.Date
	}
	if err := rec.Validate(kind); err != nil {
		return models.Record{}, err
	}

	next := slices.Clone(current)
	next[i] = rec
	if err := s.commit(kind, next); err != nil {
		return models.Record{}, err
	}
	s.log.Debug("record edited", "kind", kind, "id", id)
	return rec, nil
}

// List returns all records of kind in insertion order. The slice is a copy.
func (s *Store) List(kind models.Kind) ([]models.Record, error) {
	if err := s.check(kind); err != nil {
		return nil, err
	}
	return slices.Clone(s.records[kind]), nil
}

// commit persists next and only then makes it the in-memory collection.
func (s *Store) commit(kind models.Kind, next []models.Record) error {
	if next == nil {
		next = []models.Record{}
	}
	key := storage.RecordsKey(kind, s.session.OwnerID())
	if err := storage.SaveJSON(s.kv, key, next); err != nil {
		s.log.Error("persist failed", "kind", kind, "error", err)
		return fmt.Errorf("save %s records: %w", kind, err)
	}
	s.records[kind] = next
	return nil
}

func (s *Store) check(kind models.Kind) error {
	if s.closed {
		return ErrClosed
	}
	if kind != models.KindExpense && kind != models.KindIncome {
		return &models.ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown kind %q", kind)}
	}
	return nil
}

const maxIDAttempts = 8

func (s *Store) uniqueID(existing []models.Record) (string, error) {
	for range maxIDAttempts {
		id, err := s.newID()
		if err != nil {
			return "", fmt.Errorf("generate record id: %w", err)
		}
		if indexOf(existing, id) < 0 {
			return id, nil
		}
	}
	return "", errors.New("generate record id: no unique id after retries")
}

// Purge removes every stored record owned by ownerID. Account deletion does
// not call it on its own.
func Purge(kv storage.KV, ownerID string) error {
	for _, kind := range []models.Kind{models.KindExpense, models.KindIncome} {
		if err := kv.Delete(storage.RecordsKey(kind, ownerID)); err != nil {
			return fmt.Errorf("purge %s records: %w", kind, err)
		}
	}
	return nil
}

func indexOf(recs []models.Record, id string) int {
	return slices.IndexFunc(recs, func(r models.Record) bool { return r.ID == id })
}

func notFound(kind models.Kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, models.ErrNotFound)
}

func newUUID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
