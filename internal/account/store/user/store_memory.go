package user

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"smartcommute/internal/account"
	"smartcommute/pkg/platform/sentinel"
)

// Notifier receives the full record set after each successful insert.
// Implementations must not block: Enqueue is called with the directory
// mutex held so that record sets arrive in commit order, and a slow or
// failing writer must never hold up the directory.
type Notifier interface {
	Enqueue(records []account.User)
}

// Error Contract:
// All store methods follow this pattern:
// - Return ErrNotFound (wrapped) when no record matches
// - Return ErrConflict (wrapped) for duplicate ids in seed data
// - Return nil for successful operations
//
// InMemoryUserStore is the user directory. Id assignment uses an explicit
// monotonic counter guarded by the same mutex as the record map, so
// concurrent inserts always observe strictly increasing, globally unique
// ids. Records are immutable once created and are never deleted.
type InMemoryUserStore struct {
	mu       sync.RWMutex
	users    map[int]account.User
	nextID   int
	notifier Notifier
}

// New constructs an empty in-memory user directory. notifier may be nil
// when persistence is not wanted (tests, tooling).
func New(notifier Notifier) *InMemoryUserStore {
	return &InMemoryUserStore{users: make(map[int]account.User), notifier: notifier}
}

// Seed bulk-loads records at startup, typically from the snapshot file.
// The id counter continues from the highest seeded id so reloaded
// directories keep assigning fresh ids.
func (s *InMemoryUserStore) Seed(records []account.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range records {
		if record.ID < 0 {
			return fmt.Errorf("negative user id %d in seed data: %w", record.ID, sentinel.ErrInvalidState)
		}
		if _, exists := s.users[record.ID]; exists {
			return fmt.Errorf("duplicate user id %d in seed data: %w", record.ID, sentinel.ErrConflict)
		}
		s.users[record.ID] = record
		if record.ID >= s.nextID {
			s.nextID = record.ID + 1
		}
	}
	return nil
}

// FindByID returns the record with the given id.
func (s *InMemoryUserStore) FindByID(_ context.Context, id int) (*account.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if record, ok := s.users[id]; ok {
		return &record, nil
	}
	return nil, fmt.Errorf("user %d not found: %w", id, sentinel.ErrNotFound)
}

// FindByCredential returns the record whose username and password both
// match exactly (case-sensitive). Username uniqueness is not enforced on
// insert; to keep duplicates deterministic the scan runs in ascending id
// order, so the oldest matching record wins.
func (s *InMemoryUserStore) FindByCredential(_ context.Context, username, password string) (*account.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("credential must not be empty: %w", sentinel.ErrNotFound)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.sortedIDs() {
		record := s.users[id]
		if record.Username == username && record.Password == password {
			return &record, nil
		}
	}
	return nil, fmt.Errorf("no user matches credential: %w", sentinel.ErrNotFound)
}

// Insert creates a record from the candidate, assigns the next id, and
// hands the full record set to the notifier. The in-memory commit is
// authoritative: the new record is visible to readers even if the
// snapshot write later fails.
//
// The hand-off happens while the mutex is still held. Enqueue never
// blocks, and keeping commit and hand-off in one critical section means
// the notifier sees record sets in commit order; a keep-latest writer
// would otherwise be able to persist a stale set.
func (s *InMemoryUserStore) Insert(_ context.Context, candidate account.UserCandidate) (*account.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record := account.User{
		ID:         s.nextID,
		Username:   candidate.Username,
		Password:   candidate.Password,
		CardNumber: candidate.CardNumber,
	}
	s.users[record.ID] = record
	s.nextID++
	if s.notifier != nil {
		s.notifier.Enqueue(s.snapshotLocked())
	}
	return &record, nil
}

// Snapshot returns a copy of all records ordered by ascending id.
func (s *InMemoryUserStore) Snapshot() []account.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *InMemoryUserStore) snapshotLocked() []account.User {
	records := make([]account.User, 0, len(s.users))
	for _, id := range s.sortedIDs() {
		records = append(records, s.users[id])
	}
	return records
}

func (s *InMemoryUserStore) sortedIDs() []int {
	ids := make([]int, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
