package ledger

import (
	"errors"
	"sync"
)

var errExists = errors.New("account already exists")

// Store owns account state. Update runs fn on a private copy while holding
// the account's lock and commits only when fn returns nil, so a failed
// operation leaves nothing behind and no reader sees a half-applied change.
type Store interface {
	Create(acct Account) error
	Get(userID string) (Account, error)
	Update(userID string, fn func(*Account) error) (Account, error)
	Exists(userID string) bool
	Len() int
}

type slot struct {
	mu   sync.Mutex
	acct Account
}

// MemoryStore keeps accounts for the life of the process.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]*slot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accounts: make(map[string]*slot)}
}

func (s *MemoryStore) Create(acct Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[acct.UserID]; ok {
		return errExists
	}
	s.accounts[acct.UserID] = &slot{acct: acct.Clone()}
	return nil
}

func (s *MemoryStore) lookup(userID string) (*slot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sl, ok := s.accounts[userID]
	return sl, ok
}

func (s *MemoryStore) Get(userID string) (Account, error) {
	sl, ok := s.lookup(userID)
	if !ok {
		return Account{}, ErrNotFound
	}
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return sl.acct.Clone(), nil
}

func (s *MemoryStore) Update(userID string, fn func(*Account) error) (Account, error) {
	sl, ok := s.lookup(userID)
	if !ok {
		return Account{}, ErrNotFound
	}
	sl.mu.Lock()
	defer sl.mu.Unlock()

	work := sl.acct.Clone()
	if err := fn(&work); err != nil {
		return Account{}, err
	}
	sl.acct = work
	return work.Clone(), nil
}

func (s *MemoryStore) Exists(userID string) bool {
	_, ok := s.lookup(userID)
	return ok
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}
