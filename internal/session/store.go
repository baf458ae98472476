package session

import (
	"sync"

	"github.com/evrtek/geobeastProdV1-sub000/internal/game"
	"github.com/evrtek/geobeastProdV1-sub000/internal/storage"
)

// Store serializes access to per-battle session state. Card selection and
// attack execution are read-modify-write cycles over the whole session row;
// the store guarantees at most one writer at a time per battle id so racing
// participants cannot lose updates. Different battles never contend.
type Store struct {
	repo storage.Repository

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewStore(repo storage.Repository) *Store {
	return &Store{repo: repo, locks: make(map[uint]*sync.Mutex)}
}

// lockFor returns the mutex owning the given battle id. Locks are kept for
// the lifetime of the process, mirroring the sessions themselves, which are
// not garbage-collected after completion.
func (s *Store) lockFor(battleID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[battleID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[battleID] = l
	}
	return l
}

// Create seeds and persists a fresh session for a battle that just became
// in_progress: scores 0/0, phase 1, no in-flight phase state.
func (s *Store) Create(battle *game.Battle, player2DeckID uint) (*game.BattleSession, error) {
	sess := &game.BattleSession{
		BattleID:      battle.ID,
		Player1ID:     battle.Player1ID,
		Player2ID:     battle.Player2ID,
		Player1DeckID: battle.Player1DeckID,
		Player2DeckID: player2DeckID,
		CurrentPhase:  1,
	}
	if err := s.repo.CreateSession(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// WithLock loads the battle's session and runs fn while holding that
// battle's lock. When fn returns nil the mutated session is re-persisted as
// a unit before the lock is released.
func (s *Store) WithLock(battleID uint, fn func(*game.BattleSession) error) error {
	l := s.lockFor(battleID)
	l.Lock()
	defer l.Unlock()

	sess, err := s.repo.GetSessionByBattleID(battleID)
	if err != nil {
		return err
	}
	if err := fn(sess); err != nil {
		return err
	}
	return s.repo.UpdateSession(sess)
}

// Get returns the session without taking the lock, for idempotent reads.
func (s *Store) Get(battleID uint) (*game.BattleSession, error) {
	return s.repo.GetSessionByBattleID(battleID)
}
