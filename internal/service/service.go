package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/evrtek/geobeastProdV1-sub000/internal/game"
	"github.com/evrtek/geobeastProdV1-sub000/internal/notify"
	"github.com/evrtek/geobeastProdV1-sub000/internal/realtime"
	"github.com/evrtek/geobeastProdV1-sub000/internal/session"
	"github.com/evrtek/geobeastProdV1-sub000/internal/storage"
)

var (
	// ErrBattleNotFound covers both an absent battle and a caller who is
	// not a participant, so existence never leaks to outsiders.
	ErrBattleNotFound = errors.New("battle not found")
	ErrDeckNotFound   = errors.New("deck not found")
	ErrUserNotFound   = errors.New("user not found")
	// ErrNotInvitationRecipient means a participant other than the invited
	// player tried to respond.
	ErrNotInvitationRecipient = errors.New("only the invited player may respond")
	ErrBattleNotInProgress    = errors.New("battle is not in progress")
	ErrCardNotInDeck          = errors.New("card is not part of the battle deck")
)

// ValidationError carries an itemized deck validation failure through an
// error return without losing the issue list.
type ValidationError struct {
	Result ValidationResult
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("deck validation failed: %s", e.Result.Message)
}

// BattleService owns the battle lifecycle: invitations, phase resolution,
// completion and rewards.
type BattleService struct {
	repo          storage.Repository
	sessions      *session.Store
	notifier      *notify.Notifier
	hub           *realtime.Hub
	invitationTTL time.Duration
}

func NewBattleService(repo storage.Repository, sessions *session.Store, notifier *notify.Notifier, hub *realtime.Hub, invitationTTL time.Duration) *BattleService {
	return &BattleService{
		repo:          repo,
		sessions:      sessions,
		notifier:      notifier,
		hub:           hub,
		invitationTTL: invitationTTL,
	}
}

// broadcast pushes a realtime event when a hub is attached; delivery is
// fire and forget.
func (s *BattleService) broadcast(battleID uint, eventType string, payload interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(realtime.Event{BattleID: battleID, Type: eventType, Payload: payload})
}

// notifyUser sends a best-effort in-app notification and email.
func (s *BattleService) notifyUser(userID, battleID uint, kind, message string) {
	if s.notifier == nil {
		return
	}
	user, err := s.repo.GetUserByID(userID)
	if err != nil || user.IsAI {
		return
	}
	s.notifier.Notify(user, battleID, kind, message)
}

// loadParticipantBattle resolves the battle and the caller's side in one
// step. Non-participants get the same answer as a missing battle.
func (s *BattleService) loadParticipantBattle(battleID, userID uint) (*game.Battle, game.Side, error) {
	battle, err := s.repo.GetBattleByID(battleID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", ErrBattleNotFound
		}
		return nil, "", err
	}
	side, ok := battle.ParticipantSide(userID)
	if !ok {
		return nil, "", ErrBattleNotFound
	}
	return battle, side, nil
}

// reloadInProgress re-reads the battle while the caller holds its per-battle
// lock. The pre-lock status check only filters; this locked re-read is the
// real guard, so a completion that slipped in while waiting on the lock is
// never applied twice.
func (s *BattleService) reloadInProgress(battleID uint) (*game.Battle, error) {
	battle, err := s.repo.GetBattleByID(battleID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrBattleNotFound
		}
		return nil, err
	}
	if battle.Status != game.StatusInProgress {
		return nil, ErrBattleNotInProgress
	}
	return battle, nil
}
