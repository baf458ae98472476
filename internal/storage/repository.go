package storage

import (
	"time"

	"github.com/evrtek/geobeastProdV1-sub000/internal/game"
)

type Repository interface {
	// Transaction runs fn against a repository bound to a single database
	// transaction. Completion, statistics and reward transfer use this so
	// partial failures roll back as one unit.
	Transaction(fn func(Repository) error) error

	// Users and permissions
	GetUserByID(id uint) (*game.User, error)
	CreateUser(u *game.User) error
	FindAIUser() (*game.User, error)
	GetParentalPermission(userID uint) (*game.ParentalPermission, error)
	AreFriends(userID, friendID uint) (bool, error)

	// Cards and decks
	GetDeckByID(id uint) (*game.Deck, error)
	GetDeckByOwner(ownerID uint) (*game.Deck, error)
	GetCardByID(id uint) (*game.Card, error)
	CreateCard(c *game.Card) error
	CreateDeck(d *game.Deck) error
	UpdateCardOwner(cardID, newOwnerID uint) error

	// Battles
	CreateBattle(b *game.Battle) error
	GetBattleByID(id uint) (*game.Battle, error)
	UpdateBattle(b *game.Battle) error
	// GetPendingInvitations returns pending battles addressed to the user.
	// Callers must still re-filter by elapsed time; the sweep is not the
	// only guard against stale invitations.
	GetPendingInvitations(userID uint) ([]game.Battle, error)
	// FindStalePending returns pending battles created at or before the
	// cutoff, for the expiry sweep.
	FindStalePending(cutoff time.Time) ([]game.Battle, error)

	// Sessions
	CreateSession(s *game.BattleSession) error
	GetSessionByBattleID(battleID uint) (*game.BattleSession, error)
	UpdateSession(s *game.BattleSession) error

	// Phase history
	CreatePhaseRecord(r *game.PhaseRecord) error
	GetPhaseRecords(battleID uint) ([]game.PhaseRecord, error)

	// Statistics and leaderboard
	GetStatsByUserID(userID uint) (*game.BattleStats, error)
	SaveStats(s *game.BattleStats) error
	GetTopPlayers(orderBy string, limit int) ([]game.BattleStats, error)

	// Notifications
	CreateNotification(n *game.Notification) error
	GetNotifications(userID uint) ([]game.Notification, error)
	MarkNotificationRead(id, userID uint) error
}
