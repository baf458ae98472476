package game

import (
	"time"

	"gorm.io/gorm"
)

// BattleMode selects the stakes of a battle.
type BattleMode string

const (
	ModeFriendly    BattleMode = "friendly"
	ModeCompetitive BattleMode = "competitive"
	ModeUltimate    BattleMode = "ultimate"
)

// ValidMode reports whether m is a known battle mode.
func ValidMode(m BattleMode) bool {
	switch m {
	case ModeFriendly, ModeCompetitive, ModeUltimate:
		return true
	}
	return false
}

// BattleStatus tracks the battle lifecycle:
// pending -> {in_progress, expired}; in_progress -> {completed, abandoned}.
type BattleStatus string

const (
	StatusPending    BattleStatus = "pending"
	StatusInProgress BattleStatus = "in_progress"
	StatusCompleted  BattleStatus = "completed"
	StatusAbandoned  BattleStatus = "abandoned"
	StatusExpired    BattleStatus = "expired"
)

// Side identifies a battle participant slot. Every request resolves the
// caller to a side exactly once; all combat logic is threaded through it.
type Side string

const (
	SidePlayer1 Side = "player1"
	SidePlayer2 Side = "player2"
)

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == SidePlayer1 {
		return SidePlayer2
	}
	return SidePlayer1
}

// User stores player identity. The reserved AI opponent is a regular user
// row flagged IsAI, provisioned once at startup.
type User struct {
	gorm.Model
	Name    string `json:"name"`
	Email   string `json:"email" gorm:"uniqueIndex"`
	IsChild bool   `json:"is_child"`
	IsAI    bool   `json:"-" gorm:"index"`
}

func (User) TableName() string { return "players" }

// ParentalPermission gates restricted accounts out of staked battle modes.
// Absence of a row means nothing is allowed for a child account.
type ParentalPermission struct {
	gorm.Model
	UserID           uint `json:"user_id" gorm:"uniqueIndex"`
	AllowCompetitive bool `json:"allow_competitive"`
	AllowUltimate    bool `json:"allow_ultimate"`
}

// Card is a collection card. Listed and InTrade are maintained by the
// marketplace and trading subsystems; battles only read them.
type Card struct {
	gorm.Model
	OwnerID uint     `json:"owner_id" gorm:"index"`
	Name    string   `json:"name"`
	Type    CardType `json:"type"`
	Speed   int      `json:"speed"`
	Attack  int      `json:"attack"`
	Defense int      `json:"defense"`
	Listed  bool     `json:"listed"`
	InTrade bool     `json:"in_trade"`
}

// Deck is a named set of cards. Battle decks must hold exactly DeckSize.
type Deck struct {
	gorm.Model
	OwnerID uint   `json:"owner_id" gorm:"index"`
	Name    string `json:"name"`
	Cards   []Card `json:"cards" gorm:"many2many:deck_cards;"`
}

// DeckSize is the required number of cards in a battle deck.
const DeckSize = 5

// Friendship is a directed friend edge maintained by the social subsystem.
type Friendship struct {
	gorm.Model
	UserID   uint `gorm:"index:idx_friend_pair,unique"`
	FriendID uint `gorm:"index:idx_friend_pair,unique"`
}

// Battle is the durable battle record. Player2DeckID stays nil until the
// invitation is accepted (AI battles set it at creation).
type Battle struct {
	gorm.Model
	Player1ID     uint         `json:"player1_id" gorm:"index"`
	Player2ID     uint         `json:"player2_id" gorm:"index"`
	Player1DeckID uint         `json:"player1_deck_id"`
	Player2DeckID *uint        `json:"player2_deck_id"`
	Mode          BattleMode   `json:"mode"`
	IsAIBattle    bool         `json:"is_ai_battle"`
	Status        BattleStatus `json:"status" gorm:"index"`
	WinnerID      *uint        `json:"winner_id"`
	CompletedAt   *time.Time   `json:"completed_at"`
}

// ParticipantSide resolves a user to their battle side, or false when the
// user is not a participant.
func (b *Battle) ParticipantSide(userID uint) (Side, bool) {
	switch userID {
	case b.Player1ID:
		return SidePlayer1, true
	case b.Player2ID:
		return SidePlayer2, true
	}
	return "", false
}

// BattleStats is the per-player aggregate row updated at completion.
type BattleStats struct {
	gorm.Model
	UserID            uint    `json:"user_id" gorm:"uniqueIndex"`
	TotalBattles      int     `json:"total_battles"`
	Wins              int     `json:"wins"`
	Losses            int     `json:"losses"`
	FriendlyPlayed    int     `json:"friendly_played"`
	CompetitivePlayed int     `json:"competitive_played"`
	UltimatePlayed    int     `json:"ultimate_played"`
	WinRate           float64 `json:"win_rate"`
}

// Notification is an in-app message for a player (invitation created,
// responded, battle finished).
type Notification struct {
	gorm.Model
	UserID   uint   `json:"user_id" gorm:"index"`
	BattleID uint   `json:"battle_id"`
	Kind     string `json:"kind"`
	Message  string `json:"message"`
	Read     bool   `json:"read"`
}
