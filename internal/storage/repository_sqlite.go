package storage

import (
	"errors"
	"time"

	"github.com/evrtek/geobeastProdV1-sub000/internal/game"
	"gorm.io/gorm"
)

// ErrNotFound is returned by lookups when no row matches. Callers map it to
// their own not-found semantics.
var ErrNotFound = errors.New("record not found")

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) Transaction(fn func(Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&sqliteRepository{db: tx})
	})
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (r *sqliteRepository) GetUserByID(id uint) (*game.User, error) {
	var u game.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *sqliteRepository) CreateUser(u *game.User) error {
	return r.db.Create(u).Error
}

func (r *sqliteRepository) FindAIUser() (*game.User, error) {
	var u game.User
	if err := r.db.Where("is_ai = ?", true).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *sqliteRepository) GetParentalPermission(userID uint) (*game.ParentalPermission, error) {
	var p game.ParentalPermission
	if err := r.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *sqliteRepository) AreFriends(userID, friendID uint) (bool, error) {
	var count int64
	err := r.db.Model(&game.Friendship{}).
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)", userID, friendID, friendID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *sqliteRepository) GetDeckByID(id uint) (*game.Deck, error) {
	var d game.Deck
	if err := r.db.Preload("Cards").First(&d, id).Error; err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (r *sqliteRepository) GetDeckByOwner(ownerID uint) (*game.Deck, error) {
	var d game.Deck
	if err := r.db.Preload("Cards").Where("owner_id = ?", ownerID).First(&d).Error; err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (r *sqliteRepository) GetCardByID(id uint) (*game.Card, error) {
	var c game.Card
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *sqliteRepository) CreateCard(c *game.Card) error {
	return r.db.Create(c).Error
}

func (r *sqliteRepository) CreateDeck(d *game.Deck) error {
	return r.db.Create(d).Error
}

func (r *sqliteRepository) UpdateCardOwner(cardID, newOwnerID uint) error {
	res := r.db.Model(&game.Card{}).Where("id = ?", cardID).Update("owner_id", newOwnerID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sqliteRepository) CreateBattle(b *game.Battle) error {
	return r.db.Create(b).Error
}

func (r *sqliteRepository) GetBattleByID(id uint) (*game.Battle, error) {
	var b game.Battle
	if err := r.db.First(&b, id).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r *sqliteRepository) UpdateBattle(b *game.Battle) error {
	return r.db.Save(b).Error
}

func (r *sqliteRepository) GetPendingInvitations(userID uint) ([]game.Battle, error) {
	var battles []game.Battle
	err := r.db.
		Where("player2_id = ? AND status = ? AND is_ai_battle = ?", userID, game.StatusPending, false).
		Order("created_at desc").
		Find(&battles).Error
	return battles, err
}

func (r *sqliteRepository) FindStalePending(cutoff time.Time) ([]game.Battle, error) {
	var battles []game.Battle
	err := r.db.
		Where("status = ? AND created_at <= ?", game.StatusPending, cutoff).
		Find(&battles).Error
	return battles, err
}

func (r *sqliteRepository) CreateSession(s *game.BattleSession) error {
	return r.db.Create(s).Error
}

func (r *sqliteRepository) GetSessionByBattleID(battleID uint) (*game.BattleSession, error) {
	var s game.BattleSession
	if err := r.db.Where("battle_id = ?", battleID).First(&s).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *sqliteRepository) UpdateSession(s *game.BattleSession) error {
	return r.db.Save(s).Error
}

func (r *sqliteRepository) CreatePhaseRecord(rec *game.PhaseRecord) error {
	return r.db.Create(rec).Error
}

func (r *sqliteRepository) GetPhaseRecords(battleID uint) ([]game.PhaseRecord, error) {
	var records []game.PhaseRecord
	err := r.db.Where("battle_id = ?", battleID).Order("phase_number asc").Find(&records).Error
	return records, err
}

// GetStatsByUserID returns the stats row for a user, or a zeroed row when
// none exists yet.
func (r *sqliteRepository) GetStatsByUserID(userID uint) (*game.BattleStats, error) {
	var s game.BattleStats
	if err := r.db.Where("user_id = ?", userID).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &game.BattleStats{UserID: userID}, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *sqliteRepository) SaveStats(s *game.BattleStats) error {
	return r.db.Save(s).Error
}

// GetTopPlayers returns the leaderboard ordered by wins (default) or win
// rate, then total battles as tiebreaker.
func (r *sqliteRepository) GetTopPlayers(orderBy string, limit int) ([]game.BattleStats, error) {
	if limit <= 0 {
		limit = 10
	}
	order := "wins DESC"
	if orderBy == "win_rate" {
		order = "win_rate DESC"
	}
	var stats []game.BattleStats
	err := r.db.Model(&game.BattleStats{}).
		Order(order).
		Order("total_battles DESC").
		Limit(limit).
		Find(&stats).Error
	return stats, err
}

func (r *sqliteRepository) CreateNotification(n *game.Notification) error {
	return r.db.Create(n).Error
}

func (r *sqliteRepository) GetNotifications(userID uint) ([]game.Notification, error) {
	var out []game.Notification
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&out).Error
	return out, err
}

func (r *sqliteRepository) MarkNotificationRead(id, userID uint) error {
	res := r.db.Model(&game.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
