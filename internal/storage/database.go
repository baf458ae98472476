package storage

import (
	"github.com/evrtek/geobeastProdV1-sub000/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the SQLite database and keeps the schema updated via
// AutoMigrate.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	err = db.AutoMigrate(
		&game.User{},
		&game.ParentalPermission{},
		&game.Card{},
		&game.Deck{},
		&game.Friendship{},
		&game.Battle{},
		&game.BattleSession{},
		&game.PhaseRecord{},
		&game.BattleStats{},
		&game.Notification{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
