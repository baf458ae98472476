package service

import (
	"fmt"

	"github.com/evrtek/geobeastProdV1-sub000/internal/dedupe"
	"github.com/evrtek/geobeastProdV1-sub000/internal/game"
)

// GetLeaderboard returns the top stats rows ordered by "wins" (default) or
// "win_rate". Concurrent identical reads collapse into one query.
func (s *BattleService) GetLeaderboard(orderBy string, limit int) ([]game.BattleStats, error) {
	if orderBy != "win_rate" {
		orderBy = "wins"
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	key := fmt.Sprintf("leaderboard:%s:%d", orderBy, limit)
	v, err, _ := dedupe.LeaderboardGroup.Do(key, func() (interface{}, error) {
		return s.repo.GetTopPlayers(orderBy, limit)
	})
	if err != nil {
		return nil, err
	}
	return v.([]game.BattleStats), nil
}

// GetUserBattleStats returns the aggregate row for one player, zeroed when
// the player has no battles yet.
func (s *BattleService) GetUserBattleStats(userID uint) (*game.BattleStats, error) {
	return s.repo.GetStatsByUserID(userID)
}
