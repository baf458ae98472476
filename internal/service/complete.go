package service

import (
	"math"
	"math/rand"
	"time"

	"github.com/evrtek/geobeastProdV1-sub000/internal/constants"
	"github.com/evrtek/geobeastProdV1-sub000/internal/game"
	"github.com/evrtek/geobeastProdV1-sub000/internal/logging"
	"github.com/evrtek/geobeastProdV1-sub000/internal/notify"
	"github.com/evrtek/geobeastProdV1-sub000/internal/realtime"
	"github.com/evrtek/geobeastProdV1-sub000/internal/storage"
)

// CompletionSummary reports a finalized battle.
type CompletionSummary struct {
	BattleID      uint              `json:"battle_id"`
	Status        game.BattleStatus `json:"status"`
	WinnerID      *uint             `json:"winner_id,omitempty"`
	Player1Score  int               `json:"player1_score"`
	Player2Score  int               `json:"player2_score"`
	RewardCardIDs []uint            `json:"reward_card_ids,omitempty"`
}

// completeBattle finalizes a battle: winner, statistics and reward transfer
// run in one transaction so a partial failure rolls everything back.
//
// forcedWinner short-circuits the score comparison (forfeit). Reward
// transfer only happens on the score-based completion path; a forfeit
// finalizes with finalStatus=abandoned and transfers nothing.
func (s *BattleService) completeBattle(battle *game.Battle, sess *game.BattleSession, finalStatus game.BattleStatus, forcedWinner *game.Side) (*CompletionSummary, error) {
	var winnerSide game.Side
	haveWinner := true
	switch {
	case forcedWinner != nil:
		winnerSide = *forcedWinner
	case sess.Player1Score > sess.Player2Score:
		winnerSide = game.SidePlayer1
	case sess.Player2Score > sess.Player1Score:
		winnerSide = game.SidePlayer2
	default:
		// a tie cannot happen across five phases; never drop it silently
		logging.Error("battle completed with tied score", nil, logging.Fields{
			constants.LogFieldBattleID: battle.ID,
			"score":                    sess.Player1Score,
		})
		haveWinner = false
	}

	summary := &CompletionSummary{
		BattleID:     battle.ID,
		Status:       finalStatus,
		Player1Score: sess.Player1Score,
		Player2Score: sess.Player2Score,
	}

	err := s.repo.Transaction(func(tx storage.Repository) error {
		now := time.Now()
		battle.Status = finalStatus
		battle.CompletedAt = &now
		battle.WinnerID = nil
		var winnerID, loserID uint
		if haveWinner {
			if winnerSide == game.SidePlayer1 {
				winnerID, loserID = battle.Player1ID, battle.Player2ID
			} else {
				winnerID, loserID = battle.Player2ID, battle.Player1ID
			}
			battle.WinnerID = &winnerID
		}
		if err := tx.UpdateBattle(battle); err != nil {
			return err
		}

		if err := updateStats(tx, battle.Player1ID, battle.Mode, haveWinner && winnerSide == game.SidePlayer1, haveWinner); err != nil {
			return err
		}
		if err := updateStats(tx, battle.Player2ID, battle.Mode, haveWinner && winnerSide == game.SidePlayer2, haveWinner); err != nil {
			return err
		}

		if haveWinner && finalStatus == game.StatusCompleted {
			moved, err := transferRewards(tx, sess, winnerSide, winnerID, loserID, battle.Mode)
			if err != nil {
				return err
			}
			summary.RewardCardIDs = moved
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	summary.WinnerID = battle.WinnerID
	s.notifyCompletion(battle)
	return summary, nil
}

// updateStats applies one participant's aggregate deltas. Neither win nor
// loss is counted on the anomalous draw (decided=false).
func updateStats(tx storage.Repository, userID uint, mode game.BattleMode, won, decided bool) error {
	stats, err := tx.GetStatsByUserID(userID)
	if err != nil {
		return err
	}
	stats.TotalBattles++
	if decided {
		if won {
			stats.Wins++
		} else {
			stats.Losses++
		}
	}
	switch mode {
	case game.ModeFriendly:
		stats.FriendlyPlayed++
	case game.ModeCompetitive:
		stats.CompetitivePlayed++
	case game.ModeUltimate:
		stats.UltimatePlayed++
	}
	total := stats.TotalBattles
	if total < 1 {
		total = 1
	}
	rate := float64(stats.Wins) / float64(total) * 100
	stats.WinRate = math.Round(rate*100) / 100
	return tx.SaveStats(stats)
}

// transferRewards reassigns card ownership from the loser's battle deck of
// record: nothing in friendly mode, one uniformly random card in
// competitive, the whole deck in ultimate. The mutation is irreversible.
func transferRewards(tx storage.Repository, sess *game.BattleSession, winnerSide game.Side, winnerID, loserID uint, mode game.BattleMode) ([]uint, error) {
	if mode == game.ModeFriendly {
		return nil, nil
	}
	loserDeck, err := tx.GetDeckByID(sess.DeckFor(winnerSide.Other()))
	if err != nil {
		return nil, err
	}
	if len(loserDeck.Cards) == 0 {
		return nil, nil
	}

	var picks []game.Card
	switch mode {
	case game.ModeCompetitive:
		picks = []game.Card{loserDeck.Cards[rand.Intn(len(loserDeck.Cards))]}
	case game.ModeUltimate:
		picks = loserDeck.Cards
	}

	moved := make([]uint, 0, len(picks))
	for _, c := range picks {
		if err := tx.UpdateCardOwner(c.ID, winnerID); err != nil {
			return nil, err
		}
		moved = append(moved, c.ID)
	}
	logging.Info("battle rewards transferred", logging.Fields{
		"winner_id":             winnerID,
		"loser_id":              loserID,
		constants.LogFieldMode:  string(mode),
		constants.LogFieldCount: len(moved),
	})
	return moved, nil
}

func (s *BattleService) notifyCompletion(battle *game.Battle) {
	msg := "Your battle ended in a draw"
	for _, pid := range []uint{battle.Player1ID, battle.Player2ID} {
		if battle.WinnerID != nil {
			if *battle.WinnerID == pid {
				msg = "You won your battle!"
			} else {
				msg = "You lost your battle"
			}
		}
		s.notifyUser(pid, battle.ID, notify.KindBattleFinished, msg)
	}
}

// ForfeitBattle declares the opposing participant the winner through the
// completion path and marks the battle abandoned. Rewards are deliberately
// not transferred on this path.
func (s *BattleService) ForfeitBattle(battleID, userID uint) (*CompletionSummary, error) {
	battle, side, err := s.loadParticipantBattle(battleID, userID)
	if err != nil {
		return nil, err
	}
	if battle.Status != game.StatusInProgress {
		return nil, ErrBattleNotInProgress
	}

	var summary *CompletionSummary
	err = s.sessions.WithLock(battleID, func(sess *game.BattleSession) error {
		battle, err = s.reloadInProgress(battleID)
		if err != nil {
			return err
		}
		winner := side.Other()
		summary, err = s.completeBattle(battle, sess, game.StatusAbandoned, &winner)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.broadcast(battleID, realtime.EventBattleEnded, summary)
	return summary, nil
}
