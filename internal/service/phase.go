package service

import (
	"errors"
	"fmt"

	"github.com/evrtek/geobeastProdV1-sub000/internal/ai"
	"github.com/evrtek/geobeastProdV1-sub000/internal/constants"
	"github.com/evrtek/geobeastProdV1-sub000/internal/engine"
	"github.com/evrtek/geobeastProdV1-sub000/internal/game"
	"github.com/evrtek/geobeastProdV1-sub000/internal/logging"
	"github.com/evrtek/geobeastProdV1-sub000/internal/realtime"
	"github.com/evrtek/geobeastProdV1-sub000/internal/storage"
)

// SelectSummary reports a stored card selection.
type SelectSummary struct {
	Phase          int    `json:"phase"`
	CardName       string `json:"card_name"`
	ReadyForBattle bool   `json:"ready_for_battle"`
}

// AttackResult reports one resolved attack call.
type AttackResult struct {
	Attacker     game.Side `json:"attacker"`
	Hit          bool      `json:"hit"`
	Damage       int       `json:"damage"`
	PhaseEnded   bool      `json:"phase_ended"`
	PhaseWinner  game.Side `json:"phase_winner,omitempty"`
	BattleEnded  bool      `json:"battle_ended"`
	CurrentPhase int       `json:"current_phase"`
	Player1Score int       `json:"player1_score"`
	Player2Score int       `json:"player2_score"`
	WinnerID     *uint     `json:"winner_id,omitempty"`
}

// SelectCardForPhase projects the chosen collection card into combat and
// stores it for the caller's side. In AI battles the AI answers within the
// same locked cycle, so a single human selection makes the phase ready.
func (s *BattleService) SelectCardForPhase(battleID, userID, cardID uint) (*SelectSummary, error) {
	battle, side, err := s.loadParticipantBattle(battleID, userID)
	if err != nil {
		return nil, err
	}
	if battle.Status != game.StatusInProgress {
		return nil, ErrBattleNotInProgress
	}

	var summary SelectSummary
	err = s.sessions.WithLock(battleID, func(sess *game.BattleSession) error {
		battle, err = s.reloadInProgress(battleID)
		if err != nil {
			return err
		}
		deck, err := s.repo.GetDeckByID(sess.DeckFor(side))
		if err != nil {
			return err
		}
		card := cardFromDeck(deck, cardID)
		if card == nil {
			return ErrCardNotInDeck
		}

		combat := engine.ProjectCard(card)
		res, err := engine.SelectCard(sess, side, combat)
		if err != nil {
			return err
		}

		if battle.IsAIBattle && !res.Ready {
			if err := s.selectAICard(sess, side.Other(), combat); err != nil {
				return err
			}
			res.Ready = sess.Phase.Ready()
		}

		summary = SelectSummary{Phase: res.Phase, CardName: res.CardName, ReadyForBattle: res.Ready}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcast(battleID, realtime.EventPhaseUpdate, summary)
	return &summary, nil
}

// selectAICard answers the human selection inside the same session cycle.
// The opponent's card is known at this point, so the strategy can use the
// type advantage table.
func (s *BattleService) selectAICard(sess *game.BattleSession, aiSide game.Side, opponent *game.CombatCard) error {
	if sess.Phase != nil && sess.Phase.CardFor(aiSide) != nil {
		return nil
	}
	aiDeck, err := s.repo.GetDeckByID(sess.DeckFor(aiSide))
	if err != nil {
		return fmt.Errorf("ai deck lookup: %w", err)
	}
	pick, err := ai.SelectCard(sess, aiDeck, opponent)
	if err != nil {
		return err
	}
	if _, err := engine.SelectCard(sess, aiSide, engine.ProjectCard(pick)); err != nil {
		return err
	}
	sess.MarkAIUsed(pick.ID)
	return nil
}

// ExecuteAttack resolves one attack for the phase's stored attacker. The
// caller only needs to be a participant; turn order lives in the session.
// A concluded phase advances the battle or, after the fifth phase,
// finalizes it — all inside the same per-battle lock.
func (s *BattleService) ExecuteAttack(battleID, userID uint) (*AttackResult, error) {
	battle, _, err := s.loadParticipantBattle(battleID, userID)
	if err != nil {
		return nil, err
	}
	if battle.Status != game.StatusInProgress {
		return nil, ErrBattleNotInProgress
	}

	var result AttackResult
	err = s.sessions.WithLock(battleID, func(sess *game.BattleSession) error {
		battle, err = s.reloadInProgress(battleID)
		if err != nil {
			return err
		}
		out, err := engine.ExecuteAttack(sess)
		if err != nil {
			return err
		}
		result = AttackResult{
			Attacker:     out.Attacker,
			Hit:          out.Hit,
			Damage:       out.Damage,
			PhaseEnded:   out.PhaseEnded,
			PhaseWinner:  out.PhaseWinner,
			CurrentPhase: sess.CurrentPhase,
			Player1Score: sess.Player1Score,
			Player2Score: sess.Player2Score,
		}
		if !out.PhaseEnded {
			return nil
		}

		record := &game.PhaseRecord{
			BattleID:    battleID,
			PhaseNumber: sess.CurrentPhase,
			Winner:      out.PhaseWinner,
			Player1:     out.Player1Snapshot,
			Player2:     out.Player2Snapshot,
		}
		if err := s.repo.CreatePhaseRecord(record); err != nil {
			return err
		}
		logging.Info("phase resolved", logging.Fields{
			constants.LogFieldBattleID: battleID,
			constants.LogFieldPhase:    sess.CurrentPhase,
			"winner":                   out.PhaseWinner,
		})

		if sess.PhasesResolved() < game.TotalPhases {
			engine.AdvancePhase(sess)
			result.CurrentPhase = sess.CurrentPhase
			return nil
		}

		summary, err := s.completeBattle(battle, sess, game.StatusCompleted, nil)
		if err != nil {
			return err
		}
		result.BattleEnded = true
		result.WinnerID = summary.WinnerID
		return nil
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrBattleNotFound
		}
		return nil, err
	}

	if result.BattleEnded {
		s.broadcast(battleID, realtime.EventBattleEnded, result)
	} else {
		s.broadcast(battleID, realtime.EventPhaseUpdate, result)
	}
	return &result, nil
}

func cardFromDeck(deck *game.Deck, cardID uint) *game.Card {
	for i := range deck.Cards {
		if deck.Cards[i].ID == cardID {
			return &deck.Cards[i]
		}
	}
	return nil
}
