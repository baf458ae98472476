package ai

import (
	"errors"
	"math/rand"

	"github.com/evrtek/geobeastProdV1-sub000/internal/game"
)

var ErrNoCardsLeft = errors.New("ai has no unused cards left")

// SelectCard picks the AI's card for a phase. The candidate pool is the AI
// deck minus cards already played this battle. When the opponent's card is
// known, the first unused candidate in deck order whose type beats the
// opponent's type wins; otherwise the pick is uniformly random among the
// remaining candidates. The caller marks the chosen card used.
func SelectCard(sess *game.BattleSession, deck *game.Deck, opponent *game.CombatCard) (*game.Card, error) {
	candidates := make([]*game.Card, 0, len(deck.Cards))
	for i := range deck.Cards {
		if !sess.AIUsed(deck.Cards[i].ID) {
			candidates = append(candidates, &deck.Cards[i])
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNoCardsLeft
	}

	if opponent != nil {
		for _, c := range candidates {
			if game.Beats(c.Type, opponent.Type) {
				return c, nil
			}
		}
	}
	return candidates[rand.Intn(len(candidates))], nil
}
