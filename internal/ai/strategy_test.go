package ai

import (
	"math/rand"
	"testing"

	"github.com/evrtek/geobeastProdV1-sub000/internal/game"
)

func aiDeck() *game.Deck {
	cards := []game.Card{
		{Name: "Tide Serpent", Type: game.TypeWater},
		{Name: "Cinder Drake", Type: game.TypeFire},
		{Name: "Granite Golem", Type: game.TypeEarth},
		{Name: "Gale Harpy", Type: game.TypeStorm},
		{Name: "Night Stalker", Type: game.TypeShadow},
	}
	for i := range cards {
		cards[i].ID = uint(i + 1)
	}
	return &game.Deck{Cards: cards}
}

func TestSelectCard_PrefersTypeAdvantage(t *testing.T) {
	sess := &game.BattleSession{}
	// opponent plays earth; fire beats earth and is the first such card in
	// deck order (water does not beat earth).
	opp := &game.CombatCard{Name: "Mud Beast", Type: game.TypeEarth}
	c, err := SelectCard(sess, aiDeck(), opp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Name != "Cinder Drake" {
		t.Fatalf("expected first advantaged card in deck order, got %s", c.Name)
	}
}

func TestSelectCard_SkipsUsedCards(t *testing.T) {
	sess := &game.BattleSession{}
	deck := aiDeck()
	sess.MarkAIUsed(2) // Cinder Drake already played
	opp := &game.CombatCard{Name: "Mud Beast", Type: game.TypeEarth}
	c, err := SelectCard(sess, deck, opp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// light also beats earth but is not in the deck; shadow/water/storm do
	// not, so the pick falls back to random among unused candidates.
	if c.ID == 2 {
		t.Fatalf("used card must never be selected again")
	}
}

func TestSelectCard_RandomWhenOpponentUnknown(t *testing.T) {
	rand.Seed(7)
	sess := &game.BattleSession{}
	deck := aiDeck()
	seen := map[uint]bool{}
	for i := 0; i < 50; i++ {
		c, err := SelectCard(sess, deck, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen[c.ID] = true
	}
	if len(seen) < 2 {
		t.Fatalf("random selection should spread across candidates, saw %d", len(seen))
	}
}

func TestSelectCard_ExhaustedDeck(t *testing.T) {
	sess := &game.BattleSession{}
	deck := aiDeck()
	for _, c := range deck.Cards {
		sess.MarkAIUsed(c.ID)
	}
	if _, err := SelectCard(sess, deck, nil); err != ErrNoCardsLeft {
		t.Fatalf("expected ErrNoCardsLeft, got %v", err)
	}
}
