package service

import (
	"time"

	"github.com/evrtek/geobeastProdV1-sub000/internal/game"
	"github.com/evrtek/geobeastProdV1-sub000/internal/notify"
	"github.com/evrtek/geobeastProdV1-sub000/internal/session"
)

func newTestService(repo *mockRepo) *BattleService {
	return NewBattleService(repo, session.NewStore(repo), notify.NewNotifier(repo, nil), nil, 24*time.Hour)
}

// battleDeck builds a five-card deck of the given uniform stats.
func battleDeck(m *mockRepo, owner uint, speed, attack, defense int) *game.Deck {
	types := []game.CardType{game.TypeFire, game.TypeWater, game.TypeEarth, game.TypeStorm, game.TypeShadow}
	cards := make([]*game.Card, len(types))
	for i, t := range types {
		cards[i] = m.addCard(owner, "card-"+string(t), t, speed, attack, defense)
	}
	return m.addDeck(owner, cards...)
}
