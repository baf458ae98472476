package service

import (
	"errors"
	"fmt"

	"github.com/evrtek/geobeastProdV1-sub000/internal/constants"
	"github.com/evrtek/geobeastProdV1-sub000/internal/game"
	"github.com/evrtek/geobeastProdV1-sub000/internal/logging"
	"github.com/evrtek/geobeastProdV1-sub000/internal/storage"
)

// aiRoster is the fixed deck the reserved opponent fights with.
var aiRoster = []game.Card{
	{Name: "Cinder Drake", Type: game.TypeFire, Speed: 48, Attack: 62, Defense: 50},
	{Name: "Tide Serpent", Type: game.TypeWater, Speed: 52, Attack: 55, Defense: 55},
	{Name: "Granite Golem", Type: game.TypeEarth, Speed: 40, Attack: 58, Defense: 64},
	{Name: "Gale Harpy", Type: game.TypeStorm, Speed: 64, Attack: 54, Defense: 44},
	{Name: "Night Stalker", Type: game.TypeShadow, Speed: 56, Attack: 60, Defense: 46},
}

// EnsureAIIdentity provisions the reserved AI opponent exactly once at
// startup: a flagged user row plus its fixed five-card deck. Request
// handlers never create it.
func EnsureAIIdentity(repo storage.Repository) (*game.User, error) {
	aiUser, err := repo.FindAIUser()
	if err == nil {
		return aiUser, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	aiUser = &game.User{Name: "Arena AI", Email: "ai@arena.internal", IsAI: true}
	if err := repo.CreateUser(aiUser); err != nil {
		return nil, fmt.Errorf("create ai user: %w", err)
	}

	cards := make([]game.Card, len(aiRoster))
	copy(cards, aiRoster)
	for i := range cards {
		cards[i].OwnerID = aiUser.ID
		if err := repo.CreateCard(&cards[i]); err != nil {
			return nil, fmt.Errorf("create ai card: %w", err)
		}
	}
	deck := &game.Deck{OwnerID: aiUser.ID, Name: "Arena AI Deck", Cards: cards}
	if err := repo.CreateDeck(deck); err != nil {
		return nil, fmt.Errorf("create ai deck: %w", err)
	}

	logging.Info("reserved AI identity provisioned", logging.Fields{
		constants.LogFieldUserID: aiUser.ID,
		constants.LogFieldDeckID: deck.ID,
	})
	return aiUser, nil
}
