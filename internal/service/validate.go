package service

import (
	"errors"
	"fmt"

	"github.com/evrtek/geobeastProdV1-sub000/internal/game"
	"github.com/evrtek/geobeastProdV1-sub000/internal/storage"
)

// ValidationResult is the itemized outcome of a deck eligibility check.
// Valid=false with Issues set is a business-rule failure; not-found and
// not-owned surface as ErrDeckNotFound instead.
type ValidationResult struct {
	Valid   bool     `json:"valid"`
	Message string   `json:"message,omitempty"`
	Issues  []string `json:"issues,omitempty"`
}

// ValidateDeck checks that the user owns the deck, that it holds exactly
// five battle-worthy cards, and that the owner is allowed to enter the
// given mode. Each violating card contributes one issue string.
func (s *BattleService) ValidateDeck(userID, deckID uint, mode game.BattleMode) (*ValidationResult, error) {
	if !game.ValidMode(mode) {
		return &ValidationResult{Valid: false, Message: fmt.Sprintf("unknown battle mode %q", mode)}, nil
	}

	deck, err := s.repo.GetDeckByID(deckID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrDeckNotFound
		}
		return nil, err
	}
	if deck.OwnerID != userID {
		// not-owned is reported exactly like not-found
		return nil, ErrDeckNotFound
	}

	var issues []string
	if len(deck.Cards) != game.DeckSize {
		issues = append(issues, fmt.Sprintf("deck must contain exactly %d cards, has %d", game.DeckSize, len(deck.Cards)))
	}
	for _, c := range deck.Cards {
		if !game.IsBattleType(c.Type) {
			issues = append(issues, fmt.Sprintf("card %q is not a battle-eligible type", c.Name))
		}
		if c.Listed {
			issues = append(issues, fmt.Sprintf("card %q is listed on the marketplace", c.Name))
		}
		if c.InTrade {
			issues = append(issues, fmt.Sprintf("card %q is part of an active trade", c.Name))
		}
	}
	if len(issues) > 0 {
		return &ValidationResult{Valid: false, Message: "deck is not battle ready", Issues: issues}, nil
	}

	if mode != game.ModeFriendly {
		if allowed, msg, err := s.modePermitted(userID, mode); err != nil {
			return nil, err
		} else if !allowed {
			return &ValidationResult{Valid: false, Message: msg}, nil
		}
	}

	return &ValidationResult{Valid: true}, nil
}

// modePermitted consults parental permission flags for restricted (child)
// accounts. Adults are never gated here.
func (s *BattleService) modePermitted(userID uint, mode game.BattleMode) (bool, string, error) {
	user, err := s.repo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, "", ErrUserNotFound
		}
		return false, "", err
	}
	if !user.IsChild {
		return true, "", nil
	}
	perm, err := s.repo.GetParentalPermission(userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, fmt.Sprintf("%s battles require parental permission", mode), nil
		}
		return false, "", err
	}
	switch mode {
	case game.ModeCompetitive:
		if !perm.AllowCompetitive {
			return false, "a parent has not allowed competitive battles for this account", nil
		}
	case game.ModeUltimate:
		if !perm.AllowUltimate {
			return false, "a parent has not allowed ultimate battles for this account", nil
		}
	}
	return true, "", nil
}
