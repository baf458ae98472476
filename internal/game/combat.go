package game

import "gorm.io/gorm"

// CombatCard is the live projection of a collection card inside one phase.
// Speed/Attack/Defense carry the varied values and mutate during the
// phase; the Base values keep the card's original collection stats for
// history records.
type CombatCard struct {
	CardID      uint     `json:"card_id"`
	Name        string   `json:"name"`
	Type        CardType `json:"type"`
	Speed       int      `json:"speed"`
	Attack      int      `json:"attack"`
	Defense     int      `json:"defense"`
	BaseSpeed   int      `json:"base_speed"`
	BaseAttack  int      `json:"base_attack"`
	BaseDefense int      `json:"base_defense"`
}

// PhaseState holds the in-flight duel of the current phase. It is created
// lazily on the first card selection of a phase and discarded when the
// phase resolves. Attacker is empty until both cards are selected.
type PhaseState struct {
	PhaseNumber int         `json:"phase_number"`
	Player1Card *CombatCard `json:"player1_card"`
	Player2Card *CombatCard `json:"player2_card"`
	Attacker    Side        `json:"attacker"`
}

// CardFor returns the combat card fighting for the given side.
func (p *PhaseState) CardFor(s Side) *CombatCard {
	if s == SidePlayer1 {
		return p.Player1Card
	}
	return p.Player2Card
}

// SetCardFor stores the combat card for the given side.
func (p *PhaseState) SetCardFor(s Side, c *CombatCard) {
	if s == SidePlayer1 {
		p.Player1Card = c
		return
	}
	p.Player2Card = c
}

// Ready reports whether both sides have selected a card.
func (p *PhaseState) Ready() bool {
	return p.Player1Card != nil && p.Player2Card != nil
}

// TotalPhases is the number of phases in every battle.
const TotalPhases = 5

// BattleSession is the durable per-battle working state. It is written back
// as a unit on every select/attack/complete call; callers must hold the
// per-battle lock for the duration of any read-modify-write cycle.
type BattleSession struct {
	gorm.Model
	BattleID      uint        `json:"battle_id" gorm:"uniqueIndex"`
	Player1ID     uint        `json:"player1_id"`
	Player2ID     uint        `json:"player2_id"`
	Player1DeckID uint        `json:"player1_deck_id"`
	Player2DeckID uint        `json:"player2_deck_id"`
	CurrentPhase  int         `json:"current_phase"`
	Player1Score  int         `json:"player1_score"`
	Player2Score  int         `json:"player2_score"`
	Phase         *PhaseState `json:"phase" gorm:"serializer:json"`
	AIUsedCards   []uint      `json:"ai_used_cards" gorm:"serializer:json"`
}

// ScoreFor returns the phase score of the given side.
func (s *BattleSession) ScoreFor(side Side) int {
	if side == SidePlayer1 {
		return s.Player1Score
	}
	return s.Player2Score
}

// AddScore increments the phase score of the given side.
func (s *BattleSession) AddScore(side Side) {
	if side == SidePlayer1 {
		s.Player1Score++
		return
	}
	s.Player2Score++
}

// DeckFor returns the deck-of-record id for the given side.
func (s *BattleSession) DeckFor(side Side) uint {
	if side == SidePlayer1 {
		return s.Player1DeckID
	}
	return s.Player2DeckID
}

// PhasesResolved is the number of phases that have concluded.
func (s *BattleSession) PhasesResolved() int {
	return s.Player1Score + s.Player2Score
}

// MarkAIUsed records that the AI played the given card this battle.
func (s *BattleSession) MarkAIUsed(cardID uint) {
	s.AIUsedCards = append(s.AIUsedCards, cardID)
}

// AIUsed reports whether the AI already played the given card.
func (s *BattleSession) AIUsed(cardID uint) bool {
	for _, id := range s.AIUsedCards {
		if id == cardID {
			return true
		}
	}
	return false
}

// CardSnapshot captures one card's original base stats and final combat
// stats of a resolved phase, persisted to the battle history.
type CardSnapshot struct {
	CardID      uint   `json:"card_id"`
	Name        string `json:"name"`
	PreSpeed    int    `json:"pre_speed"`
	PreAttack   int    `json:"pre_attack"`
	PreDefense  int    `json:"pre_defense"`
	PostSpeed   int    `json:"post_speed"`
	PostAttack  int    `json:"post_attack"`
	PostDefense int    `json:"post_defense"`
}

// SnapshotOf builds the history snapshot for a combat card at phase end.
func SnapshotOf(c *CombatCard) CardSnapshot {
	return CardSnapshot{
		CardID:      c.CardID,
		Name:        c.Name,
		PreSpeed:    c.BaseSpeed,
		PreAttack:   c.BaseAttack,
		PreDefense:  c.BaseDefense,
		PostSpeed:   c.Speed,
		PostAttack:  c.Attack,
		PostDefense: c.Defense,
	}
}

// PhaseRecord is the persisted result of one resolved phase.
type PhaseRecord struct {
	gorm.Model
	BattleID    uint         `json:"battle_id" gorm:"index"`
	PhaseNumber int          `json:"phase_number"`
	Winner      Side         `json:"winner"`
	Player1     CardSnapshot `json:"player1" gorm:"serializer:json"`
	Player2     CardSnapshot `json:"player2" gorm:"serializer:json"`
}
