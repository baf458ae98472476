package engine

import (
	"errors"

	"github.com/evrtek/geobeastProdV1-sub000/internal/game"
)

var (
	ErrCardAlreadySelected = errors.New("card already selected for this phase")
	ErrCardsNotSelected    = errors.New("both players must select a card first")
	ErrPhaseConcluded      = errors.New("phase already concluded")
)

const (
	// MinimumDamage is the damage floor of a landed attack.
	MinimumDamage = 10
	// AttackFatigue is the speed cost paid by the attacker on a hit.
	AttackFatigue = 10
)

// SelectResult reports the outcome of a card selection.
type SelectResult struct {
	Phase    int
	CardName string
	Ready    bool
}

// SelectCard stores a projected combat card into the current phase for the
// given side, lazily creating the phase state. When both sides have selected,
// the initial attacker is the side with the higher projected attack; an
// equal roll favors player1.
func SelectCard(sess *game.BattleSession, side game.Side, card *game.CombatCard) (SelectResult, error) {
	if sess.Phase == nil {
		sess.Phase = &game.PhaseState{PhaseNumber: sess.CurrentPhase}
	}
	phase := sess.Phase
	if phase.CardFor(side) != nil {
		return SelectResult{}, ErrCardAlreadySelected
	}
	phase.SetCardFor(side, card)

	if phase.Ready() {
		if phase.Player2Card.Attack > phase.Player1Card.Attack {
			phase.Attacker = game.SidePlayer2
		} else {
			phase.Attacker = game.SidePlayer1
		}
	}
	return SelectResult{Phase: phase.PhaseNumber, CardName: card.Name, Ready: phase.Ready()}, nil
}

// AttackOutcome reports a single attack resolution.
type AttackOutcome struct {
	Attacker game.Side
	Hit      bool
	Damage   int
	// PhaseEnded is true when the defender's card was defeated. PhaseWinner
	// and the snapshots are only meaningful in that case.
	PhaseEnded      bool
	PhaseWinner     game.Side
	Player1Snapshot game.CardSnapshot
	Player2Snapshot game.CardSnapshot
}

// ExecuteAttack resolves one attack of the current phase. It acts on the
// phase's stored attacker flag regardless of which participant triggered
// the call; turn order is carried entirely by that flag.
//
// A faster defender dodges: no damage, no fatigue, roles swap. Otherwise
// the hit deals max(attack-defense, MinimumDamage), the defender's defense
// absorbs it, and the attacker pays AttackFatigue speed. The phase ends
// when the defender's defense reaches zero; the score and history snapshot
// are taken here, advancing the session is the caller's job.
func ExecuteAttack(sess *game.BattleSession) (AttackOutcome, error) {
	phase := sess.Phase
	if phase == nil || !phase.Ready() {
		return AttackOutcome{}, ErrCardsNotSelected
	}

	attacker := phase.Attacker
	atk := phase.CardFor(attacker)
	def := phase.CardFor(attacker.Other())
	if def.Defense <= 0 {
		return AttackOutcome{}, ErrPhaseConcluded
	}

	out := AttackOutcome{Attacker: attacker}

	if def.Speed > atk.Speed {
		// miss: attacker unchanged, roles swap for the next call
		phase.Attacker = attacker.Other()
		return out, nil
	}

	damage := atk.Attack - def.Defense
	if damage < MinimumDamage {
		damage = MinimumDamage
	}
	def.Defense -= damage
	atk.Speed -= AttackFatigue
	out.Hit = true
	out.Damage = damage

	if def.Defense <= 0 {
		sess.AddScore(attacker)
		out.PhaseEnded = true
		out.PhaseWinner = attacker
		out.Player1Snapshot = game.SnapshotOf(phase.Player1Card)
		out.Player2Snapshot = game.SnapshotOf(phase.Player2Card)
	}
	return out, nil
}

// AdvancePhase discards the resolved phase and moves the session to the
// next one. The new phase state is created lazily on the first selection.
func AdvancePhase(sess *game.BattleSession) {
	sess.CurrentPhase++
	sess.Phase = nil
}
