package engine

import (
	"math"
	"math/rand"

	"github.com/evrtek/geobeastProdV1-sub000/internal/game"
)

// varyStat applies the per-stat battle variance: an independent roll in
// [-5%, +5%], rounded to the nearest integer and floored at 1.
func varyStat(base int) int {
	factor := 1.0 + (rand.Float64()*0.10 - 0.05)
	v := int(math.Round(float64(base) * factor))
	if v < 1 {
		v = 1
	}
	return v
}

// ProjectCard turns a collection card into the combat card fighting one
// phase. Each stat gets its own variance roll; the Base values keep the
// card's original collection stats for the history record.
func ProjectCard(c *game.Card) *game.CombatCard {
	return &game.CombatCard{
		CardID:      c.ID,
		Name:        c.Name,
		Type:        c.Type,
		Speed:       varyStat(c.Speed),
		Attack:      varyStat(c.Attack),
		Defense:     varyStat(c.Defense),
		BaseSpeed:   c.Speed,
		BaseAttack:  c.Attack,
		BaseDefense: c.Defense,
	}
}
