package game

// CardType identifies one of the eight battle card types.
type CardType string

const (
	TypeFire   CardType = "fire"
	TypeEarth  CardType = "earth"
	TypeStorm  CardType = "storm"
	TypeWater  CardType = "water"
	TypeVenom  CardType = "venom"
	TypeFrost  CardType = "frost"
	TypeShadow CardType = "shadow"
	TypeLight  CardType = "light"
)

// AdvantageMultiplier is the nominal damage bonus a type gets against the
// two types it beats. The attack formula does not currently apply it; the
// table is consulted by the AI strategy and exposed for clients.
const AdvantageMultiplier = 1.5

// beats maps each type to the two types it has an advantage against. The
// relation is directed: fire beats earth but earth does not beat fire.
var beats = map[CardType][2]CardType{
	TypeFire:   {TypeEarth, TypeStorm},
	TypeEarth:  {TypeStorm, TypeWater},
	TypeStorm:  {TypeWater, TypeVenom},
	TypeWater:  {TypeVenom, TypeFrost},
	TypeVenom:  {TypeFrost, TypeShadow},
	TypeFrost:  {TypeShadow, TypeLight},
	TypeShadow: {TypeLight, TypeFire},
	TypeLight:  {TypeFire, TypeEarth},
}

// IsBattleType reports whether t is one of the eight playable types.
// Collection cards can carry other type strings (promo, token); those are
// not eligible for battle decks.
func IsBattleType(t CardType) bool {
	_, ok := beats[t]
	return ok
}

// Beats reports whether attacker type a has the type advantage over b.
func Beats(a, b CardType) bool {
	pair, ok := beats[a]
	if !ok {
		return false
	}
	return pair[0] == b || pair[1] == b
}

// BattleTypes returns the playable types in a stable order.
func BattleTypes() []CardType {
	return []CardType{TypeFire, TypeEarth, TypeStorm, TypeWater, TypeVenom, TypeFrost, TypeShadow, TypeLight}
}
