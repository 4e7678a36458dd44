package npc

import (
	"github.com/cory-johannsen/rogue/internal/game/combat"
	"github.com/cory-johannsen/rogue/internal/game/dice"
	"github.com/cory-johannsen/rogue/internal/game/world"
)

var _ combat.Combatant = (*Instance)(nil)

// Instance is a live enemy standing on the grid.
type Instance struct {
	combat.Vitals

	id   string
	name string
	// KindID is the source kind's ID.
	KindID string
	// Description is copied from the kind.
	Description string
	// Position is the cell the instance occupies.
	Position world.Position
	// Taunts is the list of taunt strings copied from the kind.
	Taunts []string
	// TauntChance is the probability (0–1) of taunting on each check.
	TauntChance float64
}

// NewInstance creates a live enemy from a kind, placed at pos.
//
// Precondition: id must be non-empty; kind must be non-nil.
// Postcondition: Health equals kind.Health.
func NewInstance(id string, kind *Kind, pos world.Position) *Instance {
	return &Instance{
		Vitals:      combat.NewVitals(kind.Health, kind.Armor, kind.Damage),
		id:          id,
		name:        kind.Name,
		KindID:      kind.ID,
		Description: kind.Description,
		Position:    pos,
		Taunts:      kind.Taunts,
		TauntChance: kind.TauntChance,
	}
}

// ID returns the instance's unique identifier.
func (i *Instance) ID() string { return i.id }

// Name returns the display name copied from the kind.
func (i *Instance) Name() string { return i.name }

// Kind always returns combat.KindEnemy.
func (i *Instance) Kind() combat.Kind { return combat.KindEnemy }

// Attack strikes target with the enemy's damage. Enemies spend no stamina.
func (i *Instance) Attack(target combat.Combatant) int {
	return target.TakeDamage(i.Damage)
}

// TakeDamage mitigates raw with the enemy's armor and applies the result.
//
// Postcondition: Returns the mitigated amount; Health >= 0.
func (i *Instance) TakeDamage(raw int) int {
	dealt := combat.FinalDamage(raw, float64(i.Armor))
	i.ApplyDamage(dealt)
	return dealt
}

// Describe returns a snapshot of the enemy's stats.
func (i *Instance) Describe() combat.StatSheet {
	return combat.StatSheet{
		ID:             i.id,
		Kind:           combat.KindEnemy,
		Name:           i.name,
		Health:         i.Health,
		MaxHealth:      i.MaxHealth,
		Armor:          i.Armor,
		DefendingArmor: float64(i.Armor),
		Damage:         i.Damage,
		X:              i.Position.X,
		Y:              i.Position.Y,
	}
}

// TryTaunt attempts to produce a taunt string.
//
// Precondition: src must be non-nil.
// Postcondition: Returns (taunt, true) if a taunt fires; returns ("", false) otherwise.
func (i *Instance) TryTaunt(src dice.Source) (string, bool) {
	if len(i.Taunts) == 0 || !dice.Chance(src, i.TauntChance) {
		return "", false
	}
	return dice.Pick(src, i.Taunts), true
}

// HealthDescription returns a visible health state string for the stat sheet.
//
// Postcondition: Returns a non-empty string.
func (i *Instance) HealthDescription() string {
	if i.Health <= 0 {
		return "dead"
	}
	pct := float64(i.Health) / float64(i.MaxHealth)
	switch {
	case pct >= 1.0:
		return "unharmed"
	case pct >= 0.85:
		return "barely scratched"
	case pct >= 0.60:
		return "lightly wounded"
	case pct >= 0.40:
		return "moderately wounded"
	case pct >= 0.20:
		return "heavily wounded"
	default:
		return "critically wounded"
	}
}
