// Package character defines the player character: its stats, stance, and
// the regeneration rules applied by movement and defending.
package character

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/rogue/internal/game/combat"
	"github.com/cory-johannsen/rogue/internal/game/ruleset"
	"github.com/cory-johannsen/rogue/internal/game/world"
)

// Regeneration and cost rates, as fractions of the relevant maximum.
const (
	AttackStaminaCost  = 0.10
	MoveHealthRegen    = 0.01
	MoveStaminaRegen   = 0.05
	DefendHealthRegen  = 0.10
	DefendStaminaRegen = 0.25
)

// BaseStats are the class-independent starting stats of every player.
type BaseStats struct {
	Health  int
	Stamina int
	Armor   int
	Damage  int
}

// DefaultBaseStats are the stats every player starts from before class bonuses.
var DefaultBaseStats = BaseStats{Health: 500, Stamina: 100, Armor: 5, Damage: 20}

// Walkable is the part of the grid a player needs to validate a step.
type Walkable interface {
	IsWalkable(x, y int) bool
}

var _ combat.PlayerCombatant = (*Player)(nil)

// Player is the single player-controlled combatant of a session.
//
// Invariant: 0 <= Stamina <= MaxStamina; DefendingArmor >= Armor.
type Player struct {
	combat.Vitals

	id    string
	name  string
	class string

	Stamina        int
	MaxStamina     int
	DefendingArmor float64
	Defending      bool
	Experience     int
	Position       world.Position
}

// New builds a player at full health and stamina from base stats plus the class bonuses.
//
// Precondition: name must be non-empty; class must be non-nil.
// Postcondition: Returns a Player with a fresh UUID, or a non-nil error.
func New(name string, class *ruleset.Class, base BaseStats) (*Player, error) {
	if name == "" {
		return nil, errors.New("player name must not be empty")
	}
	if class == nil {
		return nil, errors.New("class must not be nil")
	}
	maxHealth := base.Health + class.Bonuses.Health
	if maxHealth < 1 {
		return nil, fmt.Errorf("player max health must be positive, got %d", maxHealth)
	}
	maxStamina := base.Stamina + class.Bonuses.Stamina
	if maxStamina < 0 {
		return nil, fmt.Errorf("player max stamina must not be negative, got %d", maxStamina)
	}
	armor := base.Armor + class.Bonuses.Armor
	return &Player{
		Vitals:         combat.NewVitals(maxHealth, armor, base.Damage+class.Bonuses.Damage),
		id:             uuid.NewString(),
		name:           name,
		class:          class.Name,
		Stamina:        maxStamina,
		MaxStamina:     maxStamina,
		DefendingArmor: combat.DefendingArmor(armor),
	}, nil
}

// ID returns the player's unique identifier.
func (p *Player) ID() string { return p.id }

// Name returns the player's display name.
func (p *Player) Name() string { return p.name }

// ClassName returns the display name of the player's class.
func (p *Player) ClassName() string { return p.class }

// Kind always returns combat.KindPlayer.
func (p *Player) Kind() combat.Kind { return combat.KindPlayer }

// Attack strikes target with the player's damage and spends stamina.
// An exhausted player still attacks; stamina never drops below zero.
//
// Postcondition: Returns the damage dealt after the target's mitigation.
func (p *Player) Attack(target combat.Combatant) int {
	dealt := target.TakeDamage(p.Damage)
	p.Stamina -= combat.Percent(p.Damage, AttackStaminaCost)
	if p.Stamina < 0 {
		p.Stamina = 0
	}
	return dealt
}

// TakeDamage mitigates raw with the current armor, or the defending armor while
// the stance is up, and applies the result.
//
// Postcondition: Returns the mitigated amount; Health >= 0.
func (p *Player) TakeDamage(raw int) int {
	armor := float64(p.Armor)
	if p.Defending {
		armor = p.DefendingArmor
	}
	dealt := combat.FinalDamage(raw, armor)
	p.ApplyDamage(dealt)
	return dealt
}

// Defend raises the stance for the next incoming attack and regenerates.
//
// Postcondition: Defending is true; returns what was actually restored.
func (p *Player) Defend() combat.Recovery {
	p.Defending = true
	return combat.Recovery{
		Health:  p.Heal(combat.Percent(p.MaxHealth, DefendHealthRegen)),
		Stamina: combat.Restore(&p.Stamina, p.MaxStamina, combat.Percent(p.MaxStamina, DefendStaminaRegen)),
	}
}

// ResetStance drops the defensive stance.
func (p *Player) ResetStance() { p.Defending = false }

// GainExperience adds amount to the player's experience.
func (p *Player) GainExperience(amount int) { p.Experience += amount }

// Move steps the player by (dx, dy) if the destination is walkable and
// regenerates a small share of health and stamina.
//
// Postcondition: On rejection returns (zero Recovery, false) with no state change.
func (p *Player) Move(dx, dy int, grid Walkable) (combat.Recovery, bool) {
	dest := p.Position.Offset(dx, dy)
	if !grid.IsWalkable(dest.X, dest.Y) {
		return combat.Recovery{}, false
	}
	p.Position = dest
	return combat.Recovery{
		Health:  p.Heal(combat.Percent(p.MaxHealth, MoveHealthRegen)),
		Stamina: combat.Restore(&p.Stamina, p.MaxStamina, combat.Percent(p.MaxStamina, MoveStaminaRegen)),
	}, true
}

// Describe returns a snapshot of the player's stats.
func (p *Player) Describe() combat.StatSheet {
	return combat.StatSheet{
		ID:             p.id,
		Kind:           combat.KindPlayer,
		Name:           p.name,
		Class:          p.class,
		Health:         p.Health,
		MaxHealth:      p.MaxHealth,
		Stamina:        p.Stamina,
		MaxStamina:     p.MaxStamina,
		Armor:          p.Armor,
		DefendingArmor: p.DefendingArmor,
		Damage:         p.Damage,
		Defending:      p.Defending,
		Experience:     p.Experience,
		X:              p.Position.X,
		Y:              p.Position.Y,
	}
}
