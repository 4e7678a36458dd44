// Package combat implements the damage mitigation model and the one-on-one
// encounter state machine between the player and an enemy.
package combat

// Kind distinguishes player combatants from enemy combatants.
type Kind int

const (
	KindPlayer Kind = iota
	KindEnemy
)

// String returns a human-readable kind label.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Combatant is the capability set shared by every entity that can fight.
// The encounter resolver is written against this interface only.
type Combatant interface {
	// ID uniquely identifies the combatant within a session.
	ID() string
	// Name is the display name.
	Name() string
	// Kind reports whether this is a player or an enemy.
	Kind() Kind
	// IsAlive reports whether health is above zero.
	IsAlive() bool
	// Attack strikes target with this combatant's damage and returns the amount dealt.
	Attack(target Combatant) int
	// TakeDamage mitigates raw with the current armor, applies it, and returns the amount dealt.
	TakeDamage(raw int) int
	// Describe returns a read-only snapshot of the combatant's stats.
	Describe() StatSheet
}

// PlayerCombatant is a Combatant that can take a defensive stance and earn experience.
type PlayerCombatant interface {
	Combatant
	// Defend raises the stance for the next incoming attack and grants recovery.
	Defend() Recovery
	// ResetStance drops the defensive stance.
	ResetStance()
	// GainExperience adds amount to the accumulated experience.
	GainExperience(amount int)
}

// Recovery reports how much health and stamina an action actually restored.
type Recovery struct {
	Health  int
	Stamina int
}

// StatSheet is a read-only snapshot of an entity for the rendering layer.
// Fields that do not apply to a kind are left at their zero value.
type StatSheet struct {
	ID             string
	Kind           Kind
	Name           string
	Class          string
	Health         int
	MaxHealth      int
	Stamina        int
	MaxStamina     int
	Armor          int
	DefendingArmor float64
	Damage         int
	Defending      bool
	Experience     int
	X              int
	Y              int
}

// Vitals holds the health, armor and damage state common to all combatants.
//
// Invariant: 0 <= Health <= MaxHealth.
type Vitals struct {
	Health    int
	MaxHealth int
	Armor     int
	Damage    int
}

// NewVitals returns Vitals at full health.
//
// Precondition: maxHealth >= 1.
// Postcondition: Health == MaxHealth.
func NewVitals(maxHealth, armor, damage int) Vitals {
	return Vitals{Health: maxHealth, MaxHealth: maxHealth, Armor: armor, Damage: damage}
}

// IsAlive reports whether Health is above zero.
func (v *Vitals) IsAlive() bool { return v.Health > 0 }

// ApplyDamage reduces Health by amount, flooring at zero.
// Precondition: amount must be >= 0.
// Postcondition: Health >= 0.
func (v *Vitals) ApplyDamage(amount int) {
	v.Health -= amount
	if v.Health < 0 {
		v.Health = 0
	}
}

// Heal raises Health by amount, capped at MaxHealth, and returns the amount restored.
//
// Postcondition: 0 <= returned <= amount; Health <= MaxHealth.
func (v *Vitals) Heal(amount int) int {
	return Restore(&v.Health, v.MaxHealth, amount)
}

// Restore adds amount to *current without exceeding max and returns the amount added.
//
// Postcondition: *current <= max when it started <= max; returns >= 0.
func Restore(current *int, max, amount int) int {
	if amount <= 0 || *current >= max {
		return 0
	}
	before := *current
	*current += amount
	if *current > max {
		*current = max
	}
	return *current - before
}

// Percent returns floor(value * pct), the integer share used for all regeneration.
func Percent(value int, pct float64) int {
	return int(float64(value) * pct)
}
