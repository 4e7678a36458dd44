package combat

import "math"

const (
	// MitigationK is the diminishing-returns coefficient of the armor curve.
	MitigationK = 0.1
	// DefendingArmorMultiplier scales armor while a defensive stance is up.
	DefendingArmorMultiplier = 1.25
)

// Reduction returns how much of damage is absorbed by armor:
// damage * (1 - e^(-k * armor)).
//
// Negative armor and negative damage are treated as zero.
// Postcondition: 0 <= Reduction <= damage.
func Reduction(damage int, armor float64) float64 {
	if damage <= 0 {
		return 0
	}
	if armor < 0 {
		armor = 0
	}
	return float64(damage) * (1 - math.Exp(-MitigationK*armor))
}

// FinalDamage returns the damage that gets through armor, truncated to an int.
//
// Postcondition: 0 <= FinalDamage <= damage (for damage >= 0).
func FinalDamage(damage int, armor float64) int {
	dealt := math.Floor(float64(damage) - Reduction(damage, armor))
	if dealt < 0 {
		return 0
	}
	return int(dealt)
}

// DefendingArmor derives the stance armor from base armor.
//
// Postcondition: DefendingArmor(a) >= a for a >= 0.
func DefendingArmor(armor int) float64 {
	return float64(armor) * DefendingArmorMultiplier
}
