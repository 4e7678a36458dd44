package combat

import "strings"

// ActionType identifies what the player does in a combat round.
// The zero value (ActionUnknown) is a wasted round, not an error.
type ActionType int

const (
	ActionUnknown ActionType = iota // zero value; the round is wasted
	ActionAttack                    // strike, enemy retaliates if alive
	ActionDefend                    // raise stance and recover, enemy strikes
	ActionFlee                      // leave combat, no damage exchanged
)

// String returns the human-readable name of the ActionType.
// Postcondition: returns "attack", "defend", "flee", or "unknown".
func (a ActionType) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionDefend:
		return "defend"
	case ActionFlee:
		return "flee"
	default:
		return "unknown"
	}
}

// ParseAction maps a canonical action name to an ActionType.
//
// Postcondition: Returns ActionUnknown for any unrecognized input.
func ParseAction(name string) ActionType {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "attack":
		return ActionAttack
	case "defend":
		return ActionDefend
	case "flee":
		return ActionFlee
	default:
		return ActionUnknown
	}
}
