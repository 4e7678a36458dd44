package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cory-johannsen/rogue/internal/game/combat"
)

func TestActionType_String(t *testing.T) {
	tests := []struct {
		a    combat.ActionType
		want string
	}{
		{combat.ActionAttack, "attack"},
		{combat.ActionDefend, "defend"},
		{combat.ActionFlee, "flee"},
		{combat.ActionUnknown, "unknown"},
		{combat.ActionType(42), "unknown"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.a.String())
	}
}

func TestParseAction(t *testing.T) {
	assert.Equal(t, combat.ActionAttack, combat.ParseAction("attack"))
	assert.Equal(t, combat.ActionDefend, combat.ParseAction(" Defend "))
	assert.Equal(t, combat.ActionFlee, combat.ParseAction("FLEE"))
	assert.Equal(t, combat.ActionUnknown, combat.ParseAction("dance"))
	assert.Equal(t, combat.ActionUnknown, combat.ParseAction(""))
}
