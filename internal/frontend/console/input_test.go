package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/rogue/internal/game/combat"
	"github.com/cory-johannsen/rogue/internal/game/session"
	"github.com/cory-johannsen/rogue/internal/game/world"
)

func TestParse_ExploreKeys(t *testing.T) {
	cases := map[string]world.Direction{
		"w":     world.North,
		"a":     world.West,
		"s":     world.South,
		"d":     world.East,
		"north": world.North,
		"EAST":  world.East,
	}
	for line, dir := range cases {
		in := Parse(line, false)
		assert.Equal(t, InputAction, in.Kind, line)
		assert.Equal(t, session.MoveAction(dir), in.Action, line)
	}
}

func TestParse_CombatKeys(t *testing.T) {
	cases := map[string]combat.ActionType{
		"a":      combat.ActionAttack,
		"attack": combat.ActionAttack,
		"d":      combat.ActionDefend,
		"defend": combat.ActionDefend,
		"r":      combat.ActionFlee,
		"flee":   combat.ActionFlee,
	}
	for line, action := range cases {
		in := Parse(line, true)
		assert.Equal(t, InputAction, in.Kind, line)
		assert.Equal(t, session.CombatAction(action), in.Action, line)
	}
}

func TestParse_QuitInBothContexts(t *testing.T) {
	assert.Equal(t, session.QuitAction(), Parse("q", false).Action)
	assert.Equal(t, session.QuitAction(), Parse("quit", true).Action)
}

func TestParse_LocalCommands(t *testing.T) {
	assert.Equal(t, InputHelp, Parse("?", false).Kind)
	assert.Equal(t, InputHelp, Parse("help", true).Kind)
	assert.Equal(t, InputLook, Parse("l", false).Kind)
	assert.Equal(t, InputNone, Parse("   ", false).Kind)
}

func TestParse_UnknownOutsideCombat(t *testing.T) {
	in := Parse("dance", false)
	assert.Equal(t, InputUnknown, in.Kind)
	assert.Equal(t, "dance", in.Raw)
}

func TestParse_UnknownInCombatWastesRound(t *testing.T) {
	in := Parse("w", true)
	assert.Equal(t, InputAction, in.Kind)
	assert.Equal(t, session.CombatAction(combat.ActionUnknown), in.Action)
}

func TestPropertyParseInCombatNeverMoves(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		line := rapid.StringMatching(`[a-z?]{1,8}`).Draw(t, "line")
		in := Parse(line, true)
		if in.Kind == InputAction {
			assert.NotEqual(t, session.ActionMove, in.Action.Kind)
		}
	})
}
