package console

import (
	"github.com/cory-johannsen/rogue/internal/game/combat"
	"github.com/cory-johannsen/rogue/internal/game/command"
	"github.com/cory-johannsen/rogue/internal/game/session"
	"github.com/cory-johannsen/rogue/internal/game/world"
)

// InputKind classifies a parsed input line.
type InputKind int

const (
	// InputNone is an empty line.
	InputNone InputKind = iota
	// InputAction carries a session action.
	InputAction
	// InputHelp asks for the command list.
	InputHelp
	// InputLook asks for the screen to be redrawn.
	InputLook
	// InputUnknown is an unrecognised command outside combat.
	InputUnknown
)

// Input is the result of interpreting one line of keyboard input.
type Input struct {
	Kind   InputKind
	Action session.Action
	// Raw is the command word as typed, lowercased.
	Raw string
}

var (
	exploreRegistry = command.ExploreRegistry()
	combatRegistry  = command.CombatRegistry()
)

// Parse interprets a line in the current context. "a" and "d" move west and
// east while exploring but attack and defend in combat. An unrecognised word in
// combat still becomes an action so the round is wasted.
func Parse(line string, inCombat bool) Input {
	pr := command.Parse(line)
	if pr.Command == "" {
		return Input{Kind: InputNone}
	}
	reg := exploreRegistry
	if inCombat {
		reg = combatRegistry
	}
	cmd, ok := reg.Resolve(pr.Command)
	if !ok {
		if inCombat {
			return Input{Kind: InputAction, Action: session.CombatAction(combat.ActionUnknown), Raw: pr.Command}
		}
		return Input{Kind: InputUnknown, Raw: pr.Command}
	}

	in := Input{Kind: InputAction, Raw: pr.Command}
	switch cmd.Handler {
	case command.HandlerMove:
		in.Action = session.MoveAction(world.Direction(cmd.Name))
	case command.HandlerAttack, command.HandlerDefend, command.HandlerFlee:
		in.Action = session.CombatAction(combat.ParseAction(cmd.Handler))
	case command.HandlerQuit:
		in.Action = session.QuitAction()
	case command.HandlerHelp:
		in.Kind = InputHelp
	case command.HandlerLook:
		in.Kind = InputLook
	default:
		in.Kind = InputUnknown
	}
	return in
}
