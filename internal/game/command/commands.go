// Package command provides the command registries, parser, and built-in
// command definitions for exploring and fighting.
package command

// Categories for organizing commands.
const (
	CategoryMovement = "movement"
	CategoryCombat   = "combat"
	CategorySystem   = "system"
)

// Handler identifiers mapping commands to session actions or local handlers.
const (
	HandlerMove   = "move"
	HandlerAttack = "attack"
	HandlerDefend = "defend"
	HandlerFlee   = "flee"
	HandlerLook   = "look"
	HandlerQuit   = "quit"
	HandlerHelp   = "help"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name. Movement commands are named after their direction.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Help is the short help text displayed to players.
	Help string
	// Category groups the command (movement, combat, system).
	Category string
	// Handler maps to the session action or local handler.
	Handler string
}

func systemCommands() []Command {
	return []Command{
		{Name: "quit", Aliases: []string{"q", "exit"}, Help: "Give up and leave the dungeon", Category: CategorySystem, Handler: HandlerQuit},
		{Name: "help", Aliases: []string{"?", "h"}, Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp},
	}
}

// ExploreCommands returns the commands available while walking the map.
// The w/a/s/d keys move; "a" and "d" mean something else in combat.
func ExploreCommands() []Command {
	return append([]Command{
		{Name: "north", Aliases: []string{"w", "n"}, Help: "Move north", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "south", Aliases: []string{"s"}, Help: "Move south", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "east", Aliases: []string{"d", "e"}, Help: "Move east", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "west", Aliases: []string{"a"}, Help: "Move west", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "look", Aliases: []string{"l", "map"}, Help: "Redraw the map and your stats", Category: CategorySystem, Handler: HandlerLook},
	}, systemCommands()...)
}

// CombatCommands returns the commands available during an encounter.
func CombatCommands() []Command {
	return append([]Command{
		{Name: "attack", Aliases: []string{"a", "att", "kill"}, Help: "Strike the enemy; it strikes back if it survives", Category: CategoryCombat, Handler: HandlerAttack},
		{Name: "defend", Aliases: []string{"d", "def", "block"}, Help: "Brace for the next blow and recover health and stamina", Category: CategoryCombat, Handler: HandlerDefend},
		{Name: "flee", Aliases: []string{"r", "run"}, Help: "Run back the way you came", Category: CategoryCombat, Handler: HandlerFlee},
	}, systemCommands()...)
}

// IsMovementCommand reports whether the command name is a movement direction.
func IsMovementCommand(name string) bool {
	switch name {
	case "north", "south", "east", "west":
		return true
	default:
		return false
	}
}
