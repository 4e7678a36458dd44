package console

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cory-johannsen/rogue/internal/game/combat"
	"github.com/cory-johannsen/rogue/internal/game/command"
	"github.com/cory-johannsen/rogue/internal/game/session"
	"github.com/cory-johannsen/rogue/internal/game/world"
)

const (
	healthBarWidth = 20
	columnGap      = 4
)

// RenderTile returns the colored glyph for a tile.
func RenderTile(k world.TileKind) string {
	switch k {
	case world.TileWall:
		return Colorize(BrightBlack, "#")
	case world.TileFloor:
		return Colorize(Dim, ".")
	case world.TilePlayer:
		return Colorize(Bold+BrightGreen, "P")
	case world.TileEnemy:
		return Colorize(Bold+BrightRed, "E")
	default:
		return "?"
	}
}

// RenderMap returns one string per grid row.
func RenderMap(tiles [][]world.TileKind) []string {
	rows := make([]string, len(tiles))
	for y, row := range tiles {
		var b strings.Builder
		for _, k := range row {
			b.WriteString(RenderTile(k))
		}
		rows[y] = b.String()
	}
	return rows
}

// RenderHealthBar draws a fixed-width bar filled in proportion to cur/max.
//
// Postcondition: The visible width is always width+2.
func RenderHealthBar(cur, max, width int) string {
	filled := 0
	if max > 0 && cur > 0 {
		filled = cur * width / max
		if filled == 0 {
			filled = 1
		}
	}
	color := BrightGreen
	switch {
	case filled*4 <= width:
		color = BrightRed
	case filled*2 <= width:
		color = BrightYellow
	}
	return "[" + Colorize(color, strings.Repeat("=", filled)) + strings.Repeat(" ", width-filled) + "]"
}

// RenderStatSheet formats a stat sheet as lines for side-by-side display.
func RenderStatSheet(s combat.StatSheet) []string {
	title := Colorize(BrightWhite+Bold, s.Name)
	if s.Class != "" {
		title += Colorf(Dim, " (%s)", s.Class)
	}
	lines := []string{
		title,
		fmt.Sprintf("HP      %4d/%-4d %s", s.Health, s.MaxHealth, RenderHealthBar(s.Health, s.MaxHealth, healthBarWidth)),
	}
	if s.Kind == combat.KindPlayer {
		lines = append(lines, fmt.Sprintf("Stamina %4d/%-4d", s.Stamina, s.MaxStamina))
	}
	armor := fmt.Sprintf("Armor   %d", s.Armor)
	if s.Defending {
		armor += Colorf(BrightCyan, " (defending %.2f)", s.DefendingArmor)
	}
	lines = append(lines, armor, fmt.Sprintf("Damage  %d", s.Damage))
	if s.Kind == combat.KindPlayer {
		lines = append(lines,
			fmt.Sprintf("XP      %d", s.Experience),
			fmt.Sprintf("Pos     (%d, %d)", s.X, s.Y),
		)
	}
	return lines
}

// RenderExplore draws the map beside the player's stat sheet.
func RenderExplore(tiles [][]world.TileKind, player combat.StatSheet, enemiesLeft int) string {
	stats := append(RenderStatSheet(player), "", Colorf(Yellow, "Enemies left: %d", enemiesLeft))
	return strings.Join(SideBySide(RenderMap(tiles), stats, columnGap), "\n") + "\n"
}

// RenderCombat draws the player and enemy stat sheets side by side.
func RenderCombat(player, enemy combat.StatSheet, condition string) string {
	right := RenderStatSheet(enemy)
	if condition != "" {
		right = append(right, Colorf(Yellow, "Looks %s", condition))
	}
	var b strings.Builder
	b.WriteString(Colorize(BrightYellow, "=== Combat ==="))
	b.WriteString("\n")
	b.WriteString(strings.Join(SideBySide(RenderStatSheet(player), right, columnGap), "\n"))
	b.WriteString("\n")
	b.WriteString(Colorize(Dim, "[a]ttack  [d]efend  [r]un  [q]uit"))
	b.WriteString("\n")
	return b.String()
}

// RenderEvent formats one combat event.
func RenderEvent(ev combat.RoundEvent) string {
	switch ev.Type {
	case combat.EventAttack:
		color := BrightWhite
		if ev.Amount > 0 {
			color = BrightRed
		}
		return Colorf(color, "[Combat] %s", ev.Narrative)
	case combat.EventDefend:
		return Colorf(BrightCyan, "[Combat] %s", ev.Narrative)
	case combat.EventFlee:
		return Colorf(Yellow, "[Combat] %s", ev.Narrative)
	case combat.EventVictory:
		return Colorf(BrightGreen, "[Combat] %s", ev.Narrative)
	case combat.EventDefeat:
		return Colorf(Red, "[Combat] %s", ev.Narrative)
	default:
		return Colorf(Dim, "[Combat] %s", ev.Narrative)
	}
}

// RenderRound formats a round banner followed by its events.
func RenderRound(res combat.RoundResult) string {
	var b strings.Builder
	b.WriteString(Colorize(BrightYellow, fmt.Sprintf("--- Round %d ---", res.Round)))
	b.WriteString("\n")
	for _, ev := range res.Events {
		b.WriteString(RenderEvent(ev))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderMove describes a move result. Ordinary steps render as an empty string.
func RenderMove(res session.MoveResult) string {
	if !res.Moved {
		switch res.Reason {
		case session.ReasonBlocked:
			return Colorize(Dim, "A wall blocks your way.") + "\n"
		case session.ReasonInCombat:
			return Colorize(Yellow, "You are locked in combat.") + "\n"
		case session.ReasonOver:
			return Colorize(Dim, "The game is over.") + "\n"
		default:
			return Colorize(Dim, "You can't go that way.") + "\n"
		}
	}
	if res.Enemy == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(Colorf(BrightRed, "%s blocks your path!", res.Enemy.Name()))
	b.WriteString("\n")
	if res.Taunt != "" {
		b.WriteString(Colorf(Magenta, "%s shouts: %q", res.Enemy.Name(), res.Taunt))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderError formats caller misuse reported by the session.
func RenderError(err error) string {
	switch {
	case errors.Is(err, session.ErrNotInCombat):
		return Colorize(Dim, "There is nothing to fight here.")
	case errors.Is(err, session.ErrSessionOver):
		return Colorize(Dim, "The game is over.")
	default:
		return Colorize(Red, err.Error())
	}
}

// RenderStatus formats the closing line for a finished session.
func RenderStatus(status session.Status, experience int) string {
	switch status {
	case session.StatusWon:
		return Colorf(BrightGreen, "Every enemy lies defeated. You win with %d experience!", experience)
	case session.StatusLost:
		return Colorize(BrightRed, "You have fallen. Game over.")
	case session.StatusQuit:
		return Colorf(Yellow, "You leave the dungeon with %d experience.", experience)
	default:
		return Colorize(Dim, "The dungeon waits for your return.")
	}
}

// RenderHelp lists commands with their aliases.
func RenderHelp(cmds []*command.Command) string {
	var b strings.Builder
	b.WriteString(Colorize(BrightWhite, "Commands:"))
	b.WriteString("\n")
	for _, c := range cmds {
		keys := c.Name
		if len(c.Aliases) > 0 {
			keys += " (" + strings.Join(c.Aliases, ", ") + ")"
		}
		b.WriteString(fmt.Sprintf("  %s%-28s%s %s\n", BrightCyan, keys, Reset, c.Help))
	}
	return b.String()
}

// Renderer writes rendered views to a terminal.
type Renderer struct {
	out   io.Writer
	color bool
}

// NewRenderer creates a Renderer. When color is false all ANSI sequences are stripped.
//
// Precondition: out must be non-nil.
func NewRenderer(out io.Writer, color bool) *Renderer {
	return &Renderer{out: out, color: color}
}

func (r *Renderer) print(s string) {
	if s == "" {
		return
	}
	if !r.color {
		s = StripANSI(s)
	}
	_, _ = io.WriteString(r.out, s)
}

// Message writes a single line.
func (r *Renderer) Message(line string) {
	r.print(line + "\n")
}

// Screen draws the combat view during an encounter and the map otherwise.
func (r *Renderer) Screen(s *session.Session) {
	if foe := s.Foe(); foe != nil {
		r.print(RenderCombat(s.Player().Describe(), foe.Describe(), foe.HealthDescription()))
		return
	}
	r.print(RenderExplore(s.Tiles(), s.Player().Describe(), len(s.Enemies())))
}

// Help lists the commands valid in the current context.
func (r *Renderer) Help(inCombat bool) {
	reg := command.ExploreRegistry()
	if inCombat {
		reg = command.CombatRegistry()
	}
	r.print(RenderHelp(reg.Commands()))
}

// Outcome writes what an applied action produced and then the current screen.
func (r *Renderer) Outcome(s *session.Session, o session.Outcome) {
	switch {
	case o.Err != nil:
		r.Message(RenderError(o.Err))
	case o.Move != nil:
		r.print(RenderMove(*o.Move))
	case o.Round != nil:
		r.print(RenderRound(*o.Round))
	}
	if o.Status.IsOver() {
		r.Message(RenderStatus(o.Status, s.Player().Experience))
		return
	}
	if o.Move != nil && !o.Move.Moved {
		return
	}
	r.Screen(s)
}
