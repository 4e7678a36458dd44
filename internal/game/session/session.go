// Package session owns one run of the game: the player, the live enemies,
// the grid, the random source and the active encounter.
package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/rogue/internal/game/character"
	"github.com/cory-johannsen/rogue/internal/game/combat"
	"github.com/cory-johannsen/rogue/internal/game/dice"
	"github.com/cory-johannsen/rogue/internal/game/npc"
	"github.com/cory-johannsen/rogue/internal/game/ruleset"
	"github.com/cory-johannsen/rogue/internal/game/world"
)

var (
	// ErrNotInCombat is returned when a combat action arrives with no active encounter.
	ErrNotInCombat = errors.New("session: not in combat")
	// ErrSessionOver is returned when an action arrives after the session ended.
	ErrSessionOver = errors.New("session: session is over")
)

// Status is the overall outcome of a session.
type Status int

const (
	StatusOngoing Status = iota
	StatusWon
	StatusLost
	StatusQuit
)

// String returns a human-readable status label.
func (s Status) String() string {
	switch s {
	case StatusOngoing:
		return "ongoing"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	case StatusQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// IsOver reports whether the session has ended.
func (s Status) IsOver() bool { return s != StatusOngoing }

// DefaultPlacementAttempts bounds the random draws per placement before falling
// back to the free-cell list.
const DefaultPlacementAttempts = 100

// Options configures a new session.
type Options struct {
	PlayerName string
	Class      *ruleset.Class
	Base       character.BaseStats
	// Kinds is the pool enemy kinds are drawn from uniformly.
	Kinds   []*npc.Kind
	Enemies int
	// PlacementAttempts defaults to DefaultPlacementAttempts when zero.
	PlacementAttempts int
}

// Move rejection reasons reported in MoveResult.Reason.
const (
	ReasonBlocked   = "blocked"
	ReasonInCombat  = "in combat"
	ReasonOver      = "session over"
	ReasonDirection = "unknown direction"
)

// MoveResult describes the outcome of HandleMove.
type MoveResult struct {
	Moved  bool
	Reason string
	From   world.Position
	To     world.Position
	Regen  combat.Recovery
	// Enemy is set when the step opened an encounter.
	Enemy *npc.Instance
	// Taunt is what the enemy shouted, if anything.
	Taunt string
}

// Session is a single game run. It is not safe for concurrent use; the
// console loop owns it exclusively.
type Session struct {
	id        string
	player    *character.Player
	enemies   *npc.Manager
	grid      *world.Grid
	src       dice.Source
	logger    *zap.Logger
	attempts  int
	encounter *combat.Encounter
	foe       *npc.Instance
	previous  world.Position
	status    Status
	shortfall int
}

// New creates the player, places it, and spawns the enemies.
//
// Precondition: grid, src and logger must be non-nil; grid must have no occupants.
// Postcondition: Returns an ongoing Session, or an error when the player cannot be
// built or placed, or enemies are requested without any kinds to draw from.
func New(grid *world.Grid, opts Options, src dice.Source, logger *zap.Logger) (*Session, error) {
	if opts.Enemies < 0 {
		return nil, fmt.Errorf("enemy count must not be negative, got %d", opts.Enemies)
	}
	if opts.Enemies > 0 && len(opts.Kinds) == 0 {
		return nil, errors.New("enemies requested but no enemy kinds loaded")
	}
	player, err := character.New(opts.PlayerName, opts.Class, opts.Base)
	if err != nil {
		return nil, fmt.Errorf("creating player: %w", err)
	}
	attempts := opts.PlacementAttempts
	if attempts <= 0 {
		attempts = DefaultPlacementAttempts
	}

	id := uuid.NewString()
	s := &Session{
		id:       id,
		player:   player,
		enemies:  npc.NewManager(),
		grid:     grid,
		src:      src,
		logger:   logger.With(zap.String("session_id", id)),
		attempts: attempts,
	}
	if err := s.placePlayer(); err != nil {
		return nil, err
	}
	s.spawnEnemies(opts.Kinds, opts.Enemies)

	s.logger.Info("session started",
		zap.String("player", player.Name()),
		zap.String("class", player.ClassName()),
		zap.Stringer("start", player.Position),
		zap.Int("enemies", s.enemies.Count()),
		zap.Int("grid_width", grid.Width()),
		zap.Int("grid_height", grid.Height()),
	)
	return s, nil
}

func (s *Session) placePlayer() error {
	start := world.Position{X: 1, Y: 1}
	if _, taken := s.grid.OccupantAt(start); taken || !s.grid.IsWalkable(start.X, start.Y) {
		var ok bool
		start, ok = s.grid.FirstWalkable()
		if !ok {
			return fmt.Errorf("placing player: %w", world.ErrNoFreeTile)
		}
	}
	if err := s.grid.Place(s.playerOccupant(), start); err != nil {
		return fmt.Errorf("placing player: %w", err)
	}
	s.player.Position = start
	s.previous = start
	return nil
}

// spawnEnemies places up to n enemies of uniformly drawn kinds on distinct free cells.
// When the grid runs out of room the rest are skipped and recorded as a shortfall.
func (s *Session) spawnEnemies(kinds []*npc.Kind, n int) {
	for i := 0; i < n; i++ {
		pos, err := s.grid.FindFreeCell(s.src, s.attempts)
		if err != nil {
			s.shortfall = n - i
			s.logger.Warn("not enough free tiles for all enemies",
				zap.Int("requested", n),
				zap.Int("spawned", i),
				zap.Error(err),
			)
			return
		}
		kind := dice.Pick(s.src, kinds)
		inst, err := s.enemies.Spawn(kind, pos)
		if err != nil {
			s.logger.Error("spawning enemy", zap.String("kind", kind.ID), zap.Error(err))
			s.shortfall = n - i
			return
		}
		if err := s.grid.Place(world.Occupant{ID: inst.ID(), Kind: world.OccupantEnemy}, pos); err != nil {
			_ = s.enemies.Remove(inst.ID())
			s.logger.Error("marking enemy on grid", zap.String("enemy_id", inst.ID()), zap.Error(err))
			s.shortfall = n - i
			return
		}
		s.logger.Debug("enemy spawned",
			zap.String("enemy_id", inst.ID()),
			zap.String("kind", kind.ID),
			zap.Stringer("pos", pos),
		)
	}
}

func (s *Session) playerOccupant() world.Occupant {
	return world.Occupant{ID: s.player.ID(), Kind: world.OccupantPlayer}
}

// HandleMove steps the player one cell in dir. Stepping onto an enemy opens an
// encounter; the player then shares the enemy's cell until the encounter ends.
//
// Postcondition: A rejected move changes nothing and reports why in Reason.
func (s *Session) HandleMove(dir world.Direction) MoveResult {
	from := s.player.Position
	res := MoveResult{From: from, To: from}
	switch {
	case s.status.IsOver():
		res.Reason = ReasonOver
		return res
	case s.encounter != nil:
		res.Reason = ReasonInCombat
		return res
	case !dir.IsStandard():
		res.Reason = ReasonDirection
		return res
	}

	dx, dy := dir.Delta()
	regen, ok := s.player.Move(dx, dy, s.grid)
	if !ok {
		res.Reason = ReasonBlocked
		s.logger.Debug("move blocked", zap.String("direction", string(dir)), zap.Stringer("from", from))
		return res
	}
	to := s.player.Position
	res.Moved = true
	res.To = to
	res.Regen = regen
	s.previous = from
	s.grid.Clear(from)

	if foe, found := s.enemies.At(to); found {
		s.foe = foe
		s.encounter = combat.NewEncounter(s.player, foe, s.logger)
		s.encounter.Start()
		res.Enemy = foe
		if taunt, ok := foe.TryTaunt(s.src); ok {
			res.Taunt = taunt
		}
		return res
	}
	if err := s.grid.Place(s.playerOccupant(), to); err != nil {
		s.logger.Error("marking player on grid", zap.Stringer("pos", to), zap.Error(err))
	}
	s.logger.Debug("player moved",
		zap.String("direction", string(dir)),
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.Int("health_regen", regen.Health),
		zap.Int("stamina_regen", regen.Stamina),
	)
	return res
}

// HandleCombatAction resolves one round of the active encounter.
//
// Postcondition: Returns ErrSessionOver after the session ended and ErrNotInCombat
// when no encounter is active; otherwise the round result, with the session
// updated for any terminal encounter state.
func (s *Session) HandleCombatAction(action combat.ActionType) (combat.RoundResult, error) {
	if s.status.IsOver() {
		return combat.RoundResult{}, ErrSessionOver
	}
	if s.encounter == nil {
		return combat.RoundResult{}, ErrNotInCombat
	}

	res := s.encounter.Resolve(action)
	switch res.State {
	case combat.StatePlayerWon:
		s.settleVictory()
	case combat.StatePlayerLost:
		s.endEncounter()
		s.finish(StatusLost)
	case combat.StatePlayerFled:
		s.player.Position = s.previous
		if err := s.grid.Place(s.playerOccupant(), s.previous); err != nil {
			s.logger.Error("returning player after flight", zap.Stringer("pos", s.previous), zap.Error(err))
		}
		s.endEncounter()
	}
	return res, nil
}

func (s *Session) settleVictory() {
	pos := s.foe.Position
	s.grid.Clear(pos)
	if err := s.enemies.Remove(s.foe.ID()); err != nil {
		s.logger.Error("removing defeated enemy", zap.String("enemy_id", s.foe.ID()), zap.Error(err))
	}
	if err := s.grid.Place(s.playerOccupant(), pos); err != nil {
		s.logger.Error("marking player on grid", zap.Stringer("pos", pos), zap.Error(err))
	}
	s.endEncounter()
	if s.enemies.Count() == 0 {
		s.finish(StatusWon)
	}
}

func (s *Session) endEncounter() {
	s.encounter = nil
	s.foe = nil
}

func (s *Session) finish(status Status) {
	s.status = status
	s.logger.Info("session ended",
		zap.Stringer("status", status),
		zap.Int("experience", s.player.Experience),
		zap.Int("enemies_left", s.enemies.Count()),
	)
}

// Quit ends an ongoing session at the player's request.
func (s *Session) Quit() {
	if s.status.IsOver() {
		return
	}
	s.endEncounter()
	s.finish(StatusQuit)
}

// ID returns the session's correlation ID.
func (s *Session) ID() string { return s.id }

// Status returns the current session status.
func (s *Session) Status() Status { return s.status }

// InCombat reports whether an encounter is active.
func (s *Session) InCombat() bool { return s.encounter != nil }

// Player returns the session's player.
func (s *Session) Player() *character.Player { return s.player }

// Foe returns the enemy of the active encounter, or nil outside combat.
func (s *Session) Foe() *npc.Instance { return s.foe }

// Enemies returns a snapshot of the live enemies.
func (s *Session) Enemies() []*npc.Instance { return s.enemies.All() }

// Grid returns the session's grid.
func (s *Session) Grid() *world.Grid { return s.grid }

// SpawnShortfall returns how many requested enemies could not be placed.
func (s *Session) SpawnShortfall() int { return s.shortfall }

// Tiles renders the grid with the player drawn on its current cell, including
// while it shares a cell with an enemy during an encounter.
func (s *Session) Tiles() [][]world.TileKind {
	tiles := s.grid.RenderTiles()
	pos := s.player.Position
	if s.grid.InBounds(pos.X, pos.Y) {
		tiles[pos.Y][pos.X] = world.TilePlayer
	}
	return tiles
}
