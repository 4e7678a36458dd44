package session_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/rogue/internal/game/character"
	"github.com/cory-johannsen/rogue/internal/game/combat"
	"github.com/cory-johannsen/rogue/internal/game/dice"
	"github.com/cory-johannsen/rogue/internal/game/npc"
	"github.com/cory-johannsen/rogue/internal/game/ruleset"
	"github.com/cory-johannsen/rogue/internal/game/session"
	"github.com/cory-johannsen/rogue/internal/game/world"
)

// fixedSrc always draws the same value, clamped to the requested range.
type fixedSrc struct{ val int }

func (f fixedSrc) Intn(n int) int {
	if f.val >= n {
		return n - 1
	}
	return f.val
}

func (f fixedSrc) Float64() float64 { return 0.99 }

var (
	plainClass = &ruleset.Class{ID: "plain", Name: "Plain"}
	testBase   = character.BaseStats{Health: 100, Stamina: 100, Armor: 0, Damage: 20}
	weakling   = &npc.Kind{ID: "weakling", Name: "Weakling", Health: 1, Damage: 5}
	brute      = &npc.Kind{ID: "brute", Name: "Brute", Health: 1000, Damage: 10000}
	dummy      = &npc.Kind{ID: "dummy", Name: "Dummy", Health: 1000, Damage: 1}
)

func corridor(t *testing.T) *world.Grid {
	t.Helper()
	g, err := world.ParseGrid([]string{
		"#####",
		"#...#",
		"#####",
	})
	require.NoError(t, err)
	return g
}

// newCorridorSession places the player at (1, 1) and one enemy of kind at (3, 1).
func newCorridorSession(t *testing.T, kind *npc.Kind) *session.Session {
	t.Helper()
	s, err := session.New(corridor(t), session.Options{
		PlayerName: "Hero",
		Class:      plainClass,
		Base:       testBase,
		Kinds:      []*npc.Kind{kind},
		Enemies:    1,
	}, fixedSrc{val: 2}, zaptest.NewLogger(t))
	require.NoError(t, err)
	return s
}

func TestNew_PlacesPlayerAndEnemies(t *testing.T) {
	s := newCorridorSession(t, weakling)

	assert.Equal(t, session.StatusOngoing, s.Status())
	assert.Equal(t, world.Position{X: 1, Y: 1}, s.Player().Position)
	assert.NotEmpty(t, s.ID())
	require.Len(t, s.Enemies(), 1)
	assert.Equal(t, world.Position{X: 3, Y: 1}, s.Enemies()[0].Position)
	assert.Zero(t, s.SpawnShortfall())

	tiles := s.Tiles()
	assert.Equal(t, world.TilePlayer, tiles[1][1])
	assert.Equal(t, world.TileFloor, tiles[1][2])
	assert.Equal(t, world.TileEnemy, tiles[1][3])
}

func TestNew_StartFallsBackToFirstWalkable(t *testing.T) {
	g, err := world.ParseGrid([]string{
		"#####",
		"##..#",
		"#####",
	})
	require.NoError(t, err)
	s, err := session.New(g, session.Options{PlayerName: "Hero", Class: plainClass, Base: testBase},
		fixedSrc{}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, world.Position{X: 2, Y: 1}, s.Player().Position)
}

func TestNew_NoWalkableCell(t *testing.T) {
	g, err := world.ParseGrid([]string{"###", "###", "###"})
	require.NoError(t, err)
	_, err = session.New(g, session.Options{PlayerName: "Hero", Class: plainClass, Base: testBase},
		fixedSrc{}, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, world.ErrNoFreeTile))
}

func TestNew_RejectsEnemiesWithoutKinds(t *testing.T) {
	_, err := session.New(corridor(t), session.Options{
		PlayerName: "Hero", Class: plainClass, Base: testBase, Enemies: 1,
	}, fixedSrc{}, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestNew_SpawnShortfallOnFullGrid(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s, err := session.New(corridor(t), session.Options{
		PlayerName: "Hero",
		Class:      plainClass,
		Base:       testBase,
		Kinds:      []*npc.Kind{weakling},
		Enemies:    5,
	}, fixedSrc{val: 2}, zap.New(core))
	require.NoError(t, err)

	assert.Len(t, s.Enemies(), 2)
	assert.Equal(t, 3, s.SpawnShortfall())
	assert.Equal(t, 1, logs.FilterMessage("not enough free tiles for all enemies").Len())
}

func TestHandleMove_IntoWallIsNoOp(t *testing.T) {
	s := newCorridorSession(t, weakling)
	s.Player().Health = 50
	before := s.Player().Describe()

	res := s.HandleMove(world.West)

	assert.False(t, res.Moved)
	assert.Equal(t, session.ReasonBlocked, res.Reason)
	assert.Equal(t, before, s.Player().Describe())
	assert.False(t, s.InCombat())
}

func TestHandleMove_UnknownDirection(t *testing.T) {
	s := newCorridorSession(t, weakling)
	res := s.HandleMove(world.Direction("up"))
	assert.False(t, res.Moved)
	assert.Equal(t, session.ReasonDirection, res.Reason)
}

func TestHandleMove_RegeneratesAndMarksGrid(t *testing.T) {
	s := newCorridorSession(t, weakling)
	s.Player().Health = 50

	res := s.HandleMove(world.East)

	require.True(t, res.Moved)
	assert.Equal(t, world.Position{X: 1, Y: 1}, res.From)
	assert.Equal(t, world.Position{X: 2, Y: 1}, res.To)
	assert.Equal(t, combat.Recovery{Health: 1, Stamina: 0}, res.Regen)
	assert.Equal(t, 51, s.Player().Health)
	assert.Nil(t, res.Enemy)

	occ, ok := s.Grid().OccupantAt(world.Position{X: 2, Y: 1})
	require.True(t, ok)
	assert.Equal(t, world.OccupantPlayer, occ.Kind)
	_, ok = s.Grid().OccupantAt(world.Position{X: 1, Y: 1})
	assert.False(t, ok)
}

func TestHandleMove_OntoEnemyOpensEncounter(t *testing.T) {
	s := newCorridorSession(t, dummy)
	s.HandleMove(world.East)

	res := s.HandleMove(world.East)

	require.True(t, res.Moved)
	require.NotNil(t, res.Enemy)
	assert.True(t, s.InCombat())
	assert.Same(t, res.Enemy, s.Foe())
	assert.Equal(t, world.TilePlayer, s.Tiles()[1][3])

	blocked := s.HandleMove(world.West)
	assert.False(t, blocked.Moved)
	assert.Equal(t, session.ReasonInCombat, blocked.Reason)
}

func TestHandleCombatAction_NotInCombat(t *testing.T) {
	s := newCorridorSession(t, weakling)
	_, err := s.HandleCombatAction(combat.ActionAttack)
	assert.ErrorIs(t, err, session.ErrNotInCombat)
}

func TestHandleCombatAction_WinRemovesEnemy(t *testing.T) {
	s := newCorridorSession(t, weakling)
	s.HandleMove(world.East)
	s.HandleMove(world.East)
	enemyID := s.Foe().ID()

	res, err := s.HandleCombatAction(combat.ActionAttack)

	require.NoError(t, err)
	assert.Equal(t, combat.StatePlayerWon, res.State)
	assert.False(t, s.InCombat())
	assert.Empty(t, s.Enemies())
	assert.Equal(t, session.StatusWon, s.Status())
	assert.Equal(t, combat.ExperiencePerKill, s.Player().Experience)

	occ, ok := s.Grid().OccupantAt(world.Position{X: 3, Y: 1})
	require.True(t, ok)
	assert.Equal(t, world.OccupantPlayer, occ.Kind)
	assert.NotEqual(t, enemyID, occ.ID)
}

func TestHandleCombatAction_FleeRetreats(t *testing.T) {
	s := newCorridorSession(t, dummy)
	s.HandleMove(world.East)
	s.HandleMove(world.East)
	health := s.Player().Health

	res, err := s.HandleCombatAction(combat.ActionFlee)

	require.NoError(t, err)
	assert.Equal(t, combat.StatePlayerFled, res.State)
	assert.False(t, s.InCombat())
	assert.Equal(t, world.Position{X: 2, Y: 1}, s.Player().Position)
	assert.Equal(t, health, s.Player().Health)
	require.Len(t, s.Enemies(), 1)
	assert.Equal(t, 1000, s.Enemies()[0].Health)
	assert.Equal(t, session.StatusOngoing, s.Status())
	assert.Equal(t, world.TileEnemy, s.Tiles()[1][3])
}

func TestHandleCombatAction_UnknownActionWastesRound(t *testing.T) {
	s := newCorridorSession(t, dummy)
	s.HandleMove(world.East)
	s.HandleMove(world.East)
	before := s.Player().Describe()

	res, err := s.HandleCombatAction(combat.ActionUnknown)

	require.NoError(t, err)
	assert.Equal(t, combat.StateInCombat, res.State)
	assert.True(t, s.InCombat())
	assert.Equal(t, before, s.Player().Describe())
	assert.Equal(t, 1000, s.Foe().Health)
}

func TestHandleCombatAction_LossEndsSession(t *testing.T) {
	s := newCorridorSession(t, brute)
	s.HandleMove(world.East)
	s.HandleMove(world.East)

	res, err := s.HandleCombatAction(combat.ActionAttack)

	require.NoError(t, err)
	assert.Equal(t, combat.StatePlayerLost, res.State)
	assert.Equal(t, session.StatusLost, s.Status())
	assert.False(t, s.Player().IsAlive())
	require.Len(t, s.Enemies(), 1)

	_, err = s.HandleCombatAction(combat.ActionAttack)
	assert.ErrorIs(t, err, session.ErrSessionOver)
	moved := s.HandleMove(world.West)
	assert.False(t, moved.Moved)
	assert.Equal(t, session.ReasonOver, moved.Reason)
}

func TestQuit(t *testing.T) {
	s := newCorridorSession(t, dummy)
	s.Quit()
	assert.Equal(t, session.StatusQuit, s.Status())
	s.Quit()
	assert.Equal(t, session.StatusQuit, s.Status())
}

// scripted replays a fixed list of actions, then reports io.EOF.
type scripted struct {
	actions []session.Action
}

func (s *scripted) Next(_ context.Context, _ bool) (session.Action, error) {
	if len(s.actions) == 0 {
		return session.Action{}, io.EOF
	}
	a := s.actions[0]
	s.actions = s.actions[1:]
	return a, nil
}

func TestRun_PlaysUntilWon(t *testing.T) {
	s := newCorridorSession(t, weakling)
	src := &scripted{actions: []session.Action{
		session.MoveAction(world.East),
		session.MoveAction(world.East),
		session.CombatAction(combat.ActionAttack),
		session.MoveAction(world.West),
	}}
	var outcomes []session.Outcome

	status, err := s.Run(context.Background(), src, func(o session.Outcome) { outcomes = append(outcomes, o) })

	require.NoError(t, err)
	assert.Equal(t, session.StatusWon, status)
	require.Len(t, outcomes, 3)
	require.NotNil(t, outcomes[2].Round)
	assert.Equal(t, combat.StatePlayerWon, outcomes[2].Round.State)
	assert.Len(t, src.actions, 1)
}

func TestRun_ExhaustedSourceLeavesSessionOngoing(t *testing.T) {
	s := newCorridorSession(t, dummy)
	status, err := s.Run(context.Background(), &scripted{}, nil)
	require.NoError(t, err)
	assert.Equal(t, session.StatusOngoing, status)
}

func TestRun_QuitAndMisuse(t *testing.T) {
	s := newCorridorSession(t, dummy)
	src := &scripted{actions: []session.Action{
		session.CombatAction(combat.ActionFlee),
		session.QuitAction(),
	}}
	var outcomes []session.Outcome

	status, err := s.Run(context.Background(), src, func(o session.Outcome) { outcomes = append(outcomes, o) })

	require.NoError(t, err)
	assert.Equal(t, session.StatusQuit, status)
	require.Len(t, outcomes, 2)
	assert.ErrorIs(t, outcomes[0].Err, session.ErrNotInCombat)
	assert.Equal(t, session.StatusQuit, outcomes[1].Status)
}

func TestRun_CancelledContext(t *testing.T) {
	s := newCorridorSession(t, dummy)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	status, err := s.Run(ctx, &scripted{actions: []session.Action{session.QuitAction()}}, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, session.StatusOngoing, status)
}

func TestSession_Property_SpawnPlacesDistinctFreeCells(t *testing.T) {
	kinds := []*npc.Kind{
		{ID: "orc", Name: "Orc", Health: 500, Armor: 4, Damage: 55},
		{ID: "goblin", Name: "Goblin", Health: 300, Armor: 2, Damage: 40},
		{ID: "troll", Name: "Troll", Health: 700, Armor: 6, Damage: 75},
	}
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 70).Draw(rt, "enemies")
		seed := rapid.Int64().Draw(rt, "seed")
		s, err := session.New(world.Standard(), session.Options{
			PlayerName:        "Hero",
			Class:             plainClass,
			Base:              character.DefaultBaseStats,
			Kinds:             kinds,
			Enemies:           n,
			PlacementAttempts: 10,
		}, dice.NewSeededSource(seed), zap.NewNop())
		require.NoError(rt, err)

		enemies := s.Enemies()
		assert.Equal(rt, n, len(enemies)+s.SpawnShortfall())
		seen := map[world.Position]bool{s.Player().Position: true}
		for _, e := range enemies {
			assert.False(rt, seen[e.Position], "cell %s used twice", e.Position)
			seen[e.Position] = true
			assert.True(rt, s.Grid().IsWalkable(e.Position.X, e.Position.Y))
		}
	})
}
