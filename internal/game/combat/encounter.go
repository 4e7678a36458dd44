package combat

import (
	"fmt"

	"go.uber.org/zap"
)

// ExperiencePerKill is awarded to the player when an enemy is defeated.
const ExperiencePerKill = 10

// State is the encounter state machine position.
type State int

const (
	StateIdle State = iota
	StateInCombat
	StatePlayerWon
	StatePlayerLost
	StatePlayerFled
)

// String returns a human-readable state label.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInCombat:
		return "in combat"
	case StatePlayerWon:
		return "player won"
	case StatePlayerLost:
		return "player lost"
	case StatePlayerFled:
		return "player fled"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether s ends the encounter.
func (s State) IsTerminal() bool {
	return s == StatePlayerWon || s == StatePlayerLost || s == StatePlayerFled
}

// EventType classifies a RoundEvent.
type EventType int

const (
	EventAttack EventType = iota
	EventDefend
	EventFlee
	EventWasted
	EventVictory
	EventDefeat
)

// RoundEvent records one thing that happened during a round.
type RoundEvent struct {
	Type       EventType
	ActorID    string
	ActorName  string
	TargetID   string
	TargetName string
	// Amount is the damage dealt for EventAttack and the experience gained for EventVictory.
	Amount int
	// Recovery is set for EventDefend.
	Recovery  Recovery
	Narrative string
}

// RoundResult is everything a caller needs to render one resolved round.
type RoundResult struct {
	Round  int
	Action ActionType
	Events []RoundEvent
	State  State
}

// Encounter is a one-on-one fight between the player and a single enemy.
// It is not safe for concurrent use; the owning session serialises access.
type Encounter struct {
	player PlayerCombatant
	enemy  Combatant
	state  State
	round  int
	logger *zap.Logger
}

// NewEncounter creates an idle encounter between player and enemy.
//
// Precondition: player, enemy and logger must be non-nil.
// Postcondition: State() == StateIdle.
func NewEncounter(player PlayerCombatant, enemy Combatant, logger *zap.Logger) *Encounter {
	return &Encounter{
		player: player,
		enemy:  enemy,
		state:  StateIdle,
		logger: logger,
	}
}

// Start moves an idle encounter into combat.
//
// Postcondition: State() == StateInCombat if it was StateIdle; otherwise unchanged.
func (e *Encounter) Start() {
	if e.state != StateIdle {
		return
	}
	e.state = StateInCombat
	e.logger.Info("encounter started",
		zap.String("player", e.player.Name()),
		zap.String("enemy", e.enemy.Name()),
		zap.String("enemy_id", e.enemy.ID()),
	)
}

// State returns the current state.
func (e *Encounter) State() State { return e.state }

// Round returns the number of rounds resolved so far.
func (e *Encounter) Round() int { return e.round }

// Player returns the player combatant.
func (e *Encounter) Player() PlayerCombatant { return e.player }

// Enemy returns the enemy combatant.
func (e *Encounter) Enemy() Combatant { return e.enemy }

// Resolve runs one round with the externally chosen action.
//
// Ordering: on attack the player strikes first and the enemy retaliates only if
// still alive; on defend the stance is raised, the enemy strikes, and the stance
// is dropped at round end; flee ends combat with no damage; any other action
// wastes the round. Terminal checks run player-dead first, then enemy-dead.
//
// Postcondition: when State() was not StateInCombat, nothing changes and the
// returned result carries the current state with no events.
func (e *Encounter) Resolve(action ActionType) RoundResult {
	if e.state != StateInCombat {
		return RoundResult{Round: e.round, Action: action, State: e.state}
	}

	e.round++
	res := RoundResult{Round: e.round, Action: action}

	switch action {
	case ActionAttack:
		res.Events = append(res.Events, e.strike(e.player, e.enemy))
		if e.enemy.IsAlive() {
			res.Events = append(res.Events, e.strike(e.enemy, e.player))
		}

	case ActionDefend:
		rec := e.player.Defend()
		res.Events = append(res.Events, RoundEvent{
			Type:      EventDefend,
			ActorID:   e.player.ID(),
			ActorName: e.player.Name(),
			Recovery:  rec,
			Narrative: fmt.Sprintf("%s takes a defensive stance, recovering %d health and %d stamina.",
				e.player.Name(), rec.Health, rec.Stamina),
		})
		res.Events = append(res.Events, e.strike(e.enemy, e.player))
		e.player.ResetStance()

	case ActionFlee:
		e.state = StatePlayerFled
		res.Events = append(res.Events, RoundEvent{
			Type:       EventFlee,
			ActorID:    e.player.ID(),
			ActorName:  e.player.Name(),
			TargetID:   e.enemy.ID(),
			TargetName: e.enemy.Name(),
			Narrative:  fmt.Sprintf("%s flees from %s.", e.player.Name(), e.enemy.Name()),
		})
		res.State = e.state
		e.logRound(res)
		return res

	default:
		res.Events = append(res.Events, RoundEvent{
			Type:      EventWasted,
			ActorID:   e.player.ID(),
			ActorName: e.player.Name(),
			Narrative: "Unknown action. The moment passes.",
		})
	}

	switch {
	case !e.player.IsAlive():
		e.state = StatePlayerLost
		res.Events = append(res.Events, RoundEvent{
			Type:       EventDefeat,
			ActorID:    e.enemy.ID(),
			ActorName:  e.enemy.Name(),
			TargetID:   e.player.ID(),
			TargetName: e.player.Name(),
			Narrative:  fmt.Sprintf("%s has been defeated by %s.", e.player.Name(), e.enemy.Name()),
		})
	case !e.enemy.IsAlive():
		e.state = StatePlayerWon
		e.player.GainExperience(ExperiencePerKill)
		res.Events = append(res.Events, RoundEvent{
			Type:       EventVictory,
			ActorID:    e.player.ID(),
			ActorName:  e.player.Name(),
			TargetID:   e.enemy.ID(),
			TargetName: e.enemy.Name(),
			Amount:     ExperiencePerKill,
			Narrative: fmt.Sprintf("%s defeats %s and gains %d experience.",
				e.player.Name(), e.enemy.Name(), ExperiencePerKill),
		})
	}

	res.State = e.state
	e.logRound(res)
	return res
}

// strike has actor attack target and records the outcome.
func (e *Encounter) strike(actor, target Combatant) RoundEvent {
	dealt := actor.Attack(target)
	return RoundEvent{
		Type:       EventAttack,
		ActorID:    actor.ID(),
		ActorName:  actor.Name(),
		TargetID:   target.ID(),
		TargetName: target.Name(),
		Amount:     dealt,
		Narrative:  fmt.Sprintf("%s hits %s for %d damage.", actor.Name(), target.Name(), dealt),
	}
}

func (e *Encounter) logRound(res RoundResult) {
	p := e.player.Describe()
	en := e.enemy.Describe()
	e.logger.Debug("combat round resolved",
		zap.Int("round", res.Round),
		zap.String("action", res.Action.String()),
		zap.String("state", res.State.String()),
		zap.Int("player_health", p.Health),
		zap.Int("player_stamina", p.Stamina),
		zap.Int("enemy_health", en.Health),
	)
	if res.State.IsTerminal() {
		e.logger.Info("encounter ended",
			zap.String("state", res.State.String()),
			zap.Int("rounds", res.Round),
			zap.String("enemy_id", e.enemy.ID()),
		)
	}
}
