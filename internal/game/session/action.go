package session

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/cory-johannsen/rogue/internal/game/combat"
	"github.com/cory-johannsen/rogue/internal/game/world"
)

// ActionKind distinguishes the validated actions a collaborator may submit.
type ActionKind int

const (
	ActionMove ActionKind = iota + 1
	ActionCombat
	ActionQuit
)

// Action is a validated request from the player's collaborator.
type Action struct {
	Kind      ActionKind
	Direction world.Direction
	Combat    combat.ActionType
}

// MoveAction requests a step in dir.
func MoveAction(dir world.Direction) Action {
	return Action{Kind: ActionMove, Direction: dir}
}

// CombatAction requests a combat round with a.
func CombatAction(a combat.ActionType) Action {
	return Action{Kind: ActionCombat, Combat: a}
}

// QuitAction requests the session end.
func QuitAction() Action {
	return Action{Kind: ActionQuit}
}

// ActionSource supplies actions to Run. inCombat lets the source interpret
// context-dependent input.
//
// Next returns io.EOF when no further actions will arrive.
type ActionSource interface {
	Next(ctx context.Context, inCombat bool) (Action, error)
}

// Outcome is what applying one action produced.
type Outcome struct {
	Action Action
	// Move is set for ActionMove.
	Move *MoveResult
	// Round is set for a resolved ActionCombat.
	Round *combat.RoundResult
	// Err carries caller misuse such as ErrNotInCombat.
	Err    error
	Status Status
}

// Apply dispatches a single action.
//
// Postcondition: Outcome.Status reflects the session after the action.
func (s *Session) Apply(a Action) Outcome {
	out := Outcome{Action: a}
	switch a.Kind {
	case ActionMove:
		res := s.HandleMove(a.Direction)
		out.Move = &res
	case ActionCombat:
		res, err := s.HandleCombatAction(a.Combat)
		if err != nil {
			out.Err = err
		} else {
			out.Round = &res
		}
	case ActionQuit:
		s.Quit()
	}
	out.Status = s.status
	return out
}

// Run pulls actions from src until the session ends, src is exhausted, or ctx
// is cancelled. observe, when non-nil, sees every outcome.
//
// Postcondition: Returns the final status; the error is non-nil only when src
// failed with something other than io.EOF or ctx was cancelled.
func (s *Session) Run(ctx context.Context, src ActionSource, observe func(Outcome)) (Status, error) {
	for !s.status.IsOver() {
		if err := ctx.Err(); err != nil {
			return s.status, err
		}
		a, err := src.Next(ctx, s.InCombat())
		if errors.Is(err, io.EOF) {
			s.logger.Info("action source exhausted", zap.Stringer("status", s.status))
			return s.status, nil
		}
		if err != nil {
			return s.status, err
		}
		out := s.Apply(a)
		if observe != nil {
			observe(out)
		}
	}
	return s.status, nil
}
