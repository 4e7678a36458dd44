package console

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/rogue/internal/game/session"
)

// Game runs one session against keyboard input. It satisfies server.Service.
type Game struct {
	sess     *session.Session
	source   session.ActionSource
	renderer *Renderer
	logger   *zap.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped bool
	status  session.Status
}

// NewGame wires a session to an action source and renderer.
//
// Precondition: all arguments must be non-nil.
func NewGame(sess *session.Session, source session.ActionSource, renderer *Renderer, logger *zap.Logger) *Game {
	return &Game{sess: sess, source: source, renderer: renderer, logger: logger}
}

// Start draws the opening screen and plays until the session ends, input runs
// out, or Stop is called. It blocks for the whole game.
//
// Postcondition: Returns nil on a normal finish or Stop; otherwise the input error.
func (g *Game) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g.mu.Lock()
	if g.stopped {
		g.mu.Unlock()
		return nil
	}
	g.cancel = cancel
	g.mu.Unlock()

	if n := g.sess.SpawnShortfall(); n > 0 {
		g.renderer.Message(Colorf(Yellow, "The dungeon is cramped: %d enemies found no room.", n))
	}
	g.renderer.Message(Colorize(Dim, "Type ? for help."))
	g.renderer.Screen(g.sess)

	status, err := g.sess.Run(ctx, g.source, func(o session.Outcome) {
		g.renderer.Outcome(g.sess, o)
	})
	g.mu.Lock()
	g.status = status
	g.mu.Unlock()

	if err != nil && ctx.Err() != nil {
		g.logger.Info("game interrupted", zap.Stringer("status", status))
		return nil
	}
	if err != nil {
		return err
	}
	if !status.IsOver() {
		g.renderer.Message(RenderStatus(status, g.sess.Player().Experience))
	}
	g.logger.Info("game finished",
		zap.Stringer("status", status),
		zap.Int("experience", g.sess.Player().Experience),
	)
	return nil
}

// Stop interrupts a running game. A game stopped before Start never plays.
func (g *Game) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopped = true
	if g.cancel != nil {
		g.cancel()
	}
}

// Status returns the session status recorded when Start returned.
func (g *Game) Status() session.Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}
