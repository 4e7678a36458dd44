package console

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/cory-johannsen/rogue/internal/game/session"
)

var _ session.ActionSource = (*LineSource)(nil)

// LineSource reads keyboard lines and turns them into session actions.
// Help, look and unknown commands are answered locally and never reach the session.
type LineSource struct {
	lines    chan string
	err      error
	renderer *Renderer
	logger   *zap.Logger
	// OnLook redraws the screen; nil disables the look command.
	OnLook func()
}

// NewLineSource starts reading lines from r in the background.
// The reader goroutine exits when r reports EOF or an error; a read blocked on
// a terminal is abandoned at process exit.
//
// Precondition: r, renderer and logger must be non-nil.
func NewLineSource(r io.Reader, renderer *Renderer, logger *zap.Logger) *LineSource {
	ls := &LineSource{
		lines:    make(chan string),
		renderer: renderer,
		logger:   logger,
	}
	go ls.scan(r)
	return ls
}

func (ls *LineSource) scan(r io.Reader) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		ls.lines <- sc.Text()
	}
	ls.err = sc.Err()
	close(ls.lines)
}

// Next blocks until a line maps to an action, input ends, or ctx is cancelled.
//
// Postcondition: Returns io.EOF once input is exhausted.
func (ls *LineSource) Next(ctx context.Context, inCombat bool) (session.Action, error) {
	for {
		ls.prompt(inCombat)
		var line string
		select {
		case <-ctx.Done():
			return session.Action{}, ctx.Err()
		case l, ok := <-ls.lines:
			if !ok {
				if ls.err != nil {
					return session.Action{}, fmt.Errorf("reading input: %w", ls.err)
				}
				return session.Action{}, io.EOF
			}
			line = l
		}

		in := Parse(line, inCombat)
		ls.logger.Debug("input parsed",
			zap.String("line", line),
			zap.Int("kind", int(in.Kind)),
			zap.Bool("in_combat", inCombat),
		)
		switch in.Kind {
		case InputAction:
			return in.Action, nil
		case InputHelp:
			ls.renderer.Help(inCombat)
		case InputLook:
			if ls.OnLook != nil {
				ls.OnLook()
			}
		case InputUnknown:
			ls.renderer.Message(Colorf(Dim, "Unknown command %q. Type ? for help.", in.Raw))
		}
	}
}

func (ls *LineSource) prompt(inCombat bool) {
	if inCombat {
		ls.renderer.print(Colorize(BrightRed, "combat> "))
		return
	}
	ls.renderer.print(Colorize(BrightGreen, "> "))
}
