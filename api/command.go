package api

import (
	"context"
	"errors"

	"github.com/lixenwraith/genius/game"
)

// ErrLoopUnavailable is returned when the game loop does not take a command in time
var ErrLoopUnavailable = errors.New("game loop unavailable")

// Controls is the controller surface reachable over HTTP
type Controls interface {
	Start() bool
	Stop()
	AcknowledgeFailure() bool
	SubmitTap(cell int) bool
	SetDifficulty(l game.Level) bool
}

// Command is a controller call marshalled onto the game loop goroutine
type Command struct {
	Name string
	run  func(Controls) bool
	done chan bool
}

// Execute runs the command against c and reports whether it was accepted
// Called by the game loop only
func (cmd Command) Execute(c Controls) {
	cmd.done <- cmd.run(c)
}

// dispatcher sends commands to the loop and waits for their outcome
type dispatcher struct {
	commands chan Command
}

func (d dispatcher) do(ctx context.Context, name string, run func(Controls) bool) (bool, error) {
	cmd := Command{Name: name, run: run, done: make(chan bool, 1)}
	select {
	case d.commands <- cmd:
	case <-ctx.Done():
		return false, ErrLoopUnavailable
	}
	select {
	case ok := <-cmd.done:
		return ok, nil
	case <-ctx.Done():
		return false, ErrLoopUnavailable
	}
}
