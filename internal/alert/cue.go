package alert

import (
	"io"
	"os"
)

// Cue is the single audio handle owned by the controller. Play may fail
// (no tty, closed pipe); the controller logs and carries on.
type Cue interface {
	Play() error
}

// Bell rings the terminal bell.
type Bell struct {
	W io.Writer
}

func NewBell() Bell { return Bell{W: os.Stdout} }

func (b Bell) Play() error {
	_, err := b.W.Write([]byte{0x07})
	return err
}

// Silent is the cue used when sound is disabled.
type Silent struct{}

func (Silent) Play() error { return nil }
