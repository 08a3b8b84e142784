package oerror

import (
	"fmt"

	"github.com/oomph-ac/motion/game"
)

var (
	ErrDepthExceeded = NewMotionError(game.ErrorDepthExceeded)
	ErrNoCell        = NewMotionError(game.ErrorNoCell)
	ErrNilObject     = NewMotionError(game.ErrorNilObject)
	ErrNoSpheres     = NewMotionError(game.ErrorNoSpheres)
	ErrPanicked      = NewMotionError(game.ErrorPanicked)
	ErrRegionClosed  = NewMotionError(game.ErrorRegionClosed)
)

type MotionError struct {
	Err string
}

func NewMotionError(err string) *MotionError {
	return &MotionError{Err: err}
}

// New formats a new MotionError.
func New(format string, args ...interface{}) *MotionError {
	return &MotionError{Err: fmt.Sprintf(format, args...)}
}

func (e *MotionError) Error() string {
	return e.Err
}
