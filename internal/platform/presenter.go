// Package platform hands finished frames to an output surface: a terminal or
// a sequence of image files. The ebiten window lives in the game package
// because ebiten owns its own loop.
package platform

import (
	"errors"

	"raycaster/internal/graphics"
)

// ErrInit is returned when an output surface cannot be set up.
var ErrInit = errors.New("platform init failed")

// Presenter shows one finished frame per call
type Presenter interface {
	Present(fb *graphics.Framebuffer) error
	Close() error
}
