package platform

import (
	"fmt"
	"image"
	"sync"

	"raycaster/internal/graphics"
	"raycaster/internal/logger"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"
)

// halfBlock paints the upper half of a cell in the foreground color and the
// lower half in the background, giving two pixels per cell.
const halfBlock = '▀'

// TerminalPresenter draws frames into a true-color terminal through tcell
type TerminalPresenter struct {
	screen    tcell.Screen
	cells     *image.RGBA
	done      chan struct{}
	doneOnce  sync.Once
	closeOnce sync.Once
}

// NewTerminalPresenter takes over the controlling terminal
func NewTerminalPresenter() (*TerminalPresenter, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("%w: create terminal screen: %v", ErrInit, err)
	}
	return newTerminalPresenter(screen)
}

func newTerminalPresenter(screen tcell.Screen) (*TerminalPresenter, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("%w: init terminal screen: %v", ErrInit, err)
	}
	screen.HideCursor()
	screen.Clear()

	p := &TerminalPresenter{
		screen: screen,
		done:   make(chan struct{}),
	}
	go p.pollEvents()

	w, h := screen.Size()
	logger.Component("terminal").WithFields(logrus.Fields{
		"columns": w,
		"rows":    h,
		"colors":  screen.Colors(),
	}).Info("Terminal presenter ready")
	return p, nil
}

// pollEvents watches for quit keys until the screen is finalized
func (p *TerminalPresenter) pollEvents() {
	for {
		ev := p.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				p.doneOnce.Do(func() { close(p.done) })
			}
		case *tcell.EventResize:
			p.screen.Sync()
		}
	}
}

// Done is closed when the user asks to quit
func (p *TerminalPresenter) Done() <-chan struct{} {
	return p.done
}

// Present downsamples the frame to the terminal grid and shows it
func (p *TerminalPresenter) Present(fb *graphics.Framebuffer) error {
	columns, rows := p.screen.Size()
	if columns <= 0 || rows <= 0 {
		return nil
	}

	target := image.Rect(0, 0, columns, rows*2)
	if p.cells == nil || p.cells.Rect != target {
		p.cells = image.NewRGBA(target)
	}
	src := fb.Image()
	draw.NearestNeighbor.Scale(p.cells, target, src, src.Bounds(), draw.Src, nil)

	for y := 0; y < rows; y++ {
		for x := 0; x < columns; x++ {
			top := p.cells.RGBAAt(x, 2*y)
			bottom := p.cells.RGBAAt(x, 2*y+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			p.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
	p.screen.Show()
	return nil
}

// Close restores the terminal
func (p *TerminalPresenter) Close() error {
	p.closeOnce.Do(p.screen.Fini)
	return nil
}
