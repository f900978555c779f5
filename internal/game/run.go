package game

import (
	"context"
	"fmt"
	"math"
	"time"

	"raycaster/internal/config"
	"raycaster/internal/platform"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

// RunWindow opens an ebiten window and blocks until it is closed, Escape is
// pressed or ctx is cancelled
func RunWindow(ctx context.Context, g *Game) error {
	g.ctx = ctx

	display := g.cfg.Display
	scale := g.cfg.GetWindowScale()

	ebiten.SetWindowSize(g.fb.Width()*scale, g.fb.Height()*scale)
	ebiten.SetWindowTitle(display.WindowTitle)
	if display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if display.TPS > 0 {
		ebiten.SetTPS(display.TPS)
	}

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("%w: window: %v", platform.ErrInit, err)
	}
	return nil
}

// HeadlessOptions controls a loop without a window
type HeadlessOptions struct {
	Frames int           // Stop after this many frames, 0 runs until cancelled
	Tick   time.Duration // Minimum time between frames, 0 runs flat out
	Done   <-chan struct{}
}

// RunHeadless renders frames into presenter until the frame budget is spent,
// ctx is cancelled or opts.Done closes. Every frame is presented before the
// camera moves.
func RunHeadless(ctx context.Context, g *Game, presenter platform.Presenter, opts HeadlessOptions) error {
	var ticker *time.Ticker
	if opts.Tick > 0 {
		ticker = time.NewTicker(opts.Tick)
		defer ticker.Stop()
	}

	started := time.Now()
	for n := 0; opts.Frames <= 0 || n < opts.Frames; n++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-opts.Done:
			return nil
		default:
		}

		g.RenderFrame()
		if err := presenter.Present(g.fb); err != nil {
			return fmt.Errorf("present frame %d: %w", n, err)
		}
		g.camera.Tick()

		if ticker != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-opts.Done:
				return nil
			case <-ticker.C:
			}
		}
	}

	g.log.WithFields(logrus.Fields{
		"frames":  opts.Frames,
		"elapsed": time.Since(started).Round(time.Millisecond).String(),
	}).Info("Headless run finished")
	return nil
}

// SnapshotTurnRate spreads one full turn over frames, the classic demo sweep
func SnapshotTurnRate(frames int) float64 {
	if frames <= 0 {
		return 0
	}
	return 2 * math.Pi / float64(frames)
}

// Run dispatches on the configured output mode
func Run(ctx context.Context, g *Game) error {
	out := g.cfg.Output
	switch out.Mode {
	case config.ModeTerminal:
		term, err := platform.NewTerminalPresenter()
		if err != nil {
			return err
		}
		defer term.Close()
		return RunHeadless(ctx, g, term, HeadlessOptions{Tick: tickDuration(g.cfg.Display.TPS), Done: term.Done()})

	case config.ModeSnapshot:
		writer, err := platform.NewSnapshotWriter(out.Dir, out.Format, out.Scale)
		if err != nil {
			return err
		}
		defer writer.Close()
		if g.cfg.Camera.TurnRate == 0 {
			g.camera.TurnRate = SnapshotTurnRate(out.Frames)
		}
		return RunHeadless(ctx, g, writer, HeadlessOptions{Frames: out.Frames})

	default:
		return RunWindow(ctx, g)
	}
}

func tickDuration(tps int) time.Duration {
	if tps <= 0 {
		return 0
	}
	return time.Second / time.Duration(tps)
}
