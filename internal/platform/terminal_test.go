package platform

import (
	"image/color"
	"testing"
	"time"

	"raycaster/internal/graphics"

	"github.com/gdamore/tcell/v2"
)

func newSimulatedPresenter(t *testing.T, columns, rows int) (*TerminalPresenter, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	p, err := newTerminalPresenter(screen)
	if err != nil {
		t.Fatalf("newTerminalPresenter failed: %v", err)
	}
	screen.SetSize(columns, rows)
	t.Cleanup(func() { p.Close() })
	return p, screen
}

func TestTerminalPresenterHalfBlocks(t *testing.T) {
	p, screen := newSimulatedPresenter(t, 8, 4)

	top := color.RGBA{200, 10, 10, 255}
	bottom := color.RGBA{10, 10, 200, 255}
	fb := graphics.NewFramebuffer(16, 16)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			c := top
			if y >= 8 {
				c = bottom
			}
			fb.Set(x, y, c)
		}
	}

	if err := p.Present(fb); err != nil {
		t.Fatalf("Present failed: %v", err)
	}

	cells, width, height := screen.GetContents()
	if width != 8 || height != 4 {
		t.Fatalf("Expected 8x4 screen, got %dx%d", width, height)
	}

	testCases := []struct {
		name   string
		row    int
		fg, bg color.RGBA
	}{
		{"upper rows", 0, top, top},
		{"lower rows", 3, bottom, bottom},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cell := cells[tc.row*width+2]
			if len(cell.Runes) == 0 || cell.Runes[0] != halfBlock {
				t.Fatalf("Expected half block rune, got %q", cell.Runes)
			}
			fg, bg, _ := cell.Style.Decompose()
			wantFG := tcell.NewRGBColor(int32(tc.fg.R), int32(tc.fg.G), int32(tc.fg.B))
			wantBG := tcell.NewRGBColor(int32(tc.bg.R), int32(tc.bg.G), int32(tc.bg.B))
			if fg != wantFG || bg != wantBG {
				t.Errorf("Cell colors fg=%v bg=%v, expected fg=%v bg=%v", fg, bg, wantFG, wantBG)
			}
		})
	}
}

func TestTerminalPresenterQuitKey(t *testing.T) {
	p, screen := newSimulatedPresenter(t, 8, 4)

	select {
	case <-p.Done():
		t.Fatal("Done closed before any key was pressed")
	default:
	}

	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	select {
	case <-p.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Escape did not close Done")
	}
}

func TestTerminalPresenterCloseIsIdempotent(t *testing.T) {
	p, _ := newSimulatedPresenter(t, 4, 2)
	if err := p.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Second close failed: %v", err)
	}
}
