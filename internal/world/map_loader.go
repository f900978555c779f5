package world

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"raycaster/internal/logger"

	"github.com/sirupsen/logrus"
)

// ErrMapFormat is returned when a map file is empty or not rectangular.
var ErrMapFormat = errors.New("malformed map")

// Grid is a fixed-size rectangular tile map.
type Grid struct {
	Width  int
	Height int
	cells  []Cell
	// Starting position from the map file ('+'), -1 when absent
	StartX int
	StartY int
}

// NewGrid builds a grid from equal-length rows. Spaces and '.' are empty,
// digits are walls, '+' marks the start tile.
func NewGrid(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: map contains no rows", ErrMapFormat)
	}

	width := len(rows[0])
	if width == 0 {
		return nil, fmt.Errorf("%w: first row is empty", ErrMapFormat)
	}

	g := &Grid{
		Width:  width,
		Height: len(rows),
		cells:  make([]Cell, width*len(rows)),
		StartX: -1,
		StartY: -1,
	}

	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has inconsistent width: expected %d, got %d", ErrMapFormat, y+1, width, len(row))
		}
		for x := 0; x < width; x++ {
			cell, start, err := parseMapCharacter(row[x])
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %d: %v", ErrMapFormat, y+1, x+1, err)
			}
			if start {
				g.StartX, g.StartY = x, y
			}
			g.cells[y*width+x] = cell
		}
	}

	return g, nil
}

// parseMapCharacter converts a map character to a cell and start marker flag
func parseMapCharacter(char byte) (Cell, bool, error) {
	switch {
	case char == ' ' || char == '.':
		return Empty, false, nil
	case char == '+':
		return Empty, true, nil
	case char >= '0' && char <= '9':
		return Cell(char), false, nil
	default:
		return Empty, false, fmt.Errorf("unexpected character %q", char)
	}
}

// CellAt returns the cell at integer tile coordinates. Out-of-range queries
// report ok=false and an Empty cell.
func (g *Grid) CellAt(x, y int) (Cell, bool) {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return Empty, false
	}
	return g.cells[y*g.Width+x], true
}

// HasStart reports whether the map defined a '+' start tile
func (g *Grid) HasStart() bool {
	return g.StartX >= 0 && g.StartY >= 0
}

// StartPose returns the center of the start tile facing the given angle
func (g *Grid) StartPose(angle float64) Pose {
	return Pose{X: float64(g.StartX) + 0.5, Y: float64(g.StartY) + 0.5, Angle: angle}
}

// LoadGrid loads a map from the specified file path
func LoadGrid(mapPath string) (*Grid, error) {
	file, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", mapPath, err)
	}
	defer file.Close()

	g, err := ReadGrid(file)
	if err != nil {
		return nil, fmt.Errorf("map file %s: %w", mapPath, err)
	}

	logger.Component("map").WithFields(logrus.Fields{
		"path":   mapPath,
		"width":  g.Width,
		"height": g.Height,
	}).Info("Map loaded")
	return g, nil
}

// ReadGrid parses map rows from r. Lines starting with '#' are comments; rows
// are right-padded with empty cells to the widest row so trailing spaces
// trimmed by editors do not break the map.
func ReadGrid(r io.Reader) (*Grid, error) {
	var rows []string
	width := 0
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		// Skip empty lines and comment lines (lines starting with #)
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rows = append(rows, line)
		width = max(width, len(line))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading map: %w", err)
	}

	for i, row := range rows {
		if len(row) < width {
			rows[i] = row + strings.Repeat(" ", width-len(row))
		}
	}

	return NewGrid(rows)
}
