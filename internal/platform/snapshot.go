package platform

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"raycaster/internal/graphics"
	"raycaster/internal/logger"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// SnapshotWriter saves every presented frame as frame_NNN.png or .bmp
type SnapshotWriter struct {
	dir    string
	format string
	scale  int
	frame  int
	scaled *image.RGBA
	log    *logrus.Entry
	create func(path string) (io.WriteCloser, error)
}

// NewSnapshotWriter creates dir if needed. scale enlarges each frame with
// nearest-neighbour sampling.
func NewSnapshotWriter(dir, format string, scale int) (*SnapshotWriter, error) {
	if format != "png" && format != "bmp" {
		return nil, fmt.Errorf("%w: unsupported snapshot format %q", ErrInit, format)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create snapshot dir: %v", ErrInit, err)
	}
	return &SnapshotWriter{
		dir:    dir,
		format: format,
		scale:  max(scale, 1),
		log:    logger.Component("snapshot"),
		create: func(path string) (io.WriteCloser, error) { return os.Create(path) },
	}, nil
}

// Path returns the file name used for frame n
func (s *SnapshotWriter) Path(n int) string {
	return filepath.Join(s.dir, fmt.Sprintf("frame_%03d.%s", n, s.format))
}

// Frames returns how many frames were written
func (s *SnapshotWriter) Frames() int {
	return s.frame
}

// Present encodes the frame to the next file in the sequence
func (s *SnapshotWriter) Present(fb *graphics.Framebuffer) error {
	var img image.Image = fb.Image()
	if s.scale > 1 {
		target := image.Rect(0, 0, fb.Width()*s.scale, fb.Height()*s.scale)
		if s.scaled == nil || s.scaled.Rect != target {
			s.scaled = image.NewRGBA(target)
		}
		draw.NearestNeighbor.Scale(s.scaled, target, fb.Image(), fb.Image().Bounds(), draw.Src, nil)
		img = s.scaled
	}

	path := s.Path(s.frame)
	file, err := s.create(path)
	if err != nil {
		return fmt.Errorf("create snapshot %s: %w", path, err)
	}
	if err := s.encode(file, img); err != nil {
		return fmt.Errorf("snapshot %s: %w", path, err)
	}

	s.log.WithFields(logrus.Fields{"path": path, "frame": s.frame}).Debug("Snapshot written")
	s.frame++
	return nil
}

// encode writes img to file and closes it. A failed close is reported since
// the last buffered bytes may not have reached the disk.
func (s *SnapshotWriter) encode(file io.WriteCloser, img image.Image) (err error) {
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close: %w", cerr)
		}
	}()

	w := bufio.NewWriter(file)
	if s.format == "bmp" {
		err = bmp.Encode(w, img)
	} else {
		err = png.Encode(w, img)
	}
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Close logs the total; files are closed after each frame
func (s *SnapshotWriter) Close() error {
	s.log.WithFields(logrus.Fields{"dir": s.dir, "frames": s.frame}).Info("Snapshots complete")
	return nil
}
