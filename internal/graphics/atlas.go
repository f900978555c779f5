package graphics

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"

	"raycaster/internal/logger"

	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
)

var (
	// ErrAssetLoad is returned when a texture file is missing or cannot be decoded.
	ErrAssetLoad = errors.New("texture asset load failed")
	// ErrTextureFormat is returned when an atlas is not a strip of square tiles.
	ErrTextureFormat = errors.New("malformed texture atlas")
)

// Atlas is a horizontal strip of square textures. Texture i occupies pixel
// columns [i*Size, (i+1)*Size).
type Atlas struct {
	Size  int // Edge length of one texture in pixels
	Count int // Number of textures in the strip

	width    int
	pix      []color.RGBA
	sentinel color.RGBA
	keyed    bool
}

// AtlasOption customises atlas construction
type AtlasOption func(*Atlas)

// WithColorKey makes pixels with alpha below 128 read as key and makes key the
// out-of-range sentinel, so sprite blits skip both.
func WithColorKey(key color.RGBA) AtlasOption {
	return func(a *Atlas) {
		a.sentinel = key
		a.keyed = true
	}
}

// NewAtlas converts img to 24-bit RGB texels and validates the strip layout.
func NewAtlas(img image.Image, opts ...AtlasOption) (*Atlas, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: empty image %dx%d", ErrTextureFormat, w, h)
	}
	if w%h != 0 {
		return nil, fmt.Errorf("%w: width %d is not a multiple of height %d", ErrTextureFormat, w, h)
	}

	a := &Atlas{
		Size:     h,
		Count:    w / h,
		width:    w,
		pix:      make([]color.RGBA, w*h),
		sentinel: color.RGBA{A: 255},
	}
	for _, opt := range opts {
		opt(a)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			n := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			c := color.RGBA{n.R, n.G, n.B, 255}
			if a.keyed && n.A < 128 {
				c = a.sentinel
			}
			a.pix[y*w+x] = c
		}
	}

	return a, nil
}

// LoadAtlas decodes a PNG or BMP atlas from disk.
func LoadAtlas(path string, opts ...AtlasOption) (*Atlas, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetLoad, err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrAssetLoad, path, err)
	}

	a, err := NewAtlas(img, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger.Component("textures").WithFields(logrus.Fields{
		"path":   path,
		"format": format,
		"size":   a.Size,
		"count":  a.Count,
	}).Info("Atlas loaded")
	return a, nil
}

// At returns texel (x, y) of texture index. Any out-of-range coordinate
// returns the atlas sentinel instead of failing.
func (a *Atlas) At(index, x, y int) color.RGBA {
	if index < 0 || index >= a.Count || x < 0 || x >= a.Size || y < 0 || y >= a.Size {
		return a.sentinel
	}
	return a.pix[y*a.width+index*a.Size+x]
}

// Sentinel is the color returned for out-of-range lookups
func (a *Atlas) Sentinel() color.RGBA {
	return a.sentinel
}

// TextureStore owns the wall and sprite atlases for a session.
type TextureStore struct {
	Walls   *Atlas
	Sprites *Atlas
}

// LoadTextureStore loads both atlases. Sprite texels that are transparent in
// the source image become the key color.
func LoadTextureStore(wallPath, spritePath string, key color.RGBA) (*TextureStore, error) {
	walls, err := LoadAtlas(wallPath)
	if err != nil {
		return nil, fmt.Errorf("wall atlas: %w", err)
	}
	sprites, err := LoadAtlas(spritePath, WithColorKey(key))
	if err != nil {
		return nil, fmt.Errorf("sprite atlas: %w", err)
	}
	return &TextureStore{Walls: walls, Sprites: sprites}, nil
}
