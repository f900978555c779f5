package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all renderer configuration values
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	Camera   CameraConfig   `yaml:"camera"`
	Raycast  RaycastConfig  `yaml:"raycast"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Assets   AssetsConfig   `yaml:"assets"`
	Level    LevelConfig    `yaml:"level"`
	Logging  LoggingConfig  `yaml:"logging"`
	Debug    DebugConfig    `yaml:"debug"`
	Output   OutputConfig   `yaml:"output"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
	Scale        int    `yaml:"scale"` // Window pixels per framebuffer pixel
	TPS          int    `yaml:"tps"`
}

type CameraConfig struct {
	FieldOfView float64 `yaml:"field_of_view"`
	StartX      float64 `yaml:"start_x"`
	StartY      float64 `yaml:"start_y"`
	StartAngle  float64 `yaml:"start_angle"`
	TurnRate    float64 `yaml:"turn_rate"` // Radians per tick, 0 keeps the pose still
}

// RaycastConfig controls the per-column wall search
type RaycastConfig struct {
	March       string  `yaml:"march"` // "step" or "dda"
	RayStep     float64 `yaml:"ray_step"`
	MaxDistance float64 `yaml:"max_distance"`
	Workers     int     `yaml:"workers"` // Column workers, 1 renders inline, 0 uses every CPU
}

type GraphicsConfig struct {
	Colors  ColorsConfig  `yaml:"colors"`
	Shading ShadingConfig `yaml:"shading"`
	Sprite  SpriteConfig  `yaml:"sprite"`
	Weapon  WeaponConfig  `yaml:"weapon"`
}

type ColorsConfig struct {
	SkyTop       [3]int `yaml:"sky_top"`
	SkyBottom    [3]int `yaml:"sky_bottom"`
	GroundTop    [3]int `yaml:"ground_top"`
	GroundBottom [3]int `yaml:"ground_bottom"`
}

// ShadingConfig holds the per-orientation channel multipliers for wall faces
type ShadingConfig struct {
	Vertical   float64 `yaml:"vertical"`
	Horizontal float64 `yaml:"horizontal"`
}

type SpriteConfig struct {
	TransparentKey [3]int  `yaml:"transparent_key"`
	MaxWidth       int     `yaml:"max_width"`
	VerticalBias   float64 `yaml:"vertical_bias"`
	SortByDistance bool    `yaml:"sort_by_distance"`
}

// WeaponConfig places a sprite-atlas texture in a fixed square anchored to
// the bottom edge, right of the screen center by XOffset pixels
type WeaponConfig struct {
	Enabled bool `yaml:"enabled"`
	Texture int  `yaml:"texture"`
	XOffset int  `yaml:"x_offset"`
	Size    int  `yaml:"size"` // Edge of the on-screen square in pixels
}

type AssetsConfig struct {
	Map         string `yaml:"map"`
	WallAtlas   string `yaml:"wall_atlas"`
	SpriteAtlas string `yaml:"sprite_atlas"`
}

type LevelConfig struct {
	Sprites []SpriteSpawn `yaml:"sprites"`
}

// SpriteSpawn places one billboard sprite in the level
type SpriteSpawn struct {
	Texture int     `yaml:"texture"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Size    float64 `yaml:"size"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"` // Empty logs to stderr
}

type DebugConfig struct {
	ShowStats     bool `yaml:"show_stats"`
	StatsInterval int  `yaml:"stats_interval"` // Frames between stat log lines
}

// OutputConfig selects where frames are presented
type OutputConfig struct {
	Mode   string `yaml:"mode"` // "window", "terminal" or "snapshot"
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // "png" or "bmp"
	Frames int    `yaml:"frames"`
	Scale  int    `yaml:"scale"`
}

// Output modes
const (
	ModeWindow   = "window"
	ModeTerminal = "terminal"
	ModeSnapshot = "snapshot"
)

// March strategies
const (
	MarchStep = "step"
	MarchDDA  = "dda"
)

var GlobalConfig *Config

// Default returns the configuration used when a field is left out of config.yaml
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  640,
			ScreenHeight: 480,
			WindowTitle:  "raycaster",
			Scale:        1,
			TPS:          60,
		},
		Camera: CameraConfig{
			FieldOfView: math.Pi / 3,
			StartX:      3.456,
			StartY:      2.345,
			StartAngle:  1.523,
		},
		Raycast: RaycastConfig{
			March:       MarchStep,
			RayStep:     0.01,
			MaxDistance: 20,
			Workers:     1,
		},
		Graphics: GraphicsConfig{
			Colors: ColorsConfig{
				SkyTop:       [3]int{40, 60, 140},
				SkyBottom:    [3]int{160, 190, 230},
				GroundTop:    [3]int{70, 60, 50},
				GroundBottom: [3]int{120, 110, 90},
			},
			Shading: ShadingConfig{
				Vertical:   1.0,
				Horizontal: 0.7,
			},
			Sprite: SpriteConfig{
				TransparentKey: [3]int{255, 0, 255},
				MaxWidth:       1000,
				VerticalBias:   1.0,
			},
			Weapon: WeaponConfig{
				Texture: 0,
				XOffset: 100,
				Size:    400,
			},
		},
		Assets: AssetsConfig{
			Map:         "assets/level.map",
			WallAtlas:   "assets/walltext.png",
			SpriteAtlas: "assets/monsters.png",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Debug: DebugConfig{
			StatsInterval: 120,
		},
		Output: OutputConfig{
			Mode:   ModeWindow,
			Dir:    "out",
			Format: "png",
			Frames: 360,
			Scale:  1,
		},
	}
}

// LoadConfig loads the configuration from a YAML file on top of Default
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config := Default()
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}

	// Set global config for easy access
	GlobalConfig = config

	return config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Validate rejects values the renderer cannot work with
func (c *Config) Validate() error {
	var errs []error
	if c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0 {
		errs = append(errs, fmt.Errorf("display size must be positive, got %dx%d", c.Display.ScreenWidth, c.Display.ScreenHeight))
	}
	if c.Camera.FieldOfView <= 0 || c.Camera.FieldOfView >= math.Pi {
		errs = append(errs, fmt.Errorf("field_of_view must be in (0, pi), got %g", c.Camera.FieldOfView))
	}
	if c.Raycast.RayStep <= 0 {
		errs = append(errs, fmt.Errorf("ray_step must be positive, got %g", c.Raycast.RayStep))
	}
	if c.Raycast.MaxDistance <= 0 {
		errs = append(errs, fmt.Errorf("max_distance must be positive, got %g", c.Raycast.MaxDistance))
	}
	switch c.Raycast.March {
	case MarchStep, MarchDDA:
	default:
		errs = append(errs, fmt.Errorf("unknown march %q", c.Raycast.March))
	}
	if c.Graphics.Shading.Vertical < 0 || c.Graphics.Shading.Horizontal < 0 {
		errs = append(errs, fmt.Errorf("shading factors must not be negative, got %+v", c.Graphics.Shading))
	}
	if c.Graphics.Sprite.MaxWidth <= 0 {
		errs = append(errs, fmt.Errorf("sprite max_width must be positive, got %d", c.Graphics.Sprite.MaxWidth))
	}
	if w := c.Graphics.Weapon; w.Enabled && (w.Size <= 0 || w.Texture < 0) {
		errs = append(errs, fmt.Errorf("weapon needs a positive size and a texture index, got %+v", w))
	}
	switch c.Output.Mode {
	case ModeWindow, ModeTerminal, ModeSnapshot:
	default:
		errs = append(errs, fmt.Errorf("unknown output mode %q", c.Output.Mode))
	}
	return errors.Join(errs...)
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetCameraFOV() float64 {
	return c.Camera.FieldOfView
}

func (c *Config) GetMaxDistance() float64 {
	return c.Raycast.MaxDistance
}

// GetWorkers returns the column worker count. 0 asks for one worker per CPU;
// negative values render inline.
func (c *Config) GetWorkers() int {
	if c.Raycast.Workers < 0 {
		return 1
	}
	return c.Raycast.Workers
}

func (c *Config) GetWindowScale() int {
	if c.Display.Scale < 1 {
		return 1
	}
	return c.Display.Scale
}
