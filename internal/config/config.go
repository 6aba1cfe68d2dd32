package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all renderer configuration values
type Config struct {
	Display   DisplayConfig    `yaml:"display"`
	World     WorldConfig      `yaml:"world"`
	Movement  MovementConfig   `yaml:"movement"`
	Camera    CameraConfig     `yaml:"camera"`
	Graphics  GraphicsConfig   `yaml:"graphics"`
	Reveal    RevealConfig     `yaml:"reveal"`
	Materials []MaterialConfig `yaml:"materials"`
	Assets    AssetsConfig     `yaml:"assets"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
}

type WorldConfig struct {
	TileSize  int `yaml:"tile_size"`
	MapWidth  int `yaml:"map_width"`  // 0 accepts whatever the map file declares
	MapHeight int `yaml:"map_height"` // 0 accepts whatever the map file declares
}

type MovementConfig struct {
	MoveSpeed        float64 `yaml:"move_speed"`        // world units per second
	RotationSpeed    float64 `yaml:"rotation_speed"`    // radians per second
	LookSpeed        float64 `yaml:"look_speed"`        // radians per second
	MouseSensitivity float64 `yaml:"mouse_sensitivity"` // radians per device pixel
}

type CameraConfig struct {
	FieldOfView    float64 `yaml:"field_of_view"`    // degrees
	ViewDistance   float64 `yaml:"view_distance"`    // world units, fog reaches 1 here
	MaxRayDistance float64 `yaml:"max_ray_distance"` // grid units, hard traversal bound
}

type GraphicsConfig struct {
	Rays      int          `yaml:"rays"`    // columns in the framebuffer, 0 means half the screen width
	Workers   int          `yaml:"workers"` // 0 means one per CPU
	Colors    ColorsConfig `yaml:"colors"`
	SideShade float64      `yaml:"side_shade"` // multiplier for horizontal-boundary wall hits
	Overlay   bool         `yaml:"overlay"`
	Crosshair bool         `yaml:"crosshair"`
	ShowHUD   bool         `yaml:"show_hud"`
}

type ColorsConfig struct {
	Sky    [3]int `yaml:"sky"`
	Ground [3]int `yaml:"ground"`
}

type RevealConfig struct {
	Enabled          bool    `yaml:"enabled"`
	ColumnsPerSecond float64 `yaml:"columns_per_second"`
}

// MaterialConfig describes one wall material; its position in the list is
// material id - 1 and also its band in the texture atlas.
type MaterialConfig struct {
	Name     string `yaml:"name"`
	MapColor [3]int `yaml:"map_color"`
}

type AssetsConfig struct {
	TextureAtlas string `yaml:"texture_atlas"`
	MapFile      string `yaml:"map_file"` // empty uses the built-in demo map
}

// Default returns the configuration of the original demo: 1024x512 window,
// 64px tiles, 90 degree field of view and three wall materials.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  1024,
			ScreenHeight: 512,
			WindowTitle:  "3D Raycaster",
		},
		World: WorldConfig{
			TileSize:  64,
			MapWidth:  8,
			MapHeight: 8,
		},
		Movement: MovementConfig{
			MoveSpeed:        100,
			RotationSpeed:    3,
			LookSpeed:        3,
			MouseSensitivity: 0.001,
		},
		Camera: CameraConfig{
			FieldOfView:    90,
			ViewDistance:   7 * 64,
			MaxRayDistance: 100,
		},
		Graphics: GraphicsConfig{
			Colors: ColorsConfig{
				Sky:    [3]int{73, 255, 255},
				Ground: [3]int{36, 219, 0},
			},
			SideShade: 1,
			Overlay:   true,
			Crosshair: true,
			ShowHUD:   true,
		},
		Materials: []MaterialConfig{
			{Name: "blue", MapColor: [3]int{0, 121, 241}},
			{Name: "red", MapColor: [3]int{230, 41, 55}},
			{Name: "green", MapColor: [3]int{0, 228, 48}},
		},
		Assets: AssetsConfig{
			TextureAtlas: "assets/textures/walls.png",
		},
	}
}

// LoadConfig loads the configuration from a YAML file. Fields missing from
// the file keep the values of Default.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", filename, err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML on top of Default and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	cfg, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return cfg
}

// Validate rejects values the renderer cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0 {
		errs = append(errs, fmt.Errorf("display: screen size must be positive, got %dx%d",
			c.Display.ScreenWidth, c.Display.ScreenHeight))
	}
	if c.World.TileSize <= 0 {
		errs = append(errs, fmt.Errorf("world: tile_size must be positive, got %d", c.World.TileSize))
	}
	if c.World.MapWidth < 0 || c.World.MapHeight < 0 {
		errs = append(errs, errors.New("world: map_width and map_height must not be negative"))
	}
	if c.Camera.FieldOfView <= 0 || c.Camera.FieldOfView >= 180 {
		errs = append(errs, fmt.Errorf("camera: field_of_view must be in (0, 180) degrees, got %v", c.Camera.FieldOfView))
	}
	if c.Camera.ViewDistance <= 0 {
		errs = append(errs, fmt.Errorf("camera: view_distance must be positive, got %v", c.Camera.ViewDistance))
	}
	if c.Camera.MaxRayDistance <= 0 {
		errs = append(errs, fmt.Errorf("camera: max_ray_distance must be positive, got %v", c.Camera.MaxRayDistance))
	}
	if c.Graphics.Rays < 0 || c.Graphics.Workers < 0 {
		errs = append(errs, errors.New("graphics: rays and workers must not be negative"))
	}
	if c.Graphics.SideShade < 0 || c.Graphics.SideShade > 1 {
		errs = append(errs, fmt.Errorf("graphics: side_shade must be in [0, 1], got %v", c.Graphics.SideShade))
	}
	if c.Reveal.Enabled && c.Reveal.ColumnsPerSecond <= 0 {
		errs = append(errs, errors.New("reveal: columns_per_second must be positive when enabled"))
	}
	if len(c.Materials) == 0 {
		errs = append(errs, errors.New("materials: at least one wall material is required"))
	}
	if len(c.Materials) > 9 {
		errs = append(errs, fmt.Errorf("materials: at most 9 materials fit the map format, got %d", len(c.Materials)))
	}
	if c.Assets.TextureAtlas == "" {
		errs = append(errs, errors.New("assets: texture_atlas is required"))
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

func (c *Config) GetTileSize() float64 {
	return float64(c.World.TileSize)
}

// GetRayCount returns the number of framebuffer columns.
func (c *Config) GetRayCount() int {
	if c.Graphics.Rays > 0 {
		return c.Graphics.Rays
	}
	return max(1, c.Display.ScreenWidth/2)
}

// GetCameraFOV returns the horizontal field of view in radians.
func (c *Config) GetCameraFOV() float64 {
	return c.Camera.FieldOfView * math.Pi / 180
}

func (c *Config) GetViewDistance() float64 {
	return c.Camera.ViewDistance
}

func (c *Config) GetMaxRayDistance() float64 {
	return c.Camera.MaxRayDistance
}

func (c *Config) GetMoveSpeed() float64 {
	return c.Movement.MoveSpeed
}

func (c *Config) GetRotSpeed() float64 {
	return c.Movement.RotationSpeed
}

// GetMaterialCount returns N, the number of wall materials and atlas bands.
func (c *Config) GetMaterialCount() int {
	return len(c.Materials)
}

func (c *Config) GetSkyColor() color.RGBA {
	return RGBA(c.Graphics.Colors.Sky)
}

func (c *Config) GetGroundColor() color.RGBA {
	return RGBA(c.Graphics.Colors.Ground)
}

// GetMaterialMapColor returns the overlay color of a material id (1-based).
func (c *Config) GetMaterialMapColor(id int) color.RGBA {
	if id < 1 || id > len(c.Materials) {
		return color.RGBA{0, 0, 0, 255}
	}
	return RGBA(c.Materials[id-1].MapColor)
}

// RGBA converts a YAML [r, g, b] triple into an opaque color, clamping each
// channel to a byte.
func RGBA(c [3]int) color.RGBA {
	ch := func(v int) uint8 {
		return uint8(max(0, min(255, v)))
	}
	return color.RGBA{ch(c[0]), ch(c[1]), ch(c[2]), 255}
}
