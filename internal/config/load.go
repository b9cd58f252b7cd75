package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/imageplane/pkg/math"
)

// Load loads configuration with priority: defaults < file < flags.
// It returns the path of the file that was read, or "" when none was found.
func Load() (*Config, string, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := LoadFile(cfg, configPath); err != nil {
			return nil, "", fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)
	cfg.Validate()

	return cfg, configPath, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./imageplane.yaml",
		"./imageplane.yml",
		"./imageplane.toml",
		filepath.Join(ConfigDir(), "config.yaml"),
		filepath.Join(ConfigDir(), "config.toml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "ImagePlane")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "ImagePlane")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "imageplane")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "imageplane")
	}
}

// LoadFile merges a YAML or TOML file into cfg. The format is picked by extension.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	unmarshal := yaml.Unmarshal
	if isTOML(path) {
		unmarshal = toml.Unmarshal
	}

	if err := unmarshal(data, cfg); err != nil {
		return err
	}

	// Plane entries replace the default list. Fields a plane leaves out keep
	// their defaults instead of decoding to zero.
	var planes planeList
	if err := unmarshal(data, &planes); err != nil {
		return err
	}
	if planes.Planes != nil {
		cfg.Planes = make([]PlaneConfig, 0, len(planes.Planes))
		for _, p := range planes.Planes {
			cfg.Planes = append(cfg.Planes, p.apply())
		}
	}
	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

type planeList struct {
	Planes []planeOverrides `yaml:"planes" toml:"planes"`
}

type planeOverrides struct {
	Image             string    `yaml:"image" toml:"image"`
	WidthRatio        *float32  `yaml:"width_ratio" toml:"width_ratio"`
	HeightRatio       *float32  `yaml:"height_ratio" toml:"height_ratio"`
	Position          *Position `yaml:"position" toml:"position"`
	Strength          *float32  `yaml:"strength" toml:"strength"`
	LerpFactor        *float32  `yaml:"lerp_factor" toml:"lerp_factor"`
	MoveOnPointerMove *bool     `yaml:"move_on_pointer_move" toml:"move_on_pointer_move"`
	MoveOnClick       *bool     `yaml:"move_on_click" toml:"move_on_click"`
	Wireframe         *bool     `yaml:"wireframe" toml:"wireframe"`
}

func (o planeOverrides) apply() PlaneConfig {
	p := DefaultPlane(o.Image)
	if o.WidthRatio != nil {
		p.WidthRatio = *o.WidthRatio
	}
	if o.HeightRatio != nil {
		p.HeightRatio = *o.HeightRatio
	}
	if o.Position != nil {
		p.Position = *o.Position
	}
	if o.Strength != nil {
		p.Strength = *o.Strength
	}
	if o.LerpFactor != nil {
		p.LerpFactor = *o.LerpFactor
	}
	if o.MoveOnPointerMove != nil {
		p.MoveOnPointerMove = *o.MoveOnPointerMove
	}
	if o.MoveOnClick != nil {
		p.MoveOnClick = *o.MoveOnClick
	}
	if o.Wireframe != nil {
		p.Wireframe = *o.Wireframe
	}
	return p
}

// Validate clamps tunables to the debug panel bounds and fills in missing values.
func (c *Config) Validate() {
	if c.Window.Width <= 0 {
		c.Window.Width = 1280
	}
	if c.Window.Height <= 0 {
		c.Window.Height = 800
	}
	if c.Camera.FOVDegrees <= 0 || c.Camera.FOVDegrees >= 180 {
		c.Camera.FOVDegrees = 75
	}
	if c.Camera.Near <= 0 {
		c.Camera.Near = 0.1
	}
	if c.Camera.Far <= c.Camera.Near {
		c.Camera.Far = 1000
	}

	for i := range c.Planes {
		p := &c.Planes[i]
		if p.WidthRatio <= 0 || p.WidthRatio > 1 {
			p.WidthRatio = DefaultWidthRatio
		}
		if p.HeightRatio <= 0 || p.HeightRatio > 1 {
			p.HeightRatio = DefaultHeightRatio
		}
		p.Strength = math.Clamp(p.Strength, MinStrength, MaxStrength)
		p.LerpFactor = math.Clamp(p.LerpFactor, MinLerpFactor, MaxLerpFactor)
	}
}
