// Package config handles application configuration loading and management.
package config

import "github.com/Faultbox/imageplane/internal/imageplane"

// Config holds all application settings.
type Config struct {
	Window  WindowConfig  `yaml:"window" toml:"window"`
	Camera  CameraConfig  `yaml:"camera" toml:"camera"`
	Planes  []PlaneConfig `yaml:"planes" toml:"planes"`
	Debug   DebugConfig   `yaml:"debug" toml:"debug"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title" toml:"title"`
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	Fullscreen bool   `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool   `yaml:"vsync" toml:"vsync"`
}

// CameraConfig holds perspective camera settings.
type CameraConfig struct {
	FOVDegrees float32 `yaml:"fov_degrees" toml:"fov_degrees"`
	Near       float32 `yaml:"near" toml:"near"`
	Far        float32 `yaml:"far" toml:"far"`
}

// Position is a world-space position.
type Position struct {
	X float32 `yaml:"x" toml:"x"`
	Y float32 `yaml:"y" toml:"y"`
	Z float32 `yaml:"z" toml:"z"`
}

// PlaneConfig describes one image plane.
type PlaneConfig struct {
	Image             string   `yaml:"image" toml:"image"`
	WidthRatio        float32  `yaml:"width_ratio" toml:"width_ratio"`
	HeightRatio       float32  `yaml:"height_ratio" toml:"height_ratio"`
	Position          Position `yaml:"position" toml:"position"`
	Strength          float32  `yaml:"strength" toml:"strength"`
	LerpFactor        float32  `yaml:"lerp_factor" toml:"lerp_factor"`
	MoveOnPointerMove bool     `yaml:"move_on_pointer_move" toml:"move_on_pointer_move"`
	MoveOnClick       bool     `yaml:"move_on_click" toml:"move_on_click"`
	Wireframe         bool     `yaml:"wireframe" toml:"wireframe"`
}

// DebugConfig holds debug tooling settings.
type DebugConfig struct {
	ShowPanel      bool   `yaml:"show_panel" toml:"show_panel"`
	ShowGuidelines bool   `yaml:"show_guidelines" toml:"show_guidelines"`
	ScreenshotDir  string `yaml:"screenshot_dir" toml:"screenshot_dir"`
	WatchConfig    bool   `yaml:"watch_config" toml:"watch_config"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Tunable defaults and bounds. They mirror the plane package so the file
// loader and the debug panel clamp to the same range.
const (
	DefaultWidthRatio  = imageplane.DefaultWidthRatio
	DefaultHeightRatio = imageplane.DefaultHeightRatio

	DefaultStrength   = imageplane.DefaultStrength
	DefaultLerpFactor = imageplane.DefaultLerpFactor

	MinStrength   = imageplane.MinStrength
	MaxStrength   = imageplane.MaxStrength
	MinLerpFactor = imageplane.MinLerpFactor
	MaxLerpFactor = imageplane.MaxLerpFactor
)

// DefaultPlane returns a plane config with default tunables for the given image.
func DefaultPlane(image string) PlaneConfig {
	return PlaneConfig{
		Image:             image,
		WidthRatio:        DefaultWidthRatio,
		HeightRatio:       DefaultHeightRatio,
		Strength:          DefaultStrength,
		LerpFactor:        DefaultLerpFactor,
		MoveOnPointerMove: true,
		MoveOnClick:       true,
	}
}

// Default returns a Config with sensible default values.
func Default() *Config {
	plane := DefaultPlane("assets/earth.jpg")
	plane.Position = Position{X: 0, Y: 1000}

	return &Config{
		Window: WindowConfig{
			Title:  "Image Plane",
			Width:  1280,
			Height: 800,
			VSync:  true,
		},
		Camera: CameraConfig{
			FOVDegrees: 75,
			Near:       0.1,
			Far:        1000,
		},
		Planes: []PlaneConfig{plane},
		Debug: DebugConfig{
			ShowPanel:      true,
			ShowGuidelines: false,
			ScreenshotDir:  "screenshots",
			WatchConfig:    true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
