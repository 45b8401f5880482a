package core

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type WindowConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	Resizable  bool   `yaml:"resizable"`
	VSync      bool   `yaml:"vsync"`
	Fullscreen bool   `yaml:"fullscreen"`
	// Samples is the MSAA sample count requested for the default framebuffer.
	Samples int `yaml:"samples"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is the top-level YAML document read by applications.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Log    LogConfig    `yaml:"log"`
	// Lights is an optional path to a lighting rig file.
	Lights string `yaml:"lights"`
	// Model is an optional path to a .gltf, .glb or .obj file.
	Model string `yaml:"model"`
	// Font is an optional TrueType/OpenType font path; empty selects the built-in face.
	Font string `yaml:"font"`
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:     1280,
		Height:    720,
		Title:     "scenegl",
		Resizable: true,
		VSync:     true,
		Samples:   4,
	}
}

func DefaultConfig() Config {
	return Config{
		Window: DefaultWindowConfig(),
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// ParseConfig decodes YAML on top of DefaultConfig, so absent keys keep their defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		return cfg, fmt.Errorf("parse config: window size %dx%d is not positive", cfg.Window.Width, cfg.Window.Height)
	}
	return cfg, nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("read config %q: %w", path, err)
	}
	return ParseConfig(data)
}
