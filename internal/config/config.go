package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"draglist/internal/domain"
	"draglist/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version    int              `toml:"version"`
	Activation ActivationConfig `toml:"activation"`
	AutoScroll AutoScrollConfig `toml:"autoscroll"`
	UISettings UISettings       `toml:"ui"`
}

// ActivationConfig mirrors domain.ActivationConfig for the config file
type ActivationConfig struct {
	DelayMs    int     `toml:"delay_ms"`
	DistancePx float64 `toml:"distance_px"`
}

// AutoScrollConfig mirrors domain.AutoScrollConfig for the config file
type AutoScrollConfig struct {
	Enabled      bool    `toml:"enabled"`
	ThresholdPx  float64 `toml:"threshold_px"`
	MaxSpeed     float64 `toml:"max_speed"`
	Acceleration float64 `toml:"acceleration"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Items          []string `toml:"items"`
	AutosaveOnExit bool     `toml:"autosave_on_exit"`
}

// EngineActivation converts to the engine activation config
func (c *Config) EngineActivation() domain.ActivationConfig {
	return domain.ActivationConfig{
		DelayMs:    c.Activation.DelayMs,
		DistancePx: c.Activation.DistancePx,
	}
}

// EngineAutoScroll converts to the engine auto-scroll config
func (c *Config) EngineAutoScroll() domain.AutoScrollConfig {
	return domain.AutoScrollConfig{
		Enabled:            c.AutoScroll.Enabled,
		ThresholdPx:        c.AutoScroll.ThresholdPx,
		MaxSpeedPxPerFrame: c.AutoScroll.MaxSpeed,
		Acceleration:       c.AutoScroll.Acceleration,
	}
}

// Service handles configuration management
type Service interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// service is the concrete implementation
type service struct {
	bus      eventbus.EventBus
	filePath string
}

// NewService creates a new config service reading from path. An empty path
// uses .draglist.toml in the working directory.
func NewService(path string, bus eventbus.EventBus) Service {
	if path == "" {
		path = ".draglist.toml"
	}
	return &service{bus: bus, filePath: path}
}

// Load loads the configuration from the service's path, falling back to
// defaults when the file does not exist
func (cs *service) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cs.publishLoaded(cfg)
		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}
	cs.publishLoaded(cfg)
	return cfg, nil
}

// Save saves the configuration to the service's path
func (cs *service) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(domain.ConfigSavedEvent{})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. The file is decoded
// over the defaults, so fields the file leaves out keep their default values
// and explicitly configured zeroes survive.
func (cs *service) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *service) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (cs *service) publishLoaded(cfg *Config) {
	if cs.bus == nil {
		return
	}
	cs.bus.Publish(domain.ConfigLoadedEvent{
		Activation: cfg.EngineActivation(),
		AutoScroll: cfg.EngineAutoScroll(),
	})
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Activation: ActivationConfig{
			DelayMs:    150,
			DistancePx: 5,
		},
		AutoScroll: AutoScrollConfig{
			Enabled:      true,
			ThresholdPx:  3,
			MaxSpeed:     2,
			Acceleration: 1.5,
		},
		UISettings: UISettings{
			Items: []string{
				"Write project brief",
				"Review open pull requests",
				"Prepare sprint demo",
				"Update deployment runbook",
				"Triage incoming issues",
				"Refactor settings page",
				"Draft release notes",
				"Pair on onboarding flow",
				"Clean up feature flags",
				"Plan next milestone",
			},
			AutosaveOnExit: true,
		},
	}
}
