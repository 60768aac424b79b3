// Package config holds cardfight's run configuration: which content to load,
// which fight to start and how to present it. Values come from defaults, an
// optional YAML file, CARDFIGHT_* environment variables and finally
// command-line flags, each layer overriding the last.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nathoo/cardfight/types"
)

// Config is one run's settings.
type Config struct {
	// Seed for the fight's RNG. 0 picks a time-based seed.
	Seed int64 `yaml:"seed"`
	// Content is a directory of .lua files. Empty uses the embedded sample content.
	Content string `yaml:"content"`
	// Encounter names a content encounter. When set it supplies Player and Enemies.
	Encounter string `yaml:"encounter"`
	// Player and Enemies pick the combatants by library name.
	Player  string   `yaml:"player"`
	Enemies []string `yaml:"enemies"`
	// Trace prints every engine event.
	Trace bool `yaml:"trace"`
	// Plain forces the line-oriented interface even on a terminal.
	Plain bool `yaml:"plain"`
}

// Default returns the built-in knight-versus-slime setup.
func Default() *Config {
	return &Config{
		Player:  "knight",
		Enemies: []string{"slime"},
	}
}

// ApplyDefaults fills empty fields from Default.
func (c *Config) ApplyDefaults() {
	d := Default()
	if c.Player == "" && c.Encounter == "" {
		c.Player = d.Player
	}
	if len(c.Enemies) == 0 && c.Encounter == "" {
		c.Enemies = d.Enemies
	}
}

// Load reads a YAML config file. Missing fields take their defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	c.ApplyDefaults()
	return &c, nil
}

// ApplyEnv overrides fields from CARDFIGHT_SEED, CARDFIGHT_CONTENT,
// CARDFIGHT_ENCOUNTER, CARDFIGHT_PLAYER, CARDFIGHT_ENEMIES (comma separated),
// CARDFIGHT_TRACE and CARDFIGHT_PLAIN.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("CARDFIGHT_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("CARDFIGHT_SEED %q: %w", v, types.ErrInvalidArgument)
		}
		c.Seed = n
	}
	if v := os.Getenv("CARDFIGHT_CONTENT"); v != "" {
		c.Content = v
	}
	if v := os.Getenv("CARDFIGHT_ENCOUNTER"); v != "" {
		c.Encounter = v
	}
	if v := os.Getenv("CARDFIGHT_PLAYER"); v != "" {
		c.Player = v
	}
	if v := os.Getenv("CARDFIGHT_ENEMIES"); v != "" {
		c.Enemies = splitList(v)
	}
	if v := os.Getenv("CARDFIGHT_TRACE"); v != "" {
		c.Trace = envBool(v)
	}
	if v := os.Getenv("CARDFIGHT_PLAIN"); v != "" {
		c.Plain = envBool(v)
	}
	return nil
}

// Validate reports settings that cannot start a fight.
func (c *Config) Validate() error {
	if c.Encounter != "" {
		return nil
	}
	if c.Player == "" {
		return fmt.Errorf("config: no player: %w", types.ErrInvalidArgument)
	}
	if len(c.Enemies) == 0 {
		return fmt.Errorf("config: no enemies: %w", types.ErrInvalidArgument)
	}
	for i, e := range c.Enemies {
		if strings.TrimSpace(e) == "" {
			return fmt.Errorf("config: enemy %d has an empty name: %w", i+1, types.ErrInvalidArgument)
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
