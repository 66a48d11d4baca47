package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/meta"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Episodes   int        `yaml:"episodes"`
	Seed       uint64     `yaml:"seed"` // 0 seeds from the clock
	Human      string     `yaml:"human"`
	Games      int        `yaml:"games"`
	OutputDir  string     `yaml:"output_dir"`
	LogLevel   string     `yaml:"log_level"`
	Experiment Experiment `yaml:"experiment"`
}

type Experiment struct {
	Name     string                   `yaml:"name"`
	Matchups [][2]metrics.AgentConfig `yaml:"matchups"`
}

func Default() Config {
	return Config{
		Episodes:  meta.EPISODES,
		Human:     "X",
		Games:     meta.GAMES,
		OutputDir: meta.OUTPUT_DIR,
		LogLevel:  "info",
		Experiment: Experiment{
			Name: "budget",
			Matchups: [][2]metrics.AgentConfig{
				{{ID: 1, Episodes: 500}, {ID: 2, Episodes: 50}},
				{{ID: 1, Episodes: 500}, {ID: 3, Episodes: 0}},
			},
		},
	}
}

// Load overlays the YAML file at path on the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Episodes < 0 {
		return fmt.Errorf("%w: episodes must not be negative, got %d", ErrInvalid, c.Episodes)
	}
	if c.Games < 0 {
		return fmt.Errorf("%w: games must not be negative, got %d", ErrInvalid, c.Games)
	}
	if _, err := c.HumanMark(); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel)
	}
	for i, m := range c.Experiment.Matchups {
		if m[0].Episodes < 0 || m[1].Episodes < 0 {
			return fmt.Errorf("%w: matchup %d has negative episodes", ErrInvalid, i+1)
		}
	}
	return nil
}

func (c Config) HumanMark() (game.Mark, error) {
	switch strings.ToUpper(c.Human) {
	case "X":
		return game.X, nil
	case "O":
		return game.O, nil
	default:
		return game.None, fmt.Errorf("%w: human must play X or O, got %q", ErrInvalid, c.Human)
	}
}

func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
