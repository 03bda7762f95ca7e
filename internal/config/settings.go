package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"

	"gopkg.in/yaml.v3"

	"github.com/tomz197/fps/internal/object"
)

// ErrInvalidSettings is wrapped by every validation failure.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds the gameplay tunables. All per-frame quantities (speeds,
// lifetimes, probabilities) are expressed per simulation tick.
type Settings struct {
	TickRate int `yaml:"tickRate"` // Simulation ticks per second

	// Player
	MoveSpeed float64 `yaml:"moveSpeed"` // Units per tick
	LookSpeed float64 `yaml:"lookSpeed"` // Radians per pointer unit
	MaxHealth int     `yaml:"maxHealth"`
	MaxAmmo   int     `yaml:"maxAmmo"`

	// Enemies
	SpawnRate     float64 `yaml:"spawnRate"`   // Spawn probability per tick
	SpawnRadius   float64 `yaml:"spawnRadius"` // Ring radius around the player
	EnemyHealth   int     `yaml:"enemyHealth"`
	EnemySpeed    float64 `yaml:"enemySpeed"`
	ContactDamage int     `yaml:"contactDamage"`
	ContactRadius float64 `yaml:"contactRadius"`

	// Bullets
	BulletSpeed float64 `yaml:"bulletSpeed"`
	BulletLife  int     `yaml:"bulletLife"` // Ticks
	HitRadius   float64 `yaml:"hitRadius"`
	KillScore   int     `yaml:"killScore"`

	// Arena
	ObstacleRadius float64      `yaml:"obstacleRadius"`
	Obstacles      [][2]float64 `yaml:"obstacles"` // Ground (x, z) positions
}

// Default returns the standard game tuning.
func Default() Settings {
	layout := make([][2]float64, len(object.DefaultLayout))
	copy(layout, object.DefaultLayout)

	return Settings{
		TickRate: 60,

		MoveSpeed: 0.1,
		LookSpeed: 0.002,
		MaxHealth: 100,
		MaxAmmo:   30,

		SpawnRate:     0.005,
		SpawnRadius:   25,
		EnemyHealth:   3,
		EnemySpeed:    0.02,
		ContactDamage: 10,
		ContactRadius: object.ContactRadius,

		BulletSpeed: 1,
		BulletLife:  200,
		HitRadius:   object.HitRadius,
		KillScore:   10,

		ObstacleRadius: object.ObstacleRadius,
		Obstacles:      layout,
	}
}

// Load reads settings from a YAML file. Keys missing from the file keep their
// default value. An empty path or a missing file yields the defaults.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read settings %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("settings %s: %w", path, err)
	}
	return s, nil
}

// IsZero reports whether s is the zero value, i.e. no settings were given.
func (s Settings) IsZero() bool {
	return reflect.ValueOf(s).IsZero()
}

// Validate checks that every tunable is usable.
func (s Settings) Validate() error {
	switch {
	case s.TickRate <= 0:
		return fmt.Errorf("%w: tickRate must be positive", ErrInvalidSettings)
	case s.MaxHealth <= 0 || s.MaxHealth > 100:
		return fmt.Errorf("%w: maxHealth must be in (0, 100]", ErrInvalidSettings)
	case s.MaxAmmo <= 0:
		return fmt.Errorf("%w: maxAmmo must be positive", ErrInvalidSettings)
	case s.SpawnRate < 0 || s.SpawnRate > 1:
		return fmt.Errorf("%w: spawnRate must be in [0, 1]", ErrInvalidSettings)
	case s.EnemyHealth <= 0:
		return fmt.Errorf("%w: enemyHealth must be positive", ErrInvalidSettings)
	case s.BulletLife <= 0:
		return fmt.Errorf("%w: bulletLife must be positive", ErrInvalidSettings)
	case s.ContactDamage < 0:
		return fmt.Errorf("%w: contactDamage must not be negative", ErrInvalidSettings)
	case s.MoveSpeed < 0 || s.LookSpeed < 0 || s.EnemySpeed < 0 || s.BulletSpeed < 0:
		return fmt.Errorf("%w: speeds must not be negative", ErrInvalidSettings)
	case s.SpawnRadius <= 0 || s.ContactRadius <= 0 || s.HitRadius <= 0 || s.ObstacleRadius < 0:
		return fmt.Errorf("%w: radii must be positive", ErrInvalidSettings)
	}
	return nil
}
