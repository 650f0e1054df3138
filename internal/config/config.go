package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/OCharnyshevich/voxelworld/internal/world"
	"github.com/OCharnyshevich/voxelworld/pkg/world/gen"
)

// Config holds the server configuration.
type Config struct {
	Port           int           `json:"port" yaml:"port" jsonschema:"minimum=0,maximum=65535"`
	LogLevel       string        `json:"log_level" yaml:"log_level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
	Seed           uint32        `json:"seed" yaml:"seed"`
	GeneratorType  string        `json:"generator_type" yaml:"generator_type" jsonschema:"enum=default,enum=flat"`
	ViewDistance   int           `json:"view_distance" yaml:"view_distance" jsonschema:"minimum=0"`     // load radius in chunks
	EvictionMargin int           `json:"eviction_margin" yaml:"eviction_margin" jsonschema:"minimum=2"` // extra chunks kept before eviction
	TickMillis     int           `json:"tick_ms" yaml:"tick_ms" jsonschema:"minimum=1"`
	SpawnX         float32       `json:"spawn_x" yaml:"spawn_x"`
	SpawnZ         float32       `json:"spawn_z" yaml:"spawn_z"`
	Terrain        TerrainConfig `json:"terrain" yaml:"terrain"`
}

// TerrainConfig holds the generator tuning parameters.
type TerrainConfig struct {
	ChunkSize         int     `json:"chunk_size" yaml:"chunk_size" jsonschema:"minimum=1"`
	ChunkHeight       int     `json:"chunk_height" yaml:"chunk_height" jsonschema:"minimum=7"`
	SeaLevel          int     `json:"sea_level" yaml:"sea_level" jsonschema:"minimum=0"`
	HeightScale       float64 `json:"height_scale" yaml:"height_scale"`
	Amplitude         float64 `json:"amplitude" yaml:"amplitude"`
	HeightOctaves     int     `json:"height_octaves" yaml:"height_octaves" jsonschema:"minimum=1"`
	HeightPersistence float64 `json:"height_persistence" yaml:"height_persistence"`
	BiomeScale        float64 `json:"biome_scale" yaml:"biome_scale"`
	DesertThreshold   float64 `json:"desert_threshold" yaml:"desert_threshold"`
	ForestThreshold   float64 `json:"forest_threshold" yaml:"forest_threshold"`
	CaveScale         float64 `json:"cave_scale" yaml:"cave_scale"`
	CaveThreshold     float64 `json:"cave_threshold" yaml:"cave_threshold"`
	CaveFloor         int     `json:"cave_floor" yaml:"cave_floor" jsonschema:"minimum=0"`
	CaveRoofDepth     int     `json:"cave_roof_depth" yaml:"cave_roof_depth" jsonschema:"minimum=0"`
	Trees             bool    `json:"trees" yaml:"trees"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	opts := world.DefaultOptions()
	s := opts.Terrain
	return &Config{
		Port:           8080,
		LogLevel:       "info",
		GeneratorType:  opts.Generator,
		ViewDistance:   opts.RenderDistance,
		EvictionMargin: opts.EvictionMargin,
		TickMillis:     50,
		Terrain: TerrainConfig{
			ChunkSize:         s.ChunkSize,
			ChunkHeight:       s.ChunkHeight,
			SeaLevel:          s.SeaLevel,
			HeightScale:       s.HeightScale,
			Amplitude:         s.Amplitude,
			HeightOctaves:     s.HeightOctaves,
			HeightPersistence: s.HeightPersistence,
			BiomeScale:        s.BiomeScale,
			DesertThreshold:   s.DesertThreshold,
			ForestThreshold:   s.ForestThreshold,
			CaveScale:         s.CaveScale,
			CaveThreshold:     s.CaveThreshold,
			CaveFloor:         s.CaveFloor,
			CaveRoofDepth:     s.CaveRoofDepth,
			Trees:             s.Trees,
		},
	}
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["port"] {
		cfg.Port = fromFile.Port
	}
	if !explicitFlags["log-level"] {
		cfg.LogLevel = fromFile.LogLevel
	}
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["generator"] {
		cfg.GeneratorType = fromFile.GeneratorType
	}
	if !explicitFlags["view-distance"] {
		cfg.ViewDistance = fromFile.ViewDistance
	}
	if !explicitFlags["eviction-margin"] {
		cfg.EvictionMargin = fromFile.EvictionMargin
	}
	if !explicitFlags["tick-ms"] {
		cfg.TickMillis = fromFile.TickMillis
	}
	if !explicitFlags["spawn-x"] {
		cfg.SpawnX = fromFile.SpawnX
	}
	if !explicitFlags["spawn-z"] {
		cfg.SpawnZ = fromFile.SpawnZ
	}
	trees := cfg.Terrain.Trees
	cfg.Terrain = fromFile.Terrain
	if explicitFlags["trees"] {
		cfg.Terrain.Trees = trees
	}
}

// WorldOptions converts the config into options for world.New.
func (c *Config) WorldOptions() world.Options {
	t := c.Terrain
	return world.Options{
		Generator: c.GeneratorType,
		Terrain: gen.Settings{
			Seed:              c.Seed,
			ChunkSize:         t.ChunkSize,
			ChunkHeight:       t.ChunkHeight,
			SeaLevel:          t.SeaLevel,
			HeightScale:       t.HeightScale,
			Amplitude:         t.Amplitude,
			HeightOctaves:     t.HeightOctaves,
			HeightPersistence: t.HeightPersistence,
			BiomeScale:        t.BiomeScale,
			DesertThreshold:   t.DesertThreshold,
			ForestThreshold:   t.ForestThreshold,
			CaveScale:         t.CaveScale,
			CaveThreshold:     t.CaveThreshold,
			CaveFloor:         t.CaveFloor,
			CaveRoofDepth:     t.CaveRoofDepth,
			Trees:             t.Trees,
		},
		RenderDistance: c.ViewDistance,
		EvictionMargin: c.EvictionMargin,
	}
}

// ParseSeed parses a decimal world seed, rejecting values that do not fit in
// 32 bits instead of truncating them.
func ParseSeed(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse seed %q: %w", s, err)
	}
	return uint32(v), nil
}

// TickInterval is the period between world updates of a session.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickMillis) * time.Millisecond
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("parse log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// Validate checks the server fields and the world options. World problems
// wrap world.ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.TickMillis <= 0 {
		errs = append(errs, fmt.Errorf("tick interval must be positive, got %dms", c.TickMillis))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if err := c.WorldOptions().Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
