package game

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/pasture"
	"github.com/phanxgames/pasture/farm"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ViewportConfig is the initial screen size.
type ViewportConfig struct {
	Width  float64 `yaml:"width" json:"width" validate:"gt=0"`
	Height float64 `yaml:"height" json:"height" validate:"gt=0"`
}

// StationConfig places the crafting station.
type StationConfig struct {
	X      float64 `yaml:"x" json:"x"`
	Y      float64 `yaml:"y" json:"y"`
	Width  float64 `yaml:"width" json:"width" validate:"gt=0"`
	Height float64 `yaml:"height" json:"height" validate:"gt=0"`
	// Recipe is the recipe selected at start.
	Recipe string `yaml:"recipe" json:"recipe"`
}

// HerdConfig seeds a new farm.
type HerdConfig struct {
	InitialCows int          `yaml:"initial_cows" json:"initial_cows" validate:"gte=0,lte=64"`
	Colors      []farm.Color `yaml:"colors" json:"colors" validate:"dive,oneof=white brown black spotted golden"`
}

// Config is everything a Game is built from. Zero values are not usable;
// start from DefaultConfig.
type Config struct {
	Log      pasture.LogConfig `yaml:"log" json:"log"`
	Viewport ViewportConfig    `yaml:"viewport" json:"viewport"`
	Rules    farm.Rules        `yaml:"rules" json:"rules"`
	Herd     HerdConfig        `yaml:"herd" json:"herd"`
	Station  StationConfig     `yaml:"station" json:"station"`
	// Recipes is a path to a recipe catalog. Empty uses the built-in one.
	Recipes string `yaml:"recipes" json:"recipes"`

	Cow     pasture.BodyConfig `yaml:"cow" json:"cow"`
	Bucket  pasture.BodyConfig `yaml:"bucket" json:"bucket"`
	FeedBag pasture.BodyConfig `yaml:"feed_bag" json:"feed_bag"`
	Item    pasture.BodyConfig `yaml:"item" json:"item"`
}

// DefaultConfig returns a playable configuration.
func DefaultConfig() Config {
	return Config{
		Viewport: ViewportConfig{Width: 1280, Height: 720},
		Rules:    farm.DefaultRules(),
		Herd: HerdConfig{
			InitialCows: 2,
			Colors:      []farm.Color{farm.ColorWhite, farm.ColorBrown},
		},
		Station: StationConfig{X: 1040, Y: 520, Width: 160, Height: 120, Recipe: "butter"},
		Cow:     pasture.DefaultCowConfig(),
		Bucket:  pasture.DefaultToolConfig(),
		FeedBag: pasture.DefaultToolConfig(),
		Item:    pasture.DefaultItemConfig(),
	}
}

// Validate checks every range in c. Errors wrap pasture.ErrInvalidConfig.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", pasture.ErrInvalidConfig, err)
	}
	if !c.Bucket.Controlled || !c.FeedBag.Controlled {
		return fmt.Errorf("%w: tools must be controlled", pasture.ErrInvalidConfig)
	}
	if c.Cow.Controlled || c.Item.Controlled {
		return fmt.Errorf("%w: cows and items cannot be controlled", pasture.ErrInvalidConfig)
	}
	return nil
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
// Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}
