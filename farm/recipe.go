package farm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Sentinel errors for the recipe catalog.
var (
	ErrDuplicateRecipe = errors.New("duplicate recipe id")
	ErrUnknownItem     = errors.New("unknown item reference")
	ErrInvalidConfig   = errors.New("invalid configuration")
)

// ItemQty is a quantity of one item.
type ItemQty struct {
	Item string `json:"item" yaml:"item"`
	Qty  int    `json:"qty" yaml:"qty"`
}

// Recipe turns inputs into outputs. A zero TimeMs completes instantly.
type Recipe struct {
	ID      string    `json:"id" yaml:"id"`
	TimeMs  int64     `json:"time_ms" yaml:"time_ms"`
	Inputs  []ItemQty `json:"inputs" yaml:"inputs"`
	Outputs []ItemQty `json:"outputs" yaml:"outputs"`
}

// Duration returns the crafting time.
func (r Recipe) Duration() time.Duration { return time.Duration(r.TimeMs) * time.Millisecond }

// Instant reports whether the recipe completes when started.
func (r Recipe) Instant() bool { return r.TimeMs == 0 }

// catalogFile is the on-disk layout of a recipe catalog.
type catalogFile struct {
	Version     string   `json:"version" yaml:"version"`
	Description string   `json:"description" yaml:"description"`
	Items       []string `json:"items" yaml:"items"`
	Recipes     []Recipe `json:"recipes" yaml:"recipes"`
}

// Catalog is a validated, read-only set of recipes.
type Catalog struct {
	Version string
	recipes []Recipe
	byID    map[string]int
	items   map[string]bool
}

// NewCatalog validates recipes and indexes them. If items is non-empty,
// every recipe input and output must be one of them.
func NewCatalog(recipes []Recipe, items []string) (*Catalog, error) {
	c := &Catalog{
		recipes: make([]Recipe, len(recipes)),
		byID:    make(map[string]int, len(recipes)),
	}
	copy(c.recipes, recipes)
	if len(items) > 0 {
		c.items = make(map[string]bool, len(items))
		for _, it := range items {
			c.items[it] = true
		}
	}

	for i, r := range c.recipes {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: recipe at index %d has empty id", ErrInvalidConfig, i)
		}
		if _, dup := c.byID[r.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateRecipe, r.ID)
		}
		if r.TimeMs < 0 {
			return nil, fmt.Errorf("%w: recipe %q has negative time", ErrInvalidConfig, r.ID)
		}
		if len(r.Outputs) == 0 {
			return nil, fmt.Errorf("%w: recipe %q has no outputs", ErrInvalidConfig, r.ID)
		}
		if err := c.checkQtys(r.ID, "input", r.Inputs); err != nil {
			return nil, err
		}
		if err := c.checkQtys(r.ID, "output", r.Outputs); err != nil {
			return nil, err
		}
		c.byID[r.ID] = i
	}
	return c, nil
}

func (c *Catalog) checkQtys(id, kind string, qs []ItemQty) error {
	for j, q := range qs {
		if q.Item == "" {
			return fmt.Errorf("%w: recipe %q %s[%d] has empty item", ErrInvalidConfig, id, kind, j)
		}
		if q.Qty <= 0 {
			return fmt.Errorf("%w: recipe %q %s[%d] has non-positive quantity", ErrInvalidConfig, id, kind, j)
		}
		if c.items != nil && !c.items[q.Item] {
			return fmt.Errorf("%w: recipe %q %s[%d] references %q", ErrUnknownItem, id, kind, j, q.Item)
		}
	}
	return nil
}

// Lookup returns the recipe with the given id. A nil catalog has no recipes.
func (c *Catalog) Lookup(id string) (Recipe, bool) {
	if c == nil {
		return Recipe{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return Recipe{}, false
	}
	return c.recipes[i], true
}

// Recipes returns every recipe in file order. The slice MUST NOT be mutated.
func (c *Catalog) Recipes() []Recipe {
	if c == nil {
		return nil
	}
	return c.recipes
}

// Len returns the number of recipes.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.recipes)
}

// ParseCatalog decodes a catalog in the given format ("json" or "yaml")
// and validates it.
func ParseCatalog(data []byte, format string) (*Catalog, error) {
	var f catalogFile
	switch strings.ToLower(format) {
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("parse recipe catalog: %w", err)
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("parse recipe catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported catalog format %q", ErrInvalidConfig, format)
	}
	c, err := NewCatalog(f.Recipes, f.Items)
	if err != nil {
		return nil, err
	}
	c.Version = f.Version
	return c, nil
}

// LoadCatalog reads a catalog file. The format follows the extension.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recipe catalog: %w", err)
	}
	return ParseCatalog(data, strings.TrimPrefix(filepath.Ext(path), "."))
}

// DefaultItems lists every item the built-in catalog knows.
func DefaultItems() []string {
	items := make([]string, 0, len(Colors)+4)
	for _, c := range Colors {
		items = append(items, MilkItem(c))
	}
	return append(items, "butter", "cheese", "chocolate_milk", "ice_cream")
}

// DefaultCatalog returns the built-in recipes.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog([]Recipe{
		{
			ID:      "butter",
			TimeMs:  20000,
			Inputs:  []ItemQty{{Item: MilkItem(ColorWhite), Qty: 2}},
			Outputs: []ItemQty{{Item: "butter", Qty: 1}},
		},
		{
			ID:      "chocolate_milk",
			Inputs:  []ItemQty{{Item: MilkItem(ColorBrown), Qty: 1}},
			Outputs: []ItemQty{{Item: "chocolate_milk", Qty: 1}},
		},
		{
			ID:     "cheese",
			TimeMs: 45000,
			Inputs: []ItemQty{
				{Item: MilkItem(ColorWhite), Qty: 1},
				{Item: MilkItem(ColorSpotted), Qty: 1},
			},
			Outputs: []ItemQty{{Item: "cheese", Qty: 1}},
		},
		{
			ID:     "ice_cream",
			TimeMs: 60000,
			Inputs: []ItemQty{
				{Item: "butter", Qty: 1},
				{Item: MilkItem(ColorGolden), Qty: 1},
			},
			Outputs: []ItemQty{{Item: "ice_cream", Qty: 2}},
		},
	}, DefaultItems())
	if err != nil {
		panic(err)
	}
	return c
}
