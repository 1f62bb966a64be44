package farm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogJSON = `{
  "version": "1",
  "items": ["milk:white", "butter"],
  "recipes": [
    {"id": "butter", "time_ms": 20000,
     "inputs": [{"item": "milk:white", "qty": 2}],
     "outputs": [{"item": "butter", "qty": 1}]}
  ]
}`

const catalogYAML = `
version: "1"
recipes:
  - id: butter
    time_ms: 20000
    inputs:
      - {item: "milk:white", qty: 2}
    outputs:
      - {item: butter, qty: 1}
`

func TestParseCatalog(t *testing.T) {
	for _, tc := range []struct{ format, data string }{
		{"json", catalogJSON},
		{"yaml", catalogYAML},
	} {
		t.Run(tc.format, func(t *testing.T) {
			c, err := ParseCatalog([]byte(tc.data), tc.format)
			require.NoError(t, err)
			assert.Equal(t, "1", c.Version)
			assert.Equal(t, 1, c.Len())

			r, ok := c.Lookup("butter")
			require.True(t, ok)
			assert.Equal(t, int64(20000), r.TimeMs)
			assert.False(t, r.Instant())
			assert.Equal(t, []ItemQty{{Item: "milk:white", Qty: 2}}, r.Inputs)
		})
	}
}

func TestParseCatalog_Errors(t *testing.T) {
	_, err := ParseCatalog([]byte(catalogJSON), "toml")
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = ParseCatalog([]byte("{not json"), "json")
	assert.Error(t, err)
}

func TestNewCatalog_Validation(t *testing.T) {
	out := []ItemQty{{Item: "butter", Qty: 1}}
	cases := []struct {
		name    string
		recipes []Recipe
		items   []string
		want    error
	}{
		{"empty id", []Recipe{{Outputs: out}}, nil, ErrInvalidConfig},
		{"duplicate", []Recipe{{ID: "a", Outputs: out}, {ID: "a", Outputs: out}}, nil, ErrDuplicateRecipe},
		{"negative time", []Recipe{{ID: "a", TimeMs: -1, Outputs: out}}, nil, ErrInvalidConfig},
		{"no outputs", []Recipe{{ID: "a"}}, nil, ErrInvalidConfig},
		{"zero qty", []Recipe{{ID: "a", Inputs: []ItemQty{{Item: "x", Qty: 0}}, Outputs: out}}, nil, ErrInvalidConfig},
		{"unknown item", []Recipe{{ID: "a", Inputs: []ItemQty{{Item: "x", Qty: 1}}, Outputs: out}}, []string{"butter"}, ErrUnknownItem},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCatalog(tc.recipes, tc.items)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestLoadCatalog_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recipes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(catalogYAML), 0o600))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	_, err = LoadCatalog(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	assert.Equal(t, 4, c.Len())
	r, ok := c.Lookup("chocolate_milk")
	require.True(t, ok)
	assert.True(t, r.Instant())

	var nilCatalog *Catalog
	_, ok = nilCatalog.Lookup("butter")
	assert.False(t, ok)
}

func TestInventory(t *testing.T) {
	inv := Inventory{"a": 2}
	need := []ItemQty{{Item: "a", Qty: 1}, {Item: "a", Qty: 1}}
	assert.True(t, inv.Has(need))
	assert.False(t, inv.Has(append(need, ItemQty{Item: "a", Qty: 1})))

	out, ok := inv.Remove(need)
	require.True(t, ok)
	assert.Equal(t, 0, out.Count("a"))
	assert.Empty(t, out.Items())
	assert.Equal(t, 2, inv.Count("a"), "receiver must not change")

	added := out.Add([]ItemQty{{Item: "b", Qty: 3}, {Item: "a", Qty: 1}})
	assert.Equal(t, []string{"a", "b"}, added.Items())
}
