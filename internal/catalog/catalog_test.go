package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-ordering-kiosk/internal/model"
)

const sampleMenu = `{
  "store": "Test Cafe",
  "currency": "CAD",
  "items": [
    {"id": "coffee_original", "name": "Original Blend Coffee", "base_price": 1.79, "modifiers": ["Small", "Medium"]},
    {"id": "donut", "name": "Donut", "base_price": 1.29}
  ]
}`

func writeMenu(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "menu.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	c, err := Load(writeMenu(t, sampleMenu))
	require.NoError(t, err)

	assert.Equal(t, "Test Cafe", c.Store())
	assert.Equal(t, 2, c.Len())

	item, ok := c.Get("coffee_original")
	require.True(t, ok)
	assert.Equal(t, 1.79, item.BasePrice)
	assert.Equal(t, []string{"Small", "Medium"}, item.AllowedModifiers)

	donut, ok := c.Get("donut")
	require.True(t, ok)
	assert.NotNil(t, donut.AllowedModifiers)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestLoad_Failures(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("bad json", func(t *testing.T) {
		_, err := Load(writeMenu(t, `{"items": [`))
		assert.Error(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Load(writeMenu(t, `{"store": "x", "items": []}`))
		assert.ErrorIs(t, err, ErrEmptyCatalog)
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := New("x", "", []model.MenuItem{{ID: "a"}, {ID: "a"}})
		assert.ErrorIs(t, err, ErrDuplicateID)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := New("x", "", []model.MenuItem{{Name: "nameless"}})
		assert.ErrorIs(t, err, ErrMissingID)
	})
}

func TestCatalog_Immutable(t *testing.T) {
	src := []model.MenuItem{{ID: "a", Name: "A", AllowedModifiers: []string{"Small"}}}
	c, err := New("x", "", src)
	require.NoError(t, err)

	src[0].Name = "changed"
	src[0].AllowedModifiers[0] = "changed"

	items := c.Items()
	assert.Equal(t, "A", items[0].Name)
	assert.Equal(t, "Small", items[0].AllowedModifiers[0])

	items[0].AllowedModifiers[0] = "mutated"
	again, _ := c.Get("a")
	assert.Equal(t, "Small", again.AllowedModifiers[0])
}

func TestCatalog_GetReturnsCopy(t *testing.T) {
	c, err := New("x", "", []model.MenuItem{{ID: "a", BasePrice: 2.5, AllowedModifiers: []string{"Small"}}})
	require.NoError(t, err)

	first, ok := c.Get("a")
	require.True(t, ok)
	first.AllowedModifiers[0] = "mutated"
	first.BasePrice = 0

	second, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 2.5, second.BasePrice)
	assert.Equal(t, []string{"Small"}, second.AllowedModifiers)

	var none *Catalog
	_, ok = none.Get("a")
	assert.False(t, ok)
}

func TestCatalog_JSON(t *testing.T) {
	c, err := Load(writeMenu(t, sampleMenu))
	require.NoError(t, err)

	raw, err := json.Marshal(c)
	require.NoError(t, err)

	var doc document
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "Test Cafe", doc.Store)
	assert.Len(t, doc.Items, 2)

	prompt := c.PromptJSON()
	assert.True(t, strings.Contains(prompt, "\"coffee_original\""))
	assert.True(t, strings.Contains(prompt, "\n  "), "prompt form should be indented")
}
