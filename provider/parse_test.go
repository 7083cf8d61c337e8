package provider

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProducts_DirectArray(t *testing.T) {
	raws, err := ParseProducts(`[{"name":"TSR3 Driver","brand":"Titleist"}]`)
	require.NoError(t, err)
	require.Len(t, raws, 1)
	assert.Equal(t, "TSR3 Driver", raws[0].Name)
}

func TestParseProducts_ProductsEnvelope(t *testing.T) {
	raws, err := ParseProducts(`{"products":[{"name":"A"},{"name":"B"}]}`)
	require.NoError(t, err)
	require.Len(t, raws, 2)
	assert.Equal(t, "B", raws[1].Name)
}

func TestParseProducts_MarkdownFence(t *testing.T) {
	raw := "Here is the catalog you asked for:\n```json\n[{\"name\":\"Stealth 2\"}]\n```\nLet me know if you need more."
	raws, err := ParseProducts(raw)
	require.NoError(t, err)
	require.Len(t, raws, 1)
	assert.Equal(t, "Stealth 2", raws[0].Name)
}

func TestParseProducts_BareArrayInProse(t *testing.T) {
	raw := `Sure! [{"name":"Paradym"},{"name":"Paradym X"}] Hope that helps.`
	raws, err := ParseProducts(raw)
	require.NoError(t, err)
	assert.Len(t, raws, 2)
}

func TestParseProducts_MalformedItemSkipped(t *testing.T) {
	raws, err := ParseProducts(`[{"name":"Good"},{"name":12345},{"name":"Also Good"}]`)
	require.NoError(t, err)
	require.Len(t, raws, 2)
	assert.Equal(t, "Good", raws[0].Name)
	assert.Equal(t, "Also Good", raws[1].Name)
}

func TestParseProducts_NoJSON(t *testing.T) {
	_, err := ParseProducts("I could not find any products for this brand.")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParse))
}

func TestParseProducts_EmptyArray(t *testing.T) {
	raws, err := ParseProducts(`[]`)
	require.NoError(t, err)
	assert.Empty(t, raws)
}
