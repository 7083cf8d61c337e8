package provider

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/catalogmesh/catalog"
)

func TestValidate_DropsNameless(t *testing.T) {
	raws := []rawProduct{
		{Name: "TSR3 Driver"},
		{Brand: "Titleist"}, // no name
	}
	products := Validate(catalog.CategoryGolf, "Titleist", raws)
	require.Len(t, products, 1)
	assert.Equal(t, "TSR3 Driver", products[0].Name)
}

func TestValidate_ForcesIdentityFields(t *testing.T) {
	raws := []rawProduct{{Name: "TSR3 Driver"}}
	products := Validate(catalog.CategoryGolf, "Titleist", raws)
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, "titleist-tsr3-driver", p.ID)
	assert.Equal(t, "Titleist", p.Brand)
	assert.Equal(t, catalog.CategoryGolf, p.Category)
	assert.Equal(t, catalog.SourceProvider, p.Source)
	assert.Equal(t, time.Now().UTC().Year(), p.ReleaseYear)
	assert.False(t, p.LastUpdated.IsZero())
}

func TestValidate_ConfidenceClamping(t *testing.T) {
	raws := []rawProduct{
		{Name: "A", Confidence: 85},
		{Name: "B", Confidence: 250},
		{Name: "C"}, // missing
		{Name: "D", Confidence: -3},
	}
	products := Validate(catalog.CategoryTech, "Sony", raws)
	require.Len(t, products, 4)
	assert.Equal(t, 85, products[0].Confidence)
	assert.Equal(t, 100, products[1].Confidence)
	assert.Equal(t, defaultConfidence, products[2].Confidence)
	assert.Equal(t, defaultConfidence, products[3].Confidence)
}

func TestValidate_EnumCoercion(t *testing.T) {
	raws := []rawProduct{{
		Name: "WH-1000XM5",
		VisualSignature: rawSignature{
			Patterns: []string{"solid", "holographic"},
			Finish:   "shiny",
		},
		Variants: []rawVariant{
			{Name: "Black", Availability: "current"},
			{Name: "Silver", Availability: "out-of-stock"},
			{}, // no name, no sku
		},
	}}
	products := Validate(catalog.CategoryTech, "Sony", raws)
	require.Len(t, products, 1)

	sig := products[0].VisualSignature
	require.Len(t, sig.Patterns, 2)
	assert.Equal(t, catalog.PatternSolid, sig.Patterns[0])
	assert.Equal(t, catalog.PatternOther, sig.Patterns[1])
	assert.Empty(t, sig.Finish) // unknown finish dropped

	variants := products[0].Variants
	require.Len(t, variants, 2)
	assert.Equal(t, catalog.AvailabilityCurrent, variants[0].Availability)
	assert.Equal(t, catalog.AvailabilityCurrent, variants[1].Availability)
}

func TestValidate_DefaultPattern(t *testing.T) {
	products := Validate(catalog.CategoryGolf, "Ping", []rawProduct{{Name: "G430 Max"}})
	require.Len(t, products, 1)
	require.Len(t, products[0].VisualSignature.Patterns, 1)
	assert.Equal(t, catalog.PatternSolid, products[0].VisualSignature.Patterns[0])
}

func TestValidate_KeepsSuppliedBrand(t *testing.T) {
	// a response listing a sub-brand keeps it, the id follows
	raws := []rawProduct{{Name: "Action 4", Brand: "DJI Osmo"}}
	products := Validate(catalog.CategoryPhotography, "DJI", raws)
	require.Len(t, products, 1)
	assert.Equal(t, "DJI Osmo", products[0].Brand)
	assert.Equal(t, "dji-osmo-action-4", products[0].ID)
}
