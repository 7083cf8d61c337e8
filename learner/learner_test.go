package learner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/catalogmesh/catalog"
)

func candidate() Candidate {
	return Candidate{
		Brand:      "Titleist",
		Name:       "TSR3 Driver",
		Category:   "golf",
		Confidence: 0.92,
	}
}

func TestLearnProduct_AddsHighConfidenceSighting(t *testing.T) {
	store := catalog.NewInMemoryStore()
	l := New(store)

	outcome, err := l.LearnProduct(candidate())
	require.NoError(t, err)
	assert.True(t, outcome.Added)

	doc, err := store.Load(catalog.CategoryGolf)
	require.NoError(t, err)
	require.Len(t, doc.Brands, 1)
	require.Len(t, doc.Brands[0].Products, 1)

	p := doc.Brands[0].Products[0]
	assert.Equal(t, "titleist-tsr3-driver", p.ID)
	assert.Equal(t, catalog.SourceLearned, p.Source)
	assert.Equal(t, 92, p.Confidence)
	assert.Equal(t, "drivers", p.Subcategory)
	assert.Equal(t, catalog.DefaultVisualSignature(), p.VisualSignature)
	assert.Contains(t, p.SearchKeywords, "titleist")
	assert.Contains(t, p.SearchKeywords, "tsr3")
	assert.Contains(t, p.SearchKeywords, "driver")
	assert.Contains(t, p.SearchKeywords, "titleist tsr3 driver")
	assert.Equal(t, "Titleist TSR3 Driver", p.Description)
	assert.Equal(t, 1, doc.ProductCount)
}

func TestLearnProduct_SecondSightingSkipped(t *testing.T) {
	store := catalog.NewInMemoryStore()
	l := New(store)

	_, err := l.LearnProduct(candidate())
	require.NoError(t, err)

	outcome, err := l.LearnProduct(candidate())
	require.NoError(t, err)
	assert.False(t, outcome.Added)
	assert.Contains(t, outcome.Reason, "already exists")

	doc, err := store.Load(catalog.CategoryGolf)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.ProductCount)
}

func TestLearnProduct_ExistingCatalogEntrySkipped(t *testing.T) {
	store := catalog.NewInMemoryStore()

	// catalog already knows the product from a collection run
	doc := catalog.NewDocument(catalog.CategoryGolf)
	doc.EnsureBrand("Titleist").Products = append(doc.Brands[0].Products, catalog.Product{
		ID:    "titleist-tsr3-driver",
		Name:  "TSR3 Driver",
		Brand: "Titleist",
	})
	require.NoError(t, store.Save(doc))

	// a fresh learner has an empty session set; the catalog check must catch it
	outcome, err := New(store).LearnProduct(candidate())
	require.NoError(t, err)
	assert.False(t, outcome.Added)
	assert.Contains(t, outcome.Reason, "already exists")
}

func TestLearnProduct_LowConfidenceNeverMutates(t *testing.T) {
	store := catalog.NewInMemoryStore()
	l := New(store)

	c := candidate()
	c.Confidence = 0.5

	outcome, err := l.LearnProduct(c)
	require.NoError(t, err)
	assert.False(t, outcome.Added)
	assert.Contains(t, outcome.Reason, "confidence too low")

	// nothing was written, not even an empty document
	assert.Nil(t, store.Serialized(catalog.CategoryGolf))
}

func TestLearnProduct_MissingFields(t *testing.T) {
	l := New(catalog.NewInMemoryStore())

	c := candidate()
	c.Name = ""
	outcome, err := l.LearnProduct(c)
	require.NoError(t, err)
	assert.False(t, outcome.Added)
	assert.Equal(t, "missing brand or name", outcome.Reason)
}

func TestLearnProduct_CategoryNormalization(t *testing.T) {
	store := catalog.NewInMemoryStore()
	l := New(store)

	c := candidate()
	c.Category = "Golf Equipment"
	outcome, err := l.LearnProduct(c)
	require.NoError(t, err)
	assert.True(t, outcome.Added)

	_, err = store.Load(catalog.CategoryGolf)
	assert.NoError(t, err)

	c2 := Candidate{Brand: "Acme", Name: "Widget Pro", Category: "kitchen gadgets", Confidence: 0.9}
	outcome, err = l.LearnProduct(c2)
	require.NoError(t, err)
	assert.True(t, outcome.Added)

	other, err := store.Load(catalog.CategoryOther)
	require.NoError(t, err)
	assert.Equal(t, 1, other.ProductCount)
}

func TestLearnProduct_FuzzyDuplicate(t *testing.T) {
	store := catalog.NewInMemoryStore()
	l := New(store)

	_, err := l.LearnProduct(candidate())
	require.NoError(t, err)

	// containment with comparable length is the same product
	c := candidate()
	c.Name = "TSR3 Driver LS"
	outcome, err := l.LearnProduct(c)
	require.NoError(t, err)
	assert.False(t, outcome.Added)
	assert.Contains(t, outcome.Reason, "already exists")

	// containment with a big length gap is a different product
	c = candidate()
	c.Name = "TSR3"
	outcome, err = l.LearnProduct(c)
	require.NoError(t, err)
	assert.True(t, outcome.Added)
}

func TestLearnProducts_Batch(t *testing.T) {
	store := catalog.NewInMemoryStore()
	l := New(store)

	batch := []Candidate{
		candidate(),
		candidate(), // session duplicate
		{Brand: "Ping", Name: "G430 Max", Category: "golf", Confidence: 0.8},
		{Brand: "Cobra", Name: "Aerojet", Category: "golf", Confidence: 0.4}, // below gate
	}

	outcome, err := l.LearnProducts(batch)
	require.NoError(t, err)
	assert.Equal(t, 2, outcome.Added)
	assert.Equal(t, 2, outcome.Skipped)
	require.Len(t, outcome.Details, 4)
	assert.Equal(t, "Titleist TSR3 Driver", outcome.Details[0].Product)
	assert.True(t, outcome.Details[0].Added)
	assert.False(t, outcome.Details[1].Added)

	doc, err := store.Load(catalog.CategoryGolf)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.ProductCount)
	assert.Len(t, doc.Brands, 2)
}

func TestDetectSubcategory(t *testing.T) {
	assert.Equal(t, "drivers", detectSubcategory("TSR3 Driver", "golf"))
	assert.Equal(t, "putters", detectSubcategory("Spider Tour Putter", "golf equipment"))
	assert.Equal(t, "golf-balls", detectSubcategory("Pro V1 Ball", "golf"))
	assert.Equal(t, "other", detectSubcategory("Tour Staff Bag", "golf"))
	assert.Equal(t, "other", detectSubcategory("WH-1000XM5", "tech"))
}
