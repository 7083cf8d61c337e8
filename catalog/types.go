// Package catalog defines the product catalog data model and its storage
// contract. One Document per category is the durable product-of-record;
// documents are only ever appended to or updated, never deleted.
package catalog

import (
	"strings"
	"time"

	"github.com/hupe1980/catalogmesh/internal/util"
)

// Availability describes whether a variant can still be bought new.
type Availability string

const (
	AvailabilityCurrent      Availability = "current"
	AvailabilityDiscontinued Availability = "discontinued"
	AvailabilityLimited      Availability = "limited"
)

// ValidAvailability reports membership in the closed availability set.
func ValidAvailability(a Availability) bool {
	switch a {
	case AvailabilityCurrent, AvailabilityDiscontinued, AvailabilityLimited:
		return true
	}
	return false
}

// Pattern is a surface pattern used for visual identification.
type Pattern string

const (
	PatternSolid       Pattern = "solid"
	PatternStriped     Pattern = "striped"
	PatternPlaid       Pattern = "plaid"
	PatternCamo        Pattern = "camo"
	PatternGradient    Pattern = "gradient"
	PatternGeometric   Pattern = "geometric"
	PatternChevron     Pattern = "chevron"
	PatternHeathered   Pattern = "heathered"
	PatternCarbonWeave Pattern = "carbon-weave"
	PatternCheckered   Pattern = "checkered"
	PatternFloral      Pattern = "floral"
	PatternOther       Pattern = "other"
)

// ValidPattern reports membership in the closed pattern set.
func ValidPattern(p Pattern) bool {
	switch p {
	case PatternSolid, PatternStriped, PatternPlaid, PatternCamo,
		PatternGradient, PatternGeometric, PatternChevron, PatternHeathered,
		PatternCarbonWeave, PatternCheckered, PatternFloral, PatternOther:
		return true
	}
	return false
}

// Finish is a surface finish used for visual identification.
type Finish string

const (
	FinishMatte    Finish = "matte"
	FinishGlossy   Finish = "glossy"
	FinishMetallic Finish = "metallic"
	FinishSatin    Finish = "satin"
	FinishTextured Finish = "textured"
	FinishBrushed  Finish = "brushed"
)

// ValidFinish reports membership in the closed finish set.
func ValidFinish(f Finish) bool {
	switch f {
	case FinishMatte, FinishGlossy, FinishMetallic, FinishSatin,
		FinishTextured, FinishBrushed:
		return true
	}
	return false
}

// Source records how a product entered the catalog.
type Source string

const (
	// SourceProvider marks products collected by a language-model provider run.
	SourceProvider Source = "provider"
	// SourceLearned marks products absorbed from live identification traffic.
	SourceLearned Source = "learned"
	// SourceManual marks hand-curated entries.
	SourceManual Source = "manual"
)

// VisualSignature captures the visual cues the identification pipeline
// matches photos against.
type VisualSignature struct {
	PrimaryColors          []string  `json:"primaryColors"`
	SecondaryColors        []string  `json:"secondaryColors,omitempty"`
	ColorwayName           string    `json:"colorwayName,omitempty"`
	Patterns               []Pattern `json:"patterns"`
	Finish                 Finish    `json:"finish,omitempty"`
	DesignCues             []string  `json:"designCues,omitempty"`
	DistinguishingFeatures []string  `json:"distinguishingFeatures,omitempty"`
	LogoPlacement          string    `json:"logoPlacement,omitempty"`
}

// DefaultVisualSignature is the minimal signature used for learned products
// where no visual data was observed.
func DefaultVisualSignature() VisualSignature {
	return VisualSignature{
		PrimaryColors: []string{},
		Patterns:      []Pattern{PatternSolid},
	}
}

// ProductVariant is a SKU-level variant of a product.
type ProductVariant struct {
	SKU            string            `json:"sku,omitempty"`
	Name           string            `json:"variantName"`
	Specifications map[string]string `json:"specifications,omitempty"`
	Colorway       string            `json:"colorway,omitempty"`
	Availability   Availability      `json:"availability"`
	Price          float64           `json:"price,omitempty"`
	ImageURL       string            `json:"imageUrl,omitempty"`
}

// Product is a single catalog entry. Its ID is deterministic, derived from
// the brand and name slugs, and unique within the owning brand's list.
type Product struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Brand           string            `json:"brand"`
	Category        Category          `json:"category"`
	Subcategory     string            `json:"subcategory,omitempty"`
	ReleaseYear     int               `json:"releaseYear"`
	MSRP            float64           `json:"msrp,omitempty"`
	VisualSignature VisualSignature   `json:"visualSignature"`
	Specifications  map[string]string `json:"specifications,omitempty"`
	ModelNumber     string            `json:"modelNumber,omitempty"`
	Variants        []ProductVariant  `json:"variants"`
	SearchKeywords  []string          `json:"searchKeywords"`
	Aliases         []string          `json:"aliases,omitempty"`
	Description     string            `json:"description,omitempty"`
	ProductURL      string            `json:"productUrl,omitempty"`
	ImageURL        string            `json:"imageUrl,omitempty"`
	Source          Source            `json:"source"`
	Confidence      int               `json:"confidence"` // 0-100 data accuracy score
	LastUpdated     time.Time         `json:"lastUpdated"`
}

// ProductID derives the deterministic product identity from brand and name.
func ProductID(brand, name string) string {
	return util.Slug(brand) + "-" + util.Slug(name)
}

// BrandCatalog is the ordered product list of one brand within a category
// document. Name lookups are case-insensitive.
type BrandCatalog struct {
	Name        string    `json:"name"`
	Aliases     []string  `json:"aliases"`
	Products    []Product `json:"products"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// HasProduct reports whether a product with the given id is already listed.
func (b *BrandCatalog) HasProduct(id string) bool {
	for i := range b.Products {
		if b.Products[i].ID == id {
			return true
		}
	}
	return false
}

// FindProduct returns the product with the given id, or nil.
func (b *BrandCatalog) FindProduct(id string) *Product {
	for i := range b.Products {
		if b.Products[i].ID == id {
			return &b.Products[i]
		}
	}
	return nil
}

// VariantCount sums the SKU-level variants across the brand's products.
func (b *BrandCatalog) VariantCount() int {
	n := 0
	for i := range b.Products {
		n += len(b.Products[i].Variants)
	}
	return n
}

// SchemaVersion is stamped into every document for future migrations.
const SchemaVersion = "1.0.0"

// Document is the persisted per-category aggregate of all brand catalogs
// plus derived counts. It is created on first write and mutated only by
// orchestrator merges and learner appends.
type Document struct {
	Category      Category        `json:"category"`
	SchemaVersion string          `json:"schemaVersion"`
	Brands        []*BrandCatalog `json:"brands"`
	ProductCount  int             `json:"productCount"`
	VariantCount  int             `json:"variantCount"`
	LastUpdated   time.Time       `json:"lastUpdated"`
}

// NewDocument creates an empty document for a category.
func NewDocument(category Category) *Document {
	return &Document{
		Category:      category,
		SchemaVersion: SchemaVersion,
		Brands:        []*BrandCatalog{},
	}
}

// Brand returns the brand catalog matching name case-insensitively, or nil.
func (d *Document) Brand(name string) *BrandCatalog {
	for _, b := range d.Brands {
		if strings.EqualFold(b.Name, name) {
			return b
		}
	}
	return nil
}

// EnsureBrand returns the existing brand catalog for name or appends a new
// empty one.
func (d *Document) EnsureBrand(name string) *BrandCatalog {
	if b := d.Brand(name); b != nil {
		return b
	}
	b := &BrandCatalog{Name: name, Aliases: []string{}, Products: []Product{}}
	d.Brands = append(d.Brands, b)
	return b
}

// Recount recomputes the derived product and variant counts from the brand
// lists. Stores call it on every save so the aggregates never drift.
func (d *Document) Recount() {
	products, variants := 0, 0
	for _, b := range d.Brands {
		products += len(b.Products)
		variants += b.VariantCount()
	}
	d.ProductCount = products
	d.VariantCount = variants
}
