// Package learner folds high-confidence identification sightings into the
// catalog. It is the feedback loop of the system: products the collection
// runs missed but live identification keeps seeing are appended as learned
// entries, so the catalog improves with use.
package learner

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/catalogmesh/catalog"
	"github.com/hupe1980/catalogmesh/logging"
)

// MinConfidence is the gate for absorbing a sighting, on the candidate's
// 0-1 score scale.
const MinConfidence = 0.75

// fuzzyLengthRatio is the minimum shorter/longer name length ratio for a
// containment match to count as a duplicate. Keeps "TSR3" from matching
// "TSR3 Driver Limited Tour Edition".
const fuzzyLengthRatio = 0.7

// Candidate is an identification sighting offered to the learner. Category
// is free text and gets normalized; Confidence uses the 0-1 identification
// scale, not the catalog's 0-100 data score.
type Candidate struct {
	Brand          string            `json:"brand"`
	Name           string            `json:"name"`
	Category       string            `json:"category"`
	Subcategory    string            `json:"subcategory,omitempty"`
	Description    string            `json:"description,omitempty"`
	Confidence     float64           `json:"confidence"`
	ReleaseYear    int               `json:"releaseYear,omitempty"`
	MSRP           float64           `json:"msrp,omitempty"`
	ProductURL     string            `json:"productUrl,omitempty"`
	ImageURL       string            `json:"imageUrl,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
}

// Outcome reports whether a candidate was absorbed and why not if it
// wasn't. A duplicate skip is a normal outcome, not an error.
type Outcome struct {
	Added  bool   `json:"added"`
	Reason string `json:"reason"`
}

// BatchOutcome aggregates a batch of learn attempts.
type BatchOutcome struct {
	Added   int           `json:"added"`
	Skipped int           `json:"skipped"`
	Details []BatchDetail `json:"details"`
}

// BatchDetail is one candidate's outcome within a batch.
type BatchDetail struct {
	Product string `json:"product"`
	Added   bool   `json:"added"`
	Reason  string `json:"reason"`
}

// Options configures the learner.
type Options struct {
	Logger logging.Logger
}

// Learner absorbs sightings into the catalog store. Each instance owns its
// session cache of recently added products, so concurrent learners over
// different stores do not interfere.
type Learner struct {
	store catalog.Store
	opts  Options

	mu   sync.Mutex
	seen map[string]struct{}
}

// New creates a learner over the given catalog store.
func New(store catalog.Store, optFns ...func(o *Options)) *Learner {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Learner{
		store: store,
		opts:  opts,
		seen:  make(map[string]struct{}),
	}
}

// LearnProduct absorbs one candidate. The gate order is confidence,
// required fields, session cache, exact duplicate, fuzzy duplicate; only a
// candidate passing all of them mutates the store.
func (l *Learner) LearnProduct(c Candidate) (Outcome, error) {
	if c.Confidence < MinConfidence {
		return Outcome{Reason: fmt.Sprintf("confidence too low: %.2f < %.2f", c.Confidence, MinConfidence)}, nil
	}
	if c.Brand == "" || c.Name == "" {
		return Outcome{Reason: "missing brand or name"}, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key := sessionKey(c.Brand, c.Name)
	if _, ok := l.seen[key]; ok {
		return Outcome{Reason: "product already exists: added this session"}, nil
	}

	category := catalog.NormalizeCategory(c.Category)

	doc, err := l.store.Load(category)
	if err != nil {
		if err != catalog.ErrNotFound {
			return Outcome{}, fmt.Errorf("load catalog %s: %w", category, err)
		}
		doc = catalog.NewDocument(category)
	}

	if brand := doc.Brand(c.Brand); brand != nil {
		if dup := findDuplicate(brand, c.Name); dup != "" {
			return Outcome{Reason: fmt.Sprintf("product already exists: %s", dup)}, nil
		}
	}

	product := l.buildProduct(category, c)

	brand := doc.EnsureBrand(c.Brand)
	brand.Products = append(brand.Products, product)
	brand.LastUpdated = product.LastUpdated

	if err := l.store.Save(doc); err != nil {
		return Outcome{}, fmt.Errorf("save catalog %s: %w", category, err)
	}

	l.seen[key] = struct{}{}
	l.opts.Logger.Info("learned product",
		"category", category, "brand", c.Brand, "name", c.Name, "confidence", c.Confidence)
	return Outcome{Added: true, Reason: "added to catalog"}, nil
}

// LearnProducts absorbs a batch sequentially. Items are independent: a
// persistence error stops the batch, everything absorbed so far stays.
func (l *Learner) LearnProducts(candidates []Candidate) (BatchOutcome, error) {
	var out BatchOutcome
	for _, c := range candidates {
		outcome, err := l.LearnProduct(c)
		if err != nil {
			return out, err
		}
		out.Details = append(out.Details, BatchDetail{
			Product: c.Brand + " " + c.Name,
			Added:   outcome.Added,
			Reason:  outcome.Reason,
		})
		if outcome.Added {
			out.Added++
		} else {
			out.Skipped++
		}
	}
	return out, nil
}

func (l *Learner) buildProduct(category catalog.Category, c Candidate) catalog.Product {
	now := time.Now().UTC()

	description := c.Description
	if description == "" {
		description = c.Brand + " " + c.Name
	}
	subcategory := c.Subcategory
	if subcategory == "" {
		subcategory = detectSubcategory(c.Name, c.Category)
	}
	releaseYear := c.ReleaseYear
	if releaseYear <= 0 {
		releaseYear = now.Year()
	}

	return catalog.Product{
		ID:              catalog.ProductID(c.Brand, c.Name),
		Name:            c.Name,
		Brand:           c.Brand,
		Category:        category,
		Subcategory:     subcategory,
		ReleaseYear:     releaseYear,
		MSRP:            c.MSRP,
		VisualSignature: catalog.DefaultVisualSignature(),
		Specifications:  c.Specifications,
		Variants:        []catalog.ProductVariant{},
		SearchKeywords:  searchKeywords(c.Brand, c.Name),
		Aliases:         []string{},
		Description:     description,
		ProductURL:      c.ProductURL,
		ImageURL:        c.ImageURL,
		Source:          catalog.SourceLearned,
		Confidence:      int(c.Confidence * 100),
		LastUpdated:     now,
	}
}

func sessionKey(brand, name string) string {
	return strings.ToLower(brand) + "|" + strings.ToLower(name)
}

// findDuplicate returns the name of an existing product matching the
// candidate name, or "". Exact match is case-insensitive; the fuzzy pass
// treats containment between names of comparable length as the same
// product.
func findDuplicate(brand *catalog.BrandCatalog, name string) string {
	lower := strings.ToLower(name)
	for i := range brand.Products {
		existing := strings.ToLower(brand.Products[i].Name)
		if existing == lower {
			return brand.Products[i].Name
		}
		if fuzzyMatch(existing, lower) {
			return brand.Products[i].Name
		}
	}
	return ""
}

func fuzzyMatch(a, b string) bool {
	if !strings.Contains(a, b) && !strings.Contains(b, a) {
		return false
	}
	shorter, longer := len(a), len(b)
	if shorter > longer {
		shorter, longer = longer, shorter
	}
	if longer == 0 {
		return false
	}
	return float64(shorter)/float64(longer) > fuzzyLengthRatio
}

// searchKeywords builds the lookup terms for a learned product: the brand,
// each name word longer than two characters, the full name, and the
// brand-name combination.
func searchKeywords(brand, name string) []string {
	set := make(map[string]struct{})
	set[strings.ToLower(brand)] = struct{}{}
	for _, word := range strings.Fields(strings.ToLower(name)) {
		if len(word) > 2 {
			set[word] = struct{}{}
		}
	}
	set[strings.ToLower(name)] = struct{}{}
	set[strings.ToLower(brand+" "+name)] = struct{}{}

	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// detectSubcategory guesses a subcategory from the product name. Only golf
// has heuristics so far; everything else lands in "other".
func detectSubcategory(name, category string) string {
	if !strings.Contains(strings.ToLower(category), "golf") {
		return "other"
	}
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "driver"):
		return "drivers"
	case strings.Contains(lower, "fairway"), strings.Contains(lower, "wood"):
		return "fairway-woods"
	case strings.Contains(lower, "hybrid"), strings.Contains(lower, "rescue"):
		return "hybrids"
	case strings.Contains(lower, "iron"):
		return "irons"
	case strings.Contains(lower, "wedge"):
		return "wedges"
	case strings.Contains(lower, "putter"):
		return "putters"
	case strings.Contains(lower, "ball"):
		return "golf-balls"
	}
	return "other"
}
