package provider

import (
	"time"

	"github.com/hupe1980/catalogmesh/catalog"
)

const defaultConfidence = 80

// Validate converts untrusted raw products into catalog products for the
// requested (category, brand) pair. Items without a name are dropped, the
// product id is always re-derived from brand and name, unknown enum values
// are coerced to safe defaults, and the confidence score is clamped to
// [0,100]. Category and source are forced: the model does not get a vote on
// either.
func Validate(category catalog.Category, brand string, raws []rawProduct) []catalog.Product {
	now := time.Now().UTC()
	out := make([]catalog.Product, 0, len(raws))

	for _, r := range raws {
		if r.Name == "" {
			continue
		}
		b := r.Brand
		if b == "" {
			b = brand
		}

		p := catalog.Product{
			ID:              catalog.ProductID(b, r.Name),
			Name:            r.Name,
			Brand:           b,
			Category:        category,
			Subcategory:     r.Subcategory,
			ReleaseYear:     r.ReleaseYear,
			MSRP:            r.MSRP,
			VisualSignature: validateSignature(r.VisualSignature),
			Specifications:  r.Specifications,
			ModelNumber:     r.ModelNumber,
			Variants:        validateVariants(r.Variants),
			SearchKeywords:  r.SearchKeywords,
			Aliases:         r.Aliases,
			Description:     r.Description,
			ProductURL:      r.ProductURL,
			Source:          catalog.SourceProvider,
			Confidence:      clampConfidence(r.Confidence),
			LastUpdated:     now,
		}
		if p.ReleaseYear <= 0 {
			p.ReleaseYear = now.Year()
		}
		if p.Variants == nil {
			p.Variants = []catalog.ProductVariant{}
		}
		if p.SearchKeywords == nil {
			p.SearchKeywords = []string{}
		}
		out = append(out, p)
	}
	return out
}

func clampConfidence(v float64) int {
	if v <= 0 {
		return defaultConfidence
	}
	if v > 100 {
		return 100
	}
	return int(v)
}

func validateSignature(r rawSignature) catalog.VisualSignature {
	sig := catalog.VisualSignature{
		PrimaryColors:          nonNil(r.PrimaryColors),
		SecondaryColors:        r.SecondaryColors,
		ColorwayName:           r.ColorwayName,
		DesignCues:             r.DesignCues,
		DistinguishingFeatures: r.DistinguishingFeatures,
		LogoPlacement:          r.LogoPlacement,
	}
	for _, p := range r.Patterns {
		pat := catalog.Pattern(p)
		if !catalog.ValidPattern(pat) {
			pat = catalog.PatternOther
		}
		sig.Patterns = append(sig.Patterns, pat)
	}
	if len(sig.Patterns) == 0 {
		sig.Patterns = []catalog.Pattern{PatternDefault}
	}
	if f := catalog.Finish(r.Finish); r.Finish != "" && catalog.ValidFinish(f) {
		sig.Finish = f
	}
	return sig
}

// PatternDefault is the pattern assumed when the model supplies none.
const PatternDefault = catalog.PatternSolid

func validateVariants(raws []rawVariant) []catalog.ProductVariant {
	if len(raws) == 0 {
		return nil
	}
	out := make([]catalog.ProductVariant, 0, len(raws))
	for _, r := range raws {
		if r.Name == "" && r.SKU == "" {
			continue
		}
		av := catalog.Availability(r.Availability)
		if !catalog.ValidAvailability(av) {
			av = catalog.AvailabilityCurrent
		}
		out = append(out, catalog.ProductVariant{
			SKU:            r.SKU,
			Name:           r.Name,
			Specifications: r.Specifications,
			Colorway:       r.Colorway,
			Availability:   av,
			Price:          r.Price,
			ImageURL:       r.ImageURL,
		})
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Decode parses and validates a raw model response in one step. A response
// carrying no decodable JSON returns a non-retryable *Error wrapping
// ErrParse so the task fails without spending further provider quota.
func Decode(category catalog.Category, brand, raw string) ([]catalog.Product, error) {
	raws, err := ParseProducts(raw)
	if err != nil {
		return nil, &Error{Op: "decode " + brand, Err: err}
	}
	return Validate(category, brand, raws), nil
}
