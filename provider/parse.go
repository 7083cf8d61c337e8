package provider

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// rawVariant mirrors the variant shape requested from the model. All fields
// are optional; validation supplies defaults.
type rawVariant struct {
	SKU            string            `json:"sku"`
	Name           string            `json:"variantName"`
	Specifications map[string]string `json:"specifications"`
	Colorway       string            `json:"colorway"`
	Availability   string            `json:"availability"`
	Price          float64           `json:"price"`
	ImageURL       string            `json:"imageUrl"`
}

// rawSignature mirrors the visual signature shape requested from the model.
type rawSignature struct {
	PrimaryColors          []string `json:"primaryColors"`
	SecondaryColors        []string `json:"secondaryColors"`
	ColorwayName           string   `json:"colorwayName"`
	Patterns               []string `json:"patterns"`
	Finish                 string   `json:"finish"`
	DesignCues             []string `json:"designCues"`
	DistinguishingFeatures []string `json:"distinguishingFeatures"`
	LogoPlacement          string   `json:"logoPlacement"`
}

// rawProduct is the untrusted product shape decoded from model output.
// Every field is re-checked by Validate before anything reaches the catalog.
type rawProduct struct {
	Name            string            `json:"name"`
	Brand           string            `json:"brand"`
	Subcategory     string            `json:"subcategory"`
	ReleaseYear     int               `json:"releaseYear"`
	MSRP            float64           `json:"msrp"`
	VisualSignature rawSignature      `json:"visualSignature"`
	Specifications  map[string]string `json:"specifications"`
	ModelNumber     string            `json:"modelNumber"`
	Variants        []rawVariant      `json:"variants"`
	SearchKeywords  []string          `json:"searchKeywords"`
	Aliases         []string          `json:"aliases"`
	Description     string            `json:"description"`
	ProductURL      string            `json:"productUrl"`
	Confidence      float64           `json:"dataConfidence"`
}

var fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// ParseProducts decodes a model response into raw product items. It accepts
// a bare JSON array, an object with a "products" array, and either of those
// wrapped in a markdown code fence. Individual items that fail to decode
// are dropped rather than failing the batch; a response with no decodable
// JSON at all returns ErrParse.
func ParseProducts(raw string) ([]rawProduct, error) {
	payload, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(payload, &items); err != nil {
		var envelope struct {
			Products []json.RawMessage `json:"products"`
		}
		if err := json.Unmarshal(payload, &envelope); err != nil || envelope.Products == nil {
			return nil, fmt.Errorf("%w: neither array nor products object", ErrParse)
		}
		items = envelope.Products
	}

	products := make([]rawProduct, 0, len(items))
	for _, item := range items {
		var p rawProduct
		if err := json.Unmarshal(item, &p); err != nil {
			continue // one malformed item must not sink the batch
		}
		products = append(products, p)
	}
	return products, nil
}

// extractJSON returns the JSON payload of a possibly markdown-wrapped
// response: direct JSON first, then a ```json fence, then the widest bare
// array found in the text.
func extractJSON(raw string) ([]byte, error) {
	trimmed := strings.TrimSpace(raw)
	if json.Valid([]byte(trimmed)) {
		return []byte(trimmed), nil
	}
	if m := fenceRe.FindStringSubmatch(trimmed); m != nil {
		inner := strings.TrimSpace(m[1])
		if json.Valid([]byte(inner)) {
			return []byte(inner), nil
		}
	}
	if start, end := strings.Index(trimmed, "["), strings.LastIndex(trimmed, "]"); start >= 0 && end > start {
		candidate := trimmed[start : end+1]
		if json.Valid([]byte(candidate)) {
			return []byte(candidate), nil
		}
	}
	return nil, fmt.Errorf("%w: no JSON payload found", ErrParse)
}
