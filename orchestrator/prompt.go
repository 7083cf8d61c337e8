package orchestrator

import (
	"fmt"
	"strings"
)

// systemPrompt frames the model as a product-data researcher for one
// category.
func systemPrompt(cfg Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a product data researcher for the %s category.\n\n", strings.ToUpper(string(cfg.Category)))
	fmt.Fprintf(&b, "Your mission: build a comprehensive product catalog covering %s brands from %d-%d, at SKU-level granularity.\n\n",
		cfg.Category, cfg.Years.Min, cfg.Years.Max)
	fmt.Fprintf(&b, "Subcategories to cover: %s\n\n", strings.Join(cfg.Subcategories, ", "))
	b.WriteString("For each product, collect:\n")
	b.WriteString("1. Name and model number\n")
	b.WriteString("2. Release year and MSRP\n")
	b.WriteString("3. All colorways and variants\n")
	fmt.Fprintf(&b, "4. Specifications: %s\n", strings.Join(cfg.SpecKeys, ", "))
	b.WriteString("5. Visual identification features (colors, patterns, finish, design cues)\n")
	b.WriteString("6. Search keywords\n\n")
	fmt.Fprintf(&b, "Retailers for data validation: %s\n\n", strings.Join(cfg.Retailers, ", "))
	b.WriteString("Respond with JSON only. No prose before or after the JSON.")
	return b.String()
}

// brandPrompt asks for every product of one brand in the configured year
// range. The requested JSON shape matches the response decoder exactly.
func brandPrompt(cfg Config, brand string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Collect every product released by %s in the %s category from %d-%d.\n\n",
		brand, cfg.Category, cfg.Years.Min, cfg.Years.Max)
	b.WriteString("Quality requirements:\n")
	b.WriteString("- Every colorway or configuration as a separate variant entry\n")
	b.WriteString("- Accurate release years\n")
	b.WriteString("- Complete specifications\n")
	b.WriteString("- Distinguishing visual features\n")
	b.WriteString("- Include discontinued products from the year range\n\n")
	b.WriteString("Output format: a JSON object {\"products\": [...]} where each product is:\n")
	b.WriteString(productSchema(cfg, brand))
	return b.String()
}

func productSchema(cfg Config, brand string) string {
	specLines := make([]string, len(cfg.SpecKeys))
	for i, k := range cfg.SpecKeys {
		specLines[i] = fmt.Sprintf("    %q: \"value\"", k)
	}
	return fmt.Sprintf(`{
  "name": "Product Name",
  "brand": %q,
  "subcategory": "one of: %s",
  "releaseYear": 2024,
  "msrp": 499,
  "modelNumber": "model number if known",
  "visualSignature": {
    "primaryColors": ["black", "white"],
    "secondaryColors": ["red"],
    "colorwayName": "Stealth Black",
    "patterns": ["solid"],
    "finish": "matte",
    "designCues": ["feature1", "feature2"],
    "distinguishingFeatures": ["unique aspects"],
    "logoPlacement": "where the logo sits"
  },
  "specifications": {
%s
  },
  "variants": [
    {
      "variantName": "Variant Name",
      "sku": "SKU if known",
      "colorway": "colorway name",
      "availability": "current | discontinued | limited",
      "price": 499,
      "imageUrl": "https://..."
    }
  ],
  "searchKeywords": ["keywords"],
  "aliases": ["alternate names"],
  "description": "one sentence",
  "productUrl": "https://...",
  "dataConfidence": 85
}`, brand, strings.Join(cfg.Subcategories, ", "), strings.Join(specLines, ",\n"))
}
