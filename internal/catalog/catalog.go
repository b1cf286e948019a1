// Package catalog serves a small OData-style product catalog over HTTP so the
// demo can run without network access.
package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"searchbox/internal/domain"
)

// filterPattern matches the only filter the catalog understands:
// substringof('<text>',Description), with '' escaping a quote.
var filterPattern = regexp.MustCompile(`^\s*substringof\(\s*'((?:[^']|'')*)'\s*,\s*Description\s*\)\s*$`)

// Catalog is an immutable product list.
type Catalog struct {
	products []domain.Product
}

func New(products []domain.Product) *Catalog {
	return &Catalog{products: append([]domain.Product(nil), products...)}
}

// Seeded returns a catalog holding the OData reference products.
func Seeded() *Catalog {
	return New(SeedProducts())
}

func SeedProducts() []domain.Product {
	return []domain.Product{
		{ID: 0, Name: "Bread", Description: "Whole grain bread", Price: 2.5},
		{ID: 1, Name: "Milk", Description: "Low fat milk", Price: 3.5},
		{ID: 2, Name: "Vint soda", Description: "Americana Variety - Mix of 6 flavors", Price: 20.9},
		{ID: 3, Name: "Havina Cola", Description: "The Original Key Lime Cola", Price: 19.9},
		{ID: 4, Name: "Fruit Punch", Description: "Mango flavor, 8.3 Ounce Cans (Pack of 24)", Price: 22.99},
		{ID: 5, Name: "Cranberry Juice", Description: "16-Ounce Plastic Bottles (Pack of 12)", Price: 22.8},
		{ID: 6, Name: "Pink Lemonade", Description: "36 Ounce Cans (Pack of 3)", Price: 18.8},
		{ID: 7, Name: "DVD Player", Description: "1080P Upconversion DVD Player", Price: 35.88},
		{ID: 8, Name: "LCD HDTV", Description: "42 inch 1080p LCD with Built-in Blu-ray Disc Player", Price: 1088.8},
	}
}

func (c *Catalog) Len() int {
	return len(c.products)
}

// Search returns the products whose description contains needle, matching
// case-sensitively. An empty needle matches everything.
func (c *Catalog) Search(needle string) []domain.Product {
	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if strings.Contains(p.Description, needle) {
			out = append(out, p)
		}
	}
	return out
}

// ParseFilter extracts the search text from an OData $filter expression.
func ParseFilter(filter string) (string, error) {
	if strings.TrimSpace(filter) == "" {
		return "", nil
	}
	m := filterPattern.FindStringSubmatch(filter)
	if m == nil {
		return "", fmt.Errorf("unsupported filter %q", filter)
	}
	return strings.ReplaceAll(m[1], "''", "'"), nil
}
