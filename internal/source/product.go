package source

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"searchbox/internal/autocomplete"
	"searchbox/internal/domain"
)

// ProductStyles styles the two-line product rows.
type ProductStyles struct {
	Title    lipgloss.Style
	Price    lipgloss.Style
	Subtitle lipgloss.Style
	Match    lipgloss.Style
}

func DefaultProductStyles() ProductStyles {
	return ProductStyles{
		Title:    lipgloss.NewStyle().Bold(true),
		Price:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")), // green
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Match:    lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220")),
	}
}

// ProductItem is a custom suggestion showing a product name with its price
// and, below, its description. Matches of the query are highlighted.
type ProductItem struct {
	Product domain.Product
	query   string
	width   int
	styles  ProductStyles
}

// NewProductItem creates an item rendered within width cells.
func NewProductItem(p domain.Product, query string, width int, styles ProductStyles) *ProductItem {
	return &ProductItem{Product: p, query: query, width: width, styles: styles}
}

// ProductSuggestions wraps products as custom suggestions. A nil slice stays nil.
func ProductSuggestions(products []domain.Product, query string, width int) []autocomplete.Suggestion {
	if products == nil {
		return nil
	}
	items := make([]*ProductItem, len(products))
	styles := DefaultProductStyles()
	for i, p := range products {
		items[i] = NewProductItem(p, query, width, styles)
	}
	return autocomplete.Items(items)
}

func (p *ProductItem) SearchText() string {
	return p.Product.Name
}

func (p *ProductItem) Render() string {
	price := p.styles.Price.Render(FormatPrice(p.Product.Price))
	title := Highlight(p.Product.Name, p.query, p.styles.Title, p.styles.Match.Bold(true))

	gap := p.width - lipgloss.Width(title) - lipgloss.Width(price)
	if gap < 1 {
		gap = 1
	}
	row := title + strings.Repeat(" ", gap) + price
	if p.Product.Description == "" {
		return row
	}

	sub := Highlight(p.Product.Description, p.query, p.styles.Subtitle, p.styles.Match)
	if p.width > 0 {
		sub = lipgloss.NewStyle().MaxWidth(p.width).Render(sub)
	}
	return row + "\n" + sub
}

// FormatPrice formats prices the way the catalog shows them, e.g. $2.5.
func FormatPrice(price float64) string {
	return fmt.Sprintf("$%g", price)
}
