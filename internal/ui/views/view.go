package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatusLevel selects the style of the status line.
type StatusLevel int

const (
	StatusInfo StatusLevel = iota
	StatusSuccess
	StatusError
)

// Section is one labelled search box.
type Section struct {
	Label  string
	Active bool
	Body   string
}

// Screen contains everything needed to draw the demo.
type Screen struct {
	Title       string
	Sections    []Section
	Status      string
	StatusLevel StatusLevel
	Help        string
}

// Point is a terminal cell.
type Point struct {
	X, Y int
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view and the top-left cell of every section
// body, so callers can route mouse clicks.
func (r *Renderer) Render(s Screen) (string, []Point) {
	origins := make([]Point, len(s.Sections))
	x := r.styles.Main.GetPaddingLeft() + r.styles.Main.GetMarginLeft()
	y := r.styles.Main.GetPaddingTop() + r.styles.Main.GetMarginTop()

	parts := make([]string, 0, 2*len(s.Sections)+3)
	title := r.styles.Title.Render(s.Title)
	parts = append(parts, title)
	y += lipgloss.Height(title)

	for i, sec := range s.Sections {
		if i > 0 {
			parts = append(parts, "")
			y++
		}
		label := r.styles.Label.Render(sec.Label)
		if sec.Active {
			label = r.styles.ActiveLabel.Render(sec.Label)
		}
		parts = append(parts, label)
		y += lipgloss.Height(label)

		origins[i] = Point{X: x, Y: y}
		parts = append(parts, sec.Body)
		y += lipgloss.Height(sec.Body)
	}

	parts = append(parts, "", r.renderStatus(s))
	if s.Help != "" {
		parts = append(parts, r.styles.Help.Render(s.Help))
	}

	return r.styles.Main.Render(lipgloss.JoinVertical(lipgloss.Left, parts...)), origins
}

func (r *Renderer) renderStatus(s Screen) string {
	msg := strings.TrimSpace(s.Status)
	if msg == "" {
		return r.styles.Dim.Render("Type to search, ↓ to pick a suggestion")
	}
	switch s.StatusLevel {
	case StatusError:
		return r.styles.StatusError.Render(msg)
	case StatusSuccess:
		return r.styles.StatusSuccess.Render(msg)
	default:
		return r.styles.Status.Render(msg)
	}
}
