package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	threshold int
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(threshold int) *HelpRenderer {
	return &HelpRenderer{threshold: threshold}
}

// RenderHelpContent generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	line := func(k, desc string) string {
		return fmt.Sprintf("  %-12s %s\n", keyStyle.Render(k), descStyle.Render(desc))
	}

	var help strings.Builder

	help.WriteString(titleStyle.Render("Search Box Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Search boxes"))
	help.WriteString("\n")
	help.WriteString(line("type", "Edit the query; suggestions follow every keystroke"))
	help.WriteString(line("tab", "Next search box"))
	help.WriteString(line("shift+tab", "Previous search box"))
	help.WriteString(line("esc", "Close the suggestions"))
	help.WriteString(line("click", "Focus a box, pick a row, or close by clicking elsewhere"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Suggestion list"))
	help.WriteString("\n")
	help.WriteString(line("↓", "Move from the input into the list"))
	help.WriteString(line("↑/↓", "Previous/next suggestion, ↑ on the first row returns to the input"))
	help.WriteString(line("tab", "Next suggestion"))
	help.WriteString(line("enter", "Choose the suggestion"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Product search"))
	help.WriteString("\n")
	help.WriteString(descStyle.Render(fmt.Sprintf(
		"  Looks products up by description once the query has %d or more characters.", r.threshold)))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	help.WriteString(line("F1", "Show this help"))
	help.WriteString(line("ctrl+c", "Quit"))

	return help.String()
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// give ov time to leave the alternate screen
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
