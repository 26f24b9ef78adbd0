// Package landing provides the introduction screen of the TUI.
package landing

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/recetasu/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/recetasu/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/recetasu/internal/core/domain"
)

// Item represents a single landing option.
type Item struct {
	Label string
	View  messages.ViewType
	Quit  bool
}

var features = []string{
	"Search by recipe name or ingredient",
	"Filter by category",
	"Create, edit and delete recipes",
	"Rate and review with comments",
}

// View is the landing screen.
type View struct {
	styles   *styles.Styles
	items    []Item
	selected int
	source   string
	width    int
	height   int
	ready    bool
}

// NewView creates a new landing view. source is shown as the recipe
// service address and may be empty.
func NewView(s *styles.Styles, source string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		items: []Item{
			{Label: "Browse recipes", View: messages.ViewRecipes},
			{Label: "Help", View: messages.ViewHelp},
			{Label: "Quit", Quit: true},
		},
		source: source,
		width:  80,
		height: 24,
	}
}

// Init initialises the landing view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the landing view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
		case "down", "j":
			if v.selected < len(v.items)-1 {
				v.selected++
			}
		case "enter":
			item := v.items[v.selected]
			if item.Quit {
				return v, tea.Quit
			}
			return v, func() tea.Msg {
				return messages.ViewChanged{View: item.View}
			}
		case "?":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewHelp}
			}
		case "q":
			return v, tea.Quit
		}
	}

	return v, nil
}

// View renders the landing screen.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("RecetasU"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Your recipe book in the terminal"))
	b.WriteString("\n\n")

	for _, f := range features {
		b.WriteString(v.styles.Success.Render("  ✓ "))
		b.WriteString(v.styles.Normal.Render(f))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(v.styles.Subtitle.Render("Categories"))
	b.WriteString("\n")
	b.WriteString(v.styles.Tag.Render("  " + strings.Join(domain.DefaultCategories, " · ")))
	b.WriteString("\n\n")

	for i, item := range v.items {
		if i == v.selected {
			b.WriteString("> " + v.styles.Title.Render(item.Label))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(item.Label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.source != "" {
		b.WriteString(v.styles.Muted.Render("Recipe service: " + v.source))
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [?] Help  [q] Quit"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}
