// Package recipes provides the searchable recipe list view.
package recipes

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/recetasu/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/recetasu/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/recetasu/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/recetasu/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/recetasu/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/recetasu/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/recetasu/internal/core/domain"
	"github.com/custodia-labs/recetasu/internal/core/ports/driving"
)

// View is the recipe list with search, category filter and card list.
// It never mutates the collection itself; it issues commands against
// the catalog and re-renders from it when they complete.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.RecipeList
	statusbar *status.Bar

	catalog driving.CatalogService
	ctx     context.Context

	category string
	banner   string
	alert    string
	confirm  *domain.Recipe

	width  int
	height int
	ready  bool
}

// NewView creates a new recipe list view.
func NewView(s *styles.Styles, km *keymap.KeyMap, catalog driving.CatalogService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s, km)
	bar.SetHints(km.RecipesHelp())

	return &View{
		styles:    s,
		keymap:    km,
		input:     input.NewSearchInput(s),
		list:      list.NewRecipeList(s),
		statusbar: bar,
		catalog:   catalog,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context used for remote calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the collection on first entry and refreshes it otherwise.
func (v *View) Init() tea.Cmd {
	if v.catalog == nil {
		return nil
	}
	if !v.catalog.Loaded() {
		return v.Load()
	}
	v.Refresh()
	return nil
}

// Load starts a reload of the collection.
func (v *View) Load() tea.Cmd {
	if v.catalog == nil {
		return nil
	}
	tick := v.statusbar.SetState(status.StateLoading)
	catalog, ctx := v.catalog, v.ctx
	return tea.Batch(tick, func() tea.Msg {
		return messages.RecipesLoaded{Err: catalog.Load(ctx)}
	})
}

// Update handles messages for the recipe list.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		v.statusbar, cmd = v.statusbar.Update(msg)
		return v, cmd

	case messages.LoadRequested:
		return v, v.Load()

	case messages.RecipesLoaded:
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage("")
		if msg.Err != nil {
			v.banner = domain.DescribeLoadError(msg.Err)
		} else {
			v.banner = ""
		}
		v.Refresh()
		return v, nil

	case messages.RecipeDeleted:
		v.statusbar.SetState(status.StateReady)
		if msg.Err != nil {
			v.alert = "Could not delete the recipe: " + msg.Err.Error()
			v.statusbar.SetMessage("")
		} else {
			v.alert = ""
			v.statusbar.SetMessage("Recipe deleted")
		}
		v.Refresh()
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	if v.confirm != nil {
		switch {
		case keymap.Matches(key, v.keymap.Confirm):
			return v, v.deleteConfirmed()
		case keymap.Matches(key, v.keymap.Deny):
			v.confirm = nil
		}
		return v, nil
	}

	if v.input.Focused() {
		if msg.Type == tea.KeyEsc || msg.Type == tea.KeyEnter {
			v.input.Blur()
			return v, nil
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		v.Refresh()
		return v, cmd
	}

	switch {
	case keymap.Matches(key, v.keymap.Search):
		return v, v.input.Focus()

	case keymap.Matches(key, v.keymap.Category):
		v.cycleCategory()
		return v, nil

	case keymap.Matches(key, v.keymap.Up), keymap.Matches(key, v.keymap.Down):
		var cmd tea.Cmd
		v.list, cmd = v.list.Update(msg)
		return v, cmd

	case keymap.Matches(key, v.keymap.New):
		v.alert = ""
		return v, func() tea.Msg { return messages.FormRequested{} }

	case keymap.Matches(key, v.keymap.Edit):
		recipe := v.list.SelectedRecipe()
		if recipe == nil {
			return v, nil
		}
		v.alert = ""
		return v, func() tea.Msg { return messages.FormRequested{Recipe: recipe} }

	case keymap.Matches(key, v.keymap.Delete):
		v.confirm = v.list.SelectedRecipe()
		v.alert = ""
		return v, nil

	case keymap.Matches(key, v.keymap.Select):
		recipe := v.list.SelectedRecipe()
		if recipe == nil {
			return v, nil
		}
		return v, func() tea.Msg { return messages.RecipeSelected{Recipe: *recipe} }

	case keymap.Matches(key, v.keymap.Reload):
		v.alert = ""
		return v, v.Load()

	case keymap.Matches(key, v.keymap.Help):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewHelp} }

	case keymap.Matches(key, v.keymap.Back):
		v.Reset()
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewLanding} }
	}

	return v, nil
}

func (v *View) deleteConfirmed() tea.Cmd {
	id := v.confirm.ID
	v.confirm = nil
	v.statusbar.SetMessage("Deleting...")
	tick := v.statusbar.SetState(status.StateSaving)
	catalog, ctx := v.catalog, v.ctx
	return tea.Batch(tick, func() tea.Msg {
		return messages.RecipeDeleted{ID: id, Err: catalog.Remove(ctx, id)}
	})
}

// cycleCategory moves to the next category in sorted order, with
// "all" before the first one.
func (v *View) cycleCategory() {
	options := append([]string{""}, v.catalog.Categories()...)
	next := 0
	for i, c := range options {
		if c == v.category {
			next = (i + 1) % len(options)
			break
		}
	}
	v.category = options[next]
	v.list.SetSelected(0)
	v.Refresh()
}

// Refresh recomputes the visible recipes from the catalog.
func (v *View) Refresh() {
	if v.catalog == nil {
		return
	}
	if v.category != "" && !contains(v.catalog.Categories(), v.category) {
		v.category = ""
	}
	v.list.SetRecipes(v.catalog.Filter(v.Filter()))
	v.statusbar.SetCount(v.list.Count())
}

// Reset clears the search term, category filter and transient messages.
func (v *View) Reset() {
	v.input.Reset()
	v.input.Blur()
	v.category = ""
	v.alert = ""
	v.confirm = nil
	v.statusbar.SetMessage("")
	v.list.SetSelected(0)
	v.Refresh()
}

// View renders the recipe list.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Recipes"))
	b.WriteString("\n\n")
	b.WriteString(v.input.View())
	b.WriteString("\n")
	b.WriteString(v.renderCategories())
	b.WriteString("\n\n")

	if v.banner != "" {
		b.WriteString(v.styles.Banner.Render(v.banner))
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Press r to retry."))
		b.WriteString("\n\n")
	}

	b.WriteString(v.renderBody())
	b.WriteString("\n")

	if v.confirm != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Delete %q? This cannot be undone. [y/n]", v.confirm.Name)))
		b.WriteString("\n")
	}
	if v.alert != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Alert.Render(v.alert))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.statusbar.View())

	return b.String()
}

func (v *View) renderCategories() string {
	var b strings.Builder
	b.WriteString(v.styles.Muted.Render("Category: "))
	options := []string{""}
	if v.catalog != nil {
		options = append(options, v.catalog.Categories()...)
	}
	for i, c := range options {
		label := c
		if c == "" {
			label = "All"
		}
		if i > 0 {
			b.WriteString(" ")
		}
		if c == v.category {
			b.WriteString(v.styles.Selected.Render(" " + label + " "))
		} else {
			b.WriteString(v.styles.Tag.Render(label))
		}
	}
	return b.String()
}

func (v *View) renderBody() string {
	if v.catalog == nil {
		return v.styles.Error.Render("Catalog service not available")
	}
	if !v.catalog.Loaded() {
		if v.statusbar.Busy() {
			return v.styles.Muted.Render("Loading recipes...")
		}
		return ""
	}

	var header string
	if v.Filter().IsActive() {
		header = fmt.Sprintf("Search results (%d)", v.list.Count())
	} else {
		header = fmt.Sprintf("All recipes (%d)", v.list.Count())
	}
	out := v.styles.Subtitle.Render(header) + "\n\n"

	switch {
	case v.catalog.Len() == 0:
		out += v.styles.Muted.Render("No recipes yet. Press n to create the first one.")
	case v.list.IsEmpty():
		out += v.styles.Muted.Render("No recipes match your search. Try another term or category.")
	default:
		out += v.list.View()
	}
	return out
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
	listHeight := height - 14
	if listHeight < 5 {
		listHeight = 5
	}
	v.list.SetDimensions(width, listHeight)
}

// Filter returns the active search term and category.
func (v *View) Filter() domain.RecipeFilter {
	return domain.RecipeFilter{Term: v.input.Value(), Category: v.category}
}

// Visible returns the recipes currently listed.
func (v *View) Visible() []domain.Recipe {
	return v.list.Recipes()
}

// Banner returns the load error message, if any.
func (v *View) Banner() string {
	return v.banner
}

// Alert returns the last action failure, if any.
func (v *View) Alert() string {
	return v.alert
}

// Confirming reports whether a delete confirmation is pending.
func (v *View) Confirming() bool {
	return v.confirm != nil
}

// Searching reports whether the search input has focus.
func (v *View) Searching() bool {
	return v.input.Focused()
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
