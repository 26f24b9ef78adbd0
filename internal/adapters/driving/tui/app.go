package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/recetasu/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/recetasu/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/recetasu/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/recetasu/internal/adapters/driving/tui/views/detail"
	"github.com/custodia-labs/recetasu/internal/adapters/driving/tui/views/form"
	"github.com/custodia-labs/recetasu/internal/adapters/driving/tui/views/landing"
	"github.com/custodia-labs/recetasu/internal/adapters/driving/tui/views/recipes"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea. All state changes
// happen on the Bubbletea event loop; remote calls run as commands and
// report back through messages.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	landingView *landing.View
	recipesView *recipes.View
	detailView  *detail.View
	formView    *form.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// returnView is where the form or help view goes back to.
	returnView messages.ViewType

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	source := ""
	if ports.Settings != nil {
		if settings, err := ports.Settings.Get(); err == nil {
			source = settings.API.BaseURL
		}
	}

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		landingView: landing.NewView(s, source),
		recipesView: recipes.NewView(s, km, ports.Catalog),
		detailView:  detail.NewView(s, km, ports.Comments),
		formView:    form.NewView(s, km, ports.Catalog),
		currentView: messages.ViewLanding,
		returnView:  messages.ViewLanding,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.recipesView.WithContext(ctx)
	a.detailView.WithContext(ctx)
	a.formView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("recetasu"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message router
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.updateCurrent(msg)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.LoadRequested, messages.RecipesLoaded, messages.RecipeDeleted, spinner.TickMsg:
		a.recipesView, cmd = a.recipesView.Update(msg)
		return a, cmd

	case messages.RecipeSelected:
		a.currentView = messages.ViewDetail
		return a, a.detailView.SetRecipe(msg.Recipe)

	case messages.FormRequested:
		a.returnView = a.currentView
		a.currentView = messages.ViewForm
		return a, a.formView.Open(msg.Recipe)

	case messages.FormCancelled:
		a.currentView = a.returnView
		return a, nil

	case messages.RecipeSaved:
		return a, a.handleSaved(msg)

	case messages.CommentsLoaded, messages.CommentAdded:
		a.detailView, cmd = a.detailView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.updateCurrent(msg)
}

// handleSaved finishes a create or update. A failed save keeps the form
// open with an alert; a save that completes after the form was closed
// still refreshes the list.
func (a *App) handleSaved(msg messages.RecipeSaved) tea.Cmd {
	a.formView.Update(msg)
	if msg.Err != nil {
		a.err = msg.Err
		return nil
	}

	a.recipesView.Refresh()
	if a.currentView != messages.ViewForm {
		return nil
	}
	if !msg.Created && a.returnView == messages.ViewDetail {
		a.currentView = messages.ViewDetail
		return a.detailView.SetRecipe(msg.Recipe)
	}
	a.currentView = messages.ViewRecipes
	return nil
}

func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	if view == messages.ViewHelp {
		if a.currentView != messages.ViewHelp {
			a.returnView = a.currentView
		}
		a.currentView = view
		return nil
	}

	a.currentView = view
	if view == messages.ViewRecipes {
		return a.recipesView.Init()
	}
	return nil
}

func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewLanding:
		a.landingView, cmd = a.landingView.Update(msg)
	case messages.ViewRecipes:
		a.recipesView, cmd = a.recipesView.Update(msg)
	case messages.ViewDetail:
		a.detailView, cmd = a.detailView.Update(msg)
	case messages.ViewForm:
		a.formView, cmd = a.formView.Update(msg)
	case messages.ViewHelp:
		if k, ok := msg.(tea.KeyMsg); ok {
			switch k.String() {
			case "esc", "?", "q":
				a.currentView = a.returnView
			}
		}
	}
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewRecipes:
		return a.recipesView.View()
	case messages.ViewDetail:
		return a.detailView.View()
	case messages.ViewForm:
		return a.formView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.landingView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")

	sections := []string{"Navigation", "Recipes", "Editing", "Forms", "General"}
	for i, group := range a.keymap.FullHelp() {
		b.WriteString(a.styles.Subtitle.Render(sections[i]))
		b.WriteString("\n")
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-12s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}

	b.WriteString(a.styles.Help.Render("[esc] back"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.landingView.SetDimensions(width, height)
	a.recipesView.SetDimensions(width, height)
	a.detailView.SetDimensions(width, height)
	a.formView.SetDimensions(width, height)
}
