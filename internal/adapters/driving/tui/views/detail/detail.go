// Package detail provides the recipe detail view with comments.
package detail

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/recetasu/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/recetasu/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/recetasu/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/recetasu/internal/core/domain"
	"github.com/custodia-labs/recetasu/internal/core/ports/driving"
)

// Comment form focus positions.
const (
	focusNone = iota
	focusAuthor
	focusRating
	focusContent
)

// View shows one recipe, its rating summary and its comments.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	comments driving.CommentService
	ctx      context.Context

	recipe  domain.Recipe
	summary domain.RecipeWithComments
	loading bool

	author  textinput.Model
	content textarea.Model
	rating  int
	focus   int
	saving  bool
	alert   string

	width  int
	height int
	ready  bool
}

// NewView creates a new detail view.
func NewView(s *styles.Styles, km *keymap.KeyMap, comments driving.CommentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	author := textinput.New()
	author.Placeholder = "Your name"
	author.CharLimit = 60

	content := textarea.New()
	content.Placeholder = "What did you think?"
	content.ShowLineNumbers = false
	content.SetHeight(3)
	content.CharLimit = 1000

	return &View{
		styles:   s,
		keymap:   km,
		comments: comments,
		ctx:      context.Background(),
		author:   author,
		content:  content,
		rating:   domain.MaxRating,
		width:    80,
		height:   24,
	}
}

// WithContext sets the context used for store calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetRecipe shows recipe and starts loading its comments.
func (v *View) SetRecipe(recipe domain.Recipe) tea.Cmd {
	v.recipe = recipe
	v.summary = domain.NewRecipeWithComments(recipe, nil)
	v.alert = ""
	v.resetForm()

	if v.comments == nil {
		return nil
	}
	v.loading = true
	comments, ctx := v.comments, v.ctx
	return func() tea.Msg {
		summary, err := comments.Summary(ctx, recipe)
		return messages.CommentsLoaded{RecipeID: recipe.ID, Summary: summary, Err: err}
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.CommentsLoaded:
		if msg.RecipeID != v.recipe.ID {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.alert = "Could not load comments: " + msg.Err.Error()
			return v, nil
		}
		v.summary = msg.Summary
		return v, nil

	case messages.CommentAdded:
		v.saving = false
		if msg.Err != nil {
			v.alert = "Could not save the comment: " + msg.Err.Error()
			return v, nil
		}
		if msg.Comment.RecipeID != v.recipe.ID {
			return v, nil
		}
		comments := append([]domain.Comment{msg.Comment}, v.summary.Comments...)
		v.summary = domain.NewRecipeWithComments(v.recipe, comments)
		v.alert = ""
		v.resetForm()
		return v, nil

	case tea.KeyMsg:
		if v.focus != focusNone {
			return v.handleFormKey(msg)
		}
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Comment):
		v.alert = ""
		return v, v.setFocus(focusAuthor)

	case keymap.Matches(key, v.keymap.Edit):
		recipe := v.recipe
		return v, func() tea.Msg { return messages.FormRequested{Recipe: &recipe} }

	case keymap.Matches(key, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewRecipes} }
	}
	return v, nil
}

func (v *View) handleFormKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEsc:
		v.resetForm()
		v.alert = ""
		return v, nil
	case tea.KeyTab:
		return v, v.setFocus(v.focus%focusContent + 1)
	case tea.KeyShiftTab:
		prev := v.focus - 1
		if prev < focusAuthor {
			prev = focusContent
		}
		return v, v.setFocus(prev)
	case tea.KeyCtrlS:
		return v, v.submit()
	}

	var cmd tea.Cmd
	switch v.focus {
	case focusAuthor:
		v.author, cmd = v.author.Update(msg)
	case focusRating:
		switch msg.String() {
		case "left", "h", "-":
			if v.rating > domain.MinRating {
				v.rating--
			}
		case "right", "l", "+":
			if v.rating < domain.MaxRating {
				v.rating++
			}
		}
	case focusContent:
		v.content, cmd = v.content.Update(msg)
	}
	return v, cmd
}

func (v *View) setFocus(focus int) tea.Cmd {
	v.focus = focus
	v.author.Blur()
	v.content.Blur()
	switch focus {
	case focusAuthor:
		return v.author.Focus()
	case focusContent:
		return v.content.Focus()
	}
	return nil
}

func (v *View) submit() tea.Cmd {
	if v.saving || v.comments == nil {
		return nil
	}
	draft := domain.CommentDraft{
		Author:  v.author.Value(),
		Content: v.content.Value(),
		Rating:  v.rating,
	}
	if err := draft.Validate(); err != nil {
		v.alert = err.Error()
		return nil
	}

	v.saving = true
	comments, ctx, id := v.comments, v.ctx, v.recipe.ID
	return func() tea.Msg {
		c, err := comments.Add(ctx, id, draft)
		return messages.CommentAdded{Comment: c, Err: err}
	}
}

func (v *View) resetForm() {
	v.author.Reset()
	v.content.Reset()
	v.author.Blur()
	v.content.Blur()
	v.rating = domain.MaxRating
	v.focus = focusNone
	v.saving = false
}

// View renders the recipe and its comments.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	r := v.recipe
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(r.Name))
	b.WriteString("\n")
	category := r.Category
	if category == "" {
		category = "Uncategorised"
	}
	b.WriteString(v.styles.Tag.Render(category))
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  ·  %d min  ·  %d servings", r.PreparationTime, r.Servings)))
	b.WriteString("\n")
	b.WriteString(v.renderRating())
	b.WriteString("\n\n")

	b.WriteString(v.styles.Subtitle.Render("Ingredients"))
	b.WriteString("\n")
	for _, ing := range r.Ingredients {
		b.WriteString("  • " + v.styles.Normal.Render(ing.Name))
		if amount := strings.TrimSpace(ing.Quantity + " " + ing.Unit); amount != "" {
			b.WriteString(v.styles.Muted.Render("  " + amount))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(v.styles.Subtitle.Render("Preparation"))
	b.WriteString("\n")
	for _, line := range strings.Split(r.Preparation, "\n") {
		b.WriteString("  " + v.styles.Normal.Render(line) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Comments (%d)", v.summary.TotalComments)))
	b.WriteString("\n")
	if v.focus != focusNone {
		b.WriteString(v.renderForm())
		b.WriteString("\n")
	}
	if v.alert != "" {
		b.WriteString(v.styles.Alert.Render(v.alert))
		b.WriteString("\n")
	}
	b.WriteString(v.renderComments())

	b.WriteString("\n")
	help := keymap.HelpLine(v.keymap.DetailHelp())
	if v.focus != focusNone {
		help = "[tab] next field  [←/→] rating  [ctrl+s] post  [esc] cancel"
	}
	b.WriteString(v.styles.Help.Render(help))

	return b.String()
}

func (v *View) renderRating() string {
	if v.summary.TotalComments == 0 {
		return v.styles.Muted.Render("No reviews yet")
	}
	reviews := "reviews"
	if v.summary.TotalComments == 1 {
		reviews = "review"
	}
	return v.styles.Star.Render(Stars(int(math.Round(v.summary.AverageRating)))) +
		v.styles.Normal.Render(fmt.Sprintf(" %s", domain.FormatRating(v.summary.AverageRating))) +
		v.styles.Muted.Render(fmt.Sprintf(" (%d %s)", v.summary.TotalComments, reviews))
}

func (v *View) renderForm() string {
	field := func(focus int) string {
		if v.focus == focus {
			return "> "
		}
		return "  "
	}

	var b strings.Builder
	b.WriteString(field(focusAuthor) + v.author.View() + "\n")
	b.WriteString(field(focusRating) + "Rating: " + v.styles.Star.Render(Stars(v.rating)) +
		v.styles.Muted.Render(fmt.Sprintf(" %d/%d", v.rating, domain.MaxRating)) + "\n")
	b.WriteString(field(focusContent) + "\n" + v.content.View() + "\n")
	if v.saving {
		b.WriteString(v.styles.Muted.Render("Posting...") + "\n")
	}
	return b.String()
}

func (v *View) renderComments() string {
	if v.loading {
		return v.styles.Muted.Render("Loading comments...") + "\n"
	}
	if len(v.summary.Comments) == 0 {
		return v.styles.Muted.Render("Be the first to comment. Press c.") + "\n"
	}

	var b strings.Builder
	for _, c := range v.summary.Comments {
		b.WriteString(v.styles.Star.Render(Stars(c.Rating)) + " ")
		b.WriteString(v.styles.Normal.Render(c.Author))
		b.WriteString(v.styles.Muted.Render("  " + c.CreatedAt.Local().Format("2006-01-02 15:04")))
		b.WriteString("\n")
		b.WriteString("  " + v.styles.Normal.Render(c.Content) + "\n")
	}
	return b.String()
}

// Stars renders a 1..5 rating as filled and empty stars.
func Stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > domain.MaxRating {
		rating = domain.MaxRating
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", domain.MaxRating-rating)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	w := width - 6
	if w < 20 {
		w = 20
	}
	v.author.Width = w
	v.content.SetWidth(w)
}

// Recipe returns the recipe shown.
func (v *View) Recipe() domain.Recipe {
	return v.recipe
}

// Summary returns the comments and rating summary shown.
func (v *View) Summary() domain.RecipeWithComments {
	return v.summary
}

// Alert returns the last failure message, if any.
func (v *View) Alert() string {
	return v.alert
}

// Commenting reports whether the comment form is open.
func (v *View) Commenting() bool {
	return v.focus != focusNone
}

// Rating returns the rating selected in the comment form.
func (v *View) Rating() int {
	return v.rating
}
