// Package form provides the create/edit recipe form.
package form

import (
	"context"
	"fmt"
	"strconv"
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

// Fixed field positions. Ingredient rows follow, three inputs each,
// and the preparation textarea comes last.
const (
	fieldName = iota
	fieldCategory
	fieldServings
	fieldTime
	fieldFirstIngredient
)

const columnsPerRow = 3

type ingredientRow struct {
	name     textinput.Model
	quantity textinput.Model
	unit     textinput.Model
}

func newIngredientRow(ing domain.Ingredient) ingredientRow {
	row := ingredientRow{
		name:     newInput("Ingredient", 60),
		quantity: newInput("Qty", 12),
		unit:     newInput("Unit", 16),
	}
	row.name.SetValue(ing.Name)
	row.quantity.SetValue(ing.Quantity)
	row.unit.SetValue(ing.Unit)
	return row
}

func (r *ingredientRow) input(col int) *textinput.Model {
	switch col {
	case 0:
		return &r.name
	case 1:
		return &r.quantity
	default:
		return &r.unit
	}
}

func (r *ingredientRow) empty() bool {
	return strings.TrimSpace(r.name.Value()) == "" &&
		strings.TrimSpace(r.quantity.Value()) == "" &&
		strings.TrimSpace(r.unit.Value()) == ""
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = ""
	return ti
}

// View is the recipe form. It edits a local draft only; the catalog
// is touched when the user saves.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	catalog driving.CatalogService
	ctx     context.Context

	editing    *domain.Recipe
	name       textinput.Model
	categories []string
	category   int
	servings   textinput.Model
	time       textinput.Model
	rows       []ingredientRow
	prep       textarea.Model

	focus  int
	saving bool
	alert  string

	width  int
	height int
	ready  bool
}

// NewView creates a new form view.
func NewView(s *styles.Styles, km *keymap.KeyMap, catalog driving.CatalogService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:  s,
		keymap:  km,
		catalog: catalog,
		ctx:     context.Background(),
		width:   80,
		height:  24,
	}
	v.Open(nil)
	return v
}

// WithContext sets the context used for remote calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Open resets the form for creating (nil) or editing a recipe.
func (v *View) Open(recipe *domain.Recipe) tea.Cmd {
	v.name = newInput("Recipe name", 120)
	v.servings = newInput("4", 4)
	v.time = newInput("30", 5)
	v.prep = textarea.New()
	v.prep.Placeholder = "Step by step..."
	v.prep.ShowLineNumbers = false
	v.prep.SetHeight(5)
	v.prep.CharLimit = 5000
	v.categories = append([]string(nil), domain.DefaultCategories...)
	v.category = 0
	v.rows = nil
	v.alert = ""
	v.saving = false
	v.editing = nil

	if recipe != nil {
		r := recipe.Clone()
		v.editing = &r
		v.name.SetValue(r.Name)
		v.servings.SetValue(strconv.Itoa(r.Servings))
		v.time.SetValue(strconv.Itoa(r.PreparationTime))
		v.prep.SetValue(r.Preparation)
		v.selectCategory(r.Category)
		for _, ing := range r.Ingredients {
			v.rows = append(v.rows, newIngredientRow(ing))
		}
	}
	if len(v.rows) == 0 {
		v.rows = append(v.rows, newIngredientRow(domain.Ingredient{}))
	}
	v.applyWidth()
	return v.setFocus(fieldName)
}

func (v *View) selectCategory(category string) {
	if category == "" {
		return
	}
	for i, c := range v.categories {
		if c == category {
			v.category = i
			return
		}
	}
	v.categories = append(v.categories, category)
	v.category = len(v.categories) - 1
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the form.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.RecipeSaved:
		v.saving = false
		if msg.Err != nil {
			v.alert = "Could not save the recipe: " + msg.Err.Error()
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	switch {
	case msg.Type == tea.KeyEsc:
		return v, func() tea.Msg { return messages.FormCancelled{} }
	case keymap.Matches(key, v.keymap.Save):
		return v, v.save()
	case msg.Type == tea.KeyTab:
		return v, v.setFocus((v.focus + 1) % v.fieldCount())
	case msg.Type == tea.KeyShiftTab:
		return v, v.setFocus((v.focus - 1 + v.fieldCount()) % v.fieldCount())
	case keymap.Matches(key, v.keymap.AddRow):
		return v, v.AddIngredient()
	case keymap.Matches(key, v.keymap.RemoveRow):
		return v, v.RemoveIngredient()
	}

	if v.focus == fieldCategory {
		switch {
		case keymap.Matches(key, v.keymap.Left):
			v.category = (v.category - 1 + len(v.categories)) % len(v.categories)
		case keymap.Matches(key, v.keymap.Right), key == " ":
			v.category = (v.category + 1) % len(v.categories)
		}
		return v, nil
	}

	var cmd tea.Cmd
	if v.focus == v.prepField() {
		v.prep, cmd = v.prep.Update(msg)
		return v, cmd
	}
	if in := v.focusedInput(); in != nil {
		*in, cmd = in.Update(msg)
	}
	return v, cmd
}

// AddIngredient appends an empty ingredient row and focuses it.
func (v *View) AddIngredient() tea.Cmd {
	v.rows = append(v.rows, newIngredientRow(domain.Ingredient{}))
	v.applyWidth()
	return v.setFocus(fieldFirstIngredient + (len(v.rows)-1)*columnsPerRow)
}

// RemoveIngredient removes the focused ingredient row. At least one
// row always remains.
func (v *View) RemoveIngredient() tea.Cmd {
	row, ok := v.focusedRow()
	if !ok || len(v.rows) <= 1 {
		return nil
	}
	v.rows = append(v.rows[:row], v.rows[row+1:]...)
	if row >= len(v.rows) {
		row = len(v.rows) - 1
	}
	return v.setFocus(fieldFirstIngredient + row*columnsPerRow)
}

func (v *View) fieldCount() int {
	return fieldFirstIngredient + len(v.rows)*columnsPerRow + 1
}

func (v *View) prepField() int {
	return v.fieldCount() - 1
}

func (v *View) focusedRow() (int, bool) {
	if v.focus < fieldFirstIngredient || v.focus >= v.prepField() {
		return 0, false
	}
	return (v.focus - fieldFirstIngredient) / columnsPerRow, true
}

func (v *View) focusedInput() *textinput.Model {
	switch v.focus {
	case fieldName:
		return &v.name
	case fieldServings:
		return &v.servings
	case fieldTime:
		return &v.time
	}
	if row, ok := v.focusedRow(); ok {
		col := (v.focus - fieldFirstIngredient) % columnsPerRow
		return v.rows[row].input(col)
	}
	return nil
}

func (v *View) setFocus(field int) tea.Cmd {
	if in := v.focusedInput(); in != nil {
		in.Blur()
	}
	v.prep.Blur()
	v.focus = field
	if field == v.prepField() {
		return v.prep.Focus()
	}
	if in := v.focusedInput(); in != nil {
		return in.Focus()
	}
	return nil
}

// Draft builds a recipe draft from the form fields. Blank ingredient
// rows are skipped.
func (v *View) Draft() (domain.RecipeDraft, error) {
	servings, err := parseNumber("servings", v.servings.Value())
	if err != nil {
		return domain.RecipeDraft{}, err
	}
	minutes, err := parseNumber("preparation time", v.time.Value())
	if err != nil {
		return domain.RecipeDraft{}, err
	}

	ingredients := make([]domain.Ingredient, 0, len(v.rows))
	for i := range v.rows {
		row := &v.rows[i]
		if row.empty() {
			continue
		}
		ingredients = append(ingredients, domain.Ingredient{
			Name:     strings.TrimSpace(row.name.Value()),
			Quantity: strings.TrimSpace(row.quantity.Value()),
			Unit:     strings.TrimSpace(row.unit.Value()),
		})
	}

	return domain.RecipeDraft{
		Name:            strings.TrimSpace(v.name.Value()),
		Servings:        servings,
		Ingredients:     ingredients,
		Preparation:     strings.TrimSpace(v.prep.Value()),
		PreparationTime: minutes,
		Category:        v.categories[v.category],
	}, nil
}

func parseNumber(field, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number", field)
	}
	return n, nil
}

func (v *View) save() tea.Cmd {
	if v.saving || v.catalog == nil {
		return nil
	}
	draft, err := v.Draft()
	if err == nil {
		err = draft.Validate()
	}
	if err != nil {
		v.alert = err.Error()
		return nil
	}

	v.saving = true
	v.alert = ""
	catalog, ctx := v.catalog, v.ctx
	if v.editing != nil {
		recipe := draft.WithID(v.editing.ID)
		return func() tea.Msg {
			saved, err := catalog.Replace(ctx, recipe)
			return messages.RecipeSaved{Recipe: saved, Err: err}
		}
	}
	return func() tea.Msg {
		saved, err := catalog.Add(ctx, draft)
		return messages.RecipeSaved{Recipe: saved, Created: true, Err: err}
	}
}

// View renders the form.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	title := "New recipe"
	if v.editing != nil {
		title = "Edit recipe"
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	b.WriteString(v.renderField(fieldName, "Name", v.name.View()))
	b.WriteString(v.renderField(fieldCategory, "Category", v.renderCategory()))
	b.WriteString(v.renderField(fieldServings, "Servings", v.servings.View()))
	b.WriteString(v.renderField(fieldTime, "Time (min)", v.time.View()))

	b.WriteString("\n")
	b.WriteString(v.styles.Subtitle.Render("Ingredients"))
	b.WriteString("\n")
	for i := range v.rows {
		row := &v.rows[i]
		base := fieldFirstIngredient + i*columnsPerRow
		cursor := "  "
		if r, ok := v.focusedRow(); ok && r == i {
			cursor = "> "
		}
		b.WriteString(cursor)
		b.WriteString(v.cell(base, row.name.View()))
		b.WriteString(" ")
		b.WriteString(v.cell(base+1, row.quantity.View()))
		b.WriteString(" ")
		b.WriteString(v.cell(base+2, row.unit.View()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Subtitle.Render("Preparation"))
	b.WriteString("\n")
	b.WriteString(v.prep.View())
	b.WriteString("\n")

	if v.saving {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Saving..."))
		b.WriteString("\n")
	}
	if v.alert != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Alert.Render(v.alert))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render(keymap.HelpLine(v.keymap.FormHelp())))
	return b.String()
}

func (v *View) renderField(field int, label, value string) string {
	cursor := "  "
	style := v.styles.Muted
	if v.focus == field {
		cursor = "> "
		style = v.styles.Title
	}
	return cursor + style.Render(fmt.Sprintf("%-11s", label)) + " " + value + "\n"
}

func (v *View) renderCategory() string {
	label := v.categories[v.category]
	if v.focus == fieldCategory {
		return v.styles.Selected.Render("◀ " + label + " ▶")
	}
	return v.styles.Tag.Render(label)
}

func (v *View) cell(field int, content string) string {
	if v.focus == field {
		return v.styles.FocusedField.Render(content)
	}
	return v.styles.InputField.Render(content)
}

func (v *View) applyWidth() {
	w := v.width - 20
	if w < 20 {
		w = 20
	}
	v.name.Width = w
	v.servings.Width = 6
	v.time.Width = 6
	for i := range v.rows {
		v.rows[i].name.Width = w / 2
		v.rows[i].quantity.Width = 8
		v.rows[i].unit.Width = 10
	}
	v.prep.SetWidth(w)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.applyWidth()
}

// Editing returns the recipe being edited, or nil when creating.
func (v *View) Editing() *domain.Recipe {
	return v.editing
}

// Rows returns the number of ingredient rows.
func (v *View) Rows() int {
	return len(v.rows)
}

// Category returns the selected category.
func (v *View) Category() string {
	return v.categories[v.category]
}

// Alert returns the last failure message, if any.
func (v *View) Alert() string {
	return v.alert
}

// Saving reports whether a save is in flight.
func (v *View) Saving() bool {
	return v.saving
}
