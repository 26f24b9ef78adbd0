package recipeapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/recetasu/internal/core/domain"
)

// Wire field names used by the remote service. Reads accept the
// fallback names listed in the field* slices; writes always use the first.
var (
	fieldID              = []string{"cod_receta", "id", "recipeId"}
	fieldName            = []string{"nombre_receta", "recipeName"}
	fieldServings        = []string{"porciones_receta", "servings"}
	fieldIngredients     = []string{"ingredientes_receta", "ingredients"}
	fieldPreparation     = []string{"preparacion_receta", "preparation"}
	fieldPreparationTime = []string{"tiempo_preparacion", "preparationTime"}
	fieldCategory        = []string{"categoria_receta", "category"}
)

// errNoIdentifier marks a wire object without a usable identifier.
var errNoIdentifier = errors.New("response missing identifier")

// recipeBody is the request payload for create and update.
// The identifier travels in the URL, never in the body.
type recipeBody struct {
	Name            string           `json:"nombre_receta"`
	Servings        int              `json:"porciones_receta"`
	Ingredients     []ingredientBody `json:"ingredientes_receta"`
	Preparation     string           `json:"preparacion_receta"`
	PreparationTime int              `json:"tiempo_preparacion"`
	Category        string           `json:"categoria_receta"`
}

type ingredientBody struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

func encodeDraft(d domain.RecipeDraft) recipeBody {
	ingredients := make([]ingredientBody, len(d.Ingredients))
	for i, ing := range d.Ingredients {
		ingredients[i] = ingredientBody(ing)
	}
	return recipeBody{
		Name:            d.Name,
		Servings:        d.Servings,
		Ingredients:     ingredients,
		Preparation:     d.Preparation,
		PreparationTime: d.PreparationTime,
		Category:        d.Category,
	}
}

// wireObject is a decoded JSON object with lookup by fallback names.
type wireObject map[string]json.RawMessage

// pick returns the first present, non-null value among keys.
func (o wireObject) pick(keys []string) (json.RawMessage, bool) {
	for _, k := range keys {
		raw, ok := o[k]
		if ok && !isNull(raw) {
			return raw, true
		}
	}
	return nil, false
}

// identifier resolves the recipe ID. A key whose value is not a
// positive integer does not count, so the next fallback is tried.
func (o wireObject) identifier() (int64, bool) {
	for _, k := range fieldID {
		raw, ok := o[k]
		if !ok || isNull(raw) {
			continue
		}
		if id, err := decodeInt(raw); err == nil && id > 0 {
			return id, true
		}
	}
	return 0, false
}

// decodeRecipeOnto overlays the fields present in raw onto base.
// Fields the remote omitted keep base's values.
func decodeRecipeOnto(base domain.Recipe, raw json.RawMessage) (domain.Recipe, error) {
	var obj wireObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return domain.Recipe{}, fmt.Errorf("decode recipe: %w", err)
	}
	r := base.Clone()

	if id, ok := obj.identifier(); ok {
		r.ID = id
	}
	if v, ok := obj.pick(fieldName); ok {
		s, err := decodeString(v)
		if err != nil {
			return domain.Recipe{}, fmt.Errorf("decode %s: %w", fieldName[0], err)
		}
		r.Name = s
	}
	if v, ok := obj.pick(fieldServings); ok {
		n, err := decodeInt(v)
		if err != nil {
			return domain.Recipe{}, fmt.Errorf("decode %s: %w", fieldServings[0], err)
		}
		r.Servings = int(n)
	}
	if v, ok := obj.pick(fieldIngredients); ok {
		ings, err := decodeIngredients(v)
		if err != nil {
			return domain.Recipe{}, fmt.Errorf("decode %s: %w", fieldIngredients[0], err)
		}
		r.Ingredients = ings
	}
	if v, ok := obj.pick(fieldPreparation); ok {
		s, err := decodeString(v)
		if err != nil {
			return domain.Recipe{}, fmt.Errorf("decode %s: %w", fieldPreparation[0], err)
		}
		r.Preparation = s
	}
	if v, ok := obj.pick(fieldPreparationTime); ok {
		n, err := decodeInt(v)
		if err != nil {
			return domain.Recipe{}, fmt.Errorf("decode %s: %w", fieldPreparationTime[0], err)
		}
		r.PreparationTime = int(n)
	}
	if v, ok := obj.pick(fieldCategory); ok {
		s, err := decodeString(v)
		if err != nil {
			return domain.Recipe{}, fmt.Errorf("decode %s: %w", fieldCategory[0], err)
		}
		r.Category = s
	}

	return r, nil
}

// unwrapEnvelope strips a {"data": ...} envelope if present.
func unwrapEnvelope(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &env); err == nil && len(env.Data) > 0 && !isNull(env.Data) {
		return bytes.TrimSpace(env.Data)
	}
	return trimmed
}

// firstElement accepts either a single object or an array and returns
// the object (or the array's first element).
func firstElement(raw json.RawMessage) (json.RawMessage, error) {
	raw = unwrapEnvelope(raw)
	if len(raw) == 0 {
		return nil, errNoIdentifier
	}
	if raw[0] != '[' {
		return raw, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(items) == 0 {
		return nil, errNoIdentifier
	}
	return items[0], nil
}

func decodeIngredients(raw json.RawMessage) ([]domain.Ingredient, error) {
	var items []wireObject
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	out := make([]domain.Ingredient, 0, len(items))
	for _, item := range items {
		var ing domain.Ingredient
		var err error
		if v, ok := item.pick([]string{"name"}); ok {
			if ing.Name, err = decodeString(v); err != nil {
				return nil, err
			}
		}
		if v, ok := item.pick([]string{"quantity"}); ok {
			if ing.Quantity, err = decodeString(v); err != nil {
				return nil, err
			}
		}
		if v, ok := item.pick([]string{"unit"}); ok {
			if ing.Unit, err = decodeString(v); err != nil {
				return nil, err
			}
		}
		out = append(out, ing)
	}
	return out, nil
}

// decodeString accepts a JSON string or number. Numbers keep their
// literal text, so a quantity of 1.5 reads as "1.5".
func decodeString(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}
	return "", fmt.Errorf("expected string, got %s", truncate(string(raw), 40))
}

// decodeInt accepts a JSON number or a numeric string. Whole floats
// such as 4.0 are accepted.
func decodeInt(raw json.RawMessage) (int64, error) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, fmt.Errorf("expected number, got %s", truncate(string(raw), 40))
		}
		n = json.Number(strings.TrimSpace(s))
	}
	if i, err := n.Int64(); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil || f != float64(int64(f)) {
		return 0, fmt.Errorf("expected integer, got %q", n.String())
	}
	return int64(f), nil
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// errorMessage extracts the remote's error detail from a response body.
func errorMessage(body []byte) string {
	var detail struct {
		Error   any    `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &detail); err == nil {
		switch e := detail.Error.(type) {
		case string:
			if e != "" {
				return e
			}
		case map[string]any:
			if msg, ok := e["message"].(string); ok && msg != "" {
				return msg
			}
		}
		if detail.Message != "" {
			return detail.Message
		}
	}
	return truncate(strings.TrimSpace(string(body)), maxErrorBody)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
