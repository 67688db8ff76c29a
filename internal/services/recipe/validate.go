package recipe

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fitchef/ember/internal/errors"
)

// ParseGenerationResult runs the full strip/parse/validate pipeline over a
// raw model reply. It returns MalformedResponseError when the cleaned text
// is not valid JSON and InvalidRecipeShapeError when the parsed object does
// not conform to the required recipe shape.
func ParseGenerationResult(raw string) (*GenerationResult, error) {
	clean := StripCodeFences(raw)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		return nil, errors.NewMalformedResponseError("model reply is not valid JSON", err)
	}

	return ValidateGenerationResult(parsed)
}

// ValidateGenerationResult checks an untrusted parsed object against the
// required recipe shape and assembles the validated value objects. Checks
// are fail-fast: the error names the first field that did not conform. The
// thought field is advisory only and its absence never fails validation.
func ValidateGenerationResult(parsed map[string]any) (*GenerationResult, error) {
	rawRecipe, ok := parsed["recipe"].(map[string]any)
	if !ok {
		return nil, errors.NewInvalidRecipeShapeError("recipe", nil)
	}

	name, ok := rawRecipe["recipeName"].(string)
	if !ok || strings.TrimSpace(name) == "" {
		return nil, errors.NewInvalidRecipeShapeError("recipe.recipeName", nil)
	}

	rawIngredients, ok := rawRecipe["ingredients"].([]any)
	if !ok || len(rawIngredients) == 0 {
		return nil, errors.NewInvalidRecipeShapeError("recipe.ingredients", nil)
	}
	ingredients := make([]Ingredient, 0, len(rawIngredients))
	for i, raw := range rawIngredients {
		entry, ok := raw.(map[string]any)
		if !ok {
			return nil, errors.NewInvalidRecipeShapeError(fmt.Sprintf("recipe.ingredients[%d]", i), nil)
		}
		ingredient, ok := entry["ingredient"].(string)
		if !ok || strings.TrimSpace(ingredient) == "" {
			return nil, errors.NewInvalidRecipeShapeError(fmt.Sprintf("recipe.ingredients[%d].ingredient", i), nil)
		}
		quantity, ok := entry["quantity"].(string)
		if !ok || strings.TrimSpace(quantity) == "" {
			return nil, errors.NewInvalidRecipeShapeError(fmt.Sprintf("recipe.ingredients[%d].quantity", i), nil)
		}
		ingredients = append(ingredients, Ingredient{Ingredient: ingredient, Quantity: quantity})
	}

	rawMacros, ok := rawRecipe["macros"].(map[string]any)
	if !ok {
		return nil, errors.NewInvalidRecipeShapeError("recipe.macros", nil)
	}
	macros, err := validateMacros(rawMacros)
	if err != nil {
		return nil, err
	}

	rawSteps, ok := rawRecipe["steps"].([]any)
	if !ok || len(rawSteps) == 0 {
		return nil, errors.NewInvalidRecipeShapeError("recipe.steps", nil)
	}
	steps := make([]string, 0, len(rawSteps))
	for i, raw := range rawSteps {
		step, ok := raw.(string)
		if !ok || strings.TrimSpace(step) == "" {
			return nil, errors.NewInvalidRecipeShapeError(fmt.Sprintf("recipe.steps[%d]", i), nil)
		}
		steps = append(steps, step)
	}

	thought, _ := parsed["thought"].(string)

	return &GenerationResult{
		Thought: thought,
		Recipe: Recipe{
			RecipeName:  name,
			Ingredients: ingredients,
			Macros:      macros,
			Steps:       steps,
		},
	}, nil
}

func validateMacros(raw map[string]any) (Macros, error) {
	fields := []struct {
		key  string
		unit string
		dst  *string
	}{
		{"protein", UnitGrams, nil},
		{"carbs", UnitGrams, nil},
		{"fats", UnitGrams, nil},
		{"calories", UnitKcal, nil},
	}

	var macros Macros
	fields[0].dst = &macros.Protein
	fields[1].dst = &macros.Carbs
	fields[2].dst = &macros.Fats
	fields[3].dst = &macros.Calories

	for _, f := range fields {
		value, ok := raw[f.key]
		if !ok {
			return Macros{}, errors.NewInvalidRecipeShapeError("recipe.macros."+f.key, nil)
		}
		normalized := NormalizeMacro(value, f.unit)
		if !MacroPattern(f.unit).MatchString(normalized) {
			return Macros{}, errors.NewInvalidRecipeShapeError("recipe.macros."+f.key, nil)
		}
		*f.dst = normalized
	}

	return macros, nil
}
