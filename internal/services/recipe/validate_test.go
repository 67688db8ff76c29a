package recipe

import (
	"errors"
	"strings"
	"testing"

	apperrors "github.com/fitchef/ember/internal/errors"
)

const wellFormedReply = `{
	"thought": "High protein, minimal prep.",
	"recipe": {
		"recipeName": "Turkey Skillet",
		"ingredients": [
			{"ingredient": "ground turkey", "quantity": "250g"},
			{"ingredient": "bell pepper", "quantity": "1 large"}
		],
		"macros": {"protein": "28g", "carbs": "12g", "fats": "9g", "calories": "280kcal"},
		"steps": ["Brown the turkey.", "Add the peppers.", "Simmer for five minutes."]
	}
}`

func TestParseGenerationResult(t *testing.T) {
	result, err := ParseGenerationResult(wellFormedReply)
	if err != nil {
		t.Fatalf("ParseGenerationResult() error = %v", err)
	}

	if result.Thought != "High protein, minimal prep." {
		t.Errorf("Thought = %q", result.Thought)
	}
	if result.Recipe.RecipeName != "Turkey Skillet" {
		t.Errorf("RecipeName = %q", result.Recipe.RecipeName)
	}
	if len(result.Recipe.Ingredients) != 2 {
		t.Fatalf("got %d ingredients, want 2", len(result.Recipe.Ingredients))
	}
	if result.Recipe.Ingredients[1].Quantity != "1 large" {
		t.Errorf("Ingredients[1].Quantity = %q", result.Recipe.Ingredients[1].Quantity)
	}
	if result.Recipe.Macros.Protein != "28g" || result.Recipe.Macros.Calories != "280kcal" {
		t.Errorf("Macros = %+v", result.Recipe.Macros)
	}
	if len(result.Recipe.Steps) != 3 {
		t.Errorf("got %d steps, want 3", len(result.Recipe.Steps))
	}
}

func TestParseGenerationResultFencedEquivalence(t *testing.T) {
	fenced := "```json\n" + wellFormedReply + "\n```"

	plain, err := ParseGenerationResult(wellFormedReply)
	if err != nil {
		t.Fatalf("plain reply: %v", err)
	}
	wrapped, err := ParseGenerationResult(fenced)
	if err != nil {
		t.Fatalf("fenced reply: %v", err)
	}
	if plain.Recipe.RecipeName != wrapped.Recipe.RecipeName || plain.Recipe.Macros != wrapped.Recipe.Macros {
		t.Errorf("fenced reply parsed differently: %+v vs %+v", plain.Recipe, wrapped.Recipe)
	}
}

func TestParseGenerationResultNormalizesMacros(t *testing.T) {
	raw := `{
		"recipe": {
			"recipeName": "Turkey Skillet",
			"ingredients": [{"ingredient": "ground turkey", "quantity": "250g"}],
			"macros": {"protein": 28, "carbs": "12 g", "fats": "9gg", "calories": 280},
			"steps": ["Brown the turkey."]
		}
	}`

	result, err := ParseGenerationResult(raw)
	if err != nil {
		t.Fatalf("ParseGenerationResult() error = %v", err)
	}

	m := result.Recipe.Macros
	if m.Protein != "28g" {
		t.Errorf("Protein = %q, want 28g", m.Protein)
	}
	if m.Carbs != "12g" {
		t.Errorf("Carbs = %q, want 12g", m.Carbs)
	}
	if m.Fats != "9g" {
		t.Errorf("Fats = %q, want 9g", m.Fats)
	}
	if m.Calories != "280kcal" {
		t.Errorf("Calories = %q, want 280kcal", m.Calories)
	}
}

func TestParseGenerationResultMissingThought(t *testing.T) {
	raw := `{
		"recipe": {
			"recipeName": "Turkey Skillet",
			"ingredients": [{"ingredient": "ground turkey", "quantity": "250g"}],
			"macros": {"protein": "28g", "carbs": "12g", "fats": "9g", "calories": "280kcal"},
			"steps": ["Brown the turkey."]
		}
	}`

	result, err := ParseGenerationResult(raw)
	if err != nil {
		t.Fatalf("a missing thought must not fail validation: %v", err)
	}
	if result.Thought != "" {
		t.Errorf("Thought = %q, want empty", result.Thought)
	}
}

func TestParseGenerationResultMalformedJSON(t *testing.T) {
	for _, raw := range []string{"", "not json", "{\"recipe\":", "```json\n{broken\n```"} {
		_, err := ParseGenerationResult(raw)
		if err == nil {
			t.Fatalf("ParseGenerationResult(%q) expected error", raw)
		}
		if apperrors.TypeOf(err) != apperrors.ErrorTypeMalformedResponse {
			t.Errorf("ParseGenerationResult(%q) error type = %v, want malformed response", raw, apperrors.TypeOf(err))
		}
	}
}

func TestParseGenerationResultShapeErrors(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantField string
	}{
		{
			"missing recipe",
			`{"thought": "x"}`,
			"recipe",
		},
		{
			"recipe not an object",
			`{"recipe": []}`,
			"recipe",
		},
		{
			"empty recipe name",
			`{"recipe": {"recipeName": " ", "ingredients": [{"ingredient": "a", "quantity": "1"}], "macros": {"protein": "1g", "carbs": "1g", "fats": "1g", "calories": "17kcal"}, "steps": ["Cook."]}}`,
			"recipe.recipeName",
		},
		{
			"empty ingredients",
			`{"recipe": {"recipeName": "X", "ingredients": [], "macros": {"protein": "1g", "carbs": "1g", "fats": "1g", "calories": "17kcal"}, "steps": ["Cook."]}}`,
			"recipe.ingredients",
		},
		{
			"ingredient missing quantity",
			`{"recipe": {"recipeName": "X", "ingredients": [{"ingredient": "a"}], "macros": {"protein": "1g", "carbs": "1g", "fats": "1g", "calories": "17kcal"}, "steps": ["Cook."]}}`,
			"recipe.ingredients[0].quantity",
		},
		{
			"missing macro key",
			`{"recipe": {"recipeName": "X", "ingredients": [{"ingredient": "a", "quantity": "1"}], "macros": {"protein": "1g", "carbs": "1g", "fats": "1g"}, "steps": ["Cook."]}}`,
			"recipe.macros.calories",
		},
		{
			"macro with no digits",
			`{"recipe": {"recipeName": "X", "ingredients": [{"ingredient": "a", "quantity": "1"}], "macros": {"protein": "lots", "carbs": "1g", "fats": "1g", "calories": "17kcal"}, "steps": ["Cook."]}}`,
			"recipe.macros.protein",
		},
		{
			"missing steps",
			`{"recipe": {"recipeName": "X", "ingredients": [{"ingredient": "a", "quantity": "1"}], "macros": {"protein": "1g", "carbs": "1g", "fats": "1g", "calories": "17kcal"}}}`,
			"recipe.steps",
		},
		{
			"empty step",
			`{"recipe": {"recipeName": "X", "ingredients": [{"ingredient": "a", "quantity": "1"}], "macros": {"protein": "1g", "carbs": "1g", "fats": "1g", "calories": "17kcal"}, "steps": [""]}}`,
			"recipe.steps[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGenerationResult(tt.raw)
			if err == nil {
				t.Fatal("expected a shape error")
			}
			var appErr *apperrors.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("error %v is not an AppError", err)
			}
			if appErr.Type != apperrors.ErrorTypeInvalidRecipeShape {
				t.Errorf("error type = %v, want invalid recipe shape", appErr.Type)
			}
			if !strings.Contains(appErr.Message, tt.wantField) {
				t.Errorf("error %q does not name field %q", appErr.Message, tt.wantField)
			}
		})
	}
}
