package recipe

// Ingredient is one entry of a recipe's ingredient list. Order is the
// serving/listing order and is meaningful.
type Ingredient struct {
	Ingredient string `json:"ingredient"`
	Quantity   string `json:"quantity"`
}

// Macros holds the canonicalized macro strings for a recipe. Each value is
// "<number><unit>" with g for protein/carbs/fats and kcal for calories.
type Macros struct {
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fats     string `json:"fats"`
	Calories string `json:"calories"`
}

// Recipe is the validated output unit of a generation. It is immutable once
// produced; consumers copy it but never mutate it.
type Recipe struct {
	RecipeName  string       `json:"recipeName"`
	Ingredients []Ingredient `json:"ingredients"`
	Macros      Macros       `json:"macros"`
	Steps       []string     `json:"steps"`
}

// GenerationResult pairs a validated recipe with the model's advisory
// reasoning. Thought may be empty; it is never authoritative.
type GenerationResult struct {
	Thought string `json:"thought,omitempty"`
	Recipe  Recipe `json:"recipe"`
}
