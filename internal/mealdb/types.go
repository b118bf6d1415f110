package mealdb

import (
	"fmt"
	"strings"
)

// maxIngredientSlots is the number of numbered ingredient/measure fields
// the upstream API exposes per meal.
const maxIngredientSlots = 20

// Ingredient is one (ingredient, measure) pair from a recipe.
type Ingredient struct {
	Name    string `json:"name"`
	Measure string `json:"measure,omitempty"`
}

// Recipe is the normalized projection of an upstream meal record.
// The upstream's numbered strIngredientN/strMeasureN fields are folded
// into an ordered Ingredients slice at the gateway boundary so callers
// never probe dynamic field names.
type Recipe struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Category     string       `json:"category,omitempty"`
	Area         string       `json:"area,omitempty"`
	Instructions string       `json:"instructions,omitempty"`
	Thumbnail    string       `json:"thumbnail,omitempty"`
	Tags         string       `json:"tags,omitempty"`
	YouTube      string       `json:"youtube,omitempty"`
	Ingredients  []Ingredient `json:"ingredients"`
}

// mealsEnvelope is the upstream response shape. The API returns
// {"meals": null} for empty results, which decodes to a nil slice.
type mealsEnvelope struct {
	Meals []map[string]any `json:"meals"`
}

// stringField reads a string-valued field from a raw meal object,
// treating absent values and JSON null as empty.
func stringField(raw map[string]any, key string) string {
	value, ok := raw[key]
	if !ok || value == nil {
		return ""
	}
	s, ok := value.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// normalizeMeal converts a raw upstream meal object into a Recipe.
func normalizeMeal(raw map[string]any) Recipe {
	recipe := Recipe{
		ID:           stringField(raw, "idMeal"),
		Name:         stringField(raw, "strMeal"),
		Category:     stringField(raw, "strCategory"),
		Area:         stringField(raw, "strArea"),
		Instructions: stringField(raw, "strInstructions"),
		Thumbnail:    stringField(raw, "strMealThumb"),
		Tags:         stringField(raw, "strTags"),
		YouTube:      stringField(raw, "strYoutube"),
		Ingredients:  make([]Ingredient, 0, maxIngredientSlots),
	}

	for i := 1; i <= maxIngredientSlots; i++ {
		name := stringField(raw, fmt.Sprintf("strIngredient%d", i))
		if name == "" {
			continue
		}
		recipe.Ingredients = append(recipe.Ingredients, Ingredient{
			Name:    name,
			Measure: stringField(raw, fmt.Sprintf("strMeasure%d", i)),
		})
	}

	return recipe
}

// normalizeMeals converts a raw meals list into recipes. A nil input
// (upstream null) yields an empty, non-nil slice so callers never branch
// on absence versus emptiness.
func normalizeMeals(raw []map[string]any) []Recipe {
	recipes := make([]Recipe, 0, len(raw))
	for _, meal := range raw {
		recipes = append(recipes, normalizeMeal(meal))
	}
	return recipes
}
