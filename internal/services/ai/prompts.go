package ai

import (
	"fmt"
	"strings"
)

// Generation always asks for English; translation is a separate call.
const recipeTemplate = "Using these ingredients: %s. " +
	"Please suggest a creative and easy-to-make recipe with detailed step-by-step instructions. " +
	"Write the recipe in English."

const translationTemplate = "Translate the following text to %s:\n\n%s"

// BuildRecipePrompt embeds the raw ingredient text in the recipe request.
// The input is interpolated as-is; it is not escaped.
func BuildRecipePrompt(ingredients string) string {
	return fmt.Sprintf(recipeTemplate, ingredients)
}

// BuildTranslationPrompt asks for text to be translated into the language named by label.
// label is the native-script display name, not the selector key.
func BuildTranslationPrompt(text, label string) string {
	var sb strings.Builder
	sb.Grow(len(translationTemplate) + len(label) + len(text))
	fmt.Fprintf(&sb, translationTemplate, label, text)
	return sb.String()
}
