package validation

import (
	"strings"

	apperrors "github.com/socialchef/sous/internal/errors"
)

const ErrCodeEmptyIngredients = "EMPTY_INGREDIENTS"

// ValidateIngredients rejects input that is empty after trimming whitespace.
// No other structure is enforced.
func ValidateIngredients(ingredients string) error {
	if strings.TrimSpace(ingredients) == "" {
		return apperrors.NewValidationError(
			"Please enter some ingredients!",
			ErrCodeEmptyIngredients,
			"List the ingredients you have, separated by commas.",
		)
	}
	return nil
}

// SplitIngredients tokenises a comma separated list, dropping blanks.
// Used for log attributes only; prompts always receive the raw input.
func SplitIngredients(ingredients string) []string {
	var out []string
	for _, part := range strings.Split(ingredients, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
