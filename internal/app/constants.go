package app

import (
	"fmt"
	"slices"
)

// CheckRoundsOption rejects a rounds target that is not among the offered options.
// An empty options list accepts any positive target.
func CheckRoundsOption(options []int, rounds int) error {
	if rounds <= 0 {
		return ErrInvalidConfiguration
	}
	if len(options) > 0 && !slices.Contains(options, rounds) {
		return fmt.Errorf("rounds %d not offered: %w", rounds, ErrInvalidConfiguration)
	}
	return nil
}
