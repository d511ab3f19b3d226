package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactotal/internal/apperror"
)

const (
	MinDigit = 1
	MaxDigit = 9
)

// NumberPool tracks which digits have been placed on the board by either player.
type NumberPool [MaxDigit + 1]bool

func IsValidDigit(digit int) bool {
	return digit >= MinDigit && digit <= MaxDigit
}

func (that *NumberPool) IsUsed(digit int) bool {
	if !IsValidDigit(digit) {
		return false
	}

	return that[digit]
}

func (that *NumberPool) MarkUsed(digit int) error {
	if !IsValidDigit(digit) {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidDigit, digit)
	}

	if that[digit] {
		return fmt.Errorf("%w: %d", apperror.ErrAlreadyUsed, digit)
	}

	that[digit] = true

	return nil
}

// AvailableDigits - returns the unused digits in ascending order.
func (that *NumberPool) AvailableDigits() []int {
	digits := make([]int, 0, MaxDigit)
	for digit := MinDigit; digit <= MaxDigit; digit++ {
		if !that[digit] {
			digits = append(digits, digit)
		}
	}

	return digits
}

// Digits - returns the used digits in ascending order.
func (that *NumberPool) Digits() []int {
	digits := make([]int, 0, MaxDigit)
	for digit := MinDigit; digit <= MaxDigit; digit++ {
		if that[digit] {
			digits = append(digits, digit)
		}
	}

	return digits
}
