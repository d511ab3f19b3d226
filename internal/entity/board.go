package entity

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/tictactotal/internal/apperror"
)

const (
	BoardSize = 9
	EmptyCell = 0
)

var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is the 3x3 grid stored row-major. EmptyCell marks a free cell.
type Board [BoardSize]int

func IsValidIndex(index int) bool {
	return index >= 0 && index < BoardSize
}

// RowCol - maps a cell index to its row and column.
func RowCol(index int) (int, int) {
	return index / 3, index % 3
}

// CellAt - returns the digit in the cell, ok is false for an empty cell.
func (that *Board) CellAt(index int) (int, bool, error) {
	if !IsValidIndex(index) {
		return 0, false, fmt.Errorf("%w: %d", apperror.ErrOutOfRange, index)
	}

	digit := that[index]

	return digit, digit != EmptyCell, nil
}

func (that *Board) Place(index, digit int) error {
	if !IsValidIndex(index) {
		return fmt.Errorf("%w: %d", apperror.ErrOutOfRange, index)
	}

	if !IsValidDigit(digit) {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidDigit, digit)
	}

	if that[index] != EmptyCell {
		return fmt.Errorf("%w: %d", apperror.ErrCellOccupied, index)
	}

	that[index] = digit

	return nil
}

// WinningLineSum - reports whether some line is fully occupied by digits from the given set
// and sums to target. A mixed line that happens to hit the target does not count.
func (that *Board) WinningLineSum(digits []int, target int) bool {
	for _, combo := range WinCombos {
		sum := 0
		owned := 0

		for _, index := range combo {
			cell := that[index]
			if cell == EmptyCell || !slices.Contains(digits, cell) {
				break
			}

			sum += cell
			owned++
		}

		if owned == len(combo) && sum == target {
			return true
		}
	}

	return false
}

func (that *Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func (that *Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for index, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, index)
		}
	}

	return cells
}

// Digits - returns the placed digits in ascending order.
func (that *Board) Digits() []int {
	digits := make([]int, 0, BoardSize)
	for _, cell := range that {
		if cell != EmptyCell {
			digits = append(digits, cell)
		}
	}

	slices.Sort(digits)

	return digits
}
