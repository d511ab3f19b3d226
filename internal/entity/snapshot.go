package entity

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/rocketscienceinc/tictactotal/internal/apperror"
)

// snapshot is the flat wire form shared with the room store.
type snapshot struct {
	Board          []*int  `json:"board"`
	UsedNumbers    []int   `json:"used_numbers"`
	Player1Numbers []int   `json:"player1_numbers"`
	Player2Numbers []int   `json:"player2_numbers"`
	Target1        int     `json:"target1"`
	Target2        int     `json:"target2"`
	CurrentPlayer  Player  `json:"current_player"`
	SelectedNumber *int    `json:"selected_number"`
	Winner         *Result `json:"winner"`
	Mode           Mode    `json:"game_mode"`
	RoomID         *string `json:"room_id"`
}

func (that Game) MarshalJSON() ([]byte, error) {
	board := make([]*int, BoardSize)
	for index, cell := range that.Board {
		if cell != EmptyCell {
			board[index] = &cell
		}
	}

	snap := snapshot{
		Board:          board,
		UsedNumbers:    that.Pool.Digits(),
		Player1Numbers: nonNil(that.Player1.Numbers),
		Player2Numbers: nonNil(that.Player2.Numbers),
		Target1:        that.Player1.Target,
		Target2:        that.Player2.Target,
		CurrentPlayer:  that.CurrentPlayer,
		Mode:           that.Mode,
	}

	if that.SelectedNumber != 0 {
		selected := that.SelectedNumber
		snap.SelectedNumber = &selected
	}

	if that.Winner != NoResult {
		winner := that.Winner
		snap.Winner = &winner
	}

	if that.RoomID != "" {
		roomID := that.RoomID
		snap.RoomID = &roomID
	}

	return json.Marshal(snap)
}

// UnmarshalJSON - decodes a snapshot, rejecting anything structurally out of range.
// Invariants across fields are checked by Validate.
func (that *Game) UnmarshalJSON(data []byte) error {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrMalformedSnapshot, err)
	}

	if len(snap.Board) != BoardSize {
		return fmt.Errorf("%w: board has %d cells", apperror.ErrMalformedSnapshot, len(snap.Board))
	}

	var game Game

	for index, cell := range snap.Board {
		if cell == nil {
			continue
		}

		if err := game.Board.Place(index, *cell); err != nil {
			return fmt.Errorf("%w: %w", apperror.ErrMalformedSnapshot, err)
		}
	}

	for _, digit := range snap.UsedNumbers {
		if !IsValidDigit(digit) {
			return fmt.Errorf("%w: used number %d: %w", apperror.ErrMalformedSnapshot, digit, apperror.ErrInvalidDigit)
		}

		// duplicates are tolerated on load
		game.Pool[digit] = true
	}

	for _, digit := range append(slices.Clone(snap.Player1Numbers), snap.Player2Numbers...) {
		if !IsValidDigit(digit) {
			return fmt.Errorf("%w: player number %d: %w", apperror.ErrMalformedSnapshot, digit, apperror.ErrInvalidDigit)
		}
	}

	game.Player1 = PlayerState{Numbers: nilIfEmpty(snap.Player1Numbers), Target: snap.Target1}
	game.Player2 = PlayerState{Numbers: nilIfEmpty(snap.Player2Numbers), Target: snap.Target2}

	if !snap.CurrentPlayer.IsValid() {
		return fmt.Errorf("%w: current player %q", apperror.ErrMalformedSnapshot, snap.CurrentPlayer)
	}
	game.CurrentPlayer = snap.CurrentPlayer

	if snap.SelectedNumber != nil {
		if !IsValidDigit(*snap.SelectedNumber) {
			return fmt.Errorf("%w: selected number: %w", apperror.ErrMalformedSnapshot, apperror.ErrInvalidDigit)
		}
		game.SelectedNumber = *snap.SelectedNumber
	}

	if snap.Winner != nil {
		if *snap.Winner == NoResult || !snap.Winner.IsValid() {
			return fmt.Errorf("%w: winner %q", apperror.ErrMalformedSnapshot, *snap.Winner)
		}
		game.Winner = *snap.Winner
	}

	if !snap.Mode.IsValid() {
		return fmt.Errorf("%w: %w: %q", apperror.ErrMalformedSnapshot, apperror.ErrInvalidMode, snap.Mode)
	}
	game.Mode = snap.Mode

	if snap.RoomID != nil {
		game.RoomID = *snap.RoomID
	}

	*that = game

	return nil
}

func nonNil(numbers []int) []int {
	if numbers == nil {
		return []int{}
	}
	return numbers
}

func nilIfEmpty(numbers []int) []int {
	if len(numbers) == 0 {
		return nil
	}
	return numbers
}
