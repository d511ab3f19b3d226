package tictactotal

import (
	"fmt"

	"github.com/rocketscienceinc/tictactotal/internal/apperror"
	"github.com/rocketscienceinc/tictactotal/internal/entity"
)

// Random is the source of the computer opponent's choices. *rand.Rand satisfies it.
type Random interface {
	Intn(n int) int
}

// Machine owns one game and applies the rules to it. It is not safe for concurrent use.
type Machine struct {
	game *entity.Game
	rng  Random
}

func NewMachine(game *entity.Game, rng Random) *Machine {
	return &Machine{
		game: game,
		rng:  rng,
	}
}

// State - returns a copy of the current game.
func (that *Machine) State() *entity.Game {
	return that.game.Clone()
}

// Start - begins a fresh game in the given mode, keeping the configured targets.
func (that *Machine) Start(mode entity.Mode, roomID string) error {
	switch {
	case mode == entity.VsPlayer && roomID == "":
		return fmt.Errorf("%w: room id is required to play against a player", apperror.ErrInvalidMode)
	case mode == entity.VsComputer && roomID != "":
		return fmt.Errorf("%w: room id is not used against the computer", apperror.ErrInvalidMode)
	case !mode.IsValid():
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMode, mode)
	}

	game := entity.NewGame(that.game.Player1.Target, that.game.Player2.Target)
	game.Mode = mode
	game.RoomID = roomID

	that.game = game

	return nil
}

// SelectNumber - picks the digit the current player is about to place.
// Selecting again before placing replaces the pending digit.
func (that *Machine) SelectNumber(player entity.Player, digit int) error {
	if that.game.IsFinished() {
		return apperror.ErrGameOver
	}

	if that.game.CurrentPlayer != player {
		return fmt.Errorf("%w: %s to move", apperror.ErrNotYourTurn, that.game.CurrentPlayer)
	}

	if !entity.IsValidDigit(digit) {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidDigit, digit)
	}

	if that.game.Pool.IsUsed(digit) {
		return fmt.Errorf("%w: %d", apperror.ErrDigitUnavailable, digit)
	}

	that.game.SelectedNumber = digit

	return nil
}

// PlaceMove - places the selected digit and evaluates the result.
func (that *Machine) PlaceMove(index int) error {
	if that.game.IsFinished() {
		return apperror.ErrGameOver
	}

	if that.game.Phase() != entity.AwaitingPlacement {
		return apperror.ErrNoNumberSelected
	}

	next, err := place(that.game, index)
	if err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	that.game = next

	return nil
}

// ComputerMove - plays a uniformly random available digit on a uniformly random empty cell.
// The opponent does no look-ahead. A finished game reports both ErrNotComputerTurn and ErrGameOver.
func (that *Machine) ComputerMove() error {
	if that.game.IsFinished() {
		return fmt.Errorf("%w: %w", apperror.ErrNotComputerTurn, apperror.ErrGameOver)
	}

	if !that.game.IsComputerTurn() {
		return apperror.ErrNotComputerTurn
	}

	digits := that.game.Pool.AvailableDigits()
	cells := that.game.Board.EmptyCells()

	next := that.game.Clone()
	next.SelectedNumber = digits[that.rng.Intn(len(digits))]

	next, err := place(next, cells[that.rng.Intn(len(cells))])
	if err != nil {
		return fmt.Errorf("computer failed to make move: %w", err)
	}

	that.game = next

	return nil
}

// Reset - starts over with the same targets. With preserveMode the mode and room are kept
// so that a multiplayer pair continues in the same room.
func (that *Machine) Reset(preserveMode bool) {
	game := entity.NewGame(that.game.Player1.Target, that.game.Player2.Target)

	if preserveMode {
		game.Mode = that.game.Mode
		game.RoomID = that.game.RoomID
	}

	that.game = game
}

// LoadSnapshot - replaces the whole game with a snapshot received from elsewhere.
func (that *Machine) LoadSnapshot(snapshot *entity.Game) error {
	if snapshot == nil {
		return fmt.Errorf("%w: empty snapshot", apperror.ErrMalformedSnapshot)
	}

	if err := snapshot.Validate(); err != nil {
		return err
	}

	that.game = snapshot.Clone()

	return nil
}

// place - applies the pending digit of the current player to a copy of the game.
func place(game *entity.Game, index int) (*entity.Game, error) {
	next := game.Clone()
	mover := next.CurrentPlayer
	digit := next.SelectedNumber

	if err := next.Board.Place(index, digit); err != nil {
		return nil, err
	}

	if err := next.Pool.MarkUsed(digit); err != nil {
		return nil, err
	}

	state := next.PlayerState(mover)
	state.Numbers = append(state.Numbers, digit)
	next.SelectedNumber = 0

	if result := next.Evaluate(mover); result != entity.NoResult {
		next.Winner = result
		return next, nil
	}

	next.CurrentPlayer = mover.Other()

	return next, nil
}
