package entity

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rocketscienceinc/tictactotal/internal/apperror"
)

type Player string

const (
	Player1 Player = "Player 1"
	Player2 Player = "Player 2"
)

// Other - returns the opponent of the player.
func (that Player) Other() Player {
	if that == Player1 {
		return Player2
	}
	return Player1
}

func (that Player) IsValid() bool {
	return that == Player1 || that == Player2
}

type Result string

const (
	NoResult    Result = ""
	Player1Wins Result = "Player 1 wins"
	Player2Wins Result = "Player 2 wins"
	Draw        Result = "Draw"
)

func (that Result) IsValid() bool {
	switch that {
	case NoResult, Player1Wins, Player2Wins, Draw:
		return true
	default:
		return false
	}
}

// WinFor - returns the result announcing the player's win.
func WinFor(player Player) Result {
	if player == Player1 {
		return Player1Wins
	}
	return Player2Wins
}

type Mode string

const (
	VsComputer Mode = "computer"
	VsPlayer   Mode = "player"
)

func (that Mode) IsValid() bool {
	return that == VsComputer || that == VsPlayer
}

type Phase string

const (
	AwaitingSelection Phase = "awaiting_selection"
	AwaitingPlacement Phase = "awaiting_placement"
	Terminal          Phase = "terminal"
)

const (
	DefaultTarget1 = 16
	DefaultTarget2 = 14
)

// PlayerState holds the digits a player has placed, in placement order, and the sum they need.
type PlayerState struct {
	Numbers []int
	Target  int
}

// Game is the full snapshot of a match.
type Game struct {
	Board          Board
	Pool           NumberPool
	Player1        PlayerState
	Player2        PlayerState
	CurrentPlayer  Player
	SelectedNumber int
	Winner         Result
	Mode           Mode
	RoomID         string
}

func NewGame(target1, target2 int) *Game {
	return &Game{
		Player1:       PlayerState{Target: target1},
		Player2:       PlayerState{Target: target2},
		CurrentPlayer: Player1,
		Mode:          VsComputer,
	}
}

func (that *Game) Clone() *Game {
	clone := *that
	clone.Player1.Numbers = slices.Clone(that.Player1.Numbers)
	clone.Player2.Numbers = slices.Clone(that.Player2.Numbers)

	return &clone
}

func (that *Game) PlayerState(player Player) *PlayerState {
	if player == Player1 {
		return &that.Player1
	}
	return &that.Player2
}

func (that *Game) IsFinished() bool {
	return that.Winner != NoResult
}

func (that *Game) Phase() Phase {
	switch {
	case that.IsFinished():
		return Terminal
	case that.SelectedNumber != 0:
		return AwaitingPlacement
	default:
		return AwaitingSelection
	}
}

// Mover - the player expected to act next, empty once the game is finished.
func (that *Game) Mover() Player {
	if that.IsFinished() {
		return ""
	}

	return that.CurrentPlayer
}

// IsComputerTurn - reports whether the computer-controlled Player 2 has to move.
func (that *Game) IsComputerTurn() bool {
	return that.Mode == VsComputer && that.Mover() == Player2 && that.Phase() == AwaitingSelection
}

// Evaluate - determines the result after mover placed a digit. A win takes precedence
// over a draw when the last move both fills the board and completes a line.
func (that *Game) Evaluate(mover Player) Result {
	state := that.PlayerState(mover)
	if that.Board.WinningLineSum(state.Numbers, state.Target) {
		return WinFor(mover)
	}

	if that.Board.IsFull() {
		return Draw
	}

	return NoResult
}

// Validate - checks every structural invariant of a snapshot.
func (that *Game) Validate() error {
	if err := that.validate(); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrMalformedSnapshot, err)
	}

	return nil
}

var (
	errPoolMismatch    = errors.New("used numbers do not match the board")
	errOwnerMismatch   = errors.New("player numbers do not match the board")
	errResultMismatch  = errors.New("winner does not match the board")
	errRoomWithoutMode = errors.New("room id is only allowed when playing against a player")
	errBadTarget       = errors.New("target sums must be positive")
)

func (that *Game) validate() error {
	for index, cell := range that.Board {
		if cell != EmptyCell && !IsValidDigit(cell) {
			return fmt.Errorf("cell %d: %w", index, apperror.ErrInvalidDigit)
		}
	}

	if !slices.Equal(that.Pool.Digits(), that.Board.Digits()) {
		return errPoolMismatch
	}

	placed := make([]int, 0, BoardSize)
	placed = append(placed, that.Player1.Numbers...)
	placed = append(placed, that.Player2.Numbers...)
	slices.Sort(placed)

	if !slices.Equal(placed, that.Board.Digits()) {
		return errOwnerMismatch
	}

	if that.Player1.Target <= 0 || that.Player2.Target <= 0 {
		return errBadTarget
	}

	if !that.CurrentPlayer.IsValid() {
		return fmt.Errorf("current player %q", that.CurrentPlayer)
	}

	if !that.Mode.IsValid() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMode, that.Mode)
	}

	if that.Mode == VsComputer && that.RoomID != "" {
		return errRoomWithoutMode
	}

	if that.SelectedNumber != 0 {
		if !IsValidDigit(that.SelectedNumber) {
			return fmt.Errorf("selected number: %w", apperror.ErrInvalidDigit)
		}

		if that.Pool.IsUsed(that.SelectedNumber) {
			return fmt.Errorf("selected number %d: %w", that.SelectedNumber, apperror.ErrAlreadyUsed)
		}

		if that.IsFinished() {
			return fmt.Errorf("selected number after the end: %w", apperror.ErrGameOver)
		}
	}

	if !that.Winner.IsValid() {
		return fmt.Errorf("winner %q", that.Winner)
	}

	return that.validateResult()
}

func (that *Game) validateResult() error {
	p1Wins := that.Board.WinningLineSum(that.Player1.Numbers, that.Player1.Target)
	p2Wins := that.Board.WinningLineSum(that.Player2.Numbers, that.Player2.Target)
	full := that.Board.IsFull()

	var ok bool

	switch that.Winner {
	case NoResult:
		ok = !p1Wins && !p2Wins && !full
	case Player1Wins:
		ok = p1Wins
	case Player2Wins:
		ok = p2Wins
	case Draw:
		ok = full && !p1Wins && !p2Wins
	}

	if !ok {
		return errResultMismatch
	}

	return nil
}
