package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/rocketscienceinc/tictactotal/internal/apperror"
	"github.com/rocketscienceinc/tictactotal/internal/entity"
)

const (
	optionComputer = "Play against the computer"
	optionHost     = "Host a room"
	optionJoin     = "Join a room"

	optionMove  = "Make a move"
	optionSync  = "Sync with the room"
	optionRetry = "Retry the last push"
	optionReset = "Reset the game"
	optionMenu  = "Back to the main menu"
	optionQuit  = "Quit"
)

type uSession interface {
	State() *entity.Game
	LocalPlayer() entity.Player
	IsLocalTurn() bool

	PlayComputer() error
	HostRoom(ctx context.Context) (string, error)
	JoinRoom(ctx context.Context, roomID string) error
	LeaveRoom(ctx context.Context) error

	SelectNumber(digit int) error
	PlaceMove(ctx context.Context, index int) error
	Reset(ctx context.Context, preserveMode bool) error

	Sync(ctx context.Context) error
	Retry(ctx context.Context) error
}

// Terminal is the interactive front end of one session.
type Terminal struct {
	logger  *slog.Logger
	session uSession
	prompt  Prompter
	out     io.Writer

	hostNote string

	handlers map[string]func(ctx context.Context) error
}

func New(logger *slog.Logger, session uSession, prompt Prompter, out io.Writer) *Terminal {
	terminal := &Terminal{
		logger:  logger.With("component", "terminal"),
		session: session,
		prompt:  prompt,
		out:     out,

		handlers: make(map[string]func(ctx context.Context) error),
	}

	terminal.handlers[optionMove] = terminal.handleMove
	terminal.handlers[optionSync] = terminal.session.Sync
	terminal.handlers[optionRetry] = terminal.session.Retry
	terminal.handlers[optionReset] = terminal.handleReset

	return terminal
}

// WithHostNote - a line printed after the room id whenever a room is hosted.
func (that *Terminal) WithHostNote(note string) *Terminal {
	that.hostNote = note
	return that
}

// Run - shows the main menu until the player quits or the context is canceled.
func (that *Terminal) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	for ctx.Err() == nil {
		choice, err := that.prompt.Select("Select game mode", []string{optionComputer, optionHost, optionJoin, optionQuit})
		if err != nil {
			return fmt.Errorf("failed to read game mode: %w", err)
		}

		if choice == optionQuit {
			return nil
		}

		if err = that.start(ctx, choice); err != nil {
			log.Debug("failed to start game", "mode", choice, "error", err)
			that.printError(err)
			continue
		}

		quit, err := that.play(ctx)
		if err != nil {
			return err
		}

		if quit {
			return nil
		}
	}

	log.Info("terminal stopped", "reason", ctx.Err())

	return nil
}

func (that *Terminal) start(ctx context.Context, choice string) error {
	switch choice {
	case optionComputer:
		return that.session.PlayComputer()
	case optionHost:
		roomID, err := that.session.HostRoom(ctx)
		if roomID != "" {
			that.print(pterm.Info.Sprintln("Join room: " + roomID))
		}

		if roomID != "" && that.hostNote != "" {
			that.print(pterm.Warning.Sprintln(that.hostNote))
		}

		if errors.Is(err, apperror.ErrSync) {
			that.printError(err)
			return nil
		}

		return err
	case optionJoin:
		roomID, err := that.prompt.Input("Room id")
		if err != nil {
			return fmt.Errorf("failed to read room id: %w", err)
		}

		return that.session.JoinRoom(ctx, strings.TrimSpace(roomID))
	default:
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMode, choice)
	}
}

// play - runs one game; reports whether the player chose to quit.
func (that *Terminal) play(ctx context.Context) (bool, error) {
	log := that.logger.With("method", "play")

	for ctx.Err() == nil {
		game := that.session.State()
		that.render(game)

		choice, err := that.prompt.Select("Choose an action", turnOptions(game, that.session.IsLocalTurn()))
		if err != nil {
			return false, fmt.Errorf("failed to read action: %w", err)
		}

		switch choice {
		case optionMenu:
			if err = that.session.LeaveRoom(ctx); err != nil {
				log.Error("failed to leave room", "error", err)
				that.printError(err)
			}

			return false, nil
		case optionQuit:
			return true, nil
		}

		handler, ok := that.handlers[choice]
		if !ok {
			log.Error("unknown action", "action", choice)
			continue
		}

		if err = handler(ctx); err != nil {
			log.Debug("action failed", "action", choice, "error", err)
			that.printError(err)
		}
	}

	return true, nil
}

// turnOptions - the actions offered for the current state.
func turnOptions(game *entity.Game, localTurn bool) []string {
	var options []string

	if localTurn {
		options = append(options, optionMove)
	}

	if game.Mode == entity.VsPlayer {
		options = append(options, optionSync, optionRetry)
	}

	return append(options, optionReset, optionMenu, optionQuit)
}

func (that *Terminal) handleMove(ctx context.Context) error {
	game := that.session.State()

	digits := game.Pool.AvailableDigits()
	digitOptions := make([]string, 0, len(digits))
	for _, digit := range digits {
		digitOptions = append(digitOptions, strconv.Itoa(digit))
	}

	answer, err := that.prompt.Select("Select a number to place on the board", digitOptions)
	if err != nil {
		return fmt.Errorf("failed to read number: %w", err)
	}

	digit, err := strconv.Atoi(answer)
	if err != nil {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidDigit, answer)
	}

	if err = that.session.SelectNumber(digit); err != nil {
		return err
	}

	cells := game.Board.EmptyCells()
	cellOptions := make([]string, 0, len(cells))
	byLabel := make(map[string]int, len(cells))
	for _, index := range cells {
		label := cellLabel(index)
		cellOptions = append(cellOptions, label)
		byLabel[label] = index
	}

	answer, err = that.prompt.Select(fmt.Sprintf("Place %d on", digit), cellOptions)
	if err != nil {
		return fmt.Errorf("failed to read cell: %w", err)
	}

	index, ok := byLabel[answer]
	if !ok {
		return fmt.Errorf("%w: %q", apperror.ErrOutOfRange, answer)
	}

	return that.session.PlaceMove(ctx, index)
}

func (that *Terminal) handleReset(ctx context.Context) error {
	return that.session.Reset(ctx, true)
}

func (that *Terminal) render(game *entity.Game) {
	log := that.logger.With("method", "render")

	table, err := pterm.DefaultTable.WithBoxed().WithData(boardTable(game)).Srender()
	if err != nil {
		log.Error("failed to render board", "error", err)
		return
	}

	that.print("\n" + table + "\n")

	for _, line := range infoLines(game) {
		that.print(pterm.Info.Sprintln(line))
	}

	status := statusLine(game, that.session.LocalPlayer())
	if game.IsFinished() {
		that.print(pterm.Success.Sprintln(status))
		return
	}

	that.print(pterm.Info.Sprintln(status))
}

func (that *Terminal) printError(err error) {
	if errors.Is(err, apperror.ErrSync) {
		that.print(pterm.Warning.Sprintln("The room was not updated, retry the push: " + err.Error()))
		return
	}

	that.print(pterm.Error.Sprintln(err.Error()))
}

func (that *Terminal) print(text string) {
	if _, err := io.WriteString(that.out, text); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}
