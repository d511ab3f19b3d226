package terminal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactotal/internal/entity"
	"github.com/rocketscienceinc/tictactotal/internal/repository"
	"github.com/rocketscienceinc/tictactotal/internal/tictactotal"
	"github.com/rocketscienceinc/tictactotal/internal/usecase"
)

var errNoAnswers = errors.New("no more answers")

type fixedRandom int

func (that fixedRandom) Intn(n int) int {
	return int(that) % n
}

// scriptedPrompter answers prompts in order and fails on an answer that was not offered.
type scriptedPrompter struct {
	answers []string
}

func (that *scriptedPrompter) next() (string, error) {
	if len(that.answers) == 0 {
		return "", errNoAnswers
	}

	answer := that.answers[0]
	that.answers = that.answers[1:]

	return answer, nil
}

func (that *scriptedPrompter) Select(title string, options []string) (string, error) {
	answer, err := that.next()
	if err != nil {
		return "", err
	}

	if !slices.Contains(options, answer) {
		return "", fmt.Errorf("%q is not offered by %q: %v", answer, title, options)
	}

	return answer, nil
}

func (that *scriptedPrompter) Input(string) (string, error) {
	return that.next()
}

func newTerminal(rooms repository.RoomRepository, answers ...string) (*Terminal, *usecase.Session, *bytes.Buffer) {
	pterm.DisableStyling()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	machine := tictactotal.NewMachine(entity.NewGame(entity.DefaultTarget1, entity.DefaultTarget2), fixedRandom(0))
	session := usecase.NewSession(logger, machine, rooms, fixedRandom(3521))

	out := &bytes.Buffer{}

	return New(logger, session, &scriptedPrompter{answers: answers}, out), session, out
}

func TestTerminal_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("Plays a move against the computer", func(t *testing.T) {
		// Given: the player places 9 in the top left corner and quits
		terminal, session, out := newTerminal(nil,
			optionComputer,
			optionMove, "9", "row 1, col 1",
			optionQuit,
		)

		// When: running the terminal
		err := terminal.Run(ctx)

		// Then: both the move and the computer reply are on the board
		require.NoError(t, err)

		game := session.State()
		assert.Equal(t, 9, game.Board[0])
		assert.Equal(t, 1, game.Board[1])
		assert.Contains(t, out.String(), "Current Player: Player 1 (you)")
	})

	t.Run("Hosting announces the room", func(t *testing.T) {
		terminal, session, out := newTerminal(repository.NewMemoryRoomRepository(), optionHost, optionQuit)

		require.NoError(t, terminal.Run(ctx))

		assert.Contains(t, out.String(), "Join room: game_4521")
		assert.Equal(t, entity.VsPlayer, session.State().Mode)
	})

	t.Run("Host note follows the room id", func(t *testing.T) {
		terminal, _, out := newTerminal(repository.NewMemoryRoomRepository(), optionHost, optionQuit)
		terminal.WithHostNote("Rooms are kept in this process only")

		require.NoError(t, terminal.Run(ctx))

		assert.Contains(t, out.String(), "Join room: game_4521")
		assert.Contains(t, out.String(), "Rooms are kept in this process only")
	})

	t.Run("No host note against the computer", func(t *testing.T) {
		terminal, _, out := newTerminal(nil, optionComputer, optionQuit)
		terminal.WithHostNote("Rooms are kept in this process only")

		require.NoError(t, terminal.Run(ctx))

		assert.NotContains(t, out.String(), "Rooms are kept in this process only")
	})

	t.Run("Host leaving to the menu closes the room", func(t *testing.T) {
		// Given: a host who goes back to the menu and then tries to join its own room
		rooms := repository.NewMemoryRoomRepository()
		terminal, _, out := newTerminal(rooms,
			optionHost,
			optionMenu,
			optionJoin, "game_4521",
			optionQuit,
		)

		// When: running the terminal
		require.NoError(t, terminal.Run(ctx))

		// Then: the room is gone
		assert.Contains(t, out.String(), "room not found")
	})

	t.Run("Joining an unknown room returns to the menu", func(t *testing.T) {
		terminal, _, out := newTerminal(repository.NewMemoryRoomRepository(), optionJoin, "game_1111", optionQuit)

		require.NoError(t, terminal.Run(ctx))

		assert.Contains(t, out.String(), "room not found")
	})

	t.Run("Hosting without a room store", func(t *testing.T) {
		terminal, _, out := newTerminal(nil, optionHost, optionQuit)

		require.NoError(t, terminal.Run(ctx))

		assert.Contains(t, out.String(), "no room store configured")
	})

	t.Run("No move is offered on the other player's turn", func(t *testing.T) {
		// Given: a host who has just moved
		host, _, _ := newTerminal(repository.NewMemoryRoomRepository(),
			optionHost,
			optionMove, "9", "row 1, col 1",
			optionMove,
		)

		// When: the host tries to move again
		err := host.Run(ctx)

		// Then: the second move is not offered
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is not offered")
	})

	t.Run("Joiner sees the host's move", func(t *testing.T) {
		rooms := repository.NewMemoryRoomRepository()
		host, _, _ := newTerminal(rooms, optionHost, optionMove, "9", "row 1, col 1", optionQuit)
		require.NoError(t, host.Run(ctx))

		joiner, session, out := newTerminal(rooms, optionJoin, "game_4521", optionQuit)
		require.NoError(t, joiner.Run(ctx))

		assert.Equal(t, 9, session.State().Board[0])
		assert.Equal(t, entity.Player2, session.LocalPlayer())
		assert.Contains(t, out.String(), "Current Player: Player 2 (you)")
	})

	t.Run("Reset clears the board", func(t *testing.T) {
		terminal, session, _ := newTerminal(nil,
			optionComputer,
			optionMove, "9", "row 1, col 1",
			optionReset,
			optionQuit,
		)

		require.NoError(t, terminal.Run(ctx))

		assert.Equal(t, entity.Board{}, session.State().Board)
	})

	t.Run("Prompt failure stops the terminal", func(t *testing.T) {
		terminal, _, _ := newTerminal(nil)

		err := terminal.Run(ctx)

		assert.ErrorIs(t, err, errNoAnswers)
	})

	t.Run("Canceled context stops the terminal", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		terminal, _, _ := newTerminal(nil)

		assert.NoError(t, terminal.Run(canceled))
	})
}
