package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactotal/internal/apperror"
	"github.com/rocketscienceinc/tictactotal/internal/entity"
	"github.com/rocketscienceinc/tictactotal/internal/pkg"
	"github.com/rocketscienceinc/tictactotal/internal/tictactotal"
)

type roomRepo interface {
	Push(ctx context.Context, roomID string, game *entity.Game) error
	Pull(ctx context.Context, roomID string) (*entity.Game, error)
	Delete(ctx context.Context, roomID string) error
}

// Session drives one local player's machine and keeps the room store in step with it.
//
// Multiplayer reconciliation is last-write-wins: whichever snapshot was pushed last is the
// one the other side pulls. Moves made by both sides before a sync overwrite each other.
type Session struct {
	logger  *slog.Logger
	id      string
	machine *tictactotal.Machine
	rooms   roomRepo
	rng     tictactotal.Random

	local entity.Player
}

// NewSession - rooms may be nil, in which case only the computer mode is available.
func NewSession(logger *slog.Logger, machine *tictactotal.Machine, rooms roomRepo, rng tictactotal.Random) *Session {
	id := pkg.GenerateSessionID()

	return &Session{
		logger:  logger.With("component", "session", "session", id),
		id:      id,
		machine: machine,
		rooms:   rooms,
		rng:     rng,
		local:   entity.Player1,
	}
}

func (that *Session) ID() string {
	return that.id
}

// State - returns a copy of the current game.
func (that *Session) State() *entity.Game {
	return that.machine.State()
}

// LocalPlayer - the logical player this session acts for. The host plays Player 1,
// the joiner Player 2.
func (that *Session) LocalPlayer() entity.Player {
	return that.local
}

// IsLocalTurn - reports whether the local player may act now.
func (that *Session) IsLocalTurn() bool {
	return that.machine.State().Mover() == that.local
}

func (that *Session) PlayComputer() error {
	if err := that.machine.Start(entity.VsComputer, ""); err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	that.local = entity.Player1

	return nil
}

// HostRoom - starts a multiplayer game in a new room and publishes it.
func (that *Session) HostRoom(ctx context.Context) (string, error) {
	log := that.logger.With("method", "HostRoom")

	if that.rooms == nil {
		return "", apperror.ErrNoRoomStore
	}

	roomID := pkg.GenerateRoomID(that.rng)
	if err := that.machine.Start(entity.VsPlayer, roomID); err != nil {
		return "", fmt.Errorf("failed to start game: %w", err)
	}

	that.local = entity.Player1

	if err := that.push(ctx); err != nil {
		return roomID, err
	}

	log.Info("room created", "room", roomID)

	return roomID, nil
}

// JoinRoom - loads the room's current snapshot and plays as Player 2.
func (that *Session) JoinRoom(ctx context.Context, roomID string) error {
	log := that.logger.With("method", "JoinRoom")

	if that.rooms == nil {
		return apperror.ErrNoRoomStore
	}

	game, err := that.rooms.Pull(ctx, roomID)
	if err != nil {
		return fmt.Errorf("failed to pull room: %w", err)
	}

	if game.Mode != entity.VsPlayer || game.RoomID != roomID {
		return fmt.Errorf("%w: room %s holds a %s game", apperror.ErrInvalidMode, roomID, game.Mode)
	}

	if err = that.machine.LoadSnapshot(game); err != nil {
		return fmt.Errorf("failed to load room: %w", err)
	}

	that.local = entity.Player2

	log.Info("joined room", "room", roomID)

	return nil
}

// LeaveRoom - the host closes its room when leaving; a joiner just walks away.
func (that *Session) LeaveRoom(ctx context.Context) error {
	log := that.logger.With("method", "LeaveRoom")

	game := that.machine.State()
	if game.Mode != entity.VsPlayer || that.local != entity.Player1 || that.rooms == nil {
		return nil
	}

	if err := that.rooms.Delete(ctx, game.RoomID); err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	log.Info("room closed", "room", game.RoomID)

	return nil
}

func (that *Session) SelectNumber(digit int) error {
	if err := that.machine.SelectNumber(that.local, digit); err != nil {
		return fmt.Errorf("failed to select number: %w", err)
	}

	return nil
}

// PlaceMove - places the selected number. Against the computer the reply is played
// right away; in a room the result is pushed.
func (that *Session) PlaceMove(ctx context.Context, index int) error {
	if err := that.machine.PlaceMove(index); err != nil {
		return fmt.Errorf("failed to place move: %w", err)
	}

	game := that.machine.State()
	if game.IsComputerTurn() {
		return that.ComputerMove(ctx)
	}

	return that.pushIfMultiplayer(ctx)
}

func (that *Session) ComputerMove(ctx context.Context) error {
	if err := that.machine.ComputerMove(); err != nil {
		return fmt.Errorf("failed to make computer move: %w", err)
	}

	that.logger.Debug("computer moved", "player2", that.machine.State().Player2.Numbers)

	return that.pushIfMultiplayer(ctx)
}

func (that *Session) Reset(ctx context.Context, preserveMode bool) error {
	that.machine.Reset(preserveMode)

	if !preserveMode {
		that.local = entity.Player1
	}

	return that.pushIfMultiplayer(ctx)
}

// Sync - pulls the room and replaces the local game with it. A room nobody has pushed
// to yet leaves the local game as it is.
func (that *Session) Sync(ctx context.Context) error {
	log := that.logger.With("method", "Sync")

	game := that.machine.State()
	if game.Mode != entity.VsPlayer {
		return nil
	}

	if that.rooms == nil {
		return apperror.ErrNoRoomStore
	}

	remote, err := that.rooms.Pull(ctx, game.RoomID)
	if errors.Is(err, apperror.ErrRoomNotFound) {
		log.Debug("room is empty", "room", game.RoomID)
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to pull room: %w", err)
	}

	if err = that.machine.LoadSnapshot(remote); err != nil {
		return fmt.Errorf("failed to load room: %w", err)
	}

	log.Debug("room pulled", "room", game.RoomID, "turn", remote.CurrentPlayer)

	return nil
}

func (that *Session) pushIfMultiplayer(ctx context.Context) error {
	if that.machine.State().Mode != entity.VsPlayer {
		return nil
	}

	return that.push(ctx)
}

// push - a failed push keeps the local move; the caller decides whether to retry.
func (that *Session) push(ctx context.Context) error {
	log := that.logger.With("method", "push")

	if that.rooms == nil {
		return apperror.ErrNoRoomStore
	}

	game := that.machine.State()
	if err := that.rooms.Push(ctx, game.RoomID, game); err != nil {
		log.Error("failed to push room", "room", game.RoomID, "error", err)

		if !errors.Is(err, apperror.ErrSync) {
			err = fmt.Errorf("%w: %w", apperror.ErrSync, err)
		}

		return err
	}

	log.Debug("room pushed", "room", game.RoomID)

	return nil
}

// Retry - pushes the current game again after a failed push.
func (that *Session) Retry(ctx context.Context) error {
	return that.pushIfMultiplayer(ctx)
}
