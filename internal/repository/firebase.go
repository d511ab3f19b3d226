package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"firebase.google.com/go/db"
	"github.com/rocketscienceinc/tictactotal/internal/apperror"
	"github.com/rocketscienceinc/tictactotal/internal/entity"
)

type firebaseRef interface {
	Set(ctx context.Context, v interface{}) error
	Get(ctx context.Context, v interface{}) error
	Delete(ctx context.Context) error
}

// fbRoom keeps each room under games/<room id> in the Realtime Database.
// The snapshot is stored as a JSON string because the database drops null array
// entries, which would break the nine-cell board.
type fbRoom struct {
	ref func(path string) firebaseRef
}

func NewFirebaseRoomRepository(client *db.Client) RoomRepository {
	return &fbRoom{
		ref: func(path string) firebaseRef {
			return client.NewRef(path)
		},
	}
}

func roomPath(roomID string) string {
	return "games/" + roomID
}

func (that *fbRoom) Push(ctx context.Context, roomID string, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	if err = that.ref(roomPath(roomID)).Set(ctx, string(gameJSON)); err != nil {
		return fmt.Errorf("%w: failed to set room %s: %w", apperror.ErrSync, roomID, err)
	}

	return nil
}

func (that *fbRoom) Pull(ctx context.Context, roomID string) (*entity.Game, error) {
	var gameJSON string
	if err := that.ref(roomPath(roomID)).Get(ctx, &gameJSON); err != nil {
		return nil, fmt.Errorf("%w: failed to get room %s: %w", apperror.ErrSync, roomID, err)
	}

	if gameJSON == "" {
		return nil, fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, roomID)
	}

	return decodeGame([]byte(gameJSON))
}

func (that *fbRoom) Delete(ctx context.Context, roomID string) error {
	if err := that.ref(roomPath(roomID)).Delete(ctx); err != nil {
		return fmt.Errorf("%w: failed to delete room %s: %w", apperror.ErrSync, roomID, err)
	}

	return nil
}
