package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactotal/internal/apperror"
	"github.com/rocketscienceinc/tictactotal/internal/entity"
)

// RoomRepository is the shared store two players synchronize a room through.
// The last pushed snapshot wins; there is no merge.
type RoomRepository interface {
	Push(ctx context.Context, roomID string, game *entity.Game) error
	Pull(ctx context.Context, roomID string) (*entity.Game, error)
	Delete(ctx context.Context, roomID string) error
}

type dbRoom struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRoomRepository(client *redis.Client, ttl time.Duration) RoomRepository {
	return &dbRoom{
		client: client,
		ttl:    ttl,
	}
}

func roomKey(roomID string) string {
	return "game:" + roomID
}

func (that *dbRoom) Push(ctx context.Context, roomID string, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	if err = that.client.Set(ctx, roomKey(roomID), gameJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("%w: failed to set room %s: %w", apperror.ErrSync, roomID, err)
	}

	return nil
}

func (that *dbRoom) Pull(ctx context.Context, roomID string) (*entity.Game, error) {
	response, err := that.client.Get(ctx, roomKey(roomID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, roomID)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: failed to get room %s: %w", apperror.ErrSync, roomID, err)
	}

	return decodeGame(response)
}

func (that *dbRoom) Delete(ctx context.Context, roomID string) error {
	if err := that.client.Del(ctx, roomKey(roomID)).Err(); err != nil {
		return fmt.Errorf("%w: failed to delete room %s: %w", apperror.ErrSync, roomID, err)
	}

	return nil
}

func decodeGame(data []byte) (*entity.Game, error) {
	var game entity.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &game, nil
}
