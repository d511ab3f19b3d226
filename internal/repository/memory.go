package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/tictactotal/internal/apperror"
	"github.com/rocketscienceinc/tictactotal/internal/entity"
)

// memoryRoom is an in-process store for sessions sharing one process.
type memoryRoom struct {
	mu    sync.Mutex
	rooms map[string][]byte
}

func NewMemoryRoomRepository() RoomRepository {
	return &memoryRoom{
		rooms: make(map[string][]byte),
	}
}

func (that *memoryRoom) Push(_ context.Context, roomID string, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.rooms[roomID] = gameJSON

	return nil
}

func (that *memoryRoom) Pull(_ context.Context, roomID string) (*entity.Game, error) {
	that.mu.Lock()
	gameJSON, ok := that.rooms[roomID]
	that.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, roomID)
	}

	return decodeGame(gameJSON)
}

func (that *memoryRoom) Delete(_ context.Context, roomID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.rooms, roomID)

	return nil
}
