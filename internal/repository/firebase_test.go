package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rocketscienceinc/tictactotal/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errUnavailable = errors.New("service unavailable")

type mockRef struct {
	mock.Mock
}

func (that *mockRef) Set(ctx context.Context, v interface{}) error {
	return that.Called(ctx, v).Error(0)
}

func (that *mockRef) Get(ctx context.Context, v interface{}) error {
	args := that.Called(ctx, v)

	if value, ok := args.Get(1).(string); ok {
		*v.(*string) = value
	}

	return args.Error(0)
}

func (that *mockRef) Delete(ctx context.Context) error {
	return that.Called(ctx).Error(0)
}

func newFirebaseRepo(t *testing.T, ref *mockRef) *fbRoom {
	t.Helper()

	return &fbRoom{
		ref: func(path string) firebaseRef {
			assert.Equal(t, "games/game_5555", path)
			return ref
		},
	}
}

func TestFirebaseRoomRepository_Push(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores the snapshot as a JSON string", func(t *testing.T) {
		// Given: a ref accepting any string
		ref := &mockRef{}
		game := roomGame("game_5555")
		expected, err := json.Marshal(game)
		require.NoError(t, err)

		ref.On("Set", ctx, string(expected)).Return(nil).Once()

		// When: pushing
		err = newFirebaseRepo(t, ref).Push(ctx, game.RoomID, game)

		// Then: the ref received the serialized game
		require.NoError(t, err)
		ref.AssertExpectations(t)
	})

	t.Run("Wraps database failures in ErrSync", func(t *testing.T) {
		ref := &mockRef{}
		ref.On("Set", ctx, mock.AnythingOfType("string")).Return(errUnavailable).Once()

		err := newFirebaseRepo(t, ref).Push(ctx, "game_5555", roomGame("game_5555"))

		require.ErrorIs(t, err, apperror.ErrSync)
		assert.ErrorIs(t, err, errUnavailable)
	})
}

func TestFirebaseRoomRepository_Pull(t *testing.T) {
	ctx := context.Background()

	t.Run("Decodes the stored snapshot", func(t *testing.T) {
		ref := &mockRef{}
		game := roomGame("game_5555")
		stored, err := json.Marshal(game)
		require.NoError(t, err)

		ref.On("Get", ctx, mock.Anything).Return(nil, string(stored)).Once()

		pulled, err := newFirebaseRepo(t, ref).Pull(ctx, "game_5555")

		require.NoError(t, err)
		assert.Equal(t, game, pulled)
	})

	t.Run("Missing node", func(t *testing.T) {
		ref := &mockRef{}
		ref.On("Get", ctx, mock.Anything).Return(nil, nil).Once()

		_, err := newFirebaseRepo(t, ref).Pull(ctx, "game_5555")

		assert.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})

	t.Run("Database failure", func(t *testing.T) {
		ref := &mockRef{}
		ref.On("Get", ctx, mock.Anything).Return(errUnavailable, nil).Once()

		_, err := newFirebaseRepo(t, ref).Pull(ctx, "game_5555")

		assert.ErrorIs(t, err, apperror.ErrSync)
	})
}

func TestFirebaseRoomRepository_Delete(t *testing.T) {
	ctx := context.Background()

	ref := &mockRef{}
	ref.On("Delete", ctx).Return(nil).Once()

	require.NoError(t, newFirebaseRepo(t, ref).Delete(ctx, "game_5555"))
	ref.AssertExpectations(t)
}
