package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/tictactotal/internal/config"
	"github.com/rocketscienceinc/tictactotal/internal/entity"
	"github.com/rocketscienceinc/tictactotal/internal/repository"
	"github.com/rocketscienceinc/tictactotal/internal/repository/storage"
	"github.com/rocketscienceinc/tictactotal/internal/tictactotal"
	"github.com/rocketscienceinc/tictactotal/internal/usecase"
	"github.com/rocketscienceinc/tictactotal/transport/terminal"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

const memoryHostNote = "Rooms are kept in this process only; set sync.backend to redis or firebase to play from another terminal."

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	rooms, closeRooms, err := newRoomRepository(ctx, log, conf)
	if err != nil {
		return err
	}

	defer closeRooms()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	machine := tictactotal.NewMachine(entity.NewGame(conf.Game.Target1, conf.Game.Target2), rng)
	session := usecase.NewSession(logger, machine, rooms, rng)

	log.Info("Starting terminal", "backend", conf.Sync.Backend, "session", session.ID())

	front := terminal.New(logger, session, terminal.NewPrompter(), os.Stdout)
	if conf.Sync.Backend == config.BackendMemory {
		front.WithHostNote(memoryHostNote)
	}

	if err = front.Run(ctx); err != nil {
		return fmt.Errorf("terminal error: %w", err)
	}

	return nil
}

// newRoomRepository - connects the configured sync backend. The returned func releases it.
func newRoomRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.RoomRepository, func(), error) {
	switch conf.Sync.Backend {
	case config.BackendRedis:
		if conf.Redis.Host == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedis(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		closeRedis := func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}

		return repository.NewRoomRepository(redisStorage, conf.Sync.RoomTTL), closeRedis, nil
	case config.BackendFirebase:
		client, err := storage.NewFirebaseDatabase(ctx, conf.Firebase.CredentialsPath, conf.Firebase.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to firebase: %w", err)
		}

		return repository.NewFirebaseRoomRepository(client), func() {}, nil
	default:
		return repository.NewMemoryRoomRepository(), func() {}, nil
	}
}
