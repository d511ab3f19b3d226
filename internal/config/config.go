package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendFirebase = "firebase"
)

type Config struct {
	LogLevel string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFile  string   `yaml:"log-file" env:"LOG_FILE" env-default:""`
	Game     Game     `yaml:"game"`
	Sync     Sync     `yaml:"sync"`
	Redis    Redis    `yaml:"redis"`
	Firebase Firebase `yaml:"firebase"`
}

type Game struct {
	Target1 int `yaml:"target1" env:"GAME_TARGET1" env-default:"16"`
	Target2 int `yaml:"target2" env:"GAME_TARGET2" env-default:"14"`
}

type Sync struct {
	Backend string        `yaml:"backend" env:"SYNC_BACKEND" env-default:"memory"`
	RoomTTL time.Duration `yaml:"room-ttl" env:"SYNC_ROOM_TTL" env-default:"24h"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Firebase struct {
	CredentialsPath string `yaml:"credentials-path" env:"FIREBASE_CREDENTIALS_PATH" env-default:""`
	DatabaseURL     string `yaml:"database-url" env:"FIREBASE_DB_URL" env-default:""`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if config.Game.Target1 <= 0 || config.Game.Target2 <= 0 {
		return nil, fmt.Errorf("target sums must be positive, got %d and %d", config.Game.Target1, config.Game.Target2)
	}

	switch config.Sync.Backend {
	case BackendMemory, BackendRedis, BackendFirebase:
	default:
		return nil, fmt.Errorf("unknown sync backend %q", config.Sync.Backend)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
