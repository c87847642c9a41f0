package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type RoomConf struct {
	WebsocketReadLimit int64         `env:"ROOM_WEBSOCKET_READ_LIMIT" envDefault:"512"`
	PingInterval       time.Duration `env:"ROOM_PING_INTERVAL" envDefault:"5s"`
}

type TriviaConf struct {
	BaseURL    string        `env:"TRIVIA_BASE_URL" envDefault:"https://the-trivia-api.com/api/questions"`
	BatchSize  int           `env:"TRIVIA_BATCH_SIZE" envDefault:"10"`
	Difficulty string        `env:"TRIVIA_DIFFICULTY" envDefault:"hard"`
	Categories string        `env:"TRIVIA_CATEGORIES" envDefault:"code"`
	Timeout    time.Duration `env:"TRIVIA_TIMEOUT" envDefault:"10s"`
}

type RateConf struct {
	// Limit caps websocket accepts per window. Negative disables.
	Limit  int           `env:"RATE_LIMIT" envDefault:"60"`
	Window time.Duration `env:"RATE_WINDOW" envDefault:"1m"`
}

type Config struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`
	Room       RoomConf
	Trivia     TriviaConf
	Rate       RateConf
}

// LoadConfig reads an optional dotenv file then parses the
// environment. A missing dotenv file is not an error.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
