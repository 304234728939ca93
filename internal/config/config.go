package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFile    string `yaml:"log-file" env:"LOG_FILE"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SERVER_PORT" env-default:"3001"`
	Redis      Redis  `yaml:"redis"`
	Stats      Stats  `yaml:"stats"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Stats controls the scoreboard. When disabled no Redis connection is made.
type Stats struct {
	Enabled       bool  `yaml:"enabled" env:"STATS_ENABLED" env-default:"false"`
	QueueSize     int   `yaml:"queue-size" env:"STATS_QUEUE_SIZE" env-default:"256"`
	RecentResults int64 `yaml:"recent-results" env:"STATS_RECENT_RESULTS" env-default:"100"`
}

// MustLoad reads the yml file at path, with environment overrides. Without
// the file the configuration comes from the environment alone.
func MustLoad(path string) *Config {
	config := &Config{}

	err := cleanenv.ReadConfig(path, config)
	if errors.Is(err, fs.ErrNotExist) {
		err = cleanenv.ReadEnv(config)
	}

	if err != nil {
		panic(fmt.Errorf("unable to load config: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return net.JoinHostPort(that.Host, that.Port)
}
