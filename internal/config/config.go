package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"
)

// userConfigFile is looked up under the XDG config directories.
const userConfigFile = "tictactoe/config.yml"

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Redis    Redis  `yaml:"redis"`
	Game     Game   `yaml:"game"`
}

type Redis struct {
	Host    string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	GameTTL time.Duration `yaml:"game-ttl" env:"REDIS_GAME_TTL" env-default:"24h"`
}

type Game struct {
	DefaultMode string `yaml:"default-mode" env:"GAME_DEFAULT_MODE" env-default:"pvc"`
	HumanMark   string `yaml:"human-mark" env:"GAME_HUMAN_MARK" env-default:"X"`
	// BotDelay paces the computer's reply in interactive drivers. It has no
	// effect on the chosen move.
	BotDelay time.Duration `yaml:"bot-delay" env:"GAME_BOT_DELAY" env-default:"200ms"`
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

	return config, nil
}

// LoadUser reads the per-user config file when one exists and otherwise
// falls back to environment variables and defaults.
func LoadUser() (*Config, error) {
	path, err := LocateUserConfig()
	if err == nil {
		return Load(path)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	config := &Config{}
	if err = cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("unable to read config from environment: %w", err)
	}

	return config, nil
}

// LocateUserConfig returns the path of the user's config file, or an error
// wrapping fs.ErrNotExist when there is none.
func LocateUserConfig() (string, error) {
	path, err := xdg.SearchConfigFile(userConfigFile)
	if err != nil {
		return "", fmt.Errorf("%w: %s", fs.ErrNotExist, err.Error())
	}
	return path, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
