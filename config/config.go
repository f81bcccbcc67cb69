package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Game holds the engine tunables. It can be loaded from a TOML file and is
// then overridden by environment variables.
type Game struct {
	SurfaceWidth     float64 `toml:"surface_width"`
	SurfaceHeight    float64 `toml:"surface_height"`
	BallMaxSpeed     float64 `toml:"ball_max_speed"`
	PaddleMaxSpeed   float64 `toml:"paddle_max_speed"`
	PaddleWidth      float64 `toml:"paddle_width"`
	PaddleHeight     float64 `toml:"paddle_height"`
	BallRadius       float64 `toml:"ball_radius"`
	BallColor        string  `toml:"ball_color"`
	LeftPaddleColor  string  `toml:"left_paddle_color"`
	RightPaddleColor string  `toml:"right_paddle_color"`
	TickIntervalMs   int     `toml:"tick_interval_ms"`
	RandomSeed       int64   `toml:"random_seed"`
}

type Config struct {
	// Environment
	Environment string

	// Server
	Port                string
	BroadcastIntervalMs int

	// Redis
	RedisURL            string
	RedisEventsChannel  string
	RedisControlChannel string

	// Joystick UDP listener
	JoystickAddr string

	// Game settings
	GameFile string
	Game     Game
}

// DefaultGame returns the tunables used when neither a file nor the
// environment sets them.
func DefaultGame() Game {
	return Game{
		SurfaceWidth:     800,
		SurfaceHeight:    400,
		BallMaxSpeed:     4,
		PaddleMaxSpeed:   5,
		PaddleWidth:      10,
		PaddleHeight:     60,
		BallRadius:       8,
		BallColor:        "#ffffff",
		LeftPaddleColor:  "#4ade80",
		RightPaddleColor: "#f87171",
		TickIntervalMs:   16,
	}
}

// Load reads .env (if present), the optional TOML game file named by
// PONG_CONFIG_FILE and then the environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),

		// Server
		Port:                getEnv("APP_PORT", "8080"),
		BroadcastIntervalMs: getEnvInt("BROADCAST_INTERVAL_MS", 32),

		// Redis
		RedisURL:            getEnv("REDIS_URL", ""),
		RedisEventsChannel:  getEnv("REDIS_EVENTS_CHANNEL", "pong_events"),
		RedisControlChannel: getEnv("REDIS_CONTROL_CHANNEL", "pong_control"),

		// Joystick
		JoystickAddr: getEnv("JOYSTICK_ADDR", ""),

		GameFile: getEnv("PONG_CONFIG_FILE", ""),
		Game:     DefaultGame(),
	}

	if cfg.GameFile != "" {
		if _, err := toml.DecodeFile(cfg.GameFile, &cfg.Game); err != nil {
			return nil, fmt.Errorf("failed to read game config %s: %w", cfg.GameFile, err)
		}
	}

	g := &cfg.Game
	g.SurfaceWidth = getEnvFloat("SURFACE_WIDTH", g.SurfaceWidth)
	g.SurfaceHeight = getEnvFloat("SURFACE_HEIGHT", g.SurfaceHeight)
	g.BallMaxSpeed = getEnvFloat("BALL_MAX_SPEED", g.BallMaxSpeed)
	g.PaddleMaxSpeed = getEnvFloat("PADDLE_MAX_SPEED", g.PaddleMaxSpeed)
	g.PaddleWidth = getEnvFloat("PADDLE_WIDTH", g.PaddleWidth)
	g.PaddleHeight = getEnvFloat("PADDLE_HEIGHT", g.PaddleHeight)
	g.BallRadius = getEnvFloat("BALL_RADIUS", g.BallRadius)
	g.BallColor = getEnv("BALL_COLOR", g.BallColor)
	g.LeftPaddleColor = getEnv("LEFT_PADDLE_COLOR", g.LeftPaddleColor)
	g.RightPaddleColor = getEnv("RIGHT_PADDLE_COLOR", g.RightPaddleColor)
	g.TickIntervalMs = getEnvInt("TICK_INTERVAL_MS", g.TickIntervalMs)
	g.RandomSeed = int64(getEnvInt("RANDOM_SEED", int(g.RandomSeed)))

	return cfg, nil
}

// Validate checks the values the engine and the servers cannot run without.
func (c *Config) Validate() error {
	g := c.Game
	positive := []struct {
		key string
		v   float64
	}{
		{"SURFACE_WIDTH", g.SurfaceWidth},
		{"SURFACE_HEIGHT", g.SurfaceHeight},
		{"BALL_MAX_SPEED", g.BallMaxSpeed},
		{"PADDLE_MAX_SPEED", g.PaddleMaxSpeed},
		{"PADDLE_WIDTH", g.PaddleWidth},
		{"PADDLE_HEIGHT", g.PaddleHeight},
		{"BALL_RADIUS", g.BallRadius},
	}
	for _, f := range positive {
		if !(f.v > 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, f.key, f.v)
		}
	}

	if g.PaddleHeight > g.SurfaceHeight {
		return fmt.Errorf("%w: PADDLE_HEIGHT %v exceeds SURFACE_HEIGHT %v", ErrInvalidConfig, g.PaddleHeight, g.SurfaceHeight)
	}
	if g.TickIntervalMs <= 0 {
		return fmt.Errorf("%w: TICK_INTERVAL_MS must be positive, got %d", ErrInvalidConfig, g.TickIntervalMs)
	}
	if c.BroadcastIntervalMs <= 0 {
		return fmt.Errorf("%w: BROADCAST_INTERVAL_MS must be positive, got %d", ErrInvalidConfig, c.BroadcastIntervalMs)
	}
	return nil
}

// TickInterval is the engine loop period.
func (g Game) TickInterval() time.Duration {
	return time.Duration(g.TickIntervalMs) * time.Millisecond
}

// BroadcastInterval is the period of state frames sent to renderers.
func (c *Config) BroadcastInterval() time.Duration {
	return time.Duration(c.BroadcastIntervalMs) * time.Millisecond
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
