package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/vancomm/minefield/internal/board"
)

type BoardConfig struct {
	Rows    int `mapstructure:"rows"`
	Cols    int `mapstructure:"cols"`
	Bombs   int `mapstructure:"bombs"`
	MaxRows int `mapstructure:"max_rows"`
	MaxCols int `mapstructure:"max_cols"`
}

func (b BoardConfig) Params() board.Params {
	return board.Params{Rows: b.Rows, Cols: b.Cols, BombCount: b.Bombs}
}

type SessionConfig struct {
	TTL           time.Duration `mapstructure:"ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

type JWTConfig struct {
	Secret        string        `mapstructure:"secret"`
	TokenLifetime time.Duration `mapstructure:"token_lifetime"`
}

type CookiesConfig struct {
	Domain   string `mapstructure:"domain"`
	Secure   bool   `mapstructure:"secure"`
	SameSite string `mapstructure:"same_site"`
}

type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

type Config struct {
	Mode    string        `mapstructure:"mode"`
	Addr    string        `mapstructure:"addr"`
	Board   BoardConfig   `mapstructure:"board"`
	Session SessionConfig `mapstructure:"session"`
	JWT     JWTConfig     `mapstructure:"jwt"`
	Cookies CookiesConfig `mapstructure:"cookies"`
	Cors    CorsConfig    `mapstructure:"cors"`
	Log     LogConfig     `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "production")
	v.SetDefault("addr", ":8080")

	v.SetDefault("board.rows", board.DefaultParams.Rows)
	v.SetDefault("board.cols", board.DefaultParams.Cols)
	v.SetDefault("board.bombs", board.DefaultParams.BombCount)
	v.SetDefault("board.max_rows", 30)
	v.SetDefault("board.max_cols", 30)

	v.SetDefault("session.ttl", time.Hour)
	v.SetDefault("session.sweep_interval", time.Minute)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.token_lifetime", 24*time.Hour)

	v.SetDefault("cookies.domain", "")
	v.SetDefault("cookies.secure", true)
	v.SetDefault("cookies.same_site", "strict")

	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 50)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
}

// Load reads the config file at path (if path is not empty) on top of the
// defaults. MINEFIELD_* env variables override both, e.g. MINEFIELD_JWT_SECRET.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("minefield")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config %s: %w", path, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c Config) Validate() error {
	if err := c.Board.Params().Validate(); err != nil {
		return fmt.Errorf("board: %w", err)
	}
	if c.Board.Rows > c.Board.MaxRows || c.Board.Cols > c.Board.MaxCols {
		return fmt.Errorf("board: default %dx%d exceeds the %dx%d limit",
			c.Board.Rows, c.Board.Cols, c.Board.MaxRows, c.Board.MaxCols)
	}
	if c.Session.TTL <= 0 || c.Session.SweepInterval <= 0 {
		return errors.New("session: ttl and sweep_interval must be positive")
	}
	if c.JWT.Secret == "" {
		return errors.New("jwt: secret is not set")
	}
	if c.JWT.TokenLifetime <= 0 {
		return errors.New("jwt: token_lifetime must be positive")
	}
	return nil
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

func (c Config) Fields() logrus.Fields {
	return logrus.Fields{
		"mode":                   c.Mode,
		"addr":                   c.Addr,
		"board":                  c.Board.Params().String(),
		"board_max":              fmt.Sprintf("%dx%d", c.Board.MaxRows, c.Board.MaxCols),
		"session_ttl":            c.Session.TTL.String(),
		"session_sweep_interval": c.Session.SweepInterval.String(),
		"jwt_token_lifetime":     c.JWT.TokenLifetime.String(),
		"cookies_domain":         c.Cookies.Domain,
		"cookies_secure":         c.Cookies.Secure,
		"cookies_same_site":      c.Cookies.SameSite,
		"cors_allowed_origins":   c.Cors.AllowedOrigins,
		"log_level":              c.Log.Level,
		"log_file":               c.Log.File,
	}
}
