package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

type Config struct {
	App struct {
		Env string
	} `mapstructure:"app"`

	Telegram struct {
		Token         string
		Username      string
		Debug         bool
		PollTimeout   int     `mapstructure:"poll_timeout"`
		RatePerSecond float64 `mapstructure:"rate_per_second"`
	} `mapstructure:"telegram"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Postgres struct {
		DSN string
	} `mapstructure:"postgres"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Queue struct {
		SettleDelay time.Duration `mapstructure:"settle_delay"`
		TimeUnit    time.Duration `mapstructure:"time_unit"`
		Seed        uint64
	} `mapstructure:"queue"`
}

// Load читает YAML (если файл есть), затем .env и переменные окружения.
// Переменные APP_<SECTION>_<KEY> перекрывают файл; старые имена
// TELEGRAM_BOT_TOKEN, TELEGRAM_BOT_USERNAME, DATABASE_URL и PORT тоже поддерживаются.
func Load(path string) (Config, error) {
	_ = gotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.env", "prod")
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.username", "Telegisto_bot")
	v.SetDefault("telegram.debug", false)
	v.SetDefault("telegram.poll_timeout", 60)
	v.SetDefault("telegram.rate_per_second", 25)
	v.SetDefault("http.addr", ":3001")
	v.SetDefault("postgres.dsn", "")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("queue.settle_delay", "5s")
	v.SetDefault("queue.time_unit", "1s")
	v.SetDefault("queue.seed", 0)

	_ = v.BindEnv("telegram.token", "APP_TELEGRAM_TOKEN", "TELEGRAM_BOT_TOKEN")
	_ = v.BindEnv("telegram.username", "APP_TELEGRAM_USERNAME", "TELEGRAM_BOT_USERNAME")
	_ = v.BindEnv("postgres.dsn", "APP_POSTGRES_DSN", "DATABASE_URL")
	_ = v.BindEnv("port", "PORT")

	var c Config
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return c, fmt.Errorf("read config: %w", err)
			}
		}
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("unmarshal config: %w", err)
	}
	if port := v.GetString("port"); port != "" {
		c.HTTP.Addr = ":" + port
	}
	return c, nil
}

var (
	ErrNoToken = errors.New("config: telegram token is required")
	ErrNoDSN   = errors.New("config: postgres dsn is required")
)

func (c Config) Validate() error {
	if c.Telegram.Token == "" {
		return ErrNoToken
	}
	if c.Postgres.DSN == "" {
		return ErrNoDSN
	}
	return nil
}
