package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/camaradados/proptext/cleaning"
)

type databaseConfig struct {
	Path string `mapstructure:"path"`
}

type redisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type geminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type workersConfig struct {
	Extraction int `mapstructure:"extraction"`
	Analysis   int `mapstructure:"analysis"`
}

type config struct {
	Database     databaseConfig  `mapstructure:"database"`
	Redis        redisConfig     `mapstructure:"redis"`
	Gemini       geminiConfig    `mapstructure:"gemini"`
	Workers      workersConfig   `mapstructure:"workers"`
	FetchTimeout time.Duration   `mapstructure:"fetch_timeout"`
	Cleaning     cleaning.Config `mapstructure:"cleaning"`
}

// setDefaults registers every key. Viper only unmarshals keys it knows
// about, so a key without a default could not be set from the environment.
func setDefaults(v *viper.Viper) {
	v.SetDefault("database.path", "proptext.sqlite")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "proptext:text:")
	v.SetDefault("redis.ttl", 7*24*time.Hour)

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")

	v.SetDefault("workers.extraction", 4)
	v.SetDefault("workers.analysis", 10)
	v.SetDefault("fetch_timeout", 50*time.Second)

	c := cleaning.DefaultConfig()
	v.SetDefault("cleaning.top_frac", c.TopFrac)
	v.SetDefault("cleaning.bottom_frac", c.BottomFrac)
	v.SetDefault("cleaning.repeat_threshold", c.RepeatThreshold)
	v.SetDefault("cleaning.annex_top_frac", c.AnnexTopFrac)
	v.SetDefault("cleaning.annex_strict_uppercase", c.AnnexStrictUppercase)
	v.SetDefault("cleaning.remove_from_annex", c.RemoveFromAnnex)
	v.SetDefault("cleaning.banned_substrings", c.BannedSubstrings)
}

// bindEnv maps every key to a PROPTEXT_ variable, "redis.addr" to
// PROPTEXT_REDIS_ADDR and so on. The Gemini key also accepts GEMINI_API_KEY.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("PROPTEXT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("gemini.api_key", "PROPTEXT_GEMINI_API_KEY", "GEMINI_API_KEY")
}

// loadConfig unmarshals v on top of the built-in defaults and validates the
// cleaning section.
func loadConfig(v *viper.Viper) (config, error) {
	cfg := config{Cleaning: cleaning.DefaultConfig()}
	if err := v.Unmarshal(&cfg); err != nil {
		return config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Cleaning.Validate(); err != nil {
		return config{}, err
	}

	return cfg, nil
}
