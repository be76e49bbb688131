package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Deck     DeckConfig     `mapstructure:"deck"`
	Session  SessionConfig  `mapstructure:"session"`
}

type DatabaseConfig struct {
	Driver          string            `mapstructure:"driver" validate:"oneof=mysql sqlite"`
	Path            string            `mapstructure:"path" validate:"required_if=Driver sqlite"`
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port" validate:"min=0,max=65535"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
	ConnectAttempts uint              `mapstructure:"connect_attempts"`
}

// DeckConfig holds the scheduling options used when the collection does not override them.
// Durations are seconds and intervals are days.
type DeckConfig struct {
	PerDay           bool    `mapstructure:"per_day"`
	NewCardsPerDay   int     `mapstructure:"new_cards_per_day" validate:"min=0"`
	NewCardOrder     string  `mapstructure:"new_card_order" validate:"oneof=random old_first new_first"`
	NewCardSpacing   string  `mapstructure:"new_card_spacing" validate:"oneof=distribute last first"`
	ReviewCardOrder  string  `mapstructure:"review_card_order" validate:"oneof=old_first new_first due_first random"`
	LeechFails       *int    `mapstructure:"leech_fails" validate:"omitempty,min=1"`
	SuspendLeeches   bool    `mapstructure:"suspend_leeches"`
	Delay0           int     `mapstructure:"delay0" validate:"min=0"`
	Delay1           int     `mapstructure:"delay1" validate:"min=0"`
	Delay2           float64 `mapstructure:"delay2" validate:"min=0"`
	HardIntervalMin  float64 `mapstructure:"hard_interval_min" validate:"min=0"`
	HardIntervalMax  float64 `mapstructure:"hard_interval_max" validate:"gtefield=HardIntervalMin"`
	MidIntervalMin   float64 `mapstructure:"mid_interval_min" validate:"min=0"`
	MidIntervalMax   float64 `mapstructure:"mid_interval_max" validate:"gtefield=MidIntervalMin"`
	EasyIntervalMin  float64 `mapstructure:"easy_interval_min" validate:"min=0"`
	EasyIntervalMax  float64 `mapstructure:"easy_interval_max" validate:"gtefield=EasyIntervalMin"`
	UTCOffset        int     `mapstructure:"utc_offset" validate:"min=-86400,max=86400"`
	Timezone         string  `mapstructure:"timezone" validate:"omitempty,timezone"`
	QueueLimit       int     `mapstructure:"queue_limit" validate:"min=1"`
	NewSpacing       float64 `mapstructure:"new_spacing" validate:"min=0"`
	RevSpacing       float64 `mapstructure:"rev_spacing" validate:"min=0"`
	CollapseTime     int     `mapstructure:"collapse_time" validate:"min=0"`
	FailedCardMax    int     `mapstructure:"failed_card_max" validate:"min=0"`
	SpacedCacheRatio int     `mapstructure:"spaced_cache_ratio" validate:"min=1"`
}

type SessionConfig struct {
	UndoDepth int `mapstructure:"undo_depth" validate:"min=1"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/cardsched")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", filepath.Join("data", "collection.db"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "cardsched")
	v.SetDefault("database.username", "user")
	v.SetDefault("database.connect_attempts", 3)

	v.SetDefault("deck.per_day", true)
	v.SetDefault("deck.new_cards_per_day", 20)
	v.SetDefault("deck.new_card_order", "old_first")
	v.SetDefault("deck.new_card_spacing", "distribute")
	v.SetDefault("deck.review_card_order", "old_first")
	v.SetDefault("deck.suspend_leeches", true)
	v.SetDefault("deck.delay0", 600)
	v.SetDefault("deck.delay1", 0)
	v.SetDefault("deck.delay2", 0.0)
	v.SetDefault("deck.hard_interval_min", 0.333)
	v.SetDefault("deck.hard_interval_max", 0.5)
	v.SetDefault("deck.mid_interval_min", 3.0)
	v.SetDefault("deck.mid_interval_max", 5.0)
	v.SetDefault("deck.easy_interval_min", 7.0)
	v.SetDefault("deck.easy_interval_max", 9.0)
	v.SetDefault("deck.utc_offset", 0)
	v.SetDefault("deck.timezone", "")
	v.SetDefault("deck.queue_limit", 200)
	v.SetDefault("deck.new_spacing", 60.0)
	v.SetDefault("deck.rev_spacing", 0.1)
	v.SetDefault("deck.collapse_time", 600)
	v.SetDefault("deck.failed_card_max", 20)
	v.SetDefault("deck.spaced_cache_ratio", 6)

	v.SetDefault("session.undo_depth", 20)

	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "CARDSCHED_DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind CARDSCHED_DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
