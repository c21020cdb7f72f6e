package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Hive struct {
		BaseURL     string
		WebURL      string
		TimeoutSecs int
	}
	Broadcast struct {
		APIURL      string
		BearerToken string
		DryRun      bool
	}
	Bot struct {
		LogLevel       string
		AutoPost       bool
		MaxPostsPerDay int
		PostTimes      []string // "HH:MM", local time
		OutputDir      string
		Mention        string
	}
	Curation struct {
		RecencyWindowHours int
		HotThreshold       int
		DebateMinComments  int
		Weights            struct {
			HotTake  float64
			Debate   float64
			NewAgent float64
			Default  float64
		}
	}
	Archive struct {
		Enabled   bool
		URL       string // local path, or a libsql:// / wss:// / https:// URL
		AuthToken string
	}
}

func Load() (*Config, error) {
	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Environment overrides, e.g. HIVE_BROADCAST_DRY_RUN=true
	v.SetEnvPrefix("HIVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	setDefaults(v)

	// Read config file (optional - will use env vars if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using defaults and env vars
	}

	cfg := &Config{}

	// Hive config
	cfg.Hive.BaseURL = v.GetString("hive.base_url")
	cfg.Hive.WebURL = v.GetString("hive.web_url")
	cfg.Hive.TimeoutSecs = v.GetInt("hive.timeout_secs")

	// Broadcast config
	cfg.Broadcast.APIURL = v.GetString("broadcast.api_url")
	cfg.Broadcast.BearerToken = v.GetString("broadcast.bearer_token")
	cfg.Broadcast.DryRun = v.GetBool("broadcast.dry_run")

	// Bot config
	cfg.Bot.LogLevel = v.GetString("bot.log_level")
	cfg.Bot.AutoPost = v.GetBool("bot.auto_post")
	cfg.Bot.MaxPostsPerDay = v.GetInt("bot.max_posts_per_day")
	cfg.Bot.PostTimes = v.GetStringSlice("bot.post_times")
	cfg.Bot.OutputDir = v.GetString("bot.output_dir")
	cfg.Bot.Mention = v.GetString("bot.mention")

	// Curation config
	cfg.Curation.RecencyWindowHours = v.GetInt("curation.recency_window_hours")
	cfg.Curation.HotThreshold = v.GetInt("curation.hot_threshold")
	cfg.Curation.DebateMinComments = v.GetInt("curation.debate_min_comments")
	cfg.Curation.Weights.HotTake = v.GetFloat64("curation.weights.hot_take")
	cfg.Curation.Weights.Debate = v.GetFloat64("curation.weights.debate")
	cfg.Curation.Weights.NewAgent = v.GetFloat64("curation.weights.new_agent")
	cfg.Curation.Weights.Default = v.GetFloat64("curation.weights.default")

	// Archive config
	cfg.Archive.Enabled = v.GetBool("archive.enabled")
	cfg.Archive.URL = v.GetString("archive.url")
	cfg.Archive.AuthToken = v.GetString("archive.auth_token")

	// Validate required fields
	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Hive defaults
	v.SetDefault("hive.base_url", "https://thehive-production-78ed.up.railway.app/api")
	v.SetDefault("hive.web_url", "https://thehive-production-78ed.up.railway.app")
	v.SetDefault("hive.timeout_secs", 20)

	// Broadcast defaults
	v.SetDefault("broadcast.dry_run", true)

	// Bot defaults
	v.SetDefault("bot.log_level", "info")
	v.SetDefault("bot.auto_post", false)
	v.SetDefault("bot.max_posts_per_day", 5)
	v.SetDefault("bot.post_times", []string{"09:00", "13:00", "17:00", "21:00"})
	v.SetDefault("bot.output_dir", "out")
	v.SetDefault("bot.mention", "@TheHiveSocial")

	// Curation defaults
	v.SetDefault("curation.recency_window_hours", 24)
	v.SetDefault("curation.hot_threshold", 10)
	v.SetDefault("curation.debate_min_comments", 5)
	v.SetDefault("curation.weights.hot_take", 1.5)
	v.SetDefault("curation.weights.debate", 1.3)
	v.SetDefault("curation.weights.new_agent", 0.8)
	v.SetDefault("curation.weights.default", 1.0)

	// Archive defaults
	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.url", "posts.db")
}

func validate(cfg *Config) error {
	if cfg.Hive.BaseURL == "" {
		return fmt.Errorf("hive.base_url is required")
	}
	if cfg.Bot.MaxPostsPerDay <= 0 {
		return fmt.Errorf("bot.max_posts_per_day must be positive")
	}
	if len(cfg.Bot.PostTimes) == 0 {
		return fmt.Errorf("bot.post_times is required")
	}
	for _, t := range cfg.Bot.PostTimes {
		if _, err := time.Parse("15:04", t); err != nil {
			return fmt.Errorf("bot.post_times entry %q is not HH:MM: %w", t, err)
		}
	}
	if !cfg.Broadcast.DryRun && cfg.Broadcast.BearerToken == "" {
		return fmt.Errorf("broadcast.bearer_token is required when dry run is off")
	}
	return nil
}

// Timeout returns the upstream request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Hive.TimeoutSecs) * time.Second
}

// RecencyWindow returns the curation lookback window as a duration.
func (c *Config) RecencyWindow() time.Duration {
	return time.Duration(c.Curation.RecencyWindowHours) * time.Hour
}
