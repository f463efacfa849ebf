package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Backup   BackupConfig   `mapstructure:"backup"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Notify   NotifyConfig   `mapstructure:"notify"`
}

type AppConfig struct {
	Name       string `mapstructure:"name"`
	LogLevel   string `mapstructure:"log_level"`
	LogFile    string `mapstructure:"log_file"`
	ListenAddr string `mapstructure:"listen_addr"`
	APISecret  string `mapstructure:"api_secret"`
}

type DatabaseConfig struct {
	URL    string `mapstructure:"url"`
	Schema string `mapstructure:"schema"`
}

type BackupConfig struct {
	// Schedule is a cron spec (with seconds). Empty disables the
	// scheduled trigger; backups then run on demand only.
	Schedule string `mapstructure:"schedule"`
}

type StorageConfig struct {
	Type string `mapstructure:"type"`

	// AWS S3
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`

	// Google Drive. OAuthClientSecret is optional: when set, the app
	// also serves a helper for minting a refresh token interactively.
	CredentialsFile   string `mapstructure:"credentials_file"`
	FolderID          string `mapstructure:"folder_id"`
	OAuthClientSecret string `mapstructure:"oauth_client_secret"`
	OAuthListenAddr   string `mapstructure:"oauth_listen_addr"`

	// Local
	Path string `mapstructure:"path"`
}

type NotifyConfig struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
}

type TelegramConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("app.name", "pgvault")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.listen_addr", ":8080")
	v.SetDefault("database.schema", "public")
	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.path", "./backups")
	v.SetDefault("storage.oauth_listen_addr", ":8081")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("database.url is required")
	}
	if c.App.APISecret == "" {
		return fmt.Errorf("app.api_secret is required")
	}

	switch c.Storage.Type {
	case "s3":
		if c.Storage.Bucket == "" {
			return fmt.Errorf("storage.bucket is required for s3")
		}
		if c.Storage.Region == "" {
			return fmt.Errorf("storage.region is required for s3")
		}
	case "gdrive":
		if c.Storage.CredentialsFile == "" {
			return fmt.Errorf("storage.credentials_file is required for gdrive")
		}
		if c.Storage.FolderID == "" {
			return fmt.Errorf("storage.folder_id is required for gdrive")
		}
	case "local":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for local")
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}

	if c.Notify.Telegram.Enabled {
		if c.Notify.Telegram.BotToken == "" {
			return fmt.Errorf("notify.telegram.bot_token is required when enabled")
		}
		if c.Notify.Telegram.ChatID == "" {
			return fmt.Errorf("notify.telegram.chat_id is required when enabled")
		}
	}

	return nil
}
