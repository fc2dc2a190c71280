package config

import (
	"fmt"
	"path/filepath"

	"placement_engine_go/utils"

	"github.com/spf13/viper"
)

// GlobalConfig is the full service configuration, loaded from
// config/config.yaml.
type GlobalConfig struct {
	Database     DatabaseConfig     `mapstructure:"database"`
	Retention    RetentionConfig    `mapstructure:"retention"`
	Notification NotificationConfig `mapstructure:"notification"`
}

// DatabaseConfig holds the MySQL connection settings.
type DatabaseConfig struct {
	DSN                    string `mapstructure:"dsn"`
	MaxIdleConns           int    `mapstructure:"maxIdleConns"`
	MaxOpenConns           int    `mapstructure:"maxOpenConns"`
	ConnMaxLifetimeMinutes int    `mapstructure:"connMaxLifetimeMinutes"`
}

// RetentionConfig controls the auto-delete window stamped on
// rejected applications.
type RetentionConfig struct {
	RejectionTTLDays int `mapstructure:"rejectionTtlDays"`
}

// NotificationConfig points at the email template file and the asset
// base URL used to resolve applicant photos.
type NotificationConfig struct {
	TemplatesPath string `mapstructure:"templatesPath"`
	AssetBaseURL  string `mapstructure:"assetBaseUrl"`
}

// InitConfig loads configuration via viper, with defaults for
// everything so an empty file still yields a runnable config.
func InitConfig() (*GlobalConfig, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if root, err := utils.GetProjectRoot(); err == nil {
		viper.AddConfigPath(filepath.Join(root, "config"))
	}

	viper.SetDefault("database.dsn", "root:root@tcp(localhost:3306)/placement?charset=utf8mb4&parseTime=True&loc=Local")
	viper.SetDefault("database.maxIdleConns", 10)
	viper.SetDefault("database.maxOpenConns", 100)
	viper.SetDefault("database.connMaxLifetimeMinutes", 60)
	viper.SetDefault("retention.rejectionTtlDays", 10)
	viper.SetDefault("notification.templatesPath", "")
	viper.SetDefault("notification.assetBaseUrl", "http://localhost:8080/assets")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var config GlobalConfig
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &config, nil
}
