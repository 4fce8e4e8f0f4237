package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	ListenAddr    string        `mapstructure:"LISTEN_ADDR"`
	StoreDriver   string        `mapstructure:"STORE_DRIVER"`
	DatabaseURL   string        `mapstructure:"DATABASE_URL"`
	MongoURI      string        `mapstructure:"MONGO_URI"`
	MongoDatabase string        `mapstructure:"MONGO_DATABASE"`
	OpTimeout     time.Duration `mapstructure:"OP_TIMEOUT"`
	TxnRetries    int           `mapstructure:"TXN_RETRIES"`
	CodeRetries   int           `mapstructure:"CODE_RETRIES"`
	PollInterval  time.Duration `mapstructure:"POLL_INTERVAL"`
}

var AppConfig *Config

// LoadConfig loads the configuration from a .env file and environment variables.
func LoadConfig() {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.SetDefault("LISTEN_ADDR", ":8080")
	viper.SetDefault("STORE_DRIVER", "memory")
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "imposter")
	viper.SetDefault("OP_TIMEOUT", 5*time.Second)
	viper.SetDefault("TXN_RETRIES", 8)
	viper.SetDefault("CODE_RETRIES", 6)
	viper.SetDefault("POLL_INTERVAL", 500*time.Millisecond)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	err := viper.Unmarshal(&AppConfig)
	if err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
}
