package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Mode string `mapstructure:"mode"`
	Port int    `mapstructure:"port"`

	// LiveKit deployment the broker issues credentials for.
	LiveKitURL    string `mapstructure:"livekit_url"`
	LiveKitAPIKey string `mapstructure:"livekit_api_key"`
	LiveKitSecret string `mapstructure:"livekit_api_secret"`

	TokenTTL time.Duration `mapstructure:"token_ttl"`

	// Client-side knobs. The retry defaults are the behavioral baseline
	// the conformance tests assume; change them only per deployment.
	BrokerURL       string        `mapstructure:"broker_url"`
	Room            string        `mapstructure:"room"`
	Identity        string        `mapstructure:"identity"`
	Role            string        `mapstructure:"role"`
	FetchRetries    int           `mapstructure:"fetch_retries"`
	FetchRetryDelay time.Duration `mapstructure:"fetch_retry_delay"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("livekit_url", "ws://localhost:7880")
	v.SetDefault("token_ttl", "10m")
	v.SetDefault("broker_url", "http://localhost:8080")
	v.SetDefault("room", "main")
	v.SetDefault("role", "viewer")
	v.SetDefault("fetch_retries", 3)
	v.SetDefault("fetch_retry_delay", "2s")

	v.SetEnvPrefix("livegate")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("config file not found (%s), using defaults\n", fileName)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
