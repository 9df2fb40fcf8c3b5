package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port                    string   `mapstructure:"PORT"`
	Env                     string   `mapstructure:"ENV"`
	DataDir                 string   `mapstructure:"DATA_DIR"`
	FirebaseProjectID       string   `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseCredentialsFile string   `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	PushEnabled             bool     `mapstructure:"PUSH_ENABLED"`
	JWTSecret               string   `mapstructure:"JWT_SECRET"`
	CORSOrigins             []string `mapstructure:"CORS_ORIGINS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DATA_DIR", "./data")
	v.SetDefault("PUSH_ENABLED", true)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATA_DIR")
	v.BindEnv("FIREBASE_PROJECT_ID")
	v.BindEnv("FIREBASE_CREDENTIALS_FILE")
	v.BindEnv("PUSH_ENABLED")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("CORS_ORIGINS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.IsDev() {
		log.Println("WARNING: Server is running in DEVELOPMENT mode (ENV=development).")
		log.Println("WARNING: Requests may authenticate via the X-User-ID header.")
		log.Println("WARNING: Do NOT use this configuration in production.")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// RemoteConfigured reports whether a remote document store is available.
// Without a Firebase project the server runs entirely on the local file
// store.
func (c *Config) RemoteConfigured() bool {
	return c.FirebaseProjectID != ""
}

// Validate checks that the configuration is safe to run. Outside development
// JWT_SECRET must be set so real bearer authentication is enforced.
func (c *Config) Validate() error {
	if !c.IsDev() && c.JWTSecret == "" {
		return fmt.Errorf(
			"JWT_SECRET must be set when ENV is %q; refusing to start without authentication", c.Env)
	}
	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR is required")
	}
	if c.FirebaseCredentialsFile != "" && c.FirebaseProjectID == "" {
		return fmt.Errorf("FIREBASE_PROJECT_ID is required when FIREBASE_CREDENTIALS_FILE is set")
	}
	return nil
}
