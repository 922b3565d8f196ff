package config

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	App      App
	Gemini   Gemini
	Email    Email
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// App holds settings that are not tied to a single collaborator.
type App struct {
	// PublicURL is the base under which candidate-facing test links are built,
	// e.g. https://assess.example.com. Tokens are appended as /test/{token}.
	PublicURL string
}

type Gemini struct {
	APIKey string
}

type Email struct {
	ResendAPIKey string
	FromAddress  string
}

// NewConfig reads .env (if present) and the process environment, then
// validates that everything the server cannot run without is set. Optional
// collaborator keys (Gemini, Resend) may be empty; the services built on them
// degrade explicitly instead of failing startup.
func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("PUBLIC_APP_URL", "http://localhost:8080")
	viper.SetDefault("FROM_EMAIL", "noreply@scribehire.dev")

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.App.PublicURL = viper.GetString("PUBLIC_APP_URL")
	config.Gemini.APIKey = viper.GetString("GEMINI_API_KEY")
	config.Email.ResendAPIKey = viper.GetString("RESEND_API_KEY")
	config.Email.FromAddress = viper.GetString("FROM_EMAIL")

	if err := config.validate(); err != nil {
		return nil, err
	}

	log.Info().
		Str("server_port", config.Server.Port).
		Str("database_host", config.Database.Host).
		Str("public_url", config.App.PublicURL).
		Bool("gemini_configured", config.Gemini.APIKey != "").
		Bool("email_configured", config.Email.ResendAPIKey != "").
		Msg("Config loaded")
	return &config, nil
}

func (c *Config) validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"DATABASE_HOST", c.Database.Host},
		{"DATABASE_PORT", c.Database.Port},
		{"DATABASE_USER", c.Database.User},
		{"DATABASE_NAME", c.Database.Name},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("missing required environment variable: %s", r.key)
		}
	}
	return nil
}
