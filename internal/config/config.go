// Package config loads configuration from the environment, with an optional
// .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"barterbot/internal/validate"
)

// Config holds all configuration for the application.
type Config struct {
	// BotToken is the Telegram Bot API token.
	BotToken string

	// APIHost overrides the Telegram API host, mainly for tests.
	APIHost string

	// DatabasePath is the SQLite file path.
	DatabasePath string

	// Port is the operational HTTP server port.
	Port int

	// Limits are the post field bounds.
	Limits validate.Limits

	// SessionMaxAge is how long idle conversation and edit state survives
	// before the sweeper drops it.
	SessionMaxAge time.Duration

	// Admins is the admin allow-list.
	Admins *Admins
}

// Admins is the env-configured admin allow-list. It satisfies the handler's
// Authorizer interface.
type Admins struct {
	ids []int64
}

// IsAdmin reports whether userID is on the allow-list.
func (a *Admins) IsAdmin(userID int64) bool {
	for _, id := range a.ids {
		if id == userID {
			return true
		}
	}
	return false
}

// AdminIDs returns the allow-list, for report forwarding.
func (a *Admins) AdminIDs() []int64 {
	return a.ids
}

// NewAdmins builds an allow-list, mainly for tests.
func NewAdmins(ids ...int64) *Admins {
	return &Admins{ids: ids}
}

func intEnv(name string, def int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return n, nil
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "barterbot.db"
	}

	port, err := intEnv("PORT", 8080)
	if err != nil {
		return nil, err
	}

	maxTitle, err := intEnv("MAX_TITLE_LENGTH", 100)
	if err != nil {
		return nil, err
	}
	maxDesc, err := intEnv("MAX_DESCRIPTION_LENGTH", 1000)
	if err != nil {
		return nil, err
	}
	maxTags, err := intEnv("MAX_TAGS", 10)
	if err != nil {
		return nil, err
	}
	if maxTitle < 3 || maxDesc < 10 || maxTags < 1 {
		return nil, fmt.Errorf("field limits below their minimums")
	}

	sessionMinutes, err := intEnv("SESSION_MAX_AGE_MINUTES", 30)
	if err != nil {
		return nil, err
	}
	if sessionMinutes < 1 {
		return nil, fmt.Errorf("SESSION_MAX_AGE_MINUTES must be positive")
	}

	admins := &Admins{}
	if raw := os.Getenv("ADMIN_USER_IDS"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid ADMIN_USER_IDS entry %q: %w", part, err)
			}
			admins.ids = append(admins.ids, id)
		}
	}

	return &Config{
		BotToken:     token,
		APIHost:      os.Getenv("TELEGRAM_API_HOST"),
		DatabasePath: dbPath,
		Port:         port,
		Limits: validate.Limits{
			MaxTitle:       maxTitle,
			MaxDescription: maxDesc,
			MaxTags:        maxTags,
		},
		SessionMaxAge: time.Duration(sessionMinutes) * time.Minute,
		Admins:        admins,
	}, nil
}
