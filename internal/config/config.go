package config

import (
	"fmt"
	"os"
)

// Config holds the configuration for the application.
type Config struct {
	DatabasePath    string
	Port            string
	AppBaseURL      string
	AuthTokenSecret string

	// Twilio Config (optional; invites report "not configured" without it)
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
	TwilioAPIBaseURL string

	// Gemini Config (optional; suggestions fall back to the catalog picker)
	GeminiAPIKey string

	// Telegram Config (optional; plan announcements)
	TelegramBotToken string
	TelegramChatID   int64
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	appBaseURL := os.Getenv("APP_BASE_URL")
	if appBaseURL == "" {
		return nil, fmt.Errorf("APP_BASE_URL environment variable not set")
	}

	authTokenSecret := os.Getenv("AUTH_TOKEN_SECRET")
	if authTokenSecret == "" {
		return nil, fmt.Errorf("AUTH_TOKEN_SECRET environment variable not set")
	}

	databasePath := os.Getenv("DATABASE_PATH")
	if databasePath == "" {
		databasePath = "./data/mealplanner.db"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	twilioAPIBaseURL := os.Getenv("TWILIO_API_BASE_URL")
	if twilioAPIBaseURL == "" {
		twilioAPIBaseURL = "https://api.twilio.com"
	}

	telegramChatIDStr := os.Getenv("TELEGRAM_CHAT_ID")
	var telegramChatID int64
	if telegramChatIDStr != "" {
		fmt.Sscanf(telegramChatIDStr, "%d", &telegramChatID)
	}

	return &Config{
		DatabasePath:     databasePath,
		Port:             port,
		AppBaseURL:       appBaseURL,
		AuthTokenSecret:  authTokenSecret,
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
		TwilioAPIBaseURL: twilioAPIBaseURL,
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   telegramChatID,
	}, nil
}

// InviteConfigured reports whether all SMS provider settings are present.
func (c *Config) InviteConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFromNumber != ""
}
