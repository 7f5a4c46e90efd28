package main

import (
	"errors"
	"os"
	"strings"
)

// Config is everything the process reads from the environment, resolved
// once at startup and injected from main.
type Config struct {
	TrackedUser    string
	WebhookURL     string
	StatusKey      string
	BotName        string
	CheckSchedules []string
	SlackToken     string
	SlackChannel   string
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		TrackedUser:  os.Getenv("GITHUB_USERNAME"),
		WebhookURL:   os.Getenv("DISCORD_WEBHOOK_URL"),
		StatusKey:    getenv("STATUS_KEY", "status.json"),
		BotName:      getenv("BOT_NAME", "TIL Commit Bot"),
		SlackToken:   os.Getenv("SLACK_BOT_TOKEN"),
		SlackChannel: os.Getenv("SLACK_CHANNEL"),
	}

	schedules := getenv("CHECK_SCHEDULES", "0 12 * * *,0 22 * * *,59 23 * * *")
	for _, expr := range strings.Split(schedules, ",") {
		cfg.CheckSchedules = append(cfg.CheckSchedules, strings.TrimSpace(expr))
	}

	if cfg.TrackedUser == "" {
		return nil, errors.New("GITHUB_USERNAME must be set")
	}

	return cfg, nil
}
