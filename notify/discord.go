package notify

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

const userAgent = "DiscordBot (TIL-Commit-Bot, 1.0)"

// Discord posts messages to a webhook endpoint.
type Discord struct {
	webhookURL string
	botName    string
	strict     bool
	client     *http.Client
}

type DiscordOption func(*Discord)

// Strict counts only a 204 response as delivered. The default also accepts
// 200.
func Strict() DiscordOption {
	return func(d *Discord) { d.strict = true }
}

func NewDiscord(webhookURL, botName string, opts ...DiscordOption) *Discord {
	d := &Discord{
		webhookURL: webhookURL,
		botName:    botName,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Discord) Send(text string) bool {
	if d.webhookURL == "" {
		log.Error("Discord webhook URL not set.")
		return false
	}

	payload, err := json.Marshal(map[string]string{
		"content":  text,
		"username": d.botName,
	})
	if err != nil {
		log.WithField("error", err).Error("Could not encode discord payload.")
		return false
	}

	req, err := http.NewRequest(http.MethodPost, d.webhookURL, bytes.NewReader(payload))
	if err != nil {
		log.WithField("error", err).Error("Could not build discord request.")
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		log.WithField("error", err).Error("Error while posting message to discord.")
		return false
	}
	defer resp.Body.Close()

	log.WithField("status", resp.StatusCode).Debug("Discord responded.")

	if d.strict {
		return resp.StatusCode == http.StatusNoContent
	}
	return resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent
}
