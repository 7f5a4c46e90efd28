package notify

import (
	colorful "github.com/lucasb-eyer/go-colorful"
	log "github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
)

// Slack mirrors notifications into a slack channel.
type Slack struct {
	api     *slack.Client
	channel string
}

func NewSlack(token, channel string) *Slack {
	return &Slack{
		api:     slack.New(token),
		channel: channel,
	}
}

func (s *Slack) Send(text string) bool {
	attachment := slack.Attachment{
		Color:      colorful.FastHappyColor().Hex(),
		MarkdownIn: []string{"text"},
		Text:       text,
	}

	_, _, err := s.api.PostMessage(s.channel,
		slack.MsgOptionText("Commit check-in", true),
		slack.MsgOptionAsUser(true),
		slack.MsgOptionAttachments(attachment))
	if err != nil {
		log.WithFields(log.Fields{
			"channel": s.channel,
			"error":   err,
		}).Warn("Error while posting message to slack")
		return false
	}
	return true
}
