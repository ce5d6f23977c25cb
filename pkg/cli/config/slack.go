package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"

	slacksvc "github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/service/slack"
)

// Slack holds CLI flags for Slack integration
type Slack struct {
	botToken      string
	signingSecret string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token (xoxb-...)",
			Sources:     cli.EnvVars("CHECKIN_SLACK_BOT_TOKEN"),
			Destination: &s.botToken,
		},
		&cli.StringFlag{
			Name:        "slack-signing-secret",
			Usage:       "Slack signing secret for webhook verification",
			Sources:     cli.EnvVars("CHECKIN_SLACK_SIGNING_SECRET"),
			Destination: &s.signingSecret,
		},
	}
}

// LogValue renders the Slack configuration with secrets masked
func (s *Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("bot_token_set", s.botToken != ""),
		slog.Bool("signing_secret_set", s.signingSecret != ""),
	)
}

// IsConfigured reports whether a bot token is present
func (s *Slack) IsConfigured() bool {
	return s.botToken != ""
}

// SigningSecret returns the webhook signing secret
func (s *Slack) SigningSecret() string {
	return s.signingSecret
}

// Configure creates the Slack messaging service. Returns nil when no bot
// token is configured.
func (s *Slack) Configure() (slacksvc.Service, error) {
	if s.botToken == "" {
		return nil, nil
	}
	return slacksvc.New(s.botToken)
}
