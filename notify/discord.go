package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/tournament-dashboard/services"
	"github.com/bwmarrin/discordgo"
)

const sendTimeout = 10 * time.Second

// Embed colours per notification level.
var levelColors = map[services.NotificationLevel]int{
	services.LevelInfo:    0x3498db,
	services.LevelSuccess: 0x2ecc71,
	services.LevelError:   0xe74c3c,
}

// announced events; edits are far too chatty for a channel
var announced = map[string]bool{
	services.EventSaved:      true,
	services.EventSaveFailed: true,
	services.EventDiscarded:  true,
	services.EventLoadFailed: true,
}

// WebhookExecutor is the part of *discordgo.Session the notifier needs.
type WebhookExecutor interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type DiscordNotifier struct {
	exec      WebhookExecutor
	webhookID string
	token     string
	username  string
	logger    *slog.Logger
}

// NewDiscordNotifier posts through a token-less session; webhooks carry
// their own credentials.
func NewDiscordNotifier(webhookID, token string, logger *slog.Logger) (*DiscordNotifier, error) {
	s, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	return NewDiscordNotifierWithExecutor(s, webhookID, token, logger), nil
}

func NewDiscordNotifierWithExecutor(exec WebhookExecutor, webhookID, token string, logger *slog.Logger) *DiscordNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &DiscordNotifier{
		exec:      exec,
		webhookID: webhookID,
		token:     token,
		username:  "Tournament Dashboard",
		logger:    logger,
	}
}

// Notify sends save and load outcomes in the background. Failures are
// logged and never reach the caller.
func (d *DiscordNotifier) Notify(ctx context.Context, n services.Notification) {
	if !announced[n.Event] {
		return
	}
	params := d.params(n)
	go func() {
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sendTimeout)
		defer cancel()
		if err := d.send(sendCtx, params); err != nil {
			d.logger.Warn("discord announcement failed", slog.String("event", n.Event), slog.Any("error", err))
		}
	}()
}

func (d *DiscordNotifier) send(ctx context.Context, params *discordgo.WebhookParams) error {
	_, err := d.exec.WebhookExecute(d.webhookID, d.token, false, params, discordgo.WithContext(ctx))
	return err
}

func (d *DiscordNotifier) params(n services.Notification) *discordgo.WebhookParams {
	return &discordgo.WebhookParams{
		Username: d.username,
		Embeds: []*discordgo.MessageEmbed{{
			Title:       n.Event,
			Description: n.Message,
			Color:       levelColors[n.Level],
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
		}},
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	}
}
