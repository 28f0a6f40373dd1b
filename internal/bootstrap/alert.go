package bootstrap

import (
	"context"
	"time"

	"github.com/placeatlas/ops-portal/internal/alert"
	"github.com/placeatlas/ops-portal/internal/conf"
	"github.com/placeatlas/ops-portal/internal/session"
	"github.com/placeatlas/ops-portal/pkg/utils"
)

// InitAlerts builds the security-alert pipeline and wires it into session
// enforcement. The rate-limiter sweep stops when ctx is cancelled.
func InitAlerts(ctx context.Context) *alert.Dispatcher {
	cfg := conf.Conf.Alert
	limiter := alert.NewRateLimiter(time.Duration(cfg.CooldownMinutes) * time.Minute)
	go limiter.Start(ctx)

	dispatcher := alert.NewDispatcher(limiter,
		alert.NewEmailSender(cfg.Email),
		alert.NewSlackSender(cfg.SlackWebhookURL),
		alert.NewDiscordSender(cfg.DiscordWebhook),
	)
	session.SetAlerter(dispatcher)
	utils.Log.Infof("init alert dispatcher with cooldown %dm", cfg.CooldownMinutes)
	return dispatcher
}
