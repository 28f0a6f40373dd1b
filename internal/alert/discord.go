package alert

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/placeatlas/ops-portal/internal/errs"
	"github.com/placeatlas/ops-portal/pkg/utils"
)

// DiscordSender posts alerts to a Discord webhook as a single embed.
type DiscordSender struct {
	webhookURL string
}

func NewDiscordSender(webhookURL string) *DiscordSender {
	return &DiscordSender{webhookURL: webhookURL}
}

func (d *DiscordSender) Name() string {
	return "discord"
}

func (d *DiscordSender) Send(ctx context.Context, a *SecurityAlert) error {
	if d.webhookURL == "" {
		return errs.ChannelNotConfigured
	}
	fields := []map[string]interface{}{
		{"name": "Severity", "value": a.Severity.String(), "inline": true},
	}
	if a.UserEmail != "" {
		fields = append(fields, map[string]interface{}{
			"name": "User", "value": a.UserEmail, "inline": true,
		})
	}
	if a.IPAddress != "" {
		fields = append(fields, map[string]interface{}{
			"name": "IP", "value": utils.MaskIP(a.IPAddress), "inline": true,
		})
	}
	for _, k := range sortedDetailKeys(a.Details) {
		fields = append(fields, map[string]interface{}{
			"name": k, "value": fmt.Sprint(a.Details[k]), "inline": true,
		})
	}
	embed := map[string]interface{}{
		"title":       fmt.Sprintf("%s %s", a.Severity.Emoji(), a.Title),
		"description": a.Description,
		"color":       hexColorToDecimal(a.Severity.Color()),
		"fields":      fields,
		"timestamp":   a.Timestamp.UTC().Format(time.RFC3339),
	}
	if a.ActionURL != "" {
		embed["url"] = a.ActionURL
	}
	body := map[string]interface{}{
		"embeds": []interface{}{embed},
	}
	return postJSON(ctx, d.webhookURL, nil, body)
}

func hexColorToDecimal(hex string) int64 {
	if len(hex) != 7 || hex[0] != '#' {
		return 0
	}
	n, err := strconv.ParseInt(hex[1:], 16, 64)
	if err != nil {
		utils.Log.Debugf("bad hex color %q: %s", hex, err.Error())
		return 0
	}
	return n
}
