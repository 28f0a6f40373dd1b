package alert

import (
	"context"
	"fmt"

	"github.com/placeatlas/ops-portal/internal/errs"
	"github.com/placeatlas/ops-portal/pkg/utils"
)

// SlackSender posts alerts to a Slack incoming webhook.
type SlackSender struct {
	webhookURL string
}

func NewSlackSender(webhookURL string) *SlackSender {
	return &SlackSender{webhookURL: webhookURL}
}

func (s *SlackSender) Name() string {
	return "slack"
}

func (s *SlackSender) Send(ctx context.Context, a *SecurityAlert) error {
	if s.webhookURL == "" {
		return errs.ChannelNotConfigured
	}
	fields := []map[string]interface{}{
		{"title": "Severity", "value": a.Severity.String(), "short": true},
	}
	if a.UserEmail != "" {
		fields = append(fields, map[string]interface{}{
			"title": "User", "value": a.UserEmail, "short": true,
		})
	}
	if a.IPAddress != "" {
		fields = append(fields, map[string]interface{}{
			"title": "IP", "value": utils.MaskIP(a.IPAddress), "short": true,
		})
	}
	for _, k := range sortedDetailKeys(a.Details) {
		fields = append(fields, map[string]interface{}{
			"title": k, "value": fmt.Sprint(a.Details[k]), "short": true,
		})
	}
	attachment := map[string]interface{}{
		"color":  a.Severity.Color(),
		"title":  fmt.Sprintf("%s %s", a.Severity.Emoji(), a.Title),
		"text":   a.Description,
		"fields": fields,
		"ts":     a.Timestamp.Unix(),
	}
	if a.ActionURL != "" {
		attachment["title_link"] = a.ActionURL
	}
	body := map[string]interface{}{
		"attachments": []interface{}{attachment},
	}
	return postJSON(ctx, s.webhookURL, nil, body)
}
