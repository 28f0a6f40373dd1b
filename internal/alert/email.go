package alert

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/placeatlas/ops-portal/internal/conf"
	"github.com/placeatlas/ops-portal/internal/errs"
	"github.com/placeatlas/ops-portal/pkg/utils"
)

const defaultEmailEndpoint = "https://api.resend.com/emails"

// EmailSender delivers alerts through an HTTP email API (from/to/subject/HTML).
type EmailSender struct {
	apiKey   string
	from     string
	to       string
	endpoint string
}

func NewEmailSender(cfg conf.EmailChannel) *EmailSender {
	return &EmailSender{
		apiKey:   cfg.APIKey,
		from:     cfg.From,
		to:       cfg.To,
		endpoint: defaultEmailEndpoint,
	}
}

func (e *EmailSender) Name() string {
	return "email"
}

func (e *EmailSender) Send(ctx context.Context, a *SecurityAlert) error {
	if e.apiKey == "" || e.to == "" {
		return errs.ChannelNotConfigured
	}
	body := map[string]interface{}{
		"from":    e.from,
		"to":      []string{e.to},
		"subject": fmt.Sprintf("[%s] %s", strings.ToUpper(a.Severity.String()), a.Title),
		"html":    renderHTML(a),
	}
	headers := map[string]string{"Authorization": "Bearer " + e.apiKey}
	return postJSON(ctx, e.endpoint, headers, body)
}

func renderHTML(a *SecurityAlert) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family:sans-serif;max-width:600px">`)
	fmt.Fprintf(&b, `<h2 style="color:%s">%s %s</h2>`,
		a.Severity.Color(), a.Severity.Emoji(), html.EscapeString(a.Title))
	fmt.Fprintf(&b, `<p>%s</p>`, html.EscapeString(a.Description))
	b.WriteString(`<table style="border-collapse:collapse">`)
	row := func(k, v string) {
		if v == "" {
			return
		}
		fmt.Fprintf(&b, `<tr><td style="padding:4px 12px 4px 0;color:#666">%s</td><td style="padding:4px 0">%s</td></tr>`,
			html.EscapeString(k), html.EscapeString(v))
	}
	row("Severity", a.Severity.String())
	row("Time", a.Timestamp.UTC().Format("2006-01-02 15:04:05 UTC"))
	row("User", a.UserEmail)
	row("IP address", utils.MaskIP(a.IPAddress))
	row("User agent", a.UserAgent)
	for _, k := range sortedDetailKeys(a.Details) {
		row(k, fmt.Sprint(a.Details[k]))
	}
	b.WriteString(`</table>`)
	if a.ActionURL != "" {
		fmt.Fprintf(&b, `<p><a href="%s" style="color:#1a73e8">Review in admin portal</a></p>`,
			html.EscapeString(a.ActionURL))
	}
	b.WriteString(`</div>`)
	return b.String()
}

func sortedDetailKeys(details map[string]interface{}) []string {
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
