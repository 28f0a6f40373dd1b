package alert

import (
	"context"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// RestyClient is shared by all channel senders. Per-send deadlines come from
// the dispatcher's context; this timeout is a backstop.
var RestyClient = resty.New().
	SetTimeout(10 * time.Second).
	SetHeader("user-agent", "ops-portal/1.0")

// transientError marks failures worth retrying (connectivity, 429, 5xx).
type transientError struct {
	error
}

func isTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

// postJSON posts a JSON body with a small bounded retry on transient
// failures. Non-2xx responses outside 429/5xx fail immediately.
func postJSON(ctx context.Context, url string, headers map[string]string, body interface{}) error {
	return retry.Do(
		func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := RestyClient.R().
				SetContext(ctx).
				SetHeader("Content-Type", "application/json").
				SetHeaders(headers).
				SetBody(body).
				Post(url)
			if err != nil {
				return &transientError{errors.WithStack(err)}
			}
			if res.IsError() {
				respErr := errors.Errorf("%s: %s", res.Status(), res.String())
				if res.StatusCode() == 429 || res.StatusCode() >= 500 {
					return &transientError{respErr}
				}
				return respErr
			}
			return nil
		},
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransient),
	)
}
