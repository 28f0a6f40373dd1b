package alert

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/placeatlas/ops-portal/internal/errs"
	"github.com/placeatlas/ops-portal/pkg/utils"
)

const sendTimeout = 10 * time.Second

// Sender is one outbound notification integration.
type Sender interface {
	Name() string
	Send(ctx context.Context, a *SecurityAlert) error
}

// Dispatcher rate-limits alerts and fans them out to every configured
// channel in parallel. Channel failures never escape a dispatch call.
type Dispatcher struct {
	limiter *RateLimiter
	senders []Sender
}

func NewDispatcher(limiter *RateLimiter, senders ...Sender) *Dispatcher {
	return &Dispatcher{limiter: limiter, senders: senders}
}

// SendSecurityAlert returns per-channel success. The only error it surfaces
// is caller misuse (a nil or untitled alert); a suppressed or fully failed
// dispatch is reported through the outcome map.
func (d *Dispatcher) SendSecurityAlert(ctx context.Context, a *SecurityAlert) (map[string]bool, error) {
	if a == nil || a.Title == "" {
		return nil, errors.WithStack(errs.MalformedAlert)
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now()
	}
	results := make(map[string]bool, len(d.senders))
	if !d.limiter.Allow(a.RateKey()) {
		utils.Log.Debugf("alert suppressed by cooldown: %s", a.RateKey())
		for _, s := range d.senders {
			results[s.Name()] = false
		}
		return results, nil
	}

	type outcome struct {
		name string
		ok   bool
	}
	ch := make(chan outcome, len(d.senders))
	var wg sync.WaitGroup
	for _, s := range d.senders {
		wg.Add(1)
		go func(s Sender) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					utils.Log.Errorf("alert channel %s panicked: %v", s.Name(), r)
					ch <- outcome{s.Name(), false}
				}
			}()
			sctx, cancel := context.WithTimeout(ctx, sendTimeout)
			defer cancel()
			err := s.Send(sctx, a)
			if err != nil && !errors.Is(err, errs.ChannelNotConfigured) {
				utils.Log.Warnf("failed send alert %q via %s: %s", a.Title, s.Name(), err.Error())
			}
			ch <- outcome{s.Name(), err == nil}
		}(s)
	}
	wg.Wait()
	close(ch)
	for o := range ch {
		results[o.name] = o.ok
	}
	return results, nil
}
