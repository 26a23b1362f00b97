package bot

import (
	"context"
	"log/slog"
	"time"

	"barterbot/internal/telegram"
)

const (
	pollTimeout   = 50 * time.Second
	pollBackoff   = 5 * time.Second
	statsInterval = 30 * time.Second
)

// UpdateSource is the long-poll side of the Telegram client.
type UpdateSource interface {
	GetUpdates(ctx context.Context, offset int64, timeout int) ([]telegram.Update, error)
}

// Poller pulls updates from Telegram and feeds them to the handler.
type Poller struct {
	source  UpdateSource
	handler *Bot
	logger  *slog.Logger
}

// NewPoller creates a poller over source.
func NewPoller(source UpdateSource, handler *Bot, logger *slog.Logger) *Poller {
	return &Poller{source: source, handler: handler, logger: logger}
}

// Start polls until the context is cancelled, backing off on transient API
// errors. Updates are processed in order; the offset only advances past an
// update after it has been handled.
func (p *Poller) Start(ctx context.Context) error {
	var offset int64
	var updatesReceived int64
	lastStatsLog := time.Now()

	p.logger.Info("starting update poller")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		updates, err := p.source.GetUpdates(ctx, offset, int(pollTimeout.Seconds()))
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.logger.Error("poll error, backing off", "error", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(pollBackoff):
			}
			continue
		}

		for _, u := range updates {
			p.handler.HandleUpdate(ctx, u)
			offset = u.UpdateID + 1
			updatesReceived++
		}

		if time.Since(lastStatsLog) >= statsInterval {
			p.logger.Info("poller stats",
				"updates_received", updatesReceived,
				"offset", offset,
			)
			lastStatsLog = time.Now()
		}
	}
}
