package syncevents

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// SyncItemTransactions is the sync_status item whose successful syncs are published
const SyncItemTransactions = "transactions"

type ListenerConfig struct {
	DatabaseURL      string        // Postgres DSN for LISTEN/NOTIFY
	NotifyChannel    string        // Channel name to LISTEN on
	FallbackInterval time.Duration // How often to poll for missed syncs
	MaxRetries       int
	RetryDelay       time.Duration
	PingInterval     time.Duration
	BatchSize        int32 // Max rows to fetch per poll
}

func DefaultListenerConfig() ListenerConfig {
	return ListenerConfig{
		DatabaseURL:      "",
		NotifyChannel:    "transactions_synced",
		FallbackInterval: 30 * time.Second,
		MaxRetries:       5,
		RetryDelay:       200 * time.Millisecond,
		PingInterval:     90 * time.Second,
		BatchSize:        100,
	}
}

// Listener turns sync_status notifications into published sync events
type Listener struct {
	store     Store
	listener  *pq.Listener
	publisher Publisher
	cfg       ListenerConfig
}

func NewListener(store Store, publisher Publisher, cfg ListenerConfig) (*Listener, error) {
	l := pq.NewListener(
		cfg.DatabaseURL,
		10*time.Second,
		time.Minute,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				log.Error().Err(err).Msg("listener event")
			}
		},
	)
	if err := l.Listen(cfg.NotifyChannel); err != nil {
		return nil, fmt.Errorf("failed to listen to channel: %w", err)
	}

	log.Info().
		Str("channel", cfg.NotifyChannel).
		Msg("listening for notifications")

	return &Listener{
		store:     store,
		listener:  l,
		publisher: publisher,
		cfg:       cfg,
	}, nil
}

func (l *Listener) Start(ctx context.Context) error {
	log.Info().
		Str("channel", l.cfg.NotifyChannel).
		Dur("ping_interval", l.cfg.PingInterval).
		Dur("fallback_interval", l.cfg.FallbackInterval).
		Msg("listener started")

	// syncs recorded while the bridge was down
	if err := l.processUnpublished(ctx); err != nil {
		log.Error().Err(err).Msg("failed to process unpublished syncs")
	}

	pingTicker := time.NewTicker(l.cfg.PingInterval)
	fallbackTicker := time.NewTicker(l.cfg.FallbackInterval)
	defer pingTicker.Stop()
	defer fallbackTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("listener shutting down")
			return l.Stop()
		case note := <-l.listener.Notify:
			if note == nil {
				// connection was re-established; notifications may have been missed
				if err := l.processUnpublished(ctx); err != nil {
					log.Error().Err(err).Msg("failed to process unpublished syncs")
				}
				continue
			}
			if err := l.handleNotification(ctx, note.Extra); err != nil {
				log.Error().Err(err).Msg("failed to handle notification")
			}
		case <-fallbackTicker.C:
			if err := l.processUnpublished(ctx); err != nil {
				log.Error().Err(err).Msg("failed to process unpublished syncs")
			}
		case <-pingTicker.C:
			if err := l.listener.Ping(); err != nil {
				log.Error().Err(err).Msg("failed to ping listener")
			}
		}
	}
}

func (l *Listener) Stop() error {
	if l.listener == nil {
		return nil
	}
	return l.listener.Close()
}

// handleNotification publishes the sync_status row named by a notification payload
func (l *Listener) handleNotification(ctx context.Context, extra string) error {
	id, err := strconv.ParseInt(extra, 10, 32)
	if err != nil {
		return fmt.Errorf("invalid sync status id in notification %q: %w", extra, err)
	}

	event, ok, err := l.store.GetEvent(ctx, int32(id))
	if err != nil {
		return err
	}
	if !ok {
		log.Debug().Int64("sync_status_id", id).Msg("sync status already published or unsuccessful")
		return nil
	}

	return l.publishAndMark(ctx, event)
}

// processUnpublished publishes successful syncs that never made it to the stream
func (l *Listener) processUnpublished(ctx context.Context) error {
	unpublished, err := l.store.ListUnpublished(ctx, SyncItemTransactions, l.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, event := range unpublished {
		if err := l.publishAndMark(ctx, event); err != nil {
			log.Error().
				Err(err).
				Int32("sync_status_id", event.SyncStatusID).
				Msg("failed to publish sync event")
			continue
		}
	}
	return nil
}

func (l *Listener) publishAndMark(ctx context.Context, event SyncEvent) error {
	if err := l.publishWithRetry(ctx, event); err != nil {
		return fmt.Errorf("failed to publish sync event: %w", err)
	}

	if err := l.store.MarkPublished(ctx, event.SyncStatusID); err != nil {
		return err
	}

	log.Info().
		Int32("sync_status_id", event.SyncStatusID).
		Str("event_id", event.EventID()).
		Msg("published and marked sync as published")
	return nil
}

// publishWithRetry publishes with a linearly growing delay between attempts
func (l *Listener) publishWithRetry(ctx context.Context, event SyncEvent) error {
	var lastErr error

	for attempt := 0; attempt <= l.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := l.cfg.RetryDelay * time.Duration(attempt)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		if err := l.publisher.Publish(ctx, event); err != nil {
			lastErr = err
			log.Error().
				Err(err).
				Int("attempt", attempt+1).
				Int32("sync_status_id", event.SyncStatusID).
				Msg("failed to publish, retrying")
			continue
		}

		if attempt > 0 {
			log.Info().
				Int("attempt", attempt+1).
				Int32("sync_status_id", event.SyncStatusID).
				Msg("publish succeeded after retry")
		}
		return nil
	}

	return fmt.Errorf("publish failed after %d attempts: %w", l.cfg.MaxRetries+1, lastErr)
}
