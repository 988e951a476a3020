package reconciler

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/tripweave/tripweave-backend/logger"
	"github.com/tripweave/tripweave-backend/types"
)

// SnapshotFetcher loads a full trip snapshot over the request/response path.
type SnapshotFetcher func(ctx context.Context, tripID string) (*Snapshot, error)

// Client binds one subscriber's snapshot to a bus subscription. The bus does
// not replay missed events, so every (re)connect re-fetches the snapshot first
// and only then applies events observed after that point.
type Client struct {
	publisher types.EventPublisher
	fetch     SnapshotFetcher
	tripID    string
	userID    string
	log       *zap.SugaredLogger

	mu       sync.RWMutex
	snapshot *Snapshot
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewClient(publisher types.EventPublisher, fetch SnapshotFetcher, tripID, userID string) *Client {
	return &Client{
		publisher: publisher,
		fetch:     fetch,
		tripID:    tripID,
		userID:    userID,
		log:       logger.GetLogger().Named("reconciler"),
	}
}

// Connect subscribes to the trip channel, loads the authoritative snapshot,
// and starts applying events. Subscribing before fetching closes the gap where
// a mutation lands between the fetch and the first received event; the dedup
// rules make the overlap harmless.
func (c *Client) Connect(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)

	events, err := c.publisher.Subscribe(runCtx, types.TripChannel(c.tripID), c.userID)
	if err != nil {
		cancel()
		return err
	}

	snapshot, err := c.fetch(runCtx, c.tripID)
	if err != nil {
		cancel()
		_ = c.publisher.Unsubscribe(context.Background(), types.TripChannel(c.tripID), c.userID)
		return err
	}

	c.mu.Lock()
	c.snapshot = snapshot
	c.cancel = cancel
	c.done = make(chan struct{})
	c.mu.Unlock()

	go c.run(runCtx, events)
	return nil
}

func (c *Client) run(ctx context.Context, events <-chan types.Event) {
	defer close(c.done)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			c.mu.Lock()
			err := c.snapshot.Apply(event)
			c.mu.Unlock()
			if err != nil {
				c.log.Warnw("Failed to apply event",
					"error", err, "eventType", event.Type, "eventId", event.ID)
			}
		}
	}
}

// Snapshot returns the current merged view.
func (c *Client) Snapshot() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

// Close unsubscribes and waits for the apply loop to stop.
func (c *Client) Close(ctx context.Context) error {
	c.mu.RLock()
	cancel := c.cancel
	done := c.done
	c.mu.RUnlock()

	if cancel == nil {
		return nil
	}
	cancel()
	err := c.publisher.Unsubscribe(ctx, types.TripChannel(c.tripID), c.userID)

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return err
}
