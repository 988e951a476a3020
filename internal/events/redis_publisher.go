// Package events implements the trip event bus on Redis Pub/Sub.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tripweave/tripweave-backend/logger"
	"github.com/tripweave/tripweave-backend/types"
)

// Config holds tunables for the RedisPublisher.
type Config struct {
	PublishTimeout   time.Duration
	SubscribeTimeout time.Duration
	EventBufferSize  int
}

// DefaultConfig returns the default publisher tunables.
func DefaultConfig() Config {
	return Config{
		PublishTimeout:   5 * time.Second,
		SubscribeTimeout: 10 * time.Second,
		EventBufferSize:  100,
	}
}

type metrics struct {
	publishLatency    prometheus.Histogram
	errorCount        *prometheus.CounterVec
	eventCount        *prometheus.CounterVec
	activeSubscribers prometheus.Gauge
}

var (
	metricsInstance *metrics
	metricsOnce     sync.Once
	defaultRegistry = prometheus.DefaultRegisterer
)

func newMetrics() *metrics {
	metricsOnce.Do(func() {
		metricsInstance = &metrics{
			publishLatency: promauto.With(defaultRegistry).NewHistogram(prometheus.HistogramOpts{
				Name:    "event_publish_duration_seconds",
				Help:    "Time taken to publish events",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			}),
			errorCount: promauto.With(defaultRegistry).NewCounterVec(prometheus.CounterOpts{
				Name: "event_errors_total",
				Help: "Total number of event-related errors",
			}, []string{"operation", "type"}),
			eventCount: promauto.With(defaultRegistry).NewCounterVec(prometheus.CounterOpts{
				Name: "events_total",
				Help: "Total number of events by operation and type",
			}, []string{"operation", "type"}),
			activeSubscribers: promauto.With(defaultRegistry).NewGauge(prometheus.GaugeOpts{
				Name: "event_active_subscribers",
				Help: "Current number of active subscribers",
			}),
		}
	})
	return metricsInstance
}

// resetMetricsForTesting swaps in a fresh registry so tests don't collide on
// duplicate metric registration.
func resetMetricsForTesting() {
	defaultRegistry = prometheus.NewRegistry()
	metricsInstance = nil
	metricsOnce = sync.Once{}
}

// RedisPublisher implements types.EventPublisher on Redis Pub/Sub. Channel
// FIFO ordering is the transport's guarantee; this layer adds validation,
// metrics, and subscription bookkeeping.
type RedisPublisher struct {
	rdb     *redis.Client
	log     *zap.SugaredLogger
	metrics *metrics
	config  Config
	mu      sync.RWMutex
	subs    map[string]*subscription
	wg      sync.WaitGroup
}

type subscription struct {
	pubsub    *redis.PubSub
	cancelCtx context.CancelFunc
	closeOnce sync.Once
}

func NewRedisPublisher(rdb *redis.Client, cfg ...Config) *RedisPublisher {
	config := DefaultConfig()
	if len(cfg) > 0 {
		config = cfg[0]
	}

	return &RedisPublisher{
		rdb:     rdb,
		log:     logger.GetLogger().Named("events"),
		metrics: newMetrics(),
		config:  config,
		subs:    make(map[string]*subscription),
	}
}

// Publish sends one event to the named channel (trip-<id> or user-<id>).
func (p *RedisPublisher) Publish(ctx context.Context, channel string, event types.Event) error {
	start := time.Now()
	defer func() {
		p.metrics.publishLatency.Observe(time.Since(start).Seconds())
	}()

	fillDefaults(&event)
	if err := event.Validate(); err != nil {
		p.metrics.errorCount.WithLabelValues("publish", "validation").Inc()
		return fmt.Errorf("invalid event: %w", err)
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.metrics.errorCount.WithLabelValues("publish", "marshal").Inc()
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.config.PublishTimeout)
	defer cancel()

	if err := p.rdb.Publish(ctx, channel, data).Err(); err != nil {
		p.metrics.errorCount.WithLabelValues("publish", "redis").Inc()
		return fmt.Errorf("redis publish: %w", err)
	}

	p.metrics.eventCount.WithLabelValues("publish", string(event.Type)).Inc()
	return nil
}

// PublishBatch pipelines several events onto one channel.
func (p *RedisPublisher) PublishBatch(ctx context.Context, channel string, events []types.Event) error {
	if len(events) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, p.config.PublishTimeout)
	defer cancel()

	pipe := p.rdb.Pipeline()
	for _, event := range events {
		fillDefaults(&event)
		if err := event.Validate(); err != nil {
			p.metrics.errorCount.WithLabelValues("publish_batch", "validation").Inc()
			return fmt.Errorf("invalid event in batch: %w", err)
		}

		data, err := json.Marshal(event)
		if err != nil {
			p.metrics.errorCount.WithLabelValues("publish_batch", "marshal").Inc()
			return fmt.Errorf("marshal event in batch: %w", err)
		}
		pipe.Publish(ctx, channel, data)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		p.metrics.errorCount.WithLabelValues("publish_batch", "redis").Inc()
		return fmt.Errorf("execute batch publish: %w", err)
	}

	for _, event := range events {
		p.metrics.eventCount.WithLabelValues("publish", string(event.Type)).Inc()
	}
	return nil
}

// Subscribe opens a buffered event stream over the channel. One subscription
// per (channel, subscriber); a second attempt is an error.
func (p *RedisPublisher) Subscribe(ctx context.Context, channel string, subscriberID string, filters ...types.EventType) (<-chan types.Event, error) {
	subKey := fmt.Sprintf("%s:%s", channel, subscriberID)

	p.mu.Lock()
	if _, exists := p.subs[subKey]; exists {
		p.mu.Unlock()
		p.metrics.errorCount.WithLabelValues("subscribe", "duplicate").Inc()
		return nil, fmt.Errorf("subscription already exists for %s", subKey)
	}

	pubsub := p.rdb.Subscribe(ctx, channel)
	subCtx, cancel := context.WithCancel(context.Background())
	sub := &subscription{pubsub: pubsub, cancelCtx: cancel}
	p.subs[subKey] = sub
	p.mu.Unlock()

	p.metrics.activeSubscribers.Inc()

	events := make(chan types.Event, p.config.EventBufferSize)
	readyCh := make(chan struct{})

	p.wg.Add(1)
	go p.processMessages(subCtx, pubsub, events, filters, subKey, readyCh)

	select {
	case <-readyCh:
	case <-time.After(p.config.SubscribeTimeout):
		p.log.Warnw("Subscription ready timeout", "subKey", subKey)
	case <-ctx.Done():
		// The caller never sees the channel, so nothing would ever
		// unsubscribe this stream; tear it down here.
		p.teardownSubscription(subKey, sub)
		return nil, ctx.Err()
	}

	return events, nil
}

// teardownSubscription cancels the processing goroutine, closes the pubsub
// stream, and drops the bookkeeping entry. Safe to call more than once.
func (p *RedisPublisher) teardownSubscription(subKey string, sub *subscription) {
	sub.cancelCtx()
	sub.closeOnce.Do(func() {
		if sub.pubsub == nil {
			return
		}
		if err := sub.pubsub.Close(); err != nil {
			p.log.Errorw("Error closing pubsub", "error", err, "subKey", subKey)
		}
	})

	p.mu.Lock()
	delete(p.subs, subKey)
	p.mu.Unlock()
}

func (p *RedisPublisher) processMessages(ctx context.Context, pubsub *redis.PubSub, events chan<- types.Event, filters []types.EventType, subKey string, readyCh chan<- struct{}) {
	defer p.wg.Done()
	defer func() {
		p.mu.RLock()
		sub, exists := p.subs[subKey]
		p.mu.RUnlock()

		if exists {
			sub.closeOnce.Do(func() {
				if err := pubsub.Close(); err != nil {
					p.log.Errorw("Error closing pubsub", "error", err, "subKey", subKey)
				}
			})
		}

		close(events)
		p.metrics.activeSubscribers.Dec()
		p.log.Infow("Subscription closed", "subKey", subKey)
	}()

	ch := pubsub.Channel()
	close(readyCh)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var event types.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				p.metrics.errorCount.WithLabelValues("process", "unmarshal").Inc()
				p.log.Errorw("Failed to unmarshal event", "error", err, "subKey", subKey)
				continue
			}

			if len(filters) > 0 && !matchesFilter(event.Type, filters) {
				continue
			}

			// Drop rather than block: a slow consumer recovers via the
			// snapshot re-fetch rule on reconnect.
			select {
			case events <- event:
				p.metrics.eventCount.WithLabelValues("receive", string(event.Type)).Inc()
			default:
				p.metrics.errorCount.WithLabelValues("process", "channel_full").Inc()
				p.log.Warnw("Dropped event due to full channel", "subKey", subKey, "eventType", event.Type)
			}
		}
	}
}

// Unsubscribe tears down one (channel, subscriber) stream.
func (p *RedisPublisher) Unsubscribe(ctx context.Context, channel string, subscriberID string) error {
	subKey := fmt.Sprintf("%s:%s", channel, subscriberID)

	p.mu.RLock()
	sub, exists := p.subs[subKey]
	p.mu.RUnlock()
	if !exists {
		return fmt.Errorf("no subscription found for %s", subKey)
	}

	p.teardownSubscription(subKey, sub)
	return nil
}

// Shutdown cancels all subscriptions and waits for their goroutines.
func (p *RedisPublisher) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	localSubs := make(map[string]*subscription, len(p.subs))
	for k, v := range p.subs {
		localSubs[k] = v
	}
	p.subs = make(map[string]*subscription)
	p.mu.Unlock()

	p.log.Infow("Shutting down RedisPublisher", "count", len(localSubs))
	for _, sub := range localSubs {
		sub.cancelCtx()
	}
	p.wg.Wait()

	return nil
}

func fillDefaults(event *types.Event) {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Version == 0 {
		event.Version = 1
	}
}

func matchesFilter(t types.EventType, filters []types.EventType) bool {
	for _, f := range filters {
		if t == f {
			return true
		}
	}
	return false
}
