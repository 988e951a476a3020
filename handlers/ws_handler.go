package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/tripweave/tripweave-backend/config"
	"github.com/tripweave/tripweave-backend/logger"
	"github.com/tripweave/tripweave-backend/models"
	"github.com/tripweave/tripweave-backend/types"
)

// WSHandler streams a trip's bus events over a WebSocket. Clients are expected
// to fetch the snapshot endpoint after connecting and merge events on top.
type WSHandler struct {
	guard          models.AccessVerifier
	publisher      types.EventPublisher
	log            *zap.SugaredLogger
	pingInterval   time.Duration
	writeTimeout   time.Duration
	allowedOrigins []string
	isDevelopment  bool
}

func NewWSHandler(guard models.AccessVerifier, publisher types.EventPublisher, serverCfg *config.ServerConfig) *WSHandler {
	return &WSHandler{
		guard:          guard,
		publisher:      publisher,
		log:            logger.GetLogger().Named("ws"),
		pingInterval:   30 * time.Second,
		writeTimeout:   10 * time.Second,
		allowedOrigins: serverCfg.AllowedOrigins,
		isDevelopment:  serverCfg.Environment == config.EnvDevelopment,
	}
}

func (h *WSHandler) acceptOptions() *websocket.AcceptOptions {
	opts := &websocket.AcceptOptions{
		CompressionMode: websocket.CompressionContextTakeover,
	}
	if h.isDevelopment {
		opts.InsecureSkipVerify = true
	} else {
		opts.OriginPatterns = h.allowedOrigins
	}
	return opts
}

// StreamTripEvents handles GET /trips/:id/ws. Authorization happens before the
// upgrade so rejected callers get a regular HTTP error.
func (h *WSHandler) StreamTripEvents(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if _, err := h.guard.Authorize(c.Request.Context(), tripID, userID, types.CapabilityRead); err != nil {
		_ = c.Error(err)
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, h.acceptOptions())
	if err != nil {
		h.log.Errorw("Failed to accept WebSocket connection",
			"userID", userID, "tripID", tripID, "error", err)
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// Unique per connection so one user can hold multiple tabs open.
	subscriberID := userID + ":" + uuid.New().String()
	channel := types.TripChannel(tripID)

	events, err := h.publisher.Subscribe(ctx, channel, subscriberID)
	if err != nil {
		h.log.Errorw("Failed to subscribe to trip channel",
			"channel", channel, "subscriberID", subscriberID, "error", err)
		_ = conn.Close(websocket.StatusInternalError, "subscription failed")
		return
	}
	defer func() {
		if err := h.publisher.Unsubscribe(context.Background(), channel, subscriberID); err != nil {
			h.log.Warnw("Failed to unsubscribe", "subscriberID", subscriberID, "error", err)
		}
	}()

	h.log.Infow("WebSocket connection established",
		"userID", userID, "tripID", tripID)

	errCh := make(chan error, 3)
	go func() { errCh <- h.readLoop(ctx, conn) }()
	go func() { errCh <- h.writeLoop(ctx, conn, events) }()
	go func() { errCh <- h.pingLoop(ctx, conn) }()

	err = <-errCh
	cancel()
	if err != nil && websocket.CloseStatus(err) != websocket.StatusNormalClosure {
		h.log.Warnw("WebSocket connection closed with error",
			"userID", userID, "tripID", tripID, "error", err)
	}
	_ = conn.Close(websocket.StatusNormalClosure, "")
}

// readLoop drains client frames. The stream is server-to-client; reading only
// surfaces closes and keeps control frames flowing.
func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn) error {
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			return err
		}
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, events <-chan types.Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			writeCtx, cancel := context.WithTimeout(ctx, h.writeTimeout)
			err := wsjson.Write(writeCtx, conn, event)
			cancel()
			if err != nil {
				return err
			}
		}
	}
}

func (h *WSHandler) pingLoop(ctx context.Context, conn *websocket.Conn) error {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, h.writeTimeout)
			err := conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return err
			}
		}
	}
}
