package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"notes/notes/utils/logging"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventCreateNote is published once per successfully created note.
const EventCreateNote = "create_note"

const (
	defaultQueueSize    = 16
	defaultWriteTimeout = 5 * time.Second
)

var ErrHubClosed = errors.New("realtime hub closed")

// Message is the envelope written to every subscriber.
type Message struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type subscriber struct {
	id    string
	queue chan []byte
}

// Hub fans events out to every connected websocket. Publishing never waits on
// a slow client: a subscriber whose queue is full misses the event.
type Hub struct {
	mu           sync.Mutex
	subscribers  map[string]*subscriber
	closed       chan struct{}
	closeOnce    sync.Once
	queueSize    int
	writeTimeout time.Duration
}

func NewHub() *Hub {
	return &Hub{
		subscribers:  make(map[string]*subscriber),
		closed:       make(chan struct{}),
		queueSize:    defaultQueueSize,
		writeTimeout: defaultWriteTimeout,
	}
}

// Publish encodes payload under event and queues it for all subscribers.
func (h *Hub) Publish(ctx context.Context, event string, payload any) error {
	select {
	case <-h.closed:
		return ErrHubClosed
	default:
	}

	data, err := json.Marshal(Message{Event: event, Data: payload})
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.subscribers {
		select {
		case sub.queue <- data:
		default:
			logging.AppLogger.Warn("dropping event for slow subscriber",
				zap.String("subscriber", sub.id),
				zap.String("event", event),
			)
		}
	}
	return nil
}

// Subscribers returns the number of connected clients.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// ServeHTTP upgrades the request and streams events until the client leaves
// or the hub closes. Messages from the client are discarded.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		logging.ErrorLogger.Error("websocket accept failed", zap.Error(err))
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	sub := h.subscribe()
	defer h.unsubscribe(sub)
	logging.AppLogger.Info("realtime subscriber connected", zap.String("subscriber", sub.id))

	ctx := conn.CloseRead(r.Context())
	for {
		select {
		case <-ctx.Done():
			return
		case <-h.closed:
			conn.Close(websocket.StatusGoingAway, "server shutting down")
			return
		case data := <-sub.queue:
			if err := h.write(ctx, conn, data); err != nil {
				logging.AppLogger.Info("realtime subscriber gone",
					zap.String("subscriber", sub.id),
					zap.Error(err),
				)
				return
			}
		}
	}
}

// Close disconnects every subscriber. Later publishes fail with ErrHubClosed.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.closed) })
}

func (h *Hub) write(ctx context.Context, conn *websocket.Conn, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, h.writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, data)
}

func (h *Hub) subscribe() *subscriber {
	sub := &subscriber{
		id:    uuid.NewString(),
		queue: make(chan []byte, h.queueSize),
	}
	h.mu.Lock()
	h.subscribers[sub.id] = sub
	h.mu.Unlock()
	return sub
}

func (h *Hub) unsubscribe(sub *subscriber) {
	h.mu.Lock()
	delete(h.subscribers, sub.id)
	h.mu.Unlock()
}
