// Package websocket pushes transient notifications to connected dashboard
// clients: after every successful mutation the REST layer publishes a toast
// ("Alert Resolved", "Invitation Sent", ...) that each open browser session
// renders and auto-dismisses.
//
// Design notes
//
//   - Each client has a dedicated buffered channel of JSON-encoded frames.
//     Sends are non-blocking, so a slow or disconnected client never applies
//     back-pressure to the HTTP handler that published the notification.
//   - Clients are tracked in a sync.Map keyed by client ID to allow
//     concurrent reads without a global lock on the hot broadcast path.
//   - Notifications are fire-and-forget: dropping a frame for one client
//     loses that client a toast, nothing more.
package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Variant selects the toast styling, mirroring the client's notification
// component.
type Variant string

const (
	VariantDefault Variant = "default"
	VariantSuccess Variant = "success"
)

// Notification is one transient toast.
type Notification struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant"`
}

// Message is the envelope pushed to clients. Type is always "notification".
type Message struct {
	Type string       `json:"type"`
	Data Notification `json:"data"`
}

// Client represents one connected dashboard session. It is created by
// Broadcaster.Register and valid until Unregister is called.
type Client struct {
	id      string
	send    chan []byte
	Dropped atomic.Int64 // incremented when the send buffer is full
}

// ID returns the client's unique identifier.
func (c *Client) ID() string { return c.id }

// Send returns a receive-only channel delivering JSON-encoded frames. The
// channel is closed when the client is unregistered.
func (c *Client) Send() <-chan []byte { return c.send }

// Broadcaster fans notifications out to every connected client. It is safe
// for concurrent use.
type Broadcaster struct {
	clients   sync.Map // map[string]*Client
	clientCnt atomic.Int64

	bufSize int
	logger  *slog.Logger

	closed    atomic.Bool
	closeOnce sync.Once
}

// NewBroadcaster creates a Broadcaster. bufSize is the per-client channel
// buffer depth; 0 uses the default of 16, plenty for human-triggered
// notification rates.
func NewBroadcaster(logger *slog.Logger, bufSize int) *Broadcaster {
	if bufSize <= 0 {
		bufSize = 16
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Broadcaster{bufSize: bufSize, logger: logger}
}

// Register creates a new Client with the given id and tracks it. The caller
// must call Unregister(id) when the client disconnects. If the broadcaster
// is already closed the returned client's Send channel is already closed.
func (b *Broadcaster) Register(id string) *Client {
	c := &Client{
		id:   id,
		send: make(chan []byte, b.bufSize),
	}
	if b.closed.Load() {
		close(c.send)
		return c
	}
	b.clients.Store(id, c)
	b.clientCnt.Add(1)
	return c
}

// Unregister removes the client with id and closes its Send channel so the
// write goroutine exits cleanly. Unknown ids are a no-op.
func (b *Broadcaster) Unregister(id string) {
	if v, loaded := b.clients.LoadAndDelete(id); loaded {
		close(v.(*Client).send)
		b.clientCnt.Add(-1)
	}
}

// ClientCount returns the number of currently connected clients.
func (b *Broadcaster) ClientCount() int {
	return int(b.clientCnt.Load())
}

// Notify fans one notification out to every connected client with a
// non-blocking send. Full buffers drop the frame and bump the client's
// Dropped counter.
func (b *Broadcaster) Notify(n Notification) {
	if b.closed.Load() {
		return
	}
	if n.Variant == "" {
		n.Variant = VariantDefault
	}

	raw, err := json.Marshal(Message{Type: "notification", Data: n})
	if err != nil {
		b.logger.Error("notification broadcaster: marshal failed", slog.Any("error", err))
		return
	}

	b.clients.Range(func(_, v any) bool {
		c := v.(*Client)
		select {
		case c.send <- raw:
		default:
			c.Dropped.Add(1)
			b.logger.Warn("notification broadcaster: client buffer full, dropping frame",
				slog.String("client_id", c.id),
			)
		}
		return true
	})
}

// Close unregisters every client and closes their channels. After Close,
// Notify is a no-op and Register returns clients with closed channels.
func (b *Broadcaster) Close() {
	b.closeOnce.Do(func() {
		b.closed.Store(true)
		b.clients.Range(func(key, value any) bool {
			b.clients.Delete(key)
			close(value.(*Client).send)
			return true
		})
		b.clientCnt.Store(0)
	})
}
