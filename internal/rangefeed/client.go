package rangefeed

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/wandb/wandb/timeline/internal/observability"
	"github.com/wandb/wandb/timeline/internal/options"
)

// sendBuffer is how many frames a slow client may fall behind before it is
// dropped.
const sendBuffer = 64

// MessageHandler processes one frame received from a client.
type MessageHandler func([]byte) error

// Client is one websocket connection to the feed.
type Client struct {
	conn *websocket.Conn
	send chan []byte

	done      chan struct{}
	closeOnce sync.Once

	messageHandler MessageHandler
	closeHandler   func()
	logger         *observability.CoreLogger
}

func WithMessageHandler(h MessageHandler) options.Option[Client] {
	return func(c *Client) { c.messageHandler = h }
}

func WithCloseHandler(fn func()) options.Option[Client] {
	return func(c *Client) { c.closeHandler = fn }
}

func WithLogger(logger *observability.CoreLogger) options.Option[Client] {
	return func(c *Client) { c.logger = logger }
}

// NewClient wraps conn. Call ReadPump and WritePump to start it.
func NewClient(conn *websocket.Conn, opts ...options.Option[Client]) *Client {
	c := &Client{
		conn:           conn,
		send:           make(chan []byte, sendBuffer),
		done:           make(chan struct{}),
		messageHandler: func([]byte) error { return nil },
		closeHandler:   func() {},
		logger:         observability.NewNoOpLogger(),
	}
	options.Apply(c, opts...)
	return c
}

// ReadPump passes received frames to the message handler until the
// connection fails or is closed.
func (c *Client) ReadPump() {
	defer func() {
		c.closeHandler()
		c.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("rangefeed: read failed", "error", err)
			}
			return
		}

		if err := c.messageHandler(message); err != nil {
			c.logger.Debug("rangefeed: message rejected", "error", err)
		}
	}
}

// WritePump writes queued frames to the connection.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for {
		select {
		case <-c.done:
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case message := <-c.send:
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Debug("rangefeed: write failed", "error", err)
				c.Close()
				return
			}
		}
	}
}

// Send queues a frame. A client whose queue is full is closed.
func (c *Client) Send(message []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- message:
		return true
	default:
		c.logger.CaptureWarn("rangefeed: client too slow, closing")
		c.Close()
		return false
	}
}

// Close stops the client. It is safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// Done is closed once the client is closed.
func (c *Client) Done() <-chan struct{} {
	return c.done
}
