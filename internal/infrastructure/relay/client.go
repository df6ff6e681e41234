// Package relay maintains the persistent websocket connection to the
// translation relay service: handshake, outbound queuing, reconnection and
// dispatch of inbound translation frames.
package relay

import (
	"encoding/json"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"tradutor/internal/domain/entities"
	"tradutor/internal/ports/input"
	"tradutor/internal/ports/output"
)

const (
	// outboundQueueCap bounds frames held while unauthenticated; the oldest
	// frame is dropped once the cap is reached.
	outboundQueueCap = 500

	connectTimeout = 5 * time.Second
	// authTimeout bounds how long a connection may sit unauthenticated
	// before it is torn down and retried.
	authTimeout = 10 * time.Second

	clientName    = "tradutor"
	clientVersion = "1.0.1"
)

// Config carries the relay connection settings.
type Config struct {
	URL            string
	ServerID       string
	ServerSecret   string
	ReconnectDelay time.Duration
}

var _ output.ChatRelay = (*Client)(nil)

// Client is the relay transport. One connection attempt runs at a time
// (CAS-guarded); all reads happen on a single goroutine per connection and
// writes are serialized by a mutex, so handshake, frame parsing and queue
// flushing never race each other.
type Client struct {
	cfg        Config
	dispatcher input.Dispatcher

	connecting atomic.Bool
	closed     atomic.Bool

	mu            sync.Mutex // guards conn, authenticated and writes
	conn          *websocket.Conn
	authenticated bool

	queue chan []byte
}

// NewClient creates the relay client; it does not connect until Start or
// the first SendChat.
func NewClient(cfg Config, dispatcher input.Dispatcher) *Client {
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = 3 * time.Second
	}
	return &Client{
		cfg:        cfg,
		dispatcher: dispatcher,
		queue:      make(chan []byte, outboundQueueCap),
	}
}

// Configured reports whether the relay endpoint and identity are set.
func (c *Client) Configured() bool {
	return strings.TrimSpace(c.cfg.URL) != "" && strings.TrimSpace(c.cfg.ServerID) != ""
}

// Start opens the connection in the background.
func (c *Client) Start() {
	c.connect()
}

// Stop closes the connection and stops reconnecting.
func (c *Client) Stop() {
	c.closed.Store(true)
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.authenticated = false
	c.mu.Unlock()
	if conn != nil {
		deadline := time.Now().Add(time.Second)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "shutdown"), deadline)
		conn.Close()
	}
}

type helloFrame struct {
	Type         string `json:"type"`
	ServerID     string `json:"server_id"`
	ServerSecret string `json:"server_secret"`
	Plugin       string `json:"plugin"`
	Version      string `json:"version"`
}

type chatFrame struct {
	Type             string            `json:"type"`
	ServerID         string            `json:"server_id"`
	MessageID        string            `json:"message_id"`
	OriginalText     string            `json:"texto_original"`
	OriginalLanguage string            `json:"idioma_original"`
	SenderName       string            `json:"jogador"`
	SenderID         string            `json:"jogador_uuid"`
	Targets          []entities.Target `json:"jogadores_online"`
}

type inboundFrame struct {
	Type       string                     `json:"type"`
	OK         bool                       `json:"ok"`
	MessageID  string                     `json:"message_id"`
	SenderName string                     `json:"jogador"`
	SenderID   string                     `json:"jogador_uuid"`
	Items      []entities.TranslationItem `json:"traducao"`
}

// SendChat frames the request and sends it, queuing while the connection is
// down or the handshake has not completed. Never blocks.
func (c *Client) SendChat(req *entities.ChatRequest) {
	if req == nil {
		return
	}
	payload, err := json.Marshal(chatFrame{
		Type:             "chat",
		ServerID:         c.cfg.ServerID,
		MessageID:        req.MessageID,
		OriginalText:     req.OriginalText,
		OriginalLanguage: req.OriginalLanguage,
		SenderName:       req.SenderName,
		SenderID:         req.SenderID,
		Targets:          req.Targets,
	})
	if err != nil {
		log.Printf("tradutor: failed to encode chat frame: %v", err)
		return
	}

	c.mu.Lock()
	conn, ok := c.conn, c.authenticated
	c.mu.Unlock()
	if conn == nil || !ok {
		c.enqueue(payload)
		if conn == nil {
			c.connect()
		}
		return
	}
	c.write(payload)
}

// enqueue appends to the bounded FIFO queue, dropping the oldest frame when
// full.
func (c *Client) enqueue(payload []byte) {
	for {
		select {
		case c.queue <- payload:
			return
		default:
		}
		select {
		case <-c.queue:
		default:
		}
	}
}

func (c *Client) write(payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		log.Printf("tradutor: relay write failed: %v", err)
	}
}

// connect starts one dial attempt unless one is already in flight.
func (c *Client) connect() {
	if c.closed.Load() || !c.Configured() {
		return
	}
	if !c.connecting.CompareAndSwap(false, true) {
		return
	}
	go c.dial()
}

func (c *Client) dial() {
	defer c.connecting.Store(false)

	dialer := websocket.Dialer{HandshakeTimeout: connectTimeout}
	conn, _, err := dialer.Dial(c.cfg.URL, nil)
	if err != nil {
		log.Printf("tradutor: relay connect failed: %v", err)
		c.scheduleReconnect()
		return
	}

	c.mu.Lock()
	c.conn = conn
	c.authenticated = false
	c.mu.Unlock()

	c.sendHello()
	c.armAuthTimeout(conn)
	go c.readLoop(conn)
}

func (c *Client) sendHello() {
	payload, err := json.Marshal(helloFrame{
		Type:         "hello",
		ServerID:     c.cfg.ServerID,
		ServerSecret: c.cfg.ServerSecret,
		Plugin:       clientName,
		Version:      clientVersion,
	})
	if err != nil {
		return
	}
	c.write(payload)
}

// armAuthTimeout tears the connection down when no hello_ack arrives in
// time. The conn argument pins the check to this connection generation.
func (c *Client) armAuthTimeout(conn *websocket.Conn) {
	time.AfterFunc(authTimeout, func() {
		c.mu.Lock()
		stale := c.conn == conn && !c.authenticated
		c.mu.Unlock()
		if stale {
			log.Printf("tradutor: relay handshake timed out")
			c.teardown(conn)
		}
	})
}

// readLoop owns all reads for one connection. gorilla reassembles
// fragmented text messages, so each ReadMessage yields one complete frame.
func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !c.closed.Load() {
				log.Printf("tradutor: relay connection lost: %v", err)
			}
			c.teardown(conn)
			return
		}
		c.handleFrame(data)
	}
}

// teardown detaches one connection generation; only the goroutine that wins
// the detach schedules the reconnect, so a close racing a read error yields
// a single retry.
func (c *Client) teardown(conn *websocket.Conn) {
	c.mu.Lock()
	owned := c.conn == conn
	if owned {
		c.conn = nil
		c.authenticated = false
	}
	c.mu.Unlock()
	conn.Close()
	if owned {
		c.scheduleReconnect()
	}
}

func (c *Client) scheduleReconnect() {
	if c.closed.Load() {
		return
	}
	time.AfterFunc(c.cfg.ReconnectDelay, c.connect)
}

func (c *Client) handleFrame(data []byte) {
	var frame inboundFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		log.Printf("tradutor: relay frame parse error: %v", err)
		return
	}
	switch strings.ToLower(frame.Type) {
	case "hello_ack":
		c.handleHelloAck(frame)
	case "translations":
		if c.dispatcher != nil {
			c.dispatcher.Dispatch(frame.MessageID, &entities.TranslationResponse{
				SenderName: frame.SenderName,
				SenderID:   frame.SenderID,
				Items:      frame.Items,
			})
		}
	}
}

func (c *Client) handleHelloAck(frame inboundFrame) {
	if !frame.OK {
		log.Printf("tradutor: relay rejected handshake")
		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()
		if conn != nil {
			c.teardown(conn)
		}
		return
	}
	c.mu.Lock()
	c.authenticated = true
	c.mu.Unlock()
	c.flushQueue()
}

// flushQueue drains queued frames in FIFO order onto the authenticated
// connection.
func (c *Client) flushQueue() {
	for {
		select {
		case payload := <-c.queue:
			c.write(payload)
		default:
			return
		}
	}
}
