package main

import (
	"encoding/json"
	"net"
	"sync"

	"github.com/gobwas/ws/wsutil"
	"github.com/google/uuid"
)

const sendQueueSize = 32

// Conn wraps one websocket connection with a stable id and the room it
// currently belongs to. Outbound frames go through a buffered channel
// drained by a single pump goroutine, so per-connection send order is
// preserved and a slow member never blocks a broadcast.
type Conn struct {
	id   string
	sock net.Conn
	send chan []byte

	mu     sync.Mutex
	room   string
	closed bool
}

func (c *Conn) ID() string {
	return c.id
}

func (c *Conn) Room() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.room
}

func (c *Conn) SetRoom(roomCode string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.room = roomCode
}

func (c *Conn) ClearRoom() {
	c.SetRoom("")
}

// Send queues a frame for delivery. The frame is dropped when the
// connection is closed or its queue is full.
func (c *Conn) Send(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- payload:
		return true
	default:
		LogSendQueueFull(c.id)
		return false
	}
}

func (c *Conn) SendJSON(message any) bool {
	encoded, err := json.Marshal(message)
	if err != nil {
		return false
	}
	return c.Send(encoded)
}

func (c *Conn) writePump() {
	for msg := range c.send {
		if err := wsutil.WriteServerText(c.sock, msg); err != nil {
			LogSendFailed(c.id, err)
		}
	}
}

// Close stops the write pump and closes the underlying socket. Safe to
// call once per connection, after the lifecycle handler has run.
func (c *Conn) Close() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
	c.mu.Unlock()
	c.sock.Close()
}

type Registry struct {
	lock  sync.RWMutex
	conns map[string]*Conn
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]*Conn)}
}

// Register assigns a fresh unique id to a newly-opened socket and starts
// its write pump.
func (g *Registry) Register(sock net.Conn) *Conn {
	c := &Conn{
		id:   uuid.NewString(),
		sock: sock,
		send: make(chan []byte, sendQueueSize),
	}
	g.lock.Lock()
	g.conns[c.id] = c
	g.lock.Unlock()
	go c.writePump()
	return c
}

func (g *Registry) Get(id string) (*Conn, bool) {
	g.lock.RLock()
	defer g.lock.RUnlock()
	c, exists := g.conns[id]
	return c, exists
}

func (g *Registry) Remove(id string) {
	g.lock.Lock()
	defer g.lock.Unlock()
	delete(g.conns, id)
}
