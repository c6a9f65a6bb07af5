package SSE

import (
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// EventRefresh tells the dashboard to re-run its queries. Mutations on
// orders, sessions and payroll broadcast it after their commit.
const EventRefresh = "refresh"

// Broadcaster fans events out to every connected dashboard client.
type SSEBroadcaster struct {
	clients map[chan string]bool
	mu      sync.Mutex
}

func NewSSEBroadcaster() *SSEBroadcaster {
	return &SSEBroadcaster{
		clients: make(map[chan string]bool),
	}
}

func (b *SSEBroadcaster) Register(client chan string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clients[client] = true
}

// Unregister is a no-op for clients Broadcast already dropped, so the
// channel is never closed twice.
func (b *SSEBroadcaster) Unregister(client chan string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.clients[client]; ok {
		delete(b.clients, client)
		close(client)
	}
}

// Broadcast sends an event to all registered clients, dropping any client
// that stops draining its channel within a second.
func (b *SSEBroadcaster) Broadcast(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for client := range b.clients {
		select {
		case client <- message:
		case <-time.After(1 * time.Second):
			delete(b.clients, client)
			close(client)
		}
	}
}

var Broadcaster = NewSSEBroadcaster()

func RequestSSE(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("Access-Control-Allow-Origin", "*")

	clientChan := make(chan string)

	Broadcaster.Register(clientChan)
	defer Broadcaster.Unregister(clientChan)
	fmt.Fprintf(c.Writer, "data: %s\n\n", "connected")
	c.Writer.Flush()
	for {
		select {
		case message, ok := <-clientChan:
			if !ok {
				// Broadcast dropped this client for not draining.
				return
			}
			fmt.Fprintf(c.Writer, "data: %s\n\n", message)
			c.Writer.Flush()
		case <-c.Writer.CloseNotify():
			return
		}
	}
}
