package websocket

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// Conn adalah bagian dari *websocket.Conn yang dipakai hub.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client merepresentasikan satu halaman task list yang sedang terbuka.
type Client struct {
	Conn Conn
	Mu   sync.Mutex
}

// TaskEvent dikirim ke semua klien setiap ada perubahan task.
type TaskEvent struct {
	Event  string `json:"event"` // created, updated, deleted
	TaskID int    `json:"task_id"`
	Title  string `json:"title"`
}

// Hub mengelola koneksi WebSocket.
type Hub struct {
	Clients    map[*Client]bool
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client
}

// TaskHub adalah hub tunggal untuk update live halaman task list.
var TaskHub = NewHub()

// NewHub membuat instance Hub baru.
func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte, 16),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Publish mengirim event tanpa memblokir handler: event dibuang
// kalau buffer penuh atau hub tidak berjalan.
func (h *Hub) Publish(event TaskEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	select {
	case h.Broadcast <- payload:
	default:
	}
}

// Run menjalankan loop Hub untuk mengelola register, unregister, dan Broadcast.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client] = true
		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				client.Conn.Close()
			}
		case message := <-h.Broadcast:
			for client := range h.Clients {
				client.Mu.Lock()
				err := client.Conn.WriteMessage(websocket.TextMessage, message)
				client.Mu.Unlock()
				if err != nil {
					// klien yang gagal dilepas langsung di sini; mengirim ke
					// Unregister akan deadlock karena Run sendiri penerimanya
					delete(h.Clients, client)
					client.Conn.Close()
				}
			}
		}
	}
}
