package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Hub управляет подключенными панелями дашборда и рассылкой сообщений.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	Register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			log.Printf("Панель дашборда подключена, всего клиентов: %d", len(h.clients))
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				log.Printf("Панель дашборда отключена, всего клиентов: %d", len(h.clients))
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastReportUpdated рассылает всем панелям сигнал о пересборке отчета.
func (h *Hub) BroadcastReportUpdated(payload ReportUpdatedPayload) {
	envelope := Envelope{
		Type:      "report_updated",
		Payload:   payload,
		Timestamp: time.Now(),
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		log.Printf("Не удалось сериализовать уведомление: %v", err)
		return
	}
	h.broadcast <- data
}
