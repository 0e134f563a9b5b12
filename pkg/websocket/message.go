package websocket

import "time"

// Envelope - конверт любого сообщения к фронтенду. Поле Type позволяет
// дашборду понять, что делать с payload'ом.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// ReportUpdatedPayload - уведомление о том, что отчет пересобран
// и панелям пора перечитать данные.
type ReportUpdatedPayload struct {
	QueryKey   string    `json:"query_key"`
	Generation uint64    `json:"generation"`
	ComputedAt time.Time `json:"computed_at"`
}
