package domain

import "time"

type Sender string

const (
	SenderSystem Sender = "SYSTEM"
	SenderBroker Sender = "BROKER"
	SenderUser   Sender = "USER"
)

type Category string

const (
	CategoryNormal  Category = "normal"
	CategoryInsight Category = "insight"
	CategoryAlert   Category = "alert"
)

type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	Category  Category  `json:"category"`
}

// CloneMessages returns a copy that shares no backing array with log.
func CloneMessages(log []Message) []Message {
	out := make([]Message, len(log))
	copy(out, log)
	return out
}
