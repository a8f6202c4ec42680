package model

import "time"

// Message - сообщение между двумя пользователями маркетплейса
type Message struct {
	ID           int64     `json:"id"`
	Sender       int64     `json:"sender"`
	Receiver     int64     `json:"receiver"`
	SenderName   string    `json:"sender_name"`
	ReceiverName string    `json:"receiver_name"`
	Text         string    `json:"message"`
	Timestamp    time.Time `json:"timestamp"`
	IsRead       bool      `json:"is_read"`
}

// Conversation - свёртка переписки с одним собеседником
type Conversation struct {
	User        TutorProfile `json:"user"`
	LastMessage *Message     `json:"last_message"`
	UnreadCount int          `json:"unread_count"`
}
