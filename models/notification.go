package models

import "time"

// ReminderPayload is the queued body of a review reminder.
type ReminderPayload struct {
	UserID    string    `json:"userId"`
	BookingID string    `json:"bookingId"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	FireAt    time.Time `json:"fireAt"`
}

// ChatReplyPayload is the queued body of a simulated chat reply.
type ChatReplyPayload struct {
	ConversationID string `json:"conversationId"`
	ReplyID        string `json:"replyId"`
}
