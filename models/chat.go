package models

import "time"

type Sender string

const (
	SenderMe    Sender = "me"
	SenderOther Sender = "other"
)

// Message is one chat line.
type Message struct {
	ID     string    `json:"id"`
	Text   string    `json:"text"`
	Sender Sender    `json:"sender"`
	SentAt time.Time `json:"sentAt"`
}
