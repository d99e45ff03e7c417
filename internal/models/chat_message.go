package models

import "time"

type MessageStatus string

const (
	MessageDelivered MessageStatus = "delivered"
	MessageRead      MessageStatus = "read"
)

// ChatMessage rows are append-only; nothing but Status is ever updated
// after creation.
type ChatMessage struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	ListingID uint          `gorm:"not null;index" json:"listing_id"`
	SenderID  uint          `gorm:"not null" json:"sender_id"`
	Body      string        `gorm:"column:message;not null" json:"message"`
	SentAt    time.Time     `gorm:"not null" json:"timestamp"`
	Status    MessageStatus `gorm:"type:varchar(20);default:'delivered'" json:"status"`

	Sender *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}
