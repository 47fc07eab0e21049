package models

import (
	"time"

	"gorm.io/gorm"
)

// Message represents a direct or broadcast message between portal users.
// A nil RecipientID marks a broadcast visible to every client.
type Message struct {
	ID          string         `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	SenderID    string         `json:"senderId" gorm:"type:uuid;not null;index"`
	RecipientID *string        `json:"recipientId" gorm:"type:uuid;default:null;index"`
	Subject     string         `json:"subject" gorm:"not null"`
	Body        string         `json:"body" gorm:"not null"`
	ReadAt      *time.Time     `json:"readAt" gorm:"default:null"`
	CreatedAt   time.Time      `json:"createdAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Sender User `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
}
