package models

import (
	"time"

	"gorm.io/gorm"
)

// DeliverableKind represents how a deliverable is stored
type DeliverableKind string

const (
	DeliverableKindURL  DeliverableKind = "url"
	DeliverableKindFile DeliverableKind = "file"
)

// Deliverable represents one artifact promised to a client for a project.
// Exactly one of URL and FilePath is non-nil at any time: URL when Kind is
// "url", FilePath (an object store key) when Kind is "file". The only
// permitted Kind mutation is the integrity repair that reclassifies a broken
// file deliverable to its fallback URL.
type Deliverable struct {
	ID          string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ProjectID   string          `json:"projectId" gorm:"type:uuid;not null;index"`
	Title       string          `json:"title" gorm:"not null"`
	Description string          `json:"description" gorm:"default:null"`
	Kind        DeliverableKind `json:"kind" gorm:"type:varchar(10);not null"`
	URL         *string         `json:"url" gorm:"default:null"`
	FilePath    *string         `json:"filePath" gorm:"default:null"`
	Sent        bool            `json:"sent" gorm:"not null;default:false"`
	SentAt      *time.Time      `json:"sentAt" gorm:"default:null"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relations
	Project Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}
