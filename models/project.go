package models

import (
	"time"

	"gorm.io/gorm"
)

// ProjectStatus represents the lifecycle state of a project
type ProjectStatus string

const (
	ProjectStatusActive   ProjectStatus = "active"
	ProjectStatusArchived ProjectStatus = "archived"
)

// Project represents one engagement with a client
type Project struct {
	ID          string         `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description" gorm:"default:null"`
	ClientID    string         `json:"clientId" gorm:"type:uuid;not null;index"`
	Status      ProjectStatus  `json:"status" gorm:"type:varchar(10);default:'active'"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Client       User          `json:"client,omitempty" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	Deliverables []Deliverable `json:"deliverables,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	FileAssets   []FileAsset   `json:"fileAssets,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}
