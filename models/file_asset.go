package models

import (
	"time"

	"gorm.io/gorm"
)

// FileAssetUsage distinguishes general file storage from client-uploaded
// requirement content
type FileAssetUsage string

const (
	FileAssetUsageStorage     FileAssetUsage = "storage"
	FileAssetUsageRequirement FileAssetUsage = "requirement"
)

// FileAsset represents a stored file outside the deliverable flow: either an
// admin-managed storage file or requirement content uploaded by a client.
type FileAsset struct {
	ID          string         `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ProjectID   *string        `json:"projectId" gorm:"type:uuid;default:null;index"`
	UploaderID  string         `json:"uploaderId" gorm:"type:uuid;not null;index"`
	FileName    string         `json:"fileName" gorm:"not null"`
	ContentType string         `json:"contentType" gorm:"not null"`
	SizeBytes   int64          `json:"sizeBytes" gorm:"not null"`
	ObjectKey   string         `json:"-" gorm:"not null"`
	Usage       FileAssetUsage `json:"usage" gorm:"type:varchar(15);default:'storage'"`
	CreatedAt   time.Time      `json:"createdAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}
