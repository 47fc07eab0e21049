package dto

import (
	"github.com/clientdesk/portal/models"
)

// UploadFileRequest represents an upload into the general file storage or a
// project's requirement content
type UploadFileRequest struct {
	ProjectID *string
	FileName  string
	Payload   []byte
	Usage     models.FileAssetUsage
}
