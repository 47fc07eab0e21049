package dto

import (
	"github.com/clientdesk/portal/models"
)

// CreateDeliverableRequest represents the payload for creating a deliverable.
// Exactly one of URL (for kind=url) or Payload+FileName (for kind=file) is
// expected depending on Kind.
type CreateDeliverableRequest struct {
	ProjectID   string
	Title       string
	Description string
	Kind        models.DeliverableKind
	URL         string
	FileName    string
	Payload     []byte
}

// DownloadResponse represents a resolved download location. For file
// deliverables the URL is a time-limited signed URL; for url deliverables
// it is the stored location itself and ExpiresInSeconds is zero.
type DownloadResponse struct {
	Kind             models.DeliverableKind `json:"kind"`
	URL              string                 `json:"url"`
	ExpiresInSeconds int64                  `json:"expiresInSeconds,omitempty"`
}

// BulkRequest represents a set of deliverable IDs for a bulk operation
type BulkRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// BulkResult summarizes per-item outcomes of a bulk operation. One failing
// item never aborts the rest; Errors maps the failed IDs to their messages.
type BulkResult struct {
	Requested int               `json:"requested"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// BulkDownloadResult carries resolved links for the successful items of a
// bulk download alongside the usual aggregate counts
type BulkDownloadResult struct {
	BulkResult
	Links map[string]DownloadResponse `json:"links"`
}
