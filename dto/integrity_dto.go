package dto

// BrokenReason distinguishes why a file deliverable failed validation
type BrokenReason string

const (
	// BrokenReasonMissingObject means the existence check failed: no object
	// is stored under the deliverable's file path
	BrokenReasonMissingObject BrokenReason = "missing_object"
	// BrokenReasonSignedURL means the object exists but a signed URL could
	// not be generated for it
	BrokenReasonSignedURL BrokenReason = "signed_url_failed"
)

// BrokenDeliverable describes one deliverable that failed the integrity check
type BrokenDeliverable struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	ProjectID  string       `json:"projectId"`
	FilePath   string       `json:"filePath"`
	Reason     BrokenReason `json:"reason"`
	Repairable bool         `json:"repairable"`
}

// IntegrityReport is the outcome of one scanner pass over all file-backed
// deliverables
type IntegrityReport struct {
	Checked int                 `json:"checked"`
	Healthy int                 `json:"healthy"`
	Broken  []BrokenDeliverable `json:"broken"`
}

// RepairResult summarizes a repair pass. Repairable broken deliverables are
// reclassified to url kind; the rest are reported for manual handling.
type RepairResult struct {
	Checked      int                 `json:"checked"`
	Repaired     int                 `json:"repaired"`
	RepairedIDs  []string            `json:"repairedIds"`
	Unrepairable []BrokenDeliverable `json:"unrepairable"`
	Errors       map[string]string   `json:"errors,omitempty"`
}

// OrphanReport lists stored objects with no referencing deliverable row
type OrphanReport struct {
	Scanned int      `json:"scanned"`
	Orphans []string `json:"orphans"`
}
