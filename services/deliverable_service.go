package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/clientdesk/portal/config"
	"github.com/clientdesk/portal/dto"
	"github.com/clientdesk/portal/lib/notify"
	"github.com/clientdesk/portal/lib/storage"
	"github.com/clientdesk/portal/models"
	"github.com/clientdesk/portal/repositories"
	"github.com/clientdesk/portal/utils"
)

// deliverableKeyPrefix scopes all deliverable payloads in the object store
const deliverableKeyPrefix = "deliverables"

// bulkDownloadDelay spaces out bulk download items so a batch cannot blow
// through the per-requester rate limit in one burst
const bulkDownloadDelay = 300 * time.Millisecond

// ProjectLookup is the slice of the project repository the deliverable
// lifecycle needs: resolving ownership and display names
type ProjectLookup interface {
	FindByID(id string) (models.Project, error)
}

// DeliverableService handles the deliverable lifecycle: creation, sending,
// download resolution and deletion. Metadata lives in the relational store,
// file payloads in the object store; the two are not transactional together,
// so a failed metadata insert after a successful upload leaves an orphaned
// object for the integrity sweep to find.
type DeliverableService struct {
	repo        repositories.DeliverableRepository
	projects    ProjectLookup
	store       storage.ObjectStore
	notifier    notify.Notifier
	limiter     *utils.DownloadLimiter
	maxFileSize int64
	signedTTL   time.Duration
	bulkDelay   time.Duration
}

// NewDeliverableService creates a deliverable service wired to the Postgres
// repositories and the given object store and notifier
func NewDeliverableService(store storage.ObjectStore, notifier notify.Notifier) *DeliverableService {
	return &DeliverableService{
		repo:        repositories.NewDeliverableRepository(),
		projects:    repositories.NewProjectRepository(),
		store:       store,
		notifier:    notifier,
		limiter:     utils.NewDownloadLimiter(int(config.GetEnvInt64("DOWNLOAD_RATE_PER_MINUTE", 10)), 3),
		maxFileSize: config.GetEnvInt64("MAX_UPLOAD_BYTES", 50*1024*1024),
		signedTTL:   storage.DefaultSignedURLTTL,
		bulkDelay:   bulkDownloadDelay,
	}
}

// Create validates and stores a new deliverable in draft state. For file
// deliverables the payload is uploaded first and the metadata row inserted
// second; no compensating delete is attempted when the insert fails.
func (s *DeliverableService) Create(ctx context.Context, userID string, isAdmin bool, req dto.CreateDeliverableRequest) (models.Deliverable, error) {
	if !isAdmin {
		return models.Deliverable{}, utils.NewPermissionError("only admins can create deliverables")
	}

	if err := utils.ValidateTitle(req.Title); err != nil {
		return models.Deliverable{}, err
	}

	project, err := s.projects.FindByID(req.ProjectID)
	if err != nil {
		return models.Deliverable{}, utils.NewStorageError("project lookup", err)
	}

	deliverable := models.Deliverable{
		ProjectID:   project.ID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Kind:        req.Kind,
	}

	switch req.Kind {
	case models.DeliverableKindURL:
		if err := utils.ValidateURL(req.URL); err != nil {
			return models.Deliverable{}, err
		}
		url := req.URL
		deliverable.URL = &url

	case models.DeliverableKindFile:
		if len(req.Payload) == 0 {
			return models.Deliverable{}, utils.NewValidationError("file required")
		}
		if err := utils.ValidateFilePayload(req.FileName, req.Payload, s.maxFileSize); err != nil {
			return models.Deliverable{}, err
		}

		key := utils.GenerateObjectKey(deliverableKeyPrefix, project.ID, req.FileName)
		contentType := utils.DetectContentType(req.Payload)
		if err := s.store.Upload(ctx, key, req.Payload, contentType); err != nil {
			return models.Deliverable{}, utils.NewObjectStoreError("upload", key, err)
		}
		deliverable.FilePath = &key

	default:
		return models.Deliverable{}, utils.NewValidationError("invalid kind")
	}

	if err := s.repo.Create(&deliverable); err != nil {
		if deliverable.FilePath != nil {
			// The uploaded object is now orphaned; the integrity sweep
			// reports it later.
			log.Printf("⚠️ Deliverable insert failed after upload, orphaned object %q: %v", *deliverable.FilePath, err)
		}
		return models.Deliverable{}, utils.NewStorageError("deliverable insert", err)
	}

	return deliverable, nil
}

// Send transitions a deliverable to sent exactly once and notifies the
// owning client. Sending an already-sent deliverable is a no-op that
// preserves the original sent_at. The notification fires only after the
// state transition is confirmed, and its failure never rolls the send back.
func (s *DeliverableService) Send(ctx context.Context, userID string, isAdmin bool, deliverableID string) (models.Deliverable, error) {
	if !isAdmin {
		return models.Deliverable{}, utils.NewPermissionError("only admins can send deliverables")
	}

	deliverable, err := s.repo.FindByID(deliverableID)
	if err != nil {
		return models.Deliverable{}, utils.NewStorageError("deliverable lookup", err)
	}

	if deliverable.Sent {
		return deliverable, nil
	}

	now := time.Now()
	transitioned, err := s.repo.MarkSent(deliverable.ID, now)
	if err != nil {
		return models.Deliverable{}, utils.NewStorageError("mark sent", err)
	}
	if !transitioned {
		// Lost a race with a concurrent send; the stored row is authoritative
		return s.repo.FindByID(deliverable.ID)
	}

	deliverable.Sent = true
	deliverable.SentAt = &now

	project, err := s.projects.FindByID(deliverable.ProjectID)
	if err != nil {
		log.Printf("⚠️ Sent deliverable %s but could not resolve project for notification: %v", deliverable.ID, err)
		return deliverable, nil
	}

	if err := s.notifier.DeliverableSent(ctx, project.ClientID, project.Name, deliverable.Title); err != nil {
		log.Printf("⚠️ Notification failed for deliverable %s: %v", deliverable.ID, err)
	}

	return deliverable, nil
}

// Download resolves a deliverable to a URL the caller can fetch. The rate
// limit is checked before anything else; a limited requester never reaches
// the metadata or object store.
func (s *DeliverableService) Download(ctx context.Context, userID string, isAdmin bool, deliverableID string) (dto.DownloadResponse, error) {
	if !s.limiter.Allow(userID) {
		return dto.DownloadResponse{}, utils.NewRateLimitError(userID)
	}

	deliverable, err := s.repo.FindByID(deliverableID)
	if err != nil {
		return dto.DownloadResponse{}, utils.NewStorageError("deliverable lookup", err)
	}

	if !isAdmin {
		project, err := s.projects.FindByID(deliverable.ProjectID)
		if err != nil {
			return dto.DownloadResponse{}, utils.NewStorageError("project lookup", err)
		}
		if project.ClientID != userID {
			return dto.DownloadResponse{}, utils.NewPermissionError("you don't have access to this deliverable")
		}
	}

	switch deliverable.Kind {
	case models.DeliverableKindURL:
		if deliverable.URL == nil {
			return dto.DownloadResponse{}, utils.NewDownloadError(deliverable.ID, fmt.Errorf("url deliverable has no url"))
		}
		return dto.DownloadResponse{Kind: deliverable.Kind, URL: *deliverable.URL}, nil

	case models.DeliverableKindFile:
		if deliverable.FilePath == nil {
			return dto.DownloadResponse{}, utils.NewDownloadError(deliverable.ID, fmt.Errorf("file deliverable has no file path"))
		}
		signedURL, err := s.store.SignedURL(ctx, *deliverable.FilePath, s.signedTTL)
		if err != nil {
			return dto.DownloadResponse{}, utils.NewDownloadError(deliverable.ID, err)
		}
		return dto.DownloadResponse{
			Kind:             deliverable.Kind,
			URL:              signedURL,
			ExpiresInSeconds: int64(s.signedTTL.Seconds()),
		}, nil

	default:
		return dto.DownloadResponse{}, utils.NewDownloadError(deliverable.ID, fmt.Errorf("unknown kind %q", deliverable.Kind))
	}
}

// Delete removes a deliverable's metadata row and best-effort removes its
// stored object. A failed object removal is logged and left to the orphan
// sweep; it does not fail the delete.
func (s *DeliverableService) Delete(ctx context.Context, userID string, isAdmin bool, deliverableID string) error {
	if !isAdmin {
		return utils.NewPermissionError("only admins can delete deliverables")
	}

	deliverable, err := s.repo.FindByID(deliverableID)
	if err != nil {
		return utils.NewStorageError("deliverable lookup", err)
	}

	if err := s.repo.Delete(deliverable.ID); err != nil {
		return utils.NewStorageError("deliverable delete", err)
	}

	if deliverable.Kind == models.DeliverableKindFile && deliverable.FilePath != nil {
		if err := s.store.Remove(ctx, *deliverable.FilePath); err != nil {
			log.Printf("⚠️ Deleted deliverable %s but object removal failed for %q: %v", deliverable.ID, *deliverable.FilePath, err)
		}
	}

	return nil
}

// SendMany sends each deliverable independently; one failing item never
// aborts the rest
func (s *DeliverableService) SendMany(ctx context.Context, userID string, isAdmin bool, ids []string) dto.BulkResult {
	result := dto.BulkResult{Requested: len(ids), Errors: make(map[string]string)}
	for _, id := range ids {
		if _, err := s.Send(ctx, userID, isAdmin, id); err != nil {
			result.Failed++
			result.Errors[id] = err.Error()
			continue
		}
		result.Succeeded++
	}
	return result
}

// DeleteMany deletes each deliverable independently
func (s *DeliverableService) DeleteMany(ctx context.Context, userID string, isAdmin bool, ids []string) dto.BulkResult {
	result := dto.BulkResult{Requested: len(ids), Errors: make(map[string]string)}
	for _, id := range ids {
		if err := s.Delete(ctx, userID, isAdmin, id); err != nil {
			result.Failed++
			result.Errors[id] = err.Error()
			continue
		}
		result.Succeeded++
	}
	return result
}

// DownloadMany resolves each deliverable independently, with a fixed delay
// between items to stay inside external rate limits
func (s *DeliverableService) DownloadMany(ctx context.Context, userID string, isAdmin bool, ids []string) dto.BulkDownloadResult {
	result := dto.BulkDownloadResult{
		BulkResult: dto.BulkResult{Requested: len(ids), Errors: make(map[string]string)},
		Links:      make(map[string]dto.DownloadResponse),
	}
	for i, id := range ids {
		if i > 0 {
			time.Sleep(s.bulkDelay)
		}
		resolved, err := s.Download(ctx, userID, isAdmin, id)
		if err != nil {
			result.Failed++
			result.Errors[id] = err.Error()
			continue
		}
		result.Succeeded++
		result.Links[id] = resolved
	}
	return result
}
