package services

import (
	"context"
	"log"

	"github.com/clientdesk/portal/config"
	"github.com/clientdesk/portal/dto"
	"github.com/clientdesk/portal/lib/storage"
	"github.com/clientdesk/portal/models"
	"github.com/clientdesk/portal/repositories"
	"github.com/clientdesk/portal/utils"
)

// assetKeyPrefix scopes general file storage and requirement uploads,
// keeping them apart from deliverable payloads
const assetKeyPrefix = "assets"

// FileService handles the general file storage area and client requirement
// uploads. It shares the deliverable flow's validation ladder and download
// rate limiting.
type FileService struct {
	assetRepo   *repositories.FileAssetRepository
	projectRepo *repositories.ProjectRepository
	store       storage.ObjectStore
	limiter     *utils.DownloadLimiter
	maxFileSize int64
}

// NewFileService creates a file service wired to the Postgres repositories
// and the given object store
func NewFileService(store storage.ObjectStore) *FileService {
	return &FileService{
		assetRepo:   repositories.NewFileAssetRepository(),
		projectRepo: repositories.NewProjectRepository(),
		store:       store,
		limiter:     utils.NewDownloadLimiter(int(config.GetEnvInt64("DOWNLOAD_RATE_PER_MINUTE", 10)), 3),
		maxFileSize: config.GetEnvInt64("MAX_UPLOAD_BYTES", 50*1024*1024),
	}
}

// Upload validates and stores a file asset. Admins may upload anywhere;
// clients may only upload requirement content to their own projects.
func (s *FileService) Upload(ctx context.Context, userID string, isAdmin bool, req dto.UploadFileRequest) (models.FileAsset, error) {
	if err := utils.ValidateFilePayload(req.FileName, req.Payload, s.maxFileSize); err != nil {
		return models.FileAsset{}, err
	}

	scope := "shared"
	if req.ProjectID != nil {
		project, err := s.projectRepo.FindByID(*req.ProjectID)
		if err != nil {
			return models.FileAsset{}, utils.NewStorageError("project lookup", err)
		}
		if !isAdmin && project.ClientID != userID {
			return models.FileAsset{}, utils.NewPermissionError("you can only upload to your own projects")
		}
		scope = project.ID
	} else if !isAdmin {
		return models.FileAsset{}, utils.NewPermissionError("clients must upload into a project")
	}

	usage := req.Usage
	if usage == "" {
		usage = models.FileAssetUsageStorage
	}
	if !isAdmin {
		usage = models.FileAssetUsageRequirement
	}

	key := utils.GenerateObjectKey(assetKeyPrefix, scope, req.FileName)
	contentType := utils.DetectContentType(req.Payload)
	if err := s.store.Upload(ctx, key, req.Payload, contentType); err != nil {
		return models.FileAsset{}, utils.NewObjectStoreError("upload", key, err)
	}

	asset := models.FileAsset{
		ProjectID:   req.ProjectID,
		UploaderID:  userID,
		FileName:    req.FileName,
		ContentType: contentType,
		SizeBytes:   int64(len(req.Payload)),
		ObjectKey:   key,
		Usage:       usage,
	}

	if err := s.assetRepo.Create(&asset); err != nil {
		log.Printf("⚠️ File asset insert failed after upload, orphaned object %q: %v", key, err)
		return models.FileAsset{}, utils.NewStorageError("file asset insert", err)
	}

	return asset, nil
}

// Download resolves a file asset to a time-limited signed URL
func (s *FileService) Download(ctx context.Context, userID string, isAdmin bool, assetID string) (string, error) {
	if !s.limiter.Allow(userID) {
		return "", utils.NewRateLimitError(userID)
	}

	asset, err := s.assetRepo.FindByID(assetID)
	if err != nil {
		return "", utils.NewStorageError("file asset lookup", err)
	}

	if !isAdmin && asset.UploaderID != userID {
		allowed := false
		if asset.ProjectID != nil {
			project, err := s.projectRepo.FindByID(*asset.ProjectID)
			if err == nil && project.ClientID == userID {
				allowed = true
			}
		}
		if !allowed {
			return "", utils.NewPermissionError("you don't have access to this file")
		}
	}

	signedURL, err := s.store.SignedURL(ctx, asset.ObjectKey, storage.DefaultSignedURLTTL)
	if err != nil {
		return "", utils.NewObjectStoreError("signed url", asset.ObjectKey, err)
	}

	return signedURL, nil
}

// ListByProject retrieves the file assets of a project the caller may see
func (s *FileService) ListByProject(userID string, isAdmin bool, projectID string, usage models.FileAssetUsage) ([]models.FileAsset, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		return nil, utils.NewStorageError("project lookup", err)
	}
	if !isAdmin && project.ClientID != userID {
		return nil, utils.NewPermissionError("you don't have access to this project")
	}

	return s.assetRepo.FindByProjectID(projectID, usage)
}

// ListAll retrieves every file asset. Admin only.
func (s *FileService) ListAll(isAdmin bool) ([]models.FileAsset, error) {
	if !isAdmin {
		return nil, utils.NewPermissionError("only admins can list all files")
	}
	return s.assetRepo.FindAll()
}

// Delete removes a file asset and best-effort removes its stored object
func (s *FileService) Delete(ctx context.Context, userID string, isAdmin bool, assetID string) error {
	asset, err := s.assetRepo.FindByID(assetID)
	if err != nil {
		return utils.NewStorageError("file asset lookup", err)
	}

	if !isAdmin && asset.UploaderID != userID {
		return utils.NewPermissionError("you can only delete your own files")
	}

	if err := s.assetRepo.Delete(asset.ID); err != nil {
		return utils.NewStorageError("file asset delete", err)
	}

	if err := s.store.Remove(ctx, asset.ObjectKey); err != nil {
		log.Printf("⚠️ Deleted file asset %s but object removal failed for %q: %v", asset.ID, asset.ObjectKey, err)
	}

	return nil
}
