package services

import (
	"context"
	"log"

	"github.com/clientdesk/portal/dto"
	"github.com/clientdesk/portal/lib/storage"
	"github.com/clientdesk/portal/repositories"
	"github.com/clientdesk/portal/utils"
)

// IntegrityService validates the cross-store invariant that every file
// deliverable's file path resolves to an existing, accessible object. The
// metadata store and the object store share no transaction, so the check is
// explicit and on demand.
type IntegrityService struct {
	repo  repositories.DeliverableRepository
	store storage.ObjectStore
}

// NewIntegrityService creates an integrity service wired to the Postgres
// repository and the given object store
func NewIntegrityService(store storage.ObjectStore) *IntegrityService {
	return &IntegrityService{
		repo:  repositories.NewDeliverableRepository(),
		store: store,
	}
}

// Scan walks all file-backed deliverables and classifies each as healthy or
// broken. A deliverable is healthy only when the object exists AND a signed
// URL can be generated for it; the two failure modes are reported
// separately. Individual failures never abort the scan; only the initial
// query can fail it. Running Scan twice with no intervening writes yields
// the same broken set.
func (s *IntegrityService) Scan(ctx context.Context) (dto.IntegrityReport, error) {
	deliverables, err := s.repo.FindFileBacked()
	if err != nil {
		return dto.IntegrityReport{}, utils.NewStorageError("deliverable query", err)
	}

	report := dto.IntegrityReport{Checked: len(deliverables)}

	for _, d := range deliverables {
		key := *d.FilePath

		broken := dto.BrokenDeliverable{
			ID:         d.ID,
			Title:      d.Title,
			ProjectID:  d.ProjectID,
			FilePath:   key,
			Repairable: d.URL != nil && *d.URL != "",
		}

		exists, err := s.store.Exists(ctx, key)
		if err != nil || !exists {
			broken.Reason = dto.BrokenReasonMissingObject
			report.Broken = append(report.Broken, broken)
			continue
		}

		if _, err := s.store.SignedURL(ctx, key, storage.DefaultSignedURLTTL); err != nil {
			broken.Reason = dto.BrokenReasonSignedURL
			report.Broken = append(report.Broken, broken)
			continue
		}

		report.Healthy++
	}

	return report, nil
}

// Repair scans and then reclassifies every broken deliverable that carries a
// fallback URL: kind flips from file to url and the file path is cleared,
// preserving the deliverable instead of deleting it. Broken deliverables
// without a fallback are reported as unrepairable and left untouched, so
// they reappear on every pass until handled manually. A reclassified
// deliverable is healthy on the next scan.
func (s *IntegrityService) Repair(ctx context.Context) (dto.RepairResult, error) {
	report, err := s.Scan(ctx)
	if err != nil {
		return dto.RepairResult{}, err
	}

	result := dto.RepairResult{
		Checked: report.Checked,
		Errors:  make(map[string]string),
	}

	for _, broken := range report.Broken {
		if !broken.Repairable {
			result.Unrepairable = append(result.Unrepairable, broken)
			continue
		}

		if err := s.repo.ReclassifyToURL(broken.ID); err != nil {
			result.Errors[broken.ID] = err.Error()
			continue
		}

		log.Printf("🔧 Reclassified broken deliverable %s (%s) to url kind", broken.ID, broken.Title)
		result.Repaired++
		result.RepairedIDs = append(result.RepairedIDs, broken.ID)
	}

	return result, nil
}

// SweepOrphans lists stored deliverable objects that no metadata row
// references, the reverse direction of Scan. It catches uploads whose
// metadata insert failed. Report-only; nothing is deleted.
func (s *IntegrityService) SweepOrphans(ctx context.Context) (dto.OrphanReport, error) {
	keys, err := s.store.List(ctx, deliverableKeyPrefix+"/")
	if err != nil {
		return dto.OrphanReport{}, utils.NewObjectStoreError("list", deliverableKeyPrefix, err)
	}

	deliverables, err := s.repo.FindFileBacked()
	if err != nil {
		return dto.OrphanReport{}, utils.NewStorageError("deliverable query", err)
	}

	referenced := make(map[string]bool, len(deliverables))
	for _, d := range deliverables {
		referenced[*d.FilePath] = true
	}

	report := dto.OrphanReport{Scanned: len(keys)}
	for _, key := range keys {
		if !referenced[key] {
			report.Orphans = append(report.Orphans, key)
		}
	}

	return report, nil
}
