package services

import (
	"context"
	"testing"

	"github.com/clientdesk/portal/dto"
	"github.com/clientdesk/portal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func newTestIntegrityService() (*IntegrityService, *fakeDeliverableRepo, *fakeObjectStore) {
	repo := &fakeDeliverableRepo{}
	store := newFakeObjectStore()
	svc := &IntegrityService{repo: repo, store: store}
	return svc, repo, store
}

// seedFileDeliverable adds a file deliverable; when stored is true the
// backing object is present in the store
func seedFileDeliverable(repo *fakeDeliverableRepo, store *fakeObjectStore, id, title, key string, fallbackURL *string, stored bool) {
	repo.items = append(repo.items, &models.Deliverable{
		ID:        id,
		ProjectID: "p1",
		Title:     title,
		Kind:      models.DeliverableKindFile,
		FilePath:  strPtr(key),
		URL:       fallbackURL,
	})
	if stored {
		store.objects[key] = []byte("payload")
	}
}

func TestScanClassifiesFailureModes(t *testing.T) {
	svc, repo, store := newTestIntegrityService()

	seedFileDeliverable(repo, store, "d-healthy", "Healthy", "deliverables/p1/a.zip", nil, true)
	seedFileDeliverable(repo, store, "d-missing", "Missing", "deliverables/p1/b.zip", strPtr("https://fallback.example.com/b"), false)
	seedFileDeliverable(repo, store, "d-unsignable", "Unsignable", "deliverables/p1/c.zip", nil, true)
	store.signErrKeys["deliverables/p1/c.zip"] = true

	report, err := svc.Scan(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, report.Checked)
	assert.Equal(t, 1, report.Healthy)
	require.Len(t, report.Broken, 2)

	byID := map[string]dto.BrokenDeliverable{}
	for _, b := range report.Broken {
		byID[b.ID] = b
	}

	missing := byID["d-missing"]
	assert.Equal(t, dto.BrokenReasonMissingObject, missing.Reason)
	assert.True(t, missing.Repairable)

	unsignable := byID["d-unsignable"]
	assert.Equal(t, dto.BrokenReasonSignedURL, unsignable.Reason)
	assert.False(t, unsignable.Repairable)
}

func TestScanIsIdempotent(t *testing.T) {
	svc, repo, store := newTestIntegrityService()

	seedFileDeliverable(repo, store, "d-healthy", "Healthy", "deliverables/p1/a.zip", nil, true)
	seedFileDeliverable(repo, store, "d-missing", "Missing", "deliverables/p1/b.zip", nil, false)

	first, err := svc.Scan(context.Background())
	require.NoError(t, err)
	second, err := svc.Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second, "two scans with no intervening writes must agree")
}

func TestScanSkipsURLDeliverables(t *testing.T) {
	svc, repo, _ := newTestIntegrityService()

	repo.items = append(repo.items, &models.Deliverable{
		ID:    "d-url",
		Kind:  models.DeliverableKindURL,
		URL:   strPtr("https://example.com"),
		Title: "Link",
	})

	report, err := svc.Scan(context.Background())

	require.NoError(t, err)
	assert.Zero(t, report.Checked)
	assert.Empty(t, report.Broken)
}

func TestRepairReclassifiesBrokenWithFallback(t *testing.T) {
	svc, repo, store := newTestIntegrityService()

	seedFileDeliverable(repo, store, "d-missing", "Missing", "deliverables/p1/b.zip", strPtr("https://fallback.example.com/b"), false)

	result, err := svc.Repair(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Repaired)
	assert.Equal(t, []string{"d-missing"}, result.RepairedIDs)
	assert.Empty(t, result.Unrepairable)

	repaired := repo.find("d-missing")
	assert.Equal(t, models.DeliverableKindURL, repaired.Kind)
	assert.Nil(t, repaired.FilePath, "file path is cleared on reclassification")
	require.NotNil(t, repaired.URL)
	assert.Equal(t, "https://fallback.example.com/b", *repaired.URL)

	// The reclassified deliverable is healthy on the next pass
	report, err := svc.Scan(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Checked)
	assert.Empty(t, report.Broken)
}

func TestRepairLeavesUnrepairableEveryPass(t *testing.T) {
	svc, repo, store := newTestIntegrityService()

	seedFileDeliverable(repo, store, "d-lost", "Lost Forever", "deliverables/p1/gone.zip", nil, false)

	for pass := 0; pass < 2; pass++ {
		result, err := svc.Repair(context.Background())
		require.NoError(t, err)
		assert.Zero(t, result.Repaired)
		require.Len(t, result.Unrepairable, 1, "pass %d must still report the unrepairable deliverable", pass)
		assert.Equal(t, "d-lost", result.Unrepairable[0].ID)
	}

	// Never silently dropped
	assert.NotNil(t, repo.find("d-lost"))
}

func TestSweepOrphansReportsUnreferencedObjects(t *testing.T) {
	svc, repo, store := newTestIntegrityService()

	seedFileDeliverable(repo, store, "d-ok", "Referenced", "deliverables/p1/a.zip", nil, true)
	store.objects["deliverables/p1/orphan.zip"] = []byte("stranded upload")
	store.objects["assets/p1/not-a-deliverable.pdf"] = []byte("different prefix")

	report, err := svc.SweepOrphans(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, report.Scanned, "only the deliverable prefix is scanned")
	assert.Equal(t, []string{"deliverables/p1/orphan.zip"}, report.Orphans)
}
