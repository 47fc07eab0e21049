package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/clientdesk/portal/dto"
	"github.com/clientdesk/portal/models"
	"github.com/clientdesk/portal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAdminID  = "admin-1"
	testClientID = "client-1"
)

func newTestDeliverableService() (*DeliverableService, *fakeDeliverableRepo, *fakeObjectStore, *fakeNotifier) {
	repo := &fakeDeliverableRepo{}
	store := newFakeObjectStore()
	notifier := &fakeNotifier{}
	projects := &fakeProjectLookup{projects: map[string]models.Project{
		"p1": {ID: "p1", Name: "Brand Refresh", ClientID: testClientID},
	}}

	svc := &DeliverableService{
		repo:        repo,
		projects:    projects,
		store:       store,
		notifier:    notifier,
		limiter:     utils.NewDownloadLimiter(6000, 100),
		maxFileSize: 4 * 1024,
		signedTTL:   time.Hour,
		bulkDelay:   0,
	}
	return svc, repo, store, notifier
}

// requireLocationInvariant checks that exactly one of URL and FilePath is set
func requireLocationInvariant(t *testing.T, d models.Deliverable) {
	t.Helper()
	hasURL := d.URL != nil
	hasFile := d.FilePath != nil
	require.NotEqual(t, hasURL, hasFile, "exactly one of url/filePath must be set")
}

func fileCreateRequest(title string) dto.CreateDeliverableRequest {
	return dto.CreateDeliverableRequest{
		ProjectID: "p1",
		Title:     title,
		Kind:      models.DeliverableKindFile,
		FileName:  "logo-pack.zip",
		Payload:   []byte("PK\x03\x04 fake zip bytes"),
	}
}

func TestCreateDeliverableRequiresTitle(t *testing.T) {
	svc, repo, store, _ := newTestDeliverableService()

	_, err := svc.Create(context.Background(), testAdminID, true, fileCreateRequest("   "))

	require.Error(t, err)
	assert.True(t, utils.IsValidationError(err))
	assert.Zero(t, store.uploads, "validation failure must not reach the object store")
	assert.Empty(t, repo.items, "validation failure must not write metadata")
}

func TestCreateDeliverableRejectsInvalidURL(t *testing.T) {
	svc, repo, store, _ := newTestDeliverableService()

	for _, bad := range []string{"", "not a url", "ftp://example.com/x", "https://"} {
		_, err := svc.Create(context.Background(), testAdminID, true, dto.CreateDeliverableRequest{
			ProjectID: "p1",
			Title:     "Moodboard",
			Kind:      models.DeliverableKindURL,
			URL:       bad,
		})
		require.Error(t, err, "url %q should be rejected", bad)
		assert.True(t, utils.IsValidationError(err))
	}

	assert.Zero(t, store.uploads)
	assert.Empty(t, repo.items)
}

func TestCreateDeliverableRequiresFilePayload(t *testing.T) {
	svc, _, store, _ := newTestDeliverableService()

	req := fileCreateRequest("Logo Pack")
	req.Payload = nil

	_, err := svc.Create(context.Background(), testAdminID, true, req)

	require.Error(t, err)
	assert.True(t, utils.IsValidationError(err))
	assert.Equal(t, "file required", err.Error())
	assert.Zero(t, store.uploads)
}

func TestCreateDeliverableRejectsOversizedFile(t *testing.T) {
	svc, repo, store, _ := newTestDeliverableService()

	req := fileCreateRequest("Logo Pack")
	req.Payload = make([]byte, 8*1024) // over the 4KB test limit

	_, err := svc.Create(context.Background(), testAdminID, true, req)

	require.Error(t, err)
	assert.True(t, utils.IsValidationError(err))
	assert.Zero(t, store.uploads, "oversized payload must perform zero object store writes")
	assert.Empty(t, repo.items, "oversized payload must perform zero metadata writes")
}

func TestCreateDeliverableRejectsDisallowedExtension(t *testing.T) {
	svc, _, store, _ := newTestDeliverableService()

	req := fileCreateRequest("Logo Pack")
	req.FileName = "installer.exe"

	_, err := svc.Create(context.Background(), testAdminID, true, req)

	require.Error(t, err)
	assert.True(t, utils.IsValidationError(err))
	assert.Zero(t, store.uploads)
}

func TestCreateDeliverableIsAdminOnly(t *testing.T) {
	svc, _, store, _ := newTestDeliverableService()

	_, err := svc.Create(context.Background(), testClientID, false, fileCreateRequest("Logo Pack"))

	require.Error(t, err)
	assert.True(t, utils.IsPermissionError(err))
	assert.Zero(t, store.uploads)
}

func TestCreateFileDeliverable(t *testing.T) {
	svc, repo, store, _ := newTestDeliverableService()

	deliverable, err := svc.Create(context.Background(), testAdminID, true, fileCreateRequest("Logo Pack"))

	require.NoError(t, err)
	requireLocationInvariant(t, deliverable)
	assert.Equal(t, "Logo Pack", deliverable.Title)
	assert.Equal(t, models.DeliverableKindFile, deliverable.Kind)
	assert.False(t, deliverable.Sent)
	assert.Nil(t, deliverable.SentAt)
	assert.Nil(t, deliverable.URL)

	require.NotNil(t, deliverable.FilePath)
	assert.True(t, strings.HasPrefix(*deliverable.FilePath, "deliverables/p1/"))
	assert.True(t, strings.HasSuffix(*deliverable.FilePath, ".zip"))
	assert.Contains(t, store.objects, *deliverable.FilePath)
	require.Len(t, repo.items, 1)
}

func TestCreateURLDeliverable(t *testing.T) {
	svc, _, store, _ := newTestDeliverableService()

	deliverable, err := svc.Create(context.Background(), testAdminID, true, dto.CreateDeliverableRequest{
		ProjectID: "p1",
		Title:     "Staging Site",
		Kind:      models.DeliverableKindURL,
		URL:       "https://staging.example.com",
	})

	require.NoError(t, err)
	requireLocationInvariant(t, deliverable)
	assert.Equal(t, models.DeliverableKindURL, deliverable.Kind)
	require.NotNil(t, deliverable.URL)
	assert.Equal(t, "https://staging.example.com", *deliverable.URL)
	assert.Zero(t, store.uploads, "url deliverables never touch the object store")
}

func TestCreateLeavesOrphanWhenInsertFails(t *testing.T) {
	svc, repo, store, _ := newTestDeliverableService()
	repo.createErr = assert.AnError

	_, err := svc.Create(context.Background(), testAdminID, true, fileCreateRequest("Logo Pack"))

	require.Error(t, err)
	// The upload is not rolled back; the object stays until the orphan sweep
	assert.Equal(t, 1, store.uploads)
	assert.Len(t, store.objects, 1)
	assert.Empty(t, repo.items)
}

func TestSendDeliverable(t *testing.T) {
	svc, _, _, notifier := newTestDeliverableService()

	created, err := svc.Create(context.Background(), testAdminID, true, fileCreateRequest("Logo Pack"))
	require.NoError(t, err)

	sent, err := svc.Send(context.Background(), testAdminID, true, created.ID)

	require.NoError(t, err)
	requireLocationInvariant(t, sent)
	assert.True(t, sent.Sent)
	require.NotNil(t, sent.SentAt)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, testClientID, notifier.sent[0].recipientID)
	assert.Equal(t, "Brand Refresh", notifier.sent[0].projectName)
	assert.Equal(t, "Logo Pack", notifier.sent[0].title)
}

func TestSendTwiceIsNoOp(t *testing.T) {
	svc, _, _, notifier := newTestDeliverableService()

	created, err := svc.Create(context.Background(), testAdminID, true, fileCreateRequest("Logo Pack"))
	require.NoError(t, err)

	first, err := svc.Send(context.Background(), testAdminID, true, created.ID)
	require.NoError(t, err)
	require.NotNil(t, first.SentAt)

	second, err := svc.Send(context.Background(), testAdminID, true, created.ID)
	require.NoError(t, err)

	assert.True(t, second.Sent)
	require.NotNil(t, second.SentAt)
	assert.Equal(t, *first.SentAt, *second.SentAt, "sent_at must not change on a repeated send")
	assert.Len(t, notifier.sent, 1, "the client is notified exactly once")
}

func TestSendNotificationFailureDoesNotFailSend(t *testing.T) {
	svc, repo, _, notifier := newTestDeliverableService()
	notifier.err = assert.AnError

	created, err := svc.Create(context.Background(), testAdminID, true, fileCreateRequest("Logo Pack"))
	require.NoError(t, err)

	sent, err := svc.Send(context.Background(), testAdminID, true, created.ID)

	require.NoError(t, err)
	assert.True(t, sent.Sent)
	assert.True(t, repo.find(created.ID).Sent)
}

func TestDownloadURLDeliverable(t *testing.T) {
	svc, _, store, _ := newTestDeliverableService()

	created, err := svc.Create(context.Background(), testAdminID, true, dto.CreateDeliverableRequest{
		ProjectID: "p1",
		Title:     "Staging Site",
		Kind:      models.DeliverableKindURL,
		URL:       "https://staging.example.com",
	})
	require.NoError(t, err)

	resolved, err := svc.Download(context.Background(), testClientID, false, created.ID)

	require.NoError(t, err)
	assert.Equal(t, "https://staging.example.com", resolved.URL)
	assert.Zero(t, resolved.ExpiresInSeconds)
	assert.Zero(t, store.signedCalls)
}

func TestDownloadFileDeliverable(t *testing.T) {
	svc, _, store, _ := newTestDeliverableService()

	created, err := svc.Create(context.Background(), testAdminID, true, fileCreateRequest("Logo Pack"))
	require.NoError(t, err)

	resolved, err := svc.Download(context.Background(), testClientID, false, created.ID)

	require.NoError(t, err)
	assert.Contains(t, resolved.URL, "signed")
	assert.Equal(t, int64(3600), resolved.ExpiresInSeconds)
	assert.Equal(t, 1, store.signedCalls)
}

func TestDownloadBrokenFileIsDownloadError(t *testing.T) {
	svc, _, store, _ := newTestDeliverableService()

	created, err := svc.Create(context.Background(), testAdminID, true, fileCreateRequest("Logo Pack"))
	require.NoError(t, err)

	// Simulate the object disappearing from the store
	require.NoError(t, store.Remove(context.Background(), *created.FilePath))

	_, err = svc.Download(context.Background(), testAdminID, true, created.ID)

	require.Error(t, err)
	assert.True(t, utils.IsDownloadError(err))
}

func TestDownloadDeniedForOtherClients(t *testing.T) {
	svc, _, _, _ := newTestDeliverableService()

	created, err := svc.Create(context.Background(), testAdminID, true, fileCreateRequest("Logo Pack"))
	require.NoError(t, err)

	_, err = svc.Download(context.Background(), "client-2", false, created.ID)

	require.Error(t, err)
	assert.True(t, utils.IsPermissionError(err))
}

func TestDownloadRateLimited(t *testing.T) {
	svc, _, store, _ := newTestDeliverableService()
	svc.limiter = utils.NewDownloadLimiter(1, 2) // burst of 2, then ~1/min

	created, err := svc.Create(context.Background(), testAdminID, true, fileCreateRequest("Logo Pack"))
	require.NoError(t, err)

	_, err = svc.Download(context.Background(), testClientID, false, created.ID)
	require.NoError(t, err)
	_, err = svc.Download(context.Background(), testClientID, false, created.ID)
	require.NoError(t, err)

	signedBefore := store.signedCalls
	_, err = svc.Download(context.Background(), testClientID, false, created.ID)

	require.Error(t, err)
	assert.True(t, utils.IsRateLimitError(err))
	assert.Equal(t, signedBefore, store.signedCalls, "a limited request must not contact the object store")

	// Other requesters are unaffected
	_, err = svc.Download(context.Background(), testAdminID, true, created.ID)
	require.NoError(t, err)
}

func TestDeleteDeliverableRemovesObject(t *testing.T) {
	svc, repo, store, _ := newTestDeliverableService()

	created, err := svc.Create(context.Background(), testAdminID, true, fileCreateRequest("Logo Pack"))
	require.NoError(t, err)
	key := *created.FilePath

	require.NoError(t, svc.Delete(context.Background(), testAdminID, true, created.ID))

	assert.Empty(t, repo.items)
	assert.NotContains(t, store.objects, key)
}

func TestDeleteSurvivesObjectRemovalFailure(t *testing.T) {
	svc, repo, store, _ := newTestDeliverableService()

	created, err := svc.Create(context.Background(), testAdminID, true, fileCreateRequest("Logo Pack"))
	require.NoError(t, err)

	store.removeErr = assert.AnError

	// Metadata delete still succeeds; the stranded object is sweep work
	require.NoError(t, svc.Delete(context.Background(), testAdminID, true, created.ID))
	assert.Empty(t, repo.items)
	assert.Len(t, store.objects, 1)
}

func TestBulkSendPartialFailure(t *testing.T) {
	svc, _, _, notifier := newTestDeliverableService()

	first, err := svc.Create(context.Background(), testAdminID, true, fileCreateRequest("Logo Pack"))
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), testAdminID, true, fileCreateRequest("Style Guide"))
	require.NoError(t, err)

	ids := []string{first.ID, "missing-id", second.ID}
	result := svc.SendMany(context.Background(), testAdminID, true, ids)

	assert.Equal(t, 3, result.Requested)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	assert.Contains(t, result.Errors, "missing-id")
	assert.Len(t, notifier.sent, 2)
}

func TestBulkDownload(t *testing.T) {
	svc, _, _, _ := newTestDeliverableService()

	first, err := svc.Create(context.Background(), testAdminID, true, fileCreateRequest("Logo Pack"))
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), testAdminID, true, dto.CreateDeliverableRequest{
		ProjectID: "p1",
		Title:     "Staging Site",
		Kind:      models.DeliverableKindURL,
		URL:       "https://staging.example.com",
	})
	require.NoError(t, err)

	result := svc.DownloadMany(context.Background(), testAdminID, true, []string{first.ID, second.ID, "missing-id"})

	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	require.Contains(t, result.Links, first.ID)
	require.Contains(t, result.Links, second.ID)
	assert.Equal(t, "https://staging.example.com", result.Links[second.ID].URL)
}
