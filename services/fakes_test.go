package services

import (
	"context"
	"fmt"
	"time"

	"github.com/clientdesk/portal/models"
	"gorm.io/gorm"
)

// fakeDeliverableRepo is an in-memory DeliverableRepository. Items keep
// insertion order so scan reports are deterministic.
type fakeDeliverableRepo struct {
	items     []*models.Deliverable
	createErr error
	findErr   error
	sentErr   error
	deleteErr error
	nextID    int
}

func (r *fakeDeliverableRepo) Create(d *models.Deliverable) error {
	if r.createErr != nil {
		return r.createErr
	}
	if d.ID == "" {
		r.nextID++
		d.ID = fmt.Sprintf("d-%d", r.nextID)
	}
	d.CreatedAt = time.Now()
	stored := *d
	r.items = append(r.items, &stored)
	return nil
}

func (r *fakeDeliverableRepo) find(id string) *models.Deliverable {
	for _, item := range r.items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

func (r *fakeDeliverableRepo) FindByID(id string) (models.Deliverable, error) {
	if r.findErr != nil {
		return models.Deliverable{}, r.findErr
	}
	if item := r.find(id); item != nil {
		return *item, nil
	}
	return models.Deliverable{}, gorm.ErrRecordNotFound
}

func (r *fakeDeliverableRepo) FindByProjectID(projectID string) ([]models.Deliverable, error) {
	var out []models.Deliverable
	for _, item := range r.items {
		if item.ProjectID == projectID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeDeliverableRepo) FindFileBacked() ([]models.Deliverable, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []models.Deliverable
	for _, item := range r.items {
		if item.Kind == models.DeliverableKindFile && item.FilePath != nil {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeDeliverableRepo) MarkSent(id string, at time.Time) (bool, error) {
	if r.sentErr != nil {
		return false, r.sentErr
	}
	item := r.find(id)
	if item == nil || item.Sent {
		return false, nil
	}
	item.Sent = true
	sentAt := at
	item.SentAt = &sentAt
	return true, nil
}

func (r *fakeDeliverableRepo) ReclassifyToURL(id string) error {
	item := r.find(id)
	if item == nil || item.Kind != models.DeliverableKindFile {
		return nil
	}
	item.Kind = models.DeliverableKindURL
	item.FilePath = nil
	return nil
}

func (r *fakeDeliverableRepo) Delete(id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	for i, item := range r.items {
		if item.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// fakeProjectLookup resolves projects out of a map
type fakeProjectLookup struct {
	projects map[string]models.Project
}

func (l *fakeProjectLookup) FindByID(id string) (models.Project, error) {
	if project, ok := l.projects[id]; ok {
		return project, nil
	}
	return models.Project{}, gorm.ErrRecordNotFound
}

// fakeObjectStore is an in-memory ObjectStore that counts interactions so
// tests can assert that rejected requests never touched it
type fakeObjectStore struct {
	objects     map[string][]byte
	uploadErr   error
	removeErr   error
	signErrKeys map[string]bool
	uploads     int
	signedCalls int
	existsCalls int
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{
		objects:     make(map[string][]byte),
		signErrKeys: make(map[string]bool),
	}
}

func (s *fakeObjectStore) Upload(ctx context.Context, key string, payload []byte, contentType string) error {
	s.uploads++
	if s.uploadErr != nil {
		return s.uploadErr
	}
	s.objects[key] = payload
	return nil
}

func (s *fakeObjectStore) Remove(ctx context.Context, keys ...string) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	for _, key := range keys {
		delete(s.objects, key)
	}
	return nil
}

func (s *fakeObjectStore) Exists(ctx context.Context, key string) (bool, error) {
	s.existsCalls++
	_, ok := s.objects[key]
	return ok, nil
}

func (s *fakeObjectStore) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	s.signedCalls++
	if s.signErrKeys[key] {
		return "", fmt.Errorf("signing unavailable for %s", key)
	}
	if _, ok := s.objects[key]; !ok {
		return "", fmt.Errorf("no such object %s", key)
	}
	return "https://store.local/signed/" + key, nil
}

func (s *fakeObjectStore) PublicURL(key string) string {
	return "https://store.local/" + key
}

func (s *fakeObjectStore) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	for key := range s.objects {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// fakeNotifier records notifications
type notification struct {
	recipientID string
	projectName string
	title       string
}

type fakeNotifier struct {
	sent []notification
	err  error
}

func (n *fakeNotifier) DeliverableSent(ctx context.Context, recipientID, projectName, title string) error {
	n.sent = append(n.sent, notification{recipientID, projectName, title})
	return n.err
}

// fakeUserLookup resolves users out of a map
type fakeUserLookup struct {
	users map[string]models.User
}

func (l *fakeUserLookup) FindByID(id string) (models.User, error) {
	if user, ok := l.users[id]; ok {
		return user, nil
	}
	return models.User{}, gorm.ErrRecordNotFound
}

// fakeMessageRepo is an in-memory MessageRepository. Items keep insertion
// order so inbox listings are deterministic.
type fakeMessageRepo struct {
	items     []*models.Message
	createErr error
	nextID    int
	creates   int
}

func (r *fakeMessageRepo) Create(message models.Message) (models.Message, error) {
	if r.createErr != nil {
		return models.Message{}, r.createErr
	}
	r.creates++
	r.nextID++
	message.ID = fmt.Sprintf("m%d", r.nextID)
	message.CreatedAt = time.Now()
	stored := message
	r.items = append(r.items, &stored)
	return message, nil
}

func (r *fakeMessageRepo) FindByID(id string) (models.Message, error) {
	for _, m := range r.items {
		if m.ID == id {
			return *m, nil
		}
	}
	return models.Message{}, gorm.ErrRecordNotFound
}

func (r *fakeMessageRepo) FindInbox(userID string) ([]models.Message, error) {
	var out []models.Message
	for _, m := range r.items {
		if m.RecipientID == nil || *m.RecipientID == userID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) FindSent(userID string) ([]models.Message, error) {
	var out []models.Message
	for _, m := range r.items {
		if m.SenderID == userID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) MarkRead(id string, at time.Time) error {
	for _, m := range r.items {
		if m.ID == id && m.ReadAt == nil {
			stamp := at
			m.ReadAt = &stamp
		}
	}
	return nil
}

func (r *fakeMessageRepo) Delete(id string) error {
	for i, m := range r.items {
		if m.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}
