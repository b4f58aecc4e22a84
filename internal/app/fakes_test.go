package app

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jennilaluyan/connect-in-backend/internal/common"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/application"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/auth"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/identity"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/notification"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/posting"
)

type fakeIdentityRepo struct {
	mu    sync.Mutex
	items map[common.UUID]identity.Identity
}

func newFakeIdentityRepo() *fakeIdentityRepo {
	return &fakeIdentityRepo{items: map[common.UUID]identity.Identity{}}
}

func (r *fakeIdentityRepo) Create(_ context.Context, ident identity.Identity) (*identity.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.Email == ident.Email {
			return nil, common.NewValidationError("invalid registration", map[string]string{"email": "email is already registered"})
		}
	}
	ident.ID = common.NewUUID()
	ident.CreatedAt = time.Now().UTC()
	ident.UpdatedAt = ident.CreatedAt
	r.items[ident.ID] = ident
	return &ident, nil
}

func (r *fakeIdentityRepo) GetByID(_ context.Context, id common.UUID) (*identity.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ident, ok := r.items[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	return &ident, nil
}

func (r *fakeIdentityRepo) GetByEmail(_ context.Context, email string) (*identity.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ident := range r.items {
		if ident.Email == email {
			copied := ident
			return &copied, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "user not found", nil)
}

func (r *fakeIdentityRepo) List(_ context.Context) ([]identity.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []identity.Identity
	for _, ident := range r.items {
		items = append(items, ident)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Email < items[j].Email })
	return items, nil
}

func (r *fakeIdentityRepo) ListPendingRecruiters(_ context.Context) ([]identity.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []identity.Identity
	for _, ident := range r.items {
		if ident.Role == identity.RoleRecruiter && !ident.Approved {
			items = append(items, ident)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Email < items[j].Email })
	return items, nil
}

func (r *fakeIdentityRepo) SetApproved(_ context.Context, id common.UUID, approved bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ident, ok := r.items[id]
	if !ok {
		return common.NewError(common.CodeNotFound, "user not found", nil)
	}
	ident.Approved = approved
	ident.UpdatedAt = time.Now().UTC()
	r.items[id] = ident
	return nil
}

func (r *fakeIdentityRepo) UpdateProfile(_ context.Context, id common.UUID, update identity.ProfileUpdate) (*identity.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ident, ok := r.items[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	if update.Name != nil {
		ident.Name = *update.Name
	}
	if update.Headline != nil {
		ident.Headline = *update.Headline
	}
	if update.City != nil {
		ident.City = *update.City
	}
	if update.Province != nil {
		ident.Province = *update.Province
	}
	if update.CompanyName != nil {
		ident.CompanyName = *update.CompanyName
	}
	if update.AvatarPath != nil {
		ident.AvatarPath = *update.AvatarPath
	}
	ident.UpdatedAt = time.Now().UTC()
	r.items[id] = ident
	return &ident, nil
}

func (r *fakeIdentityRepo) Delete(_ context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return common.NewError(common.CodeNotFound, "user not found", nil)
	}
	delete(r.items, id)
	return nil
}

func (r *fakeIdentityRepo) add(ident identity.Identity) identity.Identity {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ident.ID == "" {
		ident.ID = common.NewUUID()
	}
	r.items[ident.ID] = ident
	return ident
}

type fakePostingRepo struct {
	mu    sync.Mutex
	items map[common.UUID]posting.Posting
}

func newFakePostingRepo() *fakePostingRepo {
	return &fakePostingRepo{items: map[common.UUID]posting.Posting{}}
}

func (r *fakePostingRepo) Create(_ context.Context, p posting.Posting) (*posting.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = common.NewUUID()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	r.items[p.ID] = p
	return &p, nil
}

func (r *fakePostingRepo) Update(_ context.Context, id common.UUID, update posting.Update) (*posting.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "job posting not found", nil)
	}
	if update.Title != nil {
		p.Title = *update.Title
	}
	if update.CompanyName != nil {
		p.CompanyName = *update.CompanyName
	}
	if update.Type != nil {
		p.Type = *update.Type
	}
	if update.Location != nil {
		p.Location = *update.Location
	}
	if update.Description != nil {
		p.Description = *update.Description
	}
	if update.Requirements != nil {
		p.Requirements = *update.Requirements
	}
	if update.Responsibilities != nil {
		p.Responsibilities = *update.Responsibilities
	}
	if update.Benefits != nil {
		p.Benefits = *update.Benefits
	}
	if update.SalaryMin != nil {
		p.SalaryMin = update.SalaryMin
	}
	if update.SalaryMax != nil {
		p.SalaryMax = update.SalaryMax
	}
	p.UpdatedAt = time.Now().UTC()
	r.items[id] = p
	return &p, nil
}

func (r *fakePostingRepo) GetByID(_ context.Context, id common.UUID) (*posting.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "job posting not found", nil)
	}
	return &p, nil
}

func (r *fakePostingRepo) List(_ context.Context, search string, limit, offset int) ([]posting.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []posting.Posting
	for _, p := range r.items {
		if search != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(search)) {
			continue
		}
		items = append(items, p)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return page(items, limit, offset), nil
}

func (r *fakePostingRepo) ListByOwner(_ context.Context, ownerID common.UUID, limit, offset int) ([]posting.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []posting.Posting
	for _, p := range r.items {
		if p.OwnerID == ownerID {
			items = append(items, p)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return page(items, limit, offset), nil
}

func (r *fakePostingRepo) Delete(_ context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return common.NewError(common.CodeNotFound, "job posting not found", nil)
	}
	delete(r.items, id)
	return nil
}

func (r *fakePostingRepo) DeleteByOwner(_ context.Context, ownerID common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.items {
		if p.OwnerID == ownerID {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *fakePostingRepo) add(p posting.Posting) posting.Posting {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = common.NewUUID()
	}
	r.items[p.ID] = p
	return p
}

type fakeApplicationRepo struct {
	mu        sync.Mutex
	items     map[common.UUID]application.Application
	postings  *fakePostingRepo
	createErr error
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{items: map[common.UUID]application.Application{}}
}

func (r *fakeApplicationRepo) Create(_ context.Context, app application.Application) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, existing := range r.items {
		if existing.PostingID == app.PostingID && existing.ApplicantID == app.ApplicantID {
			return nil, common.NewError(common.CodeConflict, "you have already applied to this job posting", nil)
		}
	}
	app.ID = common.NewUUID()
	app.CreatedAt = time.Now().UTC()
	app.UpdatedAt = app.CreatedAt
	r.items[app.ID] = app
	return &app, nil
}

func (r *fakeApplicationRepo) GetByID(_ context.Context, id common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.items[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	return &app, nil
}

func (r *fakeApplicationRepo) FindByPostingAndApplicant(_ context.Context, postingID, applicantID common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.items {
		if app.PostingID == postingID && app.ApplicantID == applicantID {
			copied := app
			return &copied, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "application not found", nil)
}

func (r *fakeApplicationRepo) ListByApplicant(_ context.Context, applicantID common.UUID, limit, offset int) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for _, app := range r.items {
		if app.ApplicantID == applicantID {
			items = append(items, app)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return page(items, limit, offset), nil
}

func (r *fakeApplicationRepo) ListByOwner(_ context.Context, ownerID common.UUID, postingID *common.UUID, limit, offset int) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for _, app := range r.items {
		if postingID != nil && app.PostingID != *postingID {
			continue
		}
		items = append(items, app)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return page(items, limit, offset), nil
}

func (r *fakeApplicationRepo) UpdateStatus(_ context.Context, id common.UUID, expected, next application.Status) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.items[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	if app.Status != expected {
		return nil, common.NewTransitionError(string(app.Status), string(next))
	}
	app.Status = next
	app.UpdatedAt = time.Now().UTC()
	r.items[id] = app
	return &app, nil
}

func (r *fakeApplicationRepo) DeleteByPosting(_ context.Context, postingID common.UUID) ([]application.Application, error) {
	return r.deleteWhere(func(app application.Application) bool { return app.PostingID == postingID })
}

func (r *fakeApplicationRepo) DeleteByApplicant(_ context.Context, applicantID common.UUID) ([]application.Application, error) {
	return r.deleteWhere(func(app application.Application) bool { return app.ApplicantID == applicantID })
}

func (r *fakeApplicationRepo) DeleteByPostingOwner(ctx context.Context, ownerID common.UUID) ([]application.Application, error) {
	owned := map[common.UUID]bool{}
	if r.postings != nil {
		postings, _ := r.postings.ListByOwner(ctx, ownerID, 0, 0)
		for _, p := range postings {
			owned[p.ID] = true
		}
	}
	return r.deleteWhere(func(app application.Application) bool { return owned[app.PostingID] })
}

func (r *fakeApplicationRepo) deleteWhere(match func(application.Application) bool) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed []application.Application
	for id, app := range r.items {
		if match(app) {
			removed = append(removed, app)
			delete(r.items, id)
		}
	}
	return removed, nil
}

func (r *fakeApplicationRepo) add(app application.Application) application.Application {
	r.mu.Lock()
	defer r.mu.Unlock()
	if app.ID == "" {
		app.ID = common.NewUUID()
	}
	r.items[app.ID] = app
	return app
}

type fakeNotificationRepo struct {
	mu    sync.Mutex
	items []notification.Event
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(_ context.Context, event notification.Event) (*notification.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event.ID = common.NewUUID()
	event.CreatedAt = time.Now().UTC()
	r.items = append(r.items, event)
	return &event, nil
}

func (r *fakeNotificationRepo) ListByRecipient(_ context.Context, recipientID common.UUID, limit, offset int) ([]notification.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []notification.Event
	for _, event := range r.items {
		if event.RecipientID == recipientID {
			items = append(items, event)
		}
	}
	return page(items, limit, offset), nil
}

func (r *fakeNotificationRepo) CountUnread(_ context.Context, recipientID common.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, event := range r.items {
		if event.RecipientID == recipientID && !event.Read {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, recipientID common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, event := range r.items {
		if event.RecipientID == recipientID {
			r.items[i].Read = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) DeleteByRecipient(_ context.Context, recipientID common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.items[:0]
	for _, event := range r.items {
		if event.RecipientID != recipientID {
			kept = append(kept, event)
		}
	}
	r.items = kept
	return nil
}

func (r *fakeNotificationRepo) forRecipient(recipientID common.UUID) []notification.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []notification.Event
	for _, event := range r.items {
		if event.RecipientID == recipientID {
			items = append(items, event)
		}
	}
	return items
}

type fakeSessionRepo struct {
	mu    sync.Mutex
	items map[string]auth.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{items: map[string]auth.Session{}}
}

func (r *fakeSessionRepo) Store(_ context.Context, session auth.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[session.TokenHash] = session
	return nil
}

func (r *fakeSessionRepo) GetByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.items[tokenHash]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "session not found", nil)
	}
	return &session, nil
}

func (r *fakeSessionRepo) Revoke(_ context.Context, tokenHash string, revokedAtUnix int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.items[tokenHash]
	if !ok {
		return nil
	}
	at := time.Unix(revokedAtUnix, 0).UTC()
	session.RevokedAt = &at
	r.items[tokenHash] = session
	return nil
}

func (r *fakeSessionRepo) RevokeAll(_ context.Context, userID common.UUID, revokedAtUnix int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	at := time.Unix(revokedAtUnix, 0).UTC()
	for hash, session := range r.items {
		if session.UserID == userID && session.RevokedAt == nil {
			session.RevokedAt = &at
			r.items[hash] = session
		}
	}
	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context, beforeUnix int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := time.Unix(beforeUnix, 0).UTC()
	for hash, session := range r.items {
		if session.ExpiresAt.Before(cutoff) {
			delete(r.items, hash)
		}
	}
	return nil
}

type fakeBlobStore struct {
	mu      sync.Mutex
	blobs   map[string][]byte
	saveErr error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: map[string][]byte{}}
}

func (s *fakeBlobStore) Save(_ context.Context, blobPath string, content io.Reader) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	s.blobs[blobPath] = data
	return nil
}

func (s *fakeBlobStore) Open(_ context.Context, blobPath string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[blobPath]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "file not found", nil)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeBlobStore) Delete(_ context.Context, blobPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, blobPath)
	return nil
}

func (s *fakeBlobStore) Exists(_ context.Context, blobPath string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blobs[blobPath]
	return ok
}

func (s *fakeBlobStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}

func testSession(userID common.UUID) auth.Session {
	return auth.Session{
		ID:        common.NewUUID(),
		UserID:    userID,
		TokenHash: "hash-" + string(userID),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
		CreatedAt: time.Now().UTC(),
	}
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
