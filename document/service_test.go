package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"themison-be/organization"
)

type fakeStore struct {
	uploads    []string
	failUpload map[string]error
	removed    []string
	removeErr  error
}

func (f *fakeStore) Upload(_ context.Context, objectName string, _ io.Reader, _ int64, _ string) error {
	for suffix, err := range f.failUpload {
		if strings.HasSuffix(objectName, suffix) {
			return err
		}
	}
	f.uploads = append(f.uploads, objectName)
	return nil
}

func (f *fakeStore) PublicURL(objectName string) string {
	return "http://files.local/" + objectName
}

func (f *fakeStore) Remove(_ context.Context, objectName string) error {
	f.removed = append(f.removed, objectName)
	return f.removeErr
}

type fakeRepo struct {
	docs         []*Document
	createErr    error
	getLatestErr error
	setLatestErr error
	deleted      []uuid.UUID
}

func (f *fakeRepo) CreateDocument(doc *Document) error {
	if f.createErr != nil {
		return f.createErr
	}
	stored := *doc
	f.docs = append(f.docs, &stored)
	return nil
}

func (f *fakeRepo) GetAll(DocumentFilter) ([]Document, error) {
	var out []Document
	for _, d := range f.docs {
		out = append(out, *d)
	}
	return out, nil
}

func (f *fakeRepo) GetTotal(DocumentFilter) (int, error) { return len(f.docs), nil }

func (f *fakeRepo) GetByID(id uuid.UUID) (*Document, error) {
	for _, d := range f.docs {
		if d.ID == id {
			copied := *d
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) GetLatest(trialID uuid.UUID, documentType string) (*Document, error) {
	if f.getLatestErr != nil {
		return nil, f.getLatestErr
	}
	for _, d := range f.docs {
		if d.TrialID == trialID && d.DocumentType == documentType && d.IsLatest {
			copied := *d
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) SetLatest(id uuid.UUID, isLatest bool) error {
	if f.setLatestErr != nil {
		return f.setLatestErr
	}
	for _, d := range f.docs {
		if d.ID == id {
			d.IsLatest = isLatest
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeRepo) UpdateDocument(id uuid.UUID, req *UpdateDocumentRequest) (*Document, error) {
	for _, d := range f.docs {
		if d.ID == id {
			if req.Name != nil {
				d.Name = *req.Name
			}
			copied := *d
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) DeleteDocument(id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	for i, d := range f.docs {
		if d.ID == id {
			f.docs = append(f.docs[:i], f.docs[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeMembers struct {
	member *organization.Member
	err    error
}

func (f *fakeMembers) GetMemberByUserID(int64) (*organization.Member, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.member, nil
}

type fakeNotifier struct {
	titles []string
	bodies []string
}

func (f *fakeNotifier) Notify(_ int, title, body string) error {
	f.titles = append(f.titles, title)
	f.bodies = append(f.bodies, body)
	return nil
}

type fakeCache struct {
	store       map[string][]byte
	invalidated []uuid.UUID
	hits        int
}

func (f *fakeCache) Get(_ context.Context, key string, dest interface{}) bool {
	_, ok := f.store[key]
	if ok {
		f.hits++
	}
	return false
}

func (f *fakeCache) Set(_ context.Context, key string, _ interface{}) {
	if f.store == nil {
		f.store = map[string][]byte{}
	}
	f.store[key] = []byte("x")
}

func (f *fakeCache) InvalidateTrial(_ context.Context, trialID uuid.UUID) {
	f.invalidated = append(f.invalidated, trialID)
}

func newTestService(repo *fakeRepo, store *fakeStore) (*DocumentService, *fakeNotifier, *fakeCache) {
	notifier := &fakeNotifier{}
	cache := &fakeCache{}
	members := &fakeMembers{member: &organization.Member{ID: 7, DisplayName: "Dr. Chen"}}
	svc := NewDocumentService(repo, store, members, cache, notifier)
	return svc, notifier, cache
}

func uploadRequest(trialID uuid.UUID, name, docType string) UploadRequest {
	return UploadRequest{
		File: FileCandidate{Name: name, Size: 128, ContentType: "application/pdf"},
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("content")), nil
		},
		TrialID:      trialID,
		DocumentType: docType,
	}
}

func TestUploadBatchFlipsPreviousLatestForVersionedType(t *testing.T) {
	trialID := uuid.New()
	repo := &fakeRepo{}
	existing := &Document{ID: uuid.New(), TrialID: trialID, DocumentType: TypeProtocol, IsLatest: true}
	repo.docs = append(repo.docs, existing)

	svc, _, _ := newTestService(repo, &fakeStore{})

	created, failures := svc.UploadBatch(context.Background(), 1, []UploadRequest{
		uploadRequest(trialID, "protocol-v2.pdf", TypeProtocol),
	}, nil)

	require.Empty(t, failures)
	require.Len(t, created, 1)
	assert.True(t, created[0].IsLatest)

	latestCount := 0
	for _, d := range repo.docs {
		if d.DocumentType == TypeProtocol && d.IsLatest {
			latestCount++
		}
	}
	assert.Equal(t, 1, latestCount, "exactly one protocol document may hold the latest flag")

	old, err := repo.GetByID(existing.ID)
	require.NoError(t, err)
	assert.False(t, old.IsLatest)
}

func TestUploadBatchNonVersionedTypeKeepsSiblingsLatest(t *testing.T) {
	trialID := uuid.New()
	repo := &fakeRepo{}
	existing := &Document{ID: uuid.New(), TrialID: trialID, DocumentType: TypeOther, IsLatest: true}
	repo.docs = append(repo.docs, existing)

	svc, _, _ := newTestService(repo, &fakeStore{})

	created, failures := svc.UploadBatch(context.Background(), 1, []UploadRequest{
		uploadRequest(trialID, "lab-manual.pdf", TypeOther),
	}, nil)

	require.Empty(t, failures)
	require.Len(t, created, 1)
	assert.True(t, created[0].IsLatest)

	old, err := repo.GetByID(existing.ID)
	require.NoError(t, err)
	assert.True(t, old.IsLatest, "non-versioned types never flip siblings")
}

func TestUploadBatchLatestLookupFailureDegrades(t *testing.T) {
	trialID := uuid.New()
	repo := &fakeRepo{getLatestErr: errors.New("connection reset")}

	svc, _, _ := newTestService(repo, &fakeStore{})

	created, failures := svc.UploadBatch(context.Background(), 1, []UploadRequest{
		uploadRequest(trialID, "protocol.pdf", TypeProtocol),
	}, nil)

	require.Empty(t, failures, "lookup failure must not fail the upload")
	require.Len(t, created, 1)
	assert.False(t, created[0].IsLatest, "record degrades to not-latest")
}

func TestUploadBatchClearLatestFailureDegrades(t *testing.T) {
	trialID := uuid.New()
	repo := &fakeRepo{setLatestErr: errors.New("deadlock")}
	existing := &Document{ID: uuid.New(), TrialID: trialID, DocumentType: TypeAmendment, IsLatest: true}
	repo.docs = append(repo.docs, existing)

	svc, _, _ := newTestService(repo, &fakeStore{})

	created, failures := svc.UploadBatch(context.Background(), 1, []UploadRequest{
		uploadRequest(trialID, "amendment-2.pdf", TypeAmendment),
	}, nil)

	require.Empty(t, failures)
	require.Len(t, created, 1)
	assert.False(t, created[0].IsLatest)
}

func TestUploadBatchSequentialAndContinuesAfterFailure(t *testing.T) {
	trialID := uuid.New()
	repo := &fakeRepo{}
	store := &fakeStore{failUpload: map[string]error{"broken.pdf": errors.New("disk full")}}

	svc, notifier, cache := newTestService(repo, store)

	type event struct {
		index  int
		status UploadStatus
	}
	var events []event

	created, failures := svc.UploadBatch(context.Background(), 1, []UploadRequest{
		uploadRequest(trialID, "first.pdf", TypeConsent),
		uploadRequest(trialID, "broken.pdf", TypeConsent),
		uploadRequest(trialID, "third.pdf", TypeConsent),
	}, func(index int, entry UploadProgressEntry) {
		events = append(events, event{index: index, status: entry.Status})
	})

	require.Len(t, created, 2)
	require.Len(t, failures, 1)
	assert.Equal(t, "broken.pdf", failures[0].FileName)
	assert.Contains(t, failures[0].Message, "storage upload failed")

	// Strictly sequential: all events for file N precede any event for N+1.
	lastIndex := 0
	for _, e := range events {
		assert.GreaterOrEqual(t, e.index, lastIndex)
		lastIndex = e.index
	}

	terminal := map[int]UploadStatus{}
	for _, e := range events {
		terminal[e.index] = e.status
	}
	assert.Equal(t, StatusSuccess, terminal[0])
	assert.Equal(t, StatusError, terminal[1])
	assert.Equal(t, StatusSuccess, terminal[2])

	// One invalidation per touched trial, not per file.
	assert.Equal(t, []uuid.UUID{trialID}, cache.invalidated)

	require.Len(t, notifier.titles, 1)
	assert.Equal(t, "Documents uploaded", notifier.titles[0])
	assert.Contains(t, notifier.bodies[0], "2 document(s) uploaded successfully, 1 failed")
}

func TestValidateThenUploadMixedBatch(t *testing.T) {
	trialID := uuid.New()
	repo := &fakeRepo{}
	existing := &Document{ID: uuid.New(), TrialID: trialID, DocumentType: TypeProtocol, IsLatest: true}
	repo.docs = append(repo.docs, existing)

	svc, _, _ := newTestService(repo, &fakeStore{})
	v := NewValidator()

	candidates := []FileCandidate{
		{Name: "protocol-v3.pdf", Size: 2048, ContentType: "application/pdf"},
		{Name: "site-map.pdf", Size: 1024, ContentType: "application/pdf"},
		{Name: "raw-imaging.pdf", Size: v.MaxFileSize + 1, ContentType: "application/pdf"},
	}

	var rejections []UploadError
	accepted := v.ValidateBatch(0, candidates, func(name, reason string) {
		rejections = append(rejections, UploadError{FileName: name, Message: reason})
	})

	require.Len(t, rejections, 1, "the oversized file is rejected before any upload")
	assert.Equal(t, "raw-imaging.pdf", rejections[0].FileName)
	assert.Contains(t, rejections[0].Message, "exceeds the maximum file size")

	requests := make([]UploadRequest, 0, len(accepted))
	for _, c := range accepted {
		requests = append(requests, UploadRequest{
			File: c,
			Open: func() (io.ReadCloser, error) {
				return io.NopCloser(strings.NewReader("content")), nil
			},
			TrialID:      trialID,
			DocumentType: TypeProtocol,
		})
	}

	created, failures := svc.UploadBatch(context.Background(), 1, requests, nil)
	require.Empty(t, failures)
	require.Len(t, created, 2)

	// The pre-existing protocol and the first upload both lost the flag to
	// the second upload.
	require.Len(t, repo.docs, 3)
	var latestNames []string
	for _, d := range repo.docs {
		if d.IsLatest {
			latestNames = append(latestNames, d.Name)
		}
	}
	assert.Equal(t, []string{"site-map.pdf"}, latestNames)

	old, err := repo.GetByID(existing.ID)
	require.NoError(t, err)
	assert.False(t, old.IsLatest)
}

func TestUploadBatchAllFailedSummary(t *testing.T) {
	trialID := uuid.New()
	store := &fakeStore{failUpload: map[string]error{".pdf": errors.New("unreachable")}}

	svc, notifier, cache := newTestService(&fakeRepo{}, store)

	created, failures := svc.UploadBatch(context.Background(), 1, []UploadRequest{
		uploadRequest(trialID, "a.pdf", TypeProtocol),
		uploadRequest(trialID, "b.pdf", TypeProtocol),
	}, nil)

	assert.Empty(t, created)
	require.Len(t, failures, 2)
	assert.Empty(t, cache.invalidated, "nothing succeeded, nothing to invalidate")

	require.Len(t, notifier.titles, 1)
	assert.Equal(t, "Document upload failed", notifier.titles[0])
	assert.Contains(t, notifier.bodies[0], "All 2 document(s) failed")
}

func TestUploadBatchMemberResolutionFailureLeavesObjectBehind(t *testing.T) {
	trialID := uuid.New()
	repo := &fakeRepo{}
	store := &fakeStore{}
	cache := &fakeCache{}
	notifier := &fakeNotifier{}
	members := &fakeMembers{err: errors.New("no member for user")}
	svc := NewDocumentService(repo, store, members, cache, notifier)

	created, failures := svc.UploadBatch(context.Background(), 99, []UploadRequest{
		uploadRequest(trialID, "orphan.pdf", TypeConsent),
	}, nil)

	assert.Empty(t, created)
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0].Message, "member not found")

	// The object was stored before attribution failed and is not cleaned up.
	assert.Len(t, store.uploads, 1)
	assert.Empty(t, store.removed)
	assert.Empty(t, repo.docs)
}

func TestUploadBatchStorageKeyUsesSanitizedName(t *testing.T) {
	trialID := uuid.New()
	repo := &fakeRepo{}
	store := &fakeStore{}

	svc, _, _ := newTestService(repo, store)

	created, failures := svc.UploadBatch(context.Background(), 1, []UploadRequest{
		uploadRequest(trialID, "Final  Protocol (v2).pdf", TypeProtocol),
	}, nil)

	require.Empty(t, failures)
	require.Len(t, created, 1)
	require.Len(t, store.uploads, 1)

	key := store.uploads[0]
	assert.True(t, strings.HasPrefix(key, trialID.String()+"/"))
	assert.True(t, strings.HasSuffix(key, "-final_protocol_v2_.pdf"), "got %s", key)
	assert.Equal(t, key, created[0].StoragePath)
	assert.Equal(t, "http://files.local/"+key, created[0].URL)
	// The display name keeps the original spelling.
	assert.Equal(t, "Final  Protocol (v2).pdf", created[0].Name)
}

func TestDeleteIsBestEffortOnObjectRemoval(t *testing.T) {
	trialID := uuid.New()
	repo := &fakeRepo{}
	doc := &Document{ID: uuid.New(), TrialID: trialID, StoragePath: "key/doc.pdf"}
	repo.docs = append(repo.docs, doc)

	store := &fakeStore{removeErr: errors.New("object locked")}
	svc, _, cache := newTestService(repo, store)

	err := svc.Delete(context.Background(), doc.ID)
	require.NoError(t, err, "object removal failure must not block metadata deletion")

	assert.Equal(t, []uuid.UUID{doc.ID}, repo.deleted)
	assert.Equal(t, []uuid.UUID{trialID}, cache.invalidated)
}

func TestDeleteMissingDocumentIsNoop(t *testing.T) {
	repo := &fakeRepo{}
	store := &fakeStore{}
	svc, _, cache := newTestService(repo, store)

	err := svc.Delete(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, store.removed)
	assert.Empty(t, repo.deleted)
	assert.Empty(t, cache.invalidated)
}

func TestGetByIDNotFoundReturnsNil(t *testing.T) {
	svc, _, _ := newTestService(&fakeRepo{}, &fakeStore{})

	doc, err := svc.GetByID(uuid.New())
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Protocol V2.pdf", "protocol_v2.pdf"},
		{"consent form (final).docx", "consent_form_final_.docx"},
		{"simple.pdf", "simple.pdf"},
		{"weird///name???.txt", "weird_name_.txt"},
		{"UPPER-case_ok.PNG", "upper-case_ok.png"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeFilename(tc.in))
		})
	}
}

func TestListCachesScopedFilters(t *testing.T) {
	trialID := uuid.New()
	repo := &fakeRepo{}
	repo.docs = append(repo.docs, &Document{ID: uuid.New(), TrialID: trialID, DocumentType: TypeProtocol})

	svc, _, cache := newTestService(repo, &fakeStore{})

	docs, total, err := svc.List(context.Background(), DocumentFilter{TrialID: &trialID})
	require.NoError(t, err)
	assert.Len(t, docs, 1)
	assert.Equal(t, 1, total)
	assert.Len(t, cache.store, 1, "trial-scoped listing is cached")

	// Unscoped listings bypass the cache entirely.
	_, _, err = svc.List(context.Background(), DocumentFilter{})
	require.NoError(t, err)
	assert.Len(t, cache.store, 1)
}

func TestListKeyDistinguishesFilters(t *testing.T) {
	trialID := uuid.New()
	latest := true

	base := listKey(DocumentFilter{TrialID: &trialID})
	byType := listKey(DocumentFilter{TrialID: &trialID, DocumentType: TypeProtocol})
	byLatest := listKey(DocumentFilter{TrialID: &trialID, IsLatest: &latest})

	assert.NotEmpty(t, base)
	assert.NotEqual(t, base, byType)
	assert.NotEqual(t, base, byLatest)
	assert.NotEqual(t, byType, byLatest)

	assert.Empty(t, listKey(DocumentFilter{}), "unscoped filters are not cached")

	for _, key := range []string{base, byType, byLatest} {
		assert.True(t, strings.HasPrefix(key, fmt.Sprintf("documents:trial:%s:", trialID)))
	}
}
