package document

import (
	"context"
	"fmt"
	"io"
	"log"
	"regexp"
	"strings"
	"time"

	"themison-be/organization"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ObjectStore is the storage boundary for document bytes. Upload must fail
// rather than overwrite an existing key.
type ObjectStore interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	PublicURL(objectName string) string
	Remove(ctx context.Context, objectName string) error
}

// Repository is the metadata-store boundary used by the service.
type Repository interface {
	CreateDocument(doc *Document) error
	GetAll(filter DocumentFilter) ([]Document, error)
	GetTotal(filter DocumentFilter) (int, error)
	GetByID(id uuid.UUID) (*Document, error)
	GetLatest(trialID uuid.UUID, documentType string) (*Document, error)
	SetLatest(id uuid.UUID, isLatest bool) error
	UpdateDocument(id uuid.UUID, req *UpdateDocumentRequest) (*Document, error)
	DeleteDocument(id uuid.UUID) error
}

// MemberResolver maps an authenticated user to the member identity uploads
// are attributed to.
type MemberResolver interface {
	GetMemberByUserID(userID int64) (*organization.Member, error)
}

// Notifier receives the post-batch summary.
type Notifier interface {
	Notify(memberID int, title, body string) error
}

// Cache is the invalidate-on-write read cache for listings.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{})
	InvalidateTrial(ctx context.Context, trialID uuid.UUID)
}

// UploadRequest describes one file of a batch after validation.
type UploadRequest struct {
	File            FileCandidate
	Open            func() (io.ReadCloser, error)
	TrialID         uuid.UUID
	DocumentType    string
	Description     *string
	Tags            []string
	AmendmentNumber *int
}

// UploadError records the terminal failure of a single file in a batch.
type UploadError struct {
	FileName string `json:"file_name"`
	Message  string `json:"message"`
}

type DocumentService struct {
	repo    Repository
	store   ObjectStore
	members MemberResolver
	cache   Cache
	notify  Notifier

	now func() time.Time
}

func NewDocumentService(repo Repository, store ObjectStore, members MemberResolver, cache Cache, notify Notifier) *DocumentService {
	return &DocumentService{
		repo:    repo,
		store:   store,
		members: members,
		cache:   cache,
		notify:  notify,
		now:     time.Now,
	}
}

var (
	unsafeFilenameChars = regexp.MustCompile(`[^a-z0-9._-]`)
	underscoreRuns      = regexp.MustCompile(`_+`)
)

// SanitizeFilename lowercases the name, replaces everything outside
// [a-z0-9._-] with an underscore and collapses runs. Collision avoidance
// comes from the timestamp prefix in the storage key, not from the
// sanitized name itself.
func SanitizeFilename(name string) string {
	s := strings.ToLower(name)
	s = unsafeFilenameChars.ReplaceAllString(s, "_")
	s = underscoreRuns.ReplaceAllString(s, "_")
	return s
}

func (s *DocumentService) storageKey(trialID uuid.UUID, filename string) string {
	return fmt.Sprintf("%s/%d-%s", trialID, s.now().UnixMilli(), SanitizeFilename(filename))
}

// UploadBatch performs the uploads strictly sequentially: one file's round
// trip completes, success or error, before the next begins. Per-file
// failures never abort sibling files. Returns the created documents plus a
// parallel error list for the files that failed.
func (s *DocumentService) UploadBatch(ctx context.Context, userID int64, requests []UploadRequest, progress ProgressFunc) ([]Document, []UploadError) {
	if progress == nil {
		progress = func(int, UploadProgressEntry) {}
	}

	var created []Document
	var failures []UploadError

	for i, req := range requests {
		progress(i, UploadProgressEntry{FileName: req.File.Name, Progress: 0, Status: StatusPending})
		progress(i, UploadProgressEntry{FileName: req.File.Name, Progress: 10, Status: StatusUploading})

		doc, err := s.uploadOne(ctx, userID, req)
		if err != nil {
			failures = append(failures, UploadError{FileName: req.File.Name, Message: err.Error()})
			progress(i, UploadProgressEntry{
				FileName: req.File.Name,
				Progress: 100,
				Status:   StatusError,
				Error:    err.Error(),
			})
			continue
		}

		created = append(created, *doc)
		progress(i, UploadProgressEntry{
			FileName: req.File.Name,
			Progress: 100,
			Status:   StatusSuccess,
			Document: doc,
		})
	}

	if len(created) > 0 {
		// Read-your-writes: drop cached listings for every touched trial.
		invalidated := map[uuid.UUID]bool{}
		for _, doc := range created {
			if !invalidated[doc.TrialID] {
				s.cache.InvalidateTrial(ctx, doc.TrialID)
				invalidated[doc.TrialID] = true
			}
		}
	}

	s.sendSummary(userID, len(created), len(failures))

	return created, failures
}

func (s *DocumentService) uploadOne(ctx context.Context, userID int64, req UploadRequest) (*Document, error) {
	key := s.storageKey(req.TrialID, req.File.Name)

	reader, err := req.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	if err := s.store.Upload(ctx, key, reader, req.File.Size, req.File.ContentType); err != nil {
		return nil, fmt.Errorf("storage upload failed: %w", err)
	}

	// The object is uploaded before attribution is resolved; a failure here
	// leaves it orphaned. Accepted trade-off, no compensating delete.
	member, err := s.members.GetMemberByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("member not found for uploading user: %w", err)
	}

	isLatest := true
	if IsVersionedType(req.DocumentType) {
		isLatest = s.reconcileLatest(req.TrialID, req.DocumentType)
	}

	doc := &Document{
		ID:              uuid.New(),
		TrialID:         req.TrialID,
		Name:            req.File.Name,
		DocumentType:    req.DocumentType,
		StoragePath:     key,
		URL:             s.store.PublicURL(key),
		UploadedBy:      member.ID,
		Status:          "active",
		FileSize:        req.File.Size,
		MimeType:        req.File.ContentType,
		Version:         1,
		IsLatest:        isLatest,
		Description:     req.Description,
		Tags:            pq.StringArray(req.Tags),
		AmendmentNumber: req.AmendmentNumber,
	}

	if err := s.repo.CreateDocument(doc); err != nil {
		// The stored object stays behind; at-least-once storage,
		// at-most-once metadata.
		return nil, fmt.Errorf("failed to insert document record: %w", err)
	}

	return doc, nil
}

// reconcileLatest flips the current latest record of the (trial, type) pair
// to not-latest and reports whether the new record may claim the flag. Any
// failure degrades to inserting the new document as not-latest instead of
// failing the upload.
func (s *DocumentService) reconcileLatest(trialID uuid.UUID, documentType string) bool {
	current, err := s.repo.GetLatest(trialID, documentType)
	if err != nil {
		log.Printf("Warning: latest-flag lookup failed for trial %s type %s: %v", trialID, documentType, err)
		return false
	}

	if current != nil {
		if err := s.repo.SetLatest(current.ID, false); err != nil {
			log.Printf("Warning: failed to clear latest flag on document %s: %v", current.ID, err)
			return false
		}
	}

	return true
}

func (s *DocumentService) sendSummary(userID int64, succeeded, failed int) {
	if s.notify == nil || succeeded+failed == 0 {
		return
	}

	member, err := s.members.GetMemberByUserID(userID)
	if err != nil {
		log.Printf("Warning: cannot resolve member for upload summary: %v", err)
		return
	}

	var title, body string
	if succeeded == 0 {
		title = "Document upload failed"
		body = fmt.Sprintf("All %d document(s) failed to upload", failed)
	} else {
		title = "Documents uploaded"
		body = fmt.Sprintf("%d document(s) uploaded successfully, %d failed", succeeded, failed)
	}

	if err := s.notify.Notify(member.ID, title, body); err != nil {
		log.Printf("Warning: failed to create upload summary notification: %v", err)
	}
}

func (s *DocumentService) List(ctx context.Context, filter DocumentFilter) ([]Document, int, error) {
	type cached struct {
		Documents []Document `json:"documents"`
		Total     int        `json:"total"`
	}

	key := listKey(filter)
	if key != "" {
		var hit cached
		if s.cache.Get(ctx, key, &hit) {
			return hit.Documents, hit.Total, nil
		}
	}

	documents, err := s.repo.GetAll(filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.GetTotal(filter)
	if err != nil {
		return nil, 0, err
	}

	if key != "" {
		s.cache.Set(ctx, key, cached{Documents: documents, Total: total})
	}

	return documents, total, nil
}

func (s *DocumentService) GetByID(id uuid.UUID) (*Document, error) {
	return s.repo.GetByID(id)
}

func (s *DocumentService) Update(ctx context.Context, id uuid.UUID, req *UpdateDocumentRequest) (*Document, error) {
	doc, err := s.repo.UpdateDocument(id, req)
	if err != nil {
		return nil, err
	}
	if doc != nil {
		s.cache.InvalidateTrial(ctx, doc.TrialID)
	}
	return doc, nil
}

// Delete removes the backing object on a best-effort basis, then removes
// the metadata record unconditionally.
func (s *DocumentService) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := s.repo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to fetch document: %w", err)
	}
	if doc == nil {
		return nil
	}

	if err := s.store.Remove(ctx, doc.StoragePath); err != nil {
		log.Printf("Warning: failed to remove stored object %s: %v", doc.StoragePath, err)
	}

	if err := s.repo.DeleteDocument(id); err != nil {
		return fmt.Errorf("failed to delete document record: %w", err)
	}

	s.cache.InvalidateTrial(ctx, doc.TrialID)
	return nil
}
