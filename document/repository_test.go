package document

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*DocumentRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "sqlmock")
	return NewDocumentRepository(db), mock
}

func documentColumns() []string {
	return []string{
		"id", "trial_id", "name", "document_type", "storage_path", "url",
		"uploaded_by", "status", "file_size", "mime_type", "version",
		"is_latest", "description", "tags", "amendment_number",
		"created_at", "updated_at",
	}
}

func TestCreateDocumentReturnsTimestamps(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	doc := &Document{
		ID:           uuid.New(),
		TrialID:      uuid.New(),
		Name:         "protocol.pdf",
		DocumentType: TypeProtocol,
		StoragePath:  "key/protocol.pdf",
		URL:          "http://files.local/key/protocol.pdf",
		UploadedBy:   7,
		Status:       "active",
		FileSize:     128,
		MimeType:     "application/pdf",
		Version:      1,
		IsLatest:     true,
		Tags:         pq.StringArray{"safety"},
	}

	mock.ExpectQuery(`INSERT INTO documents`).
		WithArgs(
			doc.ID, doc.TrialID, doc.Name, doc.DocumentType, doc.StoragePath,
			doc.URL, doc.UploadedBy, doc.Status, doc.FileSize, doc.MimeType,
			doc.Version, doc.IsLatest, doc.Description, doc.Tags, doc.AmendmentNumber,
		).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	require.NoError(t, repo.CreateDocument(doc))
	assert.Equal(t, now, doc.CreatedAt)
	assert.Equal(t, now, doc.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFoundReturnsNilNil(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	cols := append(documentColumns(), "uploader_name")
	mock.ExpectQuery(`SELECT(.|\n)+FROM documents d(.|\n)+WHERE d\.id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(cols))

	doc, err := repo.GetByID(id)
	require.NoError(t, err, "missing document is not an error")
	assert.Nil(t, doc)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLatestNoneReturnsNilNil(t *testing.T) {
	repo, mock := newMockRepo(t)

	trialID := uuid.New()
	mock.ExpectQuery(`SELECT(.|\n)+WHERE d\.trial_id = \$1 AND d\.document_type = \$2 AND d\.is_latest = true`).
		WithArgs(trialID, TypeProtocol).
		WillReturnRows(sqlmock.NewRows(documentColumns()))

	doc, err := repo.GetLatest(trialID, TypeProtocol)
	require.NoError(t, err)
	assert.Nil(t, doc)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetLatest(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	mock.ExpectExec(`UPDATE documents SET is_latest = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(false, id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetLatest(id, false))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTotalAppliesFilters(t *testing.T) {
	repo, mock := newMockRepo(t)

	trialID := uuid.New()
	latest := true
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM documents d WHERE 1=1 AND d\.trial_id = \$1 AND d\.document_type = \$2 AND d\.is_latest = \$3`).
		WithArgs(trialID, TypeProtocol, latest).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	total, err := repo.GetTotal(DocumentFilter{
		TrialID:      &trialID,
		DocumentType: TypeProtocol,
		IsLatest:     &latest,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllDefaultsPagination(t *testing.T) {
	repo, mock := newMockRepo(t)

	trialID := uuid.New()
	mock.ExpectQuery(`SELECT(.|\n)+FROM documents d(.|\n)+ORDER BY d\.created_at DESC LIMIT \$2 OFFSET \$3`).
		WithArgs(trialID, 20, 0).
		WillReturnRows(sqlmock.NewRows(documentColumns()))

	docs, err := repo.GetAll(DocumentFilter{TrialID: &trialID})
	require.NoError(t, err)
	assert.Empty(t, docs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateDocumentMissingReturnsNilNil(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	name := "renamed.pdf"
	mock.ExpectQuery(`UPDATE documents SET name = \$1, updated_at = NOW\(\)(.|\n)+WHERE id = \$2(.|\n)+RETURNING`).
		WithArgs(name, id).
		WillReturnRows(sqlmock.NewRows(documentColumns()))

	doc, err := repo.UpdateDocument(id, &UpdateDocumentRequest{Name: &name})
	require.NoError(t, err, "updating a missing document is not an error")
	assert.Nil(t, doc)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteDocument(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	mock.ExpectExec(`DELETE FROM documents WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteDocument(id))
	assert.NoError(t, mock.ExpectationsWereMet())
}
