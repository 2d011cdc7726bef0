package document

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type DocumentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) CreateDocument(doc *Document) error {
	query := `
		INSERT INTO documents
		(id, trial_id, name, document_type, storage_path, url, uploaded_by, status,
		 file_size, mime_type, version, is_latest, description, tags, amendment_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRow(
		query,
		doc.ID,
		doc.TrialID,
		doc.Name,
		doc.DocumentType,
		doc.StoragePath,
		doc.URL,
		doc.UploadedBy,
		doc.Status,
		doc.FileSize,
		doc.MimeType,
		doc.Version,
		doc.IsLatest,
		doc.Description,
		doc.Tags,
		doc.AmendmentNumber,
	).Scan(&doc.CreatedAt, &doc.UpdatedAt)
}

func (r *DocumentRepository) GetAll(filter DocumentFilter) ([]Document, error) {
	conditions, args, argIndex := r.buildFilters(filter)

	base := `
		SELECT
			d.id, d.trial_id, d.name, d.document_type, d.storage_path, d.url,
			d.uploaded_by, d.status, d.file_size, d.mime_type, d.version,
			d.is_latest, d.description, d.tags, d.amendment_number,
			d.created_at, d.updated_at
	`
	if filter.WithUploader {
		base += `, m.display_name AS uploader_name`
	}
	base += `
		FROM documents d
	`
	if filter.WithUploader {
		base += ` LEFT JOIN members m ON m.id = d.uploaded_by`
	}
	base += ` WHERE 1=1`

	query := base
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY d.created_at DESC"

	limit, offset := r.ensurePagination(filter.Limit, filter.Offset)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	var documents []Document
	if err := r.db.Select(&documents, query, args...); err != nil {
		return nil, err
	}
	return documents, nil
}

func (r *DocumentRepository) GetTotal(filter DocumentFilter) (int, error) {
	conditions, args, _ := r.buildFilters(filter)

	query := `SELECT COUNT(*) FROM documents d WHERE 1=1`
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	var total int
	err := r.db.QueryRow(query, args...).Scan(&total)
	return total, err
}

func (r *DocumentRepository) buildFilters(filter DocumentFilter) ([]string, []interface{}, int) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.TrialID != nil {
		conditions = append(conditions, fmt.Sprintf("d.trial_id = $%d", argIndex))
		args = append(args, *filter.TrialID)
		argIndex++
	}

	if filter.DocumentType != "" {
		conditions = append(conditions, fmt.Sprintf("d.document_type = $%d", argIndex))
		args = append(args, filter.DocumentType)
		argIndex++
	}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("d.status = $%d", argIndex))
		args = append(args, filter.Status)
		argIndex++
	}

	if filter.IsLatest != nil {
		conditions = append(conditions, fmt.Sprintf("d.is_latest = $%d", argIndex))
		args = append(args, *filter.IsLatest)
		argIndex++
	}

	return conditions, args, argIndex
}

func (r *DocumentRepository) ensurePagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// GetByID returns (nil, nil) when no document exists; only transport
// failures surface as errors.
func (r *DocumentRepository) GetByID(id uuid.UUID) (*Document, error) {
	var doc Document
	query := `
		SELECT
			d.id, d.trial_id, d.name, d.document_type, d.storage_path, d.url,
			d.uploaded_by, d.status, d.file_size, d.mime_type, d.version,
			d.is_latest, d.description, d.tags, d.amendment_number,
			d.created_at, d.updated_at,
			m.display_name AS uploader_name
		FROM documents d
		LEFT JOIN members m ON m.id = d.uploaded_by
		WHERE d.id = $1
	`
	err := r.db.Get(&doc, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetLatest fetches the current latest record of the (trial, type) pair.
// Returns (nil, nil) when none exists.
func (r *DocumentRepository) GetLatest(trialID uuid.UUID, documentType string) (*Document, error) {
	var doc Document
	query := `
		SELECT
			d.id, d.trial_id, d.name, d.document_type, d.storage_path, d.url,
			d.uploaded_by, d.status, d.file_size, d.mime_type, d.version,
			d.is_latest, d.description, d.tags, d.amendment_number,
			d.created_at, d.updated_at
		FROM documents d
		WHERE d.trial_id = $1 AND d.document_type = $2 AND d.is_latest = true
		ORDER BY d.created_at DESC
		LIMIT 1
	`
	err := r.db.Get(&doc, query, trialID, documentType)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepository) SetLatest(id uuid.UUID, isLatest bool) error {
	query := `UPDATE documents SET is_latest = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(query, isLatest, id)
	return err
}

// UpdateDocument applies a partial metadata update. Type and trial are
// immutable after creation.
func (r *DocumentRepository) UpdateDocument(id uuid.UUID, req *UpdateDocumentRequest) (*Document, error) {
	var sets []string
	var args []interface{}
	argIndex := 1

	if req.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", argIndex))
		args = append(args, *req.Name)
		argIndex++
	}
	if req.Description != nil {
		sets = append(sets, fmt.Sprintf("description = $%d", argIndex))
		args = append(args, *req.Description)
		argIndex++
	}
	if req.Tags != nil {
		sets = append(sets, fmt.Sprintf("tags = $%d", argIndex))
		args = append(args, pq.StringArray(req.Tags))
		argIndex++
	}
	if req.Status != nil {
		sets = append(sets, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, *req.Status)
		argIndex++
	}

	if len(sets) == 0 {
		return r.GetByID(id)
	}

	sets = append(sets, "updated_at = NOW()")
	query := fmt.Sprintf(`
		UPDATE documents SET %s
		WHERE id = $%d
		RETURNING id, trial_id, name, document_type, storage_path, url,
			uploaded_by, status, file_size, mime_type, version, is_latest,
			description, tags, amendment_number, created_at, updated_at
	`, strings.Join(sets, ", "), argIndex)
	args = append(args, id)

	var doc Document
	err := r.db.Get(&doc, query, args...)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepository) DeleteDocument(id uuid.UUID) error {
	_, err := r.db.Exec(`DELETE FROM documents WHERE id = $1`, id)
	return err
}
