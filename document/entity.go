package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	TypeProtocol  = "protocol"
	TypeBrochure  = "brochure"
	TypeConsent   = "consent_form"
	TypeReport    = "report"
	TypeManual    = "manual"
	TypePlan      = "plan"
	TypeAmendment = "amendment"
	TypeICF       = "icf"
	TypeCRF       = "case_report_form"
	TypeSOP       = "standard_operating_procedure"
	TypeOther     = "other"
)

// versionedTypes are the document types where only one record per trial may
// carry is_latest = true. All other types keep is_latest set on insert and
// are never reconciled, so several "latest" documents of the same type can
// coexist.
var versionedTypes = map[string]bool{
	TypeProtocol:  true,
	TypeAmendment: true,
}

func IsVersionedType(documentType string) bool {
	return versionedTypes[documentType]
}

type Document struct {
	ID              uuid.UUID      `db:"id" json:"id"`
	TrialID         uuid.UUID      `db:"trial_id" json:"trial_id"`
	Name            string         `db:"name" json:"name"`
	DocumentType    string         `db:"document_type" json:"document_type"`
	StoragePath     string         `db:"storage_path" json:"storage_path"`
	URL             string         `db:"url" json:"url"`
	UploadedBy      int            `db:"uploaded_by" json:"uploaded_by"`
	UploaderName    *string        `db:"uploader_name" json:"uploader_name,omitempty"`
	Status          string         `db:"status" json:"status"`
	FileSize        int64          `db:"file_size" json:"file_size"`
	MimeType        string         `db:"mime_type" json:"mime_type"`
	Version         int            `db:"version" json:"version"`
	IsLatest        bool           `db:"is_latest" json:"is_latest"`
	Description     *string        `db:"description" json:"description"`
	Tags            pq.StringArray `db:"tags" json:"tags"`
	AmendmentNumber *int           `db:"amendment_number" json:"amendment_number"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}

type DocumentFilter struct {
	TrialID      *uuid.UUID
	DocumentType string
	Status       string
	IsLatest     *bool
	WithUploader bool
	Limit        int
	Offset       int
}

type UpdateDocumentRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
	Status      *string  `json:"status"`
}
