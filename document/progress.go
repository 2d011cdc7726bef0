package document

type UploadStatus string

const (
	StatusPending   UploadStatus = "pending"
	StatusUploading UploadStatus = "uploading"
	StatusSuccess   UploadStatus = "success"
	StatusError     UploadStatus = "error"
)

// UploadProgressEntry reports the state of one file in a batch. Entries are
// ephemeral: they exist only for the duration of the orchestrated upload and
// are delivered through the progress callback in submission order.
type UploadProgressEntry struct {
	FileName string       `json:"file_name"`
	Progress int          `json:"progress"`
	Status   UploadStatus `json:"status"`
	Error    string       `json:"error,omitempty"`
	Document *Document    `json:"document,omitempty"`
}

// ProgressFunc observes per-file upload progress. index is the position of
// the file in the submitted batch.
type ProgressFunc func(index int, entry UploadProgressEntry)
