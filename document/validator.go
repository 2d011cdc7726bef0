package document

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	DefaultMaxFileSize = 50 * 1024 * 1024
	DefaultMaxFiles    = 5
)

var allowedMimeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"text/plain": true,
	"image/jpeg": true,
	"image/png":  true,
}

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".xls":  true,
	".xlsx": true,
	".txt":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// FileCandidate describes one file offered for upload, decoupled from the
// multipart transport so the validator and orchestrator can be exercised
// without an HTTP request.
type FileCandidate struct {
	Name        string
	Size        int64
	ContentType string
}

type Validator struct {
	MaxFileSize int64
	MaxFiles    int
}

func NewValidator() *Validator {
	return &Validator{
		MaxFileSize: DefaultMaxFileSize,
		MaxFiles:    DefaultMaxFiles,
	}
}

// ValidateBatch filters candidates against the size ceiling and type
// allow-list, invoking onReject once per rejected file. The accepted set is
// capped so that pendingCount plus the result never exceeds MaxFiles; files
// past the cap are dropped silently, not queued. Never panics, never
// returns an error.
func (v *Validator) ValidateBatch(pendingCount int, candidates []FileCandidate, onReject func(name, reason string)) []FileCandidate {
	if onReject == nil {
		onReject = func(string, string) {}
	}

	var accepted []FileCandidate
	for _, c := range candidates {
		if c.Size > v.MaxFileSize {
			onReject(c.Name, fmt.Sprintf("%s exceeds the maximum file size of %dMB", c.Name, v.MaxFileSize/(1024*1024)))
			continue
		}
		if !typeAllowed(c) {
			onReject(c.Name, fmt.Sprintf("%s has an unsupported file type", c.Name))
			continue
		}
		accepted = append(accepted, c)
	}

	room := v.MaxFiles - pendingCount
	if room < 0 {
		room = 0
	}
	if len(accepted) > room {
		accepted = accepted[:room]
	}

	return accepted
}

func typeAllowed(c FileCandidate) bool {
	if allowedMimeTypes[strings.ToLower(c.ContentType)] {
		return true
	}
	return allowedExtensions[strings.ToLower(filepath.Ext(c.Name))]
}
