package document

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBatchRejectsOversizeOnce(t *testing.T) {
	v := NewValidator()

	candidates := []FileCandidate{
		{Name: "protocol.pdf", Size: DefaultMaxFileSize + 1, ContentType: "application/pdf"},
		{Name: "consent.pdf", Size: 1024, ContentType: "application/pdf"},
	}

	rejections := map[string]int{}
	accepted := v.ValidateBatch(0, candidates, func(name, reason string) {
		rejections[name]++
		assert.Contains(t, reason, "maximum file size")
	})

	require.Len(t, accepted, 1)
	assert.Equal(t, "consent.pdf", accepted[0].Name)
	assert.Equal(t, 1, rejections["protocol.pdf"])
}

func TestValidateBatchRejectsDisallowedType(t *testing.T) {
	v := NewValidator()

	candidates := []FileCandidate{
		{Name: "malware.exe", Size: 10, ContentType: "application/octet-stream"},
		{Name: "notes.txt", Size: 10, ContentType: "text/plain"},
	}

	var rejected []string
	accepted := v.ValidateBatch(0, candidates, func(name, reason string) {
		rejected = append(rejected, name)
		assert.Contains(t, reason, "unsupported file type")
	})

	require.Len(t, accepted, 1)
	assert.Equal(t, []string{"malware.exe"}, rejected)
}

func TestValidateBatchAcceptsByExtensionWhenMimeIsGeneric(t *testing.T) {
	v := NewValidator()

	candidates := []FileCandidate{
		{Name: "scan.PDF", Size: 10, ContentType: "application/octet-stream"},
	}

	accepted := v.ValidateBatch(0, candidates, nil)
	require.Len(t, accepted, 1)
}

func TestValidateBatchCapsToRemainingSlots(t *testing.T) {
	v := NewValidator()

	var candidates []FileCandidate
	for i := 0; i < 8; i++ {
		candidates = append(candidates, FileCandidate{
			Name:        fmt.Sprintf("doc-%d.pdf", i),
			Size:        10,
			ContentType: "application/pdf",
		})
	}

	rejectCalls := 0
	accepted := v.ValidateBatch(2, candidates, func(string, string) { rejectCalls++ })

	// 5 max minus 2 pending leaves 3 slots; overflow is dropped silently.
	assert.Len(t, accepted, 3)
	assert.Equal(t, 0, rejectCalls)
	for i, c := range accepted {
		assert.Equal(t, fmt.Sprintf("doc-%d.pdf", i), c.Name)
	}
}

func TestValidateBatchPendingAtOrOverCap(t *testing.T) {
	v := NewValidator()

	candidates := []FileCandidate{
		{Name: "doc.pdf", Size: 10, ContentType: "application/pdf"},
	}

	assert.Empty(t, v.ValidateBatch(v.MaxFiles, candidates, nil))
	assert.Empty(t, v.ValidateBatch(v.MaxFiles+3, candidates, nil))
}

func TestValidateBatchEmptyInput(t *testing.T) {
	v := NewValidator()

	assert.NotPanics(t, func() {
		accepted := v.ValidateBatch(0, nil, nil)
		assert.Empty(t, accepted)
	})
}
