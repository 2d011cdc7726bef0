package document

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"themison-be/organization"
)

// recordingStore keeps the bytes of every stored object so tests can check
// which file each upload actually read.
type recordingStore struct {
	keys     []string
	contents []string
}

func (s *recordingStore) Upload(_ context.Context, objectName string, r io.Reader, _ int64, _ string) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.keys = append(s.keys, objectName)
	s.contents = append(s.contents, string(b))
	return nil
}

func (s *recordingStore) PublicURL(objectName string) string {
	return "http://files.local/" + objectName
}

func (s *recordingStore) Remove(context.Context, string) error { return nil }

func newUploadRouter(store ObjectStore) (*gin.Engine, *fakeRepo) {
	gin.SetMode(gin.TestMode)
	repo := &fakeRepo{}
	members := &fakeMembers{member: &organization.Member{ID: 7, DisplayName: "Dr. Chen"}}
	svc := NewDocumentService(repo, store, members, &fakeCache{}, &fakeNotifier{})
	handler := NewDocumentHandler(svc, NewValidator())

	r := gin.New()
	r.POST("/api/trials/:id/documents", func(c *gin.Context) {
		c.Set("user_id", int64(1))
	}, handler.UploadDocuments)
	return r, repo
}

func TestUploadDocumentsDuplicateNamesKeepDistinctContents(t *testing.T) {
	store := &recordingStore{}
	r, repo := newUploadRouter(store)

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	for _, content := range []string{"alpha", "beta"} {
		part, err := form.CreateFormFile("files", "consent.pdf")
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, form.WriteField("document_type", TypeConsent))
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/trials/"+uuid.NewString()+"/documents", body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Len(t, repo.docs, 2)
	assert.ElementsMatch(t, []string{"alpha", "beta"}, store.contents,
		"same-named files in one batch must each upload their own bytes")
}
