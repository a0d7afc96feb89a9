// api/handlers/document_handler_integration_test.go
package handlers_test

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Annany2002/docvault-backend/api/models"
	"github.com/Annany2002/docvault-backend/config"
)

type saveForm struct {
	email    string
	filename string
	fileType string
	rows     int
	cols     int
	content  []byte
	noFile   bool
}

// saveDocument posts a multipart upload the way the browser client does.
func saveDocument(t *testing.T, server *httptest.Server, form saveForm) *http.Response {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fields := map[string]string{
		"email":     form.email,
		"filename":  form.filename,
		"file_type": form.fileType,
		"row_count": strconv.Itoa(form.rows),
		"col_count": strconv.Itoa(form.cols),
	}
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	if !form.noFile {
		part, err := writer.CreateFormFile("file", form.filename)
		require.NoError(t, err)
		_, err = part.Write(form.content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, server.URL+"/documents/save", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func mustSaveDocument(t *testing.T, server *httptest.Server, form saveForm) int64 {
	t.Helper()
	res := saveDocument(t, server, form)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body models.SaveDocumentResponse
	decodeJSON(t, res, &body)
	require.True(t, body.Success)
	return body.DocumentID
}

func doRequest(t *testing.T, method, rawURL string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, rawURL, nil)
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func listDocuments(t *testing.T, server *httptest.Server, email string) models.ListDocumentsResponse {
	t.Helper()
	res := doRequest(t, http.MethodGet, server.URL+"/documents/list?"+url.Values{"email": {email}}.Encode())
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body models.ListDocumentsResponse
	decodeJSON(t, res, &body)
	return body
}

func documentURL(server *httptest.Server, id int64, suffix string, query url.Values) string {
	return fmt.Sprintf("%s/documents/%d%s?%s", server.URL, id, suffix, query.Encode())
}

func TestDocumentEndpoints(t *testing.T) {
	server, _ := setupTestServer(t)

	alice := "alice@example.com"
	bob := "bob@example.com"
	signup(t, server, "Alice", alice, "pw-alice")
	signup(t, server, "Bob", bob, "pw-bob")

	csv := []byte("a,b\n1,2\n")
	var reportID int64

	t.Run("Save creates a document", func(t *testing.T) {
		reportID = mustSaveDocument(t, server, saveForm{email: alice, filename: "report.csv", fileType: "csv", rows: 10, cols: 3, content: csv})
		assert.Positive(t, reportID)

		list := listDocuments(t, server, alice)
		require.Len(t, list.Documents, 1)
		assert.Equal(t, "report.csv", list.Documents[0].Filename)
		assert.Equal(t, "csv", list.Documents[0].ContentType)
		assert.Equal(t, 10, list.Documents[0].RowCount)
	})

	t.Run("Save with same filename overwrites", func(t *testing.T) {
		id := mustSaveDocument(t, server, saveForm{email: alice, filename: "report.csv", fileType: "csv", rows: 12, cols: 3, content: []byte("x\n")})
		assert.Equal(t, reportID, id)

		list := listDocuments(t, server, alice)
		require.Len(t, list.Documents, 1)
		assert.Equal(t, 12, list.Documents[0].RowCount)
		assert.True(t, !list.Documents[0].UpdatedAt.Before(list.Documents[0].CreatedAt))
	})

	t.Run("Download returns hex content", func(t *testing.T) {
		res := doRequest(t, http.MethodGet, documentURL(server, reportID, "/download", url.Values{"email": {alice}}))
		require.Equal(t, http.StatusOK, res.StatusCode)

		var body models.DownloadDocumentResponse
		decodeJSON(t, res, &body)
		assert.Equal(t, "report.csv", body.Filename)
		assert.Equal(t, "csv", body.FileType)
		assert.Equal(t, hex.EncodeToString([]byte("x\n")), body.FileData)
	})

	t.Run("List is newest first and excludes content", func(t *testing.T) {
		time.Sleep(2 * time.Millisecond)
		mustSaveDocument(t, server, saveForm{email: alice, filename: "later.json", fileType: ".JSON", rows: 1, cols: 1, content: []byte(`[{"a":1}]`)})

		res := doRequest(t, http.MethodGet, server.URL+"/documents/list?email="+url.QueryEscape(alice))
		require.Equal(t, http.StatusOK, res.StatusCode)

		var raw struct {
			Documents []map[string]any `json:"documents"`
		}
		decodeJSON(t, res, &raw)
		require.Len(t, raw.Documents, 2)
		assert.Equal(t, "later.json", raw.Documents[0]["filename"])
		assert.Equal(t, "json", raw.Documents[0]["file_type"])
		assert.Equal(t, "report.csv", raw.Documents[1]["filename"])
		for _, doc := range raw.Documents {
			assert.NotContains(t, doc, "content")
			assert.NotContains(t, doc, "file_data")
		}
	})

	t.Run("Other owners cannot see the document", func(t *testing.T) {
		assert.Empty(t, listDocuments(t, server, bob).Documents)

		res := doRequest(t, http.MethodGet, documentURL(server, reportID, "/download", url.Values{"email": {bob}}))
		assert.Equal(t, http.StatusNotFound, res.StatusCode)

		res = doRequest(t, http.MethodPut, documentURL(server, reportID, "/rename", url.Values{"email": {bob}, "new_name": {"stolen.csv"}}))
		assert.Equal(t, http.StatusNotFound, res.StatusCode)

		res = doRequest(t, http.MethodDelete, documentURL(server, reportID, "", url.Values{"email": {bob}}))
		assert.Equal(t, http.StatusNotFound, res.StatusCode)

		// Still intact for the owner
		require.Len(t, listDocuments(t, server, alice).Documents, 2)
	})

	t.Run("Foreign and missing documents look the same", func(t *testing.T) {
		foreign := doRequest(t, http.MethodGet, documentURL(server, reportID, "/download", url.Values{"email": {bob}}))
		missing := doRequest(t, http.MethodGet, documentURL(server, 999999, "/download", url.Values{"email": {bob}}))
		require.Equal(t, foreign.StatusCode, missing.StatusCode)

		var foreignBody, missingBody map[string]string
		decodeJSON(t, foreign, &foreignBody)
		decodeJSON(t, missing, &missingBody)
		assert.Equal(t, missingBody, foreignBody)
	})

	t.Run("Rename keeps content", func(t *testing.T) {
		res := doRequest(t, http.MethodPut, documentURL(server, reportID, "/rename", url.Values{"email": {alice}, "new_name": {"q1.csv"}}))
		require.Equal(t, http.StatusOK, res.StatusCode)

		res = doRequest(t, http.MethodGet, documentURL(server, reportID, "/download", url.Values{"email": {alice}}))
		require.Equal(t, http.StatusOK, res.StatusCode)
		var body models.DownloadDocumentResponse
		decodeJSON(t, res, &body)
		assert.Equal(t, "q1.csv", body.Filename)
		assert.Equal(t, hex.EncodeToString([]byte("x\n")), body.FileData)
	})

	t.Run("Rename without new_name is rejected", func(t *testing.T) {
		res := doRequest(t, http.MethodPut, documentURL(server, reportID, "/rename", url.Values{"email": {alice}}))
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("Delete removes the document", func(t *testing.T) {
		res := doRequest(t, http.MethodDelete, documentURL(server, reportID, "", url.Values{"email": {alice}}))
		require.Equal(t, http.StatusOK, res.StatusCode)

		res = doRequest(t, http.MethodGet, documentURL(server, reportID, "/download", url.Values{"email": {alice}}))
		assert.Equal(t, http.StatusNotFound, res.StatusCode)

		res = doRequest(t, http.MethodDelete, documentURL(server, reportID, "", url.Values{"email": {alice}}))
		assert.Equal(t, http.StatusNotFound, res.StatusCode)

		list := listDocuments(t, server, alice)
		require.Len(t, list.Documents, 1)
		assert.Equal(t, "later.json", list.Documents[0].Filename)
	})
}

func TestDocumentEndpointsRejectBadInput(t *testing.T) {
	server, _ := setupTestServer(t, func(cfg *config.Config) {
		cfg.MaxUploadBytes = 64
	})

	email := "carol@example.com"
	signup(t, server, "Carol", email, "pw")

	tests := []struct {
		name       string
		form       saveForm
		wantStatus int
	}{
		{
			name:       "Unknown email",
			form:       saveForm{email: "ghost@example.com", filename: "a.csv", fileType: "csv", content: []byte("a")},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "Missing email",
			form:       saveForm{filename: "a.csv", fileType: "csv", content: []byte("a")},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Missing file",
			form:       saveForm{email: email, filename: "a.csv", fileType: "csv", noFile: true},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Unsupported file type",
			form:       saveForm{email: email, filename: "a.exe", fileType: "exe", content: []byte("a")},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Filename too long",
			form:       saveForm{email: email, filename: strings.Repeat("n", 256), fileType: "csv", content: []byte("a")},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Negative row count",
			form:       saveForm{email: email, filename: "a.csv", fileType: "csv", rows: -1, content: []byte("a")},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "File too large",
			form:       saveForm{email: email, filename: "big.csv", fileType: "csv", content: bytes.Repeat([]byte("x"), 65)},
			wantStatus: http.StatusRequestEntityTooLarge,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := saveDocument(t, server, tc.form)
			assert.Equal(t, tc.wantStatus, res.StatusCode)

			var body map[string]string
			decodeJSON(t, res, &body)
			assert.NotEmpty(t, body["error"])
		})
	}

	assert.Empty(t, listDocuments(t, server, email).Documents, "rejected uploads must not be stored")

	t.Run("Empty file is accepted", func(t *testing.T) {
		id := mustSaveDocument(t, server, saveForm{email: email, filename: "empty.csv", fileType: "csv", content: []byte{}})

		res := doRequest(t, http.MethodGet, documentURL(server, id, "/download", url.Values{"email": {email}}))
		require.Equal(t, http.StatusOK, res.StatusCode)
		var body models.DownloadDocumentResponse
		decodeJSON(t, res, &body)
		assert.Equal(t, "", body.FileData)
	})

	t.Run("Non-numeric document id", func(t *testing.T) {
		res := doRequest(t, http.MethodGet, server.URL+"/documents/abc/download?email="+url.QueryEscape(email))
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("List for unknown email", func(t *testing.T) {
		res := doRequest(t, http.MethodGet, server.URL+"/documents/list?email=nobody%40example.com")
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})
}
