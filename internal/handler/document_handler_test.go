// Package handler 文档上传接口单元测试
package handler

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/gin-gonic/gin"

	"github.com/wadesk/wadesk/internal/config"
	"github.com/wadesk/wadesk/internal/model"
	"github.com/wadesk/wadesk/internal/service"
	"github.com/wadesk/wadesk/internal/service/ai"
	"github.com/wadesk/wadesk/internal/service/knowledge"
)

// ========== fakes ==========

type fakeDocumentStore struct {
	docs   []*model.Document
	chunks []*model.Chunk
}

func (s *fakeDocumentStore) CreateDocument(doc *model.Document) error {
	s.docs = append(s.docs, doc)
	return nil
}

func (s *fakeDocumentStore) GetDocumentByID(id string) (*model.Document, error) {
	return nil, errors.New("not found")
}

func (s *fakeDocumentStore) ListDocuments(clientID string) ([]*model.Document, error) {
	return s.docs, nil
}

func (s *fakeDocumentStore) DeleteDocument(id string) error { return nil }

func (s *fakeDocumentStore) CreateChunk(chunk *model.Chunk) error {
	s.chunks = append(s.chunks, chunk)
	return nil
}

func (s *fakeDocumentStore) CountChunksByDocumentID(docID string) (int64, error) {
	return int64(len(s.chunks)), nil
}

type fakeEmbedder struct{}

func (e *fakeEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	vectors := make([][]float64, len(texts))
	for i := range texts {
		vectors[i] = []float64{0.1, 0.2}
	}
	return vectors, nil
}

func newUploadTestHandler(maxFileSize int64) (*DocumentHandler, *fakeDocumentStore) {
	store := &fakeDocumentStore{}
	svc := &service.Services{
		Knowledge: knowledge.NewService(store, ai.NewClient(nil, &fakeEmbedder{})),
		Config: &config.Config{
			Upload: config.UploadConfig{MaxFileSize: maxFileSize},
		},
	}
	return NewDocumentHandler(svc), store
}

// multipartUpload 构造带 Content-Type 的 multipart 上传请求
func multipartUpload(t *testing.T, filename, contentType, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("CreatePart() unexpected error: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("Write() unexpected error: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// ========== Upload 测试 ==========

func TestUpload_StatusOK(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, store := newUploadTestHandler(10 << 20)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartUpload(t, "notes.txt", "text/plain", "some knowledge base content")

	h.Upload(c)

	if w.Code != http.StatusOK {
		t.Errorf("Upload() status = %d, want %d", w.Code, http.StatusOK)
	}
	if len(store.docs) != 1 {
		t.Errorf("documents created = %d, want 1", len(store.docs))
	}
	if !strings.Contains(w.Body.String(), "document_id") {
		t.Errorf("response body missing document_id: %s", w.Body.String())
	}
}

func TestUpload_UnsupportedMimeType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, store := newUploadTestHandler(10 << 20)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartUpload(t, "photo.png", "image/png", "binary")

	h.Upload(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Upload() status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if len(store.docs) != 0 {
		t.Errorf("documents created = %d, want 0", len(store.docs))
	}
}

func TestUpload_FileTooLarge(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, store := newUploadTestHandler(16)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartUpload(t, "big.txt", "text/plain", strings.Repeat("a", 64))

	h.Upload(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Upload() status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if len(store.docs) != 0 {
		t.Errorf("documents created = %d, want 0", len(store.docs))
	}
}

func TestUpload_MissingFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _ := newUploadTestHandler(10 << 20)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/documents/upload", nil)

	h.Upload(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Upload() status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
