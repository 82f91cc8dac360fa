// Package knowledge 摄取流水线单元测试
package knowledge

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/embedding"

	"github.com/wadesk/wadesk/internal/model"
	"github.com/wadesk/wadesk/internal/service/ai"
)

// ========== fakeDocumentStore ==========

type fakeDocumentStore struct {
	docs       []*model.Document
	chunks     []*model.Chunk
	chunkErr   error
	deletedIDs []string
}

func (s *fakeDocumentStore) CreateDocument(doc *model.Document) error {
	s.docs = append(s.docs, doc)
	return nil
}

func (s *fakeDocumentStore) GetDocumentByID(id string) (*model.Document, error) {
	for _, doc := range s.docs {
		if doc.ID == id {
			return doc, nil
		}
	}
	return nil, errors.New("not found")
}

func (s *fakeDocumentStore) ListDocuments(clientID string) ([]*model.Document, error) {
	return s.docs, nil
}

func (s *fakeDocumentStore) DeleteDocument(id string) error {
	s.deletedIDs = append(s.deletedIDs, id)
	return nil
}

func (s *fakeDocumentStore) CreateChunk(chunk *model.Chunk) error {
	if s.chunkErr != nil {
		return s.chunkErr
	}
	s.chunks = append(s.chunks, chunk)
	return nil
}

func (s *fakeDocumentStore) CountChunksByDocumentID(docID string) (int64, error) {
	var count int64
	for _, chunk := range s.chunks {
		if chunk.DocumentID == docID {
			count++
		}
	}
	return count, nil
}

// ========== fakeEmbedder ==========

// fakeEmbedder 按调用序号决定成功或失败
type fakeEmbedder struct {
	calls   int
	failOn  map[int]bool
	failAll bool
}

func (e *fakeEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	e.calls++
	if e.failAll || e.failOn[e.calls] {
		return nil, errors.New("embedding api error")
	}
	vectors := make([][]float64, len(texts))
	for i := range texts {
		vectors[i] = []float64{0.1, 0.2, 0.3}
	}
	return vectors, nil
}

func newTestService(store *fakeDocumentStore, embedder embedding.Embedder) *Service {
	return NewService(store, ai.NewClient(nil, embedder))
}

// ========== Ingest 测试 ==========

func TestIngest_Success(t *testing.T) {
	store := &fakeDocumentStore{}
	embedder := &fakeEmbedder{}
	svc := newTestService(store, embedder)

	// 2500 字符按 1000/200 切分为 3 块
	result, err := svc.Ingest(context.Background(), &IngestRequest{
		Data:     []byte(strings.Repeat("a", 2500)),
		MimeType: MimeTypeText,
		Filename: "handbook.txt",
	})
	if err != nil {
		t.Fatalf("Ingest() unexpected error: %v", err)
	}

	if result.ChunkCount != 3 {
		t.Errorf("ChunkCount = %d, want 3", result.ChunkCount)
	}
	if len(store.docs) != 1 {
		t.Fatalf("documents created = %d, want 1", len(store.docs))
	}
	if store.docs[0].Title != "handbook" {
		t.Errorf("document title = %q, want %q", store.docs[0].Title, "handbook")
	}
	if len(store.chunks) != 3 {
		t.Errorf("chunks persisted = %d, want 3", len(store.chunks))
	}
	if embedder.calls != 3 {
		t.Errorf("embedder calls = %d, want 3", embedder.calls)
	}

	for i, chunk := range store.chunks {
		if chunk.DocumentID != result.DocumentID {
			t.Errorf("chunk[%d].DocumentID = %q, want %q", i, chunk.DocumentID, result.DocumentID)
		}
		if chunk.Embedding == nil {
			t.Errorf("chunk[%d].Embedding is nil", i)
		}
	}
}

func TestIngest_ExtractionFailureNoWrites(t *testing.T) {
	store := &fakeDocumentStore{}
	embedder := &fakeEmbedder{}
	svc := newTestService(store, embedder)

	_, err := svc.Ingest(context.Background(), &IngestRequest{
		Data:     []byte("binary"),
		MimeType: "image/png",
		Filename: "photo.png",
	})
	if !errors.Is(err, ErrUnsupportedFileType) {
		t.Fatalf("Ingest() error = %v, want ErrUnsupportedFileType", err)
	}

	// 解析失败不产生任何数据库写入，也不触发向量化
	if len(store.docs) != 0 {
		t.Errorf("documents created = %d, want 0", len(store.docs))
	}
	if len(store.chunks) != 0 {
		t.Errorf("chunks persisted = %d, want 0", len(store.chunks))
	}
	if embedder.calls != 0 {
		t.Errorf("embedder calls = %d, want 0", embedder.calls)
	}
}

func TestIngest_PartialEmbeddingFailure(t *testing.T) {
	store := &fakeDocumentStore{}
	embedder := &fakeEmbedder{failOn: map[int]bool{2: true}}
	svc := newTestService(store, embedder)

	result, err := svc.Ingest(context.Background(), &IngestRequest{
		Data:     []byte(strings.Repeat("a", 2500)),
		MimeType: MimeTypeText,
		Filename: "handbook.txt",
	})
	if err != nil {
		t.Fatalf("Ingest() unexpected error: %v", err)
	}

	// 第 2 块向量化失败被跳过，其余继续
	if result.ChunkCount != 2 {
		t.Errorf("ChunkCount = %d, want 2", result.ChunkCount)
	}
	if len(store.chunks) != 2 {
		t.Errorf("chunks persisted = %d, want 2", len(store.chunks))
	}
	if embedder.calls != 3 {
		t.Errorf("embedder calls = %d, want 3", embedder.calls)
	}
}

func TestIngest_AllEmbeddingsFail(t *testing.T) {
	store := &fakeDocumentStore{}
	embedder := &fakeEmbedder{failAll: true}
	svc := newTestService(store, embedder)

	result, err := svc.Ingest(context.Background(), &IngestRequest{
		Data:     []byte(strings.Repeat("a", 2500)),
		MimeType: MimeTypeText,
		Filename: "handbook.txt",
	})
	if err != nil {
		t.Fatalf("Ingest() unexpected error: %v", err)
	}

	// 文档仍然建档，但没有任何分块落库
	if result.ChunkCount != 0 {
		t.Errorf("ChunkCount = %d, want 0", result.ChunkCount)
	}
	if len(store.docs) != 1 {
		t.Errorf("documents created = %d, want 1", len(store.docs))
	}
	if len(store.chunks) != 0 {
		t.Errorf("chunks persisted = %d, want 0", len(store.chunks))
	}
}

func TestIngest_ChunkStoreErrorPropagates(t *testing.T) {
	store := &fakeDocumentStore{chunkErr: errors.New("constraint violation")}
	embedder := &fakeEmbedder{}
	svc := newTestService(store, embedder)

	_, err := svc.Ingest(context.Background(), &IngestRequest{
		Data:     []byte(strings.Repeat("a", 2500)),
		MimeType: MimeTypeText,
		Filename: "handbook.txt",
	})
	if err == nil {
		t.Fatal("Ingest() expected error on chunk persistence failure")
	}
}

// ========== ListDocuments / DeleteDocument 测试 ==========

func TestListDocuments_WithChunkCounts(t *testing.T) {
	store := &fakeDocumentStore{}
	embedder := &fakeEmbedder{}
	svc := newTestService(store, embedder)

	result, err := svc.Ingest(context.Background(), &IngestRequest{
		Data:     []byte(strings.Repeat("a", 2500)),
		MimeType: MimeTypeText,
		Filename: "handbook.txt",
	})
	if err != nil {
		t.Fatalf("Ingest() unexpected error: %v", err)
	}

	summaries, err := svc.ListDocuments(context.Background(), "")
	if err != nil {
		t.Fatalf("ListDocuments() unexpected error: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("ListDocuments() = %d documents, want 1", len(summaries))
	}
	if summaries[0].ID != result.DocumentID {
		t.Errorf("summary ID = %q, want %q", summaries[0].ID, result.DocumentID)
	}
	if summaries[0].ChunkCount != 3 {
		t.Errorf("summary ChunkCount = %d, want 3", summaries[0].ChunkCount)
	}
}

func TestDeleteDocument(t *testing.T) {
	store := &fakeDocumentStore{}
	svc := newTestService(store, &fakeEmbedder{})

	if err := svc.DeleteDocument(context.Background(), "missing-id"); err != nil {
		t.Errorf("DeleteDocument() on missing id = %v, want nil", err)
	}
	if len(store.deletedIDs) != 1 {
		t.Errorf("delete calls = %d, want 1", len(store.deletedIDs))
	}
}
