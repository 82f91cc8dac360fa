// Package chat 聊天服务单元测试
package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	wmodel "github.com/wadesk/wadesk/internal/model"
	"github.com/wadesk/wadesk/internal/service/ai"
)

// ========== fakes ==========

type fakeMessageStore struct {
	messages []*wmodel.Message
	err      error
}

func (s *fakeMessageStore) CreateMessage(msg *wmodel.Message) error {
	if s.err != nil {
		return s.err
	}
	s.messages = append(s.messages, msg)
	return nil
}

type fakeRetriever struct {
	chunks []string
	err    error
}

func (r *fakeRetriever) Retrieve(ctx context.Context, query string, k int) ([]string, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.chunks, nil
}

type fakeChatModel struct {
	content      string
	err          error
	lastMessages []*schema.Message
}

func (m *fakeChatModel) Generate(ctx context.Context, messages []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.lastMessages = messages
	if m.err != nil {
		return nil, m.err
	}
	return &schema.Message{Role: schema.Assistant, Content: m.content}, nil
}

func (m *fakeChatModel) Stream(ctx context.Context, messages []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, nil
}

func (m *fakeChatModel) BindTools(tools []*schema.ToolInfo) error {
	return nil
}

func newTestChatService(store *fakeMessageStore, retriever *fakeRetriever, chatModel *fakeChatModel) *Service {
	return &Service{
		store:     store,
		retriever: retriever,
		ai:        ai.NewClient(chatModel, nil),
		sessions:  NewSessionCache(nil),
	}
}

// ========== Send 测试 ==========

func TestSend(t *testing.T) {
	store := &fakeMessageStore{}
	retriever := &fakeRetriever{chunks: []string{"office hours are 9-5"}}
	chatModel := &fakeChatModel{content: "We are open 9 to 5."}
	svc := newTestChatService(store, retriever, chatModel)

	resp, err := svc.Send(context.Background(), &SendRequest{
		SessionID: "session-1",
		Message:   "when are you open?",
	})
	if err != nil {
		t.Fatalf("Send() unexpected error: %v", err)
	}
	if resp.Response != "We are open 9 to 5." {
		t.Errorf("Response = %q, want model output", resp.Response)
	}

	// 用户消息和 AI 回复各落库一条
	if len(store.messages) != 2 {
		t.Fatalf("messages stored = %d, want 2", len(store.messages))
	}
	if store.messages[0].Body.Type != wmodel.MessageTypeUser {
		t.Errorf("first message type = %q, want user", store.messages[0].Body.Type)
	}
	if store.messages[1].Body.Type != wmodel.MessageTypeAI {
		t.Errorf("second message type = %q, want ai", store.messages[1].Body.Type)
	}
	if store.messages[0].Account != wmodel.AccountPrimary {
		t.Errorf("default account = %d, want primary", store.messages[0].Account)
	}
}

func TestSend_ContextInSystemPrompt(t *testing.T) {
	retriever := &fakeRetriever{chunks: []string{"chunk one", "chunk two"}}
	chatModel := &fakeChatModel{content: "ok"}
	svc := newTestChatService(&fakeMessageStore{}, retriever, chatModel)

	_, err := svc.Send(context.Background(), &SendRequest{SessionID: "s", Message: "q"})
	if err != nil {
		t.Fatalf("Send() unexpected error: %v", err)
	}

	if len(chatModel.lastMessages) == 0 {
		t.Fatal("model received no messages")
	}
	system := chatModel.lastMessages[0]
	if system.Role != schema.System {
		t.Fatalf("first message role = %q, want system", system.Role)
	}
	if !strings.Contains(system.Content, "chunk one") || !strings.Contains(system.Content, "chunk two") {
		t.Errorf("system prompt missing retrieved context: %q", system.Content)
	}
}

func TestSend_RetrievalFailureDegrades(t *testing.T) {
	store := &fakeMessageStore{}
	retriever := &fakeRetriever{err: errors.New("search down")}
	chatModel := &fakeChatModel{content: "still answering"}
	svc := newTestChatService(store, retriever, chatModel)

	// 召回失败不中断聊天
	resp, err := svc.Send(context.Background(), &SendRequest{SessionID: "s", Message: "q"})
	if err != nil {
		t.Fatalf("Send() error = %v, want nil on retrieval failure", err)
	}
	if resp.Response != "still answering" {
		t.Errorf("Response = %q, want model output", resp.Response)
	}
	if len(store.messages) != 2 {
		t.Errorf("messages stored = %d, want 2", len(store.messages))
	}
}

func TestSend_FallbackResponsePersisted(t *testing.T) {
	store := &fakeMessageStore{}
	chatModel := &fakeChatModel{content: ""}
	svc := newTestChatService(store, &fakeRetriever{}, chatModel)

	resp, err := svc.Send(context.Background(), &SendRequest{SessionID: "s", Message: "q"})
	if err != nil {
		t.Fatalf("Send() unexpected error: %v", err)
	}
	if resp.Response != ai.FallbackResponse {
		t.Errorf("Response = %q, want fallback", resp.Response)
	}
	if len(store.messages) != 2 {
		t.Fatalf("messages stored = %d, want 2", len(store.messages))
	}
	if store.messages[1].Body.Content != ai.FallbackResponse {
		t.Errorf("persisted ai message = %q, want fallback", store.messages[1].Body.Content)
	}
}

func TestSend_MissingFields(t *testing.T) {
	svc := newTestChatService(&fakeMessageStore{}, &fakeRetriever{}, &fakeChatModel{content: "ok"})

	if _, err := svc.Send(context.Background(), &SendRequest{SessionID: "s"}); err == nil {
		t.Error("Send() expected error on empty message")
	}
	if _, err := svc.Send(context.Background(), &SendRequest{Message: "q"}); err == nil {
		t.Error("Send() expected error on empty session id")
	}
}

// ========== Record 测试 ==========

func TestRecord(t *testing.T) {
	store := &fakeMessageStore{}
	svc := newTestChatService(store, &fakeRetriever{}, &fakeChatModel{content: "ok"})

	msg, err := svc.Record(context.Background(), &RecordRequest{
		SessionID: "wa-123",
		Content:   "incoming whatsapp message",
		Account:   wmodel.AccountSecondary,
	})
	if err != nil {
		t.Fatalf("Record() unexpected error: %v", err)
	}

	if msg.Account != wmodel.AccountSecondary {
		t.Errorf("Account = %d, want secondary", msg.Account)
	}
	if msg.Body.Type != wmodel.MessageTypeUser {
		t.Errorf("Type = %q, want user by default", msg.Body.Type)
	}
	if len(store.messages) != 1 {
		t.Errorf("messages stored = %d, want 1", len(store.messages))
	}
}

func TestSend_ModelError(t *testing.T) {
	store := &fakeMessageStore{}
	chatModel := &fakeChatModel{err: errors.New("api down")}
	svc := newTestChatService(store, &fakeRetriever{}, chatModel)

	_, err := svc.Send(context.Background(), &SendRequest{SessionID: "s", Message: "q"})
	if err == nil {
		t.Fatal("Send() expected error on model failure")
	}
	if len(store.messages) != 0 {
		t.Errorf("messages stored = %d, want 0 on failure", len(store.messages))
	}
}
