// Package model_test 数据模型单元测试
package model_test

import (
	"testing"

	"github.com/wadesk/wadesk/internal/model"
	"github.com/wadesk/wadesk/internal/testutil"
)

// ========== MessageBody JSONB 测试 ==========

func TestMessageBody_ValueScan(t *testing.T) {
	msg := testutil.NewTestMessage(model.AccountPrimary, "session-1", model.MessageTypeUser, "hello")

	value, err := msg.Body.Value()
	if err != nil {
		t.Fatalf("Value() unexpected error: %v", err)
	}

	data, ok := value.([]byte)
	if !ok {
		t.Fatalf("Value() = %T, want []byte", value)
	}

	var scanned model.MessageBody
	if err := scanned.Scan(data); err != nil {
		t.Fatalf("Scan() unexpected error: %v", err)
	}
	if scanned.Type != model.MessageTypeUser {
		t.Errorf("scanned Type = %q, want %q", scanned.Type, model.MessageTypeUser)
	}
	if scanned.Content != "hello" {
		t.Errorf("scanned Content = %q, want %q", scanned.Content, "hello")
	}
}

func TestMessageBody_ScanNil(t *testing.T) {
	var body model.MessageBody
	if err := body.Scan(nil); err != nil {
		t.Errorf("Scan(nil) unexpected error: %v", err)
	}
}

// ========== User 角色测试 ==========

func TestUser_IsSuperAdmin(t *testing.T) {
	admin := testutil.NewTestUser(model.RoleSuperAdmin)
	if !admin.IsSuperAdmin() {
		t.Error("IsSuperAdmin() = false for super_admin role")
	}

	client := testutil.NewTestUser(model.RoleClient)
	if client.IsSuperAdmin() {
		t.Error("IsSuperAdmin() = true for client role")
	}
}
