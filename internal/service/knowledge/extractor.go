package knowledge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cloudwego/eino-ext/components/document/parser/docx"
	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	"github.com/cloudwego/eino/schema"
)

// 支持的上传类型
const (
	MimeTypePDF  = "application/pdf"
	MimeTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeTypeText = "text/plain"
)

// ErrUnsupportedFileType 不支持的文件类型
var ErrUnsupportedFileType = errors.New("unsupported file type")

// ParsedDocument 解析结果
type ParsedDocument struct {
	Title    string `json:"title"`
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// ExtractDocument 将上传的文件字节解析为纯文本
// 仅接受 PDF、DOCX、纯文本三种类型；解析器失败不重试（问题出在输入本身）
// 纯转换，无副作用
func ExtractDocument(ctx context.Context, data []byte, mimeType, filename string) (*ParsedDocument, error) {
	var content string

	switch mimeType {
	case MimeTypePDF:
		text, err := parsePDF(ctx, data)
		if err != nil {
			return nil, fmt.Errorf("pdf parsing failed: %w", err)
		}
		content = text

	case MimeTypeDocx:
		text, err := parseDocx(ctx, data)
		if err != nil {
			return nil, fmt.Errorf("docx parsing failed: %w", err)
		}
		content = text

	case MimeTypeText:
		content = string(data)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, mimeType)
	}

	return &ParsedDocument{
		Title:    strings.TrimSuffix(filename, filepath.Ext(filename)),
		Filename: filename,
		Content:  strings.TrimSpace(content),
	}, nil
}

// parsePDF 解析 PDF
func parsePDF(ctx context.Context, data []byte) (string, error) {
	parser, err := pdf.NewPDFParser(ctx, &pdf.Config{ToPages: false})
	if err != nil {
		return "", err
	}

	docs, err := parser.Parse(ctx, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	return joinDocuments(docs), nil
}

// parseDocx 解析 DOCX
func parseDocx(ctx context.Context, data []byte) (string, error) {
	parser, err := docx.NewDocxParser(ctx, &docx.Config{
		ToSections:      false,
		IncludeComments: false,
		IncludeHeaders:  true,
		IncludeFooters:  false,
		IncludeTables:   true,
	})
	if err != nil {
		return "", err
	}

	docs, err := parser.Parse(ctx, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	return joinDocuments(docs), nil
}

// joinDocuments 合并解析器输出
func joinDocuments(docs []*schema.Document) string {
	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		if doc.Content != "" {
			parts = append(parts, doc.Content)
		}
	}
	return strings.Join(parts, "\n")
}
