package handler

import (
	"errors"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/wadesk/wadesk/internal/middleware"
	"github.com/wadesk/wadesk/internal/service"
	"github.com/wadesk/wadesk/internal/service/knowledge"
)

// DocumentHandler 知识库文档处理器
type DocumentHandler struct {
	svc *service.Services
}

// NewDocumentHandler 创建文档处理器
func NewDocumentHandler(svc *service.Services) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

// allowedMimeTypes 允许上传的文件类型
var allowedMimeTypes = map[string]bool{
	knowledge.MimeTypePDF:  true,
	knowledge.MimeTypeDocx: true,
	knowledge.MimeTypeText: true,
}

// Upload 上传并摄取文档
// 超出大小限制或类型不在白名单内时直接拒绝，不进入摄取流水线
func (h *DocumentHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "file is required")
		return
	}

	maxSize := h.svc.Config.Upload.MaxFileSize
	if fileHeader.Size > maxSize {
		BadRequest(c, fmt.Sprintf("file exceeds maximum size of %d bytes", maxSize))
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if !allowedMimeTypes[mimeType] {
		BadRequest(c, "unsupported file type: "+mimeType)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		Error(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		Error(c, err)
		return
	}
	if int64(len(data)) > maxSize {
		BadRequest(c, fmt.Sprintf("file exceeds maximum size of %d bytes", maxSize))
		return
	}

	userID, _ := middleware.GetUserID(c)
	result, err := h.svc.Knowledge.Ingest(c.Request.Context(), &knowledge.IngestRequest{
		Data:     data,
		MimeType: mimeType,
		Filename: fileHeader.Filename,
		ClientID: userID,
	})
	if err != nil {
		if errors.Is(err, knowledge.ErrUnsupportedFileType) {
			BadRequest(c, err.Error())
			return
		}
		Error(c, err)
		return
	}

	Success(c, result)
}

// List 列出文档及分块数
func (h *DocumentHandler) List(c *gin.Context) {
	clientID := c.Query("client_id")

	docs, err := h.svc.Knowledge.ListDocuments(c.Request.Context(), clientID)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, docs)
}

// Get 获取单篇文档（含分块）
func (h *DocumentHandler) Get(c *gin.Context) {
	id := c.Param("id")

	doc, err := h.svc.Knowledge.GetDocument(c.Request.Context(), id)
	if err != nil {
		NotFound(c, "document not found")
		return
	}

	Success(c, doc)
}

// Delete 删除文档及其分块
func (h *DocumentHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.svc.Knowledge.DeleteDocument(c.Request.Context(), id); err != nil {
		Error(c, err)
		return
	}

	NoContent(c)
}
