package knowledge

import (
	"errors"
	"strings"
)

// 默认分块参数
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// ErrInvalidChunkConfig overlap >= chunkSize 时游标无法前进
var ErrInvalidChunkConfig = errors.New("chunk overlap must be smaller than chunk size")

// ChunkText 将文本切分为带重叠的定长窗口
// 窗口为 [start, min(start+chunkSize, len))，去除首尾空白后保留非空块；
// 窗口到达文本末尾则停止，否则 start = end - overlap
// 按 rune 索引，保证不切断多字节字符；同样输入产出逐字节一致
func ChunkText(text string, chunkSize, overlap int) ([]string, error) {
	if chunkSize <= 0 || overlap < 0 || overlap >= chunkSize {
		return nil, ErrInvalidChunkConfig
	}

	runes := []rune(text)
	var chunks []string

	start := 0
	for start < len(runes) {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end >= len(runes) {
			break
		}
		start = end - overlap
	}

	return chunks, nil
}
