package chat

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/redis/go-redis/v9"
)

const (
	// 会话上下文在 Redis 中的过期时间
	sessionTTL = 24 * time.Hour
	// Redis key 前缀
	sessionKeyPrefix = "chat:session:"
	// 最多缓存的历史消息条数
	maxCachedMessages = 20
)

// cachedMessage 缓存的消息（用于 Redis 存储）
type cachedMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SessionCache 会话上下文缓存
// 每条消息是 Redis list 中的一个元素，追加与截断在一个事务里完成，
// 同一会话的并发写入不会相互覆盖
type SessionCache struct {
	redis *redis.Client
}

// NewSessionCache 创建会话缓存
func NewSessionCache(redisClient *redis.Client) *SessionCache {
	return &SessionCache{redis: redisClient}
}

// History 读取会话历史，转换为模型消息
// Redis 不可用或数据损坏时返回空历史，聊天本身不依赖缓存
func (c *SessionCache) History(ctx context.Context, sessionID string) []*schema.Message {
	if c.redis == nil {
		return nil
	}

	items, err := c.redis.LRange(ctx, sessionKeyPrefix+sessionID, 0, -1).Result()
	if err != nil {
		return nil
	}

	messages := make([]*schema.Message, 0, len(items))
	for _, item := range items {
		var m cachedMessage
		if err := json.Unmarshal([]byte(item), &m); err != nil {
			continue
		}
		switch m.Role {
		case "assistant":
			messages = append(messages, schema.AssistantMessage(m.Content, nil))
		default:
			messages = append(messages, schema.UserMessage(m.Content))
		}
	}
	return messages
}

// Append 追加一轮对话、截断超出的历史并刷新过期时间
func (c *SessionCache) Append(ctx context.Context, sessionID, userMessage, assistantMessage string) {
	if c.redis == nil {
		return
	}

	userData, err := json.Marshal(cachedMessage{Role: "user", Content: userMessage})
	if err != nil {
		return
	}
	assistantData, err := json.Marshal(cachedMessage{Role: "assistant", Content: assistantMessage})
	if err != nil {
		return
	}

	key := sessionKeyPrefix + sessionID
	pipe := c.redis.TxPipeline()
	pipe.RPush(ctx, key, userData, assistantData)
	pipe.LTrim(ctx, key, -int64(maxCachedMessages), -1)
	pipe.Expire(ctx, key, sessionTTL)
	_, _ = pipe.Exec(ctx)
}
