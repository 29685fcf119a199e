package chat

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// historyKeyPrefix Redis key 前缀
const historyKeyPrefix = "chat:history:"

// Exchange 一轮问答
type Exchange struct {
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	AskedAt  time.Time `json:"asked_at"`
}

// History 按用户存最近几轮问答，供下一次提问拼上下文
// Redis 不可用时静默降级，聊天照常只是没有上下文
type History struct {
	redis *redis.Client
	max   int
	ttl   time.Duration
}

// NewHistory 创建聊天历史存储
func NewHistory(redisClient *redis.Client, max int, ttl time.Duration) *History {
	if max <= 0 {
		max = 5
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &History{redis: redisClient, max: max, ttl: ttl}
}

// Recent 返回用户最近的问答，最早的在前
func (h *History) Recent(ctx context.Context, username string) []Exchange {
	if h.redis == nil {
		return nil
	}

	data, err := h.redis.Get(ctx, historyKeyPrefix+username).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("failed to load chat history for %s: %v", username, err)
		}
		return nil
	}

	var exchanges []Exchange
	if err := json.Unmarshal([]byte(data), &exchanges); err != nil {
		return nil
	}
	return exchanges
}

// Add 追加一轮问答并裁剪到上限
func (h *History) Add(ctx context.Context, username string, ex Exchange) {
	if h.redis == nil {
		return
	}

	exchanges := append(h.Recent(ctx, username), ex)
	if len(exchanges) > h.max {
		exchanges = exchanges[len(exchanges)-h.max:]
	}

	data, err := json.Marshal(exchanges)
	if err != nil {
		return
	}
	if err := h.redis.Set(ctx, historyKeyPrefix+username, data, h.ttl).Err(); err != nil {
		log.Printf("failed to save chat history for %s: %v", username, err)
	}
}
