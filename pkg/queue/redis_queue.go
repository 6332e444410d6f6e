package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisQueue 账本事件总线的Redis实现
type RedisQueue struct {
	client *redis.Client
	prefix string
}

// LedgerEvent 账本事件消息（仪表盘通过WebSocket实时渲染）
type LedgerEvent struct {
	EventType  string `json:"event_type"` // payment.recorded / month.rollover / application.approved
	OwnerID    uint   `json:"owner_id"`   // 房东ID，事件按房东维度分发
	TenantID   uint   `json:"tenant_id"`  // 相关租客ID（组合事件可为0）
	Amount     int64  `json:"amount"`     // 金额（零小数货币的最小单位）
	Method     string `json:"method"`     // 支付方式标签
	NewBalance int64  `json:"new_balance"`
	Created    int64  `json:"created"`
}

// Config Redis配置
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	Prefix   string
}

// NewRedisQueue 创建事件总线实例
func NewRedisQueue(config *Config) *RedisQueue {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	prefix := config.Prefix
	if prefix == "" {
		prefix = "rentroll:events"
	}

	return &RedisQueue{
		client: client,
		prefix: prefix,
	}
}

// Close 关闭Redis连接
func (q *RedisQueue) Close() error {
	return q.client.Close()
}

// Ping 测试Redis连接
func (q *RedisQueue) Ping() error {
	ctx := context.Background()
	return q.client.Ping(ctx).Err()
}

// GetClient 获取底层Redis客户端
func (q *RedisQueue) GetClient() *redis.Client {
	return q.client
}

// Publish 发布账本事件
func (q *RedisQueue) Publish(event *LedgerEvent) error {
	ctx := context.Background()

	if event.Created == 0 {
		event.Created = time.Now().Unix()
	}

	// 序列化事件
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("序列化账本事件失败: %v", err)
	}

	// 按房东维度发布，仪表盘只订阅自己的频道
	channel := q.getChannelKey(event.OwnerID)
	if err := q.client.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("账本事件发布失败: %v", err)
	}

	// 保留最近事件供重连后的客户端回放
	historyKey := q.getHistoryKey(event.OwnerID)
	pipe := q.client.Pipeline()
	pipe.LPush(ctx, historyKey, data)
	pipe.LTrim(ctx, historyKey, 0, 99)
	pipe.Expire(ctx, historyKey, 24*time.Hour)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("记录事件历史失败: %v", err)
	}

	return nil
}

// Subscribe 订阅某房东的账本事件频道
func (q *RedisQueue) Subscribe(ctx context.Context, ownerID uint) *redis.PubSub {
	return q.client.Subscribe(ctx, q.getChannelKey(ownerID))
}

// RecentEvents 读取最近的账本事件（新到旧）
func (q *RedisQueue) RecentEvents(ctx context.Context, ownerID uint, limit int64) ([]*LedgerEvent, error) {
	raw, err := q.client.LRange(ctx, q.getHistoryKey(ownerID), 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("读取事件历史失败: %v", err)
	}

	events := make([]*LedgerEvent, 0, len(raw))
	for _, item := range raw {
		var event LedgerEvent
		if err := json.Unmarshal([]byte(item), &event); err != nil {
			continue
		}
		events = append(events, &event)
	}
	return events, nil
}

func (q *RedisQueue) getChannelKey(ownerID uint) string {
	return fmt.Sprintf("%s:owner:%d", q.prefix, ownerID)
}

func (q *RedisQueue) getHistoryKey(ownerID uint) string {
	return fmt.Sprintf("%s:history:%d", q.prefix, ownerID)
}
