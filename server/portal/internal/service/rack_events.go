package service

import (
	"encoding/json"
	"time"

	pkgredis "dcim-ng/pkg/redis"

	"go.uber.org/zap"
)

// RackChangeEvent 机柜变更事件，经由 Redis 频道分发给各实例的 WebSocket 客户端.
type RackChangeEvent struct {
	RackID    int64  `json:"rackId"`
	Action    string `json:"action"` // created / updated / deleted
	Timestamp int64  `json:"timestamp"`
}

// RackEventService 机柜变更事件的发布与订阅.
type RackEventService struct {
	redis  *pkgredis.Handler
	logger *zap.Logger
}

// NewRackEventService creates a new RackEventService.
func NewRackEventService(redis *pkgredis.Handler, logger *zap.Logger) *RackEventService {
	return &RackEventService{redis: redis, logger: logger}
}

// PublishRackChange 发布机柜变更事件.
func (s *RackEventService) PublishRackChange(rackID int64, action string) error {
	event := &RackChangeEvent{
		RackID:    rackID,
		Action:    action,
		Timestamp: time.Now().Unix(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.redis.Pub(pkgredis.RackUpdatesChannel, string(payload))
}

// Run 订阅变更频道并持续推送给 WebSocket 客户端，应在独立 goroutine 中运行.
func (s *RackEventService) Run(manager *WebSocketManager) {
	sub := s.redis.Subscribe(pkgredis.RackUpdatesChannel)
	defer sub.Close()

	for msg := range sub.Channel() {
		var event RackChangeEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			s.logger.Warn("discarding malformed rack change event",
				zap.String("payload", msg.Payload),
				zap.Error(err),
			)
			continue
		}
		manager.BroadcastRackChange(&event)
	}
}
