package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const (
	ChannelGymEvents = "gym_events"
)

// 事件类型常量
const (
	EventPaymentRecorded = "payment_recorded"
	EventMemberCheckedIn = "member_checked_in"
	EventReceiptSent     = "receipt_sent"
)

// EventMessage 营业事件，推送给在线的管理端仪表盘
type EventMessage struct {
	Type      string `json:"type"`
	MemberID  int64  `json:"member_id"`
	PaymentID int64  `json:"payment_id,omitempty"`
	Amount    int64  `json:"amount,omitempty"`
	Message   string `json:"message,omitempty"`
}

// 事件对应的默认消息
var eventMessages = map[string]string{
	EventPaymentRecorded: "收到一笔新支付",
	EventMemberCheckedIn: "会员入场签到",
	EventReceiptSent:     "收据已发送",
}

// Publisher Redis 发布者
type Publisher struct {
	client *redis.Client
}

// NewPublisher 创建发布者
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// PublishEvent 发布营业事件
func (p *Publisher) PublishEvent(ctx context.Context, msg *EventMessage) error {
	if msg.Message == "" {
		if m, ok := eventMessages[msg.Type]; ok {
			msg.Message = m
		}
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal event message: %w", err)
	}

	return p.client.Publish(ctx, ChannelGymEvents, data).Err()
}

// Subscriber Redis 订阅者
type Subscriber struct {
	client *redis.Client
}

// NewSubscriber 创建订阅者
func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe 订阅营业事件
func (s *Subscriber) Subscribe(ctx context.Context, handler func(*EventMessage)) error {
	pubsub := s.client.Subscribe(ctx, ChannelGymEvents)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var event EventMessage
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue // 忽略解析错误
			}

			handler(&event)
		}
	}
}
