// Package messaging 把领域事件投递到RabbitMQ
package messaging

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/xiebiao/bookstore-backend/internal/domain/order"
	"github.com/xiebiao/bookstore-backend/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-backend/pkg/mq"
)

// sender 按路由键发送JSON消息（由mq.Publisher实现）
type sender interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// OrderEventPublisher 订单事件发布者，路由键即事件动作（order.placed / order.cancelled）
type OrderEventPublisher struct {
	sender sender
}

// NewOrderEventPublisher 包装消息发送者
func NewOrderEventPublisher(s sender) *OrderEventPublisher {
	return &OrderEventPublisher{sender: s}
}

// Publish 发布订单事件
func (p *OrderEventPublisher) Publish(ctx context.Context, event order.Event) error {
	return p.sender.Publish(ctx, event.Action, event)
}

// NewFromConfig 根据配置创建订单事件发布者
// mq.url为空时不连接RabbitMQ，返回不发布任何事件的实现
func NewFromConfig(cfg *config.Config, log *logrus.Logger) (order.EventPublisher, func(), error) {
	if cfg.MQ.URL == "" {
		log.Info("未配置mq.url，订单事件不发布")
		return order.NopPublisher{}, func() {}, nil
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic", log)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := publisher.Close(); err != nil {
			log.WithError(err).Warn("关闭消息发布者失败")
		}
	}
	return NewOrderEventPublisher(publisher), cleanup, nil
}
