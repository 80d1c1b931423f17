// Package mq RabbitMQ消息发布
//
// 发布者声明一个持久化的topic交换机，消息以JSON持久化投递，
// 路由键如order.placed、order.cancelled，订阅方按order.*绑定队列即可。
package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/xiebiao/bookstore-backend/pkg/metrics"
)

// Channel 发布所需的AMQP通道能力（*amqp.Channel实现了该接口）
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher 消息发布者
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  Channel
	exchange string
	log      *logrus.Logger
}

// NewPublisher 连接RabbitMQ并声明交换机
func NewPublisher(url, exchange, exchangeType string, log *logrus.Logger) (*Publisher, error) {
	// 1. 建立连接和通道
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("连接RabbitMQ失败: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("创建Channel失败: %w", err)
	}

	// 2. 声明持久化交换机（已存在且参数一致时是幂等的）
	err = channel.ExchangeDeclare(
		exchange,
		exchangeType,
		true,  // Durable
		false, // AutoDelete
		false, // Internal
		false, // NoWait
		nil,
	)
	if err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("声明Exchange失败: %w", err)
	}

	log.WithFields(logrus.Fields{
		"exchange": exchange,
		"type":     exchangeType,
	}).Info("消息发布者已创建")

	p := NewPublisherWithChannel(channel, exchange, log)
	p.conn = conn
	return p, nil
}

// NewPublisherWithChannel 使用已有通道创建发布者（交换机需已声明）
func NewPublisherWithChannel(channel Channel, exchange string, log *logrus.Logger) *Publisher {
	return &Publisher{
		channel:  channel,
		exchange: exchange,
		log:      log,
	}
}

// Exchange 交换机名称
func (p *Publisher) Exchange() string {
	return p.exchange
}

// Publish 以JSON发布消息
func (p *Publisher) Publish(ctx context.Context, routingKey string, message interface{}) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("消息序列化失败: %w", err)
	}

	p.mu.Lock()
	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		routingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	p.mu.Unlock()

	result := "success"
	if err != nil {
		result = "failure"
	}
	metrics.IncCounterVec(metrics.MessagesPublishedTotal, map[string]string{
		"exchange":    p.exchange,
		"routing_key": routingKey,
		"result":      result,
	})
	if err != nil {
		return fmt.Errorf("发布消息失败: %w", err)
	}

	p.log.WithField("routing_key", routingKey).Debug("消息已发布")
	return nil
}

// Close 关闭通道和连接
func (p *Publisher) Close() error {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
