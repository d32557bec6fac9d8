package pkg

import (
	"context"
	"strconv"

	"github.com/PresidentDoug/my-game-sync/internal/model"

	"github.com/segmentio/kafka-go"
)

// ActivityProducer 把 outbox 里的动态事件投到 kafka。
// 按事件对象 id（公会或场次）做 hash 分区，同一对象的事件保序。
type ActivityProducer struct {
	writer *kafka.Writer
}

func NewActivityProducer(brokers []string, topic string) *ActivityProducer {
	return &ActivityProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
		},
	}
}

func (p *ActivityProducer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// SendActivity 事件类型放 header，消费端不解 payload 也能路由
func (p *ActivityProducer) SendActivity(ctx context.Context, ob *model.ActivityOutbox) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(ob.SubjectID, 10)),
		Value: []byte(ob.Payload),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(ob.EventType)},
		},
	})
}
