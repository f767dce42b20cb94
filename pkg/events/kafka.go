package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"hostelhub/pkg/logger"
	"hostelhub/pkg/model"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"
)

// KafkaPublisher writes booking events to a single topic, keyed by room ID
// so events for one room stay ordered within a partition.
type KafkaPublisher struct {
	writer  *kafka.Writer
	service string
	log     *logger.Logger
}

func NewKafkaPublisher(brokers []string, topic, service string, log *logger.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Compression:  compress.Snappy,
		MaxAttempts:  3,
		BatchTimeout: 10 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(msg string, args ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.Error("kafka writer error", "message", msg, "args", args)
		}),
	}

	log.Info("Booking events producer initialized", "brokers", brokers, "topic", topic)

	return &KafkaPublisher{
		writer:  writer,
		service: service,
		log:     log,
	}
}

func (p *KafkaPublisher) PublishBookingsCreated(ctx context.Context, bookings []model.Booking) error {
	messages := make([]kafka.Message, 0, len(bookings))
	now := time.Now().UTC()

	for _, b := range bookings {
		payload := BookingCreated{
			BookingID:    b.ID,
			RoomID:       b.RoomID,
			GuestEmail:   b.GuestEmail,
			CheckInDate:  b.CheckInDate,
			CheckOutDate: b.CheckOutDate,
			OccurredAt:   now,
		}

		value, err := json.Marshal(payload)
		if err != nil {
			return err
		}

		messages = append(messages, kafka.Message{
			Key:   []byte(strconv.Itoa(b.RoomID)),
			Value: value,
			Time:  now,
			Headers: []kafka.Header{
				{Key: HeaderEventID, Value: []byte(uuid.New().String())},
				{Key: HeaderEventType, Value: []byte(TypeBookingCreated)},
				{Key: HeaderSource, Value: []byte(p.service)},
				{Key: HeaderTimestamp, Value: []byte(now.Format(time.RFC3339))},
			},
		})
	}

	if len(messages) == 0 {
		return nil
	}

	return p.writer.WriteMessages(ctx, messages...)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
