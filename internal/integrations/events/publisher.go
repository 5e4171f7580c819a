package events

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Publisher публикует события сервиса в Kafka.
// Ключ сообщения - ID мастера, поэтому события одного мастера попадают в одну партицию.
type Publisher struct {
	writer MessageWriter
	now    func() time.Time
}

// NewKafkaPublisher создает Publisher поверх kafka.Writer
func NewKafkaPublisher(brokers []string, topic string, writeTimeout time.Duration) *Publisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		WriteTimeout:           writeTimeout,
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return NewPublisher(writer)
}

// NewPublisher создает Publisher поверх произвольного writer
func NewPublisher(writer MessageWriter) *Publisher {
	return &Publisher{
		writer: writer,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// PublishAvailabilityUpdated публикует изменение расписания
func (p *Publisher) PublishAvailabilityUpdated(ctx context.Context, pa *domain.ProviderAvailability) error {
	return p.publish(ctx, TypeAvailabilityUpdated, pa.ProviderID, AvailabilityUpdated{
		ProviderID:     pa.ProviderID,
		AvailabilityID: pa.ID,
		UpdatedAt:      pa.UpdatedAt,
	})
}

// PublishAppointmentCreated публикует новую запись
func (p *Publisher) PublishAppointmentCreated(ctx context.Context, appt *domain.Appointment) error {
	return p.publish(ctx, TypeAppointmentCreated, appt.ProviderID, appointmentPayload(appt))
}

// PublishAppointmentCancelled публикует отмену записи
func (p *Publisher) PublishAppointmentCancelled(ctx context.Context, appt *domain.Appointment) error {
	return p.publish(ctx, TypeAppointmentCancelled, appt.ProviderID, appointmentPayload(appt))
}

// Close закрывает writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func appointmentPayload(appt *domain.Appointment) AppointmentChanged {
	return AppointmentChanged{
		AppointmentID:      appt.ID,
		ProviderID:         appt.ProviderID,
		ClientID:           appt.ClientID,
		Date:               appt.DateString(),
		StartTime:          appt.StartTime.String(),
		EndTime:            appt.EndTime.String(),
		Status:             string(appt.Status),
		CancellationReason: appt.CancellationReason,
	}
}

func (p *Publisher) publish(ctx context.Context, eventType, key string, payload any) error {
	eventID := uuid.NewString()

	value, err := json.Marshal(Envelope{
		EventID:    eventID,
		EventType:  eventType,
		OccurredAt: p.now(),
		Payload:    payload,
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncode, eventType, err)
	}

	headers := []kafka.Header{
		{Key: "event_id", Value: []byte(eventID)},
		{Key: "event_type", Value: []byte(eventType)},
	}

	msg := kafka.Message{
		Key:     []byte(key),
		Value:   value,
		Headers: injectTraceHeaders(ctx, headers),
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPublish, eventType, err)
	}

	return nil
}

// SplitBrokers разбирает список брокеров через запятую
func SplitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// HeaderValue возвращает значение заголовка сообщения
func HeaderValue(headers []kafka.Header, key string) string {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

// injectTraceHeaders добавляет W3C trace context в заголовки
func injectTraceHeaders(ctx context.Context, headers []kafka.Header) []kafka.Header {
	carrier := &headerCarrier{headers: headers}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	return carrier.headers
}

type headerCarrier struct {
	headers []kafka.Header
}

func (c *headerCarrier) Get(key string) string {
	return HeaderValue(c.headers, key)
}

func (c *headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c.headers))
	for _, h := range c.headers {
		keys = append(keys, h.Key)
	}
	return keys
}

func (c *headerCarrier) Set(key, value string) {
	for i := range c.headers {
		if c.headers[i].Key == key {
			c.headers[i].Value = []byte(value)
			return
		}
	}
	c.headers = append(c.headers, kafka.Header{Key: key, Value: []byte(value)})
}

var _ propagation.TextMapCarrier = (*headerCarrier)(nil)

// NoopPublisher используется, когда Kafka выключена в конфиге
type NoopPublisher struct{}

func (NoopPublisher) PublishAvailabilityUpdated(context.Context, *domain.ProviderAvailability) error {
	return nil
}

func (NoopPublisher) PublishAppointmentCreated(context.Context, *domain.Appointment) error {
	return nil
}

func (NoopPublisher) PublishAppointmentCancelled(context.Context, *domain.Appointment) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }
