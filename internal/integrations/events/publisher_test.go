package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func newTestPublisher() (*Publisher, *fakeWriter) {
	w := &fakeWriter{}
	p := NewPublisher(w)
	p.now = func() time.Time { return time.Date(2025, 10, 13, 9, 0, 0, 0, time.UTC) }
	return p, w
}

func decode(t *testing.T, msg kafka.Message) (Envelope, map[string]any) {
	t.Helper()
	var raw struct {
		Envelope
		Payload map[string]any `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(msg.Value, &raw))
	return raw.Envelope, raw.Payload
}

func TestPublisher_AppointmentCreated(t *testing.T) {
	p, w := newTestPublisher()

	appt := &domain.Appointment{
		ID:          42,
		ProviderID:  "provider-1",
		ClientID:    "client-1",
		BookingDate: time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		EndTime:     "10:30",
		Status:      domain.StatusConfirmed,
	}

	require.NoError(t, p.PublishAppointmentCreated(context.Background(), appt))
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, "provider-1", string(msg.Key))
	assert.Equal(t, TypeAppointmentCreated, HeaderValue(msg.Headers, "event_type"))

	eventID := HeaderValue(msg.Headers, "event_id")
	_, err := uuid.Parse(eventID)
	assert.NoError(t, err)

	env, payload := decode(t, msg)
	assert.Equal(t, eventID, env.EventID)
	assert.Equal(t, TypeAppointmentCreated, env.EventType)
	assert.Equal(t, "2025-10-13", payload["date"])
	assert.Equal(t, "10:00", payload["startTime"])
	assert.Equal(t, "confirmed", payload["status"])
	assert.EqualValues(t, 42, payload["appointmentId"])
	assert.NotContains(t, payload, "cancellationReason")
}

func TestPublisher_AvailabilityUpdated(t *testing.T) {
	p, w := newTestPublisher()

	require.NoError(t, p.PublishAvailabilityUpdated(context.Background(), &domain.ProviderAvailability{
		ID:         "availability-provider-1-1",
		ProviderID: "provider-1",
	}))

	env, payload := decode(t, w.messages[0])
	assert.Equal(t, TypeAvailabilityUpdated, env.EventType)
	assert.Equal(t, "availability-provider-1-1", payload["availabilityId"])
}

func TestPublisher_EachEventHasOwnID(t *testing.T) {
	p, w := newTestPublisher()
	appt := &domain.Appointment{ProviderID: "provider-1", Status: domain.StatusCancelled}

	require.NoError(t, p.PublishAppointmentCancelled(context.Background(), appt))
	require.NoError(t, p.PublishAppointmentCancelled(context.Background(), appt))

	require.Len(t, w.messages, 2)
	assert.NotEqual(t, HeaderValue(w.messages[0].Headers, "event_id"), HeaderValue(w.messages[1].Headers, "event_id"))
}

func TestPublisher_TraceHeaders(t *testing.T) {
	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(prev) })

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	p, w := newTestPublisher()
	require.NoError(t, p.PublishAvailabilityUpdated(ctx, &domain.ProviderAvailability{ProviderID: "provider-1"}))

	assert.Equal(t,
		"00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01",
		HeaderValue(w.messages[0].Headers, "traceparent"),
	)
}

func TestPublisher_WriteError(t *testing.T) {
	p, w := newTestPublisher()
	w.err = errors.New("broker down")

	err := p.PublishAvailabilityUpdated(context.Background(), &domain.ProviderAvailability{ProviderID: "provider-1"})
	assert.ErrorIs(t, err, ErrPublish)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, SplitBrokers(" kafka-1:9092, ,kafka-2:9092 "))
	assert.Nil(t, SplitBrokers(""))
}
