package events

import "time"

// Типы событий
const (
	TypeAvailabilityUpdated  = "availability.updated"
	TypeAppointmentCreated   = "appointment.created"
	TypeAppointmentCancelled = "appointment.cancelled"
)

// Envelope общий конверт события
type Envelope struct {
	EventID    string    `json:"eventId"`
	EventType  string    `json:"eventType"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

// AvailabilityUpdated расписание мастера изменилось
type AvailabilityUpdated struct {
	ProviderID     string    `json:"providerId"`
	AvailabilityID string    `json:"availabilityId"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// AppointmentChanged запись создана или отменена
type AppointmentChanged struct {
	AppointmentID      int64   `json:"appointmentId"`
	ProviderID         string  `json:"providerId"`
	ClientID           string  `json:"clientId"`
	Date               string  `json:"date"`
	StartTime          string  `json:"startTime"`
	EndTime            string  `json:"endTime"`
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}
