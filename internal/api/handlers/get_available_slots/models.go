package get_available_slots

import (
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
)

var (
	errMissingDate     = errors.New("date or startDate is required")
	errInvalidDate     = errors.New("invalid date")
	errInvalidNumber   = errors.New("invalid number")
	errInvalidFlag     = errors.New("invalid onlyAvailable")
	errAmbiguousPeriod = errors.New("date cannot be combined with startDate/endDate")
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ProviderID        string          `json:"providerId"`
	StartDate         string          `json:"startDate"`
	EndDate           string          `json:"endDate"`
	ServiceDuration   int             `json:"serviceDuration"`
	SlotInterval      int             `json:"slotInterval"`
	AvailableCount    int             `json:"availableCount"`
	UnavailableCount  int             `json:"unavailableCount"`
	IsDefaultSchedule bool            `json:"isDefaultSchedule"`
	Slots             []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Duration    int    `json:"duration"`
	IsAvailable bool   `json:"isAvailable"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Date:        slot.Date,
			StartTime:   slot.StartTime.String(),
			EndTime:     slot.EndTime.String(),
			Duration:    slot.Duration,
			IsAvailable: slot.IsAvailable,
		}
	}

	return &AvailableSlotsResponse{
		ProviderID:        resp.ProviderID,
		StartDate:         resp.StartDate.Format(domain.DateFormat),
		EndDate:           resp.EndDate.Format(domain.DateFormat),
		ServiceDuration:   resp.ServiceDuration,
		SlotInterval:      resp.SlotInterval,
		AvailableCount:    resp.AvailableCount,
		UnavailableCount:  resp.UnavailableCount,
		IsDefaultSchedule: resp.IsDefaultSchedule,
		Slots:             slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров.
// Период задается либо date, либо startDate (+ необязательный endDate).
func ToUseCaseRequest(providerID string, query url.Values) (*getAvailableSlots.Request, error) {
	req := &getAvailableSlots.Request{ProviderID: providerID}

	date, startDate, endDate := query.Get("date"), query.Get("startDate"), query.Get("endDate")
	switch {
	case date != "" && (startDate != "" || endDate != ""):
		return nil, errAmbiguousPeriod
	case date != "":
		startDate = date
	case startDate == "":
		return nil, errMissingDate
	}

	var err error
	if req.StartDate, err = time.Parse(domain.DateFormat, startDate); err != nil {
		return nil, errInvalidDate
	}
	if endDate != "" {
		if req.EndDate, err = time.Parse(domain.DateFormat, endDate); err != nil {
			return nil, errInvalidDate
		}
	}

	if req.ServiceDuration, err = optionalInt(query.Get("duration")); err != nil {
		return nil, err
	}
	if req.SlotInterval, err = optionalInt(query.Get("interval")); err != nil {
		return nil, err
	}

	if raw := query.Get("onlyAvailable"); raw != "" {
		if req.OnlyAvailable, err = strconv.ParseBool(raw); err != nil {
			return nil, errInvalidFlag
		}
	}

	return req, nil
}

func optionalInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errInvalidNumber
	}
	return v, nil
}
