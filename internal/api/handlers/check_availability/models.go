package check_availability

import (
	"errors"
	"net/url"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/check_availability"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid time")
)

// CheckAvailabilityResponse HTTP response model
type CheckAvailabilityResponse struct {
	ProviderID string `json:"providerId"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Available  bool   `json:"available"`
	Reason     string `json:"reason"`
}

// ToUseCaseRequest собирает запрос из query: date, startTime, endTime обязательны
func ToUseCaseRequest(providerID string, query url.Values) (*checkAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		return nil, errInvalidDate
	}

	start, err := types.NewTimeStringFromString(query.Get("startTime"))
	if err != nil {
		return nil, errInvalidTime
	}
	end, err := types.NewTimeStringFromString(query.Get("endTime"))
	if err != nil {
		return nil, errInvalidTime
	}

	return &checkAvailability.Request{
		ProviderID: providerID,
		Date:       date,
		StartTime:  start,
		EndTime:    end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *CheckAvailabilityResponse {
	return &CheckAvailabilityResponse{
		ProviderID: resp.ProviderID,
		Date:       resp.Date.Format(domain.DateFormat),
		StartTime:  resp.StartTime.String(),
		EndTime:    resp.EndTime.String(),
		Available:  resp.Available,
		Reason:     string(resp.Reason),
	}
}
