package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модель запроса на получение слотов
type Request struct {
	ProviderID      string    // ID мастера
	StartDate       time.Time // Первый день периода (без времени)
	EndDate         time.Time // Последний день периода включительно, нулевое значение - один день
	ServiceDuration int       // Длительность услуги в минутах, 0 - по умолчанию
	SlotInterval    int       // Шаг сетки слотов в минутах, 0 - по умолчанию
	OnlyAvailable   bool      // Вернуть только свободные слоты
}

// Response модель ответа со слотами
type Response struct {
	ProviderID        string
	StartDate         time.Time
	EndDate           time.Time
	ServiceDuration   int
	SlotInterval      int
	Slots             []domain.AvailableTimeSlot
	AvailableCount    int
	UnavailableCount  int
	IsDefaultSchedule bool // Мастер ещё не сохранял расписание
}
