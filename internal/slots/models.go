package slots

import (
	"time"

	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/domain"
)

// NotWorkingReason причина, по которой мастер не работает в дату
type NotWorkingReason string

const (
	ReasonNoSchedule NotWorkingReason = "no schedule for weekday"
	ReasonAbsence    NotWorkingReason = "absence"
)

// WorkWindow рабочее окно мастера в минутах от начала локальных суток
type WorkWindow struct {
	Start      int
	End        int
	BreakStart *int // оба поля перерыва либо заданы, либо nil
	BreakEnd   *int
}

// HasBreak возвращает true, если в окне задан перерыв
func (w WorkWindow) HasBreak() bool {
	return w.BreakStart != nil && w.BreakEnd != nil
}

// WindowResolution результат резолвинга рабочего окна.
// Window имеет смысл только при Working == true; вызывающий обязан
// проверить флаг, прежде чем пользоваться окном.
type WindowResolution struct {
	Working bool
	Reason  NotWorkingReason
	Window  WorkWindow
}

// SlotStatus статус кандидата слота
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBlocked   SlotStatus = "blocked"
)

// BlockReason причина блокировки кандидата слота
type BlockReason string

const (
	BlockBreak    BlockReason = "break"
	BlockTooSoon  BlockReason = "past or too soon"
	BlockOccupied BlockReason = "occupied"
)

// Slot кандидат слота для бронирования. Start/End — минуты от начала
// локальных суток команды; Reason заполнен только для заблокированных.
type Slot struct {
	Start  int
	End    int
	Status SlotStatus
	Reason BlockReason
}

// IsAvailable возвращает true, если слот доступен для бронирования
func (s Slot) IsAvailable() bool {
	return s.Status == SlotAvailable
}

// GenerateRequest параметры генерации слотов на день
type GenerateRequest struct {
	MasterID        int64
	Date            time.Time // календарная дата, время игнорируется
	DurationMinutes int       // длительность услуги
	StepMinutes     int       // шаг сетки из политики команды
	Clock           domain.TeamClock
}
