package slots

import (
	"context"
	"fmt"

	"github.com/jzhekatroy/cursor-harmony-hub-sub001/pkg/timegrid"
)

// DefaultCutoffBufferMinutes буфер отсечения слотов на сегодня: слот с началом
// не позже, чем через буфер от текущей минуты, блокируется.
// Зафиксирован константой с единственной точкой переопределения
// (WithCutoffBuffer); делать его настройкой команды пока не решили.
const DefaultCutoffBufferMinutes = 15

// SlotGenerator генерирует кандидаты слотов на день, размечая каждый как
// доступный или заблокированный с причиной.
// Единственная реализация алгоритма: и публичная выдача, и диагностика
// используют Generate, различаясь лишь фильтрацией результата.
type SlotGenerator struct {
	resolver            *WorkWindowResolver
	occupancy           *OccupancyIndex
	cutoffBufferMinutes int
	logger              Logger
}

// NewSlotGenerator создает новый генератор слотов
func NewSlotGenerator(resolver *WorkWindowResolver, occupancy *OccupancyIndex, logger Logger) *SlotGenerator {
	return &SlotGenerator{
		resolver:            resolver,
		occupancy:           occupancy,
		cutoffBufferMinutes: DefaultCutoffBufferMinutes,
		logger:              logger,
	}
}

// WithCutoffBuffer переопределяет буфер отсечения (для тестов и отладки)
func (g *SlotGenerator) WithCutoffBuffer(minutes int) *SlotGenerator {
	g.cutoffBufferMinutes = minutes
	return g
}

// Generate возвращает упорядоченный список кандидатов слотов на дату.
// Кандидаты идут от начала рабочего окна с шагом сетки, пока слот целиком
// помещается в окно (только точное попадание, без усечения).
// Причины блокировки проверяются в фиксированном порядке приоритета:
// перерыв, отсечение по текущему времени, конфликт с бронированием.
// Если мастер не работает в дату, возвращается пустой список.
func (g *SlotGenerator) Generate(ctx context.Context, req GenerateRequest) ([]Slot, error) {
	if req.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDuration, req.DurationMinutes)
	}
	if req.StepMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidStep, req.StepMinutes)
	}

	resolution, err := g.resolver.Resolve(ctx, req.MasterID, req.Date)
	if err != nil {
		return nil, err
	}
	if !resolution.Working {
		g.logger.Info("SlotGenerator: master=%d not working on %s: %s",
			req.MasterID, req.Date.Format("2006-01-02"), resolution.Reason)
		return []Slot{}, nil
	}

	busy, err := g.occupancy.IntervalsOn(ctx, req.MasterID, req.Date, req.Clock)
	if err != nil {
		return nil, err
	}

	window := resolution.Window
	isToday := req.Clock.IsToday(req.Date)
	nowMinutes := req.Clock.NowMinutes()

	result := make([]Slot, 0, (window.End-window.Start)/req.StepMinutes+1)

	for start := window.Start; start+req.DurationMinutes <= window.End; start += req.StepMinutes {
		end := start + req.DurationMinutes

		slot := Slot{Start: start, End: end, Status: SlotAvailable}

		switch {
		case window.HasBreak() && timegrid.Overlaps(start, end, *window.BreakStart, *window.BreakEnd):
			slot.Status = SlotBlocked
			slot.Reason = BlockBreak

		case isToday && start <= nowMinutes+g.cutoffBufferMinutes:
			slot.Status = SlotBlocked
			slot.Reason = BlockTooSoon

		case timegrid.OverlapsAny(start, end, busy):
			slot.Status = SlotBlocked
			slot.Reason = BlockOccupied
		}

		result = append(result, slot)
	}

	return result, nil
}

// FilterAvailable возвращает только доступные слоты, сохраняя порядок
func FilterAvailable(all []Slot) []Slot {
	available := make([]Slot, 0, len(all))
	for _, s := range all {
		if s.IsAvailable() {
			available = append(available, s)
		}
	}
	return available
}
