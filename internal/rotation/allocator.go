package rotation

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/domain"
)

// ErrInternal возвращается при ошибках чтения состояния ротации
var ErrInternal = errors.New("rotation: internal error")

// Allocator честная ротация мастеров команды: мастера с меньшим числом
// показов поднимаются выше, равные группы циклически сдвигаются от времени.
//
// Каждый вызов Rotate — это чтение и запись. Против потерянных обновлений
// при параллельных рендерах защиты нет: алгоритм статистический, недосчет
// одного показа допустим. Инкремент счетчика при этом атомарен на стороне
// хранилища (UpsertShown).
type Allocator struct {
	repo         RotationRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewAllocator создает новый аллокатор ротации
func NewAllocator(repo RotationRepository, logger Logger) *Allocator {
	return &Allocator{
		repo:         repo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестирования)
func (a *Allocator) WithTimeProvider(tp TimeProvider) *Allocator {
	a.timeProvider = tp
	return a
}

// entry рабочее представление мастера при сортировке
type entry struct {
	masterID int64
	state    domain.RotationState
}

// Rotate возвращает переупорядоченный по честности список мастеров и
// фиксирует показ каждого из них.
//
// Порядок: группы по возрастанию showCount; внутри группы сортировка по
// позиции, затем по давности показа; затем циклический сдвиг группы на
// (now mod размер группы), чтобы при полном равенстве не выигрывал всегда
// один и тот же мастер.
//
// Ошибка записи состояния отдельного мастера логируется и не прерывает
// выдачу: учет честности деградирует, ответ пользователю — нет.
func (a *Allocator) Rotate(ctx context.Context, teamID int64, masterIDs []int64) ([]int64, error) {
	if len(masterIDs) == 0 {
		return []int64{}, nil
	}

	now := a.timeProvider.Now()

	states, err := a.repo.GetStates(ctx, teamID, masterIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: Rotate - get states: %v", ErrInternal, err)
	}

	byMaster := make(map[int64]*domain.RotationState, len(states))
	for _, s := range states {
		byMaster[s.MasterID] = s
	}

	// Отсутствующие строки трактуются как "еще не показывался":
	// нулевой счетчик, позиция из входного списка, нулевая отметка времени
	entries := make([]entry, 0, len(masterIDs))
	for i, id := range masterIDs {
		e := entry{masterID: id}
		if s, ok := byMaster[id]; ok {
			e.state = *s
		} else {
			e.state = domain.RotationState{TeamID: teamID, MasterID: id, Position: i}
		}
		entries = append(entries, e)
	}

	ordered := orderEntries(entries, now.Unix())

	result := make([]int64, 0, len(ordered))
	for _, e := range ordered {
		result = append(result, e.masterID)
	}

	// Бухгалтерия показов: деградирует молча, выдачу не ломает
	for position, id := range result {
		if err := a.repo.UpsertShown(ctx, teamID, id, position, now); err != nil {
			a.logger.Warn("Rotate: failed to persist rotation state for team=%d master=%d: %v",
				teamID, id, err)
		}
	}

	return result, nil
}

// orderEntries строит честный порядок: группы по showCount, внутри группы
// сортировка (position, lastShownAt) и циклический сдвиг от времени
func orderEntries(entries []entry, nowUnix int64) []entry {
	groups := make(map[int64][]entry)
	counts := make([]int64, 0)

	for _, e := range entries {
		c := e.state.ShowCount
		if _, ok := groups[c]; !ok {
			counts = append(counts, c)
		}
		groups[c] = append(groups[c], e)
	}

	sort.Slice(counts, func(i, j int) bool { return counts[i] < counts[j] })

	result := make([]entry, 0, len(entries))
	for _, c := range counts {
		group := groups[c]

		sort.SliceStable(group, func(i, j int) bool {
			if group[i].state.Position != group[j].state.Position {
				return group[i].state.Position < group[j].state.Position
			}
			return group[i].state.LastShownAt.Before(group[j].state.LastShownAt)
		})

		offset := int(nowUnix % int64(len(group)))
		result = append(result, group[offset:]...)
		result = append(result, group[:offset]...)
	}

	return result
}
