package rotation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/domain"
)

// fakeRotationRepo хранит состояние в памяти и воспроизводит семантику
// UpsertShown: создание строки либо атомарный инкремент счетчика
type fakeRotationRepo struct {
	states map[int64]*domain.RotationState // masterID -> state

	getErr    error
	upsertErr error
}

func newFakeRotationRepo() *fakeRotationRepo {
	return &fakeRotationRepo{states: make(map[int64]*domain.RotationState)}
}

func (f *fakeRotationRepo) GetStates(_ context.Context, teamID int64, masterIDs []int64) ([]*domain.RotationState, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	result := make([]*domain.RotationState, 0, len(masterIDs))
	for _, id := range masterIDs {
		if s, ok := f.states[id]; ok {
			copied := *s
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeRotationRepo) UpsertShown(_ context.Context, teamID, masterID int64, position int, shownAt time.Time) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if s, ok := f.states[masterID]; ok {
		s.Position = position
		s.ShowCount++
		s.LastShownAt = shownAt
		return nil
	}
	f.states[masterID] = &domain.RotationState{
		TeamID:      teamID,
		MasterID:    masterID,
		Position:    position,
		ShowCount:   1,
		LastShownAt: shownAt,
	}
	return nil
}

type fixedTimeProvider struct {
	t time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.t
}

type countingLogger struct {
	warns int
}

func (l *countingLogger) Info(string, ...interface{})  {}
func (l *countingLogger) Warn(string, ...interface{})  { l.warns++ }
func (l *countingLogger) Error(string, ...interface{}) {}

const testTeamID = int64(42)

// timeWithOffset возвращает момент времени с заданным остатком
// Unix-секунд по модулю mod
func timeWithOffset(mod int64, offset int64) time.Time {
	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	rem := base.Unix() % mod
	return base.Add(time.Duration((mod-rem+offset)%mod) * time.Second)
}

func TestRotate_EmptyInput(t *testing.T) {
	allocator := NewAllocator(newFakeRotationRepo(), &countingLogger{})

	result, err := allocator.Rotate(context.Background(), testTeamID, nil)
	require.NoError(t, err)
	assert.Empty(t, result)
	assert.NotNil(t, result)
}

func TestRotate_NoStatesKeepsInputOrder(t *testing.T) {
	// Строк состояния нет, сдвиг нулевой: порядок входа сохраняется
	repo := newFakeRotationRepo()
	allocator := NewAllocator(repo, &countingLogger{}).
		WithTimeProvider(&fixedTimeProvider{t: timeWithOffset(3, 0)})

	result, err := allocator.Rotate(context.Background(), testTeamID, []int64{10, 20, 30})
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 20, 30}, result)

	// Показ каждого зафиксирован
	for _, id := range []int64{10, 20, 30} {
		require.Contains(t, repo.states, id)
		assert.Equal(t, int64(1), repo.states[id].ShowCount)
	}
}

func TestRotate_CyclicShiftOnFullTie(t *testing.T) {
	// Все счетчики равны: группа из трех сдвигается на now mod 3 == 1
	allocator := NewAllocator(newFakeRotationRepo(), &countingLogger{}).
		WithTimeProvider(&fixedTimeProvider{t: timeWithOffset(3, 1)})

	result, err := allocator.Rotate(context.Background(), testTeamID, []int64{10, 20, 30})
	require.NoError(t, err)
	assert.Equal(t, []int64{20, 30, 10}, result)
}

func TestRotate_FewerShowsComeFirst(t *testing.T) {
	repo := newFakeRotationRepo()
	shownAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	repo.states[10] = &domain.RotationState{TeamID: testTeamID, MasterID: 10, Position: 0, ShowCount: 5, LastShownAt: shownAt}
	repo.states[20] = &domain.RotationState{TeamID: testTeamID, MasterID: 20, Position: 1, ShowCount: 2, LastShownAt: shownAt}
	repo.states[30] = &domain.RotationState{TeamID: testTeamID, MasterID: 30, Position: 2, ShowCount: 5, LastShownAt: shownAt}

	allocator := NewAllocator(repo, &countingLogger{}).
		WithTimeProvider(&fixedTimeProvider{t: timeWithOffset(2, 0)})

	result, err := allocator.Rotate(context.Background(), testTeamID, []int64{10, 20, 30})
	require.NoError(t, err)
	// 20 один в младшей группе; 10 и 30 в группе с count=5, сдвиг 0
	assert.Equal(t, []int64{20, 10, 30}, result)
}

func TestRotate_FirstPositionRotatesOverTime(t *testing.T) {
	// Показ фиксируется для всех мастеров разом, счетчики растут синхронно,
	// поэтому честность проявляется в первой позиции: за серию вызовов
	// наверху должен побывать каждый
	repo := newFakeRotationRepo()
	masterIDs := []int64{10, 20, 30, 40}

	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	tp := &fixedTimeProvider{t: now}
	allocator := NewAllocator(repo, &countingLogger{}).WithTimeProvider(tp)

	firstSeen := make(map[int64]int)
	for i := 0; i < 100; i++ {
		tp.t = now.Add(time.Duration(i) * 17 * time.Second)
		result, err := allocator.Rotate(context.Background(), testTeamID, masterIDs)
		require.NoError(t, err)
		require.Len(t, result, len(masterIDs))
		firstSeen[result[0]]++
	}

	for _, id := range masterIDs {
		assert.Greater(t, firstSeen[id], 0, "мастер %d ни разу не был первым", id)
	}

	// Счетчики при полной выдаче растут синхронно
	for _, id := range masterIDs {
		assert.Equal(t, int64(100), repo.states[id].ShowCount)
	}
}

func TestRotate_UpsertErrorDoesNotBreakResult(t *testing.T) {
	repo := newFakeRotationRepo()
	repo.upsertErr = errors.New("deadlock detected")
	logger := &countingLogger{}

	allocator := NewAllocator(repo, logger).
		WithTimeProvider(&fixedTimeProvider{t: timeWithOffset(2, 0)})

	result, err := allocator.Rotate(context.Background(), testTeamID, []int64{10, 20})
	require.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, 2, logger.warns)
}

func TestRotate_GetStatesErrorPropagates(t *testing.T) {
	repo := newFakeRotationRepo()
	repo.getErr = errors.New("connection refused")

	allocator := NewAllocator(repo, &countingLogger{})

	_, err := allocator.Rotate(context.Background(), testTeamID, []int64{10})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
}
