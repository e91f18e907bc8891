package slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/domain"
	scheduleRepo "github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/infra/storage/schedule"
	"github.com/jzhekatroy/cursor-harmony-hub-sub001/pkg/ptr"
)

// Фейки репозиториев

type fakeScheduleRepo struct {
	schedules map[int]*domain.WorkSchedule // weekday -> schedule
	err       error
}

func (f *fakeScheduleRepo) GetByMasterAndWeekday(_ context.Context, _ int64, weekday int) (*domain.WorkSchedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	if s, ok := f.schedules[weekday]; ok {
		return s, nil
	}
	return nil, scheduleRepo.ErrScheduleNotFound
}

type fakeAbsenceRepo struct {
	absences []*domain.Absence
	err      error
}

func (f *fakeAbsenceRepo) ListCovering(_ context.Context, _ int64, date time.Time) ([]*domain.Absence, error) {
	if f.err != nil {
		return nil, f.err
	}
	covering := make([]*domain.Absence, 0)
	for _, a := range f.absences {
		if a.Covers(date) {
			covering = append(covering, a)
		}
	}
	return covering, nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) ListOccupying(_ context.Context, masterID int64, from, to time.Time) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.MasterID != masterID || !b.OccupiesTime() {
			continue
		}
		if b.StartAt.Before(to) && b.EndAt.After(from) {
			result = append(result, b)
		}
	}
	return result, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Хелперы

const testMasterID = int64(7)

// tuesday 2026-09-15
var testDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

func moscowClock(t *testing.T, now time.Time) domain.TeamClock {
	t.Helper()
	clock, err := domain.NewTeamClock("Europe/Moscow", func() time.Time { return now })
	require.NoError(t, err)
	return clock
}

// now задолго до testDate, чтобы отсечение "сегодня" не срабатывало
func pastClock(t *testing.T) domain.TeamClock {
	return moscowClock(t, time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC))
}

func fullDaySchedule(start, end string) map[int]*domain.WorkSchedule {
	return map[int]*domain.WorkSchedule{
		2: {MasterID: testMasterID, Weekday: 2, StartTime: start, EndTime: end},
	}
}

func newGenerator(schedules map[int]*domain.WorkSchedule, absences []*domain.Absence, bookings []*domain.Booking) *SlotGenerator {
	resolver := NewWorkWindowResolver(
		&fakeScheduleRepo{schedules: schedules},
		&fakeAbsenceRepo{absences: absences},
		nopLogger{},
	)
	occupancy := NewOccupancyIndex(&fakeBookingRepo{bookings: bookings}, nopLogger{})
	return NewSlotGenerator(resolver, occupancy, nopLogger{})
}

// bookingAt создает бронирование мастера на интервал локальных минут testDate
func bookingAt(clock domain.TeamClock, startMin, endMin int, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:       1,
		MasterID: testMasterID,
		StartAt:  clock.MinutesToTime(testDate, startMin),
		EndAt:    clock.MinutesToTime(testDate, endMin),
		Status:   status,
	}
}

// WorkWindowResolver

func TestResolver_NoScheduleForWeekday(t *testing.T) {
	resolver := NewWorkWindowResolver(&fakeScheduleRepo{}, &fakeAbsenceRepo{}, nopLogger{})

	res, err := resolver.Resolve(context.Background(), testMasterID, testDate)
	require.NoError(t, err)
	assert.False(t, res.Working)
	assert.Equal(t, ReasonNoSchedule, res.Reason)
}

func TestResolver_AbsenceWinsOverSchedule(t *testing.T) {
	absence := &domain.Absence{
		MasterID:  testMasterID,
		StartDate: testDate.AddDate(0, 0, -2),
		EndDate:   testDate.AddDate(0, 0, 3),
	}
	resolver := NewWorkWindowResolver(
		&fakeScheduleRepo{schedules: fullDaySchedule("09:00", "18:00")},
		&fakeAbsenceRepo{absences: []*domain.Absence{absence}},
		nopLogger{},
	)

	res, err := resolver.Resolve(context.Background(), testMasterID, testDate)
	require.NoError(t, err)
	assert.False(t, res.Working)
	assert.Equal(t, ReasonAbsence, res.Reason)
}

func TestResolver_WorkingWindowWithBreak(t *testing.T) {
	schedules := map[int]*domain.WorkSchedule{
		2: {
			MasterID:   testMasterID,
			Weekday:    2,
			StartTime:  "09:00",
			EndTime:    "18:00",
			BreakStart: ptr.Ptr("13:00"),
			BreakEnd:   ptr.Ptr("14:00"),
		},
	}
	resolver := NewWorkWindowResolver(&fakeScheduleRepo{schedules: schedules}, &fakeAbsenceRepo{}, nopLogger{})

	res, err := resolver.Resolve(context.Background(), testMasterID, testDate)
	require.NoError(t, err)
	require.True(t, res.Working)
	assert.Equal(t, 540, res.Window.Start)
	assert.Equal(t, 1080, res.Window.End)
	require.True(t, res.Window.HasBreak())
	assert.Equal(t, 780, *res.Window.BreakStart)
	assert.Equal(t, 840, *res.Window.BreakEnd)
}

func TestResolver_CorruptScheduleTime(t *testing.T) {
	resolver := NewWorkWindowResolver(
		&fakeScheduleRepo{schedules: fullDaySchedule("9am", "18:00")},
		&fakeAbsenceRepo{},
		nopLogger{},
	)

	_, err := resolver.Resolve(context.Background(), testMasterID, testDate)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorruptSchedule)
}

func TestResolver_RepoErrorPropagates(t *testing.T) {
	resolver := NewWorkWindowResolver(
		&fakeScheduleRepo{err: errors.New("connection refused")},
		&fakeAbsenceRepo{},
		nopLogger{},
	)

	_, err := resolver.Resolve(context.Background(), testMasterID, testDate)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
}

// OccupancyIndex

func TestOccupancy_MapsBookingsToLocalMinutes(t *testing.T) {
	clock := pastClock(t)
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		bookingAt(clock, 600, 660, domain.StatusConfirmed), // 10:00-11:00
		bookingAt(clock, 540, 570, domain.StatusNew),       // 09:00-09:30
	}}
	index := NewOccupancyIndex(repo, nopLogger{})

	intervals, err := index.IntervalsOn(context.Background(), testMasterID, testDate, clock)
	require.NoError(t, err)
	require.Len(t, intervals, 2)
	// Отсортированы по началу
	assert.Equal(t, 540, intervals[0].Start)
	assert.Equal(t, 570, intervals[0].End)
	assert.Equal(t, 600, intervals[1].Start)
	assert.Equal(t, 660, intervals[1].End)
}

func TestOccupancy_SkipsCancelled(t *testing.T) {
	clock := pastClock(t)
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		bookingAt(clock, 600, 660, domain.StatusCancelledByClient),
		bookingAt(clock, 700, 730, domain.StatusNoShow),
	}}
	index := NewOccupancyIndex(repo, nopLogger{})

	intervals, err := index.IntervalsOn(context.Background(), testMasterID, testDate, clock)
	require.NoError(t, err)
	assert.Empty(t, intervals)
}

func TestOccupancy_ClampsBookingCrossingMidnight(t *testing.T) {
	clock := pastClock(t)
	// Бронирование начинается накануне и заканчивается в 01:00 запрошенного дня
	b := &domain.Booking{
		ID:       1,
		MasterID: testMasterID,
		StartAt:  clock.MinutesToTime(testDate.AddDate(0, 0, -1), 1380), // 23:00 накануне
		EndAt:    clock.MinutesToTime(testDate, 60),                     // 01:00
		Status:   domain.StatusConfirmed,
	}
	index := NewOccupancyIndex(&fakeBookingRepo{bookings: []*domain.Booking{b}}, nopLogger{})

	intervals, err := index.IntervalsOn(context.Background(), testMasterID, testDate, clock)
	require.NoError(t, err)
	require.Len(t, intervals, 1)
	assert.Equal(t, 0, intervals[0].Start)
	assert.Equal(t, 60, intervals[0].End)
}

func TestOccupancy_NonIntegerUTCOffset(t *testing.T) {
	// Калькутта UTC+5:30: 10:00 местного = 04:30 UTC
	clock, err := domain.NewTeamClock("Asia/Kolkata", func() time.Time {
		return time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	})
	require.NoError(t, err)

	b := &domain.Booking{
		ID:       1,
		MasterID: testMasterID,
		StartAt:  time.Date(2026, 9, 15, 4, 30, 0, 0, time.UTC),
		EndAt:    time.Date(2026, 9, 15, 5, 30, 0, 0, time.UTC),
		Status:   domain.StatusConfirmed,
	}
	index := NewOccupancyIndex(&fakeBookingRepo{bookings: []*domain.Booking{b}}, nopLogger{})

	intervals, err := index.IntervalsOn(context.Background(), testMasterID, testDate, clock)
	require.NoError(t, err)
	require.Len(t, intervals, 1)
	assert.Equal(t, 600, intervals[0].Start) // 10:00
	assert.Equal(t, 660, intervals[0].End)   // 11:00
}

func TestOccupancy_NegativeOffsetWithDST(t *testing.T) {
	// Нью-Йорк в сентябре на летнем времени, UTC-4: 09:00 местного = 13:00 UTC
	clock, err := domain.NewTeamClock("America/New_York", func() time.Time {
		return time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	})
	require.NoError(t, err)

	b := &domain.Booking{
		ID:       1,
		MasterID: testMasterID,
		StartAt:  time.Date(2026, 9, 15, 13, 0, 0, 0, time.UTC),
		EndAt:    time.Date(2026, 9, 15, 14, 0, 0, 0, time.UTC),
		Status:   domain.StatusConfirmed,
	}
	index := NewOccupancyIndex(&fakeBookingRepo{bookings: []*domain.Booking{b}}, nopLogger{})

	intervals, err := index.IntervalsOn(context.Background(), testMasterID, testDate, clock)
	require.NoError(t, err)
	require.Len(t, intervals, 1)
	assert.Equal(t, 540, intervals[0].Start) // 09:00 местного
	assert.Equal(t, 600, intervals[0].End)
}

// SlotGenerator

func TestGenerator_BreakCarveOut(t *testing.T) {
	// Расписание 09:00-18:00, перерыв 13:00-14:00, шаг 30, длительность 60:
	// 12:30 и 13:30 задевают перерыв, 12:00 и 14:00 — нет
	schedules := map[int]*domain.WorkSchedule{
		2: {
			MasterID:   testMasterID,
			Weekday:    2,
			StartTime:  "09:00",
			EndTime:    "18:00",
			BreakStart: ptr.Ptr("13:00"),
			BreakEnd:   ptr.Ptr("14:00"),
		},
	}
	g := newGenerator(schedules, nil, nil)

	result, err := g.Generate(context.Background(), GenerateRequest{
		MasterID:        testMasterID,
		Date:            testDate,
		DurationMinutes: 60,
		StepMinutes:     30,
		Clock:           pastClock(t),
	})
	require.NoError(t, err)

	byStart := make(map[int]Slot, len(result))
	for _, s := range result {
		byStart[s.Start] = s
	}

	assert.True(t, byStart[720].IsAvailable(), "12:00 должен быть доступен")
	assert.False(t, byStart[750].IsAvailable(), "12:30 задевает перерыв")
	assert.Equal(t, BlockBreak, byStart[750].Reason)
	assert.False(t, byStart[780].IsAvailable(), "13:00 внутри перерыва")
	assert.False(t, byStart[810].IsAvailable(), "13:30 задевает перерыв")
	assert.Equal(t, BlockBreak, byStart[810].Reason)
	assert.True(t, byStart[840].IsAvailable(), "14:00 должен быть доступен")
}

func TestGenerator_ExactAbutment(t *testing.T) {
	// Бронирование 10:00-11:00, шаг 30, длительность 30:
	// 09:30-10:00 и 11:00-11:30 доступны (полуоткрытые интервалы),
	// 10:00 и 10:30 заняты
	clock := pastClock(t)
	bookings := []*domain.Booking{bookingAt(clock, 600, 660, domain.StatusConfirmed)}
	g := newGenerator(fullDaySchedule("09:00", "12:00"), nil, bookings)

	result, err := g.Generate(context.Background(), GenerateRequest{
		MasterID:        testMasterID,
		Date:            testDate,
		DurationMinutes: 30,
		StepMinutes:     30,
		Clock:           clock,
	})
	require.NoError(t, err)

	byStart := make(map[int]Slot, len(result))
	for _, s := range result {
		byStart[s.Start] = s
	}

	assert.True(t, byStart[570].IsAvailable(), "09:30-10:00 примыкает к брони, но не пересекается")
	assert.False(t, byStart[600].IsAvailable())
	assert.Equal(t, BlockOccupied, byStart[600].Reason)
	assert.False(t, byStart[630].IsAvailable())
	assert.True(t, byStart[660].IsAvailable(), "11:00-11:30 начинается ровно в конце брони")
}

func TestGenerator_NoScheduleGivesEmpty(t *testing.T) {
	g := newGenerator(nil, nil, nil)

	result, err := g.Generate(context.Background(), GenerateRequest{
		MasterID:        testMasterID,
		Date:            testDate,
		DurationMinutes: 30,
		StepMinutes:     30,
		Clock:           pastClock(t),
	})
	require.NoError(t, err)
	assert.Empty(t, result)
	assert.NotNil(t, result)
}

func TestGenerator_AbsenceGivesEmpty(t *testing.T) {
	absence := &domain.Absence{
		MasterID:  testMasterID,
		StartDate: testDate,
		EndDate:   testDate,
	}
	g := newGenerator(fullDaySchedule("09:00", "18:00"), []*domain.Absence{absence}, nil)

	result, err := g.Generate(context.Background(), GenerateRequest{
		MasterID:        testMasterID,
		Date:            testDate,
		DurationMinutes: 30,
		StepMinutes:     30,
		Clock:           pastClock(t),
	})
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestGenerator_TodayCutoff(t *testing.T) {
	// Сейчас 12:00 по Москве в testDate; буфер 15 минут:
	// слоты с началом <= 12:15 блокируются
	clock := moscowClock(t, clock0900UTC())

	g := newGenerator(fullDaySchedule("09:00", "18:00"), nil, nil)

	result, err := g.Generate(context.Background(), GenerateRequest{
		MasterID:        testMasterID,
		Date:            testDate,
		DurationMinutes: 30,
		StepMinutes:     15,
		Clock:           clock,
	})
	require.NoError(t, err)

	for _, s := range result {
		if s.Start <= 735 { // 12:15
			assert.False(t, s.IsAvailable(), "слот %d должен быть отсечен", s.Start)
			assert.Equal(t, BlockTooSoon, s.Reason)
		} else {
			assert.True(t, s.IsAvailable(), "слот %d должен быть доступен", s.Start)
		}
	}
}

// 09:00 UTC testDate = 12:00 по Москве
func clock0900UTC() time.Time {
	return time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC)
}

func TestGenerator_ExactFitAtWindowEnd(t *testing.T) {
	// Окно 09:00-10:00, длительность 60: единственный слот 09:00-10:00
	g := newGenerator(fullDaySchedule("09:00", "10:00"), nil, nil)

	result, err := g.Generate(context.Background(), GenerateRequest{
		MasterID:        testMasterID,
		Date:            testDate,
		DurationMinutes: 60,
		StepMinutes:     30,
		Clock:           pastClock(t),
	})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, 540, result[0].Start)
	assert.Equal(t, 600, result[0].End)
	assert.True(t, result[0].IsAvailable())
}

func TestGenerator_DurationLongerThanWindow(t *testing.T) {
	g := newGenerator(fullDaySchedule("09:00", "10:00"), nil, nil)

	result, err := g.Generate(context.Background(), GenerateRequest{
		MasterID:        testMasterID,
		Date:            testDate,
		DurationMinutes: 90,
		StepMinutes:     30,
		Clock:           pastClock(t),
	})
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestGenerator_InvalidInput(t *testing.T) {
	g := newGenerator(fullDaySchedule("09:00", "18:00"), nil, nil)

	_, err := g.Generate(context.Background(), GenerateRequest{
		MasterID:        testMasterID,
		Date:            testDate,
		DurationMinutes: 0,
		StepMinutes:     30,
		Clock:           pastClock(t),
	})
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = g.Generate(context.Background(), GenerateRequest{
		MasterID:        testMasterID,
		Date:            testDate,
		DurationMinutes: 30,
		StepMinutes:     -5,
		Clock:           pastClock(t),
	})
	assert.ErrorIs(t, err, ErrInvalidStep)
}

func TestGenerator_BreakPrecedesOccupied(t *testing.T) {
	// Слот, попадающий и в перерыв, и в бронь, помечается причиной break
	clock := pastClock(t)
	schedules := map[int]*domain.WorkSchedule{
		2: {
			MasterID:   testMasterID,
			Weekday:    2,
			StartTime:  "09:00",
			EndTime:    "18:00",
			BreakStart: ptr.Ptr("13:00"),
			BreakEnd:   ptr.Ptr("14:00"),
		},
	}
	bookings := []*domain.Booking{bookingAt(clock, 780, 840, domain.StatusConfirmed)}
	g := newGenerator(schedules, nil, bookings)

	result, err := g.Generate(context.Background(), GenerateRequest{
		MasterID:        testMasterID,
		Date:            testDate,
		DurationMinutes: 60,
		StepMinutes:     60,
		Clock:           clock,
	})
	require.NoError(t, err)

	for _, s := range result {
		if s.Start == 780 {
			assert.Equal(t, BlockBreak, s.Reason)
		}
	}
}

func TestFilterAvailable_KeepsOrder(t *testing.T) {
	all := []Slot{
		{Start: 540, End: 570, Status: SlotAvailable},
		{Start: 570, End: 600, Status: SlotBlocked, Reason: BlockOccupied},
		{Start: 600, End: 630, Status: SlotAvailable},
	}

	available := FilterAvailable(all)
	require.Len(t, available, 2)
	assert.Equal(t, 540, available[0].Start)
	assert.Equal(t, 600, available[1].Start)
}
