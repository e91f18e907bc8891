package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jzhekatroy/cursor-harmony-hub-sub001/pkg/ptr"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBooking_OccupiesTime(t *testing.T) {
	occupying := []BookingStatus{StatusNew, StatusConfirmed, StatusCompleted}
	for _, s := range occupying {
		b := Booking{Status: s}
		assert.True(t, b.OccupiesTime(), "status %s must occupy time", s)
	}

	freeing := []BookingStatus{StatusNoShow, StatusCancelledByClient, StatusCancelledBySalon}
	for _, s := range freeing {
		b := Booking{Status: s}
		assert.False(t, b.OccupiesTime(), "status %s must free the slot", s)
	}
}

func TestWorkSchedule_Validate(t *testing.T) {
	tests := []struct {
		name     string
		schedule WorkSchedule
		wantErr  bool
	}{
		{
			name:     "valid without break",
			schedule: WorkSchedule{Weekday: 1, StartTime: "09:00", EndTime: "18:00"},
		},
		{
			name: "valid with break",
			schedule: WorkSchedule{
				Weekday: 1, StartTime: "09:00", EndTime: "18:00",
				BreakStart: ptr.Ptr("13:00"), BreakEnd: ptr.Ptr("14:00"),
			},
		},
		{
			name:     "start equals end",
			schedule: WorkSchedule{Weekday: 1, StartTime: "09:00", EndTime: "09:00"},
			wantErr:  true,
		},
		{
			name:     "start after end",
			schedule: WorkSchedule{Weekday: 1, StartTime: "18:00", EndTime: "09:00"},
			wantErr:  true,
		},
		{
			name: "break start without end",
			schedule: WorkSchedule{
				Weekday: 1, StartTime: "09:00", EndTime: "18:00",
				BreakStart: ptr.Ptr("13:00"),
			},
			wantErr: true,
		},
		{
			name: "break outside window",
			schedule: WorkSchedule{
				Weekday: 1, StartTime: "09:00", EndTime: "18:00",
				BreakStart: ptr.Ptr("08:00"), BreakEnd: ptr.Ptr("09:30"),
			},
			wantErr: true,
		},
		{
			name: "inverted break",
			schedule: WorkSchedule{
				Weekday: 1, StartTime: "09:00", EndTime: "18:00",
				BreakStart: ptr.Ptr("14:00"), BreakEnd: ptr.Ptr("13:00"),
			},
			wantErr: true,
		},
		{
			name:     "weekday out of range",
			schedule: WorkSchedule{Weekday: 7, StartTime: "09:00", EndTime: "18:00"},
			wantErr:  true,
		},
		{
			name:     "malformed time",
			schedule: WorkSchedule{Weekday: 1, StartTime: "nine", EndTime: "18:00"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schedule.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidSchedule)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestAbsence_Covers(t *testing.T) {
	a := Absence{StartDate: date(2026, 3, 10), EndDate: date(2026, 3, 12)}

	assert.False(t, a.Covers(date(2026, 3, 9)))
	assert.True(t, a.Covers(date(2026, 3, 10)), "start date is inclusive")
	assert.True(t, a.Covers(date(2026, 3, 11)))
	assert.True(t, a.Covers(date(2026, 3, 12)), "end date is inclusive")
	assert.False(t, a.Covers(date(2026, 3, 13)))
}

func TestAbsence_Overlaps(t *testing.T) {
	existing := &Absence{StartDate: date(2026, 3, 10), EndDate: date(2026, 3, 20)}

	tests := []struct {
		name string
		a    Absence
		want bool
	}{
		{name: "start inside", a: Absence{StartDate: date(2026, 3, 15), EndDate: date(2026, 3, 25)}, want: true},
		{name: "end inside", a: Absence{StartDate: date(2026, 3, 5), EndDate: date(2026, 3, 15)}, want: true},
		{name: "fully containing", a: Absence{StartDate: date(2026, 3, 1), EndDate: date(2026, 3, 31)}, want: true},
		{name: "fully inside", a: Absence{StartDate: date(2026, 3, 12), EndDate: date(2026, 3, 14)}, want: true},
		{name: "touching start day", a: Absence{StartDate: date(2026, 3, 1), EndDate: date(2026, 3, 10)}, want: true},
		{name: "before", a: Absence{StartDate: date(2026, 3, 1), EndDate: date(2026, 3, 9)}, want: false},
		{name: "after", a: Absence{StartDate: date(2026, 3, 21), EndDate: date(2026, 3, 25)}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(existing))
		})
	}
}

func TestAbsence_Validate(t *testing.T) {
	valid := Absence{StartDate: date(2026, 3, 10), EndDate: date(2026, 3, 10)}
	require.NoError(t, valid.Validate(), "single-day absence is valid")

	inverted := Absence{StartDate: date(2026, 3, 12), EndDate: date(2026, 3, 10)}
	assert.ErrorIs(t, inverted.Validate(), ErrInvalidAbsence)

	empty := Absence{}
	assert.ErrorIs(t, empty.Validate(), ErrInvalidAbsence)
}

func TestTeamPolicy_Validate(t *testing.T) {
	valid := TeamPolicy{TeamID: 1, BookingStepMinutes: 30, Timezone: "Europe/Moscow"}
	require.NoError(t, valid.Validate())

	badStep := TeamPolicy{TeamID: 1, BookingStepMinutes: 20, Timezone: "Europe/Moscow"}
	assert.ErrorIs(t, badStep.Validate(), ErrInvalidTeamPolicy)

	noTZ := TeamPolicy{TeamID: 1, BookingStepMinutes: 30}
	assert.ErrorIs(t, noTZ.Validate(), ErrInvalidTeamPolicy)

	badTZ := TeamPolicy{TeamID: 1, BookingStepMinutes: 30, Timezone: "Mars/Olympus"}
	assert.ErrorIs(t, badTZ.Validate(), ErrInvalidTeamPolicy)
}

func TestTeamClock_DayRangeUTC(t *testing.T) {
	// Положительное смещение: местные сутки начинаются раньше по UTC
	moscow, err := NewTeamClock("Europe/Moscow", nil)
	require.NoError(t, err)

	from, to := moscow.DayRangeUTC(date(2026, 3, 10))
	assert.Equal(t, time.Date(2026, 3, 9, 21, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 3, 10, 21, 0, 0, 0, time.UTC), to)

	// Отрицательное смещение
	ny, err := NewTeamClock("America/New_York", nil)
	require.NoError(t, err)

	from, to = ny.DayRangeUTC(date(2026, 1, 15))
	assert.Equal(t, time.Date(2026, 1, 15, 5, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 1, 16, 5, 0, 0, 0, time.UTC), to)

	// Нецелое смещение (+05:30)
	kolkata, err := NewTeamClock("Asia/Kolkata", nil)
	require.NoError(t, err)

	from, to = kolkata.DayRangeUTC(date(2026, 6, 1))
	assert.Equal(t, time.Date(2026, 5, 31, 18, 30, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 6, 1, 18, 30, 0, 0, time.UTC), to)
}

func TestTeamClock_DayRangeUTC_DSTTransition(t *testing.T) {
	// 8 марта 2026 в Нью-Йорке сутки длятся 23 часа (переход на летнее время)
	ny, err := NewTeamClock("America/New_York", nil)
	require.NoError(t, err)

	from, to := ny.DayRangeUTC(date(2026, 3, 8))
	assert.Equal(t, 23*time.Hour, to.Sub(from), "spring-forward day is 23 hours")

	// 1 ноября 2026 — 25 часов (переход на зимнее время)
	from, to = ny.DayRangeUTC(date(2026, 11, 1))
	assert.Equal(t, 25*time.Hour, to.Sub(from), "fall-back day is 25 hours")
}

func TestTeamClock_IsTodayAndNowMinutes(t *testing.T) {
	// 21:30 UTC = 00:30 следующего дня в Москве
	nowFn := func() time.Time {
		return time.Date(2026, 3, 9, 21, 30, 0, 0, time.UTC)
	}

	moscow, err := NewTeamClock("Europe/Moscow", nowFn)
	require.NoError(t, err)

	assert.True(t, moscow.IsToday(date(2026, 3, 10)), "team-local date is already March 10")
	assert.False(t, moscow.IsToday(date(2026, 3, 9)))
	assert.Equal(t, 30, moscow.NowMinutes())
}
