package models

import (
	"time"

	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/domain"
)

// Request модели

// UpsertScheduleRequest запрос на создание/обновление расписания мастера на день недели
type UpsertScheduleRequest struct {
	MasterID   int64   `json:"masterId"`
	Weekday    int     `json:"weekday"`   // 0=воскресенье .. 6=суббота
	StartTime  string  `json:"startTime"` // "HH:MM"
	EndTime    string  `json:"endTime"`
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
}

// ToDomain конвертирует request в domain модель
func (r *UpsertScheduleRequest) ToDomain() *domain.WorkSchedule {
	return &domain.WorkSchedule{
		MasterID:   r.MasterID,
		Weekday:    r.Weekday,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		BreakStart: r.BreakStart,
		BreakEnd:   r.BreakEnd,
	}
}

// CreateAbsenceRequest запрос на создание отсутствия мастера
type CreateAbsenceRequest struct {
	MasterID  int64   `json:"masterId"`
	StartDate string  `json:"startDate"` // "YYYY-MM-DD"
	EndDate   string  `json:"endDate"`
	Reason    *string `json:"reason,omitempty"`
}

// Response модели

// ScheduleResponse ответ с данными расписания
type ScheduleResponse struct {
	ID         int64   `json:"id"`
	MasterID   int64   `json:"masterId"`
	Weekday    int     `json:"weekday"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
}

// ScheduleListResponse ответ со списком расписаний по дням недели
type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
}

// AbsenceResponse ответ с данными отсутствия
type AbsenceResponse struct {
	ID        int64   `json:"id"`
	MasterID  int64   `json:"masterId"`
	StartDate string  `json:"startDate"` // "YYYY-MM-DD"
	EndDate   string  `json:"endDate"`
	Reason    *string `json:"reason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// AbsenceListResponse ответ со списком отсутствий
type AbsenceListResponse struct {
	Absences []AbsenceResponse `json:"absences"`
}

// Методы конвертации

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(s *domain.WorkSchedule) *ScheduleResponse {
	if s == nil {
		return nil
	}

	return &ScheduleResponse{
		ID:         s.ID,
		MasterID:   s.MasterID,
		Weekday:    s.Weekday,
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		BreakStart: s.BreakStart,
		BreakEnd:   s.BreakEnd,
	}
}

// FromDomainScheduleList конвертирует список domain моделей в DTO
func FromDomainScheduleList(schedules []*domain.WorkSchedule) *ScheduleListResponse {
	resp := &ScheduleListResponse{
		Schedules: make([]ScheduleResponse, 0, len(schedules)),
	}

	for _, schedule := range schedules {
		if scheduleResp := FromDomainSchedule(schedule); scheduleResp != nil {
			resp.Schedules = append(resp.Schedules, *scheduleResp)
		}
	}

	return resp
}

// FromDomainAbsence конвертирует domain модель в DTO
func FromDomainAbsence(a *domain.Absence) *AbsenceResponse {
	if a == nil {
		return nil
	}

	return &AbsenceResponse{
		ID:        a.ID,
		MasterID:  a.MasterID,
		StartDate: a.StartDate.Format(domain.DateFormat),
		EndDate:   a.EndDate.Format(domain.DateFormat),
		Reason:    a.Reason,
		CreatedAt: a.CreatedAt,
	}
}

// FromDomainAbsenceList конвертирует список domain моделей в DTO
func FromDomainAbsenceList(absences []*domain.Absence) *AbsenceListResponse {
	resp := &AbsenceListResponse{
		Absences: make([]AbsenceResponse, 0, len(absences)),
	}

	for _, absence := range absences {
		if absenceResp := FromDomainAbsence(absence); absenceResp != nil {
			resp.Absences = append(resp.Absences, *absenceResp)
		}
	}

	return resp
}
