package timetable

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/domain"
	absenceRepo "github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/infra/storage/absence"
	scheduleRepo "github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/infra/storage/schedule"
	"github.com/jzhekatroy/cursor-harmony-hub-sub001/internal/service/timetable/models"
)

// Service сервис управления расписаниями и отсутствиями мастеров
type Service struct {
	scheduleRepo ScheduleRepository
	absenceRepo  AbsenceRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	absenceRepo AbsenceRepository,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		absenceRepo:  absenceRepo,
		logger:       logger,
	}
}

// UpsertSchedule создает или обновляет расписание мастера на день недели
func (s *Service) UpsertSchedule(ctx context.Context, req *models.UpsertScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpsertSchedule: master=%d weekday=%d %s-%s", req.MasterID, req.Weekday, req.StartTime, req.EndTime)

	schedule := req.ToDomain()
	if err := schedule.Validate(); err != nil {
		s.logger.Warn("UpsertSchedule: invalid schedule for master=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := s.scheduleRepo.Upsert(ctx, schedule)
	if err != nil {
		s.logger.Error("UpsertSchedule: repository error for master=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: UpsertSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertSchedule: saved schedule id=%d for master=%d weekday=%d", saved.ID, saved.MasterID, saved.Weekday)
	return models.FromDomainSchedule(saved), nil
}

// ListSchedules получает недельное расписание мастера
func (s *Service) ListSchedules(ctx context.Context, masterID int64) (*models.ScheduleListResponse, error) {
	schedules, err := s.scheduleRepo.ListByMaster(ctx, masterID)
	if err != nil {
		s.logger.Error("ListSchedules: repository error for master=%d: %v", masterID, err)
		return nil, fmt.Errorf("%w: ListSchedules - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainScheduleList(schedules), nil
}

// DeleteSchedule удаляет расписание мастера на день недели
func (s *Service) DeleteSchedule(ctx context.Context, masterID int64, weekday int) error {
	s.logger.Info("DeleteSchedule: master=%d weekday=%d", masterID, weekday)

	if weekday < domain.MinWeekday || weekday > domain.MaxWeekday {
		return fmt.Errorf("%w: weekday out of range", ErrInvalidInput)
	}

	if err := s.scheduleRepo.DeleteByMasterAndWeekday(ctx, masterID, weekday); err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("DeleteSchedule: schedule not found for master=%d weekday=%d", masterID, weekday)
			return ErrScheduleNotFound
		}
		s.logger.Error("DeleteSchedule: repository error for master=%d: %v", masterID, err)
		return fmt.Errorf("%w: DeleteSchedule - repository error: %v", ErrInternal, err)
	}

	return nil
}

// CreateAbsence создает отсутствие мастера.
// Отклоняет отсутствие, пересекающееся с уже существующим.
func (s *Service) CreateAbsence(ctx context.Context, req *models.CreateAbsenceRequest) (*models.AbsenceResponse, error) {
	s.logger.Info("CreateAbsence: master=%d %s..%s", req.MasterID, req.StartDate, req.EndDate)

	startDate, err := time.Parse(domain.DateFormat, req.StartDate)
	if err != nil {
		s.logger.Warn("CreateAbsence: invalid startDate=%s for master=%d", req.StartDate, req.MasterID)
		return nil, fmt.Errorf("%w: invalid startDate", ErrInvalidInput)
	}
	endDate, err := time.Parse(domain.DateFormat, req.EndDate)
	if err != nil {
		s.logger.Warn("CreateAbsence: invalid endDate=%s for master=%d", req.EndDate, req.MasterID)
		return nil, fmt.Errorf("%w: invalid endDate", ErrInvalidInput)
	}

	absence := &domain.Absence{
		MasterID:  req.MasterID,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    req.Reason,
	}
	if err := absence.Validate(); err != nil {
		s.logger.Warn("CreateAbsence: invalid absence for master=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Проверяем пересечение с существующими отсутствиями
	existing, err := s.absenceRepo.ListByMaster(ctx, req.MasterID)
	if err != nil {
		s.logger.Error("CreateAbsence: repository error for master=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: CreateAbsence - repository error: %v", ErrInternal, err)
	}
	for _, other := range existing {
		if absence.Overlaps(other) {
			s.logger.Warn("CreateAbsence: overlap with absence id=%d for master=%d", other.ID, req.MasterID)
			return nil, ErrAbsenceOverlap
		}
	}

	created, err := s.absenceRepo.Create(ctx, absence)
	if err != nil {
		s.logger.Error("CreateAbsence: repository error for master=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: CreateAbsence - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateAbsence: created absence id=%d for master=%d", created.ID, created.MasterID)
	return models.FromDomainAbsence(created), nil
}

// ListAbsences получает все отсутствия мастера
func (s *Service) ListAbsences(ctx context.Context, masterID int64) (*models.AbsenceListResponse, error) {
	absences, err := s.absenceRepo.ListByMaster(ctx, masterID)
	if err != nil {
		s.logger.Error("ListAbsences: repository error for master=%d: %v", masterID, err)
		return nil, fmt.Errorf("%w: ListAbsences - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAbsenceList(absences), nil
}

// DeleteAbsence удаляет отсутствие мастера
func (s *Service) DeleteAbsence(ctx context.Context, id int64) error {
	s.logger.Info("DeleteAbsence: absence id=%d", id)

	if err := s.absenceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, absenceRepo.ErrAbsenceNotFound) {
			s.logger.Warn("DeleteAbsence: absence id=%d not found", id)
			return ErrAbsenceNotFound
		}
		s.logger.Error("DeleteAbsence: repository error for absence id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteAbsence - repository error: %v", ErrInternal, err)
	}

	return nil
}
