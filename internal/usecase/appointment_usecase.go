package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/healthfirst/scheduling-service/internal/converter"
	"github.com/healthfirst/scheduling-service/internal/delivery/dto"
	"github.com/healthfirst/scheduling-service/internal/domain/entity"
	"github.com/healthfirst/scheduling-service/internal/domain/repository"
	"github.com/healthfirst/scheduling-service/internal/integrations/identity"
	"github.com/healthfirst/scheduling-service/internal/service"
	"github.com/healthfirst/scheduling-service/pkg/apperrors"
	"github.com/healthfirst/scheduling-service/pkg/timeutil"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	minAppointmentMinutes = 15
	maxAppointmentMinutes = 480
)

type AppointmentUsecase interface {
	Book(ctx context.Context, req *dto.BookAppointmentRequest, actorID uuid.UUID) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, appointmentID uuid.UUID, req *dto.CancelAppointmentRequest, actorID uuid.UUID) (*dto.AppointmentResponse, error)
	Advance(ctx context.Context, appointmentID uuid.UUID, target entity.AppointmentStatus, actorID uuid.UUID) (*dto.AppointmentResponse, error)
	Query(ctx context.Context, req *dto.QueryAppointmentsRequest) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	slotRepo        repository.SlotRepository
	visitTypeRepo   repository.VisitTypeRepository
	identityClient  IdentityClient
	locker          service.BookingLocker
	auditService    service.AuditService
	inTx            func(ctx context.Context, fn func(tx *gorm.DB) error) error
	now             func() time.Time
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	slotRepo repository.SlotRepository,
	visitTypeRepo repository.VisitTypeRepository,
	identityClient IdentityClient,
	locker service.BookingLocker,
	auditService service.AuditService,
) AppointmentUsecase {
	u := &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		slotRepo:        slotRepo,
		visitTypeRepo:   visitTypeRepo,
		identityClient:  identityClient,
		locker:          locker,
		auditService:    auditService,
		now:             time.Now,
	}
	u.inTx = func(ctx context.Context, fn func(tx *gorm.DB) error) error {
		return db.WithContext(ctx).Transaction(fn)
	}
	return u
}

// Book runs the conflict check and the appointment insert as one critical
// section per (provider, date): a Redis lock serializes concurrent booking
// requests, the conditional slot claim and the appointment exclusion
// constraint are the database-level backstop. Two overlapping requests can
// therefore never both be accepted.
func (u *appointmentUsecase) Book(ctx context.Context, req *dto.BookAppointmentRequest, actorID uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.buildAppointment(req)
	if err != nil {
		return nil, err
	}

	// Identity existence is delegated to the external identity store.
	if _, err := u.identityClient.FindPatient(ctx, req.PatientID); err != nil {
		if errors.Is(err, identity.ErrPatientNotFound) {
			return nil, apperrors.NotFound("patient not found")
		}
		u.log.Warnf("Failed to verify patient %s: %+v", req.PatientID, err)
		return nil, apperrors.Internal("failed to verify patient", err)
	}
	if _, err := u.identityClient.FindProvider(ctx, req.ProviderID); err != nil {
		if errors.Is(err, identity.ErrProviderNotFound) {
			return nil, apperrors.NotFound("provider not found")
		}
		u.log.Warnf("Failed to verify provider %s: %+v", req.ProviderID, err)
		return nil, apperrors.Internal("failed to verify provider", err)
	}

	err = u.locker.WithProviderDateLock(ctx, req.ProviderID, appointment.AppointmentDate, func(lockCtx context.Context) error {
		conflict, err := u.appointmentRepo.FindFirstOverlapping(
			u.db.WithContext(lockCtx), req.ProviderID, appointment.AppointmentDate, appointment.StartTime, appointment.EndTime)
		if err != nil {
			return fmt.Errorf("conflict check: %w", err)
		}
		if conflict != nil {
			return apperrors.SlotConflict(
				fmt.Sprintf("requested time overlaps appointment from %s to %s", conflict.StartTime, conflict.EndTime),
				conflict.ID)
		}

		// A provider block on any overlapping slot refuses the booking even
		// though no appointment holds the time.
		blocked, err := u.slotRepo.FindFirstBlockedOverlapping(
			u.db.WithContext(lockCtx), req.ProviderID, appointment.AppointmentDate, appointment.StartTime, appointment.EndTime)
		if err != nil {
			return fmt.Errorf("blocked slot check: %w", err)
		}
		if blocked != nil {
			return apperrors.SlotConflict(
				fmt.Sprintf("requested time overlaps a blocked slot from %s to %s", blocked.StartTime, blocked.EndTime),
				uuid.Nil)
		}

		return u.inTx(lockCtx, func(tx *gorm.DB) error {
			if err := u.appointmentRepo.Create(tx, appointment); err != nil {
				return err
			}
			// The slot is a convenience index, not a gate: booking against a
			// time with no materialized slot row is permitted, so zero
			// affected rows is fine here.
			if _, err := u.slotRepo.Claim(tx, req.ProviderID, appointment.AppointmentDate, appointment.StartTime, appointment.EndTime, appointment.ID); err != nil {
				return err
			}
			return u.auditService.Record(lockCtx, tx, &actorID, entity.AuditActionAppointmentBook, entity.JSON{
				"appointment_id": appointment.ID.String(),
				"provider_id":    req.ProviderID.String(),
				"patient_id":     req.PatientID.String(),
				"date":           req.AppointmentDate,
				"start_time":     appointment.StartTime,
				"end_time":       appointment.EndTime,
			})
		})
	})
	if err != nil {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		if errors.Is(err, service.ErrLockNotAcquired) {
			return nil, apperrors.SlotConflict("another booking for this provider is in progress, please retry", uuid.Nil)
		}
		if isExclusionViolation(err) || isDuplicateKeyError(err, "slots_provider_date_start") {
			return nil, apperrors.SlotConflict("requested time was booked concurrently", uuid.Nil)
		}
		u.log.Warnf("Failed to book appointment for provider %s: %+v", req.ProviderID, err)
		return nil, apperrors.Internal("failed to book appointment", err)
	}

	u.log.Infof("Appointment booked: id=%s, provider=%s, date=%s %s-%s",
		appointment.ID, req.ProviderID, req.AppointmentDate, appointment.StartTime, appointment.EndTime)
	return converter.AppointmentToResponse(appointment), nil
}

// Cancel moves a non-terminal appointment to cancelled and frees its slot in
// the same transaction. Cancelling an already-cancelled appointment fails
// with an invalid-transition error rather than silently succeeding.
func (u *appointmentUsecase) Cancel(ctx context.Context, appointmentID uuid.UUID, req *dto.CancelAppointmentRequest, actorID uuid.UUID) (*dto.AppointmentResponse, error) {
	cancelledBy := entity.CancelActor(req.CancelledBy)
	if !cancelledBy.IsValid() {
		return nil, apperrors.Validation("cancelled_by", "must be one of patient, provider, system")
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, apperrors.Internal("failed to load appointment", err)
	}
	if appointment == nil {
		return nil, apperrors.NotFound("appointment not found")
	}
	if !appointment.CanTransitionTo(entity.AppointmentStatusCancelled) {
		return nil, apperrors.InvalidTransition(
			fmt.Sprintf("cannot cancel an appointment in status %q", appointment.Status))
	}

	cancelledAt := u.now()
	update := repository.StatusUpdate{
		Status:             entity.AppointmentStatusCancelled,
		CancellationReason: &req.CancellationReason,
		CancelledBy:        &cancelledBy,
		CancelledAt:        &cancelledAt,
	}

	err = u.inTx(ctx, func(tx *gorm.DB) error {
		affected, err := u.appointmentRepo.UpdateStatusFrom(tx, appointmentID, appointment.Status, update)
		if err != nil {
			return err
		}
		if affected == 0 {
			// Status changed underneath us; report it as an illegal move.
			return apperrors.InvalidTransition("appointment status changed concurrently, cancel rejected")
		}
		if _, err := u.slotRepo.Release(tx, appointmentID); err != nil {
			return err
		}
		return u.auditService.Record(ctx, tx, &actorID, entity.AuditActionAppointmentCancel, entity.JSON{
			"appointment_id": appointmentID.String(),
			"reason":         req.CancellationReason,
			"cancelled_by":   req.CancelledBy,
		})
	})
	if err != nil {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		u.log.Warnf("Failed to cancel appointment %s: %+v", appointmentID, err)
		return nil, apperrors.Internal("failed to cancel appointment", err)
	}

	appointment.Status = entity.AppointmentStatusCancelled
	appointment.CancellationReason = &req.CancellationReason
	appointment.CancelledBy = &cancelledBy
	appointment.CancelledAt = &cancelledAt

	u.log.Infof("Appointment cancelled: id=%s, by=%s", appointmentID, req.CancelledBy)
	return converter.AppointmentToResponse(appointment), nil
}

// Advance moves the appointment forward through the state machine. Moves
// outside the transition table are rejected; cancellation has its own entry
// point because it requires a reason and an actor.
func (u *appointmentUsecase) Advance(ctx context.Context, appointmentID uuid.UUID, target entity.AppointmentStatus, actorID uuid.UUID) (*dto.AppointmentResponse, error) {
	if !target.IsValid() {
		return nil, apperrors.Validation("status", fmt.Sprintf("unknown status %q", target))
	}
	if target == entity.AppointmentStatusCancelled {
		return nil, apperrors.Validation("status", "use the cancel operation, which records a reason and an actor")
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, apperrors.Internal("failed to load appointment", err)
	}
	if appointment == nil {
		return nil, apperrors.NotFound("appointment not found")
	}
	if !appointment.CanTransitionTo(target) {
		return nil, apperrors.InvalidTransition(
			fmt.Sprintf("cannot move appointment from %q to %q", appointment.Status, target))
	}

	err = u.inTx(ctx, func(tx *gorm.DB) error {
		affected, err := u.appointmentRepo.UpdateStatusFrom(tx, appointmentID, appointment.Status, repository.StatusUpdate{Status: target})
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperrors.InvalidTransition("appointment status changed concurrently, transition rejected")
		}
		return u.auditService.Record(ctx, tx, &actorID, entity.AuditActionAppointmentTransition, entity.JSON{
			"appointment_id": appointmentID.String(),
			"from":           string(appointment.Status),
			"to":             string(target),
		})
	})
	if err != nil {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		u.log.Warnf("Failed to advance appointment %s to %s: %+v", appointmentID, target, err)
		return nil, apperrors.Internal("failed to advance appointment", err)
	}

	appointment.Status = target
	return converter.AppointmentToResponse(appointment), nil
}

// Query is read-only; results are ordered (date ASC, start_time ASC) so
// pagination stays deterministic.
func (u *appointmentUsecase) Query(ctx context.Context, req *dto.QueryAppointmentsRequest) (*dto.AppointmentListResponse, error) {
	filter := &entity.AppointmentFilter{
		ProviderID: req.ProviderID,
		PatientID:  req.PatientID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Page:       req.Page,
		Limit:      req.Limit,
	}
	if req.Status != "" {
		status := entity.AppointmentStatus(req.Status)
		if !status.IsValid() {
			return nil, apperrors.Validation("status", fmt.Sprintf("unknown status %q", req.Status))
		}
		filter.Status = &status
	}

	appointments, total, err := u.appointmentRepo.FindWithFilter(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to query appointments: %+v", err)
		return nil, apperrors.Internal("failed to query appointments", err)
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        total,
		Page:         page,
		Limit:        filter.PageSize(),
	}, nil
}

// buildAppointment applies the semantic booking rules: a real calendar date
// not in the past, a well-formed half-open interval in 15-minute currency,
// and an appointment type known to the visit-type catalog.
func (u *appointmentUsecase) buildAppointment(req *dto.BookAppointmentRequest) (*entity.Appointment, error) {
	date, err := timeutil.ParseDate(req.AppointmentDate)
	if err != nil {
		return nil, apperrors.Validation("appointment_date", err.Error())
	}
	if date.Before(dateOnly(u.now())) {
		return nil, apperrors.Validation("appointment_date", "cannot book an appointment in the past")
	}

	start, err := timeutil.ParseClock(req.StartTime)
	if err != nil {
		return nil, apperrors.Validation("start_time", err.Error())
	}
	end, err := timeutil.ParseClock(req.EndTime)
	if err != nil {
		return nil, apperrors.Validation("end_time", err.Error())
	}
	if start >= end {
		return nil, apperrors.Validation("start_time", "start_time must be before end_time")
	}

	duration := end - start
	if duration%15 != 0 {
		return nil, apperrors.Validation("end_time", "appointment duration must be a multiple of 15 minutes")
	}
	if duration < minAppointmentMinutes || duration > maxAppointmentMinutes {
		return nil, apperrors.Validation("end_time",
			fmt.Sprintf("appointment duration must be between %d and %d minutes", minAppointmentMinutes, maxAppointmentMinutes))
	}

	visitType, err := u.visitTypeRepo.FindByName(u.db, req.AppointmentType)
	if err != nil {
		u.log.Warnf("Failed to look up visit type %q: %+v", req.AppointmentType, err)
		return nil, apperrors.Internal("failed to look up visit type", err)
	}
	if visitType == nil {
		return nil, apperrors.Validation("appointment_type", fmt.Sprintf("unknown visit type %q", req.AppointmentType))
	}

	return &entity.Appointment{
		ID:              uuid.New(),
		PatientID:       req.PatientID,
		ProviderID:      req.ProviderID,
		AppointmentDate: date,
		StartTime:       timeutil.FormatClock(start),
		EndTime:         timeutil.FormatClock(end),
		DurationMinutes: duration,
		Status:          entity.AppointmentStatusScheduled,
		AppointmentType: req.AppointmentType,
		ReasonForVisit:  req.ReasonForVisit,
		Notes:           req.Notes,
	}, nil
}
