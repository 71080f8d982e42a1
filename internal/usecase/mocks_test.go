package usecase

import (
	"context"
	"time"

	"github.com/healthfirst/scheduling-service/internal/domain/entity"
	"github.com/healthfirst/scheduling-service/internal/domain/repository"
	"github.com/healthfirst/scheduling-service/internal/integrations/identity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Hand-rolled fakes with overridable function fields. A nil field means the
// happy path: success and zero values.

type fakePatternRepo struct {
	createFn                  func(pattern *entity.AvailabilityPattern) error
	createBatchFn             func(patterns []entity.AvailabilityPattern) error
	findByIDFn                func(id uuid.UUID) (*entity.AvailabilityPattern, error)
	findByProviderFn          func(providerID uuid.UUID) ([]entity.AvailabilityPattern, error)
	findActiveByProviderFn    func(providerID uuid.UUID) ([]entity.AvailabilityPattern, error)
	findActiveByProviderDayFn func(providerID uuid.UUID, dayOfWeek int) (*entity.AvailabilityPattern, error)
	deleteByProviderFn        func(providerID uuid.UUID) (int64, error)
	deleteFn                  func(id uuid.UUID) (int64, error)
}

func (f *fakePatternRepo) Create(_ *gorm.DB, pattern *entity.AvailabilityPattern) error {
	if f.createFn != nil {
		return f.createFn(pattern)
	}
	return nil
}

func (f *fakePatternRepo) CreateBatch(_ *gorm.DB, patterns []entity.AvailabilityPattern) error {
	if f.createBatchFn != nil {
		return f.createBatchFn(patterns)
	}
	return nil
}

func (f *fakePatternRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.AvailabilityPattern, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(id)
	}
	return nil, nil
}

func (f *fakePatternRepo) FindByProviderID(_ *gorm.DB, providerID uuid.UUID) ([]entity.AvailabilityPattern, error) {
	if f.findByProviderFn != nil {
		return f.findByProviderFn(providerID)
	}
	return nil, nil
}

func (f *fakePatternRepo) FindActiveByProviderID(_ *gorm.DB, providerID uuid.UUID) ([]entity.AvailabilityPattern, error) {
	if f.findActiveByProviderFn != nil {
		return f.findActiveByProviderFn(providerID)
	}
	return nil, nil
}

func (f *fakePatternRepo) FindActiveByProviderDay(_ *gorm.DB, providerID uuid.UUID, dayOfWeek int) (*entity.AvailabilityPattern, error) {
	if f.findActiveByProviderDayFn != nil {
		return f.findActiveByProviderDayFn(providerID, dayOfWeek)
	}
	return nil, nil
}

func (f *fakePatternRepo) DeleteByProviderID(_ *gorm.DB, providerID uuid.UUID) (int64, error) {
	if f.deleteByProviderFn != nil {
		return f.deleteByProviderFn(providerID)
	}
	return 0, nil
}

func (f *fakePatternRepo) Delete(_ *gorm.DB, id uuid.UUID) (int64, error) {
	if f.deleteFn != nil {
		return f.deleteFn(id)
	}
	return 1, nil
}

type fakeSlotRepo struct {
	insertMissingFn  func(slots []entity.Slot) (int64, error)
	findByIDFn       func(id uuid.UUID) (*entity.Slot, error)
	findAvailableFn  func(providerID uuid.UUID, date time.Time) ([]entity.Slot, error)
	claimFn          func(providerID uuid.UUID, date time.Time, startTime, endTime string, appointmentID uuid.UUID) (int64, error)
	blockedOverlapFn func(providerID uuid.UUID, date time.Time, startTime, endTime string) (*entity.Slot, error)
	releaseFn        func(appointmentID uuid.UUID) (int64, error)
	setBlockedFn     func(id uuid.UUID, blocked bool) (int64, error)
	deleteMatchingFn func(pattern *entity.AvailabilityPattern, from time.Time) (int64, error)
}

func (f *fakeSlotRepo) InsertMissing(_ *gorm.DB, slots []entity.Slot) (int64, error) {
	if f.insertMissingFn != nil {
		return f.insertMissingFn(slots)
	}
	return int64(len(slots)), nil
}

func (f *fakeSlotRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Slot, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(id)
	}
	return nil, nil
}

func (f *fakeSlotRepo) FindAvailable(_ *gorm.DB, providerID uuid.UUID, date time.Time) ([]entity.Slot, error) {
	if f.findAvailableFn != nil {
		return f.findAvailableFn(providerID, date)
	}
	return nil, nil
}

func (f *fakeSlotRepo) Claim(_ *gorm.DB, providerID uuid.UUID, date time.Time, startTime, endTime string, appointmentID uuid.UUID) (int64, error) {
	if f.claimFn != nil {
		return f.claimFn(providerID, date, startTime, endTime, appointmentID)
	}
	return 1, nil
}

func (f *fakeSlotRepo) FindFirstBlockedOverlapping(_ *gorm.DB, providerID uuid.UUID, date time.Time, startTime, endTime string) (*entity.Slot, error) {
	if f.blockedOverlapFn != nil {
		return f.blockedOverlapFn(providerID, date, startTime, endTime)
	}
	return nil, nil
}

func (f *fakeSlotRepo) Release(_ *gorm.DB, appointmentID uuid.UUID) (int64, error) {
	if f.releaseFn != nil {
		return f.releaseFn(appointmentID)
	}
	return 1, nil
}

func (f *fakeSlotRepo) SetBlocked(_ *gorm.DB, id uuid.UUID, blocked bool) (int64, error) {
	if f.setBlockedFn != nil {
		return f.setBlockedFn(id, blocked)
	}
	return 1, nil
}

func (f *fakeSlotRepo) DeleteFutureUnbookedMatching(_ *gorm.DB, pattern *entity.AvailabilityPattern, from time.Time) (int64, error) {
	if f.deleteMatchingFn != nil {
		return f.deleteMatchingFn(pattern, from)
	}
	return 0, nil
}

type fakeAppointmentRepo struct {
	createFn               func(appointment *entity.Appointment) error
	findByIDFn             func(id uuid.UUID) (*entity.Appointment, error)
	findFirstOverlappingFn func(providerID uuid.UUID, date time.Time, startTime, endTime string) (*entity.Appointment, error)
	updateStatusFromFn     func(id uuid.UUID, fromStatus entity.AppointmentStatus, update repository.StatusUpdate) (int64, error)
	findWithFilterFn       func(filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error)
}

func (f *fakeAppointmentRepo) Create(_ *gorm.DB, appointment *entity.Appointment) error {
	if f.createFn != nil {
		return f.createFn(appointment)
	}
	return nil
}

func (f *fakeAppointmentRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(id)
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) FindFirstOverlapping(_ *gorm.DB, providerID uuid.UUID, date time.Time, startTime, endTime string) (*entity.Appointment, error) {
	if f.findFirstOverlappingFn != nil {
		return f.findFirstOverlappingFn(providerID, date, startTime, endTime)
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) UpdateStatusFrom(_ *gorm.DB, id uuid.UUID, fromStatus entity.AppointmentStatus, update repository.StatusUpdate) (int64, error) {
	if f.updateStatusFromFn != nil {
		return f.updateStatusFromFn(id, fromStatus, update)
	}
	return 1, nil
}

func (f *fakeAppointmentRepo) FindWithFilter(_ *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error) {
	if f.findWithFilterFn != nil {
		return f.findWithFilterFn(filter)
	}
	return nil, 0, nil
}

type fakeVisitTypeRepo struct {
	createFn     func(visitType *entity.VisitType) error
	findByIDFn   func(id uuid.UUID) (*entity.VisitType, error)
	findByNameFn func(name string) (*entity.VisitType, error)
	findAllFn    func() ([]entity.VisitType, error)
	deleteFn     func(id uuid.UUID) (int64, error)
}

func (f *fakeVisitTypeRepo) Create(_ *gorm.DB, visitType *entity.VisitType) error {
	if f.createFn != nil {
		return f.createFn(visitType)
	}
	return nil
}

func (f *fakeVisitTypeRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.VisitType, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(id)
	}
	return nil, nil
}

func (f *fakeVisitTypeRepo) FindByName(_ *gorm.DB, name string) (*entity.VisitType, error) {
	if f.findByNameFn != nil {
		return f.findByNameFn(name)
	}
	return &entity.VisitType{ID: uuid.New(), Name: name}, nil
}

func (f *fakeVisitTypeRepo) FindAll(_ *gorm.DB) ([]entity.VisitType, error) {
	if f.findAllFn != nil {
		return f.findAllFn()
	}
	return nil, nil
}

func (f *fakeVisitTypeRepo) Delete(_ *gorm.DB, id uuid.UUID) (int64, error) {
	if f.deleteFn != nil {
		return f.deleteFn(id)
	}
	return 1, nil
}

type recordedAudit struct {
	action   string
	metadata entity.JSON
}

type fakeAuditService struct {
	records []recordedAudit
	err     error
}

func (f *fakeAuditService) Record(_ context.Context, _ *gorm.DB, _ *uuid.UUID, action string, metadata entity.JSON) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, recordedAudit{action: action, metadata: metadata})
	return nil
}

type fakeIdentityClient struct {
	findPatientFn  func(id uuid.UUID) (*identity.Patient, error)
	findProviderFn func(id uuid.UUID) (*identity.Provider, error)
}

func (f *fakeIdentityClient) FindPatient(_ context.Context, id uuid.UUID) (*identity.Patient, error) {
	if f.findPatientFn != nil {
		return f.findPatientFn(id)
	}
	return &identity.Patient{ID: id, IsActive: true}, nil
}

func (f *fakeIdentityClient) FindProvider(_ context.Context, id uuid.UUID) (*identity.Provider, error) {
	if f.findProviderFn != nil {
		return f.findProviderFn(id)
	}
	return &identity.Provider{ID: id, IsActive: true}, nil
}

type fakeLocker struct {
	err   error
	calls int
}

func (f *fakeLocker) WithProviderDateLock(ctx context.Context, _ uuid.UUID, _ time.Time, fn func(ctx context.Context) error) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

// testDB is a do-nothing gorm handle; the fakes intercept every query before
// it would touch a connection. The statement must be pre-populated because
// Session clones it on the first WithContext call.
func testDB() *gorm.DB {
	db := &gorm.DB{Config: &gorm.Config{}}
	db.Statement = &gorm.Statement{DB: db}
	return db
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

// passthroughTx replaces the transactional wrapper so usecase tests run the
// body directly against the fakes.
func passthroughTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}
