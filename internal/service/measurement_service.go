package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go-datamonitor/internal/metrics"
	"go-datamonitor/internal/model"
	"go-datamonitor/internal/repository"
	"go-datamonitor/internal/validation"
	"go-datamonitor/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrMeasurementNotFound = errors.New("measurement not found")

const (
	DefaultRecentCount = 50
	MaxRecentCount     = 500

	maxValidationMessage = 200
)

type MeasurementService interface {
	Create(req *CreateMeasurementRequest, userID uuid.UUID) (*model.Measurement, error)
	Update(id uint, req *UpdateMeasurementRequest, actorID string) (*model.Measurement, error)
	Delete(id uint, actorID string) (bool, error)
	GetByID(id uint) (*model.Measurement, error)
	List(filter repository.MeasurementFilter) ([]model.Measurement, error)
	Recent(count int, unitID *uint) ([]model.Measurement, error)
	ParameterNames(unitID *uint) ([]string, error)
	Validate(req *UpdateMeasurementRequest) (validation.Result, error)
}

// UpdateMeasurementRequest carries the fields a measurement edit replaces.
type UpdateMeasurementRequest struct {
	ParameterName string              `json:"parameter_name" validate:"required,notblank,max=100"`
	Value         decimal.Decimal     `json:"value"`
	UnitOfMeasure string              `json:"unit_of_measure" validate:"required,notblank,max=20"`
	Notes         *string             `json:"notes" validate:"omitempty,max=500"`
	MinValue      decimal.NullDecimal `json:"min_value"`
	MaxValue      decimal.NullDecimal `json:"max_value"`
}

type CreateMeasurementRequest struct {
	UpdateMeasurementRequest
	UnitID    uint       `json:"unit_id" validate:"required"`
	Timestamp *time.Time `json:"timestamp"` // defaults to now
}

type measurementService struct {
	repo    repository.MeasurementRepository
	db      *gorm.DB
	events  ws.Publisher
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewMeasurementService(repo repository.MeasurementRepository, db *gorm.DB, events ws.Publisher, m *metrics.Metrics) MeasurementService {
	return &measurementService{
		repo:    repo,
		db:      db,
		events:  events,
		metrics: m,
		now:     time.Now,
	}
}

func (s *measurementService) Create(req *CreateMeasurementRequest, userID uuid.UUID) (*model.Measurement, error) {
	if err := checkInput(req); err != nil {
		return nil, err
	}

	m := &model.Measurement{
		UserID:    userID,
		UnitID:    req.UnitID,
		Timestamp: s.now(),
	}
	if req.Timestamp != nil {
		m.Timestamp = *req.Timestamp
	}
	apply(m, &req.UpdateMeasurementRequest)
	m.Stamp(userID.String())

	if err := s.repo.Create(m); err != nil {
		return nil, err
	}

	created, err := s.repo.FindByID(m.ID)
	if err != nil {
		return nil, err
	}
	s.metrics.MeasurementWritten("created", created.IsValid)
	s.publish("created", created, userID.String())
	return created, nil
}

func (s *measurementService) Update(id uint, req *UpdateMeasurementRequest, actorID string) (*model.Measurement, error) {
	if err := checkInput(req); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		existing, err := repo.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMeasurementNotFound
			}
			return err
		}
		apply(existing, req)
		existing.UpdatedBy = actorID
		return repo.Update(existing)
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	s.metrics.MeasurementWritten("updated", updated.IsValid)
	s.publish("updated", updated, actorID)
	return updated, nil
}

func (s *measurementService) Delete(id uint, actorID string) (bool, error) {
	deleted, err := s.repo.Delete(id)
	if err != nil || !deleted {
		return deleted, err
	}
	s.metrics.MeasurementWritten("deleted", true)
	if s.events != nil {
		s.events.Publish(ws.Event{
			Type:    "measurement",
			Action:  "deleted",
			Data:    map[string]uint{"id": id},
			ActorID: actorID,
		})
	}
	return true, nil
}

func (s *measurementService) GetByID(id uint) (*model.Measurement, error) {
	m, err := s.repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMeasurementNotFound
	}
	return m, err
}

func (s *measurementService) List(filter repository.MeasurementFilter) ([]model.Measurement, error) {
	return s.repo.FindAll(filter)
}

func (s *measurementService) Recent(count int, unitID *uint) ([]model.Measurement, error) {
	if count <= 0 {
		count = DefaultRecentCount
	}
	if count > MaxRecentCount {
		count = MaxRecentCount
	}
	return s.repo.FindRecent(count, unitID)
}

func (s *measurementService) ParameterNames(unitID *uint) ([]string, error) {
	return s.repo.ParameterNames(unitID)
}

// Validate runs the measurement checks without storing anything.
func (s *measurementService) Validate(req *UpdateMeasurementRequest) (validation.Result, error) {
	if err := checkInput(req); err != nil {
		return validation.Result{}, err
	}
	var m model.Measurement
	apply(&m, req)
	return validation.Result{IsValid: m.IsValid, Message: m.ValidationMessage}, nil
}

func (s *measurementService) publish(action string, m *model.Measurement, actorID string) {
	if s.events == nil {
		return
	}
	s.events.Publish(ws.Event{
		Type:    "measurement",
		Action:  action,
		Data:    m.ToResponse(),
		ActorID: actorID,
		Message: fmt.Sprintf("%s %s: %s = %s %s", m.UnitName(), action, m.ParameterName, m.Value.String(), m.UnitOfMeasure),
	})
}

// apply copies the editable fields and recomputes validity from them.
func apply(m *model.Measurement, req *UpdateMeasurementRequest) {
	m.ParameterName = strings.TrimSpace(req.ParameterName)
	m.Value = req.Value
	m.UnitOfMeasure = strings.TrimSpace(req.UnitOfMeasure)
	m.Notes = req.Notes
	m.MinValue = req.MinValue
	m.MaxValue = req.MaxValue
	m.Normalize()

	result := validation.Check(validation.Input{
		ParameterName: m.ParameterName,
		Value:         m.Value,
		UnitOfMeasure: m.UnitOfMeasure,
		Min:           m.MinValue,
		Max:           m.MaxValue,
	})
	m.IsValid = result.IsValid
	m.ValidationMessage = truncate(result.Message, maxValidationMessage)
}

func truncate(s *string, max int) *string {
	if s == nil {
		return nil
	}
	r := []rune(*s)
	if len(r) <= max {
		return s
	}
	t := string(r[:max])
	return &t
}
