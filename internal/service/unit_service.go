package service

import (
	"errors"
	"strings"

	"go-datamonitor/internal/model"
	"go-datamonitor/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrUnitNotFound   = errors.New("unit not found")
	ErrUnitCodeExists = errors.New("unit code already exists")
)

type UnitService interface {
	GetAll() ([]model.Unit, error)
	GetActive() ([]model.Unit, error)
	GetByID(id uint) (*model.Unit, error)
	GetByCode(code string) (*model.Unit, error)
	Exists(id uint) (bool, error)
	CodeExists(code string, excludeID uint) (bool, error)
	Create(req *UnitRequest, actorID string) (*model.Unit, error)
	Update(id uint, req *UnitRequest, actorID string) (*model.Unit, error)
	Delete(id uint, actorID string) (bool, error)
}

type UnitRequest struct {
	Name        string  `json:"name" validate:"required,notblank,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Code        string  `json:"code" validate:"required,notblank,max=50"`
	IsActive    *bool   `json:"is_active"`
}

type unitService struct {
	unitRepo repository.UnitRepository
	db       *gorm.DB
}

func NewUnitService(unitRepo repository.UnitRepository, db *gorm.DB) UnitService {
	return &unitService{unitRepo: unitRepo, db: db}
}

func (s *unitService) GetAll() ([]model.Unit, error) {
	return s.unitRepo.FindAll()
}

func (s *unitService) GetActive() ([]model.Unit, error) {
	return s.unitRepo.FindActive()
}

func (s *unitService) GetByID(id uint) (*model.Unit, error) {
	unit, err := s.unitRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnitNotFound
	}
	return unit, err
}

func (s *unitService) GetByCode(code string) (*model.Unit, error) {
	unit, err := s.unitRepo.FindByCode(code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnitNotFound
	}
	return unit, err
}

func (s *unitService) Exists(id uint) (bool, error) {
	return s.unitRepo.Exists(id)
}

func (s *unitService) CodeExists(code string, excludeID uint) (bool, error) {
	return s.unitRepo.CodeExists(code, excludeID)
}

func (s *unitService) Create(req *UnitRequest, actorID string) (*model.Unit, error) {
	if err := checkInput(req); err != nil {
		return nil, err
	}
	code := strings.TrimSpace(req.Code)

	exists, err := s.unitRepo.CodeExists(code, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUnitCodeExists
	}

	unit := &model.Unit{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Code:        code,
		IsActive:    true,
	}
	if req.IsActive != nil {
		unit.IsActive = *req.IsActive
	}
	unit.Stamp(actorID)

	if err := s.unitRepo.Create(unit); err != nil {
		return nil, err
	}
	return unit, nil
}

func (s *unitService) Update(id uint, req *UnitRequest, actorID string) (*model.Unit, error) {
	if err := checkInput(req); err != nil {
		return nil, err
	}

	var updated *model.Unit
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.unitRepo.WithTx(tx)
		unit, err := repo.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnitNotFound
			}
			return err
		}

		code := strings.TrimSpace(req.Code)
		exists, err := repo.CodeExists(code, id)
		if err != nil {
			return err
		}
		if exists {
			return ErrUnitCodeExists
		}

		unit.Name = strings.TrimSpace(req.Name)
		unit.Description = req.Description
		unit.Code = code
		if req.IsActive != nil {
			unit.IsActive = *req.IsActive
		}
		unit.UpdatedBy = actorID

		if err := repo.Update(unit); err != nil {
			return err
		}
		updated = unit
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete deactivates a unit that still has measurements or users and
// removes it otherwise. It reports false when the unit does not exist.
func (s *unitService) Delete(id uint, actorID string) (bool, error) {
	found := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.unitRepo.WithTx(tx)
		exists, err := repo.Exists(id)
		if err != nil || !exists {
			return err
		}
		found = true

		inUse, err := repo.HasDependents(id)
		if err != nil {
			return err
		}
		if inUse {
			return repo.Deactivate(id, actorID)
		}
		return repo.Delete(id)
	})
	if err != nil {
		return false, err
	}
	return found, nil
}
