package store

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hugh/orgroster/internal/apperr"
	"github.com/hugh/orgroster/internal/database"
	"github.com/hugh/orgroster/internal/database/models"
	"gorm.io/gorm"
)

var (
	ErrEmployeeNotFound    = apperr.NotFound("Employee not found")
	ErrEmployeeEmailExists = apperr.Conflict("Employee with this email already exists")
	ErrEmployeeEmailNeeded = apperr.Validation("Validation failed", map[string]string{"email": "Email is required"})
)

// EmployeeFields are the mutable employee columns. Update replaces all of them.
type EmployeeFields struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

func (f EmployeeFields) normalized() EmployeeFields {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Phone = strings.TrimSpace(f.Phone)
	return f
}

type EmployeeStore struct {
	scoped[models.Employee]
}

func NewEmployeeStore(db *gorm.DB, logger *slog.Logger) *EmployeeStore {
	return &EmployeeStore{scoped[models.Employee]{
		db:       db,
		logger:   logger,
		entity:   "employee",
		notFound: ErrEmployeeNotFound,
	}}
}

func (s *EmployeeStore) Create(ctx context.Context, orgID uint, fields EmployeeFields) (*models.Employee, error) {
	fields = fields.normalized()
	if fields.Email == "" {
		return nil, ErrEmployeeEmailNeeded
	}

	taken, err := s.exists(ctx, orgID, 0, "email = ?", fields.Email)
	if err != nil {
		return nil, s.internal(ctx, "create", err, orgID, 0)
	}
	if taken {
		return nil, ErrEmployeeEmailExists
	}

	emp := models.Employee{
		OrganisationID: orgID,
		FirstName:      fields.FirstName,
		LastName:       fields.LastName,
		Email:          fields.Email,
		Phone:          fields.Phone,
	}
	if err := s.db.WithContext(ctx).Create(&emp).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrEmployeeEmailExists
		}
		return nil, s.internal(ctx, "create", err, orgID, 0)
	}

	s.logger.InfoContext(ctx, "created employee", "organisation_id", orgID, "id", emp.ID)
	return &emp, nil
}

func (s *EmployeeStore) List(ctx context.Context, orgID uint) ([]models.Employee, error) {
	return s.list(ctx, orgID)
}

func (s *EmployeeStore) Get(ctx context.Context, orgID, id uint) (*models.Employee, error) {
	return s.get(ctx, orgID, id)
}

// Update overwrites every mutable field. Fields the caller leaves empty are
// stored empty; email stays mandatory.
func (s *EmployeeStore) Update(ctx context.Context, orgID, id uint, fields EmployeeFields) (*models.Employee, error) {
	fields = fields.normalized()
	if fields.Email == "" {
		return nil, ErrEmployeeEmailNeeded
	}

	emp, err := s.get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if fields.Email != emp.Email {
		taken, err := s.exists(ctx, orgID, id, "email = ?", fields.Email)
		if err != nil {
			return nil, s.internal(ctx, "update", err, orgID, id)
		}
		if taken {
			return nil, ErrEmployeeEmailExists
		}
	}

	emp.FirstName = fields.FirstName
	emp.LastName = fields.LastName
	emp.Email = fields.Email
	emp.Phone = fields.Phone

	if err := s.db.WithContext(ctx).
		Model(emp).
		Where("organisation_id = ?", orgID).
		Select("FirstName", "LastName", "Email", "Phone").
		Updates(emp).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrEmployeeEmailExists
		}
		return nil, s.internal(ctx, "update", err, orgID, id)
	}

	return emp, nil
}

func (s *EmployeeStore) Delete(ctx context.Context, orgID, id uint) error {
	return s.delete(ctx, orgID, id)
}
